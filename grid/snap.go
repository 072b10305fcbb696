package grid

import (
	"math"

	"github.com/gogpu/overlay/geom"
)

// DefaultTolerance is the snap distance in screen pixels.
const DefaultTolerance = 10

// AlwaysSnapTolerance is the tolerance value meaning "snap at any
// distance".
const AlwaysSnapTolerance = 10000

// SnapLine is a snapping candidate: the line through Point perpendicular to
// Normal, in document coordinates.
type SnapLine struct {
	Normal geom.Point
	Point  geom.Point
}

// Direction returns a vector along the line.
func (l SnapLine) Direction() geom.Point { return l.Normal.Cw() }

// Snapper answers nearest-line queries for a grid. Ranking the candidates
// against other snap targets is up to the caller.
type Snapper struct {
	grid        *Grid
	enabled     bool
	visibleOnly bool
	tolerance   float64
}

func newSnapper(g *Grid) *Snapper {
	return &Snapper{grid: g, enabled: true, tolerance: DefaultTolerance}
}

// Enabled reports whether the grid snaps. A disabled grid is also hidden.
func (s *Snapper) Enabled() bool { return s.enabled }

// SetEnabled enables or disables snapping.
func (s *Snapper) SetEnabled(on bool) { s.enabled = on }

// SnapVisibleOnly reports whether only lines currently drawn are offered.
func (s *Snapper) SnapVisibleOnly() bool { return s.visibleOnly }

// SetSnapVisibleOnly restricts snapping to drawn lines.
func (s *Snapper) SetSnapVisibleOnly(on bool) { s.visibleOnly = on }

// SetTolerance sets the snap distance in screen pixels.
func (s *Snapper) SetTolerance(px float64) { s.tolerance = px }

// Tolerance returns the snap distance in document units at zoom.
func (s *Snapper) Tolerance(zoom float64) float64 {
	if zoom <= 0 {
		zoom = 1
	}
	return s.tolerance / zoom
}

// AlwaysSnap reports whether the tolerance is the "always" sentinel.
func (s *Snapper) AlwaysSnap() bool { return s.tolerance == AlwaysSnapTolerance }

// MightSnap reports whether the snapper can produce candidates at all.
func (s *Snapper) MightSnap() bool { return s.enabled }

// Lines returns, for each line family, the two grid lines nearest to the
// document point p: the one at or above p's index, then the one at or
// below it. With SnapVisibleOnly set the spacing is that of the lines
// drawn in v.
func (s *Snapper) Lines(p geom.Point, v View) []SnapLine {
	g := s.grid
	fams := g.families()
	out := make([]SnapLine, 0, 2*len(fams))
	for i, f := range fams {
		step := f.Step
		if s.visibleOnly && i < len(v.Families) {
			step = step.Mul(v.Families[i].Multiplier)
		}
		den := f.Dir.Cross(step)
		if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
			continue
		}
		j := f.Dir.Cross(p.Sub(g.origin)) / den

		var normal geom.Point
		switch {
		case g.typ == TypeRectangular && i == 0:
			normal = geom.Pt(1, 0)
		case g.typ == TypeRectangular:
			normal = geom.Pt(0, 1)
		default:
			normal = f.Dir.Ccw().Normalize()
		}
		for _, k := range [2]float64{math.Ceil(j), math.Floor(j)} {
			at := g.origin.Add(step.Mul(k))
			if g.typ == TypeRectangular {
				// Keep only the coordinate the line is defined by.
				if i == 0 {
					at = geom.Pt(at.X, 0)
				} else {
					at = geom.Pt(0, at.Y)
				}
			}
			out = append(out, SnapLine{Normal: normal, Point: at})
		}
	}
	return out
}
