package grid

import (
	"math"

	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/internal/blend"
	"github.com/gogpu/overlay/raster"
)

// dotAlphaBoost compensates for how little ink a dot carries compared with
// a line.
const dotAlphaBoost = 4

// colors returns the minor and major colours for v, after the
// no-emphasis and x-ray preferences.
func (g *Grid) colors(v View) (minor, major raster.RGBA32) {
	minor, major = g.color, g.empColor
	if g.noEmpZoomedOut && v.AnyScaled() {
		major = minor
	}
	if g.xray {
		page := g.pageColor.WithAlpha(0xff)
		minor, major = minor.Over(page), major.Over(page)
	}
	return minor, major
}

// Render draws the grid lines of v that cross buf. Rectangular grids put
// every line on pixel centres; axonometric grids only the axis-aligned
// ones. Every emphasis-th line, and every line of a thinned family, is
// drawn in the major colour.
func (g *Grid) Render(buf *raster.Buffer, v View) {
	if buf == nil {
		return
	}
	minor, major := g.colors(v)
	area := buf.Bounds().ExpandBy(2)
	corners := area.Corners()
	emp := max(g.empSpacing, 1)
	dotted := g.dotted && g.typ == TypeRectangular

	for i, f := range v.Families {
		den := f.Dir.Cross(f.Step)
		if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
			continue
		}
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, c := range corners {
			j := f.Dir.Cross(c.Sub(v.Origin)) / den
			lo, hi = math.Min(lo, j), math.Max(hi, j)
		}
		start, stop := int(math.Floor(lo)), int(math.Floor(hi))

		var other Family
		if dotted {
			other = v.Families[1-i]
		}
		for j := start + 1; j <= stop; j++ {
			line := geom.Line{Origin: v.Origin.Add(f.Step.Mul(float64(j))), Vector: f.Dir}
			a, b, ok := line.ClipToRect(area)
			if !ok {
				logger().Debug("grid: line misses buffer", "family", i, "index", j)
				continue
			}
			if b.Sub(a).Dot(f.Dir) < 0 {
				a, b = b, a
			}
			if g.typ == TypeRectangular || geom.IsNear(a.X, b.X) || geom.IsNear(a.Y, b.Y) {
				a, b = geom.Snap(a), geom.Snap(b)
			}

			isMajor := f.Scaled || j%emp == 0
			s := raster.Stroke{Width: 1, Cap: raster.CapSquare, Color: minor, Op: blend.OpOver}
			if isMajor {
				s.Color = major
			}
			if dotted {
				s = g.dotStroke(s, a, b, v.Origin, other, isMajor)
				if s.Dash == nil {
					continue
				}
			}
			raster.Line(buf, a, b, s)
		}
	}
}

// dotStroke turns s into a dash pattern with one dot where the segment
// a-b crosses each line of other. Major dots are three pixels long.
func (g *Grid) dotStroke(s raster.Stroke, a, b, origin geom.Point, other Family, isMajor bool) raster.Stroke {
	period := other.Step.Length()
	u := b.Sub(a).Normalize()
	den := other.Dir.Cross(u)
	if period <= 0 || den == 0 {
		s.Dash = nil
		return s
	}
	width := 1.0
	if isMajor {
		width = 3
	}
	if period <= width {
		width = period / 2
	}
	// t is where the segment crosses the line of other through the origin.
	t := other.Dir.Cross(geom.Snap(origin).Sub(a)) / den
	s.Cap = raster.CapButt
	s.Color = s.Color.ScaleAlpha(dotAlphaBoost)
	s.Dash = raster.NewDash(width, period-width).WithOffset(width/2 - t)
	return s
}
