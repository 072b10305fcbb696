package grid

import (
	"math"

	"github.com/gogpu/overlay/geom"
)

// minGap is the smallest distance in device pixels between drawn lines.
const minGap = 8

// Family is one set of parallel grid lines, the lines through
// Origin + j*Step for every integer j, each running along Dir.
type Family struct {
	Dir  geom.Point
	Step geom.Point

	// Scaled is set when Step was enlarged to keep lines apart.
	Scaled bool

	// Multiplier is the factor Step was enlarged by, 1 when unscaled.
	Multiplier float64
}

// View is the screen-space state of a grid under one canvas transform. It
// is derived by Update and consumed by Render and Snapper.Lines.
type View struct {
	Origin   geom.Point
	Families []Family

	// Zoom is the uniform scale of the transform.
	Zoom float64
}

// AnyScaled reports whether some family is scaled.
func (v View) AnyScaled() bool {
	for _, f := range v.Families {
		if f.Scaled {
			return true
		}
	}
	return false
}

// families returns the line families of the grid in document space.
// Rectangular grids have the vertical lines first, then the horizontal
// ones. Axonometric grids have the x and z slants, then the verticals.
func (g *Grid) families() []Family {
	if g.typ == TypeAxonometric {
		ax := g.angleX * math.Pi / 180
		az := g.angleZ * math.Pi / 180
		l := g.spacing.Y
		return []Family{
			{Dir: geom.Pt(math.Cos(ax), -math.Sin(ax)), Step: geom.Pt(0, l), Multiplier: 1},
			{Dir: geom.Pt(math.Cos(az), math.Sin(az)), Step: geom.Pt(0, l), Multiplier: 1},
			{Dir: geom.Pt(0, 1), Step: geom.Pt(l/(math.Tan(ax)+math.Tan(az)), 0), Multiplier: 1},
		}
	}
	return []Family{
		{Dir: geom.Pt(0, 1), Step: geom.Pt(g.spacing.X, 0), Multiplier: 1},
		{Dir: geom.Pt(1, 0), Step: geom.Pt(0, g.spacing.Y), Multiplier: 1},
	}
}

// gap returns the distance between neighbouring lines of f.
func (f Family) gap() float64 {
	d := f.Dir.Length()
	if d == 0 {
		return 0
	}
	return math.Abs(f.Dir.Cross(f.Step)) / d
}

// Update derives the screen-space view of the grid under aff. Each family
// whose lines would be closer than 8 pixels is thinned: its step grows
// first by the emphasis interval, then by doubling, until the lines are
// at least 8 pixels apart. Axonometric families are thinned together so
// that they keep meeting at common points.
func (g *Grid) Update(aff geom.Affine) View {
	v := View{Origin: aff.Apply(g.origin), Zoom: aff.Descrim()}
	for _, f := range g.families() {
		f.Dir = aff.ApplyVector(f.Dir)
		f.Step = aff.ApplyVector(f.Step)
		v.Families = append(v.Families, f)
	}

	if g.typ == TypeAxonometric {
		gap := math.Inf(1)
		for _, f := range v.Families {
			gap = math.Min(gap, f.gap())
		}
		mult, scaled := g.thin(gap)
		for i := range v.Families {
			f := &v.Families[i]
			f.Step = f.Step.Mul(mult)
			f.Multiplier, f.Scaled = mult, scaled
		}
		return v
	}

	for i := range v.Families {
		f := &v.Families[i]
		mult, scaled := g.thin(f.Step.Length())
		f.Step = f.Step.Mul(mult)
		f.Multiplier, f.Scaled = mult, scaled
	}
	return v
}

// thin returns the factor that lifts gap to at least minGap, and whether
// it differs from 1.
func (g *Grid) thin(gap float64) (float64, bool) {
	if !(gap > 0) || math.IsInf(gap, 0) {
		return 1, false
	}
	factor := float64(g.empSpacing)
	if g.empSpacing <= 1 {
		factor = DefaultEmpSpacing
	}
	mult := 1.0
	scaled := false
	for gap*mult < minGap {
		scaled = true
		mult *= factor
		factor = 2
	}
	return mult, scaled
}
