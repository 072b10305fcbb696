package overlay

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/internal/blend"
	"github.com/gogpu/overlay/raster"
)

// curveHalo is painted under the stroke so that control lines stay visible
// on dark and light artwork alike.
var curveHalo = raster.RGBAf(1, 1, 1, 0.5)

// Curve is a control line or cubic Bézier drawn between handles. Points are
// in document coordinates. Curves never receive events.
type Curve struct {
	itemBase
	curve geom.Cubic
	line  bool
	set   bool
}

// NewCurve creates a curve with no geometry. It draws nothing until
// SetCoords or SetCubicCoords is called.
func NewCurve(parent *Group) *Curve {
	c := &Curve{}
	c.init(c, parent, "Curve:Null")
	return c
}

// NewLine creates a straight control line from p0 to p1.
func NewLine(parent *Group, p0, p1 geom.Point) *Curve {
	c := &Curve{}
	c.init(c, parent, "Curve:Line")
	c.SetCoords(p0, p1)
	return c
}

// NewCubic creates a cubic Bézier control curve.
func NewCubic(parent *Group, p0, p1, p2, p3 geom.Point) *Curve {
	c := &Curve{}
	c.init(c, parent, "Curve:CubicBezier")
	c.SetCubicCoords(p0, p1, p2, p3)
	return c
}

// Kind returns KindCurve.
func (c *Curve) Kind() Kind { return KindCurve }

// SetCoords replaces the geometry with the segment p0-p1.
func (c *Curve) SetCoords(p0, p1 geom.Point) {
	c.name = "Curve:Line"
	c.curve = geom.LineSegment(p0, p1)
	c.line, c.set = true, true
	c.RequestUpdate()
}

// SetCubicCoords replaces the geometry with a cubic Bézier.
func (c *Curve) SetCubicCoords(p0, p1, p2, p3 geom.Point) {
	c.name = "Curve:CubicBezier"
	c.curve = geom.Cubic{P0: p0, P1: p1, P2: p2, P3: p3}
	c.line, c.set = false, true
	c.RequestUpdate()
}

// IsLine reports whether the curve is a straight segment.
func (c *Curve) IsLine() bool { return c.line }

// Coords returns the control points in document coordinates.
func (c *Curve) Coords() geom.Cubic { return c.curve }

// ClosestDistanceTo returns the distance from p (canvas space) to the
// nearest point of the curve, or +Inf when the curve has no geometry.
func (c *Curve) ClosestDistanceTo(p geom.Point) float64 {
	if !c.set {
		return math.Inf(1)
	}
	return c.curve.Transform(c.affine).Distance(p)
}

// Contains reports whether p lies within tolerance of the curve.
func (c *Curve) Contains(p geom.Point, tolerance float64) bool {
	return c.ClosestDistanceTo(p) <= tolerance
}

// Update recomputes the bounds: the exact curve bounds in canvas space
// grown by two units for the stroke.
func (c *Curve) Update(aff geom.Affine) {
	c.updateBounds(aff, func() geom.Rect {
		if !c.set {
			return geom.EmptyRect()
		}
		return c.curve.Transform(c.affine).Bounds().ExpandBy(2)
	})
}

// Render strokes the curve twice: a wide translucent white halo, then a
// one unit line in the stroke colour.
func (c *Curve) Render(buf *raster.Buffer) {
	if !c.set || !c.shouldRender(buf) {
		return
	}
	if c.curve.IsDegenerate() {
		return
	}
	cv := c.curve.Transform(c.affine)
	buf.Paint(c.bounds, blend.OpOver, func(dc *gg.Context, _ geom.Affine) {
		trace := func() {
			dc.MoveTo(cv.P0.X, cv.P0.Y)
			if c.line {
				dc.LineTo(cv.P3.X, cv.P3.Y)
				return
			}
			dc.CubicTo(cv.P1.X, cv.P1.Y, cv.P2.X, cv.P2.Y, cv.P3.X, cv.P3.Y)
		}
		trace()
		dc.SetColor(curveHalo)
		dc.SetLineWidth(2)
		if err := dc.Stroke(); err != nil {
			c.canvas.log().Debug("curve halo stroke failed", "err", err)
		}
		trace()
		dc.SetColor(c.stroke)
		dc.SetLineWidth(1)
		if err := dc.Stroke(); err != nil {
			c.canvas.log().Debug("curve stroke failed", "err", err)
		}
	})
}
