package overlay

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/internal/blend"
	"github.com/gogpu/overlay/raster"
)

// rectDash is the on/off pattern of dashed rectangles, in canvas units.
var rectDash = [2]float64{4, 4}

// Rect is a control rectangle such as a rubber band or a page border. The
// rectangle is axis aligned in document coordinates; under a rotated view
// it is drawn as the rotated outline.
type Rect struct {
	itemBase
	rect        geom.Rect
	set         bool
	dashed      bool
	inverted    bool
	shadowColor raster.RGBA32
	shadowWidth int
}

// NewRect creates a control rectangle. A rectangle of zero area draws
// nothing.
func NewRect(parent *Group, r geom.Rect) *Rect {
	c := &Rect{}
	c.init(c, parent, "Rect")
	c.fill = raster.Transparent
	c.rect, c.set = r, true
	return c
}

// NewNullRect creates a rectangle without geometry.
func NewNullRect(parent *Group) *Rect {
	c := &Rect{}
	c.init(c, parent, "Rect:Null")
	c.fill = raster.Transparent
	return c
}

// Kind returns KindRect.
func (c *Rect) Kind() Kind { return KindRect }

// Rect returns the rectangle in document coordinates.
func (c *Rect) Rect() geom.Rect { return c.rect }

// SetRect replaces the rectangle.
func (c *Rect) SetRect(r geom.Rect) {
	c.rect, c.set = r, true
	c.RequestUpdate()
}

// Dashed reports whether the outline is dashed.
func (c *Rect) Dashed() bool { return c.dashed }

// SetDashed switches between a solid and a 4-4 dashed outline.
func (c *Rect) SetDashed(dashed bool) {
	if c.dashed != dashed {
		c.dashed = dashed
		c.canvas.RedrawArea(c.bounds)
	}
}

// Inverted reports whether the rectangle is painted with difference
// blending.
func (c *Rect) Inverted() bool { return c.inverted }

// SetInverted selects difference blending, which keeps the outline visible
// on any background.
func (c *Rect) SetInverted(inverted bool) {
	if c.inverted != inverted {
		c.inverted = inverted
		c.canvas.RedrawArea(c.bounds)
	}
}

// Shadow returns the shadow colour and width.
func (c *Rect) Shadow() (raster.RGBA32, int) { return c.shadowColor, c.shadowWidth }

// SetShadow sets a drop shadow along the right and bottom edges. A width of
// 1 on a dashed rectangle fills the gaps of the dash with color instead.
func (c *Rect) SetShadow(color raster.RGBA32, width int) {
	if c.shadowColor == color && c.shadowWidth == width {
		return
	}
	c.shadowColor = color
	c.shadowWidth = width
	// Bounds depend on the shadow width.
	c.RequestUpdate()
	c.canvas.RedrawArea(c.bounds)
}

func (c *Rect) corners() [4]geom.Point {
	var pts [4]geom.Point
	for i := range pts {
		pts[i] = c.affine.Apply(c.rect.Corner(i))
	}
	return pts
}

// ClosestDistanceTo returns the distance from p to the rectangle, zero
// inside. It measures against the canvas-space bounding box, which is exact
// only while the view is not rotated.
func (c *Rect) ClosestDistanceTo(p geom.Point) float64 {
	if !c.set {
		return math.Inf(1)
	}
	if !c.affine.PreservesAxes() {
		c.canvas.log().Debug("rect distance under a rotated view is approximate", "item", c.name)
	}
	return c.rect.Transform(c.affine).Distance(p)
}

// Contains reports whether p lies inside the transformed rectangle, or
// within tolerance of it.
func (c *Rect) Contains(p geom.Point, tolerance float64) bool {
	if !c.set {
		return false
	}
	if tolerance > 0 {
		return c.ClosestDistanceTo(p) <= tolerance
	}
	return geom.ConvexContains(c.corners(), p)
}

// Update recomputes the bounds with room for the outline and shadow.
func (c *Rect) Update(aff geom.Affine) {
	c.updateBounds(aff, func() geom.Rect {
		if !c.set || c.rect.Area() == 0 {
			return geom.EmptyRect()
		}
		return c.rect.Transform(c.affine).ExpandBy(float64(2*c.shadowWidth + 2))
	})
}

// axisAligned reports whether the view rotation is a multiple of 90
// degrees, in which case edges are snapped to pixel centres.
func (c *Rect) axisAligned() bool {
	r := math.Abs(math.Mod(c.affine.RotationAngle()*2/math.Pi, 1))
	return geom.IsNear(r, 0) || geom.IsNear(r, 1)
}

// Render paints the fill, the shadow and the outline.
func (c *Rect) Render(buf *raster.Buffer) {
	if !c.set || !c.shouldRender(buf) {
		return
	}
	op := blend.OpOver
	if c.inverted {
		op = blend.OpDifference
	}
	aligned := c.axisAligned()
	corners := c.corners()

	var crisp geom.Rect
	if aligned {
		o := geom.RectFromPoints(corners[:]...)
		x0, y0 := math.Floor(o.Min.X), math.Floor(o.Min.Y)
		crisp = geom.RectFromXYWH(x0+0.5, y0+0.5, math.Floor(o.Max.X)-x0, math.Floor(o.Max.Y)-y0)
	}

	if c.fill.A() > 0 {
		if aligned {
			raster.FillRect(buf, crisp, c.fill, op)
		} else {
			raster.FillPolygon(buf, corners[:], c.fill, op)
		}
	}

	if c.shadowWidth > 0 && !c.dashed {
		c.renderShadow(buf, corners, aligned, op)
	}

	if aligned {
		s := raster.Stroke{Width: 1, Color: c.stroke, Op: op}
		if c.dashed {
			s.Dash = raster.NewDash(rectDash[:]...)
		}
		raster.StrokeRect(buf, crisp, s)
		if c.dashed && c.shadowWidth == 1 {
			s.Color = c.shadowColor
			s.Dash = s.Dash.WithOffset(rectDash[0])
			raster.StrokeRect(buf, crisp, s)
		}
		return
	}

	buf.Paint(c.bounds, op, func(dc *gg.Context, _ geom.Affine) {
		outline := func() {
			dc.MoveTo(corners[0].X, corners[0].Y)
			for _, p := range corners[1:] {
				dc.LineTo(p.X, p.Y)
			}
			dc.ClosePath()
		}
		outline()
		dc.SetColor(c.stroke)
		dc.SetLineWidth(1)
		if c.dashed {
			dc.SetDash(rectDash[:]...)
		}
		_ = dc.Stroke()
		if c.dashed && c.shadowWidth == 1 {
			outline()
			dc.SetColor(c.shadowColor)
			dc.SetDashOffset(rectDash[0])
			_ = dc.Stroke()
		}
	})
}

// renderShadow strokes the two edges that face away from the light, offset
// by half the shadow width.
func (c *Rect) renderShadow(buf *raster.Buffer, corners [4]geom.Point, aligned bool, op blend.Op) {
	w := float64(c.shadowWidth)
	ydir := 1.0
	if c.affine.Det() < 0 {
		ydir = -1
	}
	shadow := geom.Pt(w/2, ydir*w/2).Rotate(c.affine.RotationAngle())
	pts := make([]geom.Point, 0, 3)
	for _, p := range corners[1:] {
		p = p.Add(shadow)
		if aligned {
			p = geom.Pt(math.Floor(p.X+0.5)+0.5, math.Floor(p.Y+0.5)+0.5)
		}
		pts = append(pts, p)
	}
	buf.Paint(c.bounds, op, func(dc *gg.Context, _ geom.Affine) {
		dc.MoveTo(pts[0].X, pts[0].Y)
		dc.LineTo(pts[1].X, pts[1].Y)
		dc.LineTo(pts[2].X, pts[2].Y)
		dc.SetColor(c.shadowColor)
		dc.SetLineWidth(w + 1)
		_ = dc.Stroke()
	})
}
