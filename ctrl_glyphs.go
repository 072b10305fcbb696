package overlay

import (
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/overlay/geom"
)

// buildGlyph rasterizes the vector glyphs (arrows, pivot, align marks)
// with gg: the outline is filled with the fill colour and stroked one unit
// wide with the stroke colour, turned by the handle angle around its
// centre. The premultiplied result is stored straight.
func (c *Ctrl) buildGlyph(cc *ctrlCache) {
	size := float64(c.width)
	dc := gg.NewContext(cc.width, cc.height)
	ds := float64(cc.scale)
	center := geom.Pt(size/2, size/2)
	dc.SetTransform(geom.Scale(ds, ds).Multiply(geom.RotateAbout(center, c.angle)).Matrix())

	var outline []geom.Point
	switch c.shape {
	case CtrlShapeDArrow, CtrlShapeSArrow:
		outline = darrowOutline(size)
	case CtrlShapeCArrow:
		outline = carrowOutline(size)
	case CtrlShapeSAlign:
		outline = []geom.Point{
			geom.Pt(1.5, size/2), geom.Pt(size-1.5, 1.5), geom.Pt(size-1.5, size-1.5),
		}
	case CtrlShapeCAlign:
		outline = []geom.Point{
			geom.Pt(1.5, 1.5), geom.Pt(size-1.5, 1.5), geom.Pt(1.5, size-1.5),
		}
	case CtrlShapeMAlign:
		q := size / 4
		outline = []geom.Point{
			geom.Pt(size/2, q), geom.Pt(size-q, size/2), geom.Pt(size/2, size-q), geom.Pt(q, size/2),
		}
	case CtrlShapePivot:
		drawPivot(dc, size, c.fill.Floats, c.stroke.Floats)
		unpremultiplyInto(cc, dc.Image())
		return
	}

	dc.MoveTo(outline[0].X, outline[0].Y)
	for _, p := range outline[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
	dc.SetRGBA(c.fill.Floats())
	_ = dc.FillPreserve()
	dc.SetRGBA(c.stroke.Floats())
	dc.SetLineWidth(1)
	_ = dc.Stroke()
	unpremultiplyInto(cc, dc.Image())
}

// darrowOutline is a double-headed arrow along x, tips at the left and
// right edges.
func darrowOutline(size float64) []geom.Point {
	delta := (size - 1) / 4
	tipX, tipY := 0.5, size/2
	outX, outY := tipX+delta, tipY-delta
	inX, inY := outX, outY+delta/2
	return []geom.Point{
		{X: tipX, Y: tipY},
		{X: outX, Y: outY},
		{X: inX, Y: inY},
		{X: size - inX, Y: inY},
		{X: size - outX, Y: outY},
		{X: size - tipX, Y: tipY},
		{X: size - outX, Y: size - outY},
		{X: size - inX, Y: size - inY},
		{X: inX, Y: size - inY},
		{X: outX, Y: size - outY},
	}
}

// carrowOutline is a band bent along the upper quarter of a circle with an
// arrowhead at each end.
func carrowOutline(size float64) []geom.Point {
	const steps = 8
	delta := (size - 1) / 4
	hw, bw := delta/2, delta/2
	c := geom.Pt(size/2, size/2+delta/2)
	rm := size/2 - 0.5 - bw/2 - hw
	ro, ri := rm+bw/2, rm-bw/2
	a0, a1 := -3*math.Pi/4, -math.Pi/4

	at := func(r, a float64) geom.Point {
		sin, cos := math.Sincos(a)
		return c.Add(geom.Pt(cos, sin).Mul(r))
	}
	tangent := func(a float64) geom.Point {
		sin, cos := math.Sincos(a)
		return geom.Pt(-sin, cos)
	}

	var pts []geom.Point
	for i := 0; i <= steps; i++ {
		pts = append(pts, at(ro, a0+(a1-a0)*float64(i)/steps))
	}
	pts = append(pts, at(ro+hw, a1), at(rm, a1).Add(tangent(a1).Mul(delta)), at(ri-hw, a1))
	for i := steps; i >= 0; i-- {
		pts = append(pts, at(ri, a0+(a1-a0)*float64(i)/steps))
	}
	pts = append(pts, at(ri-hw, a0), at(rm, a0).Sub(tangent(a0).Mul(delta)), at(ro+hw, a0))
	return pts
}

// drawPivot draws a filled ring crossed by two full-width hairlines.
func drawPivot(dc *gg.Context, size float64, fill, stroke func() (r, g, b, a float64)) {
	mid := size / 2
	r := mid - 1.5
	dc.DrawCircle(mid, mid, r)
	dc.SetRGBA(fill())
	_ = dc.FillPreserve()
	dc.SetRGBA(stroke())
	dc.SetLineWidth(1)
	_ = dc.Stroke()

	dc.MoveTo(0.5, mid)
	dc.LineTo(size-0.5, mid)
	dc.MoveTo(mid, 0.5)
	dc.LineTo(mid, size-0.5)
	_ = dc.Stroke()
}

// unpremultiplyInto stores the premultiplied image img as straight-alpha
// pixels of cc.
func unpremultiplyInto(cc *ctrlCache, img image.Image) {
	rgba, ok := img.(*image.RGBA)
	if !ok {
		return
	}
	b := rgba.Bounds()
	for y := 0; y < cc.height && y < b.Dy(); y++ {
		for x := 0; x < cc.width && x < b.Dx(); x++ {
			o := rgba.PixOffset(b.Min.X+x, b.Min.Y+y)
			a := uint32(rgba.Pix[o+3])
			if a == 0 {
				continue
			}
			un := func(v uint8) uint32 {
				return min((uint32(v)*255+a/2)/a, 255)
			}
			cc.pix[y*cc.width+x] = un(rgba.Pix[o])<<24 | un(rgba.Pix[o+1])<<16 | un(rgba.Pix[o+2])<<8 | a
		}
	}
}
