package overlay

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/internal/blend"
	"github.com/gogpu/overlay/raster"
)

// ctrlCache is a rasterized handle glyph in device pixels. Pixels are
// straight-alpha 0xRRGGBBAA values; a pixel with zero alpha but a non-zero
// colour is painted opaque in XOR mode.
type ctrlCache struct {
	width, height int
	scale         int
	pix           []uint32
}

func newCtrlCache(width, height, scale int) *ctrlCache {
	return &ctrlCache{width: width, height: height, scale: scale, pix: make([]uint32, width*height)}
}

func (cc *ctrlCache) at(x, y int) uint32 {
	return cc.pix[y*cc.width+x]
}

// ctrlKey identifies a glyph appearance so that identical handles share
// one rasterization.
type ctrlKey struct {
	shape         CtrlShape
	width, height int
	scale         int
	fill, stroke  raster.RGBA32
	angle         float64
}

// glyph returns the cache for the device scale, building it when stale.
// Handles smaller than two units draw nothing.
func (c *Ctrl) glyph(scale int) *ctrlCache {
	if c.cache != nil && c.cache.scale == scale {
		return c.cache
	}
	if c.width < 2 || c.height < 2 {
		return nil
	}
	if c.shape == CtrlShapeBitmap || c.shape == CtrlShapeImage {
		c.cache = c.buildCache(scale)
		return c.cache
	}
	if c.width%2 == 0 || c.height%2 == 0 {
		Logger().Warn("overlay: handle size is not odd", "item", c.name, "width", c.width, "height", c.height)
	}
	key := ctrlKey{
		shape: c.shape, width: c.width, height: c.height, scale: scale,
		fill: c.fill, stroke: c.stroke, angle: c.angle,
	}
	c.cache = c.canvas.glyphs.GetOrCreate(key, func() *ctrlCache {
		return c.buildCache(scale)
	})
	return c.cache
}

// buildCache rasterizes the glyph with closed-form pixel tests. Stroke
// bands are one device scale wide.
func (c *Ctrl) buildCache(ds int) *ctrlCache {
	w, h := c.width*ds, c.height*ds
	cc := newCtrlCache(w, h, ds)
	fill, stroke := uint32(c.fill), uint32(c.stroke)
	p := cc.pix

	switch c.shape {
	case CtrlShapeSquare:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if x >= ds && x < w-ds && y >= ds && y < h-ds {
					p[y*w+x] = fill
				} else {
					p[y*w+x] = stroke
				}
			}
		}

	case CtrlShapeDiamond:
		m := (w + 1) / 2
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				a, b, cs, d := x+y, (w-1-x)+y, (w-1-x)+(h-1-y), x+(h-1-y)
				switch {
				case a > m-1+ds && b > m-1+ds && cs > m-1+ds && d > m-1+ds:
					p[y*w+x] = fill
				case a > m-2 && b > m-2 && cs > m-2 && d > m-2:
					p[y*w+x] = stroke
				}
			}
		}

	case CtrlShapeCircle:
		rs := float64(w) / 2
		rf := rs - float64(ds)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				rx := float64(x) - float64(w)/2 + 0.5
				ry := float64(y) - float64(h)/2 + 0.5
				r2 := rx*rx + ry*ry
				switch {
				case r2 < rf*rf:
					p[y*w+x] = fill
				case r2 < rs*rs:
					p[y*w+x] = stroke
				}
			}
		}

	case CtrlShapeTriangle:
		c.buildTriangle(cc, fill, stroke)

	case CtrlShapeCross:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if abs(x-y) < ds || abs(w-1-x-y) < ds {
					p[y*w+x] = stroke
				}
			}
		}

	case CtrlShapePlus:
		half := float64(ds) / 2
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if math.Abs(float64(x)+0.5-float64(w)/2) < half || math.Abs(float64(y)+0.5-float64(h)/2) < half {
					p[y*w+x] = stroke
				}
			}
		}

	case CtrlShapePivot, CtrlShapeDArrow, CtrlShapeSArrow, CtrlShapeCArrow,
		CtrlShapeSAlign, CtrlShapeCAlign, CtrlShapeMAlign:
		c.buildGlyph(cc)

	case CtrlShapeBitmap:
		c.buildBitmap(cc, fill, stroke)

	case CtrlShapeImage:
		if c.pixbuf == nil {
			Logger().Warn("overlay: image handle without a bitmap", "item", c.name)
			break
		}
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), c.pixbuf, c.pixbuf.Bounds(), draw.Src, nil)
		for i := range p {
			o := i * 4
			p[i] = uint32(dst.Pix[o])<<24 | uint32(dst.Pix[o+1])<<16 | uint32(dst.Pix[o+2])<<8 | uint32(dst.Pix[o+3])
		}

	default:
		Logger().Warn("overlay: unhandled handle shape", "item", c.name, "shape", c.shape)
	}
	return cc
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// insideTriangle reports whether pt lies in triangle p1 p2 p3, using
// barycentric coordinates.
func insideTriangle(p1, p2, p3, pt geom.Point) bool {
	den := p1.X*(p2.Y-p3.Y) + p1.Y*(p3.X-p2.X) + p2.X*p3.Y - p2.Y*p3.X
	t1 := (pt.X*(p3.Y-p1.Y) + pt.Y*(p1.X-p3.X) - p1.X*p3.Y + p1.Y*p3.X) / den
	t2 := (pt.X*(p2.Y-p1.Y) + pt.Y*(p1.X-p2.X) - p1.X*p2.Y + p1.Y*p2.X) / -den
	return 0 <= t1 && t1 <= 1 && 0 <= t2 && t2 <= 1 && t1+t2 <= 1
}

// buildTriangle draws the largest arrowhead fitting the square, pointing
// left before rotation, with an inset arrowhead for the fill.
func (c *Ctrl) buildTriangle(cc *ctrlCache, fill, stroke uint32) {
	w, h := cc.width, cc.height
	ds := float64(cc.scale)
	w2, h2 := float64(w)/2, float64(h)/2
	m := geom.RotateAbout(geom.Pt(w2, h2), -c.angle)

	w2cos := w2 * math.Cos(math.Pi/6)
	h2sin := h2 * math.Sin(math.Pi/6)
	p1s := geom.Pt(0, h2)
	p2s := geom.Pt(w2+w2cos, h2+h2sin)
	p3s := geom.Pt(w2+w2cos, h2-h2sin)
	theta := p2s.Sub(p1s).Angle()

	p1f := m.Apply(geom.Pt(ds/math.Sin(theta), h2))
	p2f := m.Apply(geom.Pt(w2+w2cos, h2-h2sin+ds/math.Cos(theta)))
	p3f := m.Apply(geom.Pt(w2+w2cos, h2+h2sin-ds/math.Cos(theta)))
	p1s, p2s, p3s = m.Apply(p1s), m.Apply(p2s), m.Apply(p3s)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pt := geom.Pt(float64(x)+0.5, float64(y)+0.5)
			switch {
			case insideTriangle(p1f, p2f, p3f, pt):
				cc.pix[y*w+x] = fill
			case insideTriangle(p1s, p2s, p3s, pt):
				cc.pix[y*w+x] = stroke
			}
		}
	}
}

// buildBitmap thresholds the pixbuf into stroke and fill: transparent
// pixels stay empty, dark ones take the stroke and light ones the fill.
// Each bitmap pixel becomes a scale x scale block.
func (c *Ctrl) buildBitmap(cc *ctrlCache, fill, stroke uint32) {
	w, h := cc.width, cc.height
	if c.pixbuf == nil {
		Logger().Warn("overlay: bitmap handle without a bitmap", "item", c.name)
		for y := 0; y < h/cc.scale; y++ {
			for x := 0; x < w/cc.scale; x++ {
				if x == y {
					cc.pix[y*w+x] = 0xffff0000
				}
			}
		}
		return
	}
	src := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(src, src.Bounds(), c.pixbuf, c.pixbuf.Bounds(), draw.Src, nil)
	for i := range cc.pix {
		o := i * 4
		switch {
		case src.Pix[o+3] < 0x80:
			cc.pix[i] = 0
		case src.Pix[o] < 0x80:
			cc.pix[i] = stroke
		default:
			cc.pix[i] = fill
		}
	}
}

// Render composites the glyph onto buf at the handle bounds.
func (c *Ctrl) Render(buf *raster.Buffer) {
	if !c.shouldRender(buf) {
		return
	}
	cc := c.glyph(buf.DeviceScale)
	if cc == nil {
		return
	}
	s := buf.DeviceScale
	ox := int(math.Floor(c.bounds.Min.X)) * s
	oy := int(math.Floor(c.bounds.Min.Y)) * s
	area := image.Rect(ox, oy, ox+cc.width, oy+cc.height).Intersect(buf.Surface.Bounds())
	if area.Empty() {
		return
	}

	for y := area.Min.Y; y < area.Max.Y; y++ {
		o := buf.Surface.PixOffset(area.Min.X, y)
		for x := area.Min.X; x < area.Max.X; x++ {
			px := buf.Surface.Pix[o : o+4 : o+4]
			v := cc.at(x-ox, y-oy)
			if c.mode == CtrlModeXOR {
				composeXORPixel(px, v)
			} else if v != 0 {
				r, g, b, a := raster.RGBA32(v).Premultiplied()
				blend.Pixel(blend.OpOver, px, r, g, b, a)
			}
			o += 4
		}
	}
}

// composeXORPixel blends the straight-alpha glyph pixel v into the
// premultiplied destination px, keeping the destination alpha.
func composeXORPixel(px []byte, v uint32) {
	a := v & 0xff
	if a == 0 {
		if v != 0 {
			px[0], px[1], px[2], px[3] = byte(v>>24), byte(v>>16), byte(v>>8), 0xff
		}
		return
	}
	da := uint32(px[3])
	px[0] = byte(min(raster.ComposeXOR(uint32(px[0]), v>>24, a), da))
	px[1] = byte(min(raster.ComposeXOR(uint32(px[1]), (v>>16)&0xff, a), da))
	px[2] = byte(min(raster.ComposeXOR(uint32(px[2]), (v>>8)&0xff, a), da))
}
