package raster

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/internal/blend"
	"golang.org/x/image/draw"
)

// Buffer describes one region of the canvas being painted.
type Buffer struct {
	// Rect is the painted region in canvas units.
	Rect image.Rectangle

	// DeviceScale is the number of device pixels per canvas unit.
	DeviceScale int

	// Surface receives the pixels. Its bounds are Rect multiplied by
	// DeviceScale, so device pixel (x, y) of the canvas is Surface.Pix at
	// Surface.PixOffset(x, y).
	Surface *image.RGBA
}

// NewBuffer allocates a transparent buffer for rect.
func NewBuffer(rect image.Rectangle, scale int) *Buffer {
	if scale < 1 {
		scale = 1
	}
	return &Buffer{
		Rect:        rect,
		DeviceScale: scale,
		Surface:     image.NewRGBA(scaleRect(rect, scale)),
	}
}

// BufferOn returns a buffer painting rect directly into store, a surface
// whose bounds are in device pixels of the whole canvas.
func BufferOn(store *image.RGBA, rect image.Rectangle, scale int) *Buffer {
	if scale < 1 {
		scale = 1
	}
	dev := scaleRect(rect, scale).Intersect(store.Bounds())
	sub, _ := store.SubImage(dev).(*image.RGBA)
	return &Buffer{Rect: rect, DeviceScale: scale, Surface: sub}
}

func scaleRect(r image.Rectangle, s int) image.Rectangle {
	return image.Rectangle{Min: r.Min.Mul(s), Max: r.Max.Mul(s)}
}

// Bounds returns Rect as a float rectangle.
func (b *Buffer) Bounds() geom.Rect {
	return geom.RectFromImage(b.Rect)
}

// ToDevice returns the transform from canvas units to device pixels.
func (b *Buffer) ToDevice() geom.Affine {
	s := float64(b.DeviceScale)
	return geom.Scale(s, s)
}

// Clear fills the whole buffer with c, replacing what was there.
func (b *Buffer) Clear(c RGBA32) {
	r, g, bl, a := c.Premultiplied()
	draw.Draw(b.Surface, b.Surface.Bounds(), image.NewUniform(premultipliedColor{r, g, bl, a}), image.Point{}, draw.Src)
}

// Paint runs fn against a gg context covering area (clipped to the buffer)
// and composites the result into the surface with op. The context starts
// with the returned base transform installed, mapping canvas units to its
// pixels; callers that change the transform compose with base through
// base.Multiply(local). Paint is a no-op when area misses the buffer.
func (b *Buffer) Paint(area geom.Rect, op blend.Op, fn func(dc *gg.Context, base geom.Affine)) {
	dev := area.Transform(b.ToDevice()).RoundOutwards().Intersect(b.Surface.Bounds())
	if dev.Empty() {
		return
	}
	dc := gg.NewContext(dev.Dx(), dev.Dy())
	s := float64(b.DeviceScale)
	base := geom.Translate(float64(-dev.Min.X), float64(-dev.Min.Y)).Multiply(geom.Scale(s, s))
	dc.SetTransform(base.Matrix())
	fn(dc, base)
	b.Composite(dc.Image(), dev.Min, op)
}

// Composite blends src, a premultiplied image, into the surface with its
// top-left corner at device pixel at.
func (b *Buffer) Composite(src image.Image, at image.Point, op blend.Op) {
	sb := src.Bounds()
	dst := image.Rectangle{Min: at, Max: at.Add(sb.Size())}.Intersect(b.Surface.Bounds())
	if dst.Empty() {
		return
	}
	rgba, ok := src.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(sb)
		draw.Draw(rgba, sb, src, sb.Min, draw.Src)
	}
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		so := rgba.PixOffset(sb.Min.X+dst.Min.X-at.X, sb.Min.Y+y-at.Y)
		do := b.Surface.PixOffset(dst.Min.X, y)
		for x := dst.Min.X; x < dst.Max.X; x++ {
			s := rgba.Pix[so : so+4 : so+4]
			blend.Pixel(op, b.Surface.Pix[do:do+4:do+4], s[0], s[1], s[2], s[3])
			so += 4
			do += 4
		}
	}
}

type premultipliedColor struct{ r, g, b, a uint8 }

func (c premultipliedColor) RGBA() (r, g, b, a uint32) {
	r = uint32(c.r) * 0x101
	g = uint32(c.g) * 0x101
	b = uint32(c.b) * 0x101
	a = uint32(c.a) * 0x101
	return
}

// Set replaces device pixel (x, y) with the straight-alpha colour c.
func (b *Buffer) Set(x, y int, c RGBA32) {
	if !(image.Point{X: x, Y: y}).In(b.Surface.Bounds()) {
		return
	}
	r, g, bl, a := c.Premultiplied()
	o := b.Surface.PixOffset(x, y)
	b.Surface.Pix[o], b.Surface.Pix[o+1], b.Surface.Pix[o+2], b.Surface.Pix[o+3] = r, g, bl, a
}

// At returns device pixel (x, y) as premultiplied bytes, or zero outside the
// surface.
func (b *Buffer) At(x, y int) [4]uint8 {
	if !(image.Point{X: x, Y: y}).In(b.Surface.Bounds()) {
		return [4]uint8{}
	}
	o := b.Surface.PixOffset(x, y)
	return [4]uint8(b.Surface.Pix[o : o+4])
}
