package raster

import (
	"image"
	"math"

	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/internal/blend"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// FillRect fills the axis-aligned rectangle r (canvas units) with c. Each
// device pixel receives the exact fraction of its area covered by r, so a
// rectangle whose edges fall on pixel boundaries produces no partially
// covered pixels.
func FillRect(b *Buffer, r geom.Rect, c RGBA32, op blend.Op) {
	if r.IsEmpty() || c.A() == 0 && op != blend.OpSource {
		return
	}
	d := r.Transform(b.ToDevice())
	area := d.RoundOutwards().Intersect(b.Surface.Bounds())
	if area.Empty() {
		return
	}
	pr, pg, pb, pa := c.Premultiplied()
	for y := area.Min.Y; y < area.Max.Y; y++ {
		cy := overlap(float64(y), d.Min.Y, d.Max.Y)
		if cy <= 0 {
			continue
		}
		o := b.Surface.PixOffset(area.Min.X, y)
		for x := area.Min.X; x < area.Max.X; x++ {
			cov := cy * overlap(float64(x), d.Min.X, d.Max.X)
			blend.Coverage(op, b.Surface.Pix[o:o+4:o+4], pr, pg, pb, pa, coverageByte(cov))
			o += 4
		}
	}
}

// overlap returns the length of [p, p+1] ∩ [lo, hi].
func overlap(p, lo, hi float64) float64 {
	return math.Max(0, math.Min(p+1, hi)-math.Max(p, lo))
}

func coverageByte(c float64) uint8 {
	if c >= 1 {
		return 255
	}
	return uint8(math.Round(c * 255))
}

// FillPolygon fills the closed polygon pts (canvas units) with c using
// antialiased nonzero coverage.
func FillPolygon(b *Buffer, pts []geom.Point, c RGBA32, op blend.Op) {
	if len(pts) < 3 || c.A() == 0 && op != blend.OpSource {
		return
	}
	toDev := b.ToDevice()
	dev := make([]geom.Point, len(pts))
	for i, p := range pts {
		dev[i] = toDev.Apply(p)
	}
	area := geom.RectFromPoints(dev...).RoundOutwards().Intersect(b.Surface.Bounds())
	if area.Empty() {
		return
	}

	z := vector.NewRasterizer(area.Dx(), area.Dy())
	z.DrawOp = draw.Src
	ox, oy := float64(area.Min.X), float64(area.Min.Y)
	z.MoveTo(float32(dev[0].X-ox), float32(dev[0].Y-oy))
	for _, p := range dev[1:] {
		z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, area.Dx(), area.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	pr, pg, pb, pa := c.Premultiplied()
	for y := 0; y < area.Dy(); y++ {
		o := b.Surface.PixOffset(area.Min.X, area.Min.Y+y)
		m := mask.PixOffset(0, y)
		for x := 0; x < area.Dx(); x++ {
			blend.Coverage(op, b.Surface.Pix[o:o+4:o+4], pr, pg, pb, pa, mask.Pix[m+x])
			o += 4
		}
	}
}
