package overlay

import (
	"image"
	"math"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/raster"
)

// maxFaces bounds the per-canvas cache of font faces by device size.
const maxFaces = 16

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

// labelFont returns the font used by labels, parsed once per process.
func labelFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
	})
	return fontSource, fontErr
}

// face returns the label face of size device pixels.
func (c *Canvas) face(size float64) text.Face {
	if f, ok := c.faces.Get(size); ok {
		return f
	}
	src, err := labelFont()
	if err != nil {
		c.log().Warn("overlay: label font unavailable", "err", err)
		return nil
	}
	f := src.Face(size)
	c.faces.Set(size, f)
	return f
}

// textImage is a label rasterized in device pixels.
type textImage struct {
	img *image.RGBA
	// baseline is the left end of the baseline in img coordinates.
	baseline geom.Point
	// width and height are the advance and line height in device pixels.
	width, height float64
	ascent        float64
}

// rasterizeText draws s with face in col onto a fresh transparent image
// with a one pixel margin.
func rasterizeText(s string, face text.Face, col raster.RGBA32) *textImage {
	if s == "" || face == nil {
		return nil
	}
	w, h := text.Measure(s, face)
	m := face.Metrics()
	iw := int(math.Ceil(w)) + 2
	ih := int(math.Ceil(m.Ascent+m.Descent)) + 2
	img := image.NewRGBA(image.Rect(0, 0, iw, ih))
	base := geom.Pt(1, 1+math.Ceil(m.Ascent))
	text.Draw(img, s, face, base.X, base.Y, col)
	return &textImage{img: img, baseline: base, width: w, height: h, ascent: m.Ascent}
}

// blit composites ti into buf. toDevice maps ti's pixel coordinates to the
// device pixels of the canvas; pure integer translations are copied
// exactly, anything else is resampled.
func (ti *textImage) blit(buf *raster.Buffer, toDevice geom.Affine) {
	if ti == nil {
		return
	}
	if toDevice.A == 1 && toDevice.E == 1 && toDevice.B == 0 && toDevice.D == 0 &&
		toDevice.C == math.Trunc(toDevice.C) && toDevice.F == math.Trunc(toDevice.F) {
		at := image.Pt(int(toDevice.C), int(toDevice.F))
		r := ti.img.Bounds().Add(at)
		draw.Draw(buf.Surface, r, ti.img, image.Point{}, draw.Over)
		return
	}
	draw.ApproxBiLinear.Transform(buf.Surface, toDevice.Aff3(), ti.img, ti.img.Bounds(), draw.Over, nil)
}
