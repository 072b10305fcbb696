package overlay

import "github.com/gogpu/overlay/raster"

// CanvasOption configures a Canvas during creation.
//
// Example:
//
//	c := overlay.NewCanvas(800, 600,
//	    overlay.WithDeviceScale(2),
//	    overlay.WithScheduler(func() { window.Invalidate() }),
//	)
type CanvasOption func(*canvasOptions)

// DrawingFunc paints whatever lies beneath the overlay, normally the
// rendered document, into buf. It runs once per damaged rectangle before
// the item tree.
type DrawingFunc func(buf *raster.Buffer)

type canvasOptions struct {
	scale          int
	background     raster.RGBA32
	drawing        DrawingFunc
	scheduler      func()
	seat           Seat
	router         *InputRouter
	pickTolerance  float64
	glyphCacheSize int
}

func defaultCanvasOptions() canvasOptions {
	return canvasOptions{
		scale:          1,
		background:     0xffffffff,
		seat:           nopSeat{},
		glyphCacheSize: 256,
	}
}

// WithDeviceScale sets the number of device pixels per canvas unit.
// Values below 1 are ignored.
func WithDeviceScale(scale int) CanvasOption {
	return func(o *canvasOptions) {
		if scale >= 1 {
			o.scale = scale
		}
	}
}

// WithBackground sets the colour damaged regions are cleared to before
// painting. The default is opaque white.
func WithBackground(c raster.RGBA32) CanvasOption {
	return func(o *canvasOptions) {
		o.background = c
	}
}

// WithDrawing installs the painter for the content under the overlay.
func WithDrawing(fn DrawingFunc) CanvasOption {
	return func(o *canvasOptions) {
		o.drawing = fn
	}
}

// WithScheduler sets the callback invoked when the canvas needs a frame.
// It fires once per batch of changes; the host answers it by calling
// Canvas.Frame from its event loop.
func WithScheduler(fn func()) CanvasOption {
	return func(o *canvasOptions) {
		o.scheduler = fn
	}
}

// WithSeat connects pointer grabs to the platform.
func WithSeat(s Seat) CanvasOption {
	return func(o *canvasOptions) {
		if s != nil {
			o.seat = s
		}
	}
}

// WithInputRouter lets r observe every dispatched event to switch tools
// between extended input devices.
func WithInputRouter(r *InputRouter) CanvasOption {
	return func(o *canvasOptions) {
		o.router = r
	}
}

// WithPickTolerance sets the distance, in canvas units, within which
// picking accepts an item. Zero asks items for exact containment.
func WithPickTolerance(tol float64) CanvasOption {
	return func(o *canvasOptions) {
		if tol >= 0 {
			o.pickTolerance = tol
		}
	}
}

// WithGlyphCacheSize sets how many distinct handle appearances are kept
// rasterized and shared between handles.
func WithGlyphCacheSize(n int) CanvasOption {
	return func(o *canvasOptions) {
		if n > 0 {
			o.glyphCacheSize = n
		}
	}
}
