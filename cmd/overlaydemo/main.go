// Command overlaydemo renders a canvas overlay with a grid, guides, handles
// and a few shapes into a PNG file.
//
// With -watch the image is rendered again whenever the preferences file
// changes, until the process is interrupted.
package main

import (
	"context"
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"
	"os/signal"

	"github.com/gogpu/overlay"
	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/grid"
	"github.com/gogpu/overlay/internal/blend"
	"github.com/gogpu/overlay/prefs"
	"github.com/gogpu/overlay/raster"
)

func main() {
	var (
		width  = flag.Int("width", 480, "canvas width")
		height = flag.Int("height", 320, "canvas height")
		scale  = flag.Int("scale", 1, "device scale")
		config = flag.String("config", "", "preferences file (TOML or YAML)")
		output = flag.String("output", "overlay.png", "output file")
		watch  = flag.Bool("watch", false, "re-render when the preferences file changes")
	)
	flag.Parse()

	p, err := prefs.Load(*config)
	if err != nil {
		log.Fatalf("Failed to load preferences: %v", err)
	}
	if err := render(p, *width, *height, *scale, *output); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if !*watch || *config == "" {
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = prefs.Watch(ctx, *config, func(p prefs.Preferences, err error) {
		if err != nil {
			log.Printf("Reload failed: %v", err)
			return
		}
		if err := render(p, *width, *height, *scale, *output); err != nil {
			log.Printf("Render failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to watch %s: %v", *config, err)
	}
}

func render(p prefs.Preferences, w, h, scale int, output string) error {
	level, err := p.Level()
	if err != nil {
		return err
	}
	overlay.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	engine, err := newGrid(p.Grid)
	if err != nil {
		return err
	}
	defer engine.Close()

	c := overlay.NewCanvas(w, h,
		overlay.WithDeviceScale(scale),
		overlay.WithDrawing(drawPage),
	)
	defer c.Close()
	populate(c, engine, w, h)
	c.ApplyPreferences(p)
	c.Frame()

	if err := savePNG(output, c.Store()); err != nil {
		return err
	}
	log.Printf("Overlay saved to %s (%dx%d)", output, w*scale, h*scale)
	return nil
}

func newGrid(g prefs.Grid) (*grid.Grid, error) {
	opts, err := overlay.GridOptions(g)
	if err != nil {
		return nil, err
	}
	// Preference spacing is in document units; the demo page is in px.
	opts = append(opts, grid.WithSpacing(geom.Pt(g.Spacing*10, g.Spacing*10)))
	return grid.New(grid.TypeRectangular, opts...), nil
}

// drawPage stands in for the document: a white page on grey.
func drawPage(buf *raster.Buffer) {
	raster.FillRect(buf, geom.RectFromXYWH(20, 20, 440, 280), 0xffffffff, blend.OpOver)
}

func populate(c *overlay.Canvas, engine *grid.Grid, w, h int) {
	root := c.Root()
	overlay.NewGridItem(root, engine)

	guides := overlay.NewGroup(root, "guides")
	overlay.NewGuideLine(guides, "margin", geom.Pt(40, 0), geom.Pt(1, 0))
	overlay.NewGuideLine(guides, "baseline", geom.Pt(0, float64(h)-60), geom.Pt(0, 1))
	overlay.NewGuideLine(guides, "", geom.Pt(float64(w)/2, float64(h)/2), geom.Pt(1, 1))

	shapes := overlay.NewGroup(root, "shapes")
	overlay.NewCubic(shapes,
		geom.Pt(60, 240), geom.Pt(120, 120), geom.Pt(200, 300), geom.Pt(260, 180))
	overlay.NewQuad(shapes,
		geom.Pt(300, 60), geom.Pt(420, 80), geom.Pt(400, 160), geom.Pt(290, 140))
	sel := overlay.NewRect(shapes, geom.RectFromXYWH(280, 180, 150, 90))
	sel.SetDashed(true)
	sel.SetShadow(0x0000003f, 1)

	handles := overlay.NewGroup(root, "handles")
	for i, typ := range []overlay.CtrlType{
		overlay.CtrlTypeNodeCusp,
		overlay.CtrlTypeNodeSmooth,
		overlay.CtrlTypeRotate,
		overlay.CtrlTypeCenter,
		overlay.CtrlTypeMarker,
		overlay.CtrlTypeMesh,
	} {
		overlay.NewCtrl(handles, typ, geom.Pt(70+float64(i)*30, 60))
	}
	for i, a := range []overlay.Anchor{overlay.AnchorN, overlay.AnchorE, overlay.AnchorS, overlay.AnchorW} {
		arrow := overlay.NewCtrlShape(handles, overlay.CtrlShapeSArrow, geom.Pt(70+float64(i)*30, 100))
		arrow.SetSize(7)
		arrow.SetAnchor(a)
		arrow.SetAngle(float64(i) * math.Pi / 8)
	}

	label := overlay.NewText(root, geom.Pt(355, 225), "150 × 90 px")
	label.SetBackground(overlay.DefaultTextBackground)
	label.SetFill(0xffffffff)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
