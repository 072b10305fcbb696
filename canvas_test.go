package overlay

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/grid"
	"github.com/gogpu/overlay/internal/blend"
	"github.com/gogpu/overlay/prefs"
	"github.com/gogpu/overlay/raster"
)

func TestCanvasBatchesRequests(t *testing.T) {
	calls := 0
	c := NewCanvas(50, 50, WithScheduler(func() { calls++ }))
	a := NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(10, 10))
	NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(20, 20))
	a.SetPosition(geom.Pt(15, 15))
	c.RedrawArea(geom.RectFromXYWH(0, 0, 5, 5))

	if calls != 1 {
		t.Errorf("scheduler called %d times before the frame, want 1", calls)
	}
	if !c.Pending() {
		t.Error("Pending() = false with queued changes")
	}
	c.Frame()
	if c.Pending() {
		t.Error("Pending() = true after Frame")
	}

	a.SetPosition(geom.Pt(30, 30))
	if calls != 2 {
		t.Errorf("scheduler called %d times after a new change, want 2", calls)
	}
}

func TestFrameDamage(t *testing.T) {
	c := NewCanvas(64, 64)
	if rects := c.Frame(); len(rects) == 0 {
		t.Fatal("first Frame() repainted nothing")
	}
	if rects := c.Frame(); len(rects) != 0 {
		t.Errorf("idle Frame() repainted %v", rects)
	}

	NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(40, 40))
	rects := c.Frame()
	if len(rects) == 0 {
		t.Fatal("Frame() after adding a handle repainted nothing")
	}
	p := image.Pt(40, 40)
	hit := false
	for _, r := range rects {
		if p.In(r) {
			hit = true
		}
		if r.In(image.Rect(0, 0, 32, 32)) {
			t.Errorf("damage %v is far from the new handle", r)
		}
	}
	if !hit {
		t.Errorf("damage %v misses the new handle", rects)
	}
}

func TestUpdateIdempotent(t *testing.T) {
	c := NewCanvas(64, 64, WithScheduler(func() {}))
	g := NewGroup(c.Root(), "g")
	items := []Item{
		NewCtrl(g, CtrlTypeDefault, geom.Pt(20, 20)),
		NewRect(g, geom.RectFromXYWH(30, 30, 10, 10)),
		NewLine(c.Root(), geom.Pt(5, 50), geom.Pt(50, 50)),
		g,
	}
	c.SetAffine(geom.Translate(3, 2))
	c.Frame()

	for _, it := range items {
		before := it.Bounds()
		it.Update(c.Affine())
		if got := it.Bounds(); got != before {
			t.Errorf("%s: Bounds() after a repeated Update = %v, want %v", it.Name(), got, before)
		}
		if it.NeedsUpdate() {
			t.Errorf("%s: NeedsUpdate() = true after a repeated Update", it.Name())
		}
	}
	c.Root().Update(c.Affine())
	if rects := c.Frame(); len(rects) != 0 {
		t.Errorf("Frame() after repeated updates repainted %v", rects)
	}
}

func TestFramePaints(t *testing.T) {
	drawn := 0
	c := NewCanvas(20, 20, WithDrawing(func(buf *raster.Buffer) {
		drawn++
		raster.FillRect(buf, geom.RectFromXYWH(0, 0, 5, 20), 0x000000ff, blend.OpOver)
	}))
	ctrl := NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(10, 10))
	ctrl.SetMode(CtrlModeColor)
	c.Frame()

	if drawn == 0 {
		t.Fatal("drawing callback not called")
	}
	store := c.Store()
	if got := store.RGBAAt(2, 2); got != (color.RGBA{0, 0, 0, 0xff}) {
		t.Errorf("drawing pixel = %v, want opaque black", got)
	}
	if got := store.RGBAAt(17, 17); got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("background pixel = %v, want opaque white", got)
	}
	if got := store.RGBAAt(10, 10); got.R <= got.G+64 || got.A != 0xff {
		t.Errorf("handle fill pixel = %v, want opaque red tint", got)
	}
	if got := store.RGBAAt(7, 10); got.B <= got.R+64 {
		t.Errorf("handle outline pixel = %v, want blue tint", got)
	}
}

func TestDestroyClearsCurrentAndGrab(t *testing.T) {
	seat := &countingSeat{}
	c := NewCanvas(50, 50, WithSeat(seat))
	ctrl := NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(10, 10))
	if err := ctrl.Grab(MaskAll, "grab"); err != nil {
		t.Fatal(err)
	}
	if c.GrabbedItem() != ctrl || c.CurrentItem() != ctrl {
		t.Fatalf("GrabbedItem() = %v, CurrentItem() = %v, want the handle", c.GrabbedItem(), c.CurrentItem())
	}
	ctrl.Destroy()
	if c.GrabbedItem() != nil || c.CurrentItem() != nil {
		t.Errorf("GrabbedItem() = %v, CurrentItem() = %v after Destroy, want nil", c.GrabbedItem(), c.CurrentItem())
	}
	if seat.ungrabs != 1 {
		t.Errorf("seat released %d times, want 1", seat.ungrabs)
	}
	ctrl.Destroy()
	if seat.ungrabs != 1 {
		t.Error("second Destroy touched the seat")
	}
}

func TestGrabExclusive(t *testing.T) {
	c := NewCanvas(50, 50)
	a := NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(10, 10))
	b := NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(20, 20))

	if err := a.Grab(MaskPointerMotion, ""); err != nil {
		t.Fatal(err)
	}
	if err := b.Grab(MaskPointerMotion, ""); err != ErrGrabHeld {
		t.Errorf("second Grab() = %v, want %v", err, ErrGrabHeld)
	}
	b.Ungrab()
	if c.GrabbedItem() != a {
		t.Error("Ungrab by a non-holder released the grab")
	}
	a.Ungrab()
	if err := b.Grab(MaskPointerMotion, ""); err != nil {
		t.Errorf("Grab() after release = %v, want nil", err)
	}
}

func TestSetAffineUpdatesItems(t *testing.T) {
	c := NewCanvas(100, 100)
	ctrl := NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(10, 10))
	c.Frame()

	c.SetAffine(geom.Scale(2, 2))
	c.Frame()
	want := geom.Rect{Min: geom.Pt(17, 17), Max: geom.Pt(24, 24)}
	if got := ctrl.Bounds(); got != want {
		t.Errorf("Bounds() after zoom = %v, want %v", got, want)
	}
}

func TestRotateViewAbout(t *testing.T) {
	c := NewCanvas(100, 100)
	p := geom.Pt(30, 40)
	c.RotateViewAbout(p, 1.2)
	if got := c.Affine().Apply(p); !got.IsNear(p) {
		t.Errorf("pivot moved to %v, want %v", got, p)
	}
	if got := c.Affine().Apply(geom.Pt(0, 0)); got.IsNear(geom.Pt(0, 0)) {
		t.Error("RotateViewAbout() left the view unrotated")
	}
}

func TestResizeAndDeviceScale(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Resize(30, 20)
	if got := c.Store().Bounds(); got != image.Rect(0, 0, 30, 20) {
		t.Errorf("store bounds after Resize = %v", got)
	}
	c.Resize(0, 5)
	if w, h := c.Size(); w != 30 || h != 20 {
		t.Errorf("invalid Resize changed the size to %d, %d", w, h)
	}
	c.SetDeviceScale(2)
	if got := c.Store().Bounds(); got != image.Rect(0, 0, 60, 40) {
		t.Errorf("store bounds after SetDeviceScale = %v", got)
	}
	if rects := c.Frame(); len(rects) == 0 {
		t.Error("Frame() after SetDeviceScale repainted nothing")
	}
}

func TestApplyPreferences(t *testing.T) {
	c := NewCanvas(50, 50)
	ctrl := NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(10, 10))
	engine := grid.New(grid.TypeRectangular)
	NewGridItem(c.Root(), engine)

	p := prefs.Defaults()
	p.HandleSize = 5
	p.PickTolerance = 4
	p.Grid.XRay = true
	p.Grid.SnapTolerance = 4
	c.ApplyPreferences(p)

	if w, _ := ctrl.Size(); w != 11 {
		t.Errorf("handle width = %d, want 11", w)
	}
	if c.PickTolerance() != 4 {
		t.Errorf("PickTolerance() = %v, want 4", c.PickTolerance())
	}
	if !engine.XRay() {
		t.Error("grid x-ray not applied")
	}
	if got := engine.Snapper().Tolerance(2); got != 2 {
		t.Errorf("grid Snapper().Tolerance(2) = %v, want 2", got)
	}
	later := NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(20, 20))
	if w, _ := later.Size(); w != 11 {
		t.Errorf("new handle width = %d, want 11", w)
	}
}

func TestDumpTree(t *testing.T) {
	c := NewCanvas(10, 10)
	g := NewGroup(c.Root(), "handles")
	NewCtrl(g, CtrlTypeDefault, geom.Pt(1, 1))
	NewRect(c.Root(), geom.RectFromXYWH(0, 0, 4, 4))

	var sb strings.Builder
	if err := c.DumpTree(&sb); err != nil {
		t.Fatal(err)
	}
	want := "Canvas Item Tree\n" +
		"0: handles (Group)\n" +
		"  0: Ctrl:Default (Ctrl)\n" +
		"1: Rect (Rect)\n"
	if got := sb.String(); got != want {
		t.Errorf("DumpTree() =\n%s\nwant\n%s", got, want)
	}
}

func TestCloseDetachesGrids(t *testing.T) {
	c := NewCanvas(10, 10)
	engine := grid.New(grid.TypeRectangular)
	NewGridItem(c.Root(), engine)
	if engine.Displays() != 1 {
		t.Fatalf("Displays() = %d, want 1", engine.Displays())
	}
	c.Close()
	if engine.Displays() != 0 {
		t.Errorf("Displays() after Close = %d, want 0", engine.Displays())
	}
	if c.Len() != 1 {
		t.Errorf("Len() after Close = %d, want 1", c.Len())
	}
}
