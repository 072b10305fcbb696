package overlay

import (
	"testing"

	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/raster"
)

type countingSeat struct {
	grabs, ungrabs int
	cursor         Cursor
}

func (s *countingSeat) Grab(c Cursor) { s.grabs++; s.cursor = c }
func (s *countingSeat) Ungrab()       { s.ungrabs++ }

func TestNewCanvasDefault(t *testing.T) {
	c := NewCanvas(100, 50)
	if w, h := c.Size(); w != 100 || h != 50 {
		t.Errorf("Size() = %d, %d, want 100, 50", w, h)
	}
	if c.DeviceScale() != 1 {
		t.Errorf("DeviceScale() = %d, want 1", c.DeviceScale())
	}
	if c.Background() != 0xffffffff {
		t.Errorf("Background() = %v, want opaque white", c.Background())
	}
	if c.PickTolerance() != 0 {
		t.Errorf("PickTolerance() = %v, want 0", c.PickTolerance())
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (the root)", c.Len())
	}
	if c.Session() == "" {
		t.Error("Session() is empty")
	}
}

func TestCanvasOptions(t *testing.T) {
	seat := &countingSeat{}
	scheduled := 0
	c := NewCanvas(10, 10,
		WithDeviceScale(2),
		WithBackground(raster.Transparent),
		WithScheduler(func() { scheduled++ }),
		WithSeat(seat),
		WithPickTolerance(3),
		WithGlyphCacheSize(4),
	)
	if c.DeviceScale() != 2 {
		t.Errorf("DeviceScale() = %d, want 2", c.DeviceScale())
	}
	if got := c.Store().Bounds().Dx(); got != 20 {
		t.Errorf("store width = %d, want 20", got)
	}
	if c.Background() != raster.Transparent {
		t.Errorf("Background() = %v, want transparent", c.Background())
	}
	if c.PickTolerance() != 3 {
		t.Errorf("PickTolerance() = %v, want 3", c.PickTolerance())
	}
	c.RedrawArea(geom.RectFromXYWH(1, 1, 2, 2))
	c.RedrawArea(geom.RectFromXYWH(4, 4, 2, 2))
	if scheduled != 1 {
		t.Errorf("scheduler called %d times, want 1", scheduled)
	}
	r := NewRect(c.Root(), geom.RectFromXYWH(1, 1, 5, 5))
	if err := r.Grab(MaskAll, "move"); err != nil {
		t.Fatal(err)
	}
	if seat.grabs != 1 || seat.cursor != "move" {
		t.Errorf("seat grabs = %d cursor %q, want 1 %q", seat.grabs, seat.cursor, "move")
	}
}

func TestCanvasOptionsIgnoreInvalid(t *testing.T) {
	c := NewCanvas(10, 10,
		WithDeviceScale(0),
		WithSeat(nil),
		WithPickTolerance(-1),
		WithGlyphCacheSize(0),
	)
	if c.DeviceScale() != 1 {
		t.Errorf("DeviceScale() = %d, want 1", c.DeviceScale())
	}
	if c.PickTolerance() != 0 {
		t.Errorf("PickTolerance() = %v, want 0", c.PickTolerance())
	}
	r := NewRect(c.Root(), geom.RectFromXYWH(1, 1, 5, 5))
	if err := r.Grab(MaskAll, ""); err != nil {
		t.Errorf("Grab() with the default seat = %v, want nil", err)
	}
}
