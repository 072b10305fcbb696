package overlay

import (
	"testing"

	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/grid"
)

func TestGuideLineRender(t *testing.T) {
	tests := []struct {
		name      string
		origin    geom.Point
		normal    geom.Point
		on, off   [2]int
		exactHits bool
	}{
		{"horizontal", geom.Pt(0, 20), geom.Pt(0, 1), [2]int{30, 20}, [2]int{30, 22}, true},
		{"vertical", geom.Pt(15, 0), geom.Pt(1, 0), [2]int{15, 30}, [2]int{17, 30}, true},
		{"diagonal", geom.Pt(20, 20), geom.Pt(1, 1), [2]int{25, 14}, [2]int{25, 25}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(60, 40)
			g := NewGuideLine(c.Root(), "", tt.origin, tt.normal)
			g.SetStroke(0xff0000ff)
			c.Frame()

			on := c.Store().RGBAAt(tt.on[0], tt.on[1])
			if tt.exactHits && on != opaqueRed {
				t.Errorf("line pixel %v = %v, want %v", tt.on, on, opaqueRed)
			}
			if on.G > 0xc0 {
				t.Errorf("line pixel %v = %v, want red", tt.on, on)
			}
			if off := c.Store().RGBAAt(tt.off[0], tt.off[1]); off != opaqueWhite {
				t.Errorf("pixel %v = %v, want %v", tt.off, off, opaqueWhite)
			}
		})
	}
}

func TestGuideLineContains(t *testing.T) {
	c := NewCanvas(60, 40)
	g := NewGuideLine(c.Root(), "", geom.Pt(0, 20), geom.Pt(0, 1))
	c.Frame()

	tests := []struct {
		p    geom.Point
		tol  float64
		want bool
	}{
		{geom.Pt(30, 20.5), 0, true},
		{geom.Pt(30, 22), 0, false},
		{geom.Pt(30, 22), 3, true},
		{geom.Pt(-500, 19), 2, true},
	}
	for _, tt := range tests {
		if got := g.Contains(tt.p, tt.tol); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.p, tt.tol, got, tt.want)
		}
	}
	c.Dispatch(motion(30, 20, 0))
	if c.CurrentItem() != g {
		t.Errorf("CurrentItem() = %v, want the guide", c.CurrentItem())
	}
}

func TestGuideLineSnapLine(t *testing.T) {
	c := NewCanvas(60, 40)
	g := NewGuideLine(c.Root(), "top", geom.Pt(3, 20), geom.Pt(0, 1))
	c.SetAffine(geom.Scale(2, 2))

	want := grid.SnapLine{Normal: geom.Pt(0, 1), Point: geom.Pt(3, 20)}
	if got := g.SnapLine(); got != want {
		t.Errorf("SnapLine() = %+v, want %+v", got, want)
	}
	if got := g.SnapLine().Direction(); got != geom.Pt(-1, 0) {
		t.Errorf("Direction() = %v, want %v", got, geom.Pt(-1, 0))
	}
	zero := NewGuideLine(c.Root(), "", geom.Pt(0, 0), geom.Point{})
	if zero.Normal() != geom.Pt(0, 1) {
		t.Errorf("Normal() for a zero normal = %v, want (0, 1)", zero.Normal())
	}
}

func TestGuideLineHandle(t *testing.T) {
	c := NewCanvas(60, 40)
	g := NewGuideLine(c.Root(), "a", geom.Pt(10, 10), geom.Pt(1, 0))
	h := g.Handle()
	if h.Pickable() {
		t.Error("guide handle is pickable")
	}
	if h.Shape() != CtrlShapeCircle {
		t.Errorf("unlocked handle Shape() = %v, want %v", h.Shape(), CtrlShapeCircle)
	}

	g.SetLocked(true)
	if h.Shape() != CtrlShapeCross || h.Stroke() != guideLockedColor {
		t.Errorf("locked handle = %v %v, want %v %v", h.Shape(), h.Stroke(), CtrlShapeCross, guideLockedColor)
	}
	if w, _ := h.Size(); w != guideLockedSize {
		t.Errorf("locked handle width = %d, want %d", w, guideLockedSize)
	}

	g.SetOrigin(geom.Pt(25, 10))
	if h.Position() != geom.Pt(25, 10) {
		t.Errorf("handle Position() = %v, want the new origin", h.Position())
	}
	g.SetLabel("b")
	if h.Name() != "GuideLine:Ctrl:b" {
		t.Errorf("handle Name() = %q", h.Name())
	}

	g.Hide()
	if h.Visible() {
		t.Error("Hide() left the handle visible")
	}
	g.Destroy()
	if c.Lookup(h.ID()) != nil {
		t.Error("Destroy() left the handle alive")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestGuideLineLabel(t *testing.T) {
	c := NewCanvas(80, 40)
	NewGuideLine(c.Root(), "Guide", geom.Pt(10, 30), geom.Pt(0, 1))
	c.Frame()

	painted := false
	for y := 10; y < 29 && !painted; y++ {
		for x := 14; x < 60; x++ {
			if c.Store().RGBAAt(x, y) != opaqueWhite {
				painted = true
				break
			}
		}
	}
	if !painted {
		t.Error("no label pixels above the guide")
	}
}
