package overlay

import (
	"slices"
	"testing"

	"github.com/gogpu/overlay/geom"
)

type eventLog struct {
	types   []EventType
	consume bool
}

func (l *eventLog) handle(ev Event) bool {
	l.types = append(l.types, ev.Type)
	return l.consume
}

func motion(x, y float64, mods Modifier) Event {
	return Event{Type: EventMotion, Pos: geom.Pt(x, y), Mods: mods}
}

func TestDispatchEnterLeave(t *testing.T) {
	c := NewCanvas(50, 50)
	ctrl := NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(10, 10))
	log := &eventLog{consume: true}
	ctrl.SetHandler(log.handle)
	c.Frame()

	if !c.Dispatch(motion(10, 10, 0)) {
		t.Error("Dispatch(motion over handle) = false, want true")
	}
	if c.CurrentItem() != ctrl {
		t.Errorf("CurrentItem() = %v, want the handle", c.CurrentItem())
	}
	if c.Dispatch(motion(40, 40, 0)) {
		t.Error("Dispatch(motion over nothing) = true, want false")
	}
	if c.CurrentItem() != nil {
		t.Errorf("CurrentItem() = %v, want nil", c.CurrentItem())
	}

	want := []EventType{EventEnter, EventMotion, EventLeave}
	if !slices.Equal(log.types, want) {
		t.Errorf("handler saw %v, want %v", log.types, want)
	}
}

func TestDispatchBubbles(t *testing.T) {
	c := NewCanvas(50, 50)
	g := NewGroup(c.Root(), "g")
	ctrl := NewCtrl(g, CtrlTypeDefault, geom.Pt(10, 10))
	leaf := &eventLog{}
	parent := &eventLog{consume: true}
	ctrl.SetHandler(leaf.handle)
	g.SetHandler(parent.handle)
	c.Frame()

	c.Dispatch(motion(10, 10, 0))
	if !c.Dispatch(Event{Type: EventKeyPress, Key: "Delete"}) {
		t.Error("key press not consumed by the parent group")
	}
	if len(leaf.types) != len(parent.types) {
		t.Errorf("leaf saw %v, parent saw %v, want the same events", leaf.types, parent.types)
	}
	if last := parent.types[len(parent.types)-1]; last != EventKeyPress {
		t.Errorf("parent's last event = %v, want %v", last, EventKeyPress)
	}
}

func TestDispatchButtonHeldKeepsCurrent(t *testing.T) {
	c := NewCanvas(50, 50)
	ctrl := NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(10, 10))
	log := &eventLog{consume: true}
	ctrl.SetHandler(log.handle)
	c.Frame()

	c.Dispatch(motion(10, 10, 0))
	c.Dispatch(Event{Type: EventButtonPress, Pos: geom.Pt(10, 10), Button: 1})
	c.Dispatch(motion(40, 40, ModButton1))
	if c.CurrentItem() != ctrl {
		t.Fatalf("CurrentItem() while dragging = %v, want the handle", c.CurrentItem())
	}
	n := len(log.types)
	c.Dispatch(motion(45, 45, ModButton1))
	if len(log.types) != n+1 || log.types[n] != EventMotion {
		t.Errorf("drag motion not delivered, handler saw %v", log.types[n:])
	}

	c.Dispatch(Event{Type: EventButtonRelease, Pos: geom.Pt(45, 45), Button: 1, Mods: ModButton1})
	if c.CurrentItem() != nil {
		t.Errorf("CurrentItem() after release = %v, want nil", c.CurrentItem())
	}
	if !slices.Contains(log.types, EventButtonRelease) {
		t.Errorf("release not delivered, handler saw %v", log.types)
	}
}

func TestDispatchGrabMask(t *testing.T) {
	c := NewCanvas(50, 50)
	ctrl := NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(10, 10))
	log := &eventLog{consume: true}
	ctrl.SetHandler(log.handle)
	c.Frame()

	if err := ctrl.Grab(MaskKeyPress, ""); err != nil {
		t.Fatal(err)
	}
	if !c.Dispatch(Event{Type: EventKeyPress, Key: "a"}) {
		t.Error("key press not delivered to the grabbing item")
	}
	if c.Dispatch(Event{Type: EventScroll, Delta: geom.Pt(0, 1)}) {
		t.Error("scroll outside the grab mask was delivered")
	}
	if !slices.Equal(log.types, []EventType{EventKeyPress}) {
		t.Errorf("handler saw %v, want only the key press", log.types)
	}
}

func TestDispatchGrabRedirects(t *testing.T) {
	c := NewCanvas(50, 50)
	a := NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(10, 10))
	b := NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(30, 30))
	la, lb := &eventLog{consume: true}, &eventLog{consume: true}
	a.SetHandler(la.handle)
	b.SetHandler(lb.handle)
	c.Frame()

	if err := a.Grab(MaskPointerMotion|MaskEnter|MaskLeave|MaskButtonPress, ""); err != nil {
		t.Fatal(err)
	}
	c.Dispatch(Event{Type: EventButtonPress, Pos: geom.Pt(30, 30), Button: 1})
	if len(lb.types) != 0 {
		t.Errorf("non-grabbing item saw %v", lb.types)
	}
	if !slices.Contains(la.types, EventButtonPress) {
		t.Errorf("grabbing item saw %v, want the button press", la.types)
	}
}

func TestDispatchPickTolerance(t *testing.T) {
	c := NewCanvas(50, 50, WithPickTolerance(6))
	ctrl := NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(10, 10))
	c.Frame()

	c.Dispatch(motion(15, 10, 0))
	if c.CurrentItem() != ctrl {
		t.Errorf("CurrentItem() within tolerance = %v, want the handle", c.CurrentItem())
	}
	c.Dispatch(motion(17, 10, 0))
	if c.CurrentItem() != nil {
		t.Errorf("CurrentItem() outside tolerance = %v, want nil", c.CurrentItem())
	}
}

func TestRepickAfterHide(t *testing.T) {
	c := NewCanvas(50, 50)
	bottom := NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(10, 10))
	top := NewCtrl(c.Root(), CtrlTypeDefault, geom.Pt(10, 10))
	c.Frame()

	c.Dispatch(motion(10, 10, 0))
	if c.CurrentItem() != top {
		t.Fatalf("CurrentItem() = %v, want the top handle", c.CurrentItem())
	}
	top.Hide()
	c.Frame()
	if c.CurrentItem() != bottom {
		t.Errorf("CurrentItem() after hiding the top = %v, want the bottom handle", c.CurrentItem())
	}
}

type fakeTools struct {
	current  string
	switched []string
}

func (f *fakeTools) CurrentTool() string { return f.current }
func (f *fakeTools) SwitchTool(name string) {
	f.current = name
	f.switched = append(f.switched, name)
}

func TestInputRouter(t *testing.T) {
	tools := &fakeTools{current: "node"}
	pen := Device{Name: "stylus", Source: SourcePen}
	eraser := Device{Name: "stylus-eraser", Source: SourceEraser}
	r := NewInputRouter(tools, pen, eraser,
		Device{Name: "pad", Source: SourcePen},
		Device{Name: "usb mouse", Source: SourceMouse},
	)

	if _, ok := r.ToolFor("pad"); ok {
		t.Error("the pad was registered")
	}
	if _, ok := r.ToolFor("usb mouse"); ok {
		t.Error("a mouse was registered")
	}
	if tool, _ := r.ToolFor("stylus"); tool != ToolCalligraphic {
		t.Errorf("ToolFor(stylus) = %q, want %q", tool, ToolCalligraphic)
	}

	c := NewCanvas(50, 50, WithInputRouter(r))
	send := func(d Device) {
		c.Dispatch(Event{Type: EventMotion, Pos: geom.Pt(40, 40), Device: d})
	}
	send(pen)
	send(pen)
	if !slices.Equal(tools.switched, []string{ToolCalligraphic}) {
		t.Fatalf("switched %v, want one switch to %q", tools.switched, ToolCalligraphic)
	}

	// The user changes tool while using the pen; the eraser then takes over.
	tools.current = "pencil"
	send(eraser)
	if tools.current != ToolEraser {
		t.Errorf("tool with the eraser = %q, want %q", tools.current, ToolEraser)
	}
	send(pen)
	if tools.current != "pencil" {
		t.Errorf("tool back on the pen = %q, want the remembered %q", tools.current, "pencil")
	}

	// Key events do not switch.
	c.Dispatch(Event{Type: EventKeyPress, Device: eraser})
	if tools.current != "pencil" {
		t.Errorf("key event switched the tool to %q", tools.current)
	}
}
