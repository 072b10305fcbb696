package overlay

import (
	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/raster"
)

// Kind identifies the concrete type of an item.
type Kind uint8

const (
	KindGroup Kind = iota
	KindCtrl
	KindCurve
	KindRect
	KindQuad
	KindGuideLine
	KindGrid
	KindText
	KindRotate
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "Group"
	case KindCtrl:
		return "Ctrl"
	case KindCurve:
		return "Curve"
	case KindRect:
		return "Rect"
	case KindQuad:
		return "Quad"
	case KindGuideLine:
		return "GuideLine"
	case KindGrid:
		return "Grid"
	case KindText:
		return "Text"
	case KindRotate:
		return "Rotate"
	}
	return "Unknown"
}

// Palette shared by the item kinds.
const (
	ColorPrimary   raster.RGBA32 = 0x0000ff7f
	ColorSecondary raster.RGBA32 = 0xff00007f
	ColorTertiary  raster.RGBA32 = 0xffff007f

	// DefaultFill and DefaultStroke are the paint of newly created items.
	DefaultFill   = ColorSecondary
	DefaultStroke = ColorPrimary
)

// Item is a node of the canvas tree. The set of implementations is closed:
// *Group, *Ctrl, *Curve, *Rect, *Quad, *GuideLine, *GridItem, *Text and
// *RotatePreview.
//
// Bounds are in canvas space, the item geometry mapped by Affine. They are
// recomputed by Update and are empty until the first update.
//
// Most items only display and are not pickable; groups, handles, guides and
// the rotation preview are.
type Item interface {
	ID() ItemID
	Kind() Kind
	Canvas() *Canvas
	// Parent returns the owning group, or nil for the root and for
	// detached items.
	Parent() *Group
	Name() string
	SetName(name string)

	Bounds() geom.Rect
	Affine() geom.Affine
	NeedsUpdate() bool

	// RequestUpdate marks the item dirty and schedules an update pass. It
	// never recomputes anything itself.
	RequestUpdate()

	// Update recomputes bounds for the parent transform aff. It is a no-op
	// when aff is unchanged and the item is clean; otherwise the previous
	// and the new bounds are both invalidated on the canvas.
	Update(aff geom.Affine)

	// Render paints the item into buf. Nothing is drawn when the item is
	// hidden or its bounds miss the buffer.
	Render(buf *raster.Buffer)

	// Contains reports whether p, in canvas space, hits the item. A zero
	// tolerance asks for exact containment.
	Contains(p geom.Point, tolerance float64) bool

	Visible() bool
	Show()
	Hide()
	Pickable() bool
	SetPickable(pickable bool)

	Fill() raster.RGBA32
	SetFill(c raster.RGBA32)
	Stroke() raster.RGBA32
	SetStroke(c raster.RGBA32)

	Grab(mask EventMask, cursor Cursor) error
	Ungrab()

	RaiseToTop() error
	LowerToBottom() error
	SetZPosition(n int) error
	ZPosition() (int, error)

	IsDescendantOf(ancestor Item) bool

	SetHandler(h EventHandler)
	HandleEvent(ev Event) bool

	// Destroy detaches the item, erases it from the canvas and clears
	// every canvas reference to it. Owned items are destroyed first.
	Destroy()

	base() *itemBase
}

// itemBase carries the state and the behaviour shared by every item kind.
type itemBase struct {
	id     ItemID
	canvas *Canvas
	parent ItemID
	// prev and next link the item into its parent's child list.
	prev, next ItemID

	name        string
	bounds      geom.Rect
	affine      geom.Affine
	needsUpdate bool
	visible     bool
	pickable    bool
	fill        raster.RGBA32
	stroke      raster.RGBA32
	handler     EventHandler
	destroyed   bool
}

// init registers self in the canvas arena and appends it to parent.
func (b *itemBase) init(self Item, parent *Group, name string) {
	b.initDetached(self, parent.canvas, name)
	b.affine = parent.affine
	_ = parent.Add(self)
	b.RequestUpdate()
}

func (b *itemBase) initDetached(self Item, c *Canvas, name string) {
	b.canvas = c
	b.name = name
	b.bounds = geom.EmptyRect()
	b.affine = geom.Identity()
	b.needsUpdate = true
	b.visible = true
	b.pickable = false
	b.fill = DefaultFill
	b.stroke = DefaultStroke
	b.id = c.items.insert(self)
}

func (b *itemBase) base() *itemBase { return b }

// ID returns the arena id of the item.
func (b *itemBase) ID() ItemID { return b.id }

// Canvas returns the canvas owning the item.
func (b *itemBase) Canvas() *Canvas { return b.canvas }

// Parent returns the owning group.
func (b *itemBase) Parent() *Group {
	g, _ := b.canvas.items.get(b.parent).(*Group)
	return g
}

// Name returns the debug name.
func (b *itemBase) Name() string { return b.name }

// SetName sets the debug name.
func (b *itemBase) SetName(name string) { b.name = name }

// Bounds returns the last computed canvas-space bounds.
func (b *itemBase) Bounds() geom.Rect { return b.bounds }

// Affine returns the transform used for the last update.
func (b *itemBase) Affine() geom.Affine { return b.affine }

// NeedsUpdate reports whether the item is dirty.
func (b *itemBase) NeedsUpdate() bool { return b.needsUpdate }

// RequestUpdate marks the item and all its ancestors dirty and asks the
// canvas for an update pass.
func (b *itemBase) RequestUpdate() {
	if b.destroyed {
		return
	}
	b.needsUpdate = true
	if p := b.Parent(); p != nil {
		p.RequestUpdate()
		return
	}
	b.canvas.requestUpdate()
}

// updateBounds runs the update protocol shared by leaf items: compute is
// called with the new affine already installed.
func (b *itemBase) updateBounds(aff geom.Affine, compute func() geom.Rect) {
	if b.affine == aff && !b.needsUpdate {
		return
	}
	b.canvas.RedrawArea(b.bounds)
	b.affine = aff
	b.bounds = compute()
	b.canvas.RedrawArea(b.bounds)
	b.needsUpdate = false
}

// shouldRender gates Render on visibility and buffer overlap.
func (b *itemBase) shouldRender(buf *raster.Buffer) bool {
	if buf == nil {
		Logger().Warn("overlay: render without a buffer", "item", b.name)
		return false
	}
	return b.visible && b.bounds.Intersects(buf.Bounds())
}

// Visible reports whether the item is shown.
func (b *itemBase) Visible() bool { return b.visible }

// Show makes the item visible.
func (b *itemBase) Show() {
	if b.visible {
		return
	}
	b.visible = true
	b.visibilityChanged()
}

// Hide makes the item invisible.
func (b *itemBase) Hide() {
	if !b.visible {
		return
	}
	b.visible = false
	b.visibilityChanged()
}

// visibilityChanged repaints the item and marks the parent dirty, since a
// group's bounds only cover its visible children.
func (b *itemBase) visibilityChanged() {
	b.canvas.RedrawArea(b.bounds)
	b.canvas.SetNeedRepick()
	if p := b.Parent(); p != nil {
		p.RequestUpdate()
	} else if b.needsUpdate {
		b.canvas.requestUpdate()
	}
}

// Pickable reports whether picking considers the item.
func (b *itemBase) Pickable() bool { return b.pickable }

// SetPickable includes or excludes the item from picking.
func (b *itemBase) SetPickable(pickable bool) {
	if b.pickable == pickable {
		return
	}
	b.pickable = pickable
	b.canvas.SetNeedRepick()
}

// Fill returns the fill colour.
func (b *itemBase) Fill() raster.RGBA32 { return b.fill }

// SetFill sets the fill colour and repaints the item.
func (b *itemBase) SetFill(c raster.RGBA32) {
	if b.fill != c {
		b.fill = c
		b.canvas.RedrawArea(b.bounds)
	}
}

// Stroke returns the stroke colour.
func (b *itemBase) Stroke() raster.RGBA32 { return b.stroke }

// SetStroke sets the stroke colour and repaints the item.
func (b *itemBase) SetStroke(c raster.RGBA32) {
	if b.stroke != c {
		b.stroke = c
		b.canvas.RedrawArea(b.bounds)
	}
}

// Grab routes all pointer events matching mask to the item, bypassing
// picking. It fails with ErrGrabHeld while any item holds the grab.
func (b *itemBase) Grab(mask EventMask, cursor Cursor) error {
	c := b.canvas
	if c.GrabbedItem() != nil {
		return ErrGrabHeld
	}
	c.seat.Grab(cursor)
	c.grabbed = b.id
	c.grabMask = mask
	c.current = b.id
	return nil
}

// Ungrab releases the grab. It is ignored unless the item holds it.
func (b *itemBase) Ungrab() {
	c := b.canvas
	if c.grabbed != b.id {
		return
	}
	c.grabbed = ItemID{}
	c.grabMask = 0
	c.seat.Ungrab()
}

// parentOrWarn returns the parent group, logging op when there is none.
func (b *itemBase) parentOrWarn(op string) (*Group, error) {
	p := b.Parent()
	if p == nil {
		Logger().Warn("overlay: "+op+" without a parent", "item", b.name)
		return nil, ErrNoParent
	}
	return p, nil
}

// RaiseToTop moves the item to the end of its parent's children so that it
// paints last.
func (b *itemBase) RaiseToTop() error {
	p, err := b.parentOrWarn("raise to top")
	if err != nil {
		return err
	}
	p.unlink(b)
	p.linkLast(b)
	b.canvas.RedrawArea(b.bounds)
	return nil
}

// LowerToBottom moves the item to the front of its parent's children so
// that it paints first.
func (b *itemBase) LowerToBottom() error {
	p, err := b.parentOrWarn("lower to bottom")
	if err != nil {
		return err
	}
	p.unlink(b)
	p.linkFirst(b)
	b.canvas.RedrawArea(b.bounds)
	return nil
}

// SetZPosition moves the item to position n among its siblings. Positions
// past the end raise the item to the top.
func (b *itemBase) SetZPosition(n int) error {
	p, err := b.parentOrWarn("set z position")
	if err != nil {
		return err
	}
	if n <= 0 {
		return b.LowerToBottom()
	}
	if n > p.count-2 {
		return b.RaiseToTop()
	}
	p.unlink(b)
	pos := 0
	for id := p.first; !id.IsZero(); {
		sib := b.canvas.items.get(id).base()
		if pos == n {
			p.linkBefore(b, sib)
			break
		}
		id = sib.next
		pos++
	}
	b.canvas.RedrawArea(b.bounds)
	return nil
}

// ZPosition returns the index of the item among its siblings.
func (b *itemBase) ZPosition() (int, error) {
	p, err := b.parentOrWarn("get z position")
	if err != nil {
		return -1, err
	}
	pos := 0
	for id := p.first; !id.IsZero(); pos++ {
		if id == b.id {
			return pos, nil
		}
		id = b.canvas.items.get(id).base().next
	}
	return -1, ErrNotChild
}

// IsDescendantOf reports whether ancestor is the item itself or one of its
// ancestors.
func (b *itemBase) IsDescendantOf(ancestor Item) bool {
	if ancestor == nil || ancestor.Canvas() != b.canvas {
		return false
	}
	target := ancestor.ID()
	for id := b.id; !id.IsZero(); {
		if id == target {
			return true
		}
		it := b.canvas.items.get(id)
		if it == nil {
			return false
		}
		id = it.base().parent
	}
	return false
}

// SetHandler installs the listener that HandleEvent forwards to.
func (b *itemBase) SetHandler(h EventHandler) { b.handler = h }

// HandleEvent forwards ev to the registered handler and reports whether it
// was consumed.
func (b *itemBase) HandleEvent(ev Event) bool {
	if b.handler == nil {
		return false
	}
	return b.handler(ev)
}

// Destroy detaches and forgets the item.
func (b *itemBase) Destroy() {
	b.destroy()
}

func (b *itemBase) destroy() {
	if b.destroyed {
		return
	}
	if p := b.Parent(); p != nil {
		p.unlink(b)
		b.parent = ItemID{}
	}
	b.canvas.RedrawArea(b.bounds)
	b.canvas.forget(b.id)
	b.canvas.items.remove(b.id)
	b.destroyed = true
}
