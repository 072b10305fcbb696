package overlay

import (
	"iter"

	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/raster"
)

// Group is an item that owns an ordered list of children. List order is
// paint order: later children paint on top and win picking.
//
// Children are linked through their own prev/next ids, so removal and
// raising or lowering to either end take constant time.
type Group struct {
	itemBase
	first, last ItemID
	count       int
}

// NewGroup creates an empty group as the last child of parent.
func NewGroup(parent *Group, name string) *Group {
	g := &Group{}
	g.init(g, parent, name)
	g.pickable = true
	return g
}

func newRootGroup(c *Canvas) *Group {
	g := &Group{}
	g.initDetached(g, c, "root")
	g.pickable = true
	return g
}

// Kind returns KindGroup.
func (g *Group) Kind() Kind { return KindGroup }

// Len returns the number of children.
func (g *Group) Len() int { return g.count }

// Children iterates the children in paint order. The iteration tolerates
// removal of the child being visited.
func (g *Group) Children() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for id := g.first; !id.IsZero(); {
			it := g.canvas.items.get(id)
			if it == nil {
				return
			}
			next := it.base().next
			if !yield(it) {
				return
			}
			id = next
		}
	}
}

// backward iterates the children from topmost to bottommost.
func (g *Group) backward() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for id := g.last; !id.IsZero(); {
			it := g.canvas.items.get(id)
			if it == nil {
				return
			}
			prev := it.base().prev
			if !yield(it) {
				return
			}
			id = prev
		}
	}
}

// Add appends item as the topmost child, detaching it from its previous
// parent first. It does not request an update.
func (g *Group) Add(item Item) error {
	b := item.base()
	switch {
	case b.destroyed:
		return ErrStaleItem
	case b.canvas != g.canvas:
		Logger().Warn("overlay: adding an item of another canvas", "item", b.name, "group", g.name)
		return ErrForeignItem
	case g.IsDescendantOf(item):
		Logger().Warn("overlay: adding a group to its own subtree", "item", b.name, "group", g.name)
		return ErrCycle
	}
	if p := item.Parent(); p != nil {
		p.unlink(b)
	}
	b.parent = g.id
	g.linkLast(b)
	return nil
}

// Remove detaches item from the group and destroys it when destroy is set.
// An item's own Destroy detaches it without coming back through Remove.
func (g *Group) Remove(item Item, destroy bool) error {
	b := item.base()
	switch {
	case b.destroyed:
		return ErrStaleItem
	case b.canvas != g.canvas:
		Logger().Warn("overlay: removing an item of another canvas", "item", b.name, "group", g.name)
		return ErrForeignItem
	case b.parent != g.id:
		return ErrNotChild
	}
	g.unlink(b)
	b.parent = ItemID{}
	g.canvas.RedrawArea(b.bounds)
	g.canvas.SetNeedRepick()
	if destroy {
		item.Destroy()
	}
	return nil
}

// Clear destroys every child.
func (g *Group) Clear() {
	for !g.first.IsZero() {
		it := g.canvas.items.get(g.first)
		if it == nil {
			g.first, g.last, g.count = ItemID{}, ItemID{}, 0
			return
		}
		it.Destroy()
	}
}

func (g *Group) linkLast(b *itemBase) {
	b.prev, b.next = g.last, ItemID{}
	if last := g.canvas.items.get(g.last); last != nil {
		last.base().next = b.id
	} else {
		g.first = b.id
	}
	g.last = b.id
	g.count++
}

func (g *Group) linkFirst(b *itemBase) {
	b.prev, b.next = ItemID{}, g.first
	if first := g.canvas.items.get(g.first); first != nil {
		first.base().prev = b.id
	} else {
		g.last = b.id
	}
	g.first = b.id
	g.count++
}

// linkBefore inserts b in front of sib, which must be a child.
func (g *Group) linkBefore(b, sib *itemBase) {
	b.prev, b.next = sib.prev, sib.id
	if prev := g.canvas.items.get(sib.prev); prev != nil {
		prev.base().next = b.id
	} else {
		g.first = b.id
	}
	sib.prev = b.id
	g.count++
}

func (g *Group) unlink(b *itemBase) {
	if prev := g.canvas.items.get(b.prev); prev != nil {
		prev.base().next = b.next
	} else {
		g.first = b.next
	}
	if next := g.canvas.items.get(b.next); next != nil {
		next.base().prev = b.prev
	} else {
		g.last = b.prev
	}
	b.prev, b.next = ItemID{}, ItemID{}
	g.count--
}

// Update updates every visible child and sets the group bounds to the union
// of theirs.
func (g *Group) Update(aff geom.Affine) {
	if g.affine == aff && !g.needsUpdate {
		return
	}
	g.affine = aff
	bounds := geom.EmptyRect()
	for child := range g.Children() {
		if !child.Visible() {
			continue
		}
		child.Update(aff)
		bounds = bounds.Union(child.Bounds())
	}
	g.bounds = bounds
	g.needsUpdate = false
}

// Render paints the children in list order.
func (g *Group) Render(buf *raster.Buffer) {
	if !g.shouldRender(buf) {
		return
	}
	for child := range g.Children() {
		child.Render(buf)
	}
}

// Contains reports whether p lies inside the group bounds.
func (g *Group) Contains(p geom.Point, tolerance float64) bool {
	if tolerance == 0 {
		return g.bounds.InteriorContains(p)
	}
	return g.bounds.ExpandBy(tolerance).Contains(p)
}

// PickItem returns the topmost visible and pickable leaf under p, descending
// into nested groups, or nil.
func (g *Group) PickItem(p geom.Point) Item {
	return g.pick(p, 0)
}

func (g *Group) pick(p geom.Point, tolerance float64) Item {
	for child := range g.backward() {
		if !child.Visible() || !child.Pickable() || !child.Contains(p, tolerance) {
			continue
		}
		if sub, ok := child.(*Group); ok {
			if hit := sub.pick(p, tolerance); hit != nil {
				return hit
			}
			continue
		}
		return child
	}
	return nil
}

// UpdateChildCtrlSizes resizes every handle in the subtree to the size
// preference index.
func (g *Group) UpdateChildCtrlSizes(index int) {
	for child := range g.Children() {
		switch it := child.(type) {
		case *Group:
			it.UpdateChildCtrlSizes(index)
		case *Ctrl:
			it.SetSizeViaIndex(index)
		}
	}
}

// Destroy destroys all children, then the group itself.
func (g *Group) Destroy() {
	if g.destroyed {
		return
	}
	g.Clear()
	g.destroy()
}
