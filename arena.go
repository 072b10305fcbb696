package overlay

import "fmt"

// ItemID is a weak reference to an item of a canvas. It stays comparable
// and cheap to copy after the item is destroyed; Canvas.Lookup then
// reports nil instead of returning a recycled slot's new occupant. The zero
// ItemID never refers to an item.
type ItemID struct {
	index uint32
	gen   uint32
}

// IsZero reports whether id is the zero ItemID.
func (id ItemID) IsZero() bool {
	return id.gen == 0
}

// String formats the id as index:generation.
func (id ItemID) String() string {
	if id.IsZero() {
		return "none"
	}
	return fmt.Sprintf("%d:%d", id.index, id.gen)
}

type slot struct {
	item Item
	gen  uint32
}

// arena owns every live item of a canvas. Freed slots are reused with a
// bumped generation.
type arena struct {
	slots []slot
	free  []uint32
	live  int
}

func (a *arena) insert(it Item) ItemID {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{gen: 1})
	}
	s := &a.slots[idx]
	s.item = it
	a.live++
	return ItemID{index: idx, gen: s.gen}
}

func (a *arena) get(id ItemID) Item {
	if id.IsZero() || int(id.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[id.index]
	if s.gen != id.gen {
		return nil
	}
	return s.item
}

func (a *arena) remove(id ItemID) bool {
	if a.get(id) == nil {
		return false
	}
	s := &a.slots[id.index]
	s.item = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	a.free = append(a.free, id.index)
	a.live--
	return true
}

func (a *arena) len() int {
	return a.live
}
