package overlay

import "errors"

var (
	// ErrNoParent is returned by z-order operations on an item without a
	// parent group, such as the canvas root.
	ErrNoParent = errors.New("overlay: item has no parent")

	// ErrGrabHeld is returned by Grab when another item already holds the
	// pointer grab.
	ErrGrabHeld = errors.New("overlay: pointer grab already held")

	// ErrStaleItem is returned when an operation is given an item that has
	// been destroyed.
	ErrStaleItem = errors.New("overlay: item has been destroyed")

	// ErrForeignItem is returned when an item belonging to one canvas is
	// added to a group of another.
	ErrForeignItem = errors.New("overlay: item belongs to another canvas")

	// ErrNotChild is returned by Group.Remove for an item that is not a
	// child of the group.
	ErrNotChild = errors.New("overlay: item is not a child of this group")
)

// ErrCycle is returned by Group.Add when the item is the group itself or
// one of its ancestors.
var ErrCycle = errors.New("overlay: item would become its own descendant")
