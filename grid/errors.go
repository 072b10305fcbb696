package grid

import "errors"

var (
	// ErrUnknownUnit is returned when a length carries a unit suffix that
	// is not in the unit table.
	ErrUnknownUnit = errors.New("grid: unknown unit")

	// ErrBadQuantity is returned when a length does not start with a
	// number.
	ErrBadQuantity = errors.New("grid: malformed quantity")

	// ErrNotGrid is returned by ReadXML when the element is not a grid
	// node.
	ErrNotGrid = errors.New("grid: element is not a grid")

	// ErrClosed is returned when attaching a display to a closed grid.
	ErrClosed = errors.New("grid: grid is closed")
)
