package overlay

import (
	"github.com/gogpu/overlay/geom"
)

// EventType identifies the kind of an input event.
type EventType uint8

const (
	EventMotion EventType = iota
	EventButtonPress
	EventButtonRelease
	EventEnter
	EventLeave
	EventKeyPress
	EventKeyRelease
	EventScroll
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventMotion:
		return "motion"
	case EventButtonPress:
		return "button-press"
	case EventButtonRelease:
		return "button-release"
	case EventEnter:
		return "enter"
	case EventLeave:
		return "leave"
	case EventKeyPress:
		return "key-press"
	case EventKeyRelease:
		return "key-release"
	case EventScroll:
		return "scroll"
	}
	return "unknown"
}

// EventMask selects the event types delivered to a grabbing item.
type EventMask uint16

const (
	MaskPointerMotion EventMask = 1 << iota
	MaskButtonPress
	MaskButtonRelease
	MaskEnter
	MaskLeave
	MaskKeyPress
	MaskKeyRelease
	MaskScroll

	MaskAll = MaskPointerMotion | MaskButtonPress | MaskButtonRelease |
		MaskEnter | MaskLeave | MaskKeyPress | MaskKeyRelease | MaskScroll
)

func (t EventType) mask() EventMask {
	return EventMask(1) << t
}

// Modifier is the keyboard and button state accompanying an event.
type Modifier uint16

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
	ModButton1
	ModButton2
	ModButton3

	modButtons = ModButton1 | ModButton2 | ModButton3
)

// Has reports whether all of m are set.
func (s Modifier) Has(m Modifier) bool {
	return s&m == m
}

// InputSource classifies the device that produced a pointer event.
type InputSource uint8

const (
	SourceMouse InputSource = iota
	SourcePen
	SourceEraser
	SourceCursor
	SourceTouchpad
)

// String returns the source name.
func (s InputSource) String() string {
	switch s {
	case SourceMouse:
		return "mouse"
	case SourcePen:
		return "pen"
	case SourceEraser:
		return "eraser"
	case SourceCursor:
		return "cursor"
	case SourceTouchpad:
		return "touchpad"
	}
	return "unknown"
}

// Device identifies the physical device behind an event.
type Device struct {
	Name   string
	Source InputSource
}

// Event is a platform-neutral input event. Pos is in canvas space.
type Event struct {
	Type   EventType
	Pos    geom.Point
	Button int
	Key    string
	Mods   Modifier
	Delta  geom.Point
	Device Device
}

// EventHandler receives events delivered to an item and reports whether it
// consumed them. Unconsumed events bubble to the parent.
type EventHandler func(ev Event) bool

// Cursor names the pointer shape requested while an item holds the grab.
type Cursor string

// Seat is the platform pointer grab. The default seat does nothing.
type Seat interface {
	Grab(cursor Cursor)
	Ungrab()
}

type nopSeat struct{}

func (nopSeat) Grab(Cursor) {}
func (nopSeat) Ungrab()     {}
