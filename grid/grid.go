package grid

import (
	"maps"
	"slices"

	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/raster"
)

// Type is the grid geometry.
type Type uint8

const (
	// TypeRectangular has lines parallel to the document axes.
	TypeRectangular Type = iota
	// TypeAxonometric has vertical lines and two slanted families.
	TypeAxonometric
)

// String returns the display name of the grid type.
func (t Type) String() string {
	if t == TypeAxonometric {
		return "Axonometric grid"
	}
	return "Rectangular grid"
}

// SVGName returns the value of the type attribute.
func (t Type) SVGName() string {
	if t == TypeAxonometric {
		return "axonomgrid"
	}
	return "xygrid"
}

// TypeFromSVGName maps a type attribute to a Type. Unknown names are
// rectangular.
func TypeFromSVGName(name string) Type {
	if name == TypeAxonometric.SVGName() {
		return TypeAxonometric
	}
	return TypeRectangular
}

// Default colours of new grids.
const (
	DefaultColor    raster.RGBA32 = 0x3f3fff20
	DefaultEmpColor raster.RGBA32 = 0x3f3fff40
)

// DefaultEmpSpacing is the default emphasis interval.
const DefaultEmpSpacing = 5

// Display is a canvas item showing a grid. The grid asks its displays to
// update whenever the configuration changes and tells them when it is
// closed.
type Display interface {
	RequestUpdate()
	EngineClosed()
}

// Grid is a document grid. It is not safe for concurrent use.
type Grid struct {
	typ Type

	origin  geom.Point
	spacing geom.Point
	// angleX and angleZ are the axonometric angles in degrees.
	angleX, angleZ float64

	color, empColor raster.RGBA32
	empSpacing      int
	dotted          bool
	visible         bool
	unit            *Unit

	// legacy is set when lengths were given in absolute units, as older
	// documents did; pixel when that unit was px.
	legacy, pixel bool

	// userScale converts user units to px.
	userScale geom.Point

	pageColor      raster.RGBA32
	xray           bool
	noEmpZoomedOut bool
	attrs          map[string]string
	displays       []Display
	closed         bool
	snapper        *Snapper
}

// Option configures a Grid during creation.
type Option func(*Grid)

// New creates a grid of type typ.
func New(typ Type, opts ...Option) *Grid {
	g := &Grid{
		typ:        typ,
		spacing:    geom.Pt(1, 1),
		angleX:     30,
		angleZ:     30,
		color:      DefaultColor,
		empColor:   DefaultEmpColor,
		empSpacing: DefaultEmpSpacing,
		visible:    true,
		unit:       Px,
		userScale:  geom.Pt(1, 1),
		pageColor:  0xffffffff,
		attrs:      make(map[string]string),
	}
	g.snapper = newSnapper(g)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WithOrigin sets the origin in document units.
func WithOrigin(p geom.Point) Option {
	return func(g *Grid) { g.origin = p }
}

// WithSpacing sets the distance between lines in document units. For
// axonometric grids only the y spacing is used. Non-positive components
// are ignored.
func WithSpacing(s geom.Point) Option {
	return func(g *Grid) {
		if s.X > 0 {
			g.spacing.X = s.X
		}
		if s.Y > 0 {
			g.spacing.Y = s.Y
		}
	}
}

// WithColors sets the minor and major line colours.
func WithColors(minor, major raster.RGBA32) Option {
	return func(g *Grid) { g.color, g.empColor = minor, major }
}

// WithEmphasis sets the emphasis interval. Values below 1 are ignored.
func WithEmphasis(n int) Option {
	return func(g *Grid) {
		if n >= 1 {
			g.empSpacing = n
		}
	}
}

// WithDotted draws dots at the intersections instead of lines.
func WithDotted(dotted bool) Option {
	return func(g *Grid) { g.dotted = dotted }
}

// WithAngles sets the axonometric x and z angles in degrees.
func WithAngles(x, z float64) Option {
	return func(g *Grid) { g.angleX, g.angleZ = x, z }
}

// WithPageColor sets the page colour x-ray mode blends over.
func WithPageColor(c raster.RGBA32) Option {
	return func(g *Grid) { g.pageColor = c }
}

// WithXRay blends the line colours over the page colour.
func WithXRay(on bool) Option {
	return func(g *Grid) { g.xray = on }
}

// WithNoEmphasisWhenZoomedOut draws every line in the minor colour while
// any axis is scaled.
func WithNoEmphasisWhenZoomedOut(on bool) Option {
	return func(g *Grid) { g.noEmpZoomedOut = on }
}

// WithUserScale sets the size of one user unit in px, the ratio of the
// document size to its viewBox.
func WithUserScale(x, y float64) Option {
	return func(g *Grid) {
		if x > 0 && y > 0 {
			g.userScale = geom.Pt(x, y)
		}
	}
}

// Type returns the grid type.
func (g *Grid) Type() Type { return g.typ }

// Origin returns the origin in document units.
func (g *Grid) Origin() geom.Point { return g.origin }

// Spacing returns the line spacing in document units.
func (g *Grid) Spacing() geom.Point { return g.spacing }

// Angles returns the axonometric angles in degrees.
func (g *Grid) Angles() (x, z float64) { return g.angleX, g.angleZ }

// Colors returns the minor and major line colours.
func (g *Grid) Colors() (minor, major raster.RGBA32) { return g.color, g.empColor }

// EmpSpacing returns the emphasis interval.
func (g *Grid) EmpSpacing() int { return g.empSpacing }

// Dotted reports whether the grid is drawn as dots.
func (g *Grid) Dotted() bool { return g.dotted }

// Unit returns the display unit.
func (g *Grid) Unit() *Unit { return g.unit }

// IsLegacy reports whether lengths were read in absolute units.
func (g *Grid) IsLegacy() bool { return g.legacy }

// IsPixel reports whether the legacy unit was px.
func (g *Grid) IsPixel() bool { return g.pixel }

// IsEnabled reports whether the grid takes part in snapping and display.
func (g *Grid) IsEnabled() bool { return g.snapper.Enabled() }

// IsVisible reports whether the grid is enabled and shown.
func (g *Grid) IsVisible() bool { return g.IsEnabled() && g.visible }

// Snapper returns the grid's snapper.
func (g *Grid) Snapper() *Snapper { return g.snapper }

// XRay reports whether x-ray blending is on.
func (g *Grid) XRay() bool { return g.xray }

// SetXRay turns x-ray blending on or off.
func (g *Grid) SetXRay(on bool) {
	if g.xray != on {
		g.xray = on
		g.notify()
	}
}

// SetNoEmphasisWhenZoomedOut sets whether scaled grids drop their
// emphasis colour.
func (g *Grid) SetNoEmphasisWhenZoomedOut(on bool) {
	if g.noEmpZoomedOut != on {
		g.noEmpZoomedOut = on
		g.notify()
	}
}

// SetPageColor sets the colour x-ray mode blends over.
func (g *Grid) SetPageColor(c raster.RGBA32) {
	if g.pageColor != c {
		g.pageColor = c
		g.notify()
	}
}

// Attr returns the raw value of a configuration attribute.
func (g *Grid) Attr(key string) (string, bool) {
	v, ok := g.attrs[normalizeKey(key)]
	return v, ok
}

// Attrs returns a copy of the configuration attributes.
func (g *Grid) Attrs() map[string]string {
	return maps.Clone(g.attrs)
}

// Attach registers a display. Attaching the same display twice is a no-op.
func (g *Grid) Attach(d Display) error {
	if g.closed {
		return ErrClosed
	}
	if !slices.Contains(g.displays, d) {
		g.displays = append(g.displays, d)
	}
	return nil
}

// Detach removes a display. It does not touch the display itself.
func (g *Grid) Detach(d Display) {
	g.displays = slices.DeleteFunc(g.displays, func(x Display) bool { return x == d })
}

// Displays returns the number of attached displays.
func (g *Grid) Displays() int { return len(g.displays) }

// Close tells every display that the grid is gone and detaches them.
func (g *Grid) Close() {
	if g.closed {
		return
	}
	g.closed = true
	displays := slices.Clone(g.displays)
	g.displays = nil
	for _, d := range displays {
		d.EngineClosed()
	}
}

// notify asks every display to update.
func (g *Grid) notify() {
	for _, d := range g.displays {
		d.RequestUpdate()
	}
}
