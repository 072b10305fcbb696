package overlay

import (
	"image"
	"math"

	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/raster"
)

// CtrlType is the role of a handle. It selects the default shape and the
// size formula.
type CtrlType uint8

const (
	CtrlTypeDefault CtrlType = iota
	CtrlTypeAdjHandle
	CtrlTypeAdjSkew
	CtrlTypeAdjRotate
	CtrlTypeAdjCenter
	CtrlTypeAdjSAlign
	CtrlTypeAdjCAlign
	CtrlTypeAdjMAlign
	CtrlTypeAnchor
	CtrlTypePoint
	CtrlTypeRotate
	CtrlTypeMargin
	CtrlTypeCenter
	CtrlTypeSizer
	CtrlTypeShaper
	CtrlTypeMarker
	CtrlTypeLPE
	CtrlTypeNodeAuto
	CtrlTypeNodeCusp
	CtrlTypeNodeSmooth
	CtrlTypeNodeSymmetrical
	CtrlTypeMesh
	CtrlTypeInvisipoint
	CtrlTypeGuide
)

var ctrlTypeNames = [...]string{
	"Default", "AdjHandle", "AdjSkew", "AdjRotate", "AdjCenter", "AdjSAlign",
	"AdjCAlign", "AdjMAlign", "Anchor", "Point", "Rotate", "Margin", "Center",
	"Sizer", "Shaper", "Marker", "LPE", "NodeAuto", "NodeCusp", "NodeSmooth",
	"NodeSymmetrical", "Mesh", "Invisipoint", "Guide",
}

// String returns the type name.
func (t CtrlType) String() string {
	if int(t) < len(ctrlTypeNames) {
		return ctrlTypeNames[t]
	}
	return "Unknown"
}

// CtrlShape is the glyph drawn for a handle.
type CtrlShape uint8

const (
	CtrlShapeSquare CtrlShape = iota
	CtrlShapeDiamond
	CtrlShapeCircle
	CtrlShapeTriangle
	CtrlShapeCross
	CtrlShapePlus
	CtrlShapePivot
	CtrlShapeDArrow
	CtrlShapeSArrow
	CtrlShapeCArrow
	CtrlShapeSAlign
	CtrlShapeCAlign
	CtrlShapeMAlign
	CtrlShapeBitmap
	CtrlShapeImage
)

var ctrlShapeNames = [...]string{
	"Square", "Diamond", "Circle", "Triangle", "Cross", "Plus", "Pivot",
	"DArrow", "SArrow", "CArrow", "SAlign", "CAlign", "MAlign", "Bitmap", "Image",
}

// String returns the shape name.
func (s CtrlShape) String() string {
	if int(s) < len(ctrlShapeNames) {
		return ctrlShapeNames[s]
	}
	return "Unknown"
}

// orients reports whether the anchor turns the glyph instead of shifting
// it along the compass.
func (s CtrlShape) orients() bool {
	switch s {
	case CtrlShapeDArrow, CtrlShapeSArrow, CtrlShapeCArrow, CtrlShapeSAlign, CtrlShapeCAlign,
		CtrlShapePivot, CtrlShapeMAlign:
		return true
	}
	return false
}

// CtrlMode selects how the glyph is composited.
type CtrlMode uint8

const (
	// CtrlModeXOR blends the glyph with an approximate XOR so it stays
	// visible on any background.
	CtrlModeXOR CtrlMode = iota

	// CtrlModeColor paints the glyph colours over the background.
	CtrlModeColor
)

// Anchor is the point of a handle placed on its position.
type Anchor uint8

const (
	AnchorCenter Anchor = iota
	AnchorN
	AnchorNE
	AnchorE
	AnchorSE
	AnchorS
	AnchorSW
	AnchorW
	AnchorNW
)

// angle returns the compass direction of the anchor in canvas space, east
// being 0 and south a quarter turn clockwise.
func (a Anchor) angle() float64 {
	switch a {
	case AnchorE:
		return 0
	case AnchorSE:
		return math.Pi / 4
	case AnchorS:
		return math.Pi / 2
	case AnchorSW:
		return 3 * math.Pi / 4
	case AnchorW:
		return math.Pi
	case AnchorNW:
		return 5 * math.Pi / 4
	case AnchorN:
		return 3 * math.Pi / 2
	case AnchorNE:
		return 7 * math.Pi / 4
	}
	return 0
}

// Ctrl is a handle: a small pixel-aligned glyph drawn at a document point.
// Its width and height are odd so that it centres exactly on a pixel.
type Ctrl struct {
	itemBase
	typ      CtrlType
	shape    CtrlShape
	mode     CtrlMode
	anchor   Anchor
	position geom.Point
	width    int
	height   int
	extra    int
	angle    float64
	pixbuf   image.Image

	// cache is the rasterized glyph; nil when stale.
	cache *ctrlCache
}

// NewCtrl creates a handle of type typ at document point p. Shape and size
// follow from the type.
func NewCtrl(parent *Group, typ CtrlType, p geom.Point) *Ctrl {
	c := &Ctrl{typ: typ, position: p}
	c.init(c, parent, "Ctrl:"+typ.String())
	c.pickable = true
	c.setShapeDefault()
	c.SetSizeDefault()
	return c
}

// NewCtrlShape creates a handle with an explicit shape at document point p.
// Its size is zero until SetSize is called.
func NewCtrlShape(parent *Group, shape CtrlShape, p geom.Point) *Ctrl {
	c := &Ctrl{shape: shape, position: p}
	c.init(c, parent, "Ctrl:"+shape.String())
	c.pickable = true
	return c
}

// Kind returns KindCtrl.
func (c *Ctrl) Kind() Kind { return KindCtrl }

// Type returns the handle role.
func (c *Ctrl) Type() CtrlType { return c.typ }

// Shape returns the glyph shape.
func (c *Ctrl) Shape() CtrlShape { return c.shape }

// Mode returns the composite mode.
func (c *Ctrl) Mode() CtrlMode { return c.mode }

// Anchor returns the anchor.
func (c *Ctrl) Anchor() Anchor { return c.anchor }

// Position returns the document position.
func (c *Ctrl) Position() geom.Point { return c.position }

// Angle returns the glyph rotation in radians.
func (c *Ctrl) Angle() float64 { return c.angle }

// Size returns the width and height in canvas units.
func (c *Ctrl) Size() (width, height int) { return c.width, c.height }

// SetPosition moves the handle to document point p.
func (c *Ctrl) SetPosition(p geom.Point) {
	if c.position != p {
		c.position = p
		c.RequestUpdate()
	}
}

// ClosestDistanceTo returns the distance from canvas point p to the handle
// position.
func (c *Ctrl) ClosestDistanceTo(p geom.Point) float64 {
	return p.Distance(c.affine.Apply(c.position))
}

// Contains tests the bounds when tolerance is zero, and the distance to the
// handle position otherwise.
func (c *Ctrl) Contains(p geom.Point, tolerance float64) bool {
	if tolerance == 0 {
		return c.bounds.InteriorContains(p)
	}
	return c.ClosestDistanceTo(p) <= tolerance
}

// Update places the glyph bounds on the transformed position.
func (c *Ctrl) Update(aff geom.Affine) {
	c.updateBounds(aff, c.computeBounds)
}

func (c *Ctrl) computeBounds() geom.Rect {
	if c.width < 1 || c.height < 1 {
		return geom.EmptyRect()
	}
	w, h := float64(c.width), float64(c.height)
	b := geom.RectFromXYWH(-(w/2 - 0.5), -(h/2 - 0.5), w, h)

	var d geom.Point
	if c.shape.orients() {
		d = c.orient()
	} else {
		wh, hh := float64(c.width/2), float64(c.height/2)
		switch c.anchor {
		case AnchorNW, AnchorW, AnchorSW:
			d.X = wh
		case AnchorNE, AnchorE, AnchorSE:
			d.X = -wh
		}
		switch c.anchor {
		case AnchorNW, AnchorN, AnchorNE:
			d.Y = hh
		case AnchorSW, AnchorS, AnchorSE:
			d.Y = -hh
		}
	}
	pos := c.affine.Apply(c.position).Floor()
	return b.Translate(d).Translate(pos)
}

// orient turns rotation-sensitive glyphs to point along the anchor
// direction, following the view rotation, and returns the offset that keeps
// the glyph clear of the anchored point.
func (c *Ctrl) orient() geom.Point {
	rot := c.affine.RotationAngle()
	angle := rot
	var d geom.Point
	switch c.shape {
	case CtrlShapePivot, CtrlShapeMAlign:
	default:
		if c.anchor == AnchorCenter {
			break
		}
		angle += c.anchor.angle()
		half := float64(c.width) / 2
		sin, cos := math.Sincos(angle)
		d = geom.Pt(-(half+2)*cos, -(half+2)*sin)
		switch c.shape {
		case CtrlShapeCArrow:
			angle += 5 * math.Pi / 4
		case CtrlShapeSArrow:
			angle += math.Pi / 2
		case CtrlShapeSAlign:
			d = geom.Pt(-(half/2+2)*cos, -(half/2+2)*sin)
			angle -= math.Pi / 2
		case CtrlShapeCAlign:
			angle -= math.Pi / 4
			sin, cos = math.Sincos(angle)
			d = geom.Pt((half/2+2)*(sin-cos), (half/2+2)*(-sin-cos))
		}
	}
	if c.angle != angle {
		c.angle = angle
		c.cache = nil
	}
	return d.Round()
}

// SetFill changes the fill colour, invalidating the glyph.
func (c *Ctrl) SetFill(col raster.RGBA32) {
	if c.fill != col {
		c.fill = col
		c.cache = nil
		c.canvas.RedrawArea(c.bounds)
	}
}

// SetStroke changes the stroke colour, invalidating the glyph.
func (c *Ctrl) SetStroke(col raster.RGBA32) {
	if c.stroke != col {
		c.stroke = col
		c.cache = nil
		c.canvas.RedrawArea(c.bounds)
	}
}

// SetShape changes the glyph shape.
func (c *Ctrl) SetShape(shape CtrlShape) {
	if c.shape != shape {
		c.shape = shape
		c.cache = nil
		c.RequestUpdate()
	}
}

func (c *Ctrl) setShapeDefault() {
	var shape CtrlShape
	switch c.typ {
	case CtrlTypeAdjHandle, CtrlTypeNodeAuto, CtrlTypeRotate:
		shape = CtrlShapeCircle
	case CtrlTypeShaper, CtrlTypeLPE, CtrlTypeNodeCusp:
		shape = CtrlShapeDiamond
	case CtrlTypePoint:
		shape = CtrlShapeCross
	case CtrlTypeAdjSkew:
		shape = CtrlShapeDArrow
	case CtrlTypeAdjRotate:
		shape = CtrlShapeCArrow
	case CtrlTypeAdjCenter:
		shape = CtrlShapePivot
	case CtrlTypeAdjSAlign:
		shape = CtrlShapeSAlign
	case CtrlTypeAdjCAlign:
		shape = CtrlShapeCAlign
	case CtrlTypeAdjMAlign:
		shape = CtrlShapeMAlign
	default:
		shape = CtrlShapeSquare
	}
	c.SetShape(shape)
}

// SetMode changes the composite mode.
func (c *Ctrl) SetMode(mode CtrlMode) {
	if c.mode != mode {
		c.mode = mode
		c.cache = nil
		c.RequestUpdate()
	}
}

// SetPixbuf sets the bitmap used by the Bitmap and Image shapes. The handle
// takes the bitmap size, and SetSize is ignored from then on.
func (c *Ctrl) SetPixbuf(img image.Image) {
	if img == nil || img == c.pixbuf {
		return
	}
	c.pixbuf = img
	c.width = img.Bounds().Dx()
	c.height = img.Bounds().Dy()
	c.cache = nil
	c.RequestUpdate()
}

// SetSize sets the glyph size in canvas units; the extra size is added on
// top. Sizes should be odd.
func (c *Ctrl) SetSize(size int) {
	if c.pixbuf != nil {
		return
	}
	if c.width != size+c.extra || c.height != size+c.extra {
		c.width = size + c.extra
		c.height = size + c.extra
		c.cache = nil
		c.RequestUpdate()
	}
}

// SetSizeViaIndex sets the size from a preference index in 1..7. Point-like
// and node handles are two units larger than the rest; out-of-range
// indices fall back to 3.
func (c *Ctrl) SetSizeViaIndex(index int) {
	if index < 1 || index > 7 {
		Logger().Warn("overlay: handle size index out of range", "index", index, "item", c.name)
		index = 3
	}
	c.SetSize(ctrlSizeForIndex(c.typ, index))
}

func ctrlSizeForIndex(typ CtrlType, index int) int {
	switch typ {
	case CtrlTypePoint, CtrlTypeRotate, CtrlTypeSizer, CtrlTypeShaper, CtrlTypeLPE,
		CtrlTypeNodeAuto, CtrlTypeNodeCusp:
		return index*2 + 3
	case CtrlTypeInvisipoint:
		return 1
	}
	return index*2 + 1
}

// SetSizeDefault sets the size from the canvas handle size preference.
func (c *Ctrl) SetSizeDefault() {
	c.SetSizeViaIndex(c.canvas.handleSize)
}

// SetSizeExtra enlarges the glyph by extra units, for example to mark a
// selected node.
func (c *Ctrl) SetSizeExtra(extra int) {
	if c.extra != extra && c.pixbuf == nil {
		c.width += extra - c.extra
		c.height += extra - c.extra
		c.extra = extra
		c.cache = nil
		c.RequestUpdate()
	}
}

// SetType changes the role, resetting shape and size to its defaults.
func (c *Ctrl) SetType(typ CtrlType) {
	if c.typ != typ {
		c.typ = typ
		c.setShapeDefault()
		c.SetSizeDefault()
	}
}

// SetAngle sets the rotation of the Triangle glyph in radians.
func (c *Ctrl) SetAngle(angle float64) {
	if c.angle != angle {
		c.angle = angle
		c.cache = nil
		c.RequestUpdate()
	}
}

// SetAnchor changes the anchor.
func (c *Ctrl) SetAnchor(anchor Anchor) {
	if c.anchor != anchor {
		c.anchor = anchor
		c.RequestUpdate()
	}
}
