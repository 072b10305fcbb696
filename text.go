package overlay

import (
	"math"

	"github.com/gogpu/gg/text"
	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/internal/blend"
	"github.com/gogpu/overlay/raster"
)

// Text defaults.
const (
	DefaultTextFill       raster.RGBA32 = 0x33337fff
	DefaultTextBackground raster.RGBA32 = 0x0000007f
	DefaultFontSize                     = 10
	defaultTextBorder                   = 3
)

// TextAnchor selects which point of the text box sits on the item's
// coordinate.
type TextAnchor uint8

const (
	TextAnchorCenter TextAnchor = iota
	TextAnchorLeft
	TextAnchorRight
	TextAnchorBottom
	TextAnchorTop
	// TextAnchorZero puts the start of the baseline on the coordinate.
	TextAnchorZero
	// TextAnchorManual places the box by a relative offset, see
	// SetAnchorManual.
	TextAnchorManual
)

// Text is a label at a document point, such as a measurement readout. It is
// never picked.
type Text struct {
	itemBase
	p        geom.Point
	text     string
	fontSize float64
	border   float64

	background    raster.RGBA32
	useBackground bool

	anchor TextAnchor
	manual geom.Point
	// offset is the baseline start relative to the canvas coordinate,
	// negated.
	offset geom.Point
}

// NewText creates a label reading s at document point p.
func NewText(parent *Group, p geom.Point, s string) *Text {
	t := &Text{
		p:          p,
		text:       s,
		fontSize:   DefaultFontSize,
		border:     defaultTextBorder,
		background: DefaultTextBackground,
	}
	t.init(t, parent, "CanvasItemText")
	t.fill = DefaultTextFill
	return t
}

// Kind returns KindText.
func (t *Text) Kind() Kind { return KindText }

// Coord returns the anchor point in document coordinates.
func (t *Text) Coord() geom.Point { return t.p }

// SetCoord moves the label.
func (t *Text) SetCoord(p geom.Point) {
	if t.p != p {
		t.p = p
		t.RequestUpdate()
	}
}

// Text returns the label text.
func (t *Text) Text() string { return t.text }

// SetText replaces the label text.
func (t *Text) SetText(s string) {
	if t.text != s {
		t.text = s
		t.RequestUpdate()
	}
}

// FontSize returns the font size in canvas units.
func (t *Text) FontSize() float64 { return t.fontSize }

// SetFontSize changes the font size. Non-positive sizes are ignored.
func (t *Text) SetFontSize(size float64) {
	if size > 0 && t.fontSize != size {
		t.fontSize = size
		t.RequestUpdate()
	}
}

// SetBorder sets the padding between the text and the edge of its box.
func (t *Text) SetBorder(border float64) {
	if t.border != border {
		t.border = max(border, 0)
		t.RequestUpdate()
	}
}

// Background returns the box colour and whether the box is drawn.
func (t *Text) Background() (raster.RGBA32, bool) { return t.background, t.useBackground }

// SetBackground turns the background box on and sets its colour.
func (t *Text) SetBackground(c raster.RGBA32) {
	if t.background != c || !t.useBackground {
		t.background = c
		t.useBackground = true
		t.canvas.RedrawArea(t.bounds)
	}
}

// Anchor returns the anchor mode.
func (t *Text) Anchor() TextAnchor { return t.anchor }

// SetAnchor changes the anchor mode.
func (t *Text) SetAnchor(a TextAnchor) {
	if t.anchor != a {
		t.anchor = a
		t.RequestUpdate()
	}
}

// SetAnchorManual switches to TextAnchorManual. pt is the anchor relative
// to the text: (-1, -1) is its bottom left, (1, 1) its top right and
// (0, 0) its centre.
func (t *Text) SetAnchorManual(pt geom.Point) {
	if t.manual != pt || t.anchor != TextAnchorManual {
		t.manual = pt
		t.anchor = TextAnchorManual
		t.RequestUpdate()
	}
}

// ClosestDistanceTo is infinite; text is never hit.
func (t *Text) ClosestDistanceTo(geom.Point) float64 { return math.Inf(1) }

// Contains is always false.
func (t *Text) Contains(geom.Point, float64) bool { return false }

// extents returns the advance width and the height of the text.
func (t *Text) extents() (w, h float64, ok bool) {
	face := t.canvas.face(t.fontSize)
	if face == nil || t.text == "" {
		return 0, 0, false
	}
	w, h = text.Measure(t.text, face)
	return w, h, true
}

// anchorOffset returns the vector from the baseline start to the anchor
// point for a w x h text box.
func (t *Text) anchorOffset(w, h float64) geom.Point {
	off := geom.Pt(w/2, -h/2)
	switch t.anchor {
	case TextAnchorLeft:
		off.X = 0
	case TextAnchorRight:
		off.X = w
	case TextAnchorBottom:
		off.Y = 0
	case TextAnchorTop:
		off.Y = -h
	case TextAnchorZero:
		off = geom.Point{}
	case TextAnchorManual:
		off = geom.Pt((1+t.manual.X)*w/2, -(1+t.manual.Y)*h/2)
	}
	return off
}

// Update measures the text and places its box, rounded out to whole
// canvas units so the background paints without seams.
func (t *Text) Update(aff geom.Affine) {
	t.updateBounds(aff, func() geom.Rect {
		w, h, ok := t.extents()
		if !ok {
			t.offset = geom.Point{}
			return geom.EmptyRect()
		}
		t.offset = t.anchorOffset(w, h)
		p := t.affine.Apply(t.p)
		r := geom.RectFromXYWH(p.X, p.Y-h, w, h).ExpandBy(t.border).Translate(t.offset.Mul(-1))
		ir := r.RoundOutwards()
		return geom.RectFromImage(ir)
	})
}

// Render draws the optional background box and then the text in the fill
// colour.
func (t *Text) Render(buf *raster.Buffer) {
	if !t.shouldRender(buf) || t.text == "" {
		return
	}
	if t.useBackground {
		raster.FillRect(buf, t.bounds, t.background, blend.OpOver)
	}
	ds := float64(buf.DeviceScale)
	ti := rasterizeText(t.text, t.canvas.face(t.fontSize*ds), t.fill)
	if ti == nil {
		return
	}
	base := t.affine.Apply(t.p).Sub(t.offset).Mul(ds)
	at := base.Sub(ti.baseline).Round()
	ti.blit(buf, geom.Translate(at.X, at.Y))
}
