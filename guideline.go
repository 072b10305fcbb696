package overlay

import (
	"math"

	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/grid"
	"github.com/gogpu/overlay/internal/blend"
	"github.com/gogpu/overlay/raster"
)

// Guide handle looks.
const (
	guideLockedColor   raster.RGBA32 = 0x0000ff80
	guideUnlockedColor raster.RGBA32 = 0xff000080
	guideLockedSize                  = 7
	guideUnlockedSize                = 5
)

// guideLabelSize is the label font size in canvas units.
const guideLabelSize = 10

// guideLabelOffset lifts the label baseline off the line.
const guideLabelOffset = 5

// GuideLine is an infinite guide through an origin point, perpendicular to
// its normal. The guide owns a display-only handle at the origin; the line
// itself is what gets picked.
type GuideLine struct {
	itemBase
	origin   geom.Point
	normal   geom.Point
	label    string
	locked   bool
	inverted bool
	ctrl     *Ctrl
}

// NewGuideLine creates a guide in parent. Origin and normal are in
// document coordinates; a zero normal is replaced by (0, 1), a horizontal
// guide.
func NewGuideLine(parent *Group, label string, origin, normal geom.Point) *GuideLine {
	if normal == (geom.Point{}) {
		normal = geom.Pt(0, 1)
	}
	g := &GuideLine{label: label, origin: origin, normal: normal}
	g.init(g, parent, "GuideLine:"+label)
	g.pickable = true
	g.bounds = geom.InfiniteRect()

	g.ctrl = NewCtrlShape(parent, CtrlShapeCircle, origin)
	g.ctrl.SetName("GuideLine:Ctrl:" + label)
	g.ctrl.SetPickable(false)
	g.applyLockLook()
	return g
}

// Kind returns KindGuideLine.
func (g *GuideLine) Kind() Kind { return KindGuideLine }

// Origin returns the origin in document coordinates.
func (g *GuideLine) Origin() geom.Point { return g.origin }

// Normal returns the normal in document coordinates.
func (g *GuideLine) Normal() geom.Point { return g.normal }

// Label returns the label text.
func (g *GuideLine) Label() string { return g.label }

// Locked reports whether the guide is locked.
func (g *GuideLine) Locked() bool { return g.locked }

// Handle returns the origin handle owned by the guide.
func (g *GuideLine) Handle() *Ctrl { return g.ctrl }

// SetOrigin moves the guide and its handle.
func (g *GuideLine) SetOrigin(origin geom.Point) {
	if g.origin == origin {
		return
	}
	g.origin = origin
	g.ctrl.SetPosition(origin)
	g.RequestUpdate()
}

// SetNormal turns the guide.
func (g *GuideLine) SetNormal(normal geom.Point) {
	if g.normal == normal || normal == (geom.Point{}) {
		return
	}
	g.normal = normal
	g.RequestUpdate()
}

// SetLabel replaces the label text.
func (g *GuideLine) SetLabel(label string) {
	if g.label == label {
		return
	}
	g.label = label
	g.name = "GuideLine:" + label
	g.ctrl.SetName("GuideLine:Ctrl:" + label)
	g.RequestUpdate()
}

// SetLocked switches the handle between the locked look, a blue cross, and
// the unlocked look, a red circle. Locking does not change what the guide
// accepts; that is up to the tool handling its events.
func (g *GuideLine) SetLocked(locked bool) {
	if g.locked == locked {
		return
	}
	g.locked = locked
	g.applyLockLook()
}

func (g *GuideLine) applyLockLook() {
	if g.locked {
		g.ctrl.SetShape(CtrlShapeCross)
		g.ctrl.SetStroke(guideLockedColor)
		g.ctrl.SetSize(guideLockedSize)
		return
	}
	g.ctrl.SetShape(CtrlShapeCircle)
	g.ctrl.SetStroke(guideUnlockedColor)
	g.ctrl.SetSize(guideUnlockedSize)
}

// SetInverted draws the line with difference blending.
func (g *GuideLine) SetInverted(inverted bool) {
	if g.inverted != inverted {
		g.inverted = inverted
		g.canvas.RedrawArea(g.bounds)
	}
}

// SnapLine returns the guide as a snapping candidate in document
// coordinates.
func (g *GuideLine) SnapLine() grid.SnapLine {
	return grid.SnapLine{Normal: g.normal, Point: g.origin}
}

func (g *GuideLine) canvasLine() geom.Line {
	return geom.Line{
		Origin: g.affine.Apply(g.origin),
		Vector: g.affine.ApplyVector(g.normal).Ccw(),
	}
}

// ClosestDistanceTo returns the distance from canvas point p to the line.
func (g *GuideLine) ClosestDistanceTo(p geom.Point) float64 {
	return g.canvasLine().Distance(p)
}

// Contains reports whether p is closer than tolerance to the line. A zero
// tolerance means one canvas unit, since a line has no interior.
func (g *GuideLine) Contains(p geom.Point, tolerance float64) bool {
	if tolerance == 0 {
		tolerance = 1
	}
	return g.ClosestDistanceTo(p) < tolerance
}

// Update records the transform. The bounds are always infinite, so any
// change repaints the whole canvas.
func (g *GuideLine) Update(aff geom.Affine) {
	g.updateBounds(aff, geom.InfiniteRect)
}

// Show shows the guide and its handle.
func (g *GuideLine) Show() {
	g.itemBase.Show()
	g.ctrl.Show()
}

// Hide hides the guide and its handle.
func (g *GuideLine) Hide() {
	g.itemBase.Hide()
	g.ctrl.Hide()
}

// Destroy destroys the handle, then the guide.
func (g *GuideLine) Destroy() {
	if g.destroyed {
		return
	}
	g.ctrl.Destroy()
	g.destroy()
}

// isHorizontal reports whether the canvas-space normal n describes a
// horizontal line.
func isHorizontal(n geom.Point) bool { return geom.IsNear(n.X, 0) }

// isVertical reports whether n describes a vertical line.
func isVertical(n geom.Point) bool { return geom.IsNear(n.Y, 0) }

// Render draws the label and the line. Horizontal and vertical guides are
// snapped to pixel centres and span the whole buffer; others are clipped
// to it.
func (g *GuideLine) Render(buf *raster.Buffer) {
	if !g.shouldRender(buf) {
		return
	}
	normal := g.affine.ApplyVector(g.normal)
	origin := g.affine.Apply(g.origin)

	if g.label != "" {
		g.renderLabel(buf, origin, normal)
	}

	op := blend.OpOver
	if g.inverted {
		op = blend.OpDifference
	}
	s := raster.Stroke{Width: 1, Color: g.stroke, Op: op}
	r := buf.Bounds()
	switch {
	case isVertical(normal):
		x := math.Floor(origin.X) + 0.5
		raster.Line(buf, geom.Pt(x, r.Min.Y), geom.Pt(x, r.Max.Y), s)
	case isHorizontal(normal):
		y := math.Floor(origin.Y) + 0.5
		raster.Line(buf, geom.Pt(r.Min.X, y), geom.Pt(r.Max.X, y), s)
	default:
		a, b, ok := g.canvasLine().ClipToRect(r)
		if !ok {
			return
		}
		raster.Line(buf, a, b, s)
	}
}

// renderLabel draws the label at the rounded origin, its baseline running
// along the guide.
func (g *GuideLine) renderLabel(buf *raster.Buffer, origin, normal geom.Point) {
	ds := float64(buf.DeviceScale)
	ti := rasterizeText(g.label, g.canvas.face(guideLabelSize*ds), g.stroke)
	if ti == nil {
		return
	}
	angle := normal.Ccw().Angle()
	toDevice := buf.ToDevice().
		Multiply(geom.Translate(math.Round(origin.X), math.Round(origin.Y))).
		Multiply(geom.Rotate(angle)).
		Multiply(geom.Translate(0, -guideLabelOffset)).
		Multiply(geom.Scale(1/ds, 1/ds)).
		Multiply(geom.Translate(-ti.baseline.X, -ti.baseline.Y))
	ti.blit(buf, toDevice)
}
