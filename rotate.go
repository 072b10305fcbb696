package overlay

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"

	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/raster"
)

// rotationSnap is the step in degrees of a Shift-constrained rotation.
const rotationSnap = 15

// RotatePreview previews an interactive rotation of the view. Between Start
// and the button release it owns the pointer and paints a rotated copy of
// the store straight into it, and over any area repainted meanwhile. On
// release the rotation is applied to the view transform; Escape restores the
// store instead.
type RotatePreview struct {
	itemBase
	snapshot *image.RGBA
	rotated  *image.RGBA
	dragging bool
	// startAngle is the cursor angle of the first motion, in degrees.
	startAngle float64
	// angle is the current rotation in degrees, counter-clockwise on
	// screen.
	angle float64
}

// NewRotatePreview creates a hidden preview in parent.
func NewRotatePreview(parent *Group) *RotatePreview {
	r := &RotatePreview{}
	r.init(r, parent, "CanvasItemRotate")
	r.pickable = true
	r.bounds = geom.InfiniteRect()
	r.visible = false
	return r
}

// Kind returns KindRotate.
func (r *RotatePreview) Kind() Kind { return KindRotate }

// Angle returns the previewed rotation in degrees.
func (r *RotatePreview) Angle() float64 { return r.angle }

// Active reports whether a preview is in progress.
func (r *RotatePreview) Active() bool { return r.snapshot != nil }

// Contains is always true while the preview is shown.
func (r *RotatePreview) Contains(geom.Point, float64) bool { return true }

// Update records the transform.
func (r *RotatePreview) Update(aff geom.Affine) {
	r.updateBounds(aff, geom.InfiniteRect)
}

// Render covers buf with the rotated snapshot, so that frames during the
// preview do not bring back the unrotated picture.
func (r *RotatePreview) Render(buf *raster.Buffer) {
	if r.rotated == nil || !r.shouldRender(buf) {
		return
	}
	dst := buf.Surface.Bounds()
	draw.Draw(buf.Surface, dst, r.rotated, dst.Min, draw.Src)
}

// Start snapshots the store, shows the preview and grabs the pointer.
func (r *RotatePreview) Start() error {
	if err := r.Grab(MaskPointerMotion|MaskButtonRelease|MaskKeyPress, "rotate"); err != nil {
		return err
	}
	r.snapshot = clone.AsRGBA(r.canvas.store)
	r.angle = 0
	r.dragging = false
	r.Show()
	return nil
}

// center returns the middle of the canvas in canvas units.
func (r *RotatePreview) center() geom.Point {
	w, h := r.canvas.Size()
	return geom.Pt(float64(w)/2, float64(h)/2)
}

// HandleEvent drives the preview: motion rotates, button release commits
// and Escape cancels. Other key presses are left to the parent.
func (r *RotatePreview) HandleEvent(ev Event) bool {
	if !r.Active() {
		return r.itemBase.HandleEvent(ev)
	}
	switch ev.Type {
	case EventMotion:
		rel := ev.Pos.Sub(r.center())
		cursor := rel.Angle() * 180 / math.Pi
		if !r.dragging {
			r.startAngle = cursor
			r.dragging = true
		}
		r.angle = rotationDelta(r.startAngle-cursor, ev.Mods)
		r.paint()
	case EventButtonRelease:
		r.commit()
	case EventKeyPress:
		if ev.Key != "Escape" {
			return false
		}
		r.Cancel()
	}
	return true
}

// rotationDelta applies the modifier policy to a raw angle in degrees:
// Shift with Control pins it to zero, Shift snaps to 15 degree steps,
// Control or Alt alone leave it fractional, and no modifier truncates it
// to whole degrees.
func rotationDelta(delta float64, mods Modifier) float64 {
	shift, ctrl := mods.Has(ModShift), mods.Has(ModControl)
	switch {
	case shift && ctrl:
		return 0
	case shift:
		return math.Round(delta/rotationSnap) * rotationSnap
	case ctrl, mods.Has(ModAlt):
		return delta
	}
	return math.Floor(delta)
}

// paint writes the snapshot rotated about the centre of the store into the
// store.
func (r *RotatePreview) paint() {
	store := r.canvas.store
	b := store.Bounds()
	if b != r.snapshot.Bounds() {
		return
	}
	pivot := image.Pt(b.Dx()/2, b.Dy()/2)
	// bild turns clockwise; the preview turns the other way.
	r.rotated = transform.Rotate(r.snapshot, -r.angle, &transform.RotationOptions{Pivot: &pivot})
	draw.Draw(store, b, r.rotated, r.rotated.Bounds().Min, draw.Src)
	r.canvas.presentArea(image.Rect(0, 0, r.canvas.width, r.canvas.height))
}

// commit rotates the view by the previewed angle about the document point
// under the canvas centre and ends the preview.
func (r *RotatePreview) commit() {
	c := r.canvas
	if inv, ok := c.affine.Invert(); ok && r.angle != 0 {
		sign := 1.0
		if c.affine.Det() > 0 {
			sign = -1
		}
		c.RotateViewAbout(inv.Apply(r.center()), sign*r.angle*math.Pi/180)
	}
	r.finish()
}

// Cancel restores the store as it was at Start and ends the preview.
func (r *RotatePreview) Cancel() {
	if !r.Active() {
		return
	}
	store := r.canvas.store
	if store.Bounds() == r.snapshot.Bounds() {
		draw.Draw(store, store.Bounds(), r.snapshot, r.snapshot.Bounds().Min, draw.Src)
		r.canvas.presentArea(image.Rect(0, 0, r.canvas.width, r.canvas.height))
	} else {
		r.canvas.RedrawArea(geom.InfiniteRect())
	}
	r.finish()
}

func (r *RotatePreview) finish() {
	r.Ungrab()
	r.Hide()
	r.snapshot = nil
	r.rotated = nil
	r.dragging = false
	r.angle = 0
}
