package overlay

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"strings"

	"github.com/gogpu/gg/text"
	"github.com/google/uuid"

	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/internal/cache"
	"github.com/gogpu/overlay/internal/damage"
	"github.com/gogpu/overlay/prefs"
	"github.com/gogpu/overlay/raster"
)

// maxUpdatePasses bounds the update loop of one frame when items keep
// requesting updates from inside Update.
const maxUpdatePasses = 8

// defaultHandleSize is the handle size index used until preferences say
// otherwise.
const defaultHandleSize = 3

// Canvas is the host of an item tree. It owns the backing store, the
// damage accumulated since the last frame and the picking and grab state.
//
// A Canvas is not safe for concurrent use; all calls belong to the event
// loop that owns it.
type Canvas struct {
	session uuid.UUID
	items   arena
	root    *Group

	width, height int
	scale         int
	store         *image.RGBA
	damage        *damage.Region
	presented     []image.Rectangle
	affine        geom.Affine
	background    raster.RGBA32
	drawing       DrawingFunc

	scheduler  func()
	scheduled  bool
	needUpdate bool
	needRepick bool

	current, grabbed ItemID
	grabMask         EventMask
	seat             Seat
	router           *InputRouter
	pickTolerance    float64
	pickEvent        Event
	havePickEvent    bool
	inRepick         bool
	leftGrabbedItem  bool

	handleSize int
	glyphs     *cache.LRU[ctrlKey, *ctrlCache]
	faces      *cache.LRU[float64, text.Face]
}

// NewCanvas creates a canvas of width x height canvas units.
func NewCanvas(width, height int, opts ...CanvasOption) *Canvas {
	o := defaultCanvasOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if width < 1 || height < 1 {
		Logger().Warn("overlay: invalid canvas size", "width", width, "height", height)
		width, height = max(width, 1), max(height, 1)
	}
	c := &Canvas{
		session:       uuid.New(),
		width:         width,
		height:        height,
		scale:         o.scale,
		affine:        geom.Identity(),
		background:    o.background,
		drawing:       o.drawing,
		scheduler:     o.scheduler,
		seat:          o.seat,
		router:        o.router,
		pickTolerance: o.pickTolerance,
		handleSize:    defaultHandleSize,
		glyphs:        cache.New[ctrlKey, *ctrlCache](o.glyphCacheSize),
		faces:         cache.New[float64, text.Face](maxFaces),
	}
	c.allocate()
	c.root = newRootGroup(c)
	c.needUpdate = true
	return c
}

func (c *Canvas) allocate() {
	c.store = image.NewRGBA(image.Rect(0, 0, c.width*c.scale, c.height*c.scale))
	c.damage = damage.New(c.width, c.height)
	c.damage.MarkAll()
}

func (c *Canvas) log() *slog.Logger {
	return Logger().With("canvas", c.session.String())
}

// Session returns the random id identifying this canvas in logs.
func (c *Canvas) Session() string { return c.session.String() }

// Root returns the root group. It has no parent and cannot be reordered.
func (c *Canvas) Root() *Group { return c.root }

// Lookup resolves id, returning nil once the item has been destroyed.
func (c *Canvas) Lookup(id ItemID) Item { return c.items.get(id) }

// Len returns the number of live items, the root included.
func (c *Canvas) Len() int { return c.items.len() }

// Size returns the canvas size in canvas units.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

// DeviceScale returns the number of device pixels per canvas unit.
func (c *Canvas) DeviceScale() int { return c.scale }

// Store returns the backing store. Its pixels are premultiplied and its
// bounds are the canvas size multiplied by the device scale.
func (c *Canvas) Store() *image.RGBA { return c.store }

// Affine returns the view transform from document to canvas space.
func (c *Canvas) Affine() geom.Affine { return c.affine }

// Background returns the clear colour.
func (c *Canvas) Background() raster.RGBA32 { return c.background }

// SetBackground changes the clear colour and repaints everything.
func (c *Canvas) SetBackground(bg raster.RGBA32) {
	if c.background == bg {
		return
	}
	c.background = bg
	c.damage.MarkAll()
	c.schedule()
}

// PickTolerance returns the picking distance in canvas units.
func (c *Canvas) PickTolerance() float64 { return c.pickTolerance }

// CurrentItem returns the item under the pointer, or nil.
func (c *Canvas) CurrentItem() Item { return c.items.get(c.current) }

// GrabbedItem returns the item holding the pointer grab, or nil.
func (c *Canvas) GrabbedItem() Item { return c.items.get(c.grabbed) }

func (c *Canvas) schedule() {
	if c.scheduled {
		return
	}
	c.scheduled = true
	if c.scheduler != nil {
		c.scheduler()
	}
}

// Pending reports whether a frame has been requested since the last Frame.
func (c *Canvas) Pending() bool { return c.scheduled }

func (c *Canvas) requestUpdate() {
	c.needUpdate = true
	c.schedule()
}

// RequestUpdate asks for an update pass of the whole tree.
func (c *Canvas) RequestUpdate() {
	c.root.RequestUpdate()
}

// SetNeedRepick asks for the current item to be picked again before the
// next frame, for example because visibility changed under the pointer.
func (c *Canvas) SetNeedRepick() {
	c.needRepick = true
	c.schedule()
}

// RedrawArea marks r, in canvas space, for repainting. The rectangle is
// rounded outwards and clipped to the canvas; empty rectangles are ignored.
func (c *Canvas) RedrawArea(r geom.Rect) {
	if r.IsEmpty() {
		return
	}
	ir := r.RoundOutwards().Intersect(image.Rect(0, 0, c.width, c.height))
	if ir.Empty() {
		return
	}
	c.damage.MarkRect(ir)
	c.schedule()
}

// presentArea records device-independent rect r as changed by a direct
// write to the store, to be reported by the next Frame without repainting.
func (c *Canvas) presentArea(r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, c.width, c.height))
	if r.Empty() {
		return
	}
	c.presented = append(c.presented, r)
	c.schedule()
}

// Frame runs one batched pass: the tree is updated if needed, the current
// item is picked again if needed, and every damaged rectangle is cleared,
// painted with the drawing callback and then with the tree. It returns the
// rectangles of the store that changed, in canvas units.
func (c *Canvas) Frame() []image.Rectangle {
	c.scheduled = true
	defer func() { c.scheduled = false }()

	for pass := 0; c.needUpdate && pass < maxUpdatePasses; pass++ {
		c.needUpdate = false
		c.root.Update(c.affine)
	}
	for pass := 0; c.needRepick && pass < maxUpdatePasses; pass++ {
		c.needRepick = false
		if c.havePickEvent {
			c.pickCurrent(c.pickEvent)
		}
	}

	rects := c.damage.Take()
	for _, r := range rects {
		buf := raster.BufferOn(c.store, r, c.scale)
		buf.Clear(c.background)
		if c.drawing != nil {
			c.drawing(buf)
		}
		c.root.Render(buf)
	}
	if len(rects) > 0 || len(c.presented) > 0 {
		c.log().Debug("overlay: frame", "damage", len(rects), "presented", len(c.presented))
	}
	out := append(rects, c.presented...)
	c.presented = nil
	return out
}

// SetAffine replaces the view transform and repaints everything.
func (c *Canvas) SetAffine(aff geom.Affine) {
	if aff == c.affine {
		return
	}
	c.affine = aff
	c.damage.MarkAll()
	c.requestUpdate()
}

// RotateViewAbout rotates the view by angle radians around the document
// point p. The document itself is untouched.
func (c *Canvas) RotateViewAbout(p geom.Point, angle float64) {
	c.SetAffine(c.affine.Multiply(geom.RotateAbout(p, angle)))
}

// Resize changes the canvas size, reallocating the store.
func (c *Canvas) Resize(width, height int) {
	if width < 1 || height < 1 {
		c.log().Warn("overlay: invalid canvas size", "width", width, "height", height)
		return
	}
	if width == c.width && height == c.height {
		return
	}
	c.width, c.height = width, height
	c.allocate()
	c.presented = nil
	c.requestUpdate()
}

// SetDeviceScale changes the device pixel scale. Handle bitmaps are
// rebuilt at the new scale on their next render.
func (c *Canvas) SetDeviceScale(scale int) {
	if scale < 1 {
		c.log().Warn("overlay: invalid device scale", "scale", scale)
		return
	}
	if scale == c.scale {
		return
	}
	c.scale = scale
	c.allocate()
	c.presented = nil
	c.glyphs.Purge()
	c.requestUpdate()
}

// ApplyPreferences pushes user preferences into the tree: the handle size
// to every Ctrl, the pick tolerance, and the display flags and snap
// tolerance of every grid.
func (c *Canvas) ApplyPreferences(p prefs.Preferences) {
	c.pickTolerance = max(p.PickTolerance, 0)
	c.handleSize = p.HandleSize
	c.root.UpdateChildCtrlSizes(p.HandleSize)
	c.walk(c.root, func(it Item) {
		if g, ok := it.(*GridItem); ok && g.engine != nil {
			g.engine.SetXRay(p.Grid.XRay)
			g.engine.SetNoEmphasisWhenZoomedOut(p.Grid.NoEmphasisWhenZoomedOut)
			g.engine.Snapper().SetTolerance(p.Grid.SnapTolerance)
		}
	})
}

func (c *Canvas) walk(g *Group, fn func(Item)) {
	for child := range g.Children() {
		fn(child)
		if sub, ok := child.(*Group); ok {
			c.walk(sub, fn)
		}
	}
}

// forget clears every canvas reference to id.
func (c *Canvas) forget(id ItemID) {
	if c.current == id {
		c.current = ItemID{}
		c.needRepick = true
	}
	if c.grabbed == id {
		c.grabbed = ItemID{}
		c.grabMask = 0
		c.seat.Ungrab()
	}
}

// Close destroys the whole tree, detaching grids from their engines.
func (c *Canvas) Close() {
	c.root.Clear()
}

// DumpTree writes the item tree, one item per line indented by depth.
func (c *Canvas) DumpTree(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Canvas Item Tree"); err != nil {
		return err
	}
	return c.dump(w, c.root, 0)
}

func (c *Canvas) dump(w io.Writer, g *Group, level int) error {
	pos := 0
	for child := range g.Children() {
		_, err := fmt.Fprintf(w, "%s%d: %s (%s)\n", strings.Repeat("  ", level), pos, child.Name(), child.Kind())
		if err != nil {
			return err
		}
		if sub, ok := child.(*Group); ok {
			if err := c.dump(w, sub, level+1); err != nil {
				return err
			}
		}
		pos++
	}
	return nil
}
