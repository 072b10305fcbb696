package overlay

import (
	"fmt"

	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/grid"
	"github.com/gogpu/overlay/prefs"
	"github.com/gogpu/overlay/raster"
)

// GridOptions returns the options that create a grid with the display
// defaults in p. Colours are "#rrggbb" or "#rrggbbaa".
func GridOptions(p prefs.Grid) ([]grid.Option, error) {
	minor, err := raster.ParseHex(p.Color)
	if err != nil {
		return nil, fmt.Errorf("overlay: grid color: %w", err)
	}
	major, err := raster.ParseHex(p.EmpColor)
	if err != nil {
		return nil, fmt.Errorf("overlay: grid emphasis color: %w", err)
	}
	return []grid.Option{
		grid.WithSpacing(geom.Pt(p.Spacing, p.Spacing)),
		grid.WithColors(minor, major),
		grid.WithEmphasis(p.EmpSpacing),
		grid.WithDotted(p.Dotted),
		grid.WithXRay(p.XRay),
		grid.WithNoEmphasisWhenZoomedOut(p.NoEmphasisWhenZoomedOut),
	}, nil
}

// GridItem displays a grid engine on a canvas. The engine is owned
// elsewhere and may be shown on several canvases; the item registers with
// it and unregisters when destroyed. A closed engine destroys its items.
type GridItem struct {
	itemBase
	engine *grid.Grid
	view   grid.View
}

// NewGridItem creates a display of engine in parent.
func NewGridItem(parent *Group, engine *grid.Grid) *GridItem {
	g := &GridItem{engine: engine}
	g.init(g, parent, "CanvasItemGrid")
	g.bounds = geom.InfiniteRect()
	if err := engine.Attach(g); err != nil {
		g.canvas.log().Warn("overlay: grid display not attached", "err", err)
	}
	return g
}

// Kind returns KindGrid.
func (g *GridItem) Kind() Kind { return KindGrid }

// Engine returns the displayed grid, or nil once it has been closed.
func (g *GridItem) Engine() *grid.Grid { return g.engine }

// View returns the screen-space grid state of the last update.
func (g *GridItem) View() grid.View { return g.view }

// Contains is always false; grids are not picked.
func (g *GridItem) Contains(geom.Point, float64) bool { return false }

// Update asks the engine for its view under aff.
func (g *GridItem) Update(aff geom.Affine) {
	if g.affine == aff && !g.needsUpdate {
		return
	}
	g.affine = aff
	g.needsUpdate = false
	if g.engine != nil {
		g.view = g.engine.Update(aff)
	}
	g.canvas.RedrawArea(g.bounds)
}

// Render paints the grid when the engine is enabled and visible.
func (g *GridItem) Render(buf *raster.Buffer) {
	if g.engine == nil || !g.shouldRender(buf) || !g.engine.IsVisible() {
		return
	}
	g.engine.Render(buf, g.view)
}

// EngineClosed is called by the engine when it goes away.
func (g *GridItem) EngineClosed() {
	g.engine = nil
	g.Destroy()
}

// Destroy unregisters from the engine and detaches the item.
func (g *GridItem) Destroy() {
	if g.destroyed {
		return
	}
	if g.engine != nil {
		g.engine.Detach(g)
		g.engine = nil
	}
	g.destroy()
}
