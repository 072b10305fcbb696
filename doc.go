// Package overlay implements the on-canvas control layer of a vector
// editor: a retained-mode tree of lightweight items (handles, guides, grids,
// rectangles, curves, labels and the rotation preview) that sits above the
// rendered document and below the screen.
//
// # Overview
//
// A [Canvas] owns the tree, the backing raster store and the picking and
// grab state. Items are created attached to a [Group]:
//
//	c := overlay.NewCanvas(800, 600)
//	h := overlay.NewCtrl(c.Root(), overlay.CtrlTypeNodeCusp, geom.Pt(100, 100))
//	h.SetFill(0xff0000ff)
//	damage := c.Frame()
//
// Mutating an item never repaints synchronously. It marks the item dirty and
// bubbles one request to the canvas; [Canvas.Frame] then runs a single
// batched update pass followed by a repaint of the damaged regions only.
//
// # Coordinate Spaces
//
// Item geometry lives in document space. The canvas view transform maps it
// to canvas space, where all bounds are expressed and one unit is one
// logical pixel. Rasterization happens in device space, canvas space scaled
// by the integer device scale.
//
// # Identity
//
// Items live in an arena owned by the canvas and are referred to by
// [ItemID], an index paired with a generation. Destroying an item bumps the
// generation, so ids held by tools or by the canvas itself become
// detectably stale instead of dangling.
//
// # Events
//
// [Canvas.Dispatch] routes input to the topmost visible and pickable item
// under the pointer, or to the item holding the pointer grab, and bubbles it
// up the tree until a handler accepts it.
package overlay
