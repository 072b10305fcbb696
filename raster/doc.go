// Package raster paints overlay primitives into premultiplied RGBA
// surfaces.
//
// A [Buffer] is one rectangle of the canvas being repainted. Coordinates
// passed to the drawing functions are canvas units; the buffer multiplies
// them by its device scale. Axis-aligned rectangles and lines are filled with
// exact per-pixel coverage so that pixel-aligned geometry (see geom.Snap)
// stays crisp. Arbitrary polygons go through golang.org/x/image/vector, and
// anything that needs curves or text is drawn with a gg context through
// [Buffer.Paint].
package raster
