// Package geom provides the coordinate algebra shared by the overlay scene
// graph: points, affine transforms, axis-aligned rectangles, infinite lines
// and cubic Bézier segments.
//
// Three coordinate spaces are involved. Document space holds item geometry
// as the user edits it. Canvas space is document space mapped by the view
// Affine; one canvas unit is one logical screen pixel, and item bounds are
// always expressed in it. Device space is canvas space multiplied by the
// integer device scale of a high-DPI surface.
//
// Pixel alignment follows one rule throughout: a 1-unit line is crisp when
// its centre sits at floor(v)+0.5, so that it covers exactly one pixel row or
// column. See [Snap].
package geom

// Epsilon is the tolerance used by the IsNear helpers.
const Epsilon = 1e-6

// IsNear reports whether a and b differ by at most Epsilon.
func IsNear(a, b float64) bool {
	d := a - b
	return d <= Epsilon && d >= -Epsilon
}
