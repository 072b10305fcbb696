package geom

import (
	"image"
	"math"
)

// Rect is an axis-aligned rectangle with float coordinates. A Rect whose
// Min exceeds its Max on either axis is empty; a degenerate rectangle with
// Min == Max is a point and is not empty.
type Rect struct {
	Min, Max Point
}

// maxCoord bounds the integer rectangles produced from infinite Rects.
const maxCoord = 1 << 30

// EmptyRect returns the empty rectangle, the identity of Union.
func EmptyRect() Rect {
	inf := math.Inf(1)
	return Rect{Min: Point{X: inf, Y: inf}, Max: Point{X: -inf, Y: -inf}}
}

// InfiniteRect returns the rectangle covering the whole plane.
func InfiniteRect() Rect {
	inf := math.Inf(1)
	return Rect{Min: Point{X: -inf, Y: -inf}, Max: Point{X: inf, Y: inf}}
}

// RectFromXYWH creates a rectangle from its minimum corner and size.
func RectFromXYWH(x, y, w, h float64) Rect {
	return Rect{Min: Point{X: x, Y: y}, Max: Point{X: x + w, Y: y + h}}
}

// RectFromPoints returns the bounding box of pts, or EmptyRect if pts is
// empty.
func RectFromPoints(pts ...Point) Rect {
	r := EmptyRect()
	for _, p := range pts {
		r = r.UnionPoint(p)
	}
	return r
}

// RectFromImage converts an integer rectangle.
func RectFromImage(r image.Rectangle) Rect {
	return Rect{
		Min: Point{X: float64(r.Min.X), Y: float64(r.Min.Y)},
		Max: Point{X: float64(r.Max.X), Y: float64(r.Max.Y)},
	}
}

// IsEmpty reports whether r contains no points.
func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// IsInfinite reports whether r extends to infinity on any side.
func (r Rect) IsInfinite() bool {
	return math.IsInf(r.Min.X, 0) || math.IsInf(r.Min.Y, 0) ||
		math.IsInf(r.Max.X, 0) || math.IsInf(r.Max.Y, 0)
}

// Width returns the horizontal extent, 0 for empty rectangles.
func (r Rect) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent, 0 for empty rectangles.
func (r Rect) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.Y - r.Min.Y
}

// Area returns Width()*Height().
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return r.Min.Lerp(r.Max, 0.5)
}

// Corner returns corner i (mod 4) in the order min, (max.x, min.y), max,
// (min.x, max.y). On a y-down canvas the corners run clockwise from the
// top-left.
func (r Rect) Corner(i int) Point {
	switch i & 3 {
	case 0:
		return r.Min
	case 1:
		return Point{X: r.Max.X, Y: r.Min.Y}
	case 2:
		return r.Max
	default:
		return Point{X: r.Min.X, Y: r.Max.Y}
	}
}

// Corners returns the four corners in Corner order.
func (r Rect) Corners() [4]Point {
	return [4]Point{r.Corner(0), r.Corner(1), r.Corner(2), r.Corner(3)}
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	return Rect{
		Min: Point{X: math.Min(r.Min.X, o.Min.X), Y: math.Min(r.Min.Y, o.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, o.Max.X), Y: math.Max(r.Max.Y, o.Max.Y)},
	}
}

// UnionPoint extends r to contain p.
func (r Rect) UnionPoint(p Point) Rect {
	return r.Union(Rect{Min: p, Max: p})
}

// Intersect returns the overlap of r and o, possibly empty.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		Min: Point{X: math.Max(r.Min.X, o.Min.X), Y: math.Max(r.Min.Y, o.Min.Y)},
		Max: Point{X: math.Min(r.Max.X, o.Max.X), Y: math.Min(r.Max.Y, o.Max.Y)},
	}
}

// Intersects reports whether r and o overlap in a region of positive area.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X &&
		r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Contains reports whether p lies in r, boundary included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// InteriorContains reports whether p lies strictly inside r.
func (r Rect) InteriorContains(p Point) bool {
	return p.X > r.Min.X && p.X < r.Max.X && p.Y > r.Min.Y && p.Y < r.Max.Y
}

// ExpandBy grows r by d on every side. Empty rectangles stay empty.
func (r Rect) ExpandBy(d float64) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{
		Min: Point{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Point{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// Translate moves r by v.
func (r Rect) Translate(v Point) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{Min: r.Min.Add(v), Max: r.Max.Add(v)}
}

// Transform returns the bounding box of r mapped by m. Empty and infinite
// rectangles map to themselves.
func (r Rect) Transform(m Affine) Rect {
	if r.IsEmpty() || r.IsInfinite() {
		return r
	}
	c := r.Corners()
	return RectFromPoints(m.Apply(c[0]), m.Apply(c[1]), m.Apply(c[2]), m.Apply(c[3]))
}

// RoundOutwards returns the smallest integer rectangle containing r.
// Infinite sides are clamped to a large finite coordinate.
func (r Rect) RoundOutwards() image.Rectangle {
	if r.IsEmpty() {
		return image.Rectangle{}
	}
	return image.Rect(
		clampCoord(math.Floor(r.Min.X)), clampCoord(math.Floor(r.Min.Y)),
		clampCoord(math.Ceil(r.Max.X)), clampCoord(math.Ceil(r.Max.Y)),
	)
}

func clampCoord(v float64) int {
	switch {
	case v < -maxCoord:
		return -maxCoord
	case v > maxCoord:
		return maxCoord
	}
	return int(v)
}

// Distance returns the distance from p to the nearest point of r, zero when
// p lies inside.
func (r Rect) Distance(p Point) float64 {
	if r.IsEmpty() {
		return math.Inf(1)
	}
	dx := math.Max(0, math.Max(r.Min.X-p.X, p.X-r.Max.X))
	dy := math.Max(0, math.Max(r.Min.Y-p.Y, p.Y-r.Max.Y))
	return math.Hypot(dx, dy)
}
