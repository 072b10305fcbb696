package overlay

import (
	"math"

	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/internal/blend"
	"github.com/gogpu/overlay/raster"
)

// Quad is a filled quadrilateral used to highlight objects. Its corners are
// in document coordinates and need not be axis aligned.
type Quad struct {
	itemBase
	pts [4]geom.Point
	set bool
}

// NewQuad creates a quad with corners p0..p3.
func NewQuad(parent *Group, p0, p1, p2, p3 geom.Point) *Quad {
	q := &Quad{}
	q.init(q, parent, "Quad")
	q.pts, q.set = [4]geom.Point{p0, p1, p2, p3}, true
	return q
}

// NewNullQuad creates a quad without geometry.
func NewNullQuad(parent *Group) *Quad {
	q := &Quad{}
	q.init(q, parent, "Quad:Null")
	return q
}

// Kind returns KindQuad.
func (q *Quad) Kind() Kind { return KindQuad }

// Coords returns the corners in document coordinates.
func (q *Quad) Coords() [4]geom.Point { return q.pts }

// SetCoords replaces the corners.
func (q *Quad) SetCoords(p0, p1, p2, p3 geom.Point) {
	q.pts, q.set = [4]geom.Point{p0, p1, p2, p3}, true
	q.RequestUpdate()
}

// valid reports whether the quad has geometry and no two consecutive
// corners coincide.
func (q *Quad) valid() bool {
	if !q.set {
		return false
	}
	for i := range q.pts {
		if q.pts[i] == q.pts[(i+1)&3] {
			return false
		}
	}
	return true
}

func (q *Quad) canvasPoints() [4]geom.Point {
	var out [4]geom.Point
	for i, p := range q.pts {
		out[i] = q.affine.Apply(p)
	}
	return out
}

// ClosestDistanceTo returns the distance from p to the quad outline, or
// zero when p is inside.
func (q *Quad) ClosestDistanceTo(p geom.Point) float64 {
	if !q.valid() {
		return math.Inf(1)
	}
	pts := q.canvasPoints()
	if geom.ConvexContains(pts, p) {
		return 0
	}
	d := math.Inf(1)
	for i := range pts {
		d = math.Min(d, geom.LineSegment(pts[i], pts[(i+1)&3]).Distance(p))
	}
	return d
}

// Contains reports whether p lies in the quad, or within tolerance of it.
func (q *Quad) Contains(p geom.Point, tolerance float64) bool {
	if !q.valid() {
		return false
	}
	if tolerance > 0 {
		return q.ClosestDistanceTo(p) <= tolerance
	}
	return geom.ConvexContains(q.canvasPoints(), p)
}

// Update recomputes the bounds, grown by two units for antialiasing.
func (q *Quad) Update(aff geom.Affine) {
	q.updateBounds(aff, func() geom.Rect {
		if !q.valid() {
			return geom.EmptyRect()
		}
		return geom.RectFromPoints(q.pts[:]...).Transform(q.affine).ExpandBy(2)
	})
}

// Render fills the quad with the fill colour.
func (q *Quad) Render(buf *raster.Buffer) {
	if !q.valid() || !q.shouldRender(buf) {
		return
	}
	pts := q.canvasPoints()
	raster.FillPolygon(buf, pts[:], q.fill, blend.OpOver)
}
