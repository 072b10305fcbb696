package geom

import "math"

// Line is an infinite line through Origin with direction Vector. The
// parameter t maps to Origin + t*Vector.
type Line struct {
	Origin Point
	Vector Point
}

// LineFromPoints returns the line through a and b, parameterised so that
// t=0 is a and t=1 is b.
func LineFromPoints(a, b Point) Line {
	return Line{Origin: a, Vector: b.Sub(a)}
}

// IsDegenerate reports whether the direction vector is zero.
func (l Line) IsDegenerate() bool {
	return l.Vector.X == 0 && l.Vector.Y == 0
}

// Versor returns the unit direction.
func (l Line) Versor() Point {
	return l.Vector.Normalize()
}

// PointAt returns Origin + t*Vector.
func (l Line) PointAt(t float64) Point {
	return l.Origin.Add(l.Vector.Mul(t))
}

// NearestTime returns the parameter of the point on l closest to p.
func (l Line) NearestTime(p Point) float64 {
	d := l.Vector.LengthSquared()
	if d == 0 {
		return 0
	}
	return p.Sub(l.Origin).Dot(l.Vector) / d
}

// Distance returns the distance from p to l.
func (l Line) Distance(p Point) float64 {
	return math.Abs(l.SignedDistance(p))
}

// SignedDistance returns the distance from p to l, positive when p lies on
// the clockwise side of the direction vector (to the right when looking
// along Vector on a y-down canvas).
func (l Line) SignedDistance(p Point) float64 {
	length := l.Vector.Length()
	if length == 0 {
		return p.Distance(l.Origin)
	}
	return l.Vector.Cross(p.Sub(l.Origin)) / length
}

// IntersectSegment intersects l with the segment a-b. It returns the
// intersection point and true when they cross at a single point with the
// segment parameter in [0, 1].
func (l Line) IntersectSegment(a, b Point) (Point, bool) {
	s := b.Sub(a)
	den := l.Vector.Cross(s)
	if den == 0 {
		return Point{}, false
	}
	u := a.Sub(l.Origin).Cross(l.Vector) / den
	if u < 0 || u > 1 {
		return Point{}, false
	}
	return a.Add(s.Mul(u)), true
}

// ClipToRect intersects l with the boundary of r and returns the two points
// where it enters and leaves. When l coincides with one of the edges the
// endpoints of that edge are returned. The result is false when the line
// misses the rectangle or touches it at a single corner.
func (l Line) ClipToRect(r Rect) (Point, Point, bool) {
	if r.IsEmpty() || l.IsDegenerate() {
		return Point{}, Point{}, false
	}
	corners := r.Corners()
	var hits []Point
	for i := 0; i < 4; i++ {
		a, b := corners[i], corners[(i+1)&3]
		if l.Distance(a) < Epsilon && l.Distance(b) < Epsilon {
			return a, b, true
		}
		p, ok := l.IntersectSegment(a, b)
		if !ok {
			continue
		}
		dup := false
		for _, h := range hits {
			if h.IsNear(p) {
				dup = true
				break
			}
		}
		if !dup {
			hits = append(hits, p)
		}
	}
	if len(hits) != 2 {
		return Point{}, Point{}, false
	}
	return hits[0], hits[1], true
}
