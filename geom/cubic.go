package geom

import "math"

// Cubic is a cubic Bézier segment. A straight segment is represented with
// the control points on the chord.
type Cubic struct {
	P0, P1, P2, P3 Point
}

// LineSegment returns the cubic equivalent of the segment a-b.
func LineSegment(a, b Point) Cubic {
	return Cubic{P0: a, P1: a.Lerp(b, 1.0/3), P2: a.Lerp(b, 2.0/3), P3: b}
}

// Transform maps every control point by m. Béziers are affine invariant so
// the result is the image of the curve.
func (c Cubic) Transform(m Affine) Cubic {
	return Cubic{P0: m.Apply(c.P0), P1: m.Apply(c.P1), P2: m.Apply(c.P2), P3: m.Apply(c.P3)}
}

// IsDegenerate reports whether all control points coincide.
func (c Cubic) IsDegenerate() bool {
	return c.P0.IsNear(c.P1) && c.P0.IsNear(c.P2) && c.P0.IsNear(c.P3)
}

// PointAt evaluates the curve at t in [0, 1].
func (c Cubic) PointAt(t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Derivative evaluates the first derivative at t.
func (c Cubic) Derivative(t float64) Point {
	mt := 1 - t
	d0 := c.P1.Sub(c.P0).Mul(3 * mt * mt)
	d1 := c.P2.Sub(c.P1).Mul(6 * mt * t)
	d2 := c.P3.Sub(c.P2).Mul(3 * t * t)
	return d0.Add(d1).Add(d2)
}

// Bounds returns the exact bounding box of the curve, found from the roots
// of the derivative on each axis.
func (c Cubic) Bounds() Rect {
	r := RectFromPoints(c.P0, c.P3)
	for _, t := range extremaTimes(c.P0.X, c.P1.X, c.P2.X, c.P3.X) {
		r = r.UnionPoint(c.PointAt(t))
	}
	for _, t := range extremaTimes(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y) {
		r = r.UnionPoint(c.PointAt(t))
	}
	return r
}

// extremaTimes returns the parameters in (0, 1) where the derivative of the
// one-dimensional cubic with the given control values vanishes.
func extremaTimes(p0, p1, p2, p3 float64) []float64 {
	// B'(t)/3 = a*t^2 + b*t + c
	a := -p0 + 3*p1 - 3*p2 + p3
	b := 2 * (p0 - 2*p1 + p2)
	cc := p1 - p0

	var roots []float64
	add := func(t float64) {
		if t > 0 && t < 1 {
			roots = append(roots, t)
		}
	}
	if math.Abs(a) < 1e-12 {
		if math.Abs(b) > 1e-12 {
			add(-cc / b)
		}
		return roots
	}
	disc := b*b - 4*a*cc
	if disc < 0 {
		return roots
	}
	sq := math.Sqrt(disc)
	add((-b + sq) / (2 * a))
	add((-b - sq) / (2 * a))
	return roots
}

// NearestTime returns the parameter of the point on the curve closest to p.
// It samples the curve and refines the best sample with Newton steps.
func (c Cubic) NearestTime(p Point) float64 {
	const samples = 32
	best, bestD := 0.0, math.Inf(1)
	for i := 0; i <= samples; i++ {
		t := float64(i) / samples
		if d := c.PointAt(t).Sub(p).LengthSquared(); d < bestD {
			best, bestD = t, d
		}
	}
	t := best
	for range 8 {
		q := c.PointAt(t).Sub(p)
		d1 := c.Derivative(t)
		d2 := c.secondDerivative(t)
		den := d1.Dot(d1) + q.Dot(d2)
		if den == 0 {
			break
		}
		next := math.Max(0, math.Min(1, t-q.Dot(d1)/den))
		if math.Abs(next-t) < 1e-9 {
			t = next
			break
		}
		t = next
	}
	if c.PointAt(t).Sub(p).LengthSquared() > bestD {
		return best
	}
	return t
}

// Distance returns the distance from p to the nearest point on the curve.
func (c Cubic) Distance(p Point) float64 {
	return c.PointAt(c.NearestTime(p)).Distance(p)
}

func (c Cubic) secondDerivative(t float64) Point {
	a := c.P2.Sub(c.P1.Mul(2)).Add(c.P0).Mul(6 * (1 - t))
	b := c.P3.Sub(c.P2.Mul(2)).Add(c.P1).Mul(6 * t)
	return a.Add(b)
}

// ConvexContains reports whether p lies inside the convex polygon quad,
// boundary included, regardless of its winding direction.
func ConvexContains(quad [4]Point, p Point) bool {
	var pos, neg bool
	for i := range quad {
		a, b := quad[i], quad[(i+1)%len(quad)]
		c := b.Sub(a).Cross(p.Sub(a))
		if c > 0 {
			pos = true
		} else if c < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}
