package geom

import (
	"math"
	"testing"
)

func TestCubicBounds(t *testing.T) {
	c := Cubic{P0: Pt(0, 0), P1: Pt(0, 10), P2: Pt(10, 10), P3: Pt(10, 0)}
	b := c.Bounds()
	if !IsNear(b.Max.Y, 7.5) {
		t.Errorf("Bounds().Max.Y = %v, want 7.5", b.Max.Y)
	}
	if b.Min != Pt(0, 0) || !IsNear(b.Max.X, 10) {
		t.Errorf("Bounds() = %v", b)
	}
}

func TestCubicDistance(t *testing.T) {
	c := LineSegment(Pt(0, 0), Pt(10, 0))
	if got := c.Distance(Pt(5, 3)); math.Abs(got-3) > 1e-6 {
		t.Errorf("Distance() = %v, want 3", got)
	}
	if got := c.Distance(Pt(13, 4)); math.Abs(got-5) > 1e-6 {
		t.Errorf("Distance() past end = %v, want 5", got)
	}
}

func TestConvexContains(t *testing.T) {
	q := [4]Point{Pt(0, 0), Pt(4, 0), Pt(4, 4), Pt(0, 4)}
	if !ConvexContains(q, Pt(2, 2)) {
		t.Error("centre not contained")
	}
	rev := [4]Point{q[3], q[2], q[1], q[0]}
	if !ConvexContains(rev, Pt(1, 3)) {
		t.Error("reverse winding not handled")
	}
	if ConvexContains(q, Pt(5, 2)) {
		t.Error("outside point contained")
	}
}
