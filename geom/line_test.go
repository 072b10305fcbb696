package geom

import (
	"math"
	"testing"
)

func TestSignedDistance(t *testing.T) {
	l := Line{Origin: Pt(0, 0), Vector: Pt(2, 0)}
	tests := []struct {
		p    Point
		want float64
	}{
		{Pt(5, 3), 3},
		{Pt(-1, -2), -2},
		{Pt(7, 0), 0},
	}
	for _, tt := range tests {
		if got := l.SignedDistance(tt.p); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("SignedDistance(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestClipToRect(t *testing.T) {
	r := RectFromXYWH(0, 0, 10, 10)
	tests := []struct {
		name string
		l    Line
		ok   bool
		a, b Point
	}{
		{"horizontal", Line{Origin: Pt(5, 5), Vector: Pt(1, 0)}, true, Pt(0, 5), Pt(10, 5)},
		{"diagonal", Line{Origin: Pt(0, 0), Vector: Pt(1, 1)}, true, Pt(0, 0), Pt(10, 10)},
		{"miss", Line{Origin: Pt(20, 0), Vector: Pt(0, 1)}, false, Point{}, Point{}},
		{"on edge", Line{Origin: Pt(3, 0), Vector: Pt(1, 0)}, true, Pt(0, 0), Pt(10, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, ok := tt.l.ClipToRect(r)
			if ok != tt.ok {
				t.Fatalf("ClipToRect() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			same := a.IsNear(tt.a) && b.IsNear(tt.b)
			swapped := a.IsNear(tt.b) && b.IsNear(tt.a)
			if !same && !swapped {
				t.Errorf("ClipToRect() = %v, %v; want %v, %v", a, b, tt.a, tt.b)
			}
		})
	}
}
