package geom

import (
	"image"
	"math"
	"testing"
)

func TestRectUnion(t *testing.T) {
	a := RectFromXYWH(0, 0, 10, 10)
	b := RectFromXYWH(5, -5, 10, 10)

	if got := a.Union(b); got != (Rect{Min: Pt(0, -5), Max: Pt(15, 10)}) {
		t.Errorf("Union() = %v", got)
	}
	if got := EmptyRect().Union(a); got != a {
		t.Errorf("Empty.Union(a) = %v, want %v", got, a)
	}
	if got := a.Union(EmptyRect()); got != a {
		t.Errorf("a.Union(Empty) = %v, want %v", got, a)
	}
	if !EmptyRect().Union(EmptyRect()).IsEmpty() {
		t.Error("Empty.Union(Empty) is not empty")
	}
	if !a.Union(InfiniteRect()).IsInfinite() {
		t.Error("union with infinite rect is finite")
	}
}

func TestRectIntersects(t *testing.T) {
	a := RectFromXYWH(0, 0, 10, 10)
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlap", RectFromXYWH(5, 5, 10, 10), true},
		{"inside", RectFromXYWH(2, 2, 1, 1), true},
		{"touching edge", RectFromXYWH(10, 0, 5, 5), false},
		{"disjoint", RectFromXYWH(20, 20, 5, 5), false},
		{"empty", EmptyRect(), false},
		{"infinite", InfiniteRect(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects(%v) = %v, want %v", tt.b, got, tt.want)
			}
		})
	}
}

func TestRectTransform(t *testing.T) {
	r := RectFromXYWH(0, 0, 2, 2)
	got := r.Transform(Rotate(math.Pi / 4))
	s := math.Sqrt2
	want := Rect{Min: Pt(-s, 0), Max: Pt(s, 2*s)}
	if !got.Min.IsNear(want.Min) || !got.Max.IsNear(want.Max) {
		t.Errorf("Transform() = %v, want %v", got, want)
	}
	if !InfiniteRect().Transform(Scale(2, 2)).IsInfinite() {
		t.Error("infinite rect lost infinity")
	}
}

func TestRoundOutwards(t *testing.T) {
	got := Rect{Min: Pt(-0.5, 1.2), Max: Pt(3.1, 4)}.RoundOutwards()
	if want := image.Rect(-1, 1, 4, 4); got != want {
		t.Errorf("RoundOutwards() = %v, want %v", got, want)
	}
	inf := InfiniteRect().RoundOutwards()
	if inf.Dx() <= 0 || inf.Dy() <= 0 {
		t.Errorf("RoundOutwards(infinite) = %v", inf)
	}
	if got := EmptyRect().RoundOutwards(); !got.Empty() {
		t.Errorf("RoundOutwards(empty) = %v", got)
	}
}

func TestInteriorContains(t *testing.T) {
	r := RectFromXYWH(0, 0, 4, 4)
	if r.InteriorContains(Pt(0, 2)) {
		t.Error("boundary point reported inside interior")
	}
	if !r.Contains(Pt(0, 2)) {
		t.Error("boundary point not contained")
	}
	if !r.InteriorContains(Pt(2, 2)) {
		t.Error("centre not in interior")
	}
}
