package geom

import (
	"math"
	"testing"
)

func TestAffineApply(t *testing.T) {
	tests := []struct {
		name string
		m    Affine
		in   Point
		want Point
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translate", Translate(10, -5), Pt(1, 1), Pt(11, -4)},
		{"scale", Scale(2, 3), Pt(1, 1), Pt(2, 3)},
		{"rotate quarter", Rotate(math.Pi / 2), Pt(1, 0), Pt(0, 1)},
		{"scale then translate", Translate(5, 5).Multiply(Scale(2, 2)), Pt(1, 1), Pt(7, 7)},
		{"then", Scale(2, 2).Then(Translate(5, 5)), Pt(1, 1), Pt(7, 7)},
		{"rotate about", RotateAbout(Pt(1, 1), math.Pi), Pt(2, 1), Pt(0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Apply(tt.in)
			if !got.IsNear(tt.want) {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAffineInvert(t *testing.T) {
	m := Translate(3, 4).Multiply(Rotate(0.3)).Multiply(Scale(2, 5))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert() reported singular matrix")
	}
	if got := m.Multiply(inv); !got.IsNear(Identity()) {
		t.Errorf("m * m^-1 = %+v, want identity", got)
	}
	if _, ok := Scale(0, 1).Invert(); ok {
		t.Error("Invert() of singular matrix reported ok")
	}
}

func TestAffineDescrimAndRotation(t *testing.T) {
	m := Rotate(math.Pi / 6).Multiply(Scale(4, 4))
	if got := m.Descrim(); math.Abs(got-4) > 1e-9 {
		t.Errorf("Descrim() = %v, want 4", got)
	}
	if got := m.RotationAngle(); math.Abs(got-math.Pi/6) > 1e-9 {
		t.Errorf("RotationAngle() = %v, want %v", got, math.Pi/6)
	}
	if Scale(1, -1).Flips() != true {
		t.Error("Scale(1,-1).Flips() = false, want true")
	}
}

func TestPreservesAxes(t *testing.T) {
	tests := []struct {
		name string
		m    Affine
		want bool
	}{
		{"identity", Identity(), true},
		{"scale", Scale(3, 0.5), true},
		{"quarter turn", Rotate(math.Pi / 2), true},
		{"eighth turn", Rotate(math.Pi / 4), false},
		{"mirror", Scale(-1, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.PreservesAxes(); got != tt.want {
				t.Errorf("PreservesAxes() = %v, want %v", got, tt.want)
			}
		})
	}
}
