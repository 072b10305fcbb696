package geom

import (
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/math/f64"
)

// Affine is a 2D affine transformation stored as a 2x3 matrix in row-major
// order:
//
//	| a  b  c |
//	| d  e  f |
//
// which maps (x, y) to (a*x + b*y + c, d*x + e*y + f). The zero value is
// not a valid transform; use Identity.
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Translate creates a translation.
func Translate(x, y float64) Affine {
	return Affine{A: 1, C: x, E: 1, F: y}
}

// Scale creates a scaling transform.
func Scale(x, y float64) Affine {
	return Affine{A: x, E: y}
}

// Rotate creates a rotation by angle radians. On a y-down canvas positive
// angles turn clockwise.
func Rotate(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return Affine{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// RotateAbout creates a rotation by angle radians around p.
func RotateAbout(p Point, angle float64) Affine {
	return Translate(p.X, p.Y).Multiply(Rotate(angle)).Multiply(Translate(-p.X, -p.Y))
}

// Multiply returns m * other: the transform that applies other first and
// then m.
func (m Affine) Multiply(other Affine) Affine {
	return Affine{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Then returns the transform that applies m first and then next.
func (m Affine) Then(next Affine) Affine {
	return next.Multiply(m)
}

// Apply maps a point.
func (m Affine) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// ApplyVector maps a vector, ignoring translation.
func (m Affine) ApplyVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Det returns the determinant of the linear part.
func (m Affine) Det() float64 {
	return m.A*m.E - m.B*m.D
}

// Descrim returns sqrt(|det|), the average linear scale factor. It is the
// zoom factor of a view transform.
func (m Affine) Descrim() float64 {
	return math.Sqrt(math.Abs(m.Det()))
}

// Flips reports whether the transform mirrors the plane.
func (m Affine) Flips() bool {
	return m.Det() < 0
}

// RotationAngle returns the angle of the transformed x axis, the rotation
// component of a similarity transform.
func (m Affine) RotationAngle() float64 {
	return math.Atan2(m.D, m.A)
}

// WithoutTranslation returns the linear part of m.
func (m Affine) WithoutTranslation() Affine {
	m.C, m.F = 0, 0
	return m
}

// Translation returns the translation part of m.
func (m Affine) Translation() Point {
	return Point{X: m.C, Y: m.F}
}

// Invert returns the inverse transform and whether m was invertible.
func (m Affine) Invert() (Affine, bool) {
	det := m.Det()
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}
	inv := 1 / det
	return Affine{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}, true
}

// IsIdentity reports whether m is exactly the identity.
func (m Affine) IsIdentity() bool {
	return m == Identity()
}

// IsNear reports whether every coefficient of m is within Epsilon of o.
func (m Affine) IsNear(o Affine) bool {
	return IsNear(m.A, o.A) && IsNear(m.B, o.B) && IsNear(m.C, o.C) &&
		IsNear(m.D, o.D) && IsNear(m.E, o.E) && IsNear(m.F, o.F)
}

// PreservesAxes reports whether m maps axis-aligned rectangles to
// axis-aligned rectangles, i.e. its rotation is a multiple of 90 degrees and
// it has no shear.
func (m Affine) PreservesAxes() bool {
	return (IsNear(m.B, 0) && IsNear(m.D, 0)) || (IsNear(m.A, 0) && IsNear(m.E, 0))
}

// Matrix converts m to the gg rasterizer's matrix type.
func (m Affine) Matrix() gg.Matrix {
	return gg.Matrix{A: m.A, B: m.B, C: m.C, D: m.D, E: m.E, F: m.F}
}

// Aff3 converts m to the layout used by golang.org/x/image/draw.
func (m Affine) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}
