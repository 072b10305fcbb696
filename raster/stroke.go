package raster

import (
	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/internal/blend"
)

// Cap is the shape of line endpoints.
type Cap uint8

const (
	// CapButt ends the line exactly at its endpoints.
	CapButt Cap = iota

	// CapSquare extends the line by half its width past each endpoint.
	CapSquare
)

// Stroke describes how lines are drawn.
type Stroke struct {
	Width float64
	Color RGBA32
	Cap   Cap
	Dash  *Dash
	Op    blend.Op
}

// Line draws the segment p0-p1 with s.
func Line(b *Buffer, p0, p1 geom.Point, s Stroke) {
	Polyline(b, []geom.Point{p0, p1}, false, s)
}

// Polyline draws the connected segments through pts, closing the loop when
// closed is set. The dash phase runs continuously along the whole path.
func Polyline(b *Buffer, pts []geom.Point, closed bool, s Stroke) {
	if len(pts) < 2 || s.Width <= 0 {
		return
	}
	if closed {
		pts = append(pts[:len(pts):len(pts)], pts[0])
	}
	travelled := 0.0
	for i := 0; i+1 < len(pts); i++ {
		a, c := pts[i], pts[i+1]
		seg := c.Sub(a)
		length := seg.Length()
		if s.Dash == nil {
			piece(b, a, c, s)
			continue
		}
		if length == 0 {
			continue
		}
		dir := seg.Div(length)
		for _, iv := range s.Dash.Intervals(length, travelled) {
			piece(b, a.Add(dir.Mul(iv[0])), a.Add(dir.Mul(iv[1])), s)
		}
		travelled += length
	}
}

// piece draws one solid segment. Horizontal and vertical segments are
// filled as rectangles with exact coverage; others as antialiased polygons.
func piece(b *Buffer, a, c geom.Point, s Stroke) {
	hw := s.Width / 2
	ext := 0.0
	if s.Cap == CapSquare {
		ext = hw
	}
	switch {
	case a.Y == c.Y:
		x0, x1 := min(a.X, c.X)-ext, max(a.X, c.X)+ext
		if x1 <= x0 {
			return
		}
		FillRect(b, geom.Rect{Min: geom.Pt(x0, a.Y-hw), Max: geom.Pt(x1, a.Y+hw)}, s.Color, s.Op)
	case a.X == c.X:
		y0, y1 := min(a.Y, c.Y)-ext, max(a.Y, c.Y)+ext
		if y1 <= y0 {
			return
		}
		FillRect(b, geom.Rect{Min: geom.Pt(a.X-hw, y0), Max: geom.Pt(a.X+hw, y1)}, s.Color, s.Op)
	default:
		dir := c.Sub(a).Normalize()
		n := dir.Cw().Mul(hw)
		e := dir.Mul(ext)
		p0, p1 := a.Sub(e), c.Add(e)
		FillPolygon(b, []geom.Point{p0.Add(n), p1.Add(n), p1.Sub(n), p0.Sub(n)}, s.Color, s.Op)
	}
}

// StrokeRect outlines r with a line of width s.Width centred on its edges.
// Without a dash the four sides are filled as disjoint rectangles, so each
// corner pixel is painted once and difference blending stays exact.
func StrokeRect(b *Buffer, r geom.Rect, s Stroke) {
	if r.IsEmpty() || s.Width <= 0 {
		return
	}
	if s.Dash != nil {
		c := r.Corners()
		Polyline(b, c[:], true, s)
		return
	}
	hw := s.Width / 2
	outer := r.ExpandBy(hw)
	inner := geom.Rect{Min: r.Min.Add(geom.Pt(hw, hw)), Max: r.Max.Sub(geom.Pt(hw, hw))}
	if inner.IsEmpty() {
		FillRect(b, outer, s.Color, s.Op)
		return
	}
	FillRect(b, geom.Rect{Min: outer.Min, Max: geom.Pt(outer.Max.X, inner.Min.Y)}, s.Color, s.Op)
	FillRect(b, geom.Rect{Min: geom.Pt(outer.Min.X, inner.Max.Y), Max: outer.Max}, s.Color, s.Op)
	FillRect(b, geom.Rect{Min: geom.Pt(outer.Min.X, inner.Min.Y), Max: geom.Pt(inner.Min.X, inner.Max.Y)}, s.Color, s.Op)
	FillRect(b, geom.Rect{Min: geom.Pt(inner.Max.X, inner.Min.Y), Max: geom.Pt(outer.Max.X, inner.Max.Y)}, s.Color, s.Op)
}
