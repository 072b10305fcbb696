package damage

import (
	"image"
	"testing"
)

func TestNewRegionInvalid(t *testing.T) {
	if New(0, 10) != nil || New(10, -1) != nil {
		t.Error("New() with non-positive size returned non-nil")
	}
}

func TestMarkRect(t *testing.T) {
	d := New(100, 100)
	d.MarkRect(image.Rect(10, 10, 40, 20))
	if d.Count() != 2 {
		t.Errorf("Count() = %d, want 2", d.Count())
	}
	if !d.IsDirty(0, 0) || !d.IsDirty(1, 0) || d.IsDirty(0, 1) {
		t.Error("unexpected tile state after MarkRect")
	}

	d.Clear()
	d.MarkRect(image.Rect(-50, -50, -10, -10))
	if !d.IsEmpty() {
		t.Error("rect outside surface marked tiles")
	}
}

func TestRectsMergesRows(t *testing.T) {
	d := New(100, 100)
	d.MarkRect(image.Rect(0, 0, 64, 64))
	rects := d.Rects()
	if len(rects) != 1 {
		t.Fatalf("Rects() = %v, want one rectangle", rects)
	}
	if want := image.Rect(0, 0, 64, 64); rects[0] != want {
		t.Errorf("Rects()[0] = %v, want %v", rects[0], want)
	}
}

func TestRectsClipsToBounds(t *testing.T) {
	d := New(50, 40)
	d.MarkAll()
	if d.Count() != 4 {
		t.Errorf("Count() = %d, want 4", d.Count())
	}
	rects := d.Take()
	if len(rects) != 1 || rects[0] != image.Rect(0, 0, 50, 40) {
		t.Errorf("Take() = %v, want [(0,0)-(50,40)]", rects)
	}
	if !d.IsEmpty() {
		t.Error("Take() did not clear the region")
	}
}

func TestRectsDisjointRuns(t *testing.T) {
	d := New(200, 32)
	d.MarkRect(image.Rect(0, 0, 10, 10))
	d.MarkRect(image.Rect(100, 0, 110, 10))
	rects := d.Rects()
	if len(rects) != 2 {
		t.Fatalf("Rects() = %v, want two rectangles", rects)
	}
	for _, a := range rects {
		for _, b := range rects {
			if a != b && a.Overlaps(b) {
				t.Errorf("rectangles %v and %v overlap", a, b)
			}
		}
	}
}
