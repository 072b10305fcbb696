// Package damage tracks which parts of a canvas backing store must be
// repainted before the next frame is presented.
package damage

import (
	"image"
	"math/bits"
)

// TileSize is the edge length in pixels of one damage tile.
const TileSize = 32

// Region tracks invalidated tiles of a width x height pixel surface using a
// bitmap, one bit per tile packed into uint64 words (64 tiles per word).
//
// Marking is O(tiles touched) and never allocates, so redraw requests can be
// issued freely between frames; the bitmap is turned into rectangles once,
// when the frame is painted. Region is not safe for concurrent use.
type Region struct {
	// words is the bitmap. Bit index = ty*tilesX + tx.
	words []uint64

	tilesX, tilesY int
	bounds         image.Rectangle
}

// New creates a clean region covering a width x height surface.
// Returns nil if the dimensions are not positive.
func New(width, height int) *Region {
	if width <= 0 || height <= 0 {
		return nil
	}
	tilesX := (width + TileSize - 1) / TileSize
	tilesY := (height + TileSize - 1) / TileSize
	return &Region{
		words:  make([]uint64, (tilesX*tilesY+63)/64),
		tilesX: tilesX,
		tilesY: tilesY,
		bounds: image.Rect(0, 0, width, height),
	}
}

// Bounds returns the surface rectangle the region covers.
func (d *Region) Bounds() image.Rectangle {
	return d.bounds
}

// mark marks a single tile. Out-of-range tiles are ignored.
func (d *Region) mark(tx, ty int) {
	if tx < 0 || tx >= d.tilesX || ty < 0 || ty >= d.tilesY {
		return
	}
	idx := ty*d.tilesX + tx
	d.words[idx>>6] |= 1 << (idx & 63)
}

// MarkRect marks every tile intersecting r. The part of r outside the
// surface is ignored.
func (d *Region) MarkRect(r image.Rectangle) {
	r = r.Intersect(d.bounds)
	if r.Empty() {
		return
	}
	tx1, ty1 := r.Min.X/TileSize, r.Min.Y/TileSize
	tx2, ty2 := (r.Max.X-1)/TileSize, (r.Max.Y-1)/TileSize
	for ty := ty1; ty <= ty2; ty++ {
		for tx := tx1; tx <= tx2; tx++ {
			d.mark(tx, ty)
		}
	}
}

// MarkAll marks the whole surface.
func (d *Region) MarkAll() {
	total := d.tilesX * d.tilesY
	full := total / 64
	for i := 0; i < full; i++ {
		d.words[i] = ^uint64(0)
	}
	if rem := total % 64; rem > 0 {
		d.words[full] = (uint64(1) << rem) - 1
	}
}

// Clear marks every tile clean.
func (d *Region) Clear() {
	clear(d.words)
}

// IsDirty reports whether tile (tx, ty) is marked.
func (d *Region) IsDirty(tx, ty int) bool {
	if tx < 0 || tx >= d.tilesX || ty < 0 || ty >= d.tilesY {
		return false
	}
	idx := ty*d.tilesX + tx
	return d.words[idx>>6]&(1<<(idx&63)) != 0
}

// IsEmpty reports whether no tile is marked.
func (d *Region) IsEmpty() bool {
	for _, w := range d.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of marked tiles.
func (d *Region) Count() int {
	n := 0
	for _, w := range d.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Rects returns the marked area as a list of disjoint pixel rectangles,
// clipped to the surface. Horizontal runs of dirty tiles form one rectangle
// and runs with the same span on consecutive tile rows are merged.
func (d *Region) Rects() []image.Rectangle {
	var rects []image.Rectangle
	// open holds the index in rects of the rectangle that ended on the
	// previous tile row, keyed by its horizontal tile span.
	open := map[[2]int]int{}
	for ty := 0; ty < d.tilesY; ty++ {
		next := map[[2]int]int{}
		for tx := 0; tx < d.tilesX; {
			if !d.IsDirty(tx, ty) {
				tx++
				continue
			}
			start := tx
			for tx < d.tilesX && d.IsDirty(tx, ty) {
				tx++
			}
			span := [2]int{start, tx}
			r := image.Rect(start*TileSize, ty*TileSize, tx*TileSize, (ty+1)*TileSize).Intersect(d.bounds)
			if i, ok := open[span]; ok {
				rects[i].Max.Y = r.Max.Y
				next[span] = i
				continue
			}
			rects = append(rects, r)
			next[span] = len(rects) - 1
		}
		open = next
	}
	return rects
}

// Take returns Rects and clears the region.
func (d *Region) Take() []image.Rectangle {
	rects := d.Rects()
	d.Clear()
	return rects
}
