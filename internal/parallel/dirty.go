package parallel

import (
	"image"
	"math/bits"
	"sync/atomic"
)

// DirtyRegion tracks which tiles were written since the last upload using an
// atomic bitmap, one bit per tile packed into uint64 words.
//
// All methods are safe for concurrent use without external synchronization.
type DirtyRegion struct {
	// Bit index = ty * tilesX + tx.
	words []atomic.Uint64

	tilesX int
	tilesY int
	tileW  int
	tileH  int
}

// NewDirtyRegion creates a tracker for a width×height canvas divided into
// tileW×tileH tiles. All tiles start clean.
// Returns nil if any dimension is zero or negative.
func NewDirtyRegion(width, height, tileW, tileH int) *DirtyRegion {
	if width <= 0 || height <= 0 || tileW <= 0 || tileH <= 0 {
		return nil
	}

	tilesX := (width + tileW - 1) / tileW
	tilesY := (height + tileH - 1) / tileH

	return &DirtyRegion{
		words:  make([]atomic.Uint64, (tilesX*tilesY+63)/64),
		tilesX: tilesX,
		tilesY: tilesY,
		tileW:  tileW,
		tileH:  tileH,
	}
}

// Mark marks a single tile as dirty.
// Does nothing if coordinates are out of bounds.
func (d *DirtyRegion) Mark(tx, ty int) {
	if tx < 0 || tx >= d.tilesX || ty < 0 || ty >= d.tilesY {
		return
	}
	idx := ty*d.tilesX + tx
	d.words[idx/64].Or(1 << (idx & 63))
}

// MarkRect marks all tiles intersecting the pixel rectangle r as dirty.
func (d *DirtyRegion) MarkRect(r image.Rectangle) {
	if r.Empty() {
		return
	}

	tx1 := max(r.Min.X/d.tileW, 0)
	ty1 := max(r.Min.Y/d.tileH, 0)
	tx2 := min((r.Max.X-1)/d.tileW, d.tilesX-1)
	ty2 := min((r.Max.Y-1)/d.tileH, d.tilesY-1)

	for ty := ty1; ty <= ty2; ty++ {
		for tx := tx1; tx <= tx2; tx++ {
			d.Mark(tx, ty)
		}
	}
}

// MarkAll marks every tile as dirty.
func (d *DirtyRegion) MarkAll() {
	total := d.tilesX * d.tilesY
	full := total / 64
	for i := 0; i < full; i++ {
		d.words[i].Store(^uint64(0))
	}
	if rem := total % 64; rem > 0 {
		d.words[full].Store((uint64(1) << rem) - 1)
	}
}

// Clear marks every tile as clean.
func (d *DirtyRegion) Clear() {
	for i := range d.words {
		d.words[i].Store(0)
	}
}

// IsEmpty reports whether no tile is dirty.
func (d *DirtyRegion) IsEmpty() bool {
	for i := range d.words {
		if d.words[i].Load() != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of dirty tiles.
func (d *DirtyRegion) Count() int {
	count := 0
	for i := range d.words {
		count += bits.OnesCount64(d.words[i].Load())
	}
	return count
}

// ForEachDirty calls fn for each dirty tile in row-major order without
// clearing the flags.
func (d *DirtyRegion) ForEachDirty(fn func(tx, ty int)) {
	for wordIdx := range d.words {
		d.collect(wordIdx, d.words[wordIdx].Load(), fn)
	}
}

// Rects returns the pixel rectangles of the dirty tiles in row-major order.
// Rectangles are not clipped to the canvas.
func (d *DirtyRegion) Rects() []image.Rectangle {
	rects := make([]image.Rectangle, 0, d.Count())
	d.ForEachDirty(func(tx, ty int) {
		rects = append(rects, d.tileRect(tx, ty))
	})
	return rects
}

func (d *DirtyRegion) collect(wordIdx int, word uint64, fn func(tx, ty int)) {
	total := d.tilesX * d.tilesY
	for word != 0 {
		bit := bits.TrailingZeros64(word)
		idx := wordIdx*64 + bit
		if idx >= total {
			return
		}
		fn(idx%d.tilesX, idx/d.tilesX)
		word &^= 1 << bit
	}
}

func (d *DirtyRegion) tileRect(tx, ty int) image.Rectangle {
	return image.Rect(tx*d.tileW, ty*d.tileH, (tx+1)*d.tileW, (ty+1)*d.tileH)
}

// TilesX returns the number of tile columns.
func (d *DirtyRegion) TilesX() int {
	return d.tilesX
}

// TilesY returns the number of tile rows.
func (d *DirtyRegion) TilesY() int {
	return d.tilesY
}

