// Package parallel provides the fork/join machinery of the renderer.
//
// The framebuffer is divided into rectangular tiles that are rasterized
// independently. Key pieces:
//
//   - WorkerPool: fixed goroutine pool with work stealing and panic propagation
//   - ForEachChunk: chunked parallel-for driven by an atomic cursor
//   - TileGrid: tile layout with a configurable tile size
//   - DirtyRegion: lock-free bitmap of tiles touched since the last upload
package parallel

import "image"

// Default tile dimensions.
const (
	// DefaultTileWidth is the tile width used when none is configured.
	DefaultTileWidth = 32

	// DefaultTileHeight is the tile height used when none is configured.
	DefaultTileHeight = 32
)

// Tile is one rectangular cell of a TileGrid.
//
// Edge tiles may be smaller than the grid's tile size when the canvas is not
// evenly divisible by it.
type Tile struct {
	// X is the tile column index (0-based).
	X int

	// Y is the tile row index (0-based).
	Y int

	// MinX is the left pixel column covered by the tile.
	MinX int

	// MinY is the top pixel row covered by the tile.
	MinY int

	// Width is the width in pixels.
	Width int

	// Height is the height in pixels.
	Height int
}

// Bounds returns the pixel rectangle covered by the tile.
func (t Tile) Bounds() image.Rectangle {
	return image.Rect(t.MinX, t.MinY, t.MinX+t.Width, t.MinY+t.Height)
}

