package parallel

import "image"

// TileGrid divides a canvas into tiles of a fixed size.
//
// Tiles are stored in a flat slice in row-major order:
// index = ty * tilesX + tx.
//
// Thread safety: a TileGrid is immutable after construction.
type TileGrid struct {
	tiles  []Tile
	tilesX int
	tilesY int
	tileW  int
	tileH  int
	width  int
	height int
}

// NewTileGrid creates a grid covering a width×height canvas with tiles of
// tileW×tileH pixels. Non-positive tile dimensions fall back to the defaults.
// A canvas with a zero dimension yields an empty grid.
func NewTileGrid(width, height, tileW, tileH int) *TileGrid {
	if tileW <= 0 {
		tileW = DefaultTileWidth
	}
	if tileH <= 0 {
		tileH = DefaultTileHeight
	}
	if width <= 0 || height <= 0 {
		return &TileGrid{tileW: tileW, tileH: tileH}
	}

	g := &TileGrid{
		tilesX: (width + tileW - 1) / tileW,
		tilesY: (height + tileH - 1) / tileH,
		tileW:  tileW,
		tileH:  tileH,
		width:  width,
		height: height,
	}
	g.allocateTiles()
	return g
}

func (g *TileGrid) allocateTiles() {
	g.tiles = make([]Tile, g.tilesX*g.tilesY)
	for ty := range g.tilesY {
		for tx := range g.tilesX {
			minX, minY := tx*g.tileW, ty*g.tileH
			g.tiles[ty*g.tilesX+tx] = Tile{
				X:      tx,
				Y:      ty,
				MinX:   minX,
				MinY:   minY,
				Width:  min(g.tileW, g.width-minX),
				Height: min(g.tileH, g.height-minY),
			}
		}
	}
}

// Index returns the flat index of tile (tx, ty).
func (g *TileGrid) Index(tx, ty int) int {
	return ty*g.tilesX + tx
}

// TileRange returns the inclusive range of tile coordinates overlapping the
// pixel rectangle r. ok is false when r does not overlap the canvas.
func (g *TileGrid) TileRange(r image.Rectangle) (tx1, ty1, tx2, ty2 int, ok bool) {
	r = r.Intersect(image.Rect(0, 0, g.width, g.height))
	if r.Empty() {
		return 0, 0, 0, 0, false
	}
	return r.Min.X / g.tileW, r.Min.Y / g.tileH,
		(r.Max.X - 1) / g.tileW, (r.Max.Y - 1) / g.tileH, true
}

// TileCount returns the total number of tiles.
func (g *TileGrid) TileCount() int {
	return len(g.tiles)
}

// TilesX returns the number of tile columns.
func (g *TileGrid) TilesX() int {
	return g.tilesX
}

// TilesY returns the number of tile rows.
func (g *TileGrid) TilesY() int {
	return g.tilesY
}

// TileSize returns the nominal tile dimensions.
func (g *TileGrid) TileSize() (w, h int) {
	return g.tileW, g.tileH
}

// Width returns the canvas width in pixels.
func (g *TileGrid) Width() int {
	return g.width
}

// Height returns the canvas height in pixels.
func (g *TileGrid) Height() int {
	return g.height
}

// AllTiles returns the tiles in row-major order. The slice must not be
// modified.
func (g *TileGrid) AllTiles() []Tile {
	return g.tiles
}

// ForEach calls fn for each tile in row-major order.
func (g *TileGrid) ForEach(fn func(tile Tile)) {
	for _, tile := range g.tiles {
		fn(tile)
	}
}
