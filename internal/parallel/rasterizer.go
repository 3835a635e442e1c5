package parallel

// TileRasterizer dispatches one task per tile of a grid onto a WorkerPool.
//
// Every task receives a distinct tile, so tasks writing only inside their own
// tile never touch the same pixel.
type TileRasterizer struct {
	grid *TileGrid
	pool *WorkerPool
}

// NewTileRasterizer binds a grid to a pool. The pool is not owned.
func NewTileRasterizer(pool *WorkerPool, grid *TileGrid) *TileRasterizer {
	return &TileRasterizer{grid: grid, pool: pool}
}

// Grid returns the tile layout.
func (tr *TileRasterizer) Grid() *TileGrid {
	return tr.grid
}

// Run calls fn once for every tile and waits for all calls to return.
// index is the tile's flat index in the grid. A panic in fn is re-raised on
// the calling goroutine.
func (tr *TileRasterizer) Run(fn func(index int, tile Tile)) {
	tiles := tr.grid.AllTiles()
	work := make([]func(), len(tiles))
	for i, tile := range tiles {
		work[i] = func() { fn(i, tile) }
	}
	tr.pool.ExecuteAll(work)
}

// RunSelected is like Run but only visits the tiles whose flat indices are
// listed.
func (tr *TileRasterizer) RunSelected(indices []int, fn func(index int, tile Tile)) {
	tiles := tr.grid.AllTiles()
	work := make([]func(), len(indices))
	for i, idx := range indices {
		tile := tiles[idx]
		work[i] = func() { fn(idx, tile) }
	}
	tr.pool.ExecuteAll(work)
}
