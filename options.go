package softrender

import "github.com/gogpu/softrender/internal/parallel"

// Option configures a Pipeline during creation.
//
// Example:
//
//	p, err := softrender.NewPipeline(fb, uniforms,
//	    softrender.WithWorkers(4),
//	    softrender.WithTileSize(64, 16),
//	)
type Option func(*options)

type options struct {
	workers       int
	tileW, tileH  int
	vertexChunk   int
	geometryChunk int
}

// Default chunk sizes for the per-vertex and per-primitive stages.
const (
	DefaultVertexChunk   = 1024
	DefaultGeometryChunk = 1024
)

func defaultOptions() options {
	return options{
		tileW:         parallel.DefaultTileWidth,
		tileH:         parallel.DefaultTileHeight,
		vertexChunk:   DefaultVertexChunk,
		geometryChunk: DefaultGeometryChunk,
	}
}

// WithWorkers sets the number of worker goroutines.
// Zero or a negative value uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithTileSize sets the default tile size of the fragment stage.
// Non-positive values keep the default of 32×32 pixels.
func WithTileSize(w, h int) Option {
	return func(o *options) {
		if w > 0 {
			o.tileW = w
		}
		if h > 0 {
			o.tileH = h
		}
	}
}

// WithVertexChunk sets how many vertices one worker shades per claimed chunk.
func WithVertexChunk(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.vertexChunk = n
		}
	}
}

// WithGeometryChunk sets how many primitives one geometry task processes.
func WithGeometryChunk(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.geometryChunk = n
		}
	}
}
