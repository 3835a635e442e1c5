package softrender

import (
	"fmt"
	"sync"

	"github.com/gogpu/softrender/internal/parallel"
)

// Pipeline renders meshes into a framebuffer with user-supplied shaders.
//
// A render is a chain of stages:
//
//	vs, err := softrender.Draw(p, mesh)
//	stats := softrender.RunVertexShader(vs, vertexShader).
//	    ClipPrimitives().
//	    Finish(fb.Viewport()).
//	    CullFaces(softrender.Clockwise).
//	    Run(fragmentShader)
//
// U is the type of the global uniforms shared read-only by all shaders of a
// render. Stages run one after another; each stage fans out over the
// pipeline's worker pool and returns when all of its work is done.
//
// A Pipeline must not run two renders at the same time.
type Pipeline[U any, C Color[C], D Depth[D], S Stencil[S]] struct {
	fb       *Framebuffer[C, D, S]
	uniforms U
	pool     *parallel.WorkerPool
	opts     options
	once     sync.Once
}

// NewPipeline creates a pipeline rendering into fb.
// It fails with ErrEmptyFramebuffer when fb has a zero dimension.
func NewPipeline[U any, C Color[C], D Depth[D], S Stencil[S]](fb *Framebuffer[C, D, S], uniforms U, opts ...Option) (*Pipeline[U, C, D, S], error) {
	if fb == nil || fb.Width() == 0 || fb.Height() == 0 {
		w, h := 0, 0
		if fb != nil {
			w, h = fb.Width(), fb.Height()
		}
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyFramebuffer, w, h)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pipeline[U, C, D, S]{
		fb:       fb,
		uniforms: uniforms,
		pool:     parallel.NewWorkerPool(o.workers),
		opts:     o,
	}

	Logger().Debug("softrender: pipeline created",
		"width", fb.Width(), "height", fb.Height(),
		"workers", p.pool.Workers(),
		"tile", fmt.Sprintf("%dx%d", o.tileW, o.tileH))

	return p, nil
}

// Framebuffer returns the render target.
func (p *Pipeline[U, C, D, S]) Framebuffer() *Framebuffer[C, D, S] { return p.fb }

// Uniforms returns a pointer to the global uniforms. Modify them only
// between renders.
func (p *Pipeline[U, C, D, S]) Uniforms() *U { return &p.uniforms }

// SetUniforms replaces the global uniforms.
func (p *Pipeline[U, C, D, S]) SetUniforms(u U) { p.uniforms = u }

// Workers returns the number of worker goroutines.
func (p *Pipeline[U, C, D, S]) Workers() int { return p.pool.Workers() }

// Close stops the worker pool. A closed pipeline still renders, on the
// calling goroutine.
func (p *Pipeline[U, C, D, S]) Close() {
	p.once.Do(p.pool.Close)
}

// Draw binds a mesh to the pipeline and returns the vertex stage.
//
// The mesh is only read. Unindexed meshes are drawn in vertex order; strip,
// fan and loop topologies are expanded on the fly. Draw fails with
// ErrInvalidVertexCount or ErrUnsupportedTopology when the mesh cannot form
// primitives.
func Draw[V, U any, C Color[C], D Depth[D], S Stencil[S]](p *Pipeline[U, C, D, S], mesh *Mesh[V]) (*VertexStage[V, U, C, D, S], error) {
	indices, prim, err := mesh.resolveIndices()
	if err != nil {
		return nil, fmt.Errorf("softrender: draw: %w", err)
	}
	return &VertexStage[V, U, C, D, S]{
		p:       p,
		mesh:    mesh,
		indices: indices,
		prim:    prim,
	}, nil
}
