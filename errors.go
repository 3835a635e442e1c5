package softrender

import (
	"errors"

	"github.com/gogpu/softrender/internal/parallel"
)

// Sentinel errors. Functions wrap them with context; test with errors.Is.
var (
	// ErrInvalidCoordinate is returned by checked framebuffer accessors for
	// coordinates outside the framebuffer.
	ErrInvalidCoordinate = errors.New("softrender: coordinate out of bounds")

	// ErrInvalidVertexCount is returned when the number of vertices or
	// indices does not fit the mesh topology.
	ErrInvalidVertexCount = errors.New("softrender: vertex count does not match topology")

	// ErrIndicesExist is returned by Mesh.Index when the mesh already has
	// indices.
	ErrIndicesExist = errors.New("softrender: mesh is already indexed")

	// ErrEmptyFramebuffer is returned when a pipeline is created for a
	// framebuffer with a zero dimension.
	ErrEmptyFramebuffer = errors.New("softrender: framebuffer has zero size")

	// ErrUnsupportedTopology is returned for unknown topology values.
	ErrUnsupportedTopology = errors.New("softrender: unsupported topology")

	// ErrUnknownColor is returned by ParseColor for unrecognized input.
	ErrUnknownColor = errors.New("softrender: unknown color")

	// ErrTextureSize is returned by NewTexture when the texel count does not
	// match a non-empty width×height.
	ErrTextureSize = errors.New("softrender: texel count does not match texture size")
)

// ShaderPanic is the value re-raised on the calling goroutine when a shader
// panics on a worker. Value holds the original panic value.
//
// Shader failures abort the render; the framebuffer contents are unspecified
// afterwards.
type ShaderPanic = parallel.Panic
