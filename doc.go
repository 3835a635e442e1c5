// Package softrender is a CPU rendering pipeline for 3D meshes.
//
// # Overview
//
// A mesh of vertices carrying arbitrary user data flows through three
// programmable stages, each a plain Go function:
//
//   - the vertex shader maps every vertex to homogeneous clip space
//   - geometry passes transform, generate or clip primitives
//   - the fragment shader colors every covered pixel
//
// Between the stages the pipeline clips primitives against the view
// volume, maps them to the screen, and rasterizes triangles, lines and
// points into a Framebuffer with stencil and depth testing and blending.
// Every stage runs on a fixed pool of worker goroutines.
//
// # Quick Start
//
//	fb := softrender.NewFramebuffer[softrender.RGBA8, softrender.Depth32, softrender.NoStencil](640, 480)
//	p, err := softrender.NewPipeline(fb, camera)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	vs, err := softrender.Draw(p, mesh)
//	if err != nil {
//	    return err
//	}
//	stats := softrender.RunVertexShader(vs, vertexShader).
//	    ClipPrimitives().
//	    Finish(fb.Viewport()).
//	    CullFaces(softrender.Clockwise).
//	    Run(fragmentShader)
//
// # Interpolation
//
// Values produced by the vertex shader are interpolated across primitives.
// Their type implements interp.Interpolate; package interp provides
// implementations for scalars, mathgl vectors and matrices, and tuples.
//
// # Attachments
//
// The framebuffer's color, depth and stencil types are type parameters.
// NoColor, NoDepth and NoStencil leave an attachment out without costing
// memory; the fragment stage then skips its test and writes.
//
// # Coordinate System
//
// Clip space follows the usual right-handed convention with depth in
// [0, w]. On screen:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Pixel (x, y) is sampled at its center (x+0.5, y+0.5)
//   - Depth 0 is nearest; a sample is kept when strictly nearer
//
// # Errors and Panics
//
// Misuse of the API is reported with errors wrapping the sentinels in
// errors.go. A panic inside a shader aborts the render and is re-raised on
// the calling goroutine as a *ShaderPanic.
package softrender

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
