package softrender

import "github.com/chewxy/math32"

// Depth is the contract for depth attachment values.
//
// Depth values come from the normalized z of a fragment, which lies in
// [0, 1] with smaller values nearer to the viewer.
type Depth[D any] interface {
	// Far returns the value a cleared depth buffer holds. Every valid depth
	// is nearer than Far.
	Far() D

	// FromScalar converts a normalized depth.
	FromScalar(z float32) D

	// Nearer reports whether the receiver is strictly nearer than the value
	// already stored.
	Nearer(than D) bool
}

// Depth32 is a float32 depth value.
type Depth32 float32

// Far implements Depth.
func (Depth32) Far() Depth32 { return Depth32(math32.Inf(1)) }

// FromScalar implements Depth.
func (Depth32) FromScalar(z float32) Depth32 { return Depth32(z) }

// Nearer implements Depth.
func (d Depth32) Nearer(than Depth32) bool { return d < than }

// NoDepth is the depth type of a framebuffer without a depth attachment.
// Every fragment passes the depth test.
type NoDepth struct{}

// Far implements Depth.
func (NoDepth) Far() NoDepth { return NoDepth{} }

// FromScalar implements Depth.
func (NoDepth) FromScalar(float32) NoDepth { return NoDepth{} }

// Nearer implements Depth.
func (NoDepth) Nearer(NoDepth) bool { return true }
