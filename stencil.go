package softrender

import (
	"cmp"

	"golang.org/x/exp/constraints"
)

// Stencil is the contract for stencil attachment values.
// The zero value is what a cleared stencil buffer holds.
type Stencil[S any] interface {
	comparable

	// Compare returns -1, 0 or +1 when the receiver is less than, equal to
	// or greater than other.
	Compare(other S) int

	// Invert returns the bitwise complement.
	Invert() S

	// Increment adds one, wrapping to zero or saturating at the maximum.
	Increment(wrap bool) S

	// Decrement subtracts one, wrapping to the maximum or saturating at zero.
	Decrement(wrap bool) S
}

// Stencil8 is an 8-bit stencil value.
type Stencil8 uint8

// Stencil16 is a 16-bit stencil value.
type Stencil16 uint16

// Stencil32 is a 32-bit stencil value.
type Stencil32 uint32

func (s Stencil8) Compare(o Stencil8) int       { return cmp.Compare(s, o) }
func (s Stencil8) Invert() Stencil8             { return ^s }
func (s Stencil8) Increment(wrap bool) Stencil8 { return increment(s, wrap) }
func (s Stencil8) Decrement(wrap bool) Stencil8 { return decrement(s, wrap) }

func (s Stencil16) Compare(o Stencil16) int       { return cmp.Compare(s, o) }
func (s Stencil16) Invert() Stencil16             { return ^s }
func (s Stencil16) Increment(wrap bool) Stencil16 { return increment(s, wrap) }
func (s Stencil16) Decrement(wrap bool) Stencil16 { return decrement(s, wrap) }

func (s Stencil32) Compare(o Stencil32) int       { return cmp.Compare(s, o) }
func (s Stencil32) Invert() Stencil32             { return ^s }
func (s Stencil32) Increment(wrap bool) Stencil32 { return increment(s, wrap) }
func (s Stencil32) Decrement(wrap bool) Stencil32 { return decrement(s, wrap) }

func increment[T constraints.Unsigned](v T, wrap bool) T {
	if v == ^T(0) && !wrap {
		return v
	}
	return v + 1
}

func decrement[T constraints.Unsigned](v T, wrap bool) T {
	if v == 0 && !wrap {
		return v
	}
	return v - 1
}

// NoStencil is the stencil type of a framebuffer without a stencil
// attachment.
type NoStencil struct{}

func (NoStencil) Compare(NoStencil) int    { return 0 }
func (NoStencil) Invert() NoStencil        { return NoStencil{} }
func (NoStencil) Increment(bool) NoStencil { return NoStencil{} }
func (NoStencil) Decrement(bool) NoStencil { return NoStencil{} }

// StencilTest selects when a fragment passes the stencil test. The draw's
// reference value is compared against the value present in the buffer.
type StencilTest uint8

const (
	StencilAlways StencilTest = iota
	StencilNever
	StencilLess      // reference < present
	StencilGreater   // reference > present
	StencilLessEqual // reference <= present
	StencilGreaterEqual
	StencilEqual
	StencilNotEqual
)

// Passes reports whether the test accepts a comparison result, where c is
// reference.Compare(present).
func (t StencilTest) Passes(c int) bool {
	switch t {
	case StencilAlways:
		return true
	case StencilNever:
		return false
	case StencilLess:
		return c < 0
	case StencilGreater:
		return c > 0
	case StencilLessEqual:
		return c <= 0
	case StencilGreaterEqual:
		return c >= 0
	case StencilEqual:
		return c == 0
	case StencilNotEqual:
		return c != 0
	}
	return false
}

// StencilPasses applies test to the reference value and the value present in
// the buffer.
func StencilPasses[S Stencil[S]](test StencilTest, present, reference S) bool {
	switch test {
	case StencilAlways:
		return true
	case StencilNever:
		return false
	}
	return test.Passes(reference.Compare(present))
}

// StencilOpKind selects how a passing fragment updates the stencil buffer.
type StencilOpKind uint8

const (
	StencilKeep StencilOpKind = iota
	StencilInvert
	StencilZero
	StencilReplace
	StencilIncrement
	StencilDecrement
)

// StencilOp is a stencil update. The zero value keeps the buffer unchanged.
type StencilOp[S Stencil[S]] struct {
	Kind StencilOpKind

	// Value is written by StencilReplace.
	Value S

	// Wrap selects wrapping instead of saturating arithmetic for
	// StencilIncrement and StencilDecrement.
	Wrap bool
}

// ReplaceStencil returns an op that writes v.
func ReplaceStencil[S Stencil[S]](v S) StencilOp[S] {
	return StencilOp[S]{Kind: StencilReplace, Value: v}
}

// IncrementStencil returns an op that adds one.
func IncrementStencil[S Stencil[S]](wrap bool) StencilOp[S] {
	return StencilOp[S]{Kind: StencilIncrement, Wrap: wrap}
}

// DecrementStencil returns an op that subtracts one.
func DecrementStencil[S Stencil[S]](wrap bool) StencilOp[S] {
	return StencilOp[S]{Kind: StencilDecrement, Wrap: wrap}
}

// Apply returns the new buffer value.
func (op StencilOp[S]) Apply(present S) S {
	switch op.Kind {
	case StencilInvert:
		return present.Invert()
	case StencilZero:
		var zero S
		return zero
	case StencilReplace:
		return op.Value
	case StencilIncrement:
		return present.Increment(op.Wrap)
	case StencilDecrement:
		return present.Decrement(op.Wrap)
	}
	return present
}
