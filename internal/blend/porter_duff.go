// Package blend implements Porter-Duff compositing operators and separable
// blend modes on straight-alpha float colors.
//
// Inputs and outputs are straight (non-premultiplied) alpha in [0, 1].
// Operators premultiply internally, combine, and divide alpha back out.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Mode selects a compositing operation.
type Mode uint8

const (
	Clear           Mode = iota // 0
	Source                      // S
	Destination                 // D
	SourceOver                  // S + D*(1-Sa)
	DestinationOver             // S*(1-Da) + D
	SourceIn                    // S*Da
	DestinationIn               // D*Sa
	SourceOut                   // S*(1-Da)
	DestinationOut              // D*(1-Sa)
	SourceAtop                  // S*Da + D*(1-Sa)
	DestinationAtop             // S*(1-Da) + D*Sa
	Xor                         // S*(1-Da) + D*(1-Sa)
	Plus                        // S + D, clamped
	Multiply                    // separable
	Screen                      // separable
	Darken                      // separable
	Lighten                     // separable
	Difference                  // separable
)

var modeNames = [...]string{
	"clear", "source", "destination", "source-over", "destination-over",
	"source-in", "destination-in", "source-out", "destination-out",
	"source-atop", "destination-atop", "xor", "plus",
	"multiply", "screen", "darken", "lighten", "difference",
}

// String returns the CSS-style name of the mode.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode returns the mode with the given CSS-style name.
func ParseMode(name string) (Mode, bool) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), true
		}
	}
	return 0, false
}

// Func composites src onto dst.
type Func func(src, dst Color) Color

// GetFunc returns the compositing function for the mode.
// Unknown modes fall back to SourceOver.
func GetFunc(mode Mode) Func {
	switch mode {
	case Source:
		return func(s, _ Color) Color { return s }
	case Destination:
		return func(_, d Color) Color { return d }
	case Multiply, Screen, Darken, Lighten, Difference:
		return separable(mode)
	}
	if mode > Plus {
		mode = SourceOver
	}
	return func(s, d Color) Color { return porterDuff(mode, s, d) }
}

// factors returns the Porter-Duff coefficients Fa (for source) and Fb (for
// destination).
func factors(mode Mode, sa, da float32) (fa, fb float32) {
	switch mode {
	case Clear:
		return 0, 0
	case SourceOver:
		return 1, 1 - sa
	case DestinationOver:
		return 1 - da, 1
	case SourceIn:
		return da, 0
	case DestinationIn:
		return 0, sa
	case SourceOut:
		return 1 - da, 0
	case DestinationOut:
		return 0, 1 - sa
	case SourceAtop:
		return da, 1 - sa
	case DestinationAtop:
		return 1 - da, sa
	case Xor:
		return 1 - da, 1 - sa
	case Plus:
		return 1, 1
	}
	return 1, 1 - sa
}

func porterDuff(mode Mode, s, d Color) Color {
	fa, fb := factors(mode, s.A, d.A)

	a := clamp01(s.A*fa + d.A*fb)
	if a == 0 {
		return Color{}
	}

	// Premultiplied combination, then back to straight alpha.
	sa, da := s.A*fa, d.A*fb
	return Color{
		R: clamp01((s.R*sa + d.R*da) / a),
		G: clamp01((s.G*sa + d.G*da) / a),
		B: clamp01((s.B*sa + d.B*da) / a),
		A: a,
	}
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
