package blend

// separable returns a W3C separable blend mode composited with source-over.
func separable(mode Mode) Func {
	var mix func(cb, cs float32) float32
	switch mode {
	case Multiply:
		mix = func(cb, cs float32) float32 { return cb * cs }
	case Screen:
		mix = func(cb, cs float32) float32 { return cb + cs - cb*cs }
	case Darken:
		mix = func(cb, cs float32) float32 { return min(cb, cs) }
	case Lighten:
		mix = func(cb, cs float32) float32 { return max(cb, cs) }
	default:
		mix = func(cb, cs float32) float32 {
			if cb > cs {
				return cb - cs
			}
			return cs - cb
		}
	}

	return func(s, d Color) Color {
		a := s.A + d.A*(1-s.A)
		if a == 0 {
			return Color{}
		}
		channel := func(cs, cb float32) float32 {
			co := s.A*(1-d.A)*cs + s.A*d.A*mix(cb, cs) + (1-s.A)*d.A*cb
			return clamp01(co / a)
		}
		return Color{
			R: channel(s.R, d.R),
			G: channel(s.G, d.G),
			B: channel(s.B, d.B),
			A: clamp01(a),
		}
	}
}
