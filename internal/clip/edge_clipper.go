package clip

// EdgeClipper clips line segments against a rectangular clip region.
type EdgeClipper struct {
	clip Rect
}

// NewEdgeClipper creates an edge clipper for the given bounds.
func NewEdgeClipper(clip Rect) *EdgeClipper {
	return &EdgeClipper{clip: clip}
}

// Clip returns the clip rectangle.
func (ec *EdgeClipper) Clip() Rect {
	return ec.clip
}

// Outcode constants for the Cohen-Sutherland test.
const (
	outcodeInside = 0
	outcodeLeft   = 1
	outcodeRight  = 2
	outcodeBottom = 4
	outcodeTop    = 8
)

func (ec *EdgeClipper) outcode(p Point) int {
	code := outcodeInside

	if p.X < ec.clip.X {
		code |= outcodeLeft
	} else if p.X > ec.clip.Right() {
		code |= outcodeRight
	}

	if p.Y < ec.clip.Y {
		code |= outcodeTop
	} else if p.Y > ec.clip.Bottom() {
		code |= outcodeBottom
	}

	return code
}

// Rejects reports whether the segment is trivially outside the clip region,
// that is, both endpoints lie beyond the same edge.
func (ec *EdgeClipper) Rejects(p0, p1 Point) bool {
	return ec.outcode(p0)&ec.outcode(p1) != 0
}

// Accepts reports whether both endpoints are inside the clip region.
func (ec *EdgeClipper) Accepts(p0, p1 Point) bool {
	return ec.outcode(p0)|ec.outcode(p1) == 0
}

// ClipLine clips the segment p0→p1 to the clip rectangle.
// ok is false when no part of the segment is inside.
func (ec *EdgeClipper) ClipLine(p0, p1 Point) (seg LineSeg, ok bool) {
	if ec.Accepts(p0, p1) {
		return LineSeg{P0: p0, P1: p1}, true
	}
	if ec.Rejects(p0, p1) {
		return LineSeg{}, false
	}
	return LiangBarsky(p0, p1, ec.clip)
}
