package clip

// LiangBarsky clips the segment p0→p1 against r using the parametric
// Liang-Barsky algorithm. The returned segment keeps the direction of the
// input. ok is false when the segment misses r entirely.
func LiangBarsky(p0, p1 Point, r Rect) (seg LineSeg, ok bool) {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y

	p := [4]float32{-dx, dx, -dy, dy}
	q := [4]float32{p0.X - r.X, r.Right() - p0.X, p0.Y - r.Y, r.Bottom() - p0.Y}

	t0, t1 := float32(0), float32(1)
	for i := range p {
		if p[i] == 0 {
			// Parallel to this edge: either fully outside or irrelevant.
			if q[i] < 0 {
				return LineSeg{}, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > t1 {
				return LineSeg{}, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return LineSeg{}, false
			}
			t1 = min(t1, t)
		}
	}

	return LineSeg{
		P0: Point{X: p0.X + t0*dx, Y: p0.Y + t0*dy},
		P1: Point{X: p0.X + t1*dx, Y: p0.Y + t1*dy},
	}, true
}
