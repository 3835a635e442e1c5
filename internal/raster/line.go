// Package raster provides the scan-conversion primitives of the renderer:
// line walkers and triangle edge setup.
//
// Walkers do not clip. Callers clip segments to the target first and discard
// plots that fall outside the pixels they own.
package raster

import "github.com/chewxy/math32"

// Plotter receives one pixel of a line together with its coverage in (0, 1].
type Plotter func(x, y int, coverage float32)

// Bresenham walks the integer line from (x0, y0) to (x1, y1) inclusive,
// plotting every pixel with full coverage.
func Bresenham(x0, y0, x1, y1 int, plot Plotter) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		plot(x0, y0, 1)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Wu walks the line from (x0, y0) to (x1, y1) with Xiaolin Wu's algorithm.
// Integer coordinates are pixel centers.
// Each step plots the two pixels straddling the ideal line with coverages
// that sum to one. Pixels with zero coverage are not plotted.
func Wu(x0, y0, x1, y1 float32, plot Plotter) {
	steep := math32.Abs(y1-y0) > math32.Abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	emit := func(x, y int, c float32) {
		if c <= 0 {
			return
		}
		if steep {
			plot(y, x, c)
		} else {
			plot(x, y, c)
		}
	}

	dx := x1 - x0
	gradient := float32(1)
	if dx != 0 {
		gradient = (y1 - y0) / dx
	}

	// First endpoint.
	xend := round(x0)
	yend := y0 + gradient*(xend-x0)
	xgap := rfpart(x0 + 0.5)
	xpx1 := int(xend)
	ypx1 := int(math32.Floor(yend))
	emit(xpx1, ypx1, rfpart(yend)*xgap)
	emit(xpx1, ypx1+1, fpart(yend)*xgap)
	intery := yend + gradient

	// Second endpoint.
	xend = round(x1)
	yend = y1 + gradient*(xend-x1)
	xgap = fpart(x1 + 0.5)
	xpx2 := int(xend)
	ypx2 := int(math32.Floor(yend))
	if xpx2 != xpx1 {
		emit(xpx2, ypx2, rfpart(yend)*xgap)
		emit(xpx2, ypx2+1, fpart(yend)*xgap)
	}

	for x := xpx1 + 1; x < xpx2; x++ {
		iy := int(math32.Floor(intery))
		emit(x, iy, rfpart(intery))
		emit(x, iy+1, fpart(intery))
		intery += gradient
	}
}

func round(x float32) float32 { return math32.Floor(x + 0.5) }

func fpart(x float32) float32 { return x - math32.Floor(x) }

func rfpart(x float32) float32 { return 1 - fpart(x) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
