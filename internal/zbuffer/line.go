package zbuffer

import "math"

// DrawLine draws a line from p1 to p2 with Bresenham stepping.
//
// With smooth shading colour is interpolated from p1 to p2; otherwise the
// line takes p2's colour. Depth is always interpolated so the depth test
// applies to every fragment. A line width above one widens the line across
// its minor axis.
//
// Segments reaching outside the clip rectangle are shortened to it first,
// so the number of steps is bounded by the buffer size.
func (b *Buffer) DrawLine(p1, p2 *Point, smooth bool) {
	width := max(1, int(b.State.LineWidth+0.5))
	clip := b.clip()
	flat := p2.Pixel()

	bounds := Rect{X0: clip.X0 - width, Y0: clip.Y0 - width, X1: clip.X1 + width, Y1: clip.Y1 + width}
	if !bounds.contains(p1.X, p1.Y) || !bounds.contains(p2.X, p2.Y) {
		c1, c2, ok := clipSegment(p1, p2, bounds)
		if !ok {
			return
		}
		p1, p2 = &c1, &c2
	}

	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	n := max(abs(dx), abs(dy))

	lo := -(width - 1) / 2
	hi := lo + width
	xMajor := abs(dx) >= abs(dy)

	sx, sy := sign(dx), sign(dy)
	ax, ay := 2*abs(dx), 2*abs(dy)

	x, y := p1.X, p1.Y
	var errAcc int
	if xMajor {
		errAcc = ay - abs(dx)
	} else {
		errAcc = ax - abs(dy)
	}

	for i := 0; i <= n; i++ {
		var f float64
		if n > 0 {
			f = float64(i) / float64(n)
		}
		z := DepthValue(int32(float64(p1.Z) + f*float64(p2.Z-p1.Z)))
		color := flat
		if smooth {
			color = RGB(
				p1.R+int(f*float64(p2.R-p1.R)+0.5),
				p1.G+int(f*float64(p2.G-p1.G)+0.5),
				p1.B+int(f*float64(p2.B-p1.B)+0.5),
			)
		}

		for k := lo; k < hi; k++ {
			px, py := x, y
			if xMajor {
				py += k
			} else {
				px += k
			}
			if px < clip.X0 || px >= clip.X1 || py < clip.Y0 || py >= clip.Y1 {
				continue
			}
			b.fragment(py*b.xsize+px, z, color)
		}

		if xMajor {
			if errAcc >= 0 {
				y += sy
				errAcc -= ax
			}
			errAcc += ay
			x += sx
		} else {
			if errAcc >= 0 {
				x += sx
				errAcc -= ay
			}
			errAcc += ax
			y += sy
		}
	}
}

func (r Rect) contains(x, y int) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}

// clipSegment cuts the segment p1-p2 to the pixels of r with the
// Liang-Barsky parametric test. Depth and colour of the new end points are
// interpolated linearly, as DrawLine does between the original ones. ok is
// false when the segment misses r.
func clipSegment(p1, p2 *Point, r Rect) (a, b Point, ok bool) {
	x0, y0 := float64(p1.X), float64(p1.Y)
	dx, dy := float64(p2.X)-x0, float64(p2.Y)-y0

	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - float64(r.X0)},
		{dx, float64(r.X1-1) - x0},
		{-dy, y0 - float64(r.Y0)},
		{dy, float64(r.Y1-1) - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	return lerpPoint(p1, p2, t0), lerpPoint(p1, p2, t1), true
}

func lerpPoint(p1, p2 *Point, t float64) Point {
	if t == 0 {
		return *p1
	}
	if t == 1 {
		return *p2
	}
	mix := func(a, b float64) float64 { return a + t*(b-a) }
	return Point{
		X: int(math.Floor(mix(float64(p1.X), float64(p2.X)) + 0.5)),
		Y: int(math.Floor(mix(float64(p1.Y), float64(p2.Y)) + 0.5)),
		Z: int32(mix(float64(p1.Z), float64(p2.Z))),
		S: int32(mix(float64(p1.S), float64(p2.S))),
		T: int32(mix(float64(p1.T), float64(p2.T))),
		R: int(mix(float64(p1.R), float64(p2.R)) + 0.5),
		G: int(mix(float64(p1.G), float64(p2.G)) + 0.5),
		B: int(mix(float64(p1.B), float64(p2.B)) + 0.5),
		W: mix(p1.W, p2.W),
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
