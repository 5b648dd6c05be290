package zbuffer

import (
	"math"

	"github.com/gogpu/softgl/internal/parallel"
)

// triangleSetup holds the per-triangle constants shared by every strip.
type triangleSetup struct {
	p [3]*Point

	// area is the signed doubled area; edge values are divided by it so a
	// pixel is inside when all three weights are non-negative, whatever the
	// winding.
	invArea float64

	// iw are the reciprocal clip w of the vertices.
	iw [3]float64

	smooth   bool
	textured bool
	flat     uint32

	tex      *Sampler
	modulate bool

	bounds Rect
}

// edge is the doubled signed area of triangle (a, b, c).
func edge(ax, ay, bx, by, cx, cy float64) float64 {
	return (cx-ax)*(by-ay) - (cy-ay)*(bx-ax)
}

// FillTriangle scan-converts one triangle with the current raster state.
//
// With smooth shading the colour is interpolated; otherwise the whole
// triangle takes p2's colour. When a texture is bound each fragment
// samples it at the interpolated coordinate, modulated by the colour if
// TexModulate is set. Colour and texture coordinates are interpolated in a
// perspective-correct way using W; depth is interpolated linearly.
//
// Degenerate triangles draw nothing.
func (b *Buffer) FillTriangle(p0, p1, p2 *Point, smooth bool) {
	ts := triangleSetup{
		p:        [3]*Point{p0, p1, p2},
		smooth:   smooth,
		textured: b.State.Texture != nil,
		flat:     p2.Pixel(),
		tex:      b.State.Texture,
		modulate: b.State.TexModulate,
	}

	area := edge(float64(p0.X), float64(p0.Y), float64(p1.X), float64(p1.Y), float64(p2.X), float64(p2.Y))
	if area == 0 {
		return
	}
	ts.invArea = 1 / area

	for i, p := range ts.p {
		if p.W == 0 {
			ts.iw[i] = 1
		} else {
			ts.iw[i] = 1 / p.W
		}
	}

	clip := b.clip()
	ts.bounds = Rect{
		X0: max(clip.X0, min(p0.X, p1.X, p2.X)),
		Y0: max(clip.Y0, min(p0.Y, p1.Y, p2.Y)),
		X1: min(clip.X1, max(p0.X, p1.X, p2.X)+1),
		Y1: min(clip.Y1, max(p0.Y, p1.Y, p2.Y)+1),
	}
	if ts.bounds.X0 >= ts.bounds.X1 || ts.bounds.Y0 >= ts.bounds.Y1 {
		return
	}

	rows := ts.bounds.Y1 - ts.bounds.Y0
	if b.pool == nil || b.pool.Workers() < 2 || b.ysize <= b.parallelRows {
		b.fillRows(&ts, ts.bounds.Y0, ts.bounds.Y1)
		return
	}

	strips := parallel.Strips(rows, b.pool.Workers())
	jobs := make([]func(), len(strips))
	for i, s := range strips {
		y0, y1 := ts.bounds.Y0+s.Start, ts.bounds.Y0+s.End
		jobs[i] = func() { b.fillRows(&ts, y0, y1) }
	}
	b.pool.Run(jobs)
}

// fillRows rasterizes rows [y0, y1) of the triangle's bounding box.
func (b *Buffer) fillRows(ts *triangleSetup, y0, y1 int) {
	p0, p1, p2 := ts.p[0], ts.p[1], ts.p[2]
	x0f, y0f := float64(p0.X), float64(p0.Y)
	x1f, y1f := float64(p1.X), float64(p1.Y)
	x2f, y2f := float64(p2.X), float64(p2.Y)

	for y := y0; y < y1; y++ {
		py := float64(y) + 0.5
		row := y * b.xsize
		for x := ts.bounds.X0; x < ts.bounds.X1; x++ {
			px := float64(x) + 0.5

			l0 := edge(x1f, y1f, x2f, y2f, px, py) * ts.invArea
			l1 := edge(x2f, y2f, x0f, y0f, px, py) * ts.invArea
			l2 := edge(x0f, y0f, x1f, y1f, px, py) * ts.invArea
			if l0 < 0 || l1 < 0 || l2 < 0 {
				continue
			}

			z := l0*float64(p0.Z) + l1*float64(p1.Z) + l2*float64(p2.Z)
			b.fragment(row+x, DepthValue(int32(z+0.5)), ts.shade(l0, l1, l2))
		}
	}
}

// shade computes the fragment colour from the barycentric weights.
func (ts *triangleSetup) shade(l0, l1, l2 float64) uint32 {
	if !ts.smooth && !ts.textured {
		return ts.flat
	}

	p0, p1, p2 := ts.p[0], ts.p[1], ts.p[2]

	// Perspective weights.
	q0, q1, q2 := l0*ts.iw[0], l1*ts.iw[1], l2*ts.iw[2]
	inv := 1 / (q0 + q1 + q2)
	q0, q1, q2 = q0*inv, q1*inv, q2*inv

	var r, g, bl int
	if ts.smooth {
		r = int(q0*float64(p0.R) + q1*float64(p1.R) + q2*float64(p2.R) + 0.5)
		g = int(q0*float64(p0.G) + q1*float64(p1.G) + q2*float64(p2.G) + 0.5)
		bl = int(q0*float64(p0.B) + q1*float64(p1.B) + q2*float64(p2.B) + 0.5)
	} else {
		r, g, bl = p2.R, p2.G, p2.B
	}

	if !ts.textured {
		return RGB(r, g, bl)
	}

	s := math.Floor(q0*float64(p0.S) + q1*float64(p1.S) + q2*float64(p2.S))
	t := math.Floor(q0*float64(p0.T) + q1*float64(p1.T) + q2*float64(p2.T))
	return ts.sample(int32(s), int32(t), r, g, bl)
}

func (ts *triangleSetup) sample(s, t int32, r, g, b int) uint32 {
	texel := ts.tex.Sample(s, t)
	if !ts.modulate {
		return texel | 0xff000000
	}
	return Modulate(texel, r, g, b)
}
