package zbuffer

// Plot draws a point with the current point size. Sizes above one draw a
// square centred on the point. Fragments go through the depth test.
func (b *Buffer) Plot(p *Point) {
	size := max(1, int(b.State.PointSize+0.5))
	x0 := p.X - (size-1)/2
	y0 := p.Y - (size-1)/2

	clip := b.clip()
	x1 := min(clip.X1, x0+size)
	y1 := min(clip.Y1, y0+size)
	x0 = max(clip.X0, x0)
	y0 = max(clip.Y0, y0)

	z := DepthValue(p.Z)
	color := p.Pixel()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			b.fragment(y*b.xsize+x, z, color)
		}
	}
}
