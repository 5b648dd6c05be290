package softgl

import "math"

// Perspective multiplies the current matrix by a symmetric perspective
// projection with vertical field of view fovy degrees.
func (c *Context) Perspective(fovy, aspect, near, far float64) {
	ymax := near * math.Tan(fovy*math.Pi/360)
	xmax := ymax * aspect
	c.Frustum(-xmax, xmax, -ymax, ymax, near, far)
}

// LookAt multiplies the current matrix by a viewing transform placing the
// eye at eye, looking at center, with up pointing upwards on screen.
func (c *Context) LookAt(eye, center, up Vec3) {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	m := Matrix4{
		s.X, s.Y, s.Z, 0,
		u.X, u.Y, u.Z, 0,
		-f.X, -f.Y, -f.Z, 0,
		0, 0, 0, 1,
	}
	c.exec(multMatrixCmd{OpMultMatrix, m.Mul(Translation(-eye.X, -eye.Y, -eye.Z))})
}

// Sphere draws a sphere of radius r centred on the origin, with its axis
// along z, as stacks quad strips of slices quads. Normals point outwards
// and texture coordinates wrap once around.
func (c *Context) Sphere(r float64, slices, stacks int) {
	if slices < 3 || stacks < 1 {
		return
	}
	for i := range stacks {
		t0 := math.Pi * float64(i) / float64(stacks)
		t1 := math.Pi * float64(i+1) / float64(stacks)
		c.Begin(QuadStrip)
		for j := 0; j <= slices; j++ {
			p := 2 * math.Pi * float64(j%slices) / float64(slices)
			s := float64(j) / float64(slices)
			for k, t := range [2]float64{t0, t1} {
				n := V3(math.Cos(p)*math.Sin(t), math.Sin(p)*math.Sin(t), math.Cos(t))
				c.Normal3f(n.X, n.Y, n.Z)
				c.TexCoord2f(s, 1-float64(i+k)/float64(stacks))
				c.Vertex3f(n.X*r, n.Y*r, n.Z*r)
			}
		}
		c.End()
	}
}

// Cylinder draws the side of a cone frustum along z from radius base at
// z = 0 to radius top at z = height.
func (c *Context) Cylinder(base, top, height float64, slices, stacks int) {
	if slices < 3 || stacks < 1 || height == 0 {
		return
	}
	nz := (base - top) / height
	for i := range stacks {
		f0 := float64(i) / float64(stacks)
		f1 := float64(i+1) / float64(stacks)
		c.Begin(QuadStrip)
		for j := 0; j <= slices; j++ {
			a := 2 * math.Pi * float64(j%slices) / float64(slices)
			cs, sn := math.Cos(a), math.Sin(a)
			n := V3(cs, sn, nz).Normalize()
			for _, f := range [2]float64{f1, f0} {
				r := base + (top-base)*f
				c.Normal3f(n.X, n.Y, n.Z)
				c.TexCoord2f(float64(j)/float64(slices), f)
				c.Vertex3f(cs*r, sn*r, f*height)
			}
		}
		c.End()
	}
}

// Disk draws an annulus in the z = 0 plane facing +z, from radius inner
// to outer, as loops rings of slices quads.
func (c *Context) Disk(inner, outer float64, slices, loops int) {
	if slices < 3 || loops < 1 || outer <= 0 {
		return
	}
	for i := range loops {
		r0 := inner + (outer-inner)*float64(i)/float64(loops)
		r1 := inner + (outer-inner)*float64(i+1)/float64(loops)
		c.Begin(QuadStrip)
		for j := 0; j <= slices; j++ {
			a := 2 * math.Pi * float64(j%slices) / float64(slices)
			cs, sn := math.Cos(a), math.Sin(a)
			for _, r := range [2]float64{r0, r1} {
				x, y := cs*r, sn*r
				c.Normal3f(0, 0, 1)
				c.TexCoord2f(x/(2*outer)+0.5, y/(2*outer)+0.5)
				c.Vertex2f(x, y)
			}
		}
		c.End()
	}
}
