package softgl

import (
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgl/internal/zbuffer"
)

// assembly is the Begin/End state machine. ring holds the running window
// of vertices for every topology except Polygon, which keeps all of them.
type assembly struct {
	inBegin bool
	prim    Primitive

	ring [4]vertex
	idx  int // next ring slot
	cnt  int // vertices submitted since Begin

	loopFirst vertex
	poly      []vertex
}

type beginCmd struct{ prim Primitive }

func (beginCmd) Opcode() Opcode { return OpBegin }

func (cmd beginCmd) apply(c *Context) {
	if c.asm.inBegin {
		c.setError(InvalidOperation)
		return
	}
	if cmd.prim < Points || cmd.prim > Polygon {
		c.setError(InvalidEnum)
		return
	}

	c.updateMatrices()
	c.syncRaster()

	c.asm.inBegin = true
	c.asm.prim = cmd.prim
	c.asm.idx = 0
	c.asm.cnt = 0
	c.asm.poly = c.asm.poly[:0]
}

// Begin starts a primitive block. Calling Begin inside a block records
// InvalidOperation.
func (c *Context) Begin(prim Primitive) { c.exec(beginCmd{prim}) }

type endCmd struct{}

func (endCmd) Opcode() Opcode { return OpEnd }

func (endCmd) apply(c *Context) {
	a := &c.asm
	if !a.inBegin {
		c.setError(InvalidOperation)
		return
	}
	switch a.prim {
	case LineLoop:
		if a.cnt >= 3 {
			c.drawLine(&a.ring[0], &a.loopFirst)
		}
	case Polygon:
		for i := len(a.poly) - 1; i >= 2; i-- {
			c.drawTriangle(&a.poly[i], &a.poly[0], &a.poly[i-1])
		}
	}
	a.inBegin = false
}

// End finishes the primitive block, closing line loops and polygons.
// Incomplete trailing groups are discarded.
func (c *Context) End() { c.exec(endCmd{}) }

type vertexCmd struct{ coord Vec4 }

func (vertexCmd) Opcode() Opcode { return OpVertex }

func (cmd vertexCmd) apply(c *Context) {
	a := &c.asm
	if !a.inBegin {
		c.setError(InvalidOperation)
		return
	}

	if a.prim == Polygon {
		a.poly = append(a.poly, vertex{coord: cmd.coord})
		c.transformVertex(&a.poly[len(a.poly)-1])
		a.cnt++
		return
	}

	v := &a.ring[a.idx]
	v.coord = cmd.coord
	c.transformVertex(v)
	a.idx++
	a.cnt++

	q := &a.ring
	switch a.prim {
	case Points:
		c.drawPoint(&q[0])
		a.idx = 0
	case Lines:
		if a.idx == 2 {
			c.drawLine(&q[0], &q[1])
			a.idx = 0
		}
	case LineStrip, LineLoop:
		if a.cnt == 1 {
			a.loopFirst = q[0]
		}
		if a.idx == 2 {
			c.drawLine(&q[0], &q[1])
			q[0] = q[1]
			a.idx = 1
		}
	case Triangles:
		if a.idx == 3 {
			c.drawTriangle(&q[0], &q[1], &q[2])
			a.idx = 0
		}
	case TriangleStrip:
		if a.cnt >= 3 {
			if a.idx == 3 {
				a.idx = 0
			}
			// The ring rotates, so alternate the order to keep the
			// winding of every triangle the same.
			if a.cnt&1 == 0 {
				c.drawTriangle(&q[2], &q[1], &q[0])
			} else {
				c.drawTriangle(&q[0], &q[1], &q[2])
			}
		}
	case TriangleFan:
		if a.idx == 3 {
			c.drawTriangle(&q[0], &q[1], &q[2])
			q[1] = q[2]
			a.idx = 2
		}
	case Quads:
		if a.idx == 4 {
			f0, f2 := q[0].edgeFlag, q[2].edgeFlag
			q[2].edgeFlag = false
			c.drawTriangle(&q[0], &q[1], &q[2])
			q[2].edgeFlag = f2
			q[0].edgeFlag = false
			c.drawTriangle(&q[0], &q[2], &q[3])
			q[0].edgeFlag = f0
			a.idx = 0
		}
	case QuadStrip:
		if a.idx == 4 {
			c.drawTriangle(&q[0], &q[1], &q[2])
			c.drawTriangle(&q[1], &q[3], &q[2])
			q[0], q[1] = q[2], q[3]
			a.idx = 2
		}
	}
}

// Vertex2f submits a vertex at (x, y, 0, 1).
func (c *Context) Vertex2f(x, y float64) { c.exec(vertexCmd{V4(x, y, 0, 1)}) }

// Vertex3f submits a vertex at (x, y, z, 1).
func (c *Context) Vertex3f(x, y, z float64) { c.exec(vertexCmd{V4(x, y, z, 1)}) }

// Vertex4f submits a vertex in homogeneous coordinates.
func (c *Context) Vertex4f(x, y, z, w float64) { c.exec(vertexCmd{V4(x, y, z, w)}) }

// Vertex3fv submits a vertex at (v, 1).
func (c *Context) Vertex3fv(v Vec3) { c.exec(vertexCmd{V4(v.X, v.Y, v.Z, 1)}) }

type colorCmd struct{ v Vec4 }

func (colorCmd) Opcode() Opcode { return OpColor }

func (cmd colorCmd) apply(c *Context) {
	c.curColor = cmd.v
	if c.caps[CapColorMaterial] {
		c.applyColorMaterial(cmd.v)
	}
}

// Color3f sets the current colour with alpha 1.
func (c *Context) Color3f(r, g, b float64) { c.exec(colorCmd{V4(r, g, b, 1)}) }

// Color4f sets the current colour.
func (c *Context) Color4f(r, g, b, a float64) { c.exec(colorCmd{V4(r, g, b, a)}) }

// Color3ub sets the current colour from 8-bit channels with alpha 1.
func (c *Context) Color3ub(r, g, b uint8) {
	c.exec(colorCmd{V4(float64(r)/255, float64(g)/255, float64(b)/255, 1)})
}

type normalCmd struct{ n Vec3 }

func (normalCmd) Opcode() Opcode { return OpNormal }

func (cmd normalCmd) apply(c *Context) { c.curNormal = cmd.n }

// Normal3f sets the current normal.
func (c *Context) Normal3f(x, y, z float64) { c.exec(normalCmd{V3(x, y, z)}) }

type texCoordCmd struct{ t Vec4 }

func (texCoordCmd) Opcode() Opcode { return OpTexCoord }

func (cmd texCoordCmd) apply(c *Context) { c.curTexCoord = cmd.t }

// TexCoord2f sets the current texture coordinate to (s, t, 0, 1).
func (c *Context) TexCoord2f(s, t float64) { c.exec(texCoordCmd{V4(s, t, 0, 1)}) }

// TexCoord4f sets the current texture coordinate.
func (c *Context) TexCoord4f(s, t, r, q float64) { c.exec(texCoordCmd{V4(s, t, r, q)}) }

type edgeFlagCmd struct{ on bool }

func (edgeFlagCmd) Opcode() Opcode { return OpEdgeFlag }

func (cmd edgeFlagCmd) apply(c *Context) { c.curEdgeFlag = cmd.on }

// EdgeFlag marks whether edges starting at the following vertices are
// boundary edges, drawn in line polygon mode.
func (c *Context) EdgeFlag(on bool) { c.exec(edgeFlagCmd{on}) }

// Rectf draws the axis-aligned rectangle with corners (x1, y1) and (x2, y2)
// as a quad in the z = 0 plane.
func (c *Context) Rectf(x1, y1, x2, y2 float64) {
	c.Begin(Quads)
	c.Vertex2f(x1, y1)
	c.Vertex2f(x2, y1)
	c.Vertex2f(x2, y2)
	c.Vertex2f(x1, y2)
	c.End()
}

func (c *Context) smooth() bool { return c.shadeModel == ShadeSmooth }

func (c *Context) drawPoint(p *vertex) {
	if p.clipCode != 0 || p.pc.W == 0 {
		return
	}
	c.fb.zb.Plot(&p.zp)
}

func (c *Context) drawLine(p1, p2 *vertex) {
	if p1.clipCode&p2.clipCode != 0 || p1.pc.W == 0 || p2.pc.W == 0 {
		return
	}
	c.fb.zb.DrawLine(&p1.zp, &p2.zp, c.smooth())
}

// drawTriangle culls and rasterizes one triangle with the polygon mode of
// the face it shows.
func (c *Context) drawTriangle(p0, p1, p2 *vertex) {
	if p0.clipCode&p1.clipCode&p2.clipCode != 0 {
		return
	}
	if p0.pc.W == 0 || p1.pc.W == 0 || p2.pc.W == 0 {
		return
	}

	a, b, d := &p0.zp, &p1.zp, &p2.zp
	norm := (b.X-a.X)*(d.Y-a.Y) - (d.X-a.X)*(b.Y-a.Y)
	if norm == 0 {
		return
	}

	// Window rows grow downwards, so a counter-clockwise triangle has a
	// negative area here.
	front := (norm < 0) != (c.frontFace == gputypes.FrontFaceCW)
	if c.caps[CapCullFace] {
		if (front && c.cullMode == gputypes.CullModeFront) || (!front && c.cullMode == gputypes.CullModeBack) {
			return
		}
	}

	face := 0
	if !front {
		face = 1
	}
	zb := c.fb.zb
	switch c.polygonMode[face] {
	case PolygonPoint:
		pts := c.offset(CapPolygonOffsetPoint, a, b, d)
		for i, v := range [3]*vertex{p0, p1, p2} {
			if v.edgeFlag {
				zb.Plot(&pts[i])
			}
		}
	case PolygonLine:
		pts := c.offset(CapPolygonOffsetLine, a, b, d)
		if p0.edgeFlag {
			zb.DrawLine(&pts[0], &pts[1], c.smooth())
		}
		if p1.edgeFlag {
			zb.DrawLine(&pts[1], &pts[2], c.smooth())
		}
		if p2.edgeFlag {
			zb.DrawLine(&pts[2], &pts[0], c.smooth())
		}
	default:
		if c.caps[CapPolygonOffsetFill] {
			pts := c.offset(CapPolygonOffsetFill, a, b, d)
			zb.FillTriangle(&pts[0], &pts[1], &pts[2], c.smooth())
			return
		}
		zb.FillTriangle(a, b, d, c.smooth())
	}
}

// offset returns copies of the points with the polygon offset applied to
// their depth when capability which is enabled.
func (c *Context) offset(which Capability, p0, p1, p2 *zbuffer.Point) [3]zbuffer.Point {
	pts := [3]zbuffer.Point{*p0, *p1, *p2}
	if !c.caps[which] {
		return pts
	}

	x1, y1 := float64(p1.X-p0.X), float64(p1.Y-p0.Y)
	x2, y2 := float64(p2.X-p0.X), float64(p2.Y-p0.Y)
	z1, z2 := float64(p1.Z-p0.Z), float64(p2.Z-p0.Z)
	area := x1*y2 - x2*y1

	var slope float64
	if area != 0 {
		dzdx := (z1*y2 - z2*y1) / area
		dzdy := (x1*z2 - x2*z1) / area
		slope = max(math.Abs(dzdx), math.Abs(dzdy))
	}
	off := c.offsetFactor*slope + c.offsetUnits*(1<<zbuffer.ZFracBits)
	for i := range pts {
		pts[i].Z = clampDepth(float64(pts[i].Z) + off)
	}
	return pts
}

// clampDepth bounds a fixed-point depth so that vertices far outside the
// depth range cannot overflow.
func clampDepth(z float64) int32 {
	const one = zbuffer.MaxDepth << zbuffer.ZFracBits
	return int32(min(max(z, -one), 2*one))
}
