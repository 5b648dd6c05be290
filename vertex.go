package softgl

import (
	"math"

	"github.com/gogpu/softgl/internal/zbuffer"
)

// Clip code bits, one per frustum plane.
const (
	clipLeft = 1 << iota
	clipRight
	clipBottom
	clipTop
	clipNear
	clipFar
)

// clipEpsilon widens the frustum slightly so vertices exactly on a plane
// are never rejected by rounding.
const clipEpsilon = 1e-5

// viewport maps normalized device coordinates to window coordinates.
type viewport struct {
	x, y, w, h int
	near, far  float64

	scale, trans Vec3
}

func (v *viewport) update() {
	v.scale = V3(float64(v.w)/2, float64(v.h)/2, (v.far-v.near)/2)
	v.trans = V3(float64(v.x)+v.scale.X, float64(v.y)+v.scale.Y, v.near+v.scale.Z)
}

func (c *Context) setViewport(x, y, w, h int) {
	c.viewport.x, c.viewport.y = x, y
	c.viewport.w, c.viewport.h = w, h
	c.viewport.update()
}

// vertex is one vertex in flight between Begin and End.
type vertex struct {
	coord  Vec4 // object
	ec     Vec4 // eye
	pc     Vec4 // clip
	normal Vec3

	color    Vec4
	tex      Vec4
	edgeFlag bool

	clipCode int
	zp       zbuffer.Point
}

// clipCode returns the frustum planes the clip-space position lies outside.
func clipCode(p Vec4) int {
	w := p.W * (1 + clipEpsilon)
	code := 0
	if p.X < -w {
		code |= clipLeft
	}
	if p.X > w {
		code |= clipRight
	}
	if p.Y < -w {
		code |= clipBottom
	}
	if p.Y > w {
		code |= clipTop
	}
	if p.Z < -w {
		code |= clipNear
	}
	if p.Z > w {
		code |= clipFar
	}
	return code
}

// updateMatrices refreshes the matrices derived from the stacks. It runs
// at Begin, only when a stack changed since the last primitive.
func (c *Context) updateMatrices() {
	if !c.matricesDirty {
		return
	}
	mv := c.current(MatrixModelView)
	proj := c.current(MatrixProjection)

	if c.caps[CapLighting] {
		inv, ok := mv.Inverse()
		if !ok {
			inv = Identity()
		}
		c.normalMatrix = inv.Transpose()
	} else {
		c.modelProj = proj.Mul(mv)
		c.noPerspective = c.modelProj.hasNoPerspective()
	}
	c.applyTexMatrix = !c.current(MatrixTexture).IsIdentity()
	c.matricesDirty = false
}

// transformVertex fills v's eye and clip positions, colour and texture
// coordinate from its object position and the current attributes.
func (c *Context) transformVertex(v *vertex) {
	if c.caps[CapLighting] {
		v.ec = c.current(MatrixModelView).Transform(v.coord)
		v.pc = c.current(MatrixProjection).Transform(v.ec)

		v.normal = c.normalMatrix.Transform3(c.curNormal)
		if c.caps[CapNormalize] {
			v.normal = v.normal.FastNormalize()
		}
		v.color = c.shadeVertex(v)
	} else {
		m := &c.modelProj
		p := v.coord
		v.pc.X = m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3]*p.W
		v.pc.Y = m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7]*p.W
		v.pc.Z = m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11]*p.W
		if c.noPerspective {
			v.pc.W = m[15] * p.W
		} else {
			v.pc.W = m[12]*p.X + m[13]*p.Y + m[14]*p.Z + m[15]*p.W
		}
		v.color = c.curColor
	}

	if c.applyTexMatrix {
		v.tex = c.current(MatrixTexture).Transform(c.curTexCoord)
	} else {
		v.tex = c.curTexCoord
	}
	v.edgeFlag = c.curEdgeFlag
	v.clipCode = clipCode(v.pc)

	if c.caps[CapFog] && v.pc.W != 0 {
		v.color = c.fog.apply(v.color, v.pc.Z/v.pc.W)
	}
	c.project(v)
}

// project maps the clip position to the window and quantizes the vertex
// into its rasterizer point. A vertex with w == 0 keeps W == 0 and is
// dropped by the primitive that uses it.
func (c *Context) project(v *vertex) {
	zp := &v.zp
	zp.R = quantize(v.color.X)
	zp.G = quantize(v.color.Y)
	zp.B = quantize(v.color.Z)
	zp.S = texFixed(v.tex.X)
	zp.T = texFixed(v.tex.Y)

	w := v.pc.W
	zp.W = w
	if w == 0 {
		return
	}
	inv := 1 / w
	vp := &c.viewport
	xw := v.pc.X*inv*vp.scale.X + vp.trans.X
	yw := v.pc.Y*inv*vp.scale.Y + vp.trans.Y
	d := v.pc.Z*inv*vp.scale.Z + vp.trans.Z

	zp.X = windowCoord(xw)
	zp.Y = windowCoord(float64(c.fb.Height()) - yw)
	zp.Z = clampDepth(d * zbuffer.MaxDepth * (1 << zbuffer.ZFracBits))
}

// windowGuard bounds projected window coordinates so that integer
// conversion and edge arithmetic stay exact.
const windowGuard = 1 << 40

func windowCoord(v float64) int {
	return int(math.Floor(min(max(v, -windowGuard), windowGuard)))
}

const (
	texPeriod = zbuffer.TextureDim << zbuffer.STFracBits
	texGuard  = 1 << 29
)

// texFixed converts a texture coordinate to the rasterizer's fixed point.
// Values beyond texGuard are reduced by whole texture periods and stay
// past the clamp range on the same side, so both wrap modes sample the
// same texel as the unreduced value would.
func texFixed(v float64) int32 {
	f := v*(zbuffer.SMax-zbuffer.SMin) + zbuffer.SMin
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return zbuffer.SMin
	case f > texGuard:
		f = texGuard + math.Mod(f-texGuard, texPeriod)
	case f < -texGuard:
		f = -texGuard - math.Mod(-texGuard-f, texPeriod)
	}
	return int32(f)
}

// quantize converts a colour channel in [0, 1] to 8 bits.
func quantize(v float64) int {
	return int(clamp01(v)*255 + 0.5)
}

// fogState is the fog equation and its parameters.
type fogState struct {
	mode       FogMode
	density    float64
	start, end float64
	color      Vec4
}

// factor returns the fraction of the fragment colour kept at normalized
// depth d.
func (f *fogState) factor(d float64) float64 {
	var k float64
	switch f.mode {
	case FogLinear:
		if f.end == f.start {
			return 1
		}
		k = (f.end - d) / (f.end - f.start)
	case FogExp2:
		k = math.Exp(-f.density * d * d)
	default:
		k = math.Exp(-f.density * d)
	}
	return clamp01(k)
}

// apply blends col toward the fog colour for an NDC depth ndcZ.
func (f *fogState) apply(col Vec4, ndcZ float64) Vec4 {
	k := f.factor(ndcZ*0.5 + 0.5)
	return Vec4{
		X: col.X*k + f.color.X*(1-k),
		Y: col.Y*k + f.color.Y*(1-k),
		Z: col.Z*k + f.color.Z*(1-k),
		W: col.W,
	}
}
