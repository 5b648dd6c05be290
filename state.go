package softgl

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgl/internal/blend"
	"github.com/gogpu/softgl/internal/zbuffer"
)

type enableCmd struct {
	capability Capability
	on         bool
}

func (cmd enableCmd) Opcode() Opcode {
	if cmd.on {
		return OpEnable
	}
	return OpDisable
}

func (cmd enableCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	cp := cmd.capability
	switch {
	case cp >= CapLight0 && cp < CapLight0+MaxLights:
		c.enableLight(int(cp-CapLight0), cmd.on)
	case cp > 0 && cp < capLast:
		c.caps[cp] = cmd.on
		if cp == CapLighting {
			c.matricesDirty = true
		}
	default:
		c.setError(InvalidEnum)
	}
}

// Enable turns a capability on. Unknown capabilities record InvalidEnum.
func (c *Context) Enable(capability Capability) { c.exec(enableCmd{capability, true}) }

// Disable turns a capability off.
func (c *Context) Disable(capability Capability) { c.exec(enableCmd{capability, false}) }

// IsEnabled reports whether a capability is on.
func (c *Context) IsEnabled(capability Capability) bool {
	switch {
	case capability >= CapLight0 && capability < CapLight0+MaxLights:
		return c.lights[capability-CapLight0].enabled
	case capability > 0 && capability < capLast:
		return c.caps[capability]
	default:
		c.setError(InvalidEnum)
		return false
	}
}

type viewportCmd struct{ x, y, w, h int }

func (viewportCmd) Opcode() Opcode { return OpViewport }

func (cmd viewportCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	if cmd.w < 0 || cmd.h < 0 {
		slogger().Warn("softgl: viewport rejected", "width", cmd.w, "height", cmd.h)
		c.setError(InvalidValue)
		return
	}
	c.setViewport(cmd.x, cmd.y, cmd.w, cmd.h)
}

// Viewport sets the window rectangle that normalized device coordinates
// map to. (x, y) is the lower-left corner.
func (c *Context) Viewport(x, y, w, h int) { c.exec(viewportCmd{x, y, w, h}) }

type scissorCmd struct{ x, y, w, h int }

func (scissorCmd) Opcode() Opcode { return OpScissor }

func (cmd scissorCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	if cmd.w < 0 || cmd.h < 0 {
		c.setError(InvalidValue)
		return
	}
	c.scissor = [4]int{cmd.x, cmd.y, cmd.w, cmd.h}
}

// Scissor sets the scissor box, lower-left corner first. It only takes
// effect while CapScissorTest is enabled.
func (c *Context) Scissor(x, y, w, h int) { c.exec(scissorCmd{x, y, w, h}) }

type depthRangeCmd struct{ near, far float64 }

func (depthRangeCmd) Opcode() Opcode { return OpDepthRange }

func (cmd depthRangeCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	c.viewport.near = clamp01(cmd.near)
	c.viewport.far = clamp01(cmd.far)
	c.viewport.update()
}

// DepthRange sets the window depth that the near and far planes map to.
// Both are clamped to [0, 1].
func (c *Context) DepthRange(near, far float64) { c.exec(depthRangeCmd{near, far}) }

type clearCmd struct{ mask ClearMask }

func (clearCmd) Opcode() Opcode { return OpClear }

func (cmd clearCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	if cmd.mask&^(ColorBufferBit|DepthBufferBit) != 0 {
		c.setError(InvalidValue)
		return
	}
	z := uint16(c.clearDepth*zbuffer.MaxDepth + 0.5)
	cc := c.clearColor
	color := zbuffer.RGB(quantize(cc.R), quantize(cc.G), quantize(cc.B))
	c.fb.zb.Clear(cmd.mask&DepthBufferBit != 0, z, cmd.mask&ColorBufferBit != 0, color)
}

// Clear fills the selected planes with the clear colour and depth.
func (c *Context) Clear(mask ClearMask) { c.exec(clearCmd{mask}) }

type clearColorCmd struct{ color gputypes.Color }

func (clearColorCmd) Opcode() Opcode { return OpClearColor }

func (cmd clearColorCmd) apply(c *Context) { c.clearColor = cmd.color }

// ClearColor sets the colour used by Clear.
func (c *Context) ClearColor(r, g, b, a float64) {
	c.exec(clearColorCmd{gputypes.Color{R: r, G: g, B: b, A: a}})
}

type clearDepthCmd struct{ depth float64 }

func (clearDepthCmd) Opcode() Opcode { return OpClearDepth }

func (cmd clearDepthCmd) apply(c *Context) { c.clearDepth = clamp01(cmd.depth) }

// ClearDepth sets the depth used by Clear, clamped to [0, 1].
func (c *Context) ClearDepth(depth float64) { c.exec(clearDepthCmd{depth}) }

func validCompare(f gputypes.CompareFunction) bool {
	return f >= gputypes.CompareFunctionNever && f <= gputypes.CompareFunctionAlways
}

type depthFuncCmd struct{ f gputypes.CompareFunction }

func (depthFuncCmd) Opcode() Opcode { return OpDepthFunc }

func (cmd depthFuncCmd) apply(c *Context) {
	if !validCompare(cmd.f) {
		c.setError(InvalidEnum)
		return
	}
	c.depthFunc = cmd.f
}

// DepthFunc sets the depth comparison. A fragment passes when
// f(fragment depth, stored depth) holds.
func (c *Context) DepthFunc(f gputypes.CompareFunction) { c.exec(depthFuncCmd{f}) }

type depthMaskCmd struct{ on bool }

func (depthMaskCmd) Opcode() Opcode { return OpDepthMask }

func (cmd depthMaskCmd) apply(c *Context) { c.depthMask = cmd.on }

// DepthMask enables or disables depth writes.
func (c *Context) DepthMask(on bool) { c.exec(depthMaskCmd{on}) }

type blendFuncCmd struct{ src, dst gputypes.BlendFactor }

func (blendFuncCmd) Opcode() Opcode { return OpBlendFunc }

func (cmd blendFuncCmd) apply(c *Context) {
	if !blend.SupportedFactor(cmd.src) || !blend.SupportedFactor(cmd.dst) {
		c.setError(InvalidEnum)
		return
	}
	c.blend.Src, c.blend.Dst = cmd.src, cmd.dst
}

// BlendFunc sets the source and destination blend factors. Only colour
// factors are supported; alpha and constant factors record InvalidEnum.
func (c *Context) BlendFunc(src, dst gputypes.BlendFactor) { c.exec(blendFuncCmd{src, dst}) }

type blendEquationCmd struct{ op gputypes.BlendOperation }

func (blendEquationCmd) Opcode() Opcode { return OpBlendEquation }

func (cmd blendEquationCmd) apply(c *Context) {
	if !blend.SupportedOperation(cmd.op) {
		c.setError(InvalidEnum)
		return
	}
	c.blend.Op = cmd.op
}

// BlendEquation sets how blended source and destination terms combine.
func (c *Context) BlendEquation(op gputypes.BlendOperation) { c.exec(blendEquationCmd{op}) }

type alphaFuncCmd struct {
	f   gputypes.CompareFunction
	ref float64
}

func (alphaFuncCmd) Opcode() Opcode { return OpAlphaFunc }

func (cmd alphaFuncCmd) apply(c *Context) {
	if !validCompare(cmd.f) {
		c.setError(InvalidEnum)
		return
	}
	c.alphaFunc, c.alphaRef = cmd.f, clamp01(cmd.ref)
}

// AlphaFunc records the alpha test. The framebuffer has no alpha plane,
// so the test has no effect on fragments.
func (c *Context) AlphaFunc(f gputypes.CompareFunction, ref float64) {
	c.exec(alphaFuncCmd{f, ref})
}

type stencilFuncCmd struct {
	f    gputypes.CompareFunction
	ref  int
	mask uint32
}

func (stencilFuncCmd) Opcode() Opcode { return OpStencilFunc }

func (cmd stencilFuncCmd) apply(c *Context) {
	if !validCompare(cmd.f) {
		c.setError(InvalidEnum)
		return
	}
	c.stencilFunc, c.stencilRef, c.stencilMask = cmd.f, cmd.ref, cmd.mask
}

// StencilFunc records the stencil test. There is no stencil plane.
func (c *Context) StencilFunc(f gputypes.CompareFunction, ref int, mask uint32) {
	c.exec(stencilFuncCmd{f, ref, mask})
}

type sizeCmd struct {
	op   Opcode
	size float64
}

func (cmd sizeCmd) Opcode() Opcode { return cmd.op }

func (cmd sizeCmd) apply(c *Context) {
	if cmd.size <= 0 {
		return
	}
	if cmd.op == OpPointSize {
		c.pointSize = cmd.size
	} else {
		c.lineWidth = cmd.size
	}
}

// PointSize sets the side of the square drawn for points. Non-positive
// sizes are ignored.
func (c *Context) PointSize(size float64) { c.exec(sizeCmd{OpPointSize, size}) }

// LineWidth sets the line width in pixels. Non-positive widths are ignored.
func (c *Context) LineWidth(width float64) { c.exec(sizeCmd{OpLineWidth, width}) }

type shadeModelCmd struct{ mode ShadeModel }

func (shadeModelCmd) Opcode() Opcode { return OpShadeModel }

func (cmd shadeModelCmd) apply(c *Context) {
	if cmd.mode != ShadeFlat && cmd.mode != ShadeSmooth {
		c.setError(InvalidEnum)
		return
	}
	c.shadeModel = cmd.mode
}

// ShadeModel selects flat or smooth shading. Flat primitives take the
// colour of their last vertex.
func (c *Context) ShadeModel(mode ShadeModel) { c.exec(shadeModelCmd{mode}) }

type cullFaceCmd struct{ mode gputypes.CullMode }

func (cullFaceCmd) Opcode() Opcode { return OpCullFace }

func (cmd cullFaceCmd) apply(c *Context) {
	if cmd.mode > gputypes.CullModeBack {
		c.setError(InvalidEnum)
		return
	}
	c.cullMode = cmd.mode
}

// CullFace selects which faces CapCullFace discards.
func (c *Context) CullFace(mode gputypes.CullMode) { c.exec(cullFaceCmd{mode}) }

type frontFaceCmd struct{ face gputypes.FrontFace }

func (frontFaceCmd) Opcode() Opcode { return OpFrontFace }

func (cmd frontFaceCmd) apply(c *Context) {
	if cmd.face != gputypes.FrontFaceCCW && cmd.face != gputypes.FrontFaceCW {
		c.setError(InvalidEnum)
		return
	}
	c.frontFace = cmd.face
}

// FrontFace sets the winding of front faces in window coordinates.
func (c *Context) FrontFace(face gputypes.FrontFace) { c.exec(frontFaceCmd{face}) }

type polygonModeCmd struct {
	face Face
	mode PolygonMode
}

func (polygonModeCmd) Opcode() Opcode { return OpPolygonMode }

func (cmd polygonModeCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	if cmd.mode < PolygonPoint || cmd.mode > PolygonFill {
		c.setError(InvalidEnum)
		return
	}
	switch cmd.face {
	case FaceFront:
		c.polygonMode[0] = cmd.mode
	case FaceBack:
		c.polygonMode[1] = cmd.mode
	case FaceFrontAndBack:
		c.polygonMode = [2]PolygonMode{cmd.mode, cmd.mode}
	default:
		c.setError(InvalidEnum)
	}
}

// PolygonMode selects how triangles of a face are drawn.
func (c *Context) PolygonMode(face Face, mode PolygonMode) { c.exec(polygonModeCmd{face, mode}) }

type polygonOffsetCmd struct{ factor, units float64 }

func (polygonOffsetCmd) Opcode() Opcode { return OpPolygonOffset }

func (cmd polygonOffsetCmd) apply(c *Context) {
	c.offsetFactor, c.offsetUnits = cmd.factor, cmd.units
}

// PolygonOffset sets the depth offset applied to triangles while one of
// the CapPolygonOffset capabilities is enabled: factor times the largest
// depth slope plus units depth steps.
func (c *Context) PolygonOffset(factor, units float64) {
	c.exec(polygonOffsetCmd{factor, units})
}

type fogField int

const (
	fogFieldMode fogField = iota
	fogFieldDensity
	fogFieldRange
	fogFieldColor
)

type fogCmd struct {
	field fogField
	mode  FogMode
	a, b  float64
	color Vec4
}

func (fogCmd) Opcode() Opcode { return OpFog }

func (cmd fogCmd) apply(c *Context) {
	switch cmd.field {
	case fogFieldMode:
		if cmd.mode < FogLinear || cmd.mode > FogExp2 {
			c.setError(InvalidEnum)
			return
		}
		c.fog.mode = cmd.mode
	case fogFieldDensity:
		if cmd.a < 0 {
			c.setError(InvalidValue)
			return
		}
		c.fog.density = cmd.a
	case fogFieldRange:
		c.fog.start, c.fog.end = cmd.a, cmd.b
	case fogFieldColor:
		c.fog.color = cmd.color.Clamp01()
	}
}

// FogMode selects the fog equation.
func (c *Context) FogMode(mode FogMode) { c.exec(fogCmd{field: fogFieldMode, mode: mode}) }

// FogDensity sets the density of the exponential equations.
func (c *Context) FogDensity(d float64) { c.exec(fogCmd{field: fogFieldDensity, a: d}) }

// FogRange sets the start and end depth of the linear equation.
func (c *Context) FogRange(start, end float64) {
	c.exec(fogCmd{field: fogFieldRange, a: start, b: end})
}

// FogColor sets the colour fragments fade to.
func (c *Context) FogColor(r, g, b, a float64) {
	c.exec(fogCmd{field: fogFieldColor, color: V4(r, g, b, a)})
}

type flushCmd struct{}

func (flushCmd) Opcode() Opcode { return OpFlush }

func (flushCmd) apply(*Context) {}

// Flush completes every issued command. Commands run as they are issued,
// so it only marks the end of a frame in profiles.
func (c *Context) Flush() { c.exec(flushCmd{}) }

// Finish is Flush.
func (c *Context) Finish() { c.Flush() }
