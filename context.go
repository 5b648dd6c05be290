package softgl

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgl/internal/blend"
	"github.com/gogpu/softgl/internal/cache"
	"github.com/gogpu/softgl/internal/parallel"
	"github.com/gogpu/softgl/internal/texture"
	"github.com/gogpu/softgl/internal/zbuffer"
)

// Limits.
const (
	// MaxModelViewDepth is the depth of the modelview matrix stack.
	MaxModelViewDepth = 32
	// MaxProjectionDepth is the depth of the projection matrix stack.
	MaxProjectionDepth = 8
	// MaxTextureDepth is the depth of the texture matrix stack.
	MaxTextureDepth = 8
	// MaxLights is the number of lights.
	MaxLights = 16
	// TextureSize is the width and height of every stored texture image.
	TextureSize = zbuffer.TextureDim

	// DefaultParallelRows is the framebuffer height above which triangles
	// are filled by the workers.
	DefaultParallelRows = zbuffer.DefaultParallelRows
	// DefaultTextureParallelArea is the image area from which texture
	// conversion is split across the workers.
	DefaultTextureParallelArea = texture.DefaultParallelPixels

	maxSpecularTables = 8
)

var stackDepths = [3]int{MaxModelViewDepth, MaxProjectionDepth, MaxTextureDepth}

// Context is a rendering context bound to one Framebuffer.
//
// Every state-changing method encodes a command and dispatches it at once,
// so state is always consistent between calls. Errors do not panic: the
// offending call is ignored and a sticky ErrorCode is recorded, to be
// polled with GetError.
//
// A Context is single-owner and must not be used from more than one
// goroutine at a time. Its workers only ever touch disjoint row strips.
type Context struct {
	fb   *Framebuffer
	opts contextOptions
	pool *parallel.Pool
	prof *profiler

	closed bool
	err    ErrorCode

	textures *texture.Store
	specular *cache.Cache[int, *specularTable]

	// Matrices. The last element of each stack is the current matrix.
	matrixMode     MatrixMode
	stacks         [3][]Matrix4
	matricesDirty  bool
	modelProj      Matrix4
	normalMatrix   Matrix4
	noPerspective  bool
	applyTexMatrix bool

	// Current vertex attributes.
	curColor    Vec4
	curNormal   Vec3
	curTexCoord Vec4
	curEdgeFlag bool

	caps [capLast]bool

	viewport viewport

	asm assembly

	lights          [MaxLights]light
	firstLight      *light
	materials       [2]material
	lightModel      lightModel
	colorMatFace    Face
	colorMatParam   MaterialParam
	specularEnabled bool
	shadeModel      ShadeModel
	polygonMode     [2]PolygonMode
	cullMode        gputypes.CullMode
	frontFace       gputypes.FrontFace
	offsetFactor    float64
	offsetUnits     float64
	fog             fogState
	texEnv          TexEnvMode
	clearColor      gputypes.Color
	clearDepth      float64
	depthFunc       gputypes.CompareFunction
	depthMask       bool
	blend           blend.State
	alphaFunc       gputypes.CompareFunction
	alphaRef        float64
	stencilFunc     gputypes.CompareFunction
	stencilRef      int
	stencilMask     uint32
	scissor         [4]int
	pointSize       float64
	lineWidth       float64
}

// NewContext creates a rendering context drawing into fb.
func NewContext(fb *Framebuffer, opts ...ContextOption) (*Context, error) {
	if fb == nil {
		return nil, fmt.Errorf("new context: %w", ErrNilFramebuffer)
	}
	if fb.closed {
		return nil, fmt.Errorf("new context: framebuffer: %w", ErrClosed)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		SetLogger(o.logger)
	}

	c := &Context{fb: fb, opts: o}
	if o.threads != 1 {
		c.pool = parallel.NewPool(o.threads)
	}
	if o.profiling {
		c.prof = &profiler{}
	}
	c.textures = texture.NewStore(texture.NewConverter(c.pool, o.textureParallelArea))
	c.specular = cache.New[int, *specularTable](maxSpecularTables)
	c.reset()

	workers := 1
	if c.pool != nil {
		workers = c.pool.Workers()
	}
	slogger().Info("softgl: context created",
		"width", fb.Width(), "height", fb.Height(), "workers", workers)
	return c, nil
}

// reset puts every piece of state to its GL initial value.
func (c *Context) reset() {
	for i, depth := range stackDepths {
		c.stacks[i] = make([]Matrix4, 1, depth)
		c.stacks[i][0] = Identity()
	}
	c.matrixMode = MatrixModelView
	c.matricesDirty = true

	c.curColor = V4(1, 1, 1, 1)
	c.curNormal = V3(0, 0, 1)
	c.curTexCoord = V4(0, 0, 0, 1)
	c.curEdgeFlag = true

	c.setViewport(0, 0, c.fb.Width(), c.fb.Height())
	c.viewport.near, c.viewport.far = 0, 1
	c.viewport.update()

	c.resetLighting()

	c.shadeModel = ShadeSmooth
	c.polygonMode = [2]PolygonMode{PolygonFill, PolygonFill}
	c.cullMode = gputypes.CullModeBack
	c.frontFace = gputypes.FrontFaceCCW
	c.fog = fogState{mode: FogExp, density: 1, start: 0, end: 1}
	c.texEnv = TexModulate
	c.clearColor = gputypes.ColorTransparent
	c.clearDepth = 1
	c.depthFunc = gputypes.CompareFunctionLess
	c.depthMask = true
	c.blend = blend.Default()
	c.alphaFunc = gputypes.CompareFunctionAlways
	c.stencilFunc = gputypes.CompareFunctionAlways
	c.stencilMask = ^uint32(0)
	c.scissor = [4]int{0, 0, c.fb.Width(), c.fb.Height()}
	c.pointSize = 1
	c.lineWidth = 1
	c.specularEnabled = c.opts.specular
}

// Close releases the worker pool. The framebuffer is not closed.
// Calls on a closed context record InvalidOperation.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.pool != nil {
		c.pool.Close()
	}
	slogger().Info("softgl: context closed")
}

// Framebuffer returns the framebuffer the context draws into.
func (c *Context) Framebuffer() *Framebuffer { return c.fb }

// setError records code unless an error is already pending.
func (c *Context) setError(code ErrorCode) {
	if c.err != NoError {
		return
	}
	c.err = code
	slogger().Warn("softgl: error raised", "code", code.String())
}

// GetError returns the pending error and clears it. OutOfMemory is never
// cleared, since the condition can recur on any later allocation.
func (c *Context) GetError() ErrorCode {
	e := c.err
	if e != OutOfMemory {
		c.err = NoError
	}
	return e
}

// exec dispatches one command, through the profiler when enabled.
func (c *Context) exec(cmd Command) {
	if c.closed || c.fb.closed {
		c.setError(InvalidOperation)
		return
	}
	if c.prof != nil {
		c.prof.run(c, cmd)
		return
	}
	cmd.apply(c)
}

// syncRaster copies the per-fragment state into the framebuffer before
// primitives are drawn.
func (c *Context) syncRaster() {
	zb := c.fb.zb
	zb.SetPool(c.pool)
	zb.SetParallelRows(c.opts.parallelRows)

	st := &zb.State
	st.DepthTest = c.caps[CapDepthTest]
	st.DepthWrite = c.depthMask
	st.DepthFunc = c.depthFunc
	st.BlendEnabled = c.caps[CapBlend]
	st.Blend = c.blend
	st.ScissorEnabled = c.caps[CapScissorTest]
	st.Scissor = c.scissorRows()
	st.PointSize = c.pointSize
	st.LineWidth = c.lineWidth

	st.Texture = nil
	if c.caps[CapTexture2D] {
		st.Texture = c.textures.Current().Sampler()
	}
	st.TexModulate = c.texEnv == TexModulate && c.opts.litTextures
}

// scissorRows converts the GL scissor box (origin bottom-left) to buffer rows.
func (c *Context) scissorRows() zbuffer.Rect {
	x, y, w, h := c.scissor[0], c.scissor[1], c.scissor[2], c.scissor[3]
	fbH := c.fb.Height()
	return zbuffer.Rect{X0: x, Y0: fbH - (y + h), X1: x + w, Y1: fbH - y}
}
