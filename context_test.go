package softgl

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func newTestContext(t *testing.T, w, h int, opts ...ContextOption) *Context {
	t.Helper()
	fb, err := OpenFramebuffer(w, h)
	if err != nil {
		t.Fatalf("OpenFramebuffer(%d, %d) error = %v", w, h, err)
	}
	t.Cleanup(fb.Close)

	c, err := NewContext(fb, opts...)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

// setupOrtho maps object coordinates [-1, 1] onto the whole viewport.
func setupOrtho(c *Context) {
	c.MatrixMode(MatrixProjection)
	c.LoadIdentity()
	c.Ortho(-1, 1, -1, 1, -1, 1)
	c.MatrixMode(MatrixModelView)
	c.LoadIdentity()
}

// glPixel returns the pixel at window coordinates (x, y), origin bottom-left.
func glPixel(c *Context, x, y int) uint32 {
	fb := c.Framebuffer()
	return fb.PixelAt(x, fb.Height()-1-y)
}

func expectError(t *testing.T, c *Context, want ErrorCode) {
	t.Helper()
	if got := c.GetError(); got != want {
		t.Errorf("GetError() = %v, want %v", got, want)
	}
}

// =============================================================================
// Lifecycle
// =============================================================================

func TestNewContext_Errors(t *testing.T) {
	if _, err := NewContext(nil); !errors.Is(err, ErrNilFramebuffer) {
		t.Errorf("NewContext(nil) error = %v, want ErrNilFramebuffer", err)
	}

	fb, err := OpenFramebuffer(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	fb.Close()
	if _, err := NewContext(fb); !errors.Is(err, ErrClosed) {
		t.Errorf("NewContext(closed) error = %v, want ErrClosed", err)
	}
}

func TestContext_InitialState(t *testing.T) {
	c := newTestContext(t, 16, 16, WithThreads(1))

	for _, cp := range Capabilities() {
		if c.IsEnabled(cp) {
			t.Errorf("IsEnabled(%v) = true initially", cp)
		}
	}
	if got := c.GetMatrix(MatrixModelView); FromColumnMajor(got) != Identity() {
		t.Errorf("initial modelview = %v, want identity", got)
	}
	if c.viewport.w != 16 || c.viewport.h != 16 {
		t.Errorf("initial viewport = %dx%d, want 16x16", c.viewport.w, c.viewport.h)
	}
	expectError(t, c, NoError)
}

func TestContext_Closed(t *testing.T) {
	c := newTestContext(t, 8, 8)
	c.Close()
	c.Close()
	c.Clear(ColorBufferBit)
	expectError(t, c, InvalidOperation)
}

func TestContext_ClosedFramebuffer(t *testing.T) {
	c := newTestContext(t, 8, 8)
	c.Framebuffer().Close()
	c.Clear(ColorBufferBit)
	expectError(t, c, InvalidOperation)
}

func TestContext_ReadPixelsClosedFramebuffer(t *testing.T) {
	c := newTestContext(t, 16, 16)
	c.Framebuffer().Close()

	dst := make([]byte, 16*16*4)
	c.ReadPixels(0, 0, 16, 16, FormatRGBA, UnsignedByte, dst)
	expectError(t, c, InvalidOperation)

	depth := make([]byte, 16*16*2)
	c.ReadPixels(0, 0, 16, 16, FormatDepthComponent, UnsignedShort, depth)
	expectError(t, c, InvalidOperation)
}

// =============================================================================
// Capabilities and errors
// =============================================================================

func TestContext_CapabilitiesRoundTrip(t *testing.T) {
	c := newTestContext(t, 8, 8, WithThreads(1))

	for _, cp := range Capabilities() {
		t.Run(cp.String(), func(t *testing.T) {
			c.Enable(cp)
			if !c.IsEnabled(cp) {
				t.Errorf("IsEnabled(%v) = false after Enable", cp)
			}
			c.Disable(cp)
			if c.IsEnabled(cp) {
				t.Errorf("IsEnabled(%v) = true after Disable", cp)
			}
			expectError(t, c, NoError)
		})
	}
}

func TestContext_UnknownCapability(t *testing.T) {
	c := newTestContext(t, 8, 8)

	c.Enable(Capability(999))
	expectError(t, c, InvalidEnum)

	if c.IsEnabled(LightCap(MaxLights)) {
		t.Error("IsEnabled(LightCap(MaxLights)) = true")
	}
	expectError(t, c, InvalidEnum)
}

func TestContext_FirstErrorWins(t *testing.T) {
	c := newTestContext(t, 8, 8)

	c.End()                 // InvalidOperation
	c.MatrixMode(42)        // InvalidEnum, dropped
	c.Viewport(0, 0, -1, 1) // InvalidValue, dropped

	expectError(t, c, InvalidOperation)
	expectError(t, c, NoError)
}

func TestContext_OutOfMemorySticky(t *testing.T) {
	c := newTestContext(t, 8, 8)
	c.setError(OutOfMemory)
	expectError(t, c, OutOfMemory)
	expectError(t, c, OutOfMemory)
}

func TestContext_VertexOutsideBegin(t *testing.T) {
	c := newTestContext(t, 8, 8)
	before := c.asm

	c.Vertex3f(1, 2, 3)

	if c.asm.cnt != before.cnt || c.asm.idx != before.idx || c.asm.inBegin {
		t.Errorf("assembly state changed: cnt %d idx %d inBegin %v", c.asm.cnt, c.asm.idx, c.asm.inBegin)
	}
	expectError(t, c, InvalidOperation)
	expectError(t, c, NoError)
}

func TestContext_BeginEndMisuse(t *testing.T) {
	tests := []struct {
		name string
		run  func(c *Context)
		want ErrorCode
	}{
		{"end without begin", func(c *Context) { c.End() }, InvalidOperation},
		{"begin twice", func(c *Context) { c.Begin(Points); c.Begin(Lines) }, InvalidOperation},
		{"bad primitive", func(c *Context) { c.Begin(Primitive(77)) }, InvalidEnum},
		{"enable inside begin", func(c *Context) { c.Begin(Points); c.Enable(CapBlend) }, InvalidOperation},
		{"matrix op inside begin", func(c *Context) { c.Begin(Points); c.LoadIdentity() }, InvalidOperation},
		{"clear inside begin", func(c *Context) { c.Begin(Points); c.Clear(ColorBufferBit) }, InvalidOperation},
		{"color inside begin", func(c *Context) { c.Begin(Points); c.Color3f(1, 0, 0) }, NoError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t, 8, 8)
			tt.run(c)
			expectError(t, c, tt.want)
		})
	}
}

func TestContext_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		run  func(c *Context)
		want ErrorCode
	}{
		{"DepthFunc undefined", func(c *Context) { c.DepthFunc(gputypes.CompareFunctionUndefined) }, InvalidEnum},
		{"BlendFunc alpha factor", func(c *Context) {
			c.BlendFunc(gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOne)
		}, InvalidEnum},
		{"BlendEquation undefined", func(c *Context) { c.BlendEquation(gputypes.BlendOperationUndefined) }, InvalidEnum},
		{"Viewport negative", func(c *Context) { c.Viewport(0, 0, -1, 4) }, InvalidValue},
		{"Scissor negative", func(c *Context) { c.Scissor(0, 0, 4, -1) }, InvalidValue},
		{"Clear bad mask", func(c *Context) { c.Clear(ClearMask(4)) }, InvalidValue},
		{"ShadeModel zero", func(c *Context) { c.ShadeModel(0) }, InvalidEnum},
		{"CullFace bad", func(c *Context) { c.CullFace(gputypes.CullMode(7)) }, InvalidEnum},
		{"FrontFace bad", func(c *Context) { c.FrontFace(gputypes.FrontFace(7)) }, InvalidEnum},
		{"PolygonMode bad face", func(c *Context) { c.PolygonMode(Face(9), PolygonFill) }, InvalidEnum},
		{"PolygonMode bad mode", func(c *Context) { c.PolygonMode(FaceFront, 0) }, InvalidEnum},
		{"FogMode zero", func(c *Context) { c.FogMode(0) }, InvalidEnum},
		{"FogDensity negative", func(c *Context) { c.FogDensity(-1) }, InvalidValue},
		{"Frustum zero near", func(c *Context) { c.Frustum(-1, 1, -1, 1, 0, 10) }, InvalidValue},
		{"Ortho empty", func(c *Context) { c.Ortho(0, 0, -1, 1, -1, 1) }, InvalidValue},
		{"MatrixMode bad", func(c *Context) { c.MatrixMode(7) }, InvalidEnum},
		{"GetMatrix bad", func(c *Context) { c.GetMatrix(7) }, InvalidEnum},
		{"spot cutoff", func(c *Context) { c.Lightf(0, LightSpotCutoff, 120) }, InvalidValue},
		{"spot exponent", func(c *Context) { c.Lightf(0, LightSpotExponent, 200) }, InvalidValue},
		{"attenuation negative", func(c *Context) { c.Lightf(0, LightLinearAttenuation, -1) }, InvalidValue},
		{"Lightf vector param", func(c *Context) { c.Lightf(0, LightDiffuse, 1) }, InvalidEnum},
		{"Light index", func(c *Context) { c.Light(MaxLights, LightDiffuse, V4(1, 1, 1, 1)) }, InvalidEnum},
		{"Materialf colour", func(c *Context) { c.Materialf(FaceFront, MaterialDiffuse, 1) }, InvalidEnum},
		{"Material bad face", func(c *Context) { c.Material(0, MaterialDiffuse, V4(1, 1, 1, 1)) }, InvalidEnum},
		{"ColorMaterial shininess", func(c *Context) { c.ColorMaterial(FaceFront, MaterialShininess) }, InvalidEnum},
		{"TexEnv zero", func(c *Context) { c.TexEnv(0) }, InvalidEnum},
		{"TexParameter mirror", func(c *Context) {
			c.TexParameter(TexWrapS, uint32(gputypes.AddressModeMirrorRepeat))
		}, InvalidEnum},
		{"TexParameter bad param", func(c *Context) { c.TexParameter(0, 0) }, InvalidEnum},
		{"GetString zero", func(c *Context) { c.GetString(0) }, InvalidEnum},
		{"GenTextures negative", func(c *Context) { c.GenTextures(-1) }, InvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t, 8, 8)
			tt.run(c)
			expectError(t, c, tt.want)
		})
	}
}

func TestContext_InvalidCallKeepsState(t *testing.T) {
	c := newTestContext(t, 8, 8)
	c.DepthFunc(gputypes.CompareFunctionGreater)
	c.DepthFunc(gputypes.CompareFunction(99))
	if c.depthFunc != gputypes.CompareFunctionGreater {
		t.Errorf("depthFunc = %v after invalid call, want Greater", c.depthFunc)
	}
	expectError(t, c, InvalidEnum)
}

func TestContext_SizesIgnoreNonPositive(t *testing.T) {
	c := newTestContext(t, 8, 8)
	c.PointSize(3)
	c.PointSize(0)
	c.LineWidth(-2)
	if c.pointSize != 3 || c.lineWidth != 1 {
		t.Errorf("pointSize, lineWidth = %v, %v, want 3, 1", c.pointSize, c.lineWidth)
	}
	expectError(t, c, NoError)
}
