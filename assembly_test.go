package softgl

import (
	"testing"

	"github.com/gogpu/gputypes"
)

// setupPixelOrtho maps object coordinates one to one onto window pixels.
func setupPixelOrtho(c *Context) {
	fb := c.Framebuffer()
	c.MatrixMode(MatrixProjection)
	c.LoadIdentity()
	c.Ortho(0, float64(fb.Width()), 0, float64(fb.Height()), -1, 1)
	c.MatrixMode(MatrixModelView)
	c.LoadIdentity()
}

func countLit(c *Context) int {
	n := 0
	for _, p := range c.Framebuffer().Pixels() {
		if p != black {
			n++
		}
	}
	return n
}

func allLit(t *testing.T, c *Context, want uint32) {
	t.Helper()
	fb := c.Framebuffer()
	for y := range fb.Height() {
		for x := range fb.Width() {
			if p := fb.PixelAt(x, y); p != want {
				t.Fatalf("pixel (%d,%d) = %#x, want %#x", x, y, p, want)
			}
		}
	}
}

// =============================================================================
// Topologies
// =============================================================================

func TestAssembly_FilledTopologies(t *testing.T) {
	tests := []struct {
		name string
		draw func(c *Context)
	}{
		{"triangles", func(c *Context) {
			c.Begin(Triangles)
			c.Vertex2f(-1, -1)
			c.Vertex2f(1, -1)
			c.Vertex2f(1, 1)
			c.Vertex2f(-1, -1)
			c.Vertex2f(1, 1)
			c.Vertex2f(-1, 1)
			c.End()
		}},
		{"triangle strip", func(c *Context) {
			c.Begin(TriangleStrip)
			c.Vertex2f(-1, -1)
			c.Vertex2f(1, -1)
			c.Vertex2f(-1, 1)
			c.Vertex2f(1, 1)
			c.End()
		}},
		{"triangle fan", func(c *Context) {
			c.Begin(TriangleFan)
			c.Vertex2f(0, 0)
			c.Vertex2f(-1, -1)
			c.Vertex2f(1, -1)
			c.Vertex2f(1, 1)
			c.Vertex2f(-1, 1)
			c.Vertex2f(-1, -1)
			c.End()
		}},
		{"quads", func(c *Context) { drawQuadAt(c, -1, -1, 1, 1, 0) }},
		{"quad strip", func(c *Context) {
			c.Begin(QuadStrip)
			c.Vertex2f(-1, -1)
			c.Vertex2f(1, -1)
			c.Vertex2f(-1, 0)
			c.Vertex2f(1, 0)
			c.Vertex2f(-1, 1)
			c.Vertex2f(1, 1)
			c.End()
		}},
		{"polygon", func(c *Context) {
			c.Begin(Polygon)
			c.Vertex2f(-1, -1)
			c.Vertex2f(0, -1)
			c.Vertex2f(1, -1)
			c.Vertex2f(1, 1)
			c.Vertex2f(-1, 1)
			c.End()
		}},
		{"rect", func(c *Context) { c.Rectf(-1, -1, 1, 1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t, 16, 16)
			setupOrtho(c)
			clearBlack(c)
			// Every triangle must come out front facing.
			c.Enable(CapCullFace)
			c.Color3f(1, 1, 1)
			tt.draw(c)
			expectError(t, c, NoError)
			allLit(t, c, white)
		})
	}
}

func TestAssembly_IncompleteGroupsDiscarded(t *testing.T) {
	c := newTestContext(t, 16, 16)
	setupOrtho(c)
	clearBlack(c)

	c.Begin(Triangles)
	c.Vertex2f(-1, -1)
	c.Vertex2f(1, -1)
	c.End()
	c.Begin(Quads)
	c.Vertex2f(-1, -1)
	c.Vertex2f(1, -1)
	c.Vertex2f(1, 1)
	c.End()
	c.Begin(Polygon)
	c.Vertex2f(-1, -1)
	c.Vertex2f(1, -1)
	c.End()
	expectError(t, c, NoError)

	if n := countLit(c); n != 0 {
		t.Errorf("lit pixels = %d, want 0", n)
	}
}

func TestAssembly_LineLoopCloses(t *testing.T) {
	for _, prim := range []Primitive{LineStrip, LineLoop} {
		t.Run(prim.String(), func(t *testing.T) {
			c := newTestContext(t, 32, 32)
			setupPixelOrtho(c)
			clearBlack(c)
			c.Begin(prim)
			c.Vertex2f(4, 4)
			c.Vertex2f(28, 4)
			c.Vertex2f(28, 28)
			c.Vertex2f(4, 28)
			c.End()

			fb := c.Framebuffer()
			if p := fb.PixelAt(28, 16); p != white {
				t.Errorf("right edge = %#x, want white", p)
			}
			closed := fb.PixelAt(4, 16) == white
			if closed != (prim == LineLoop) {
				t.Errorf("closing edge drawn = %v, want %v", closed, prim == LineLoop)
			}
		})
	}
}

func TestAssembly_Lines(t *testing.T) {
	c := newTestContext(t, 32, 32)
	setupPixelOrtho(c)
	clearBlack(c)
	c.Begin(Lines)
	c.Vertex2f(2, 16)
	c.Vertex2f(30, 16)
	c.Vertex2f(16, 2) // unpaired
	c.End()

	fb := c.Framebuffer()
	row := fb.Height() - 16
	for x := 3; x < 29; x++ {
		if p := fb.PixelAt(x, row); p != white {
			t.Fatalf("pixel (%d,%d) = %#x, want white", x, row, p)
		}
	}
	if n := countLit(c); n > 30 {
		t.Errorf("lit pixels = %d, want one line only", n)
	}
}

func TestAssembly_LineToTinyW(t *testing.T) {
	c := newTestContext(t, 64, 64)
	setupOrtho(c)
	clearBlack(c)

	// The second end point projects about 1.6e9 pixels away.
	c.Begin(Lines)
	c.Vertex3f(0, 0, 0)
	c.Vertex4f(0.5, 0.5, 0, 1e-8)
	c.End()
	expectError(t, c, NoError)

	// Only the on-screen diagonal from the centre to the top-right corner.
	if n := countLit(c); n < 30 || n > 34 {
		t.Errorf("lit pixels = %d, want about 32", n)
	}
	fb := c.Framebuffer()
	if p := fb.PixelAt(48, 16); p != white {
		t.Errorf("pixel (48,16) = %#x, want white", p)
	}
}

func TestAssembly_Points(t *testing.T) {
	c := newTestContext(t, 32, 32)
	setupPixelOrtho(c)
	clearBlack(c)
	c.Begin(Points)
	c.Vertex2f(5.5, 5.5)
	c.Vertex2f(20.5, 10.5)
	c.Vertex2f(50, 10) // outside
	c.End()
	if n := countLit(c); n != 2 {
		t.Errorf("lit pixels = %d, want 2", n)
	}

	clearBlack(c)
	c.PointSize(3)
	c.Begin(Points)
	c.Vertex2f(16.5, 16.5)
	c.End()
	if n := countLit(c); n != 9 {
		t.Errorf("lit pixels with size 3 = %d, want 9", n)
	}
}

// =============================================================================
// Faces and polygon modes
// =============================================================================

func TestAssembly_Culling(t *testing.T) {
	tests := []struct {
		name  string
		cull  gputypes.CullMode
		front gputypes.FrontFace
		cw    bool
		drawn bool
	}{
		{"ccw cull back", gputypes.CullModeBack, gputypes.FrontFaceCCW, false, true},
		{"cw cull back", gputypes.CullModeBack, gputypes.FrontFaceCCW, true, false},
		{"ccw cull front", gputypes.CullModeFront, gputypes.FrontFaceCCW, false, false},
		{"cw cull front", gputypes.CullModeFront, gputypes.FrontFaceCCW, true, true},
		{"ccw front cw cull back", gputypes.CullModeBack, gputypes.FrontFaceCW, false, false},
		{"cw front cw cull back", gputypes.CullModeBack, gputypes.FrontFaceCW, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t, 16, 16)
			setupOrtho(c)
			clearBlack(c)
			c.Enable(CapCullFace)
			c.CullFace(tt.cull)
			c.FrontFace(tt.front)

			c.Begin(Triangles)
			c.Vertex2f(-1, -1)
			if tt.cw {
				c.Vertex2f(-1, 1)
				c.Vertex2f(1, -1)
			} else {
				c.Vertex2f(1, -1)
				c.Vertex2f(-1, 1)
			}
			c.End()

			if drawn := countLit(c) > 0; drawn != tt.drawn {
				t.Errorf("drawn = %v, want %v", drawn, tt.drawn)
			}
		})
	}
}

func TestAssembly_CullDisabledDrawsBoth(t *testing.T) {
	c := newTestContext(t, 16, 16)
	setupOrtho(c)
	clearBlack(c)
	c.CullFace(gputypes.CullModeBack)
	c.Begin(Triangles)
	c.Vertex2f(-1, -1)
	c.Vertex2f(-1, 1)
	c.Vertex2f(1, -1)
	c.End()
	if countLit(c) == 0 {
		t.Error("clockwise triangle culled with culling disabled")
	}
}

func TestAssembly_PolygonLineSkipsQuadDiagonal(t *testing.T) {
	c := newTestContext(t, 32, 32)
	setupPixelOrtho(c)
	clearBlack(c)
	c.PolygonMode(FaceFrontAndBack, PolygonLine)
	drawQuadAt(c, 4, 4, 28, 28, 0)
	expectError(t, c, NoError)

	fb := c.Framebuffer()
	for _, p := range [][2]int{{16, 16}, {10, 20}, {20, 10}, {12, 12}, {20, 20}} {
		if got := fb.PixelAt(p[0], p[1]); got != black {
			t.Errorf("interior pixel %v = %#x, want black", p, got)
		}
	}
	if got := fb.PixelAt(4, 16); got != white {
		t.Errorf("left edge = %#x, want white", got)
	}
	if got := fb.PixelAt(28, 16); got != white {
		t.Errorf("right edge = %#x, want white", got)
	}
}

func TestAssembly_PolygonPoint(t *testing.T) {
	c := newTestContext(t, 32, 32)
	setupPixelOrtho(c)
	clearBlack(c)
	c.PolygonMode(FaceFrontAndBack, PolygonPoint)
	c.Begin(Triangles)
	c.Vertex2f(4.5, 4.5)
	c.Vertex2f(20.5, 4.5)
	c.Vertex2f(4.5, 20.5)
	c.End()
	if n := countLit(c); n != 3 {
		t.Errorf("lit pixels = %d, want 3", n)
	}
}

func TestAssembly_EdgeFlags(t *testing.T) {
	c := newTestContext(t, 32, 32)
	setupPixelOrtho(c)
	clearBlack(c)
	c.PolygonMode(FaceFrontAndBack, PolygonPoint)
	c.Begin(Triangles)
	c.Vertex2f(4.5, 4.5)
	c.EdgeFlag(false)
	c.Vertex2f(20.5, 4.5)
	c.EdgeFlag(true)
	c.Vertex2f(4.5, 20.5)
	c.End()
	if n := countLit(c); n != 2 {
		t.Errorf("lit pixels = %d, want 2", n)
	}
}

func TestAssembly_BackPolygonMode(t *testing.T) {
	c := newTestContext(t, 16, 16)
	setupOrtho(c)
	clearBlack(c)
	c.PolygonMode(FaceBack, PolygonPoint)

	// Clockwise, so back facing.
	c.Begin(Triangles)
	c.Vertex2f(-1, -1)
	c.Vertex2f(-1, 1)
	c.Vertex2f(1, -1)
	c.End()
	if n := countLit(c); n > 3 {
		t.Errorf("lit pixels = %d, want only vertices", n)
	}
}

// =============================================================================
// Shading and fragment state
// =============================================================================

func drawRGBTriangle(c *Context) {
	c.Begin(Triangles)
	c.Color3f(1, 0, 0)
	c.Vertex2f(-1, -1)
	c.Color3f(0, 1, 0)
	c.Vertex2f(1, -1)
	c.Color3f(0, 0, 1)
	c.Vertex2f(-1, 1)
	c.End()
}

func TestAssembly_FlatUsesLastVertex(t *testing.T) {
	c := newTestContext(t, 32, 32)
	setupOrtho(c)
	clearBlack(c)
	c.ShadeModel(ShadeFlat)
	drawRGBTriangle(c)

	for _, p := range c.Framebuffer().Pixels() {
		if p != black && p != blue {
			t.Fatalf("flat pixel = %#x, want blue", p)
		}
	}
	if countLit(c) == 0 {
		t.Fatal("nothing drawn")
	}
}

func TestAssembly_SmoothInterpolates(t *testing.T) {
	c := newTestContext(t, 32, 32)
	setupOrtho(c)
	clearBlack(c)
	drawRGBTriangle(c)

	colors := map[uint32]bool{}
	for _, p := range c.Framebuffer().Pixels() {
		if p != black {
			colors[p] = true
		}
	}
	if len(colors) < 50 {
		t.Errorf("distinct colours = %d, want a gradient", len(colors))
	}
	p := glPixel(c, 1, 1)
	if r := int(p>>16) & 0xff; r < 200 {
		t.Errorf("corner near red vertex = %#x, want mostly red", p)
	}
}

func TestAssembly_Scissor(t *testing.T) {
	c := newTestContext(t, 16, 16)
	setupOrtho(c)
	clearBlack(c)
	c.Enable(CapScissorTest)
	c.Scissor(0, 0, 8, 4)
	c.Rectf(-1, -1, 1, 1)

	if n := countLit(c); n != 32 {
		t.Errorf("lit pixels = %d, want 32", n)
	}
	if glPixel(c, 2, 2) != white {
		t.Error("pixel inside scissor box not drawn")
	}
	if glPixel(c, 2, 6) != black {
		t.Error("pixel above scissor box drawn")
	}
}

func TestAssembly_Blend(t *testing.T) {
	c := newTestContext(t, 16, 16)
	setupOrtho(c)
	c.ClearColor(0, 0, 1, 1)
	c.Clear(ColorBufferBit)
	c.Enable(CapBlend)
	c.BlendFunc(gputypes.BlendFactorOne, gputypes.BlendFactorOne)
	c.Color3f(1, 0, 0)
	c.Rectf(-1, -1, 1, 1)
	allLit(t, c, 0xffff00ff)
}

func TestAssembly_PolygonOffset(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		c := newTestContext(t, 16, 16)
		setupOrtho(c)
		clearBlack(c)
		c.Enable(CapDepthTest)
		c.Color3f(0, 1, 0)
		drawQuadAt(c, -1, -1, 1, 1, 0)

		if enabled {
			c.Enable(CapPolygonOffsetFill)
			c.PolygonOffset(0, -1)
		}
		c.Color3f(1, 0, 0)
		drawQuadAt(c, -1, -1, 1, 1, 0)

		want := uint32(green)
		if enabled {
			want = red
		}
		if p := glPixel(c, 8, 8); p != want {
			t.Errorf("offset %v: pixel = %#x, want %#x", enabled, p, want)
		}
	}
}

func TestAssembly_DepthMask(t *testing.T) {
	c := newTestContext(t, 16, 16)
	setupOrtho(c)
	clearBlack(c)
	c.Enable(CapDepthTest)
	c.DepthMask(false)
	drawQuadAt(c, -1, -1, 1, 1, 0)
	if d := c.Framebuffer().DepthAt(8, 8); d != 0xffff {
		t.Errorf("depth = %#x, want unchanged 0xffff", d)
	}
	if glPixel(c, 8, 8) != white {
		t.Error("colour not written")
	}
}

// =============================================================================
// Clipping
// =============================================================================

func TestAssembly_TrivialReject(t *testing.T) {
	c := newTestContext(t, 16, 16)
	setupOrtho(c)
	clearBlack(c)

	c.Begin(Triangles)
	c.Vertex2f(1.5, -1)
	c.Vertex2f(3, -1)
	c.Vertex2f(2, 1)
	// behind the far plane
	c.Vertex3f(-1, -1, -5)
	c.Vertex3f(1, -1, -5)
	c.Vertex3f(0, 1, -5)
	c.End()
	c.Begin(Lines)
	c.Vertex2f(-3, -2)
	c.Vertex2f(3, -2)
	c.End()
	expectError(t, c, NoError)

	if n := countLit(c); n != 0 {
		t.Errorf("lit pixels = %d, want 0", n)
	}
}

func TestAssembly_PartiallyOutsideDrawn(t *testing.T) {
	c := newTestContext(t, 16, 16)
	setupOrtho(c)
	clearBlack(c)
	c.Begin(Triangles)
	c.Vertex2f(-3, -3)
	c.Vertex2f(3, -3)
	c.Vertex2f(0, 0.5)
	c.End()
	if glPixel(c, 8, 2) != white {
		t.Error("visible part of straddling triangle not drawn")
	}
}

func TestAssembly_ZeroW(t *testing.T) {
	c := newTestContext(t, 16, 16)
	setupOrtho(c)
	clearBlack(c)
	c.Begin(Triangles)
	c.Vertex4f(-1, -1, 0, 0)
	c.Vertex2f(1, -1)
	c.Vertex2f(0, 1)
	c.End()
	expectError(t, c, NoError)
	if n := countLit(c); n != 0 {
		t.Errorf("lit pixels = %d, want 0", n)
	}
}
