// Package softgl is a CPU-only 3D rasterizer with a fixed-function,
// immediate-mode API in the style of OpenGL 1.1.
//
// # Overview
//
// softgl draws points, lines and triangles into an in-memory framebuffer
// made of a packed 32-bit ARGB colour plane and a 16-bit depth plane. It
// covers matrix stacks, per-vertex lighting with up to MaxLights lights,
// fog, one 256x256 texture per texture object, depth testing, blending,
// face culling and polygon modes. No GPU, windowing system or cgo is used.
//
// # Quick Start
//
//	import "github.com/gogpu/softgl"
//
//	fb, _ := softgl.OpenFramebuffer(256, 256)
//	defer fb.Close()
//	ctx, _ := softgl.NewContext(fb)
//	defer ctx.Close()
//
//	ctx.ClearColor(0, 0, 0, 1)
//	ctx.Clear(softgl.ColorBufferBit | softgl.DepthBufferBit)
//	ctx.MatrixMode(softgl.MatrixProjection)
//	ctx.Ortho(-1, 1, -1, 1, -1, 1)
//
//	ctx.Begin(softgl.Triangles)
//	ctx.Color3f(1, 0, 0)
//	ctx.Vertex2f(-1, -1)
//	ctx.Vertex2f(1, -1)
//	ctx.Vertex2f(0, 1)
//	ctx.End()
//
//	_ = softgl.EncodeImage(w, fb.Image(), "png")
//
// # Commands and errors
//
// Every state-changing Context method encodes a Command and dispatches it
// at once. Invalid calls do not panic: they are ignored and record a
// sticky ErrorCode, read back with GetError. Lifecycle functions such as
// OpenFramebuffer and NewContext return Go errors instead.
//
// # Coordinate System
//
// Window coordinates follow GL: the origin of Viewport, Scissor,
// ReadPixels and CopyTexImage2D is the lower-left corner. The framebuffer
// planes themselves are stored top row first, so Framebuffer.Pixels,
// PixelAt and Image use image coordinates with y growing downwards.
// Stored depth is 0 at the near plane and 0xFFFF at the far plane.
//
// # Concurrency
//
// A Context and its Framebuffer belong to one goroutine. Internally,
// large triangles, texture conversions and framebuffer copies are split
// into disjoint row strips run by a fixed pool of workers; see
// WithThreads. Output does not depend on the number of workers.
//
// # Limitations
//
// Primitives are rejected only when entirely outside one frustum plane;
// there is no polygon clipping, so triangles crossing the eye plane render
// incorrectly. Textures are sampled with nearest filtering and have no
// mipmaps. Alpha and stencil tests are recorded but have no effect.
package softgl

// Version information.
const (
	// LibraryVersion is the current version of the library.
	LibraryVersion = "0.1.0"

	// VersionMajor is the major version.
	VersionMajor = 0

	// VersionMinor is the minor version.
	VersionMinor = 1

	// VersionPatch is the patch version.
	VersionPatch = 0
)
