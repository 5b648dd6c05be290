// Package zbuffer owns the colour and depth planes of a software
// framebuffer and scan-converts points, lines and triangles into them.
package zbuffer

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgl/internal/blend"
	"github.com/gogpu/softgl/internal/parallel"
)

// PixelMode selects the colour plane layout.
type PixelMode int

const (
	// ModeARGB32 stores one opaque 0xAARRGGBB word per pixel.
	ModeARGB32 PixelMode = iota + 1
)

// Sentinel errors.
var (
	ErrInvalidSize     = errors.New("zbuffer: width and height must be positive")
	ErrBufferTooSmall  = errors.New("zbuffer: colour buffer smaller than width*height")
	ErrUnsupportedMode = errors.New("zbuffer: unsupported pixel mode")
)

// DefaultParallelRows is the buffer height above which triangles are
// split into strips and filled on the worker pool.
const DefaultParallelRows = 64

// Rect is a half-open rectangle in buffer coordinates (row 0 at the top).
type Rect struct {
	X0, Y0, X1, Y1 int
}

// RasterState is the per-fragment state consulted by the fill routines.
// It is written by the owning context between draw calls.
type RasterState struct {
	DepthTest  bool
	DepthWrite bool
	DepthFunc  gputypes.CompareFunction

	BlendEnabled bool
	Blend        blend.State

	ScissorEnabled bool
	Scissor        Rect

	PointSize float64
	LineWidth float64

	// Texture is the bound texture image, nil when texturing is off.
	Texture *Sampler
	// TexModulate multiplies texels by the interpolated colour.
	TexModulate bool
}

// DefaultRasterState returns GL initial values.
func DefaultRasterState() RasterState {
	return RasterState{
		DepthWrite: true,
		DepthFunc:  gputypes.CompareFunctionLess,
		Blend:      blend.Default(),
		PointSize:  1,
		LineWidth:  1,
	}
}

// Buffer is a colour plane of packed ARGB pixels plus a 16-bit depth plane.
// Width is always a multiple of 4.
//
// A Buffer is single-owner: only its controlling goroutine may draw into it.
// Fill routines may fan out to the worker pool over disjoint row strips.
type Buffer struct {
	xsize, ysize int
	mode         PixelMode

	pixels []uint32
	depth  []uint16

	// owned is false when the colour plane was supplied by the caller.
	owned bool

	noCopy        uint32
	noCopyEnabled bool

	// copier is the private copy-out worker.
	copier *parallel.Pool

	pool         *parallel.Pool
	parallelRows int

	State RasterState
}

// Open creates a framebuffer. The width is rounded down to a multiple of 4.
// If pixels is nil the colour plane is allocated and owned by the buffer;
// otherwise pixels is used in place and must hold at least width*height words.
func Open(xsize, ysize int, mode PixelMode, pixels []uint32) (*Buffer, error) {
	if mode != ModeARGB32 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, mode)
	}

	b := &Buffer{
		mode:         mode,
		parallelRows: DefaultParallelRows,
		State:        DefaultRasterState(),
	}
	if err := b.alloc(xsize, ysize, pixels); err != nil {
		return nil, err
	}
	b.copier = parallel.NewPool(1)
	return b, nil
}

// alloc (re)creates both planes.
func (b *Buffer) alloc(xsize, ysize int, pixels []uint32) error {
	xsize &^= 3
	if xsize <= 0 || ysize <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, xsize, ysize)
	}
	n := xsize * ysize
	if pixels != nil && len(pixels) < n {
		return fmt.Errorf("%w: have %d, need %d", ErrBufferTooSmall, len(pixels), n)
	}

	b.xsize = xsize
	b.ysize = ysize
	b.depth = make([]uint16, n)
	if pixels == nil {
		b.pixels = make([]uint32, n)
		b.owned = true
	} else {
		b.pixels = pixels[:n]
		b.owned = false
	}
	return nil
}

// Resize reallocates both planes for the new size. Contents are lost.
// On error the buffer is left unchanged.
func (b *Buffer) Resize(xsize, ysize int, pixels []uint32) error {
	old := *b
	if err := b.alloc(xsize, ysize, pixels); err != nil {
		b.xsize, b.ysize = old.xsize, old.ysize
		b.pixels, b.depth, b.owned = old.pixels, old.depth, old.owned
		return err
	}
	b.clampScissor()
	return nil
}

// Close stops the copy-out worker and drops the planes the buffer owns.
func (b *Buffer) Close() {
	if b.copier != nil {
		b.copier.Close()
	}
	if b.owned {
		b.pixels = nil
	}
	b.depth = nil
}

// SetPool installs the worker pool used for strip-parallel fills.
// A nil pool or a pool of one worker disables parallel fills.
func (b *Buffer) SetPool(p *parallel.Pool) {
	b.pool = p
}

// SetParallelRows sets the height above which triangles are filled in parallel.
func (b *Buffer) SetParallelRows(rows int) {
	b.parallelRows = rows
}

// SetNoCopyColor makes CopyTo skip pixels whose RGB equals c.
func (b *Buffer) SetNoCopyColor(c uint32, enabled bool) {
	b.noCopy = c & 0x00ffffff
	b.noCopyEnabled = enabled
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.xsize }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.ysize }

// Mode returns the pixel mode.
func (b *Buffer) Mode() PixelMode { return b.mode }

// Owned reports whether the colour plane was allocated by the buffer.
func (b *Buffer) Owned() bool { return b.owned }

// Pixels returns the colour plane, row-major with row 0 at the top.
func (b *Buffer) Pixels() []uint32 { return b.pixels }

// Depth returns the depth plane, laid out like Pixels.
func (b *Buffer) Depth() []uint16 { return b.depth }

// PixelAt returns the colour at (x, y), or 0 outside the buffer.
func (b *Buffer) PixelAt(x, y int) uint32 {
	if x < 0 || x >= b.xsize || y < 0 || y >= b.ysize {
		return 0
	}
	return b.pixels[y*b.xsize+x]
}

// DepthAt returns the stored depth at (x, y), or 0 outside the buffer.
func (b *Buffer) DepthAt(x, y int) uint16 {
	if x < 0 || x >= b.xsize || y < 0 || y >= b.ysize {
		return 0
	}
	return b.depth[y*b.xsize+x]
}

// Clear fills the depth plane with z and/or the colour plane with color.
func (b *Buffer) Clear(clearZ bool, z uint16, clearColor bool, color uint32) {
	if clearZ {
		for i := range b.depth {
			b.depth[i] = z
		}
	}
	if clearColor {
		for i := range b.pixels {
			b.pixels[i] = color
		}
	}
}

// CopyTo copies the colour plane into dst, whose rows are stride pixels
// apart. Pixels matching the no-copy colour are skipped.
// When threaded, the lower half is copied by the private worker while the
// caller copies the upper half.
func (b *Buffer) CopyTo(dst []uint32, stride int, threaded bool) {
	if stride < b.xsize {
		stride = b.xsize
	}
	rows := b.ysize
	if need := (rows-1)*stride + b.xsize; len(dst) < need {
		rows = (len(dst) - b.xsize) / stride
		if len(dst) >= b.xsize {
			rows++
		}
	}
	if rows <= 0 {
		return
	}

	half := rows
	split := threaded && b.copier.IsRunning()
	if split {
		half = rows / 2
		b.copier.Step(0, func() { b.copyRows(dst, stride, half, rows) })
	}
	b.copyRows(dst, stride, 0, half)
	if split {
		b.copier.Lock(0)
	}
}

func (b *Buffer) copyRows(dst []uint32, stride, y0, y1 int) {
	for y := y0; y < y1; y++ {
		src := b.pixels[y*b.xsize : (y+1)*b.xsize]
		out := dst[y*stride : y*stride+b.xsize]
		if !b.noCopyEnabled {
			copy(out, src)
			continue
		}
		for x, p := range src {
			if p&0x00ffffff != b.noCopy&0x00ffffff {
				out[x] = p
			}
		}
	}
}

// clampScissor keeps the scissor rectangle inside the buffer after a resize.
func (b *Buffer) clampScissor() {
	s := &b.State.Scissor
	s.X1 = min(s.X1, b.xsize)
	s.Y1 = min(s.Y1, b.ysize)
}

// clip returns the drawable rectangle: the buffer, narrowed by the scissor.
func (b *Buffer) clip() Rect {
	r := Rect{0, 0, b.xsize, b.ysize}
	if b.State.ScissorEnabled {
		s := b.State.Scissor
		r.X0 = max(r.X0, s.X0)
		r.Y0 = max(r.Y0, s.Y0)
		r.X1 = min(r.X1, s.X1)
		r.Y1 = min(r.Y1, s.Y1)
	}
	return r
}

// depthPass applies the active comparison to a fragment.
// Smaller depth is nearer: LESS passes when z < zpix.
func depthPass(f gputypes.CompareFunction, z, zpix uint16) bool {
	switch f {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return z < zpix
	case gputypes.CompareFunctionLessEqual:
		return z <= zpix
	case gputypes.CompareFunctionGreater:
		return z > zpix
	case gputypes.CompareFunctionGreaterEqual:
		return z >= zpix
	case gputypes.CompareFunctionEqual:
		return z == zpix
	case gputypes.CompareFunctionNotEqual:
		return z != zpix
	default:
		return true
	}
}

// fragment runs the depth test for pixel index i and, on pass, writes the
// colour (blended if enabled) and the depth (if depth writes are on).
func (b *Buffer) fragment(i int, z uint16, color uint32) {
	st := &b.State
	if st.DepthTest && !depthPass(st.DepthFunc, z, b.depth[i]) {
		return
	}
	if st.BlendEnabled {
		color = st.Blend.Apply(color, b.pixels[i])
	}
	b.pixels[i] = color
	if st.DepthWrite {
		b.depth[i] = z
	}
}
