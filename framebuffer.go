package softgl

import (
	"errors"
	"fmt"

	"github.com/gogpu/softgl/internal/zbuffer"
)

// Framebuffer is a colour plane of packed 0xAARRGGBB pixels plus a 16-bit
// depth plane. Row 0 is the top of the image. The width is always a
// multiple of 4.
//
// A Framebuffer is single-owner: it must not be drawn into from more than
// one goroutine at a time.
type Framebuffer struct {
	zb         *zbuffer.Buffer
	serialCopy bool
	closed     bool
}

// OpenFramebuffer allocates a framebuffer. A width that is not a multiple
// of 4 is rounded down, with a warning logged.
func OpenFramebuffer(width, height int, opts ...FramebufferOption) (*Framebuffer, error) {
	o := defaultFramebufferOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.mode != PixelARGB32 {
		return nil, fmt.Errorf("open framebuffer: %w: %d", ErrUnsupportedPixelMode, o.mode)
	}
	if width&3 != 0 {
		slogger().Warn("softgl: framebuffer width rounded down to a multiple of 4",
			"requested", width, "width", width&^3)
	}

	zb, err := zbuffer.Open(width, height, zbuffer.ModeARGB32, o.pixels)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer: %w", translateBufferError(err))
	}
	zb.SetNoCopyColor(o.noCopy, o.noCopyEnabled)

	slogger().Info("softgl: framebuffer opened",
		"width", zb.Width(), "height", zb.Height(), "external", !zb.Owned())

	return &Framebuffer{zb: zb, serialCopy: o.serialCopy}, nil
}

func translateBufferError(err error) error {
	switch {
	case errors.Is(err, zbuffer.ErrInvalidSize), errors.Is(err, zbuffer.ErrBufferTooSmall):
		return fmt.Errorf("%w: %w", ErrInvalidSize, err)
	case errors.Is(err, zbuffer.ErrUnsupportedMode):
		return fmt.Errorf("%w: %w", ErrUnsupportedPixelMode, err)
	default:
		return err
	}
}

// Resize reallocates both planes. Contents are lost. An external colour
// buffer may be supplied for the new size; nil allocates one.
func (f *Framebuffer) Resize(width, height int, pixels []uint32) error {
	if f.closed {
		return fmt.Errorf("resize framebuffer: %w", ErrClosed)
	}
	if err := f.zb.Resize(width, height, pixels); err != nil {
		return fmt.Errorf("resize framebuffer: %w", translateBufferError(err))
	}
	slogger().Info("softgl: framebuffer resized", "width", f.zb.Width(), "height", f.zb.Height())
	return nil
}

// Close stops the copy-out worker and releases the planes the framebuffer
// owns. Close is safe to call multiple times.
func (f *Framebuffer) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.zb.Close()
	slogger().Info("softgl: framebuffer closed")
}

// Width returns the width in pixels.
func (f *Framebuffer) Width() int { return f.zb.Width() }

// Height returns the height in pixels.
func (f *Framebuffer) Height() int { return f.zb.Height() }

// Pixels returns the colour plane, row-major, row 0 at the top.
func (f *Framebuffer) Pixels() []uint32 { return f.zb.Pixels() }

// Depth returns the depth plane, laid out like Pixels. Smaller is nearer.
func (f *Framebuffer) Depth() []uint16 { return f.zb.Depth() }

// PixelAt returns the colour at column x, row y (row 0 at the top).
func (f *Framebuffer) PixelAt(x, y int) uint32 { return f.zb.PixelAt(x, y) }

// DepthAt returns the depth at column x, row y (row 0 at the top).
func (f *Framebuffer) DepthAt(x, y int) uint16 { return f.zb.DepthAt(x, y) }

// CopyTo copies the colour plane into dst, whose rows are stride pixels
// apart, for presenting on an external surface. Pixels equal to the
// no-copy colour are skipped.
func (f *Framebuffer) CopyTo(dst []uint32, stride int) {
	if f.closed {
		return
	}
	f.zb.CopyTo(dst, stride, !f.serialCopy)
}
