// Package texture manages handle-addressed texture objects: their
// parameters, their single fixed-size image and the conversion of client
// pixel data into packed pixels.
package texture

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgl/internal/zbuffer"
)

// Dim is the width and height of every stored image.
const Dim = zbuffer.TextureDim

// Sentinel errors.
var (
	ErrShortData      = errors.New("texture: pixel data shorter than width*height")
	ErrUnknownFormat  = errors.New("texture: unknown pixel format")
	ErrInvalidSize    = errors.New("texture: width and height must be positive")
	ErrOutOfBounds    = errors.New("texture: region exceeds image bounds")
	ErrUndefinedImage = errors.New("texture: no image defined")
)

// Compile-time interface checks.
var (
	_ gpucontext.Texture              = (*Texture)(nil)
	_ gpucontext.TextureUpdater       = (*Texture)(nil)
	_ gpucontext.TextureRegionUpdater = (*Texture)(nil)
)

// Texture is one texture object. Its image, once defined, is always
// Dim x Dim packed ARGB pixels; uploads of other sizes are resampled.
type Texture struct {
	handle uint32

	WrapS, WrapT         gputypes.AddressMode
	MinFilter, MagFilter gputypes.FilterMode

	texels []uint32
	format gputypes.TextureFormat

	// srcWidth and srcHeight are the dimensions of the last full upload.
	srcWidth, srcHeight int

	conv    *Converter
	sampler zbuffer.Sampler
}

func newTexture(handle uint32, conv *Converter) *Texture {
	return &Texture{
		handle:    handle,
		WrapS:     gputypes.AddressModeRepeat,
		WrapT:     gputypes.AddressModeRepeat,
		MinFilter: gputypes.FilterModeNearest,
		MagFilter: gputypes.FilterModeNearest,
		conv:      conv,
	}
}

// Handle returns the texture name.
func (t *Texture) Handle() uint32 { return t.handle }

// Defined reports whether an image has been uploaded.
func (t *Texture) Defined() bool { return t.texels != nil }

// Width returns Dim once an image is defined, 0 before.
func (t *Texture) Width() int {
	if t.texels == nil {
		return 0
	}
	return Dim
}

// Height returns Dim once an image is defined, 0 before.
func (t *Texture) Height() int { return t.Width() }

// SourceSize returns the size of the last full upload before resampling.
func (t *Texture) SourceSize() (w, h int) { return t.srcWidth, t.srcHeight }

// Format reports the channel order of the last upload.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Texels returns the stored image, row-major, Dim x Dim. Nil when undefined.
func (t *Texture) Texels() []uint32 { return t.texels }

// Sampler returns a sampler over the stored image configured with the
// current wrap modes, or nil when no image is defined.
func (t *Texture) Sampler() *zbuffer.Sampler {
	if t.texels == nil {
		return nil
	}
	t.sampler = zbuffer.Sampler{
		Texels: t.texels,
		ClampS: t.WrapS == gputypes.AddressModeClampToEdge,
		ClampT: t.WrapT == gputypes.AddressModeClampToEdge,
	}
	return &t.sampler
}

// SetImage defines the image from w x h pixels of client data in format f.
// Row 0 of data becomes texture row t=0.
func (t *Texture) SetImage(data []byte, w, h int, f Format) error {
	bpp := f.BytesPerPixel()
	if bpp == 0 {
		return fmt.Errorf("%w: %d", ErrUnknownFormat, f)
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if len(data) < w*h*bpp {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrShortData, len(data), w*h*bpp)
	}

	texels := make([]uint32, Dim*Dim)
	if w == Dim && h == Dim {
		t.conv.Convert(texels, data, w, h, f)
	} else {
		src := make([]uint32, w*h)
		t.conv.Convert(src, data, w, h, f)
		resample(texels, src, w, h)
		slogger().Debug("texture: resampled upload",
			"handle", t.handle, "from_w", w, "from_h", h, "to", Dim)
	}

	t.texels = texels
	t.srcWidth, t.srcHeight = w, h
	t.format = formatOf(f)
	return nil
}

// SetSubImage replaces a w x h region at (x, y) of the defined image.
func (t *Texture) SetSubImage(x, y, w, h int, data []byte, f Format) error {
	bpp := f.BytesPerPixel()
	if bpp == 0 {
		return fmt.Errorf("%w: %d", ErrUnknownFormat, f)
	}
	if t.texels == nil {
		return ErrUndefinedImage
	}
	if w < 0 || h < 0 || x < 0 || y < 0 || x+w > Dim || y+h > Dim {
		return fmt.Errorf("%w: %dx%d at (%d,%d)", ErrOutOfBounds, w, h, x, y)
	}
	if len(data) < w*h*bpp {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrShortData, len(data), w*h*bpp)
	}
	if w == 0 || h == 0 {
		return nil
	}

	row := make([]uint32, w*h)
	t.conv.Convert(row, data, w, h, f)
	for j := range h {
		copy(t.texels[(y+j)*Dim+x:(y+j)*Dim+x+w], row[j*w:(j+1)*w])
	}
	return nil
}

// SetPixels defines the image from already packed pixels, scaling when the
// source is not Dim x Dim.
func (t *Texture) SetPixels(px []uint32, w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if len(px) < w*h {
		return fmt.Errorf("%w: have %d pixels, need %d", ErrShortData, len(px), w*h)
	}

	texels := make([]uint32, Dim*Dim)
	if w == Dim && h == Dim {
		for i, p := range px[:Dim*Dim] {
			texels[i] = p | 0xff000000
		}
	} else {
		scale(texels, px, w, h)
		slogger().Debug("texture: scaled copy",
			"handle", t.handle, "from_w", w, "from_h", h, "to", Dim)
	}

	t.texels = texels
	t.srcWidth, t.srcHeight = w, h
	t.format = gputypes.TextureFormatBGRA8Unorm
	return nil
}

// SetSubPixels replaces a w x h region at (x, y) from packed pixels.
func (t *Texture) SetSubPixels(x, y, w, h int, px []uint32) error {
	if t.texels == nil {
		return ErrUndefinedImage
	}
	if w < 0 || h < 0 || x < 0 || y < 0 || x+w > Dim || y+h > Dim {
		return fmt.Errorf("%w: %dx%d at (%d,%d)", ErrOutOfBounds, w, h, x, y)
	}
	if len(px) < w*h {
		return fmt.Errorf("%w: have %d pixels, need %d", ErrShortData, len(px), w*h)
	}
	for j := range h {
		dst := t.texels[(y+j)*Dim+x : (y+j)*Dim+x+w]
		for i, p := range px[j*w : (j+1)*w] {
			dst[i] = p | 0xff000000
		}
	}
	return nil
}

// UpdateData replaces the whole image with Dim x Dim RGBA bytes.
func (t *Texture) UpdateData(data []byte) error {
	return t.SetImage(data, Dim, Dim, FormatRGBA)
}

// UpdateRegion replaces a region with densely packed RGBA rows.
func (t *Texture) UpdateRegion(x, y, w, h int, data []byte) error {
	return t.SetSubImage(x, y, w, h, data, FormatRGBA)
}

func formatOf(f Format) gputypes.TextureFormat {
	switch f {
	case FormatBGR, FormatBGRA:
		return gputypes.TextureFormatBGRA8Unorm
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}
