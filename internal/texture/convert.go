package texture

import (
	"image"
	"image/color"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	"github.com/gogpu/softgl/internal/parallel"
	"github.com/gogpu/softgl/internal/zbuffer"
)

// Format is the byte layout of client pixel data.
type Format int

// Supported client formats.
const (
	FormatRGB Format = iota + 1
	FormatBGR
	FormatBGRA
	FormatRGBA
)

// BytesPerPixel returns the size of one pixel in f, or 0 for an unknown format.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGB, FormatBGR:
		return 3
	case FormatBGRA, FormatRGBA:
		return 4
	default:
		return 0
	}
}

// String returns the GL-style name of the format.
func (f Format) String() string {
	switch f {
	case FormatRGB:
		return "RGB"
	case FormatBGR:
		return "BGR"
	case FormatBGRA:
		return "BGRA"
	case FormatRGBA:
		return "RGBA"
	default:
		return "unknown"
	}
}

// DefaultParallelPixels is the image area from which conversion is split
// across the worker pool.
const DefaultParallelPixels = 4096

// Converter turns client pixel rows into packed pixels, optionally fanning
// the rows out to a worker pool.
type Converter struct {
	pool      *parallel.Pool
	threshold int
}

// NewConverter returns a converter. A nil pool converts on the caller.
func NewConverter(pool *parallel.Pool, threshold int) *Converter {
	if threshold <= 0 {
		threshold = DefaultParallelPixels
	}
	return &Converter{pool: pool, threshold: threshold}
}

// Convert decodes h rows of w tightly packed pixels from src into dst,
// which must hold w*h entries. Alpha is dropped: every output pixel is opaque.
func (c *Converter) Convert(dst []uint32, src []byte, w, h int, f Format) {
	if c == nil || c.pool == nil || c.pool.Workers() < 2 || w*h < c.threshold {
		convertRows(dst, src, w, 0, h, f)
		return
	}

	strips := parallel.Strips(h, c.pool.Workers())
	slogger().Debug("texture: threaded conversion",
		"width", w, "height", h, "strips", len(strips))

	jobs := make([]func(), len(strips))
	for i, s := range strips {
		jobs[i] = func() { convertRows(dst, src, w, s.Start, s.End, f) }
	}
	c.pool.Run(jobs)
}

func convertRows(dst []uint32, src []byte, w, y0, y1 int, f Format) {
	bpp := f.BytesPerPixel()
	for y := y0; y < y1; y++ {
		in := src[y*w*bpp : (y+1)*w*bpp]
		out := dst[y*w : (y+1)*w]
		for x := range out {
			p := in[x*bpp:]
			var r, g, b byte
			switch f {
			case FormatRGB, FormatRGBA:
				r, g, b = p[0], p[1], p[2]
			case FormatBGR, FormatBGRA:
				r, g, b = p[2], p[1], p[0]
			}
			out[x] = 0xff000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
		}
	}
}

// toImage wraps packed pixels as an RGBA image.
func toImage(px []uint32, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, p := range px[:w*h] {
		o := i * 4
		img.Pix[o+0] = byte(p >> 16)
		img.Pix[o+1] = byte(p >> 8)
		img.Pix[o+2] = byte(p)
		img.Pix[o+3] = 0xff
	}
	return img
}

// fromImage packs a TextureDim x TextureDim image into dst.
func fromImage(dst []uint32, img image.Image) {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok {
		for y := range zbuffer.TextureDim {
			row := rgba.Pix[y*rgba.Stride:]
			for x := range zbuffer.TextureDim {
				o := x * 4
				dst[y*zbuffer.TextureDim+x] = 0xff000000 |
					uint32(row[o])<<16 | uint32(row[o+1])<<8 | uint32(row[o+2])
			}
		}
		return
	}
	for y := range zbuffer.TextureDim {
		for x := range zbuffer.TextureDim {
			c := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			dst[y*zbuffer.TextureDim+x] = 0xff000000 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
		}
	}
}

// resample scales a w x h image to the fixed texture dimension with
// nearest-neighbour sampling.
func resample(dst []uint32, src []uint32, w, h int) {
	out := resize.Resize(zbuffer.TextureDim, zbuffer.TextureDim, toImage(src, w, h), resize.NearestNeighbor)
	fromImage(dst, out)
}

// scale is resample for framebuffer copies: it scales with x/image/draw so
// the source rectangle may be any size.
func scale(dst []uint32, src []uint32, w, h int) {
	out := image.NewRGBA(image.Rect(0, 0, zbuffer.TextureDim, zbuffer.TextureDim))
	draw.NearestNeighbor.Scale(out, out.Bounds(), toImage(src, w, h), image.Rect(0, 0, w, h), draw.Src, nil)
	fromImage(dst, out)
}
