package softgl

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"slices"

	"github.com/HugoSmits86/nativewebp"
	"github.com/gogpu/gpucontext"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Encoder writes an image in one file format.
type Encoder func(w io.Writer, img image.Image) error

var encoders = gpucontext.NewRegistry[Encoder](
	gpucontext.WithPriority("png", "webp", "bmp", "tiff"),
)

func init() {
	RegisterEncoder("png", png.Encode)
	RegisterEncoder("bmp", bmp.Encode)
	RegisterEncoder("tiff", func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	})
	RegisterEncoder("webp", func(w io.Writer, img image.Image) error {
		return nativewebp.Encode(w, img, nil)
	})
}

// RegisterEncoder adds or replaces the encoder for format.
func RegisterEncoder(format string, enc Encoder) {
	encoders.Register(format, func() Encoder { return enc })
}

// Encoders returns the registered format names, sorted.
func Encoders() []string {
	names := encoders.Available()
	slices.Sort(names)
	return names
}

// EncodeImage writes img to w in the named format. An empty format
// selects the preferred registered one (png).
func EncodeImage(w io.Writer, img image.Image, format string) error {
	if format == "" {
		format = encoders.BestName()
	}
	enc := encoders.Get(format)
	if enc == nil {
		return fmt.Errorf("encode image: %w: %q", ErrUnknownEncoder, format)
	}
	if err := enc(w, img); err != nil {
		return fmt.Errorf("encode image %s: %w", format, err)
	}
	return nil
}
