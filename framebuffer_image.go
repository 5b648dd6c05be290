package softgl

import (
	"image"
	"image/color"
)

// Image returns a live image.Image view of the colour plane. Drawing into
// the framebuffer afterwards is visible through the view.
func (f *Framebuffer) Image() image.Image {
	return frameImage{fb: f}
}

// Snapshot copies the colour plane into a new image.RGBA.
func (f *Framebuffer) Snapshot() *image.RGBA {
	w, h := f.Width(), f.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, p := range f.Pixels()[:w*h] {
		o := i * 4
		img.Pix[o+0] = byte(p >> 16)
		img.Pix[o+1] = byte(p >> 8)
		img.Pix[o+2] = byte(p)
		img.Pix[o+3] = 0xff
	}
	return img
}

// frameImage adapts a Framebuffer to image.Image.
type frameImage struct {
	fb *Framebuffer
}

// At implements the image.Image interface.
func (im frameImage) At(x, y int) color.Color {
	p := im.fb.PixelAt(x, y)
	return color.RGBA{R: byte(p >> 16), G: byte(p >> 8), B: byte(p), A: 0xff}
}

// Bounds implements the image.Image interface.
func (im frameImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.fb.Width(), im.fb.Height())
}

// ColorModel implements the image.Image interface.
func (im frameImage) ColorModel() color.Model {
	return color.RGBAModel
}
