package softgl

import (
	"errors"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgl/internal/texture"
)

type genTexturesCmd struct {
	n   int
	out *[]uint32
}

func (genTexturesCmd) Opcode() Opcode { return OpGenTextures }

func (cmd genTexturesCmd) apply(c *Context) {
	if cmd.n < 0 {
		c.setError(InvalidValue)
		return
	}
	*cmd.out = c.textures.Gen(cmd.n)
}

// GenTextures creates n texture objects and returns their handles, all
// greater than every existing handle.
func (c *Context) GenTextures(n int) []uint32 {
	var out []uint32
	c.exec(genTexturesCmd{n, &out})
	return out
}

// IsTexture reports whether h names a texture object. Handle 0, the
// default texture, is never reported.
func (c *Context) IsTexture(h uint32) bool { return c.textures.IsTexture(h) }

type bindTextureCmd struct{ h uint32 }

func (bindTextureCmd) Opcode() Opcode { return OpBindTexture }

func (cmd bindTextureCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	c.textures.Bind(cmd.h)
}

// BindTexture makes h the current texture, creating it if unused.
func (c *Context) BindTexture(h uint32) { c.exec(bindTextureCmd{h}) }

type deleteTexturesCmd struct{ handles []uint32 }

func (deleteTexturesCmd) Opcode() Opcode { return OpDeleteTextures }

func (cmd deleteTexturesCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	c.textures.Delete(cmd.handles...)
}

// DeleteTextures deletes the named textures. A deleted current texture is
// replaced by the default one; unknown handles are ignored.
func (c *Context) DeleteTextures(handles ...uint32) { c.exec(deleteTexturesCmd{handles}) }

// textureFormat maps a client pixel format to the converter's.
func textureFormat(f PixelFormat) (texture.Format, bool) {
	switch f {
	case FormatRGB:
		return texture.FormatRGB, true
	case FormatBGR:
		return texture.FormatBGR, true
	case FormatBGRA:
		return texture.FormatBGRA, true
	case FormatRGBA:
		return texture.FormatRGBA, true
	default:
		return 0, false
	}
}

// textureError maps an upload error to a GL code.
func textureError(err error) ErrorCode {
	switch {
	case errors.Is(err, texture.ErrUnknownFormat):
		return InvalidEnum
	case errors.Is(err, texture.ErrUndefinedImage):
		return InvalidOperation
	default:
		return InvalidValue
	}
}

type texImageCmd struct {
	level, components int
	width, height     int
	border            int
	format            PixelFormat
	typ               PixelType
	pixels            []byte
}

func (texImageCmd) Opcode() Opcode { return OpTexImage2D }

func (cmd texImageCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	if cmd.level != 0 || cmd.border != 0 || (cmd.components != 3 && cmd.components != 4) {
		c.setError(InvalidValue)
		return
	}
	f, ok := textureFormat(cmd.format)
	if !ok || cmd.typ != UnsignedByte {
		c.setError(InvalidEnum)
		return
	}
	if err := c.textures.Current().SetImage(cmd.pixels, cmd.width, cmd.height, f); err != nil {
		c.setError(textureError(err))
	}
}

// TexImage2D defines the image of the current texture. Only level 0,
// border 0, 3 or 4 components and UnsignedByte data are accepted. Images
// of any other size than TextureSize x TextureSize are resampled to it
// with nearest-neighbour filtering. Row 0 of pixels is texture row t=0.
func (c *Context) TexImage2D(level, components, width, height, border int, format PixelFormat, typ PixelType, pixels []byte) {
	c.exec(texImageCmd{level, components, width, height, border, format, typ, pixels})
}

type texSubImageCmd struct {
	level         int
	x, y          int
	width, height int
	format        PixelFormat
	typ           PixelType
	pixels        []byte
}

func (texSubImageCmd) Opcode() Opcode { return OpTexSubImage2D }

func (cmd texSubImageCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	if cmd.level != 0 {
		c.setError(InvalidValue)
		return
	}
	f, ok := textureFormat(cmd.format)
	if !ok || cmd.typ != UnsignedByte {
		c.setError(InvalidEnum)
		return
	}
	if err := c.textures.Current().SetSubImage(cmd.x, cmd.y, cmd.width, cmd.height, cmd.pixels, f); err != nil {
		c.setError(textureError(err))
	}
}

// TexSubImage2D replaces a region of the current texture's image.
func (c *Context) TexSubImage2D(level, x, y, width, height int, format PixelFormat, typ PixelType, pixels []byte) {
	c.exec(texSubImageCmd{level, x, y, width, height, format, typ, pixels})
}

// readRegion returns w x h framebuffer pixels whose lower-left corner is
// (x, y) in GL window coordinates, bottom row first. Coordinates outside
// the framebuffer wrap around.
func (c *Context) readRegion(x, y, w, h int) []uint32 {
	zb := c.fb.zb
	fw, fh := zb.Width(), zb.Height()
	pix := zb.Pixels()
	out := make([]uint32, w*h)
	for j := range h {
		row := fh - 1 - mod(y+j, fh)
		for i := range w {
			out[j*w+i] = pix[row*fw+mod(x+i, fw)]
		}
	}
	return out
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

type copyTexImageCmd struct {
	sub        bool
	level      int
	xoff, yoff int
	x, y, w, h int
	border     int
}

func (cmd copyTexImageCmd) Opcode() Opcode {
	if cmd.sub {
		return OpCopyTexSubImage2D
	}
	return OpCopyTexImage2D
}

func (cmd copyTexImageCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	if cmd.level != 0 || cmd.border != 0 || cmd.w <= 0 || cmd.h <= 0 {
		c.setError(InvalidValue)
		return
	}
	px := c.readRegion(cmd.x, cmd.y, cmd.w, cmd.h)
	tex := c.textures.Current()

	var err error
	if cmd.sub {
		err = tex.SetSubPixels(cmd.xoff, cmd.yoff, cmd.w, cmd.h, px)
	} else {
		err = tex.SetPixels(px, cmd.w, cmd.h)
	}
	if err != nil {
		c.setError(textureError(err))
	}
}

// CopyTexImage2D defines the current texture's image from a framebuffer
// region, lower-left corner (x, y). The bottom row becomes texture row 0.
func (c *Context) CopyTexImage2D(level, x, y, width, height, border int) {
	c.exec(copyTexImageCmd{level: level, x: x, y: y, w: width, h: height, border: border})
}

// CopyTexSubImage2D replaces the region at (xoff, yoff) of the current
// texture with framebuffer pixels.
func (c *Context) CopyTexSubImage2D(level, xoff, yoff, x, y, width, height int) {
	c.exec(copyTexImageCmd{sub: true, level: level, xoff: xoff, yoff: yoff, x: x, y: y, w: width, h: height})
}

type texParameterCmd struct {
	param TexParam
	value uint32
}

func (texParameterCmd) Opcode() Opcode { return OpTexParameter }

func (cmd texParameterCmd) apply(c *Context) {
	tex := c.textures.Current()
	switch cmd.param {
	case TexWrapS, TexWrapT:
		mode := gputypes.AddressMode(cmd.value)
		if mode != gputypes.AddressModeClampToEdge && mode != gputypes.AddressModeRepeat {
			c.setError(InvalidEnum)
			return
		}
		if cmd.param == TexWrapS {
			tex.WrapS = mode
		} else {
			tex.WrapT = mode
		}
	case TexMinFilter, TexMagFilter:
		f := gputypes.FilterMode(cmd.value)
		if f != gputypes.FilterModeNearest && f != gputypes.FilterModeLinear {
			c.setError(InvalidEnum)
			return
		}
		if cmd.param == TexMinFilter {
			tex.MinFilter = f
		} else {
			tex.MagFilter = f
		}
	default:
		c.setError(InvalidEnum)
	}
}

// TexParameter sets a parameter of the current texture. Wrap parameters
// take a gputypes.AddressMode (clamp-to-edge or repeat), filter parameters
// a gputypes.FilterMode. Filters are recorded; sampling is always nearest.
func (c *Context) TexParameter(param TexParam, value uint32) {
	c.exec(texParameterCmd{param, value})
}

type texEnvCmd struct{ mode TexEnvMode }

func (texEnvCmd) Opcode() Opcode { return OpTexEnv }

func (cmd texEnvCmd) apply(c *Context) {
	if cmd.mode < TexModulate || cmd.mode > TexDecal {
		c.setError(InvalidEnum)
		return
	}
	c.texEnv = cmd.mode
}

// TexEnv selects how texels combine with the fragment colour.
func (c *Context) TexEnv(mode TexEnvMode) { c.exec(texEnvCmd{mode}) }
