package softgl

import "encoding/binary"

type readFormat struct {
	bpp        int
	r, g, b, a int // byte offsets, -1 when absent
}

var readFormats = map[PixelFormat]readFormat{
	FormatRGBA: {4, 0, 1, 2, 3},
	FormatRGB:  {3, 0, 1, 2, -1},
	FormatBGR:  {3, 2, 1, 0, -1},
	FormatBGRA: {4, 2, 1, 0, 3},
}

// ReadPixels copies the w x h region with lower-left corner (x, y) into
// dst, bottom row first. Colour formats take UnsignedByte, with alpha 255;
// FormatDepthComponent takes UnsignedShort, stored little-endian.
//
// A region outside the framebuffer or a short dst records InvalidValue;
// an unknown format or type records InvalidEnum.
func (c *Context) ReadPixels(x, y, w, h int, format PixelFormat, typ PixelType, dst []byte) {
	if c.closed || c.fb.closed || c.asm.inBegin {
		c.setError(InvalidOperation)
		return
	}
	zb := c.fb.zb
	fw, fh := zb.Width(), zb.Height()
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > fw || y+h > fh {
		c.setError(InvalidValue)
		return
	}

	if format == FormatDepthComponent {
		if typ != UnsignedShort {
			c.setError(InvalidEnum)
			return
		}
		if len(dst) < w*h*2 {
			c.setError(InvalidValue)
			return
		}
		depth := zb.Depth()
		for j := range h {
			src := depth[(fh-1-y-j)*fw+x:]
			for i := range w {
				binary.LittleEndian.PutUint16(dst[(j*w+i)*2:], src[i])
			}
		}
		return
	}

	rf, ok := readFormats[format]
	if !ok || typ != UnsignedByte {
		c.setError(InvalidEnum)
		return
	}
	if len(dst) < w*h*rf.bpp {
		c.setError(InvalidValue)
		return
	}
	pix := zb.Pixels()
	for j := range h {
		src := pix[(fh-1-y-j)*fw+x:]
		for i := range w {
			p := src[i]
			o := dst[(j*w+i)*rf.bpp:]
			o[rf.r] = byte(p >> 16)
			o[rf.g] = byte(p >> 8)
			o[rf.b] = byte(p)
			if rf.a >= 0 {
				o[rf.a] = 0xff
			}
		}
	}
}
