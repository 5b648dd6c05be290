package zbuffer

// Fixed-point layout of rasterizer-facing vertices.
const (
	// DepthBits is the width of a stored depth value.
	DepthBits = 16

	// ZFracBits is the number of fractional bits carried by Point.Z.
	// Stored depth is Point.Z >> ZFracBits.
	ZFracBits = 14

	// MaxDepth is the farthest representable stored depth.
	MaxDepth = 1<<DepthBits - 1

	// TexturePow2 is log2 of the fixed texture dimension.
	TexturePow2 = 8

	// TextureDim is the width and height of every texture image.
	TextureDim = 1 << TexturePow2

	// STFracBits is the number of fractional bits per texel in Point.S and Point.T.
	STFracBits = 12

	// SMin and SMax bound texture coordinate 0 and 1: half a texel inside
	// either edge, so clamping never samples the neighbouring wrap.
	SMin = 1 << (STFracBits - 1)
	SMax = TextureDim<<STFracBits - SMin
)

// Point is a vertex reduced to what the rasterizer needs.
//
// X and Y are window coordinates with row 0 at the top of the buffer.
// Z is depth in fixed point (ZFracBits fractional bits), smaller is nearer.
// S and T are texture coordinates in fixed point (see SMin, SMax).
// R, G and B are 8-bit channel values in [0, 255].
// W is the clip-space w used to make interpolation perspective-correct;
// 1 for orthographic projections.
type Point struct {
	X, Y    int
	Z       int32
	S, T    int32
	R, G, B int
	W       float64
}

// Pixel packs the point's colour into an opaque ARGB pixel.
func (p *Point) Pixel() uint32 {
	return RGB(p.R, p.G, p.B)
}

// RGB packs 8-bit channels into an opaque 0xAARRGGBB pixel.
// Channels outside [0, 255] are clamped.
func RGB(r, g, b int) uint32 {
	return 0xff000000 | uint32(clampChannel(r))<<16 | uint32(clampChannel(g))<<8 | uint32(clampChannel(b))
}

// Channels unpacks a pixel into its red, green and blue bytes.
func Channels(p uint32) (r, g, b int) {
	return int(p>>16) & 0xff, int(p>>8) & 0xff, int(p) & 0xff
}

// DepthValue converts a fixed-point Z into a stored depth value.
func DepthValue(z int32) uint16 {
	d := z >> ZFracBits
	switch {
	case d < 0:
		return 0
	case d > MaxDepth:
		return MaxDepth
	default:
		return uint16(d)
	}
}

func clampChannel(c int) int {
	switch {
	case c < 0:
		return 0
	case c > 255:
		return 255
	default:
		return c
	}
}
