package zbuffer

// Sampler reads texels from a TextureDim x TextureDim image of packed
// ARGB pixels using nearest-texel lookup on fixed-point coordinates.
type Sampler struct {
	Texels []uint32

	// ClampS and ClampT select clamp-to-edge addressing; otherwise the
	// coordinate wraps.
	ClampS, ClampT bool
}

// Sample returns the texel addressed by fixed-point coordinates s and t.
func (sm *Sampler) Sample(s, t int32) uint32 {
	if sm.ClampS {
		s = clampST(s)
	}
	if sm.ClampT {
		t = clampST(t)
	}
	x := int(s>>STFracBits) & (TextureDim - 1)
	y := int(t>>STFracBits) & (TextureDim - 1)
	return sm.Texels[y*TextureDim+x]
}

func clampST(v int32) int32 {
	switch {
	case v < SMin:
		return SMin
	case v > SMax:
		return SMax
	default:
		return v
	}
}

// Modulate multiplies a texel by an 8-bit colour, channel by channel.
func Modulate(texel uint32, r, g, b int) uint32 {
	tr, tg, tb := Channels(texel)
	return RGB(((r+1)*tr)>>8, ((g+1)*tg)>>8, ((b+1)*tb)>>8)
}
