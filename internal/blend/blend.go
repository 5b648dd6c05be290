// Package blend implements the framebuffer blend stage on packed ARGB pixels.
package blend

import "github.com/gogpu/gputypes"

// State is the active blend equation and its source and destination factors.
// The zero value is not valid; use Default.
type State struct {
	Op  gputypes.BlendOperation
	Src gputypes.BlendFactor
	Dst gputypes.BlendFactor
}

// Default returns the GL initial blend state: add, source one, destination zero.
func Default() State {
	return State{
		Op:  gputypes.BlendOperationAdd,
		Src: gputypes.BlendFactorOne,
		Dst: gputypes.BlendFactorZero,
	}
}

// SupportedFactor reports whether f can be evaluated on colour channels alone.
// Alpha and constant factors need planes this framebuffer does not have.
func SupportedFactor(f gputypes.BlendFactor) bool {
	switch f {
	case gputypes.BlendFactorZero,
		gputypes.BlendFactorOne,
		gputypes.BlendFactorSrc,
		gputypes.BlendFactorOneMinusSrc,
		gputypes.BlendFactorDst,
		gputypes.BlendFactorOneMinusDst:
		return true
	default:
		return false
	}
}

// SupportedOperation reports whether op is a known blend equation.
func SupportedOperation(op gputypes.BlendOperation) bool {
	switch op {
	case gputypes.BlendOperationAdd,
		gputypes.BlendOperationSubtract,
		gputypes.BlendOperationReverseSubtract,
		gputypes.BlendOperationMin,
		gputypes.BlendOperationMax:
		return true
	default:
		return false
	}
}

// Apply blends the source pixel onto the destination pixel.
// Both are packed 0xAARRGGBB; the result keeps the source alpha byte.
func (s State) Apply(src, dst uint32) uint32 {
	r := s.channel(byte(src>>16), byte(dst>>16))
	g := s.channel(byte(src>>8), byte(dst>>8))
	b := s.channel(byte(src), byte(dst))
	return src&0xff000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// ApplyRGB blends an unpacked source colour onto a packed destination pixel.
func (s State) ApplyRGB(r, g, b byte, dst uint32) uint32 {
	return s.Apply(0xff000000|uint32(r)<<16|uint32(g)<<8|uint32(b), dst)
}

func (s State) channel(sc, dc byte) byte {
	switch s.Op {
	case gputypes.BlendOperationMin:
		return min(sc, dc)
	case gputypes.BlendOperationMax:
		return max(sc, dc)
	}

	st := int(mulDiv255(sc, factor(s.Src, sc, dc)))
	dt := int(mulDiv255(dc, factor(s.Dst, sc, dc)))

	switch s.Op {
	case gputypes.BlendOperationSubtract:
		return clamp255(st - dt)
	case gputypes.BlendOperationReverseSubtract:
		return clamp255(dt - st)
	default:
		return clamp255(st + dt)
	}
}

// factor evaluates f for one channel. Unsupported factors behave as one.
func factor(f gputypes.BlendFactor, sc, dc byte) byte {
	switch f {
	case gputypes.BlendFactorZero:
		return 0
	case gputypes.BlendFactorSrc:
		return sc
	case gputypes.BlendFactorOneMinusSrc:
		return inv255(sc)
	case gputypes.BlendFactorDst:
		return dc
	case gputypes.BlendFactorOneMinusDst:
		return inv255(dc)
	default:
		return 255
	}
}
