package blend

// div255 divides x by 255 exactly without using division.
//
// Formula: ((x + 1) + ((x + 1) >> 8)) >> 8 (Alvy Ray Smith).
// Exact for every product of two bytes.
func div255(x uint16) uint16 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

// mulDiv255 multiplies two bytes and divides by 255, rounding down.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}

// inv255 computes 255 - x.
func inv255(x byte) byte {
	return 255 - x
}

// clamp255 clamps x to the byte range [0, 255].
func clamp255(x int) byte {
	switch {
	case x < 0:
		return 0
	case x > 255:
		return 255
	default:
		return byte(x)
	}
}
