package blend

// div255 divides x by 255 exactly without using division, using Alvy Ray
// Smith's formula ((x + 1) + ((x + 1) >> 8)) >> 8, exact for all products of
// two bytes.
func div255(x uint16) uint16 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

// mulDiv255 returns a*b/255 rounded down.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}

// MulDiv255 returns a*b/255 for callers that scale channels by coverage.
func MulDiv255(a, b byte) byte {
	return mulDiv255(a, b)
}

// inv255 computes 255 - x (inverse alpha).
func inv255(x byte) byte {
	return 255 - x
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}
