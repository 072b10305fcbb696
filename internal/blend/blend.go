// Package blend implements the per-pixel compositing operators used when
// overlay items paint into a premultiplied RGBA surface.
//
// All values are premultiplied alpha bytes in the range 0-255, the layout of
// image.RGBA.
package blend

// Op selects how a source pixel combines with the destination.
type Op uint8

const (
	// OpOver composites the source over the destination: S + D*(1-Sa).
	OpOver Op = iota

	// OpSource replaces the destination with the source.
	OpSource

	// OpDifference is the separable difference blend |S - D| in its
	// premultiplied form: S + D - 2*min(S*Da, D*Sa). Outlines drawn with it
	// stay visible on both light and dark backgrounds.
	OpDifference
)

// String returns the operator name.
func (op Op) String() string {
	switch op {
	case OpOver:
		return "over"
	case OpSource:
		return "source"
	case OpDifference:
		return "difference"
	}
	return "unknown"
}

// Pixel composites the premultiplied source (sr, sg, sb, sa) onto the 4-byte
// destination pixel dst using op.
func Pixel(op Op, dst []byte, sr, sg, sb, sa byte) {
	_ = dst[3]
	switch op {
	case OpSource:
		dst[0], dst[1], dst[2], dst[3] = sr, sg, sb, sa
	case OpDifference:
		da := dst[3]
		dst[0] = difference(sr, sa, dst[0], da)
		dst[1] = difference(sg, sa, dst[1], da)
		dst[2] = difference(sb, sa, dst[2], da)
		dst[3] = addClamp(sa, mulDiv255(da, inv255(sa)))
	default:
		if sa == 255 {
			dst[0], dst[1], dst[2], dst[3] = sr, sg, sb, sa
			return
		}
		if sa == 0 && sr == 0 && sg == 0 && sb == 0 {
			return
		}
		ia := inv255(sa)
		dst[0] = addClamp(sr, mulDiv255(dst[0], ia))
		dst[1] = addClamp(sg, mulDiv255(dst[1], ia))
		dst[2] = addClamp(sb, mulDiv255(dst[2], ia))
		dst[3] = addClamp(sa, mulDiv255(dst[3], ia))
	}
}

// Coverage composites a premultiplied source colour attenuated by coverage
// (0-255) onto dst.
func Coverage(op Op, dst []byte, sr, sg, sb, sa, coverage byte) {
	if coverage == 0 {
		return
	}
	if coverage != 255 {
		sr = mulDiv255(sr, coverage)
		sg = mulDiv255(sg, coverage)
		sb = mulDiv255(sb, coverage)
		sa = mulDiv255(sa, coverage)
	}
	Pixel(op, dst, sr, sg, sb, sa)
}

func difference(s, sa, d, da byte) byte {
	a := mulDiv255(s, da)
	b := mulDiv255(d, sa)
	m := a
	if b < m {
		m = b
	}
	v := int(s) + int(d) - 2*int(m)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
