package raster

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// RGBA32 is a straight-alpha colour packed as 0xRRGGBBAA.
type RGBA32 uint32

// Transparent is the fully transparent colour.
const Transparent RGBA32 = 0

// RGBAf packs float components in [0, 1].
func RGBAf(r, g, b, a float64) RGBA32 {
	return RGBA32(uint32(unit8(r))<<24 | uint32(unit8(g))<<16 | uint32(unit8(b))<<8 | uint32(unit8(a)))
}

func unit8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// R returns the red channel.
func (c RGBA32) R() uint8 { return uint8(c >> 24) }

// G returns the green channel.
func (c RGBA32) G() uint8 { return uint8(c >> 16) }

// B returns the blue channel.
func (c RGBA32) B() uint8 { return uint8(c >> 8) }

// A returns the alpha channel.
func (c RGBA32) A() uint8 { return uint8(c) }

// Floats returns the channels as floats in [0, 1].
func (c RGBA32) Floats() (r, g, b, a float64) {
	return float64(c.R()) / 255, float64(c.G()) / 255, float64(c.B()) / 255, float64(c.A()) / 255
}

// Premultiplied returns the channels multiplied by alpha, rounded.
func (c RGBA32) Premultiplied() (r, g, b, a uint8) {
	a = c.A()
	return premul(c.R(), a), premul(c.G(), a), premul(c.B(), a), a
}

func premul(v, a uint8) uint8 {
	return uint8((uint32(v)*uint32(a) + 127) / 255)
}

// RGBA implements color.Color.
func (c RGBA32) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}.RGBA()
}

// WithAlpha replaces the alpha channel.
func (c RGBA32) WithAlpha(a uint8) RGBA32 {
	return c&^0xff | RGBA32(a)
}

// WithOpacity replaces the alpha channel with floor(opacity*255.9999),
// opacity clamped to [0, 1].
func (c RGBA32) WithOpacity(opacity float64) RGBA32 {
	opacity = math.Max(0, math.Min(1, opacity))
	return c.WithAlpha(uint8(math.Floor(opacity * 255.9999)))
}

// ScaleAlpha multiplies alpha by f, clamped to 255.
func (c RGBA32) ScaleAlpha(f float64) RGBA32 {
	a := math.Min(255, math.Floor(float64(c.A())*f))
	return c.WithAlpha(uint8(math.Max(0, a)))
}

// Over composites c over bg and returns the straight-alpha result.
func (c RGBA32) Over(bg RGBA32) RGBA32 {
	sr, sg, sb, sa := c.Floats()
	dr, dg, db, da := bg.Floats()
	a := sa + da*(1-sa)
	if a == 0 {
		return Transparent
	}
	mix := func(s, d float64) float64 {
		return (s*sa + d*da*(1-sa)) / a
	}
	return RGBAf(mix(sr, dr), mix(sg, dg), mix(sb, db), a)
}

// FromColor converts any colour to RGBA32.
func FromColor(c color.Color) RGBA32 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA32(uint32(n.R)<<24 | uint32(n.G)<<16 | uint32(n.B)<<8 | uint32(n.A))
}

// String formats the colour as #rrggbbaa.
func (c RGBA32) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// ParseHex parses #rgb, #rrggbb, #rrggbbaa, with or without the leading
// '#', and 0x-prefixed 8-digit values. Colours without alpha are opaque.
func ParseHex(s string) (RGBA32, error) {
	h := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(h, "#"):
		h = h[1:]
	case strings.HasPrefix(h, "0x"), strings.HasPrefix(h, "0X"):
		h = h[2:]
		if len(h) != 8 {
			return 0, fmt.Errorf("raster: invalid colour %q", s)
		}
	}
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	switch len(h) {
	case 6:
		h += "ff"
	case 8:
	default:
		return 0, fmt.Errorf("raster: invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("raster: invalid colour %q: %w", s, err)
	}
	return RGBA32(v), nil
}

// ComposeXOR blends the foreground channel fg with coverage a over the
// background channel bg using an approximate XOR that keeps marks visible
// on any background. The formula is kept bit-exact for visual
// compatibility with existing handle rendering.
func ComposeXOR(bg, fg, a uint32) uint32 {
	c := bg*(255-a) + (((bg^^fg)+(bg>>2)-xorBias(bg))&255)*a
	return (c + 127) / 255
}

func xorBias(bg uint32) uint32 {
	if bg > 127 {
		return 63
	}
	return 0
}
