package metaball

import "image/color"

// RGB is a linear color with components nominally in [0, 1].
// Lighting terms may push components above 1 before tone compression.
type RGB struct {
	R, G, B float32
}

// Vec converts the color to a Vec3 for kernel arithmetic.
func (c RGB) Vec() Vec3 {
	return Vec3{X: c.R, Y: c.G, Z: c.B}
}

// Scale multiplies every component by s.
func (c RGB) Scale(s float32) RGB {
	return RGB{R: c.R * s, G: c.G * s, B: c.B * s}
}

// rgbFromVec converts a kernel Vec3 back to a color.
func rgbFromVec(v Vec3) RGB {
	return RGB{R: v.X, G: v.Y, B: v.Z}
}

// Hex creates a color from a hex string.
// Supports "RGB" and "RRGGBB", with or without a leading '#'.
// Malformed input yields black.
func Hex(hex string) RGB {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32
	switch len(hex) {
	case 3:
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 6:
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	default:
		return RGB{}
	}
	return RGB{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255}
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return
		}
	}
}

// RGBA is a kernel output sample: straight color plus coverage alpha.
type RGBA struct {
	R, G, B, A float32
}

// NRGBA converts the sample to an 8-bit non-premultiplied color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// to8 quantizes a [0, 1] component with rounding. Out-of-range values clamp.
func to8(x float32) uint8 {
	x = x*255 + 0.5
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return uint8(x)
}
