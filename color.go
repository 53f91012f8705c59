package gridcanvas

import (
	"fmt"
	"image/color"
)

// Color is an opaque 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// DefaultBackground is the mid-gray used behind the map and for canvas
// pixels that fall outside the composite surface.
var DefaultBackground = Color{R: 128, G: 128, B: 128}

// RGBA implements color.Color. The color is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// Array returns the channels in R, G, B order.
func (c Color) Array() [3]uint8 {
	return [3]uint8{c.R, c.G, c.B}
}

// String formats the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rgb", "#rrggbb" or the same without the leading '#'.
func ParseHex(hex string) (Color, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var r, g, b uint32
	var ok bool
	switch len(s) {
	case 3:
		ok = parseHex(s[0:1], &r) && parseHex(s[1:2], &g) && parseHex(s[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 6:
		ok = parseHex(s[0:2], &r) && parseHex(s[2:4], &g) && parseHex(s[4:6], &b)
	}
	if !ok {
		return Color{}, invalidArgf("color %q is not #rgb or #rrggbb", hex)
	}
	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// Set implements flag.Value.
func (c *Color) Set(s string) error {
	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		*val *= 16
		switch {
		case '0' <= ch && ch <= '9':
			*val += uint32(ch - '0')
		case 'a' <= ch && ch <= 'f':
			*val += uint32(ch - 'a' + 10)
		case 'A' <= ch && ch <= 'F':
			*val += uint32(ch - 'A' + 10)
		default:
			return false
		}
	}
	return true
}
