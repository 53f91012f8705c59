// Package blend provides the integer alpha blend used to composite a
// gray-with-alpha surface over a constant RGB backdrop.
//
// The divisor is 256, not 255. A fully opaque sample therefore comes out one
// step darker than its intensity for most values, and a fully transparent
// sample yields backdrop*255/256. Output must match this arithmetic
// bit for bit, so the constant is not a candidate for a div255 rewrite.
package blend

// Divisor is the denominator of the over-backdrop blend.
const Divisor = 256

// OverBackdrop blends intensity with coverage alpha over one backdrop channel.
//
// Formula: (intensity*alpha + backdrop*(255-alpha)) / 256
//
// The numerator never exceeds 255*255, so the result always fits in a byte.
func OverBackdrop(intensity, alpha, backdrop uint8) uint8 {
	num := uint32(intensity)*uint32(alpha) + uint32(backdrop)*uint32(inv255(alpha))
	return uint8(num / Divisor)
}

// OverBackdropRGB applies OverBackdrop to each of the three backdrop channels.
func OverBackdropRGB(intensity, alpha uint8, backdrop [3]uint8) [3]uint8 {
	return [3]uint8{
		OverBackdrop(intensity, alpha, backdrop[0]),
		OverBackdrop(intensity, alpha, backdrop[1]),
		OverBackdrop(intensity, alpha, backdrop[2]),
	}
}

// inv255 computes 255 - x (inverse alpha).
func inv255(x byte) byte {
	return 255 - x
}
