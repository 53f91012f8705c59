package gridcanvas

import (
	"image"
	"image/color"
)

// Surface is the stitched map: one (intensity, alpha) pair per pixel.
// Intensity and alpha live in separate planes so each can be resampled with
// golang.org/x/image/draw without a premultiplication round trip.
//
// A Surface is immutable once Stitch returns it. A 0x0 surface is valid and
// contains no pixels.
type Surface struct {
	width     int
	height    int
	intensity *image.Gray
	alpha     *image.Alpha
}

// NewSurface allocates a transparent surface. Negative sizes are treated as
// zero.
func NewSurface(width, height int) *Surface {
	width, height = max(width, 0), max(height, 0)
	r := image.Rect(0, 0, width, height)
	return &Surface{
		width:     width,
		height:    height,
		intensity: image.NewGray(r),
		alpha:     image.NewAlpha(r),
	}
}

// Width returns the width of the surface.
func (s *Surface) Width() int {
	if s == nil {
		return 0
	}
	return s.width
}

// Height returns the height of the surface.
func (s *Surface) Height() int {
	if s == nil {
		return 0
	}
	return s.height
}

// Size returns the surface dimensions as a point.
func (s *Surface) Size() image.Point {
	return image.Pt(s.Width(), s.Height())
}

// InBounds reports whether (x, y) addresses a pixel of the surface.
func (s *Surface) InBounds(x, y int) bool {
	return x >= 0 && x < s.Width() && y >= 0 && y < s.Height()
}

// Sample returns the intensity and alpha at (x, y). Out-of-bounds
// coordinates return (0, 0).
func (s *Surface) Sample(x, y int) (intensity, alpha uint8) {
	if !s.InBounds(x, y) {
		return 0, 0
	}
	return s.intensity.Pix[y*s.intensity.Stride+x], s.alpha.Pix[y*s.alpha.Stride+x]
}

// set writes one pixel. Callers guarantee bounds.
func (s *Surface) set(x, y int, intensity, alpha uint8) {
	s.intensity.Pix[y*s.intensity.Stride+x] = intensity
	s.alpha.Pix[y*s.alpha.Stride+x] = alpha
}

// At implements the image.Image interface as gray with straight alpha.
func (s *Surface) At(x, y int) color.Color {
	i, a := s.Sample(x, y)
	return color.NRGBA{R: i, G: i, B: i, A: a}
}

// Bounds implements the image.Image interface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width(), s.Height())
}

// ColorModel implements the image.Image interface.
func (s *Surface) ColorModel() color.Model {
	return color.NRGBAModel
}
