package gridcanvas

import (
	"image"
	"image/color"
)

// Canvas is the final RGB output buffer, 3 bytes per pixel.
type Canvas struct {
	width  int
	height int
	data   []uint8
}

// NewCanvas creates a black canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*3),
	}
}

// Width returns the width of the canvas.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the height of the canvas.
func (c *Canvas) Height() int {
	return c.height
}

// Pix returns the raw pixel data (RGB, row-major).
func (c *Canvas) Pix() []uint8 {
	return c.data
}

// Set sets the color of a single pixel. Out-of-bounds writes are ignored.
func (c *Canvas) Set(x, y int, col Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	i := (y*c.width + x) * 3
	c.data[i+0] = col.R
	c.data[i+1] = col.G
	c.data[i+2] = col.B
}

// RGBAt returns the color of a single pixel. Out-of-bounds reads return
// black.
func (c *Canvas) RGBAt(x, y int) Color {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Color{}
	}
	i := (y*c.width + x) * 3
	return Color{R: c.data[i+0], G: c.data[i+1], B: c.data[i+2]}
}

// row returns the bytes of row y.
func (c *Canvas) row(y int) []uint8 {
	return c.data[y*c.width*3 : (y+1)*c.width*3]
}

// ToImage converts the canvas to an opaque image.RGBA.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		src := c.row(y)
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < c.width; x++ {
			dst[x*4+0] = src[x*3+0]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 255
		}
	}
	return img
}

// At implements the image.Image interface.
func (c *Canvas) At(x, y int) color.Color {
	return c.RGBAt(x, y)
}

// Bounds implements the image.Image interface.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// ColorModel implements the image.Image interface.
func (c *Canvas) ColorModel() color.Model {
	return color.RGBAModel
}
