package gridcanvas

import "math"

// Config holds the tunables of one conversion.
type Config struct {
	// Resolution is the composite surface scale in meters per pixel.
	// Must be positive and finite. Default 0.05.
	Resolution float64

	// TranslateX and TranslateY shift the canvas window over the surface,
	// in pixels. Any value is allowed. Default 0.
	TranslateX int
	TranslateY int

	// Width and Height are the canvas size in pixels. Must be positive.
	// Default 1920x1080.
	Width  int
	Height int

	// Background fills uncovered canvas pixels and is the blend backdrop.
	// Default DefaultBackground.
	Background Color

	// Workers is the number of goroutines filling canvas rows. Values below
	// 2 run a single sequential pass. Default 1.
	Workers int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Resolution: 0.05,
		Width:      1920,
		Height:     1080,
		Background: DefaultBackground,
		Workers:    1,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidArgument.
func (c Config) Validate() error {
	if !(c.Resolution > 0) || math.IsInf(c.Resolution, 0) {
		return invalidArgf("resolution %v must be positive and finite", c.Resolution)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return invalidArgf("image size %dx%d must be positive", c.Width, c.Height)
	}
	return nil
}
