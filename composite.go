package gridcanvas

import (
	"image"

	"github.com/gogpu/gridcanvas/internal/blend"
	"github.com/gogpu/gridcanvas/internal/parallel"
)

// Composite allocates a width x height canvas and fills it from the surface.
//
// Canvas pixel (cx, cy) reads surface pixel
// (cx + origin.X + translateX, cy + origin.Y + translateY). Pixels that land
// outside the surface are set to background exactly; the rest blend the
// surface sample over background with blend.OverBackdrop.
//
// Each canvas pixel depends only on its own inputs, so the result does not
// depend on WithWorkers.
func Composite(surface *Surface, origin image.Point, width, height, translateX, translateY int,
	background Color, opts ...CompositeOption) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, invalidArgf("canvas size %dx%d must be positive", width, height)
	}

	o := defaultCompositeOptions()
	for _, opt := range opts {
		opt(&o)
	}

	canvas := NewCanvas(width, height)
	offset := image.Pt(origin.X+translateX, origin.Y+translateY)

	if o.workers < 2 || height < 2 {
		compositeRows(canvas, surface, offset, background, 0, height)
		Logger().Debug("composited canvas", "width", width, "height", height, "workers", 1)
		return canvas, nil
	}

	pool := parallel.NewWorkerPool(o.workers)
	defer pool.Close()

	bands := parallel.SplitRows(height, o.workers)
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() {
			compositeRows(canvas, surface, offset, background, b.Y0, b.Y1)
		}
	}
	pool.ExecuteAll(work)

	Logger().Debug("composited canvas", "width", width, "height", height, "workers", pool.Workers())
	return canvas, nil
}

// compositeRows fills canvas rows [y0, y1) left to right.
func compositeRows(canvas *Canvas, surface *Surface, offset image.Point, background Color, y0, y1 int) {
	bg := background.Array()
	for cy := y0; cy < y1; cy++ {
		row := canvas.row(cy)
		sy := cy + offset.Y
		for cx := 0; cx < canvas.width; cx++ {
			sx := cx + offset.X
			px := row[cx*3 : cx*3+3 : cx*3+3]
			if !surface.InBounds(sx, sy) {
				px[0], px[1], px[2] = bg[0], bg[1], bg[2]
				continue
			}
			intensity, alpha := surface.Sample(sx, sy)
			rgb := blend.OverBackdropRGB(intensity, alpha, bg)
			px[0], px[1], px[2] = rgb[0], rgb[1], rgb[2]
		}
	}
}

// Advice holds the advisory values that make a canvas show the whole
// surface: translating by (TranslateX, TranslateY) aligns the canvas with
// the surface's top-left corner, and the canvas must be at least
// MinWidth x MinHeight.
type Advice struct {
	TranslateX int
	TranslateY int
	MinWidth   int
	MinHeight  int
}

// Advise computes the advisory translate and size for a surface.
func Advise(surface *Surface, origin image.Point) Advice {
	return Advice{
		TranslateX: -origin.X,
		TranslateY: -origin.Y,
		MinWidth:   surface.Width(),
		MinHeight:  surface.Height(),
	}
}
