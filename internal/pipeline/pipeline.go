// Package pipeline runs one record-to-PNG conversion: load, stitch,
// composite, write.
package pipeline

import (
	"fmt"
	"image"
	"strings"

	"github.com/paulmach/orb"

	"github.com/gogpu/gridcanvas"
	"github.com/gogpu/gridcanvas/internal/record"
	"github.com/gogpu/gridcanvas/internal/sink"
)

// Job describes one conversion.
type Job struct {
	// Input is the record path. Required.
	Input string
	// Output is the PNG path. Empty means Input + ".png".
	Output string
	Config gridcanvas.Config
}

// Result summarizes a finished conversion.
type Result struct {
	Fragments   int
	Visible     int
	SurfaceSize image.Point
	Origin      image.Point
	Advice      gridcanvas.Advice
	Output      string
}

// OutputPath returns the PNG path the job writes to.
func (j Job) OutputPath() string {
	if j.Output != "" {
		return j.Output
	}
	return j.Input + ".png"
}

// Run executes the job. The configuration is validated before any file is
// touched, and nothing is written unless every earlier stage succeeded.
func Run(job Job) (*Result, error) {
	cfg := job.Config
	if strings.TrimSpace(job.Input) == "" {
		return nil, fmt.Errorf("%w: input record path is empty", gridcanvas.ErrInvalidArgument)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := gridcanvas.Logger()

	log.Info("loading fragments from record", "path", job.Input)
	store, err := record.Load(job.Input)
	if err != nil {
		return nil, err
	}

	log.Info("generating combined map image", "fragments", store.Len(), "resolution", cfg.Resolution)
	surface, origin, err := gridcanvas.Stitch(store, cfg.Resolution)
	if err != nil {
		return nil, err
	}

	advice := gridcanvas.Advise(surface, origin)
	log.Info("to match the upper left corner of the map, set",
		"image_translate_x", advice.TranslateX,
		"image_translate_y", advice.TranslateY)
	log.Info("to fit the whole map, choose at least",
		"image_width", advice.MinWidth,
		"image_height", advice.MinHeight)

	visible := store.Query(canvasWindow(cfg))
	log.Debug("fragments inside the canvas window", "visible", len(visible), "total", store.Len())
	if len(visible) == 0 && store.Len() > 0 {
		log.Warn("canvas window shows no fragments, the image will be background only",
			"image_translate_x", cfg.TranslateX,
			"image_translate_y", cfg.TranslateY)
	}

	canvas, err := gridcanvas.Composite(surface, origin, cfg.Width, cfg.Height,
		cfg.TranslateX, cfg.TranslateY, cfg.Background, gridcanvas.WithWorkers(cfg.Workers))
	if err != nil {
		return nil, err
	}

	out := job.OutputPath()
	if err := sink.WritePNG(out, canvas.ToImage()); err != nil {
		return nil, err
	}
	log.Info("wrote image", "path", out, "width", cfg.Width, "height", cfg.Height)

	return &Result{
		Fragments:   store.Len(),
		Visible:     len(visible),
		SurfaceSize: surface.Size(),
		Origin:      origin,
		Advice:      advice,
		Output:      out,
	}, nil
}

// canvasWindow returns the world rectangle shown by the canvas. Canvas pixel
// (cx, cy) shows world point ((cx+tx)*res, (cy+ty)*res).
func canvasWindow(cfg gridcanvas.Config) orb.Bound {
	res := cfg.Resolution
	return orb.Bound{
		Min: orb.Point{float64(cfg.TranslateX) * res, float64(cfg.TranslateY) * res},
		Max: orb.Point{float64(cfg.TranslateX+cfg.Width) * res, float64(cfg.TranslateY+cfg.Height) * res},
	}
}
