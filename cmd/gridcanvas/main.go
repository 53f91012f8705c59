// Command gridcanvas renders a map record into a fixed-size PNG canvas.
//
// Usage:
//
//	gridcanvas -record map.rec [-resolution 0.05] [-image_width 1920] [-image_height 1080]
//
// The image is written to <record>.png unless -output is given.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gridcanvas"
	"github.com/gogpu/gridcanvas/internal/pipeline"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := gridcanvas.DefaultConfig()
	fs := flag.NewFlagSet("gridcanvas", flag.ContinueOnError)
	var (
		input   = fs.String("record", "", "map record to load (required)")
		output  = fs.String("output", "", "output PNG (default <record>.png)")
		verbose = fs.Bool("v", false, "log per-fragment details")
	)
	fs.Float64Var(&cfg.Resolution, "resolution", cfg.Resolution, "meters per pixel")
	fs.IntVar(&cfg.TranslateX, "image_translate_x", cfg.TranslateX, "canvas x offset in surface pixels")
	fs.IntVar(&cfg.TranslateY, "image_translate_y", cfg.TranslateY, "canvas y offset in surface pixels")
	fs.IntVar(&cfg.Width, "image_width", cfg.Width, "canvas width in pixels")
	fs.IntVar(&cfg.Height, "image_height", cfg.Height, "canvas height in pixels")
	fs.Var(&cfg.Background, "background", "background color (#rgb or #rrggbb)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "goroutines filling canvas rows (below 2 runs sequentially)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *input == "" || fs.NArg() > 0 {
		fmt.Fprintln(fs.Output(), "gridcanvas: -record is required and no positional arguments are accepted")
		fs.Usage()
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	gridcanvas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	res, err := pipeline.Run(pipeline.Job{Input: *input, Output: *output, Config: cfg})
	if err != nil {
		gridcanvas.Logger().Error("conversion failed", "err", err)
		return 1
	}
	fmt.Printf("%s (%dx%d, %d fragments)\n", res.Output, cfg.Width, cfg.Height, res.Fragments)
	return 0
}
