// Command gridsynth writes a synthetic map record: a ring of rotated
// fragments, each showing a walled room with a few obstacles. It is handy
// for trying gridcanvas without a real mapping session.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"github.com/gogpu/gridcanvas"
	"github.com/gogpu/gridcanvas/internal/record"
)

func main() {
	var (
		output    = flag.String("o", "synthetic.rec", "output record")
		fragments = flag.Int("fragments", 8, "number of fragments on the ring")
		cells     = flag.Int("cells", 100, "fragment side in cells")
		cellSize  = flag.Float64("cell_size", 0.05, "cell size in meters")
		seed      = flag.Uint64("seed", 1, "obstacle placement seed")
	)
	flag.Parse()

	if *fragments < 1 || *cells < 3 || !(*cellSize > 0) {
		fmt.Fprintln(os.Stderr, "gridsynth: need -fragments >= 1, -cells >= 3 and -cell_size > 0")
		os.Exit(2)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	store := gridcanvas.NewFragmentStore()
	side := float64(*cells) * *cellSize
	radius := side * float64(*fragments) / (2 * math.Pi)

	for i := 0; i < *fragments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(*fragments)
		f := &gridcanvas.PosedFragment{
			ID: gridcanvas.FragmentID{Trajectory: 0, Index: i},
			Pose: gridcanvas.Pose{
				X:     radius * math.Cos(angle),
				Y:     radius * math.Sin(angle),
				Theta: angle,
			},
			Grid: room(rng, *cells, *cellSize),
		}
		if err := store.Insert(f); err != nil {
			fmt.Fprintf(os.Stderr, "gridsynth: %v\n", err)
			os.Exit(1)
		}
	}

	if err := record.Save(*output, store); err != nil {
		fmt.Fprintf(os.Stderr, "gridsynth: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s (%d fragments)\n", *output, store.Len())
}

// room builds an n x n grid centered on the fragment frame: a free interior,
// occupied walls, unknown corners and a handful of random obstacles.
func room(rng *rand.Rand, n int, cellSize float64) *gridcanvas.ProbabilityGrid {
	g := gridcanvas.NewProbabilityGrid(n, n, cellSize)
	half := float64(n) * cellSize / 2
	g.Origin = gridcanvas.Pose{X: -half, Y: -half}

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			switch {
			case row == 0 || col == 0 || row == n-1 || col == n-1:
				g.Set(col, row, 0.9)
			default:
				g.Set(col, row, 0.1+0.1*rng.Float32())
			}
		}
	}

	corner := n / 10
	for row := 0; row < corner; row++ {
		for col := 0; col < corner; col++ {
			g.Set(col, row, gridcanvas.Unknown)
		}
	}

	for k := 0; k < 1+n/25; k++ {
		cx, cy := 1+rng.IntN(n-2), 1+rng.IntN(n-2)
		for row := max(1, cy-1); row <= min(n-2, cy+1); row++ {
			for col := max(1, cx-1); col <= min(n-2, cx+1); col++ {
				g.Set(col, row, 1)
			}
		}
	}
	return g
}
