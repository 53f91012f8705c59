package gridcanvas

import (
	"image"
	"math"

	"github.com/paulmach/orb"
	"golang.org/x/image/draw"
)

// snapEpsilon absorbs the floating-point noise left by rotations such as
// cos(pi/2) so that exact pixel edges do not grow by a whole pixel.
const snapEpsilon = 1e-9

func snap(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < snapEpsilon {
		return r
	}
	return v
}

// pixelBounds returns the smallest integer rectangle covering b.
func pixelBounds(b orb.Bound) image.Rectangle {
	return image.Rect(
		int(math.Floor(snap(b.Min[0]))),
		int(math.Floor(snap(b.Min[1]))),
		int(math.Ceil(snap(b.Max[0]))),
		int(math.Ceil(snap(b.Max[1]))),
	)
}

// scaleBound scales a bound by a positive factor.
func scaleBound(b orb.Bound, k float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.Min[0] * k, b.Min[1] * k},
		Max: orb.Point{b.Max[0] * k, b.Max[1] * k},
	}
}

// Stitch renders every fragment of the store into one surface at the given
// resolution (meters per pixel).
//
// The returned origin is the pixel position of the world origin inside the
// surface, so that world point w lands on pixel w/resolution + origin.
// Fragments are painted in ascending ID order and a fragment overwrites
// earlier ones only where its own alpha is non-zero.
//
// An empty store yields a 0x0 surface and origin (0, 0).
func Stitch(store *FragmentStore, resolution float64) (*Surface, image.Point, error) {
	if !(resolution > 0) || math.IsInf(resolution, 0) {
		return nil, image.Point{}, invalidArgf("resolution %v must be positive and finite", resolution)
	}

	log := Logger()
	if store.Len() == 0 {
		log.Debug("stitched empty fragment store")
		return NewSurface(0, 0), image.Point{}, nil
	}

	px := pixelBounds(scaleBound(store.Extent(), 1/resolution))
	origin := image.Pt(-px.Min.X, -px.Min.Y)
	surface := NewSurface(px.Dx(), px.Dy())
	worldToPixel := WorldToPixel(resolution, Pt(float64(origin.X), float64(origin.Y)))

	for id, f := range store.All() {
		n := paintFragment(surface, worldToPixel.Multiply(f.CellToWorld()), f.Grid)
		log.Debug("painted fragment", "id", id.String(), "pixels", n)
	}

	log.Debug("stitched fragments",
		"fragments", store.Len(),
		"width", surface.Width(),
		"height", surface.Height(),
		"origin_x", origin.X,
		"origin_y", origin.Y)
	return surface, origin, nil
}

// paintFragment resamples grid through cellToPixel and copies every pixel
// with non-zero alpha into dst. It returns the number of pixels written.
func paintFragment(dst *Surface, cellToPixel Matrix, grid *ProbabilityGrid) int {
	footprint := pixelBounds(cellToPixel.TransformRect(float64(grid.Width), float64(grid.Height)))
	footprint = footprint.Intersect(dst.Bounds())
	if footprint.Empty() {
		return 0
	}

	gray, alpha := grid.texture()
	scratchGray := image.NewGray(footprint)
	scratchAlpha := image.NewAlpha(footprint)

	// Pixels outside the rotated grid stay at alpha 0 in the scratch planes.
	s2d := cellToPixel.Aff3()
	draw.NearestNeighbor.Transform(scratchGray, s2d, gray, gray.Bounds(), draw.Src, nil)
	draw.NearestNeighbor.Transform(scratchAlpha, s2d, alpha, alpha.Bounds(), draw.Src, nil)

	painted := 0
	for y := footprint.Min.Y; y < footprint.Max.Y; y++ {
		for x := footprint.Min.X; x < footprint.Max.X; x++ {
			a := scratchAlpha.AlphaAt(x, y).A
			if a == 0 {
				continue
			}
			dst.set(x, y, scratchGray.GrayAt(x, y).Y, a)
			painted++
		}
	}
	return painted
}
