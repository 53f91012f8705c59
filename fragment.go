package gridcanvas

import (
	"cmp"
	"fmt"
	"image"
	"math"

	"github.com/paulmach/orb"
)

// FragmentID identifies one map fragment. IDs order by trajectory, then by
// index within the trajectory; that order decides which fragment wins where
// fragments overlap.
type FragmentID struct {
	Trajectory int
	Index      int
}

// Compare returns -1, 0 or +1 depending on whether id sorts before, equal to
// or after other.
func (id FragmentID) Compare(other FragmentID) int {
	if c := cmp.Compare(id.Trajectory, other.Trajectory); c != 0 {
		return c
	}
	return cmp.Compare(id.Index, other.Index)
}

// Less reports whether id sorts before other.
func (id FragmentID) Less(other FragmentID) bool {
	return id.Compare(other) < 0
}

func (id FragmentID) String() string {
	return fmt.Sprintf("(%d,%d)", id.Trajectory, id.Index)
}

// Pose is a rigid 2-D transform: rotation by Theta radians, then translation
// by (X, Y) meters. The zero Pose is the identity.
type Pose struct {
	X, Y  float64
	Theta float64
}

// Matrix returns the pose as an affine transform.
func (p Pose) Matrix() Matrix {
	return Translate(p.X, p.Y).Multiply(Rotate(p.Theta))
}

// finite reports whether every component of the pose is a finite number.
func (p Pose) finite() bool {
	for _, v := range [...]float64{p.X, p.Y, p.Theta} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Unknown marks a cell that was never observed. Any negative or NaN cell
// value is treated the same way.
const Unknown float32 = -1

// ProbabilityGrid is a row-major grid of occupancy probabilities.
//
// Cell (col, row) covers the square [col, col+1] x [row, row+1] scaled by
// CellSize in the grid's local frame. Origin places that frame inside the
// owning fragment.
type ProbabilityGrid struct {
	Width    int
	Height   int
	CellSize float64
	Origin   Pose
	Cells    []float32
}

// NewProbabilityGrid allocates a grid with every cell Unknown.
func NewProbabilityGrid(width, height int, cellSize float64) *ProbabilityGrid {
	cells := make([]float32, max(width, 0)*max(height, 0))
	for i := range cells {
		cells[i] = Unknown
	}
	return &ProbabilityGrid{Width: width, Height: height, CellSize: cellSize, Cells: cells}
}

// Validate checks the grid's shape and cell size.
func (g *ProbabilityGrid) Validate() error {
	if g == nil {
		return invalidArgf("grid is nil")
	}
	if g.Width <= 0 || g.Height <= 0 {
		return invalidArgf("grid size %dx%d must be positive", g.Width, g.Height)
	}
	if !(g.CellSize > 0) || math.IsInf(g.CellSize, 0) {
		return invalidArgf("grid cell size %v must be positive and finite", g.CellSize)
	}
	if !g.Origin.finite() {
		return invalidArgf("grid origin %+v must be finite", g.Origin)
	}
	if len(g.Cells) != g.Width*g.Height {
		return invalidArgf("grid has %d cells, want %d", len(g.Cells), g.Width*g.Height)
	}
	return nil
}

// At returns the probability stored at (col, row).
func (g *ProbabilityGrid) At(col, row int) float32 {
	return g.Cells[row*g.Width+col]
}

// Set stores a probability at (col, row).
func (g *ProbabilityGrid) Set(col, row int, p float32) {
	g.Cells[row*g.Width+col] = p
}

// CellPixel converts an occupancy probability into a gray intensity and a
// coverage alpha. Occupied cells are dark, free cells are light, and alpha
// grows with certainty: p=0.5 and unknown cells are fully transparent.
func CellPixel(p float32) (intensity, alpha uint8) {
	if p < 0 || math.IsNaN(float64(p)) {
		return 0, 0
	}
	q := math.Min(float64(p), 1)
	intensity = uint8(math.Round(255 * (1 - q)))
	alpha = uint8(math.Round(255 * math.Abs(2*q-1)))
	return intensity, alpha
}

// texture renders the grid as an intensity plane and an alpha plane with
// one pixel per cell.
func (g *ProbabilityGrid) texture() (*image.Gray, *image.Alpha) {
	r := image.Rect(0, 0, g.Width, g.Height)
	gray := image.NewGray(r)
	alpha := image.NewAlpha(r)
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			i, a := CellPixel(g.At(col, row))
			gray.Pix[row*gray.Stride+col] = i
			alpha.Pix[row*alpha.Stride+col] = a
		}
	}
	return gray, alpha
}

// PosedFragment is one unit of the input record: a grid placed in the world
// by a pose.
type PosedFragment struct {
	ID   FragmentID
	Pose Pose
	Grid *ProbabilityGrid
}

// CellToWorld maps grid-cell coordinates to world meters.
func (f *PosedFragment) CellToWorld() Matrix {
	cs := f.Grid.CellSize
	return f.Pose.Matrix().Multiply(f.Grid.Origin.Matrix()).Multiply(Scale(cs, cs))
}

// Extent returns the world-space bounds of the fragment's grid.
func (f *PosedFragment) Extent() orb.Bound {
	return f.CellToWorld().TransformRect(float64(f.Grid.Width), float64(f.Grid.Height))
}
