package record

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gridcanvas"
)

// fragmentHeader is the fixed-size prefix of a fragment payload. The
// width*height float32 cells follow it in row-major order.
type fragmentHeader struct {
	Trajectory int32
	Index      int32
	X, Y       float64
	Theta      float64
	OriginX    float64
	OriginY    float64
	OriginT    float64
	CellSize   float64
	Width      uint32
	Height     uint32
}

var headerSize = binary.Size(fragmentHeader{})

func encodeFragment(f *gridcanvas.PosedFragment) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: fragment is nil", gridcanvas.ErrInvalidArgument)
	}
	if err := f.Grid.Validate(); err != nil {
		return nil, fmt.Errorf("fragment %v: %w", f.ID, err)
	}
	if f.ID.Trajectory < math.MinInt32 || f.ID.Trajectory > math.MaxInt32 ||
		f.ID.Index < math.MinInt32 || f.ID.Index > math.MaxInt32 {
		return nil, fmt.Errorf("%w: fragment id %v does not fit in int32", gridcanvas.ErrInvalidArgument, f.ID)
	}

	g := f.Grid
	hdr := fragmentHeader{
		Trajectory: int32(f.ID.Trajectory),
		Index:      int32(f.ID.Index),
		X:          f.Pose.X,
		Y:          f.Pose.Y,
		Theta:      f.Pose.Theta,
		OriginX:    g.Origin.X,
		OriginY:    g.Origin.Y,
		OriginT:    g.Origin.Theta,
		CellSize:   g.CellSize,
		Width:      uint32(g.Width),
		Height:     uint32(g.Height),
	}

	var buf bytes.Buffer
	buf.Grow(headerSize + 4*len(g.Cells))
	// Writes to a bytes.Buffer cannot fail.
	_ = binary.Write(&buf, binary.LittleEndian, &hdr)
	_ = binary.Write(&buf, binary.LittleEndian, g.Cells)
	return buf.Bytes(), nil
}

func decodeFragment(data []byte) (*gridcanvas.PosedFragment, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: fragment payload is %d bytes, header needs %d",
			gridcanvas.ErrMalformedRecord, len(data), headerSize)
	}

	var hdr fragmentHeader
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: fragment header: %v", gridcanvas.ErrMalformedRecord, err)
	}

	cells := uint64(hdr.Width) * uint64(hdr.Height)
	if cells == 0 || cells*4 != uint64(r.Len()) {
		return nil, fmt.Errorf("%w: fragment (%d,%d) is %dx%d but carries %d cell bytes",
			gridcanvas.ErrMalformedRecord, hdr.Trajectory, hdr.Index, hdr.Width, hdr.Height, r.Len())
	}

	grid := &gridcanvas.ProbabilityGrid{
		Width:    int(hdr.Width),
		Height:   int(hdr.Height),
		CellSize: hdr.CellSize,
		Origin:   gridcanvas.Pose{X: hdr.OriginX, Y: hdr.OriginY, Theta: hdr.OriginT},
		Cells:    make([]float32, cells),
	}
	if err := binary.Read(r, binary.LittleEndian, grid.Cells); err != nil {
		return nil, fmt.Errorf("%w: fragment cells: %v", gridcanvas.ErrMalformedRecord, err)
	}

	return &gridcanvas.PosedFragment{
		ID:   gridcanvas.FragmentID{Trajectory: int(hdr.Trajectory), Index: int(hdr.Index)},
		Pose: gridcanvas.Pose{X: hdr.X, Y: hdr.Y, Theta: hdr.Theta},
		Grid: grid,
	}, nil
}
