package gridcanvas

import (
	"errors"
	"image"
	"math"
	"testing"
)

func checkSample(t *testing.T, s *Surface, x, y int, wantI, wantA uint8) {
	t.Helper()
	i, a := s.Sample(x, y)
	if i != wantI || a != wantA {
		t.Errorf("Sample(%d, %d) = (%d, %d), want (%d, %d)", x, y, i, a, wantI, wantA)
	}
}

func TestStitchInvalidResolution(t *testing.T) {
	s := storeOf(t, &PosedFragment{Grid: solidGrid(2, 2, 1, 1)})
	for _, res := range []float64{-1, 0, math.NaN(), math.Inf(1), math.Inf(-1)} {
		surface, origin, err := Stitch(s, res)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Stitch(res=%v) error = %v, want ErrInvalidArgument", res, err)
		}
		if surface != nil || origin != (image.Point{}) {
			t.Errorf("Stitch(res=%v) = %v, %v; want no surface", res, surface, origin)
		}
	}
}

func TestStitchEmptyStore(t *testing.T) {
	for name, store := range map[string]*FragmentStore{"empty": NewFragmentStore(), "nil": nil} {
		t.Run(name, func(t *testing.T) {
			surface, origin, err := Stitch(store, 0.05)
			if err != nil {
				t.Fatalf("Stitch() error = %v", err)
			}
			if surface.Size() != (image.Point{}) {
				t.Errorf("surface size = %v, want 0x0", surface.Size())
			}
			if origin != (image.Point{}) {
				t.Errorf("origin = %v, want (0,0)", origin)
			}
			checkSample(t, surface, 0, 0, 0, 0)
		})
	}
}

func TestStitchSingleOccupiedGrid(t *testing.T) {
	s := storeOf(t, &PosedFragment{ID: FragmentID{0, 0}, Grid: solidGrid(2, 2, 0.05, 1)})

	surface, origin, err := Stitch(s, 0.05)
	if err != nil {
		t.Fatalf("Stitch() error = %v", err)
	}
	if surface.Size() != image.Pt(2, 2) {
		t.Fatalf("surface size = %v, want 2x2", surface.Size())
	}
	if origin != (image.Point{}) {
		t.Errorf("origin = %v, want (0,0)", origin)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			checkSample(t, surface, x, y, 0, 255)
		}
	}
}

func TestStitchNegativePoseOrigin(t *testing.T) {
	s := storeOf(t, &PosedFragment{Pose: Pose{X: -2, Y: -3}, Grid: solidGrid(2, 2, 1, 0)})

	surface, origin, err := Stitch(s, 1)
	if err != nil {
		t.Fatalf("Stitch() error = %v", err)
	}
	if origin != image.Pt(2, 3) {
		t.Errorf("origin = %v, want (2,3)", origin)
	}
	if surface.Size() != image.Pt(2, 2) {
		t.Errorf("surface size = %v, want 2x2", surface.Size())
	}
	checkSample(t, surface, 0, 0, 255, 255)
	checkSample(t, surface, 1, 1, 255, 255)
}

func TestStitchLaterFragmentWins(t *testing.T) {
	occupied := func(id FragmentID) *PosedFragment {
		return &PosedFragment{ID: id, Grid: solidGrid(2, 2, 1, 1)}
	}
	free := func(id FragmentID) *PosedFragment {
		return &PosedFragment{ID: id, Pose: Pose{X: 1}, Grid: solidGrid(2, 2, 1, 0)}
	}

	tests := []struct {
		name        string
		fragments   []*PosedFragment
		wantOverlap uint8
	}{
		{"free fragment later", []*PosedFragment{free(FragmentID{0, 1}), occupied(FragmentID{0, 0})}, 255},
		{"occupied fragment later", []*PosedFragment{free(FragmentID{0, 0}), occupied(FragmentID{0, 1})}, 0},
		{"trajectory beats index", []*PosedFragment{occupied(FragmentID{1, 0}), free(FragmentID{0, 9})}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface, _, err := Stitch(storeOf(t, tt.fragments...), 1)
			if err != nil {
				t.Fatalf("Stitch() error = %v", err)
			}
			if surface.Size() != image.Pt(3, 2) {
				t.Fatalf("surface size = %v, want 3x2", surface.Size())
			}
			for y := 0; y < 2; y++ {
				checkSample(t, surface, 0, y, 0, 255)
				checkSample(t, surface, 1, y, tt.wantOverlap, 255)
				checkSample(t, surface, 2, y, 255, 255)
			}
		})
	}
}

func TestStitchTransparentCellsDoNotOverwrite(t *testing.T) {
	s := storeOf(t,
		&PosedFragment{ID: FragmentID{0, 0}, Grid: solidGrid(2, 2, 1, 1)},
		&PosedFragment{ID: FragmentID{0, 1}, Grid: solidGrid(2, 2, 1, 0.5)},
		&PosedFragment{ID: FragmentID{0, 2}, Grid: solidGrid(2, 2, 1, Unknown)},
	)
	surface, _, err := Stitch(s, 1)
	if err != nil {
		t.Fatalf("Stitch() error = %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			checkSample(t, surface, x, y, 0, 255)
		}
	}
}

func TestStitchAlphaZeroOutsideFootprints(t *testing.T) {
	s := storeOf(t,
		&PosedFragment{ID: FragmentID{0, 0}, Grid: solidGrid(1, 1, 1, 1)},
		&PosedFragment{ID: FragmentID{0, 1}, Pose: Pose{X: 3, Y: 2}, Grid: solidGrid(1, 1, 1, 0)},
	)
	surface, _, err := Stitch(s, 1)
	if err != nil {
		t.Fatalf("Stitch() error = %v", err)
	}
	if surface.Size() != image.Pt(4, 3) {
		t.Fatalf("surface size = %v, want 4x3", surface.Size())
	}
	covered := map[image.Point]bool{{0, 0}: true, {3, 2}: true}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			_, a := surface.Sample(x, y)
			if covered[image.Pt(x, y)] {
				if a != 255 {
					t.Errorf("alpha at (%d,%d) = %d, want 255", x, y, a)
				}
			} else if a != 0 {
				t.Errorf("alpha at (%d,%d) = %d, want 0 outside footprints", x, y, a)
			}
		}
	}
}

func TestStitchRotatedFragment(t *testing.T) {
	g := NewProbabilityGrid(2, 1, 1)
	g.Set(0, 0, 1)
	g.Set(1, 0, 0)
	s := storeOf(t, &PosedFragment{Pose: Pose{Theta: math.Pi / 2}, Grid: g})

	surface, origin, err := Stitch(s, 1)
	if err != nil {
		t.Fatalf("Stitch() error = %v", err)
	}
	if surface.Size() != image.Pt(1, 2) {
		t.Fatalf("surface size = %v, want 1x2", surface.Size())
	}
	if origin != image.Pt(1, 0) {
		t.Errorf("origin = %v, want (1,0)", origin)
	}
	checkSample(t, surface, 0, 0, 0, 255)
	checkSample(t, surface, 0, 1, 255, 255)
}

func TestStitchCoarserResolution(t *testing.T) {
	g := solidGrid(4, 4, 0.5, 0)
	g.Set(1, 1, 1)
	s := storeOf(t, &PosedFragment{Grid: g})

	surface, _, err := Stitch(s, 1)
	if err != nil {
		t.Fatalf("Stitch() error = %v", err)
	}
	if surface.Size() != image.Pt(2, 2) {
		t.Fatalf("surface size = %v, want 2x2", surface.Size())
	}
	// Pixel (0,0) samples the cell under its centre, cell (1,1).
	checkSample(t, surface, 0, 0, 0, 255)
	checkSample(t, surface, 1, 1, 255, 255)
}

func TestStitchFinerResolution(t *testing.T) {
	s := storeOf(t, &PosedFragment{Grid: solidGrid(1, 1, 1, 1)})

	surface, _, err := Stitch(s, 0.5)
	if err != nil {
		t.Fatalf("Stitch() error = %v", err)
	}
	if surface.Size() != image.Pt(2, 2) {
		t.Fatalf("surface size = %v, want 2x2", surface.Size())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			checkSample(t, surface, x, y, 0, 255)
		}
	}
}

func TestSurfaceImage(t *testing.T) {
	s := storeOf(t, &PosedFragment{Grid: solidGrid(1, 1, 1, 0.9)})
	surface, _, err := Stitch(s, 1)
	if err != nil {
		t.Fatalf("Stitch() error = %v", err)
	}
	if surface.Bounds() != image.Rect(0, 0, 1, 1) {
		t.Errorf("Bounds() = %v, want 1x1", surface.Bounds())
	}
	r, _, _, a := surface.At(0, 0).RGBA()
	if a>>8 != 204 {
		t.Errorf("At(0,0) alpha = %d, want 204", a>>8)
	}
	if r == 0 {
		t.Error("At(0,0) red = 0, want a premultiplied intensity")
	}
}
