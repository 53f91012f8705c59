package gridcanvas

import "testing"

// solidGrid returns a w x h grid with every cell set to p.
func solidGrid(w, h int, cellSize float64, p float32) *ProbabilityGrid {
	g := NewProbabilityGrid(w, h, cellSize)
	for i := range g.Cells {
		g.Cells[i] = p
	}
	return g
}

// storeOf builds a store from fragments, failing the test on any error.
func storeOf(t *testing.T, fragments ...*PosedFragment) *FragmentStore {
	t.Helper()
	s := NewFragmentStore()
	for _, f := range fragments {
		if err := s.Insert(f); err != nil {
			t.Fatalf("Insert(%v) error = %v", f.ID, err)
		}
	}
	return s
}
