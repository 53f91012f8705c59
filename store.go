package gridcanvas

import (
	"iter"
	"slices"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// FragmentStore is an ordered mapping from FragmentID to PosedFragment.
//
// The store is filled once by a record loader and is read-only afterwards.
// Iteration is always in ascending ID order, never map order, because the
// stitcher relies on it to break ties between overlapping fragments.
//
// An R-tree over fragment extents backs Query.
type FragmentStore struct {
	ids    []FragmentID
	byID   map[FragmentID]*PosedFragment
	extent orb.Bound
	rtree  *rtreego.Rtree
}

// indexedFragment adapts a fragment to rtreego.Spatial.
type indexedFragment struct {
	id     FragmentID
	bounds orb.Bound
}

// Bounds implements rtreego.Spatial.
func (f *indexedFragment) Bounds() rtreego.Rect {
	return boundRect(f.bounds)
}

// boundRect converts an orb.Bound to an R-tree rectangle. rtreego rejects
// zero lengths, so degenerate sides get a tiny positive extent.
func boundRect(b orb.Bound) rtreego.Rect {
	const minLength = 1e-9
	point := rtreego.Point{b.Min[0], b.Min[1]}
	lengths := []float64{
		max(b.Max[0]-b.Min[0], minLength),
		max(b.Max[1]-b.Min[1], minLength),
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// NewFragmentStore returns an empty store.
func NewFragmentStore() *FragmentStore {
	return &FragmentStore{
		byID:  make(map[FragmentID]*PosedFragment),
		rtree: rtreego.NewTree(2, 25, 50),
	}
}

// Insert adds a fragment. It fails with ErrInvalidArgument if the fragment
// is nil, its pose is not finite, its grid is invalid, or its ID is already
// present.
func (s *FragmentStore) Insert(f *PosedFragment) error {
	if f == nil {
		return invalidArgf("fragment is nil")
	}
	if !f.Pose.finite() {
		return invalidArgf("fragment %v: pose %+v must be finite", f.ID, f.Pose)
	}
	if err := f.Grid.Validate(); err != nil {
		return invalidArgf("fragment %v: %v", f.ID, err)
	}
	pos, found := slices.BinarySearchFunc(s.ids, f.ID, FragmentID.Compare)
	if found {
		return invalidArgf("duplicate fragment %v", f.ID)
	}
	s.ids = slices.Insert(s.ids, pos, f.ID)
	s.byID[f.ID] = f

	ext := f.Extent()
	if len(s.ids) == 1 {
		s.extent = ext
	} else {
		s.extent = s.extent.Union(ext)
	}
	s.rtree.Insert(&indexedFragment{id: f.ID, bounds: ext})
	return nil
}

// Len returns the number of fragments.
func (s *FragmentStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Get returns the fragment with the given ID.
func (s *FragmentStore) Get(id FragmentID) (*PosedFragment, bool) {
	f, ok := s.byID[id]
	return f, ok
}

// IDs returns a sorted copy of all fragment IDs.
func (s *FragmentStore) IDs() []FragmentID {
	return slices.Clone(s.ids)
}

// All iterates over the fragments in ascending ID order.
func (s *FragmentStore) All() iter.Seq2[FragmentID, *PosedFragment] {
	return func(yield func(FragmentID, *PosedFragment) bool) {
		if s == nil {
			return
		}
		for _, id := range s.ids {
			if !yield(id, s.byID[id]) {
				return
			}
		}
	}
}

// Extent returns the union of all fragment extents in world meters.
// An empty store returns the zero bound.
func (s *FragmentStore) Extent() orb.Bound {
	if s == nil {
		return orb.Bound{}
	}
	return s.extent
}

// Query returns the IDs of fragments whose extent intersects b, in
// ascending ID order.
func (s *FragmentStore) Query(b orb.Bound) []FragmentID {
	if s.Len() == 0 {
		return nil
	}
	hits := s.rtree.SearchIntersect(boundRect(b))
	ids := make([]FragmentID, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.(*indexedFragment).id)
	}
	slices.SortFunc(ids, FragmentID.Compare)
	return ids
}
