package record

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/gridcanvas"
)

// Decode reads a whole record into a FragmentStore. It succeeds only if the
// stream ends cleanly; a truncated record returns ErrStreamIncomplete and no
// store.
func Decode(r io.Reader) (*gridcanvas.FragmentStore, error) {
	rr, err := NewReader(r)
	if err != nil {
		return nil, err
	}

	store := gridcanvas.NewFragmentStore()
	for {
		data, err := rr.ReadChunk()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		f, err := decodeFragment(data)
		if err != nil {
			return nil, err
		}
		if err := store.Insert(f); err != nil {
			return nil, err
		}
	}
	if !rr.EOF() {
		return nil, fmt.Errorf("%w: reader stopped before end of stream", gridcanvas.ErrStreamIncomplete)
	}
	return store, nil
}

// Load opens path and decodes it. Open failures are returned as
// *gridcanvas.PathError.
func Load(path string) (*gridcanvas.FragmentStore, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, &gridcanvas.PathError{Op: "open", Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	store, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	gridcanvas.Logger().Debug("loaded record", "path", path, "fragments", store.Len())
	return store, nil
}

// Encode writes every fragment of store to w in ascending ID order.
func Encode(w io.Writer, store *gridcanvas.FragmentStore) error {
	rw, err := NewWriter(w)
	if err != nil {
		return err
	}
	for _, f := range store.All() {
		if err := rw.WriteFragment(f); err != nil {
			return err
		}
	}
	return nil
}

// Save writes store to path, replacing any existing file.
func Save(path string, store *gridcanvas.FragmentStore) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return &gridcanvas.PathError{Op: "create", Path: path, Err: err}
	}
	if err := Encode(f, store); err != nil {
		_ = f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return &gridcanvas.PathError{Op: "close", Path: path, Err: err}
	}
	return nil
}
