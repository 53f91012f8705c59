// Package sink writes finished canvases to disk.
package sink

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gogpu/gridcanvas"
)

// WritePNG encodes img as PNG and atomically replaces path with it.
//
// The image is written to a temporary file in the same directory, synced,
// and renamed over path. On any failure the temporary file is removed, so
// path either keeps its old contents or does not exist.
func WritePNG(path string, img image.Image) error {
	return writeAtomic(path, func(w *bufio.Writer) error {
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode PNG: %w", err)
		}
		return nil
	})
}

func writeAtomic(path string, encode func(*bufio.Writer) error) error {
	dest := filepath.Clean(path)
	dir := filepath.Dir(dest)

	tmp, err := os.CreateTemp(dir, ".tmp-*.png")
	if err != nil {
		return &gridcanvas.PathError{Op: "create", Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	fail := func(op string, err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return &gridcanvas.PathError{Op: op, Path: path, Err: err}
	}

	bw := bufio.NewWriterSize(tmp, 64*1024)
	if err := encode(bw); err != nil {
		return fail("write", err)
	}
	if err := bw.Flush(); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return &gridcanvas.PathError{Op: "close", Path: path, Err: err}
	}
	_ = os.Chmod(tmpPath, 0o644)
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return &gridcanvas.PathError{Op: "rename", Path: path, Err: err}
	}

	gridcanvas.Logger().Debug("wrote file", "path", dest)
	return nil
}
