package record

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gogpu/gridcanvas"
)

// Writer produces a record. The header is written by NewWriter; each
// WriteChunk call appends one complete chunk.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer
	zw  *gzip.Writer
}

// NewWriter writes the record header to w.
func NewWriter(w io.Writer) (*Writer, error) {
	if _, err := io.WriteString(w, Magic); err != nil {
		return nil, fmt.Errorf("record: write header: %w", err)
	}
	wr := &Writer{w: w}
	wr.zw = gzip.NewWriter(&wr.buf)
	return wr, nil
}

// WriteChunk compresses data and appends it as one chunk.
func (w *Writer) WriteChunk(data []byte) error {
	w.buf.Reset()
	w.zw.Reset(&w.buf)
	if _, err := w.zw.Write(data); err != nil {
		return fmt.Errorf("record: compress chunk: %w", err)
	}
	if err := w.zw.Close(); err != nil {
		return fmt.Errorf("record: compress chunk: %w", err)
	}

	var size [8]byte
	binary.LittleEndian.PutUint64(size[:], uint64(w.buf.Len()))
	if _, err := w.w.Write(size[:]); err != nil {
		return fmt.Errorf("record: write chunk length: %w", err)
	}
	if _, err := w.w.Write(w.buf.Bytes()); err != nil {
		return fmt.Errorf("record: write chunk: %w", err)
	}
	return nil
}

// WriteFragment encodes one fragment as a chunk.
func (w *Writer) WriteFragment(f *gridcanvas.PosedFragment) error {
	payload, err := encodeFragment(f)
	if err != nil {
		return err
	}
	return w.WriteChunk(payload)
}
