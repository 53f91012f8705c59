// Package record reads and writes map records: a magic header followed by
// length-prefixed, gzip-compressed chunks, one posed fragment per chunk.
//
// Layout (all integers little-endian):
//
//	"GRIDREC1"
//	repeat { uint64 n; n bytes of gzip data }
//
// A record must end exactly on a chunk boundary. Anything else is reported
// as gridcanvas.ErrStreamIncomplete.
package record

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/gridcanvas"
)

// Magic is the 8-byte header of every record.
const Magic = "GRIDREC1"

// maxChunkSize bounds a single compressed chunk so a corrupt length prefix
// cannot trigger a huge allocation.
const maxChunkSize = 1 << 30

// maxPayloadSize bounds a chunk after decompression.
var maxPayloadSize int64 = maxChunkSize

// Reader yields the decompressed chunks of a record in order.
type Reader struct {
	r   *bufio.Reader
	eof bool
}

// NewReader reads and checks the record header.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	var hdr [len(Magic)]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: header cut short", gridcanvas.ErrStreamIncomplete)
		}
		return nil, fmt.Errorf("record: read header: %w", err)
	}
	if string(hdr[:]) != Magic {
		return nil, fmt.Errorf("%w: bad magic %q", gridcanvas.ErrMalformedRecord, hdr[:])
	}
	return &Reader{r: br}, nil
}

// ReadChunk returns the next decompressed chunk. It returns io.EOF once the
// stream ends cleanly on a chunk boundary.
func (r *Reader) ReadChunk() ([]byte, error) {
	if r.eof {
		return nil, io.EOF
	}

	var size uint64
	if err := binary.Read(r.r, binary.LittleEndian, &size); err != nil {
		if err == io.EOF {
			r.eof = true
			return nil, io.EOF
		}
		return nil, truncated("chunk length", err)
	}
	if size > maxChunkSize {
		return nil, fmt.Errorf("%w: chunk length %d exceeds %d", gridcanvas.ErrMalformedRecord, size, maxChunkSize)
	}

	compressed := make([]byte, size)
	if _, err := io.ReadFull(r.r, compressed); err != nil {
		return nil, truncated("chunk body", err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: chunk: %v", gridcanvas.ErrMalformedRecord, err)
	}
	data, err := io.ReadAll(io.LimitReader(zr, maxPayloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: chunk: %v", gridcanvas.ErrMalformedRecord, err)
	}
	if int64(len(data)) > maxPayloadSize {
		return nil, fmt.Errorf("%w: chunk inflates past %d bytes", gridcanvas.ErrMalformedRecord, maxPayloadSize)
	}
	if err := zr.Close(); err != nil {
		return nil, fmt.Errorf("%w: chunk: %v", gridcanvas.ErrMalformedRecord, err)
	}
	return data, nil
}

// EOF reports whether the reader has reached a clean end of stream.
func (r *Reader) EOF() bool {
	return r.eof
}

// truncated maps a short read to ErrStreamIncomplete and passes other read
// errors through.
func truncated(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s cut short", gridcanvas.ErrStreamIncomplete, what)
	}
	return fmt.Errorf("record: read %s: %w", what, err)
}
