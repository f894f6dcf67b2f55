package capture

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"vkdebug/internal/record"
)

// Current schema version - increment when the Record layout changes.
const schemaVersion uint16 = 1

const magic = "vkcap"

// Header opens every .vkcap stream.
type Header struct {
	Magic   string    `msgpack:"magic"`
	Schema  uint16    `msgpack:"schema"`
	Created time.Time `msgpack:"created"`
}

var ErrNotCapture = errors.New("capture: not a vkcap stream")

// SchemaError reports a capture written by an incompatible version.
type SchemaError struct {
	Got uint16
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("capture: schema version %d is not supported (want %d)", e.Got, schemaVersion)
}

// Writer appends records to a .vkcap stream. It implements sink.Sink.
type Writer struct {
	mu     sync.Mutex
	buf    *bufio.Writer
	enc    *msgpack.Encoder
	closer io.Closer
	n      int
	err    error
}

// NewWriter writes the header to w. Close closes w if it is an io.Closer.
func NewWriter(w io.Writer) (*Writer, error) {
	buf := bufio.NewWriter(w)
	enc := msgpack.NewEncoder(buf)
	if err := enc.Encode(&Header{Magic: magic, Schema: schemaVersion, Created: time.Now().UTC()}); err != nil {
		return nil, err
	}
	cw := &Writer{buf: buf, enc: enc}
	if c, ok := w.(io.Closer); ok {
		cw.closer = c
	}
	return cw, nil
}

// Write appends r. The first encoding error is kept and reported by Flush.
func (w *Writer) Write(r *record.Record) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return
	}
	if err := w.enc.Encode(r); err != nil {
		w.err = err
		return
	}
	w.n++
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.n
}

func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	return w.buf.Flush()
}

func (w *Writer) Close() error {
	err := w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Reader decodes a .vkcap stream.
type Reader struct {
	dec    *msgpack.Decoder
	header Header
}

// NewReader reads and checks the header.
func NewReader(r io.Reader) (*Reader, error) {
	dec := msgpack.NewDecoder(bufio.NewReader(r))
	var h Header
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotCapture, err)
	}
	if h.Magic != magic {
		return nil, ErrNotCapture
	}
	if h.Schema != schemaVersion {
		return nil, &SchemaError{Got: h.Schema}
	}
	return &Reader{dec: dec, header: h}, nil
}

// Header returns the stream header.
func (r *Reader) Header() Header { return r.header }

// Next decodes the next record. It returns io.EOF after the last one.
func (r *Reader) Next() (record.Record, error) {
	if _, err := r.dec.PeekCode(); err != nil {
		if errors.Is(err, io.EOF) {
			return record.Record{}, io.EOF
		}
		return record.Record{}, fmt.Errorf("capture: %w", err)
	}
	var rec record.Record
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return record.Record{}, fmt.Errorf("capture: %w", err)
	}
	return rec, nil
}
