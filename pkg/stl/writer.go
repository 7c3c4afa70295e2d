package stl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Faultbox/dtm2stl/pkg/geometry"
)

// Writer errors.
var (
	ErrNotStarted = errors.New("stl: solid not started")
	ErrFinished   = errors.New("stl: solid already finished")
	ErrCreate     = errors.New("stl: cannot create output")
)

// Facet is a single triangle record.
type Facet struct {
	Normal   geometry.Vertex
	Vertices [3]geometry.Vertex
}

// Option configures a Writer.
type Option func(*Writer)

// WithPrecision sets the number of mantissa digits written before trailing
// zeros are stripped.
func WithPrecision(prec int) Option {
	return func(w *Writer) {
		if prec >= 0 {
			w.prec = prec
		}
	}
}

// Writer streams an ASCII STL solid. Records are written one at a time in
// the order they are received. The first write error is kept and returned
// by every later call. Output is buffered, so an error from the underlying
// io.Writer may only surface when the buffer fills or at the latest from End.
type Writer struct {
	bw       *bufio.Writer
	name     string
	prec     int
	count    int
	started  bool
	finished bool
	err      error
}

// NewWriter returns a Writer that writes a solid called name to w.
func NewWriter(w io.Writer, name string, opts ...Option) *Writer {
	sw := &Writer{
		bw:   bufio.NewWriter(w),
		name: strings.TrimSpace(name),
		prec: DefaultPrecision,
	}
	for _, opt := range opts {
		opt(sw)
	}
	return sw
}

// Name returns the solid name.
func (w *Writer) Name() string {
	return w.name
}

// Count returns the number of facets written.
func (w *Writer) Count() int {
	return w.count
}

// Begin writes the "solid" header record.
func (w *Writer) Begin() error {
	if w.err != nil {
		return w.err
	}
	if w.started {
		return nil
	}
	w.started = true
	w.printf("solid %s\n", w.name)
	return w.err
}

// WriteFacet writes one facet record.
func (w *Writer) WriteFacet(f Facet) error {
	if w.err != nil {
		return w.err
	}
	if !w.started {
		return ErrNotStarted
	}
	if w.finished {
		return ErrFinished
	}

	w.printf("    facet normal %s\n", w.triple(f.Normal))
	w.printf("        outer loop\n")
	for _, v := range f.Vertices {
		w.printf("            vertex %s\n", w.triple(v))
	}
	w.printf("        endloop\n")
	w.printf("    endfacet\n")

	if w.err == nil {
		w.count++
	}
	return w.err
}

// End writes the "endsolid" footer record and flushes buffered output.
func (w *Writer) End() error {
	if w.err != nil {
		return w.err
	}
	if !w.started {
		return ErrNotStarted
	}
	if w.finished {
		return nil
	}
	w.finished = true
	w.printf("endsolid %s\n", w.name)
	if w.err == nil {
		if err := w.bw.Flush(); err != nil {
			w.err = fmt.Errorf("flushing solid %q: %w", w.name, err)
		}
	}
	return w.err
}

// Finished reports whether the footer has been written.
func (w *Writer) Finished() bool {
	return w.finished
}

func (w *Writer) triple(v geometry.Vertex) string {
	return formatScientific(v.X, w.prec) + " " +
		formatScientific(v.Y, w.prec) + " " +
		formatScientific(v.Z, w.prec)
}

func (w *Writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	if _, err := fmt.Fprintf(w.bw, format, args...); err != nil {
		w.err = fmt.Errorf("writing solid %q: %w", w.name, err)
	}
}

// FileWriter is a Writer bound to a file it owns.
type FileWriter struct {
	*Writer
	f      *os.File
	closed bool
}

// CreateFile creates (or truncates) path and returns a FileWriter for a
// solid called name. The header is not written until Begin is called.
// Failures wrap ErrCreate; in that case nothing was written at path.
func CreateFile(path, name string, opts ...Option) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrCreate, path, err)
	}
	return &FileWriter{
		Writer: NewWriter(f, name, opts...),
		f:      f,
	}, nil
}

// Close writes the footer if the solid was started but not finished,
// flushes, and closes the file. It is safe to call more than once.
func (fw *FileWriter) Close() error {
	if fw.closed {
		return nil
	}
	fw.closed = true

	var endErr error
	switch {
	case fw.err != nil:
		// Already returned by the call that failed.
	case fw.started && !fw.finished:
		endErr = fw.End()
	default:
		endErr = fw.bw.Flush()
	}
	return errors.Join(endErr, fw.f.Close())
}
