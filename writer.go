package linecsv

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var errNoDestination = errors.New("linecsv: writer has no destination")

// Writer encodes records so that a Decoder returns them unchanged. Line breaks
// inside a field are written as \r\n, the only break form a Decoder produces.
//
// A record with no fields is written as an empty line and reads back as Record{""}.
type Writer struct {
	// UseCRLF terminates records with \r\n instead of \n.
	UseCRLF bool
	// AlwaysQuote quotes every field, not only the ones that need it.
	AlwaysQuote bool

	dst  *bufio.Writer
	line []byte
	err  error
}

// NewWriter creates a buffered Writer, panicking if w is nil.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic("linecsv: writer destination cannot be nil")
	}
	return &Writer{dst: bufio.NewWriterSize(w, defaultBufferSize)}
}

// Write encodes one record. After the first failure every call returns that error.
func (w *Writer) Write(rec Record) error {
	if w.dst == nil {
		return errNoDestination
	}
	if w.err != nil {
		return w.err
	}
	w.line = w.appendRecord(w.line[:0], rec)
	if _, err := w.dst.Write(w.line); err != nil {
		w.err = err
	}
	return w.err
}

// WriteAll writes records in order, stopping at the first error.
func (w *Writer) WriteAll(records []Record) error {
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes any buffered data to the destination.
func (w *Writer) Flush() error {
	if w.dst == nil {
		return errNoDestination
	}
	if w.err == nil {
		w.err = w.dst.Flush()
	}
	return w.err
}

// Error reports the first write or flush failure.
func (w *Writer) Error() error { return w.err }

func (w *Writer) appendRecord(dst []byte, rec Record) []byte {
	for i, field := range rec {
		if i > 0 {
			dst = append(dst, Comma)
		}
		dst = appendField(dst, field, w.AlwaysQuote)
	}
	if w.UseCRLF {
		return append(dst, '\r', '\n')
	}
	return append(dst, '\n')
}

// appendField appends field to dst, quoting it when force is set or its content
// requires it. Quotes are doubled and a bare \n gains the \r a Decoder restores.
func appendField(dst []byte, field string, force bool) []byte {
	if !force && !strings.ContainsAny(field, "\",\r\n") {
		return append(dst, field...)
	}
	dst = append(dst, Quote)
	for i := 0; i < len(field); i++ {
		switch c := field[i]; {
		case c == Quote:
			dst = append(dst, Quote, Quote)
		case c == '\n' && (i == 0 || field[i-1] != '\r'):
			dst = append(dst, '\r', '\n')
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, Quote)
}
