package linecsv

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

var (
	// ErrUnterminatedQuote is returned when the input ends inside a quoted field.
	ErrUnterminatedQuote = errors.New("linecsv: unterminated quoted field")
	// ErrFieldTooLong is returned when a field grows past Decoder.MaxFieldSize.
	ErrFieldTooLong = errors.New("linecsv: field exceeds maximum size")
)

// ParseError contains location information for decoding errors.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

// Error formats the parse error message with the stored line, column, and Err values.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("linecsv: parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Unwrap.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Decoder turns physical lines into records, letting quoted fields span line breaks.
// A Decoder must not be used from more than one goroutine at a time.
type Decoder struct {
	// MaxFieldSize limits the size in bytes of a single decoded field. Zero means no limit.
	MaxFieldSize int
	// CloseUnterminated closes a quoted span that is still open at the end of input
	// and returns the record instead of failing with ErrUnterminatedQuote.
	CloseUnterminated bool

	src  LineReader
	asm  Assembler
	line int
	err  error
}

// NewDecoder creates a Decoder reading lines from r, panicking if r is nil.
func NewDecoder(r io.Reader) *Decoder {
	if r == nil {
		panic("linecsv: reader source cannot be nil")
	}
	return NewLineDecoder(NewLineReader(r))
}

// NewLineDecoder creates a Decoder consuming lines from src, panicking if src is nil.
func NewLineDecoder(src LineReader) *Decoder {
	if src == nil {
		panic("linecsv: line source cannot be nil")
	}
	return &Decoder{src: src}
}

// Line returns the number of physical lines consumed so far.
func (d *Decoder) Line() int { return d.line }

// DecodeRecord decodes the next logical record. It returns io.EOF once the input
// is exhausted; an empty record is never returned.
func (d *Decoder) DecodeRecord() (Record, error) {
	if d == nil || d.src == nil {
		return nil, io.EOF
	}
	if d.err != nil {
		return nil, d.err
	}

	d.asm.Reset()
	state := EnclosureNone
	started := false
	column := 1
	// tooLong holds the first overflow of the record. Later bytes only drive
	// the state machine so the next call starts on a record boundary.
	var tooLong *ParseError

	for {
		raw, err := d.src.ReadLine()
		if err != nil {
			if err != io.EOF {
				d.err = err
				return nil, err
			}
			d.err = io.EOF
			if !started {
				return nil, io.EOF
			}
			if tooLong != nil {
				return nil, tooLong
			}
			// Only an open quoted span keeps a record going past its last line.
			if d.CloseUnterminated {
				d.asm.FinishField()
				return d.asm.FinishRecord(), nil
			}
			d.asm.Reset()
			return nil, &ParseError{Line: d.line, Column: column, Err: ErrUnterminatedQuote}
		}

		started = true
		d.line++
		body, terminated := trimTerminator(raw)

		for i := 0; i < len(body); i++ {
			var action Action
			state, action = Transition(state, body[i])
			if tooLong != nil {
				continue
			}
			switch action {
			case ActionAppend:
				d.asm.AppendByte(body[i])
			case ActionAppendQuote:
				d.asm.AppendByte(Quote)
			case ActionFinishField:
				d.asm.FinishField()
			}
			if d.MaxFieldSize > 0 && d.asm.Pending() > d.MaxFieldSize {
				d.asm.Reset()
				tooLong = &ParseError{Line: d.line, Column: i + 1, Err: ErrFieldTooLong}
			}
		}
		column = len(body) + 1

		if state != EnclosureEntered {
			if tooLong != nil {
				return nil, tooLong
			}
			d.asm.FinishField()
			return d.asm.FinishRecord(), nil
		}
		if terminated && tooLong == nil {
			// Restore the line break the quoted span contains.
			d.asm.AppendString("\r\n")
			if d.MaxFieldSize > 0 && d.asm.Pending() > d.MaxFieldSize {
				d.asm.Reset()
				tooLong = &ParseError{Line: d.line, Column: column, Err: ErrFieldTooLong}
			}
		}
	}
}

// ReadAll decodes every remaining record, returning the records and the first
// error other than io.EOF.
func (d *Decoder) ReadAll() (records []Record, err error) {
	for {
		rec, err := d.DecodeRecord()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// All returns a single-use sequence over the remaining records. Iteration ends at
// the end of input or after the first error is yielded.
func (d *Decoder) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := d.DecodeRecord()
			if err == io.EOF {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}
