package linecsv

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrSourceUnavailable is returned when the input file cannot be opened.
	ErrSourceUnavailable = errors.New("linecsv: source unavailable")
	// ErrMalformedHeader is returned when no header record can be decoded.
	ErrMalformedHeader = errors.New("linecsv: malformed header")
)

// Handler receives each data record together with its 1-based sequence number.
// A non-nil error stops decoding and is returned to the caller.
type Handler func(seq int, rec Record) error

// Summary describes a decoded file.
type Summary struct {
	Header  Record
	Records int
}

// FileOptions configures ParseFile. The zero value decodes with the Decoder defaults.
type FileOptions struct {
	// Setup configures the Decoder before the header is read.
	Setup func(*Decoder)
	// OnHeader receives the header record before the first data record is decoded.
	// A non-nil error stops decoding and is returned to the caller.
	OnHeader func(header Record) error
}

// Parse decodes a header record followed by data records until the end of input,
// passing every data record to fn when fn is non-nil. The header is never counted.
func Parse(d *Decoder, fn Handler) (Summary, error) {
	return parse(d, nil, fn)
}

// ParseFile opens path and runs Parse over it, applying opts.
func ParseFile(path string, fn Handler, opts FileOptions) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()

	d := NewDecoder(f)
	if opts.Setup != nil {
		opts.Setup(d)
	}
	return parse(d, opts.OnHeader, fn)
}

func parse(d *Decoder, onHeader func(Record) error, fn Handler) (Summary, error) {
	header, err := d.DecodeRecord()
	if err != nil {
		if err == io.EOF {
			return Summary{}, ErrMalformedHeader
		}
		return Summary{}, fmt.Errorf("%w: %w", ErrMalformedHeader, err)
	}

	sum := Summary{Header: header}
	if onHeader != nil {
		if err := onHeader(header); err != nil {
			return sum, err
		}
	}
	for {
		rec, err := d.DecodeRecord()
		if err == io.EOF {
			return sum, nil
		}
		if err != nil {
			return sum, err
		}
		sum.Records++
		if fn != nil {
			if err := fn(sum.Records, rec); err != nil {
				return sum, err
			}
		}
	}
}
