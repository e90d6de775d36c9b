package linecsv

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func FuzzDecoderConsistency(f *testing.F) {
	seeds := []string{
		"",
		"a,b,c\n",
		"\"a,b\",c\n",
		"\"a\nb\",c\n",
		"\"unterminated\n",
		"a\"b,c\n",
		"one\r\ntwo\r\n",
		"\"\"\"\"\n",
		"\n\n",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 1<<12 {
			t.Skip()
		}

		recordsManual, errManual := decodeRecordsSequential(input)
		recordsAll, errAll := NewDecoder(strings.NewReader(input)).ReadAll()
		recordsIter, errIter := decodeRecordsIter(input)

		if !sameDecoderError(errManual, errAll) {
			t.Fatalf("ReadAll mismatch: errManual=%v errAll=%v input=%q", errManual, errAll, truncateForMessage(input))
		}
		if !sameDecoderError(errManual, errIter) {
			t.Fatalf("All mismatch: errManual=%v errIter=%v input=%q", errManual, errIter, truncateForMessage(input))
		}
		if errManual != nil {
			return
		}

		if !recordsEqual(recordsManual, recordsAll) {
			t.Fatalf("records mismatch with ReadAll:\nmanual=%v\nreadAll=%v\ninput=%q", recordsManual, recordsAll, truncateForMessage(input))
		}
		if !recordsEqual(recordsManual, recordsIter) {
			t.Fatalf("records mismatch with All:\nmanual=%v\niter=%v\ninput=%q", recordsManual, recordsIter, truncateForMessage(input))
		}
		for _, rec := range recordsManual {
			if len(rec) == 0 {
				t.Fatalf("empty record decoded from input=%q", truncateForMessage(input))
			}
		}

		// Decoded records survive a write and a second decode unchanged.
		var buf bytes.Buffer
		w := NewWriter(&buf)
		if err := w.WriteAll(recordsManual); err != nil {
			t.Fatalf("WriteAll() error = %v", err)
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("Flush() error = %v", err)
		}
		again, err := NewDecoder(&buf).ReadAll()
		if err != nil {
			t.Fatalf("decoding re-encoded records: %v", err)
		}
		if !recordsEqual(recordsManual, again) {
			t.Fatalf("round trip mismatch:\nfirst=%q\nagain=%q", recordsManual, again)
		}
	})
}

func decodeRecordsSequential(input string) ([]Record, error) {
	d := NewDecoder(strings.NewReader(input))

	var out []Record
	for {
		rec, err := d.DecodeRecord()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

func decodeRecordsIter(input string) ([]Record, error) {
	var out []Record
	for rec, err := range NewDecoder(strings.NewReader(input)).All() {
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func sameDecoderError(a, b error) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	sigA, lineA, colA := decoderErrorSignature(a)
	sigB, lineB, colB := decoderErrorSignature(b)
	return sigA == sigB && lineA == lineB && colA == colB
}

func decoderErrorSignature(err error) (sig string, line int, column int) {
	var perr *ParseError
	if errors.As(err, &perr) {
		switch {
		case errors.Is(perr.Err, ErrUnterminatedQuote):
			return "unterminated_quote", perr.Line, perr.Column
		case errors.Is(perr.Err, ErrFieldTooLong):
			return "field_too_long", perr.Line, perr.Column
		default:
			return perr.Err.Error(), perr.Line, perr.Column
		}
	}
	return err.Error(), 0, 0
}

func recordsEqual(a, b []Record) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func truncateForMessage(s string) string {
	const max = 256
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
