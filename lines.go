package linecsv

import (
	"bufio"
	"io"
	"strings"
)

const defaultBufferSize = 1 << 10 // 1024 bytes

// LineReader supplies physical lines to a Decoder.
//
// ReadLine returns the next line including its terminator. A final line without
// a terminator is returned with a nil error; every call after the input is
// exhausted returns io.EOF.
type LineReader interface {
	ReadLine() (string, error)
}

type lineReader struct {
	br  *bufio.Reader
	err error
}

// NewLineReader returns a LineReader that splits r on '\n'.
func NewLineReader(r io.Reader) LineReader {
	return &lineReader{br: bufio.NewReaderSize(r, defaultBufferSize)}
}

func (l *lineReader) ReadLine() (string, error) {
	if l.err != nil {
		return "", l.err
	}
	line, err := l.br.ReadString('\n')
	if err != nil {
		l.err = err
		if err == io.EOF && len(line) > 0 {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

// trimTerminator strips a trailing "\n" or "\r\n" and reports whether one was present.
// A lone '\r' is data.
func trimTerminator(line string) (string, bool) {
	body, ok := strings.CutSuffix(line, "\n")
	if !ok {
		return line, false
	}
	body, _ = strings.CutSuffix(body, "\r")
	return body, true
}
