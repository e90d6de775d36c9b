package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/oleg578/linecsv"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	got, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, DefaultSettings()) {
		t.Fatalf("Load() = %+v, want defaults", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "linecsv.json")
	want := DefaultSettings()
	want.MaxConcurrentFiles = 2
	want.MaxFieldSize = 4096
	want.CloseUnterminatedQuotes = true
	want.UseCRLF = true

	if err := want.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "partial.json")
	if err := os.WriteFile(path, []byte(`{"max_field_size": 16}`), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.MaxFieldSize != 16 {
		t.Fatalf("MaxFieldSize = %d, want 16", got.MaxFieldSize)
	}
	if got.MaxConcurrentFiles != DefaultSettings().MaxConcurrentFiles {
		t.Fatalf("MaxConcurrentFiles = %d, want default", got.MaxConcurrentFiles)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{name: "malformedJSON", content: `{"max_field_size":`},
		{name: "zeroConcurrency", content: `{"max_concurrent_files": 0}`, invalid: true},
		{name: "negativeFieldSize", content: `{"max_field_size": -1}`, invalid: true},
		{name: "negativeWidth", content: `{"max_field_width": -3}`, invalid: true},
		{name: "negativePreview", content: `{"preview_limit": -1}`, invalid: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "cfg.json")
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load() expected error")
			}
			if got := errors.Is(err, ErrInvalidSettings); got != tc.invalid {
				t.Fatalf("errors.Is(err, ErrInvalidSettings) = %v, want %v (err=%v)", got, tc.invalid, err)
			}
		})
	}
}

func TestConfigureDecoder(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	s.MaxFieldSize = 2
	s.CloseUnterminatedQuotes = true

	d := linecsv.NewDecoder(strings.NewReader("\"open"))
	s.ConfigureDecoder(d)
	if d.MaxFieldSize != 2 || !d.CloseUnterminated {
		t.Fatalf("ConfigureDecoder() left MaxFieldSize=%d CloseUnterminated=%v", d.MaxFieldSize, d.CloseUnterminated)
	}

	_, err := d.DecodeRecord()
	if !errors.Is(err, linecsv.ErrFieldTooLong) {
		t.Fatalf("DecodeRecord() error = %v, want ErrFieldTooLong", err)
	}
}

func TestNewWriterLineEndings(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	s.UseCRLF = true

	var buf bytes.Buffer
	w := s.NewWriter(&buf)
	if err := w.Write(linecsv.Record{"a", "b"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := buf.String(); got != "a,b\r\n" {
		t.Fatalf("output = %q, want %q", got, "a,b\r\n")
	}
}
