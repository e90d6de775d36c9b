package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/oleg578/linecsv"
	"github.com/oleg578/linecsv/internal/config"
)

func TestNormalize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(path, []byte("h1,h2\n\"a\nb\",\"x\"\"y\"\n\"plain\",z\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	settings := config.DefaultSettings()
	var buf bytes.Buffer
	out := settings.NewWriter(&buf)

	if err := normalize(context.Background(), path, settings, out); err != nil {
		t.Fatalf("normalize() error = %v", err)
	}
	if err := out.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	want := "h1,h2\n\"a\r\nb\",\"x\"\"y\"\nplain,z\n"
	if got := buf.String(); got != want {
		t.Fatalf("normalize() output = %q, want %q", got, want)
	}
}

func TestNormalizeErrors(t *testing.T) {
	dir := t.TempDir()
	settings := config.DefaultSettings()
	out := settings.NewWriter(&bytes.Buffer{})

	err := normalize(context.Background(), filepath.Join(dir, "missing.csv"), settings, out)
	if !errors.Is(err, linecsv.ErrSourceUnavailable) {
		t.Fatalf("normalize() error = %v, want ErrSourceUnavailable", err)
	}

	path := filepath.Join(dir, "open.csv")
	if err := os.WriteFile(path, []byte("h\n\"open\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := normalize(context.Background(), path, settings, out); !errors.Is(err, linecsv.ErrUnterminatedQuote) {
		t.Fatalf("normalize() error = %v, want ErrUnterminatedQuote", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	good := filepath.Join(dir, "good.csv")
	if err := os.WriteFile(good, []byte("h\n1\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := normalize(ctx, good, settings, out); !errors.Is(err, context.Canceled) {
		t.Fatalf("normalize() error = %v, want context.Canceled", err)
	}
}
