package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oleg578/linecsv"
)

// ErrInvalidSettings is returned by Validate for out of range values.
var ErrInvalidSettings = errors.New("config: invalid settings")

// Settings holds all configuration options.
type Settings struct {
	// Decoding
	MaxConcurrentFiles      int  `json:"max_concurrent_files"`
	MaxFieldSize            int  `json:"max_field_size"` // 0 = unlimited
	CloseUnterminatedQuotes bool `json:"close_unterminated_quotes"`

	// Output
	PrintRecords  bool `json:"print_records"`
	MaxFieldWidth int  `json:"max_field_width"` // display cells per field, 0 = no truncation
	PreviewLimit  int  `json:"preview_limit"`   // records loaded by the viewer, 0 = all
	UseCRLF       bool `json:"use_crlf"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		MaxConcurrentFiles:      4,
		MaxFieldSize:            0,
		CloseUnterminatedQuotes: false,

		PrintRecords:  true,
		MaxFieldWidth: 40,
		PreviewLimit:  10000,
		UseCRLF:       false,
	}
}

// Load reads settings from a JSON file. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return settings, settings.Validate()
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports settings that cannot be used.
func (s *Settings) Validate() error {
	switch {
	case s.MaxConcurrentFiles < 1:
		return fmt.Errorf("%w: max_concurrent_files must be at least 1, got %d", ErrInvalidSettings, s.MaxConcurrentFiles)
	case s.MaxFieldSize < 0:
		return fmt.Errorf("%w: max_field_size must not be negative, got %d", ErrInvalidSettings, s.MaxFieldSize)
	case s.MaxFieldWidth < 0:
		return fmt.Errorf("%w: max_field_width must not be negative, got %d", ErrInvalidSettings, s.MaxFieldWidth)
	case s.PreviewLimit < 0:
		return fmt.Errorf("%w: preview_limit must not be negative, got %d", ErrInvalidSettings, s.PreviewLimit)
	}
	return nil
}

// ConfigureDecoder applies the decoding options to d.
func (s *Settings) ConfigureDecoder(d *linecsv.Decoder) {
	d.MaxFieldSize = s.MaxFieldSize
	d.CloseUnterminated = s.CloseUnterminatedQuotes
}

// NewWriter returns a linecsv.Writer using the configured line endings.
func (s *Settings) NewWriter(w io.Writer) *linecsv.Writer {
	out := linecsv.NewWriter(w)
	out.UseCRLF = s.UseCRLF
	return out
}
