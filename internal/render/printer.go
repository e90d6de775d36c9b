// Package render formats decoded records and progress messages for a terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/oleg578/linecsv"
)

// FieldSeparator is printed between the fields of a record.
const FieldSeparator = " || "

var controlEscaper = strings.NewReplacer("\r", `\r`, "\n", `\n`, "\t", `\t`)

// Theme groups the styles used by a Printer.
type Theme struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Field   lipgloss.Style
	Dim     lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// DefaultTheme returns the colored theme bound to r.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		Label:   r.NewStyle().Foreground(lipgloss.Color("#4ECDC4")),
		Field:   r.NewStyle(),
		Dim:     r.NewStyle().Foreground(lipgloss.Color("#6C757D")),
		Info:    r.NewStyle().Foreground(lipgloss.Color("#A8DADC")),
		Success: r.NewStyle().Foreground(lipgloss.Color("#95E1A3")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("#FFE66D")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
}

// Printer writes records, summaries and status lines to w. It is safe for
// concurrent use.
type Printer struct {
	w        io.Writer
	theme    Theme
	maxWidth int
	mu       sync.Mutex
}

// NewPrinter returns a Printer for w. Fields wider than maxWidth display cells
// are truncated; zero disables truncation. Colors are used only when w is a
// terminal that supports them.
func NewPrinter(w io.Writer, maxWidth int) *Printer {
	return &Printer{
		w:        w,
		theme:    DefaultTheme(lipgloss.NewRenderer(w)),
		maxWidth: maxWidth,
	}
}

// FormatField makes control characters visible and truncates the field to
// maxWidth display cells.
func FormatField(field string, maxWidth int) string {
	field = controlEscaper.Replace(field)
	if maxWidth > 0 && runewidth.StringWidth(field) > maxWidth {
		field = runewidth.Truncate(field, maxWidth, "…")
	}
	return field
}

// Header prints the header record of path.
func (p *Printer) Header(path string, header linecsv.Record) error {
	return p.println(p.theme.Title.Render(path) + " " + p.theme.Dim.Render("header: ") + p.join(header))
}

// Record prints one data record in the "Record N:" layout.
func (p *Printer) Record(seq int, rec linecsv.Record) error {
	return p.println(p.theme.Label.Render(fmt.Sprintf("Record %d:", seq)) + "\n" + p.join(rec) + "\n")
}

// Summary prints the data record count of a decoded file.
func (p *Printer) Summary(path string, sum linecsv.Summary) error {
	return p.println(p.theme.Dim.Render(path+": ") + p.theme.Success.Render(fmt.Sprintf("Record Number: %d", sum.Records)))
}

// Info prints an informational line.
func (p *Printer) Info(msg string) error { return p.println(p.theme.Info.Render("› " + msg)) }

// Success prints a success line.
func (p *Printer) Success(msg string) error { return p.println(p.theme.Success.Render("✓ " + msg)) }

// Warning prints a warning line.
func (p *Printer) Warning(msg string) error { return p.println(p.theme.Warning.Render("! " + msg)) }

// Error prints an error line.
func (p *Printer) Error(msg string) error { return p.println(p.theme.Error.Render("✗ " + msg)) }

// Verbose prints a dimmed line.
func (p *Printer) Verbose(msg string) error { return p.println(p.theme.Dim.Render("  " + msg)) }

func (p *Printer) join(rec linecsv.Record) string {
	parts := make([]string, len(rec))
	for i, field := range rec {
		parts[i] = p.theme.Field.Render(FormatField(field, p.maxWidth))
	}
	return strings.Join(parts, p.theme.Dim.Render(FieldSeparator))
}

func (p *Printer) println(s string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := io.WriteString(p.w, s+"\n")
	return err
}
