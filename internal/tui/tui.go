// Package tui provides a Bubble Tea record browser for delimited files.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/oleg578/linecsv"
	"github.com/oleg578/linecsv/internal/config"
	"github.com/oleg578/linecsv/internal/render"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4"))
)

const (
	minColumnWidth = 3
	defaultHeight  = 15
)

var errStopPreview = errors.New("tui: preview limit reached")

// State represents the current UI state.
type State int

const (
	StateLoading State = iota
	StateViewing
	StateError
)

// LoadedMsg carries the decoded file into the model.
type LoadedMsg struct {
	Header    linecsv.Record
	Rows      []linecsv.Record
	Truncated bool
	Err       error
}

// Model is the Bubble Tea model for the record browser.
type Model struct {
	path     string
	settings *config.Settings

	state     State
	spinner   spinner.Model
	table     table.Model
	header    linecsv.Record
	rows      int
	truncated bool
	err       error

	width  int
	height int
}

// NewModel creates a model that decodes path using settings.
func NewModel(path string, settings *config.Settings) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	return Model{
		path:     path,
		settings: settings,
		state:    StateLoading,
		spinner:  sp,
		table:    table.New(table.WithFocused(true), table.WithHeight(defaultHeight)),
	}
}

// Init starts decoding and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// load returns a command decoding the file in the background.
func (m Model) load() tea.Cmd {
	path, settings := m.path, m.settings
	return func() tea.Msg {
		return Load(path, settings)
	}
}

// Load decodes path, keeping at most settings.PreviewLimit data records.
func Load(path string, settings *config.Settings) LoadedMsg {
	var msg LoadedMsg
	sum, err := linecsv.ParseFile(path, func(_ int, rec linecsv.Record) error {
		if settings.PreviewLimit > 0 && len(msg.Rows) >= settings.PreviewLimit {
			msg.Truncated = true
			return errStopPreview
		}
		msg.Rows = append(msg.Rows, rec)
		return nil
	}, linecsv.FileOptions{Setup: settings.ConfigureDecoder})

	msg.Header = sum.Header
	if err != nil && !errors.Is(err, errStopPreview) {
		msg.Err = err
	}
	return msg
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-8, 3))
		m.table.SetWidth(max(msg.Width-4, 20))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LoadedMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			return m, nil
		}
		m.header = msg.Header
		m.rows = len(msg.Rows)
		m.truncated = msg.Truncated
		cols := buildColumns(msg.Header, msg.Rows, m.settings.MaxFieldWidth)
		m.table.SetRows(nil)
		m.table.SetColumns(cols)
		m.table.SetRows(buildRows(len(cols), msg.Rows))
		m.state = StateViewing
		return m, nil
	}

	if m.state == StateViewing {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("linecsv"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.path))
	b.WriteString("\n\n")

	switch m.state {
	case StateLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Decoding records..."))
		b.WriteString("\n")
	case StateViewing:
		b.WriteString(boxStyle.Render(m.table.View()))
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(m.status()))
		b.WriteString("\n")
	case StateError:
		b.WriteString(errorStyle.Render("Error occurred:"))
		b.WriteString("\n\n")
		if m.err != nil {
			b.WriteString(fmt.Sprintf("  %s\n", m.err.Error()))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))
	return b.String()
}

func (m Model) status() string {
	s := fmt.Sprintf("Record %d of %d", min(m.table.Cursor()+1, m.rows), m.rows)
	if m.truncated {
		s += fmt.Sprintf(" (first %d shown)", m.settings.PreviewLimit)
	}
	return s
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateViewing:
		return "↑/↓: move • pgup/pgdn: page • q: quit"
	default:
		return "q: quit"
	}
}

// State returns the current UI state.
func (m Model) State() State { return m.state }

// buildColumns sizes one column per field of the widest record. Columns past the
// header are titled by position.
func buildColumns(header linecsv.Record, rows []linecsv.Record, maxWidth int) []table.Column {
	n := len(header)
	for _, rec := range rows {
		n = max(n, len(rec))
	}

	cols := make([]table.Column, n)
	for i := range cols {
		title := fmt.Sprintf("#%d", i+1)
		if i < len(header) {
			title = render.FormatField(header[i], 0)
		}
		width := runewidth.StringWidth(title)
		for _, rec := range rows {
			if i < len(rec) {
				width = max(width, runewidth.StringWidth(render.FormatField(rec[i], 0)))
			}
		}
		if maxWidth > 0 {
			width = min(width, maxWidth)
		}
		cols[i] = table.Column{Title: title, Width: max(width, minColumnWidth)}
	}
	return cols
}

// buildRows pads or trims every record to n cells.
func buildRows(n int, rows []linecsv.Record) []table.Row {
	out := make([]table.Row, len(rows))
	for i, rec := range rows {
		row := make(table.Row, n)
		for j := 0; j < n && j < len(rec); j++ {
			row[j] = render.FormatField(rec[j], 0)
		}
		out[i] = row
	}
	return out
}

// Run starts the TUI application for path.
func Run(path string, settings *config.Settings) error {
	p := tea.NewProgram(NewModel(path, settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
