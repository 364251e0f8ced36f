package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/request-inspector/internal/matcher"
	"github.com/bnema/request-inspector/internal/models"
	"github.com/bnema/request-inspector/internal/options"
	"github.com/bnema/request-inspector/internal/panel"
)

// defaultMaxRows is used when the config does not set ui.max_rows
const defaultMaxRows = 20

// widgetsPerRow is how many filter widgets share one line
const widgetsPerRow = 4

// Model is the bubbletea model of the interactive filter panel
type Model struct {
	styles  Styles
	data    []models.NetworkRequest
	filters models.Filter
	maxRows int

	panel   *panel.FilterPanel
	widgets []*Autocomplete
	focus   int
	changed bool

	rows []models.NetworkRequest
	err  error

	width int
}

// NewModel creates the panel model over a loaded dataset
func NewModel(data []models.NetworkRequest, filters models.Filter, maxRows int) *Model {
	if maxRows <= 0 {
		maxRows = defaultMaxRows
	}
	m := &Model{
		styles:  DefaultStyles(),
		data:    data,
		filters: filters,
		maxRows: maxRows,
	}
	m.rebuild()
	return m
}

// Filters returns the current filter
func (m *Model) Filters() models.Filter {
	return m.filters
}

// Rows returns the requests matching the current filter
func (m *Model) Rows() []models.NetworkRequest {
	return m.rows
}

// Widgets returns the filter widgets in display order
func (m *Model) Widgets() []*Autocomplete {
	return m.widgets
}

// Focused returns the widget holding keyboard focus
func (m *Model) Focused() *Autocomplete {
	return m.widgets[m.focus]
}

// setFilters is the panel's change callback
func (m *Model) setFilters(f models.Filter) {
	if f.Equal(m.filters) {
		return
	}
	m.filters = f
	m.changed = true
}

// rebuild re-renders the panel with the current props
func (m *Model) rebuild() {
	m.panel = panel.New(m.filters, m.setFilters, m.data)

	controls := m.panel.Controls()
	m.widgets = make([]*Autocomplete, len(controls))
	for i, c := range controls {
		m.widgets[i] = NewAutocomplete(c)
	}
	m.widgets[m.focus].Focus()

	m.rows, m.err = matcher.Apply(m.filters, m.data)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.widgets[m.focus].Focus()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// esc clears the typed text first, so every key stays typeable
			if m.Focused().Query() == "" {
				return m, tea.Quit
			}
		case "tab":
			return m, m.moveFocus(1)
		case "shift+tab":
			return m, m.moveFocus(-1)
		case "ctrl+r":
			m.filters = models.Filter{}
			m.rebuild()
			return m, nil
		}

		cmd := m.Focused().Update(msg)
		if m.changed {
			m.changed = false
			m.rebuild()
		}
		return m, cmd
	}

	return m, nil
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	m.widgets[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.widgets)) % len(m.widgets)
	return m.widgets[m.focus].Focus()
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	var rows []string
	for i := 0; i < len(m.widgets); i += widgetsPerRow {
		end := min(i+widgetsPerRow, len(m.widgets))
		views := make([]string, 0, end-i)
		for _, w := range m.widgets[i:end] {
			views = append(views, w.View(m.styles))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, views...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.renderTable())
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("tab/shift+tab: field  ↑/↓: option  enter: select  ctrl+u: clear field  ctrl+r: reset  esc: quit"))
	b.WriteString("\n")

	return b.String()
}

func (m *Model) renderTable() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render(fmt.Sprintf("%-7s %-28s %-24s %-10s %-14s %-4s %s",
		"METHOD", "HOST", "CACHE-CONTROL", "X-CACHE", "FULFILLED-BY", "RANK", "URL")))
	b.WriteString("\n")

	shown := min(len(m.rows), m.maxRows)
	for _, r := range m.rows[:shown] {
		b.WriteString(fmt.Sprintf("%-7s %-28s %-24s %-10s %-14s %-4s %s\n",
			truncate(r.Method, 7),
			truncate(options.HostOf(r), 28),
			truncate(r.CacheControl, 24),
			truncate(r.XCache, 10),
			truncate(r.FulfilledBy, 14),
			models.ClassifyCacheRank(r),
			r.URL,
		))
	}

	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d of %d requests", len(m.rows), len(m.data))))
	if shown < len(m.rows) {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf(" (showing %d)", shown)))
	}
	return b.String()
}

// truncate shortens s to n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
