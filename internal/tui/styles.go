package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the panel
type Styles struct {
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Value        lipgloss.Style
	Muted        lipgloss.Style
	Option       lipgloss.Style
	Cursor       lipgloss.Style
	Selected     lipgloss.Style
	Header       lipgloss.Style
	Error        lipgloss.Style
	Box          lipgloss.Style
	FocusedBox   lipgloss.Style
}

// DefaultStyles returns the default color scheme
func DefaultStyles() Styles {
	primary := lipgloss.Color("#7D56F4")
	muted := lipgloss.Color("#6C6C6C")
	accent := lipgloss.Color("#04B575")

	return Styles{
		Label:        lipgloss.NewStyle().Foreground(muted),
		FocusedLabel: lipgloss.NewStyle().Foreground(primary).Bold(true),
		Value:        lipgloss.NewStyle().Foreground(accent),
		Muted:        lipgloss.NewStyle().Foreground(muted).Italic(true),
		Option:       lipgloss.NewStyle().PaddingLeft(2),
		Cursor:       lipgloss.NewStyle().Foreground(primary).Bold(true),
		Selected:     lipgloss.NewStyle().Foreground(accent),
		Header:       lipgloss.NewStyle().Bold(true).Underline(true),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")),
		Box:          lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		FocusedBox:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primary).Padding(0, 1),
	}
}
