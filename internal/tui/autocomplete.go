package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/request-inspector/internal/models"
	"github.com/bnema/request-inspector/internal/panel"
)

// maxVisibleMatches bounds the option list shown under a focused widget
const maxVisibleMatches = 6

// emptyOption is shown for an option that is the empty string
const emptyOption = "(empty)"

// Autocomplete picks one or many values from a list, or accepts free text
type Autocomplete struct {
	field    models.Field
	label    string
	options  []string
	value    models.Value
	multiple bool
	freeText bool
	onChange func(models.Value)

	input     textinput.Model
	cursor    int
	navigated bool // cursor moved since the query last changed
}

// NewAutocomplete creates a widget bound to one panel control
func NewAutocomplete(c panel.Control) *Autocomplete {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = c.Placeholder
	if input.Placeholder == "" {
		input.Placeholder = "type to search"
	}
	input.CharLimit = 200
	input.Width = 24

	return &Autocomplete{
		field:    c.Field,
		label:    c.Label,
		options:  c.Options,
		value:    c.Value,
		multiple: c.Multiple,
		freeText: c.FreeText,
		onChange: c.OnChange,
		input:    input,
	}
}

// Field returns the filter field the widget edits
func (a *Autocomplete) Field() models.Field { return a.field }

// Value returns the current value
func (a *Autocomplete) Value() models.Value { return a.value }

// Query returns the typed text
func (a *Autocomplete) Query() string { return a.input.Value() }

// Focus gives the widget keyboard focus
func (a *Autocomplete) Focus() tea.Cmd {
	return a.input.Focus()
}

// Blur removes keyboard focus and drops the typed text
func (a *Autocomplete) Blur() {
	a.input.Blur()
	a.resetQuery()
}

// Focused reports whether the widget has focus
func (a *Autocomplete) Focused() bool {
	return a.input.Focused()
}

// Matches returns the options containing the typed text, case-insensitively
func (a *Autocomplete) Matches() []string {
	query := strings.ToLower(strings.TrimSpace(a.input.Value()))
	if query == "" {
		return a.options
	}

	var matches []string
	for _, opt := range a.options {
		if strings.Contains(strings.ToLower(opt), query) {
			matches = append(matches, opt)
		}
	}
	return matches
}

// Update handles a key press while the widget is focused
func (a *Autocomplete) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyUp:
		if a.cursor > 0 {
			a.cursor--
		}
		a.navigated = true
		return nil

	case tea.KeyDown:
		if a.cursor < len(a.Matches())-1 {
			a.cursor++
		}
		a.navigated = true
		return nil

	case tea.KeyEnter:
		a.commitSelection()
		return nil

	case tea.KeyCtrlU:
		a.commit(models.Null())
		return nil

	case tea.KeyEsc:
		a.resetQuery()
		return nil

	case tea.KeyBackspace:
		// Backspace on an empty query drops the last selected domain
		if a.multiple && a.input.Value() == "" {
			selected := a.value.Strings()
			if len(selected) > 0 {
				a.commit(models.Multi(selected[:len(selected)-1]))
			}
			return nil
		}
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.input.Value() != before {
		a.cursor = 0
		a.navigated = false
	}
	return cmd
}

// commitSelection commits the option under the cursor. A free-text
// widget commits the typed text instead unless the user picked an
// option with the arrow keys.
func (a *Autocomplete) commitSelection() {
	matches := a.Matches()
	query := strings.TrimSpace(a.input.Value())

	if a.freeText && query != "" && !a.navigated {
		a.commit(models.Single(query))
		return
	}
	if len(matches) == 0 {
		return
	}

	choice := matches[a.cursor]
	if !a.multiple {
		a.commit(models.Single(choice))
		return
	}

	selected := a.value.Strings()
	if i := slices.Index(selected, choice); i >= 0 {
		selected = slices.Delete(selected, i, i+1)
	} else {
		selected = append(selected, choice)
	}
	a.commit(models.Multi(selected))
}

// resetQuery clears the typed text and the cursor
func (a *Autocomplete) resetQuery() {
	a.input.SetValue("")
	a.cursor = 0
	a.navigated = false
}

// commit stores the value, clears the query and notifies the owner once
func (a *Autocomplete) commit(v models.Value) {
	a.value = v
	a.resetQuery()
	if a.onChange != nil {
		a.onChange(v)
	}
}

// View renders the widget
func (a *Autocomplete) View(s Styles) string {
	var b strings.Builder

	label := s.Label
	box := s.Box
	if a.Focused() {
		label = s.FocusedLabel
		box = s.FocusedBox
	}

	b.WriteString(label.Render(a.label))
	b.WriteString("\n")

	if a.value.IsEmpty() {
		b.WriteString(s.Muted.Render("any"))
	} else if a.multiple {
		b.WriteString(s.Value.Render(strings.Join(a.value.Strings(), ", ")))
	} else {
		b.WriteString(s.Value.Render(a.value.String()))
	}

	if a.Focused() {
		b.WriteString("\n")
		b.WriteString(a.input.View())

		matches := a.Matches()
		start := 0
		if a.cursor >= maxVisibleMatches {
			start = a.cursor - maxVisibleMatches + 1
		}
		end := min(len(matches), start+maxVisibleMatches)

		for i := start; i < end; i++ {
			opt := matches[i]
			text := opt
			if text == "" {
				text = emptyOption
			}
			if a.multiple && slices.Contains(a.value.Strings(), opt) {
				text = s.Selected.Render("✓ " + text)
			}

			b.WriteString("\n")
			if i == a.cursor {
				b.WriteString(s.Cursor.Render("› " + text))
			} else {
				b.WriteString(s.Option.Render(text))
			}
		}

		if len(matches) == 0 {
			b.WriteString("\n")
			if a.freeText && a.input.Value() != "" {
				b.WriteString(s.Muted.Render("enter to use as pattern"))
			} else {
				b.WriteString(s.Muted.Render("no matches"))
			}
		}
	}

	return box.Render(b.String())
}
