package tui

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/request-inspector/internal/models"
)

func modelData() []models.NetworkRequest {
	return []models.NetworkRequest{
		{Method: "GET", URL: "https://a.com/app.js", CacheControl: "max-age=60", XCache: "HIT"},
		{Method: "POST", URL: "https://b.com/api/login", CacheControl: "no-store", XCache: "MISS", FulfilledBy: "origin1"},
		{Method: "GET", URL: "https://b.com/api/users", CacheControl: "no-cache", XCache: "MISS"},
	}
}

func send(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

// isQuit reports whether cmd is tea.Quit without running it
func isQuit(cmd tea.Cmd) bool {
	return cmd != nil && reflect.ValueOf(cmd).Pointer() == reflect.ValueOf(tea.Quit).Pointer()
}

func TestModelInitialState(t *testing.T) {
	m := NewModel(modelData(), models.Filter{}, 0)

	require.Len(t, m.Widgets(), len(models.Fields))
	assert.Equal(t, models.FieldMethod, m.Focused().Field())
	assert.True(t, m.Focused().Focused())
	assert.Len(t, m.Rows(), 3)
}

func TestModelSelectingUpdatesFilterAndRows(t *testing.T) {
	m := NewModel(modelData(), models.Filter{}, 0)

	// Method options are GET, POST
	send(m, tea.KeyMsg{Type: tea.KeyDown})
	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, models.Filter{Method: "POST"}, m.Filters())
	require.Len(t, m.Rows(), 1)
	assert.Equal(t, "https://b.com/api/login", m.Rows()[0].URL)
	assert.Equal(t, "POST", m.Widgets()[0].Value().String())
	assert.Equal(t, models.FieldMethod, m.Focused().Field(), "focus survives rebuild")
}

func TestModelFocusNavigation(t *testing.T) {
	m := NewModel(modelData(), models.Filter{}, 0)

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, models.FieldDomains, m.Focused().Field())

	send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, models.FieldCacheRank, m.Focused().Field())
}

func TestModelDomainsAndClear(t *testing.T) {
	m := NewModel(modelData(), models.Filter{XCache: "MISS"}, 0)

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	send(m, tea.KeyMsg{Type: tea.KeyDown})
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, models.Filter{XCache: "MISS", Domains: []string{"b.com"}}, m.Filters())
	assert.Len(t, m.Rows(), 2)

	send(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Equal(t, models.Filter{XCache: "MISS"}, m.Filters())

	send(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.True(t, m.Filters().IsEmpty())
	assert.Len(t, m.Rows(), 3)
}

func TestModelQuit(t *testing.T) {
	m := NewModel(modelData(), models.Filter{}, 0)

	assert.True(t, isQuit(send(m, tea.KeyMsg{Type: tea.KeyEsc})))
}

func TestModelEscClearsQueryBeforeQuitting(t *testing.T) {
	m := NewModel(modelData(), models.Filter{}, 0)

	send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	assert.False(t, isQuit(send(m, tea.KeyMsg{Type: tea.KeyEsc})))
	assert.Empty(t, m.Focused().Query())
}

func TestModelQIsTypeable(t *testing.T) {
	m := NewModel(modelData(), models.Filter{}, 0)

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	send(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, models.FieldURLPattern, m.Focused().Field())

	for _, r := range "queue*" {
		cmd := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		assert.False(t, isQuit(cmd), "typing %q must not quit", r)
	}
	assert.Equal(t, "queue*", m.Focused().Query())

	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, models.Filter{URLPattern: "queue*"}, m.Filters())
	assert.Empty(t, m.Rows())
}

func TestModelUnchangedSelectionKeepsWidgets(t *testing.T) {
	m := NewModel(modelData(), models.Filter{}, 0)

	send(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	before := m.Widgets()[0]
	send(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Same(t, before, m.Widgets()[0])
}

func TestModelView(t *testing.T) {
	m := NewModel(modelData(), models.Filter{}, 2)
	view := m.View()

	assert.Contains(t, view, "Cache Rank")
	assert.Contains(t, view, "3 of 3 requests")
	assert.Contains(t, view, "(showing 2)")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
}
