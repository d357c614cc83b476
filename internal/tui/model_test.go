package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripguide/internal/domain"
)

type stubService struct {
	results   []domain.RetrievedChunk
	err       error
	lastLimit int
}

func (s *stubService) Query(_ string, limit int) ([]domain.RetrievedChunk, error) {
	s.lastLimit = limit
	return s.results, s.err
}

func typeQuery(t *testing.T, m Model, q string) Model {
	t.Helper()
	var tm tea.Model = m
	tm, _ = tm.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(q)})
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return tm.(Model)
}

func TestModel_Search(t *testing.T) {
	svc := &stubService{results: []domain.RetrievedChunk{
		{ID: "samarkand-1", Title: "Samarkand", URL: "https://example.org/samarkand", Content: "Registan square glows at sunset. Arrive early.", Score: 0.8},
		{ID: "bukhara-2", Title: "Bukhara", Content: "Lyabi-Hauz pond is shaded.", Score: 0.3},
	}}
	m := typeQuery(t, New(svc, "2 documents", 3), "registan")

	assert.Equal(t, 3, svc.lastLimit)
	require.Len(t, m.results, 2)
	assert.Equal(t, "registan", m.lastQuery)
	assert.Contains(t, m.status, "Sources: [S1], [S2]")

	view := m.renderCurrentResult()
	assert.Contains(t, view, "[S1] Samarkand")
	assert.Contains(t, view, "https://example.org/samarkand")
	assert.Contains(t, view, "score=0.800")

	var tm tea.Model = m
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Contains(t, tm.(Model).renderCurrentResult(), "[S2] Bukhara")
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Contains(t, tm.(Model).renderCurrentResult(), "[S1] Samarkand")
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Contains(t, tm.(Model).renderCurrentResult(), "[S2] Bukhara")
}

func TestModel_NoResults(t *testing.T) {
	m := typeQuery(t, New(&stubService{}, "", 4), "weather")
	assert.Empty(t, m.results)
	assert.Equal(t, "No relevant passages.", m.renderCurrentResult())
	assert.Contains(t, m.status, "Sources: none")
}

func TestModel_QueryError(t *testing.T) {
	m := typeQuery(t, New(&stubService{err: errors.New("index unavailable")}, "", 4), "metro")
	assert.Equal(t, "Error: index unavailable", m.status)
	assert.Nil(t, m.results)
}

func TestModel_Reloaded(t *testing.T) {
	var tm tea.Model = New(&stubService{}, "", 4)
	tm, _ = tm.Update(ReloadedMsg{})
	assert.Equal(t, "Knowledge base reloaded.", tm.(Model).status)
	tm, _ = tm.Update(ReloadedMsg{Err: errors.New("bad yaml")})
	assert.Contains(t, tm.(Model).status, "bad yaml")
}

func TestModel_Quit(t *testing.T) {
	_, cmd := New(&stubService{}, "", 4).Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestHighlightBestSentence(t *testing.T) {
	text := "Trains leave at night. Registan glows at sunset."
	assert.Equal(t, "Trains leave at night. Registan glows at sunset.", highlightBestSentence(text, ""))
	assert.Contains(t, highlightBestSentence(text, "registan"), "Registan glows at sunset.")
	assert.Equal(t, "", highlightBestSentence("", "registan"))
}
