package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tripguide/internal/domain"
	"tripguide/internal/retriever"
	"tripguide/internal/summarizer"
	"tripguide/internal/tokenizer"
)

// RAGPort is the TUI-facing subset of the RAG service.
type RAGPort interface {
	Query(query string, limit int) ([]domain.RetrievedChunk, error)
}

// ReloadedMsg reports that the knowledge base was re-indexed in the
// background.
type ReloadedMsg struct {
	Err error
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	service    RAGPort
	summarizer *summarizer.FrequencySummarizer
	limit      int
	input      textinput.Model
	viewport   viewport.Model
	results    []domain.RetrievedChunk
	citations  []retriever.Citation
	summary    string
	status     string
	cursor     int
	ready      bool
	lastQuery  string
}

// New creates a new TUI model instance.
func New(service RAGPort, summary string, limit int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about a destination and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:    service,
		summarizer: summarizer.NewFrequencySummarizer(),
		limit:      limit,
		input:      ti,
		viewport:   vp,
		summary:    summary,
		status:     "Loaded. Type to search.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header, summary, status, spacer
		vh := max(3, msg.Height-reserved)
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case ReloadedMsg:
		if msg.Err != nil {
			m.status = "Reload failed, keeping previous index: " + msg.Err.Error()
		} else {
			m.status = "Knowledge base reloaded."
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if q := strings.TrimSpace(m.input.Value()); q != "" {
				m.search(q)
				return m, nil
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) search(q string) {
	res, err := m.service.Query(q, m.limit)
	m.cursor = 0
	if err != nil {
		m.status = "Error: " + err.Error()
		m.results, m.citations = nil, nil
	} else {
		m.results = res
		m.citations = retriever.Citations(res)
		m.lastQuery = q
		m.status = fmt.Sprintf("%d results for %q. %s", len(res), q, retriever.FormatSources(retriever.CitationTokens(res)))
	}
	m.viewport.SetContent(m.renderCurrentResult())
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Trip Guide")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		if m.lastQuery != "" {
			return "No relevant passages."
		}
		return "No results yet."
	}
	c := m.citations[m.cursor]
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s  (%d/%d, score=%.3f)\n", c.Token, c.Chunk.Title, m.cursor+1, len(m.results), c.Chunk.Score)
	if c.Chunk.URL != "" {
		b.WriteString(urlStyle.Render(c.Chunk.URL) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(highlightBestSentence(c.Chunk.Content, m.lastQuery))
	if excerpt := m.summarizer.Excerpt(c.Chunk.Content, m.lastQuery, 2); excerpt != strings.TrimSpace(c.Chunk.Content) {
		b.WriteString("\n\n" + excerptStyle.Render("In short: "+excerpt))
	}
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	urlStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true)
	excerptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	sentenceRe     = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		sentences = []string{strings.TrimSpace(text)}
	}
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return joinSentences(sentences, -1)
	}
	bestIdx, bestScore := 0, -1
	for i, s := range sentences {
		if score := tokenOverlapScore(qTokens, s); score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	return joinSentences(sentences, bestIdx)
}

func joinSentences(sentences []string, highlight int) string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		s = strings.TrimSpace(s)
		if i == highlight {
			s = highlightStyle.Render(s)
		}
		out[i] = s
	}
	return strings.Join(out, " ")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := tokenizer.Tokenize(s)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	for t := range toTokenSet(sentence) {
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}
