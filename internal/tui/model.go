package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/itscharlieeee/tdf-esp/internal/domain"
	"github.com/itscharlieeee/tdf-esp/internal/report"
	"github.com/itscharlieeee/tdf-esp/internal/service"
)

// Analyzer is the TUI-facing subset of the retrieval service.
type Analyzer interface {
	Analyze(req domain.Request) (*service.Result, error)
}

// Options holds the initial content and display settings.
type Options struct {
	Title         string
	Documents     []string
	Question      string
	Suggestions   []string
	Precision     int
	MatrixColumns int
}

type focus int

const (
	focusDocuments focus = iota
	focusQuestion
)

type keyMap struct {
	Analyze  key.Binding
	Focus    key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Analyze:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "analyze")),
	Focus:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch field")),
	PrevPage: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "previous stems")),
	NextPage: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "next stems")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	analyzer    Analyzer
	docs        textarea.Model
	input       textinput.Model
	matrix      table.Model
	result      *service.Result
	title       string
	suggestions []string
	status      string
	focus       focus
	colOffset   int
	pageSize    int
	precision   int
	ready       bool
}

// New creates a new TUI model instance.
func New(analyzer Analyzer, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "One document per line"
	ta.CharLimit = 0
	ta.ShowLineNumbers = true
	ta.SetHeight(8)
	ta.SetValue(strings.Join(opts.Documents, "\n"))
	ta.Focus()

	ti := textinput.New()
	ti.Prompt = "? "
	ti.Placeholder = "Write a question and press Enter"
	ti.CharLimit = 0
	ti.SetValue(opts.Question)

	if opts.Precision < 0 {
		opts.Precision = report.DefaultPrecision
	}
	if opts.MatrixColumns <= 0 {
		opts.MatrixColumns = 8
	}
	return Model{
		analyzer:    analyzer,
		docs:        ta,
		input:       ti,
		title:       opts.Title,
		suggestions: opts.Suggestions,
		status:      "Edit the documents, pick a question and press ctrl+r.",
		pageSize:    opts.MatrixColumns,
		precision:   opts.Precision,
	}
}

// Init initializes the model (cursor blink).
func (m Model) Init() tea.Cmd { return textarea.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		w := max(20, msg.Width-boxStyle.GetHorizontalFrameSize())
		m.docs.SetWidth(w)
		m.input.Width = w - len(m.input.Prompt) - 1
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Analyze):
			return m.analyze(), nil
		case key.Matches(msg, keys.Focus):
			return m.toggleFocus(), nil
		case key.Matches(msg, keys.NextPage):
			return m.page(1), nil
		case key.Matches(msg, keys.PrevPage):
			return m.page(-1), nil
		case msg.Type == tea.KeyEnter && m.focus == focusQuestion:
			return m.analyze(), nil
		}
		if i, ok := suggestionIndex(msg); ok && i < len(m.suggestions) {
			m.input.SetValue(m.suggestions[i])
			m.input.CursorEnd()
			m.status = fmt.Sprintf("Suggested question %d selected.", i+1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	if m.focus == focusDocuments {
		m.docs, cmd = m.docs.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n")
	b.WriteString(labelStyle.Render("Documents (one per line)") + "\n")
	b.WriteString(boxStyle.Render(m.docs.View()) + "\n")
	b.WriteString(labelStyle.Render("Question") + "\n")
	b.WriteString(boxStyle.Render(m.input.View()) + "\n")
	b.WriteString(m.renderSuggestions() + "\n")
	if m.result != nil {
		b.WriteString(m.renderResult() + "\n")
	}
	b.WriteString(statusStyle.Render(m.status) + "\n")
	b.WriteString(helpStyle.Render(help()))
	return b.String()
}

func (m Model) analyze() Model {
	res, err := m.analyzer.Analyze(domain.Request{Documents: m.docs.Value(), Query: m.input.Value()})
	if err != nil {
		m.status = "Error: " + err.Error()
		m.result = nil
		return m
	}
	m.result = res
	m.colOffset = 0
	m.matrix = m.buildTable()
	m.status = fmt.Sprintf("Analyzed %d documents over %d stems.", len(res.Corpus), len(res.Terms))
	return m
}

func (m Model) toggleFocus() Model {
	if m.focus == focusDocuments {
		m.focus = focusQuestion
		m.docs.Blur()
		m.input.Focus()
	} else {
		m.focus = focusDocuments
		m.input.Blur()
		m.docs.Focus()
	}
	return m
}

func (m Model) page(dir int) Model {
	if m.result == nil {
		return m
	}
	next := m.colOffset + dir*m.pageSize
	if next < 0 || next >= len(m.result.Terms) {
		return m
	}
	m.colOffset = next
	m.matrix = m.buildTable()
	return m
}

// pageBounds returns the matrix columns of the current page; column 0 holds row labels.
func (m Model) pageBounds() (int, int) {
	lo := 1 + m.colOffset
	hi := min(len(m.result.Terms)+1, lo+m.pageSize)
	return lo, hi
}

// buildTable shows the page of stems starting at colOffset.
func (m Model) buildTable() table.Model {
	headers, rows := report.MatrixRows(m.result, m.precision)
	lo, hi := m.pageBounds()
	cols := []table.Column{{Title: "", Width: lipgloss.Width(report.RowLabel(len(rows)))}}
	for _, h := range headers[lo:hi] {
		cols = append(cols, table.Column{Title: h, Width: max(lipgloss.Width(h), m.precision+2)})
	}
	trows := make([]table.Row, len(rows))
	for i, r := range rows {
		tr := table.Row{r[0]}
		tr = append(tr, r[lo:hi]...)
		trows[i] = tr
	}
	return table.New(
		table.WithColumns(cols),
		table.WithRows(trows),
		table.WithHeight(len(trows)+1),
	)
}

func (m Model) renderSuggestions() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Suggested questions"))
	for i, s := range m.suggestions {
		fmt.Fprintf(&b, "\n  alt+%d  %s", i+1, s)
	}
	return b.String()
}

func (m Model) renderResult() string {
	n := len(m.result.Terms)
	var header string
	if n == 0 {
		header = "TF-IDF matrix (no stems)"
	} else {
		lo, hi := m.pageBounds()
		header = fmt.Sprintf("TF-IDF matrix (stems %d-%d of %d)", lo, hi-1, n)
	}
	answer := report.Answer(m.result, m.precision)
	style := highStyle
	if m.result.Answer.Confidence == domain.ConfidenceLow {
		style = lowStyle
	}
	return labelStyle.Render(header) + "\n" + m.matrix.View() + "\n" + style.Render(answer)
}

// suggestionIndex maps alt+1..alt+9 to a 0-based suggestion.
func suggestionIndex(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) != 5 || !strings.HasPrefix(s, "alt+") {
		return 0, false
	}
	d := s[4]
	if d < '1' || d > '9' {
		return 0, false
	}
	return int(d - '1'), true
}

func help() string {
	bindings := []key.Binding{keys.Analyze, keys.Focus, keys.PrevPage, keys.NextPage, keys.Quit}
	parts := make([]string, 0, len(bindings)+1)
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	parts = append(parts, "alt+N suggestion")
	return strings.Join(parts, " • ")
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	highStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("10")).Padding(0, 1)
	lowStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("11")).Padding(0, 1)
)
