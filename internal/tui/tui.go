package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mess/internal/app"
)

var ErrUserQuit = errors.New("user quit")

type Input struct {
	Reports []app.Report
	Query   string
	Now     time.Time
	// Output receives the terminal UI. Keep it off stdout so the chosen
	// path can be captured by the shell.
	Output io.Writer
}

// Run lets the user pick one rescued entry and returns it.
func Run(in Input) (app.Entry, error) {
	out := in.Output
	if out == nil {
		out = os.Stdout
	}
	m := newModel(in.Reports, in.Query, in.Now, lipgloss.NewRenderer(out))
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithOutput(out)}
	program := tea.NewProgram(m, opts...)
	final, err := program.Run()
	if err != nil {
		return app.Entry{}, err
	}

	var state model
	switch typed := final.(type) {
	case model:
		state = typed
	case *model:
		state = *typed
	default:
		return app.Entry{}, fmt.Errorf("unexpected model type")
	}
	if state.err != nil {
		return app.Entry{}, state.err
	}
	if state.result == nil {
		return app.Entry{}, ErrUserQuit
	}

	return *state.result, nil
}

type listItem struct {
	title  string
	meta   string
	bucket string
	entry  app.Entry
}

type model struct {
	searchInput textinput.Model

	// Bound to the picker's output, not stdout.
	bucketStyle   lipgloss.Style
	selectedStyle lipgloss.Style

	items  []listItem
	all    []listItem
	cursor int
	offset int
	width  int
	height int

	result *app.Entry
	err    error
}

func newModel(reports []app.Report, query string, now time.Time, r *lipgloss.Renderer) model {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "type to filter"
	search.CharLimit = 256
	search.SetValue(query)

	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	m := model{
		searchInput:   search,
		bucketStyle:   r.NewStyle().Faint(true),
		selectedStyle: r.NewStyle().Bold(true),
	}
	for _, report := range reports {
		bucket := report.Year + "/" + report.Week
		for _, entry := range report.Entries {
			m.all = append(m.all, listItem{
				title:  entry.Name,
				meta:   app.RelativeTime(entry.ModTime, now),
				bucket: bucket,
				entry:  entry,
			})
		}
	}

	m.applyFilter()
	m.searchInput.Focus()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msgTyped := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msgTyped.Width
		m.height = msgTyped.Height
		m.searchInput.Width = max(10, renderWidth(m.width)-len(m.searchInput.Prompt)-1)
		m.ensureCursorVisible()
		return m, nil
	case tea.KeyMsg:
		switch msgTyped.String() {
		case "ctrl+c", "esc":
			m.err = ErrUserQuit
			return m, tea.Quit
		}
	}
	return m.updateList(msg)
}

func (m model) View() string {
	if m.err != nil && !errors.Is(m.err, ErrUserQuit) {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	var b strings.Builder
	width := renderWidth(m.width)
	b.WriteString(renderLine("Rescue a project from a past week.", width))
	b.WriteString("\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", max(10, min(width, 60))))
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString("No matches.\n")
	} else {
		start, end := m.visibleRange()
		for i := start; i < end; i++ {
			b.WriteString(m.renderItem(m.items[i], i == m.cursor, width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("up/down move | enter select | esc quit\n")
	return b.String()
}

func (m model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if len(m.items) == 0 {
				return m, nil
			}
			entry := m.items[m.cursor].entry
			m.result = &entry
			return m, tea.Quit
		case "up", "ctrl+p":
			m.moveCursor(-1)
			return m, nil
		case "down", "ctrl+n":
			m.moveCursor(1)
			return m, nil
		case "pgup":
			m.moveCursor(-m.visibleCount())
			return m, nil
		case "pgdown":
			m.moveCursor(m.visibleCount())
			return m, nil
		}
	}

	prev := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != prev {
		m.applyFilter()
	}
	return m, cmd
}

// applyFilter keeps scan order rather than sorting by score. For a non-empty
// query the cursor jumps to the best-scoring match; the first one wins ties.
func (m *model) applyFilter() {
	query := m.searchInput.Value()
	filtered := make([]listItem, 0, len(m.all))
	best, bestScore := -1, 0
	for _, item := range m.all {
		score, ok := app.FuzzyMatch(item.title, query)
		if !ok {
			continue
		}
		if best < 0 || score > bestScore {
			best, bestScore = len(filtered), score
		}
		filtered = append(filtered, item)
	}
	m.items = filtered

	if query != "" && best >= 0 {
		m.cursor = best
	}
	m.cursor = clamp(m.cursor, 0, max(0, len(m.items)-1))
	m.ensureCursorVisible()
}

func (m *model) moveCursor(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.items)-1)
	m.ensureCursorVisible()
}

func (m *model) ensureCursorVisible() {
	visible := m.visibleCount()
	if m.cursor < m.offset {
		m.offset = m.cursor
		return
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

// visibleCount leaves room for the title, search, rule and footer lines.
func (m model) visibleCount() int {
	available := m.height - 6
	if available < 3 {
		return 3
	}
	return available
}

func (m model) visibleRange() (int, int) {
	if len(m.items) == 0 {
		return 0, 0
	}
	start := clamp(m.offset, 0, len(m.items)-1)
	end := min(len(m.items), start+m.visibleCount())
	return start, end
}

func (m model) renderItem(item listItem, selected bool, width int) string {
	prefix := "  "
	if selected {
		prefix = "> "
	}

	title := truncateToWidth(item.title, max(1, width-30))
	if selected {
		title = m.selectedStyle.Render(title)
	}
	bucket := m.bucketStyle.Render(fmt.Sprintf("%-9s", item.bucket))
	return fmt.Sprintf("%s%s %-8s %s", prefix, bucket, item.meta, title)
}

func renderLine(text string, width int) string {
	return truncateToWidth(text, width)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width <= 3 {
		return string(runes[:width])
	}

	return string(runes[:width-3]) + "..."
}

func renderWidth(width int) int {
	if width <= 0 {
		width = 80
	}
	if width <= 1 {
		return width
	}
	return width - 1
}

func clamp(value, minVal, maxVal int) int {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
