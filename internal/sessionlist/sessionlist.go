// Package sessionlist renders a scrollable, selectable list of agent
// session summaries. It owns no session data: the caller supplies an
// ordered slice of summaries and the component renders one row per
// entry, in input order, with a status dot, the display name, a
// "steps • timestamp" subtitle and the lifecycle state label.
package sessionlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agentdeck/agentdeck/internal/sample"
	"github.com/agentdeck/agentdeck/pkg/models"
)

// SelectMsg is emitted when a row is activated with the select key.
type SelectMsg struct {
	ID string
}

// TrailingMsg is emitted when the trailing action of a row fires.
type TrailingMsg struct {
	ID string
}

// RowWrapper decorates a fully rendered row. The hovered flag reports
// whether the cursor is on that row.
type RowWrapper func(row string, hovered bool) string

type trailingAction struct {
	binding key.Binding
	label   string
	fn      func(sessionID string)
}

type keyMap struct {
	up     key.Binding
	down   key.Binding
	choose key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k")),
		down:   key.NewBinding(key.WithKeys("down", "j")),
		choose: key.NewBinding(key.WithKeys("enter")),
	}
}

// Model is the session list component. Create it with New and embed it
// in a bubbletea program; it is also usable headless through Update and
// View for testing.
type Model struct {
	sessions  []models.SessionSummary
	current   string
	onSelect  func(sessionID string)
	trailing  *trailingAction
	rowWrap   RowWrapper
	container lipgloss.Style

	keys     keyMap
	cursor   int
	viewport viewport.Model
	width    int
	height   int
}

// Option configures a Model.
type Option func(*Model)

// WithSessions sets the summaries to render, in the given order. When
// no sessions are supplied at all the component falls back to the
// bundled sample data.
func WithSessions(sessions []models.SessionSummary) Option {
	return func(m *Model) { m.sessions = sessions }
}

// WithOnSelect sets the callback invoked with a session identifier when
// a row (or its trailing action) is activated.
func WithOnSelect(fn func(sessionID string)) Option {
	return func(m *Model) { m.onSelect = fn }
}

// WithCurrentSession marks the session that receives the highlighted
// style.
func WithCurrentSession(id string) Option {
	return func(m *Model) { m.current = id }
}

// WithContainerStyle sets the style of the outer scroll container.
func WithContainerStyle(style lipgloss.Style) Option {
	return func(m *Model) { m.container = style }
}

// WithRowWrapper sets a decorator applied to each rendered row.
func WithRowWrapper(fn RowWrapper) Option {
	return func(m *Model) { m.rowWrap = fn }
}

// WithTrailingAction binds an extra per-row action (such as a close
// control) to the given keys. Activating it invokes fn and the select
// callback for the hovered row, exactly once each.
func WithTrailingAction(keys []string, label string, fn func(sessionID string)) Option {
	return func(m *Model) {
		m.trailing = &trailingAction{
			binding: key.NewBinding(key.WithKeys(keys...)),
			label:   label,
			fn:      fn,
		}
	}
}

// New creates a session list from the given options.
func New(opts ...Option) Model {
	m := Model{
		keys:      defaultKeyMap(),
		container: lipgloss.NewStyle(),
		width:     40,
		height:    20,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.sessions == nil {
		m.sessions = sample.Sessions()
	}
	m.viewport = viewport.New(m.width, m.height)
	m.refresh()
	return m
}

// SetSize resizes the component to fit the given area.
func (m *Model) SetSize(width, height int) {
	if width < 10 {
		width = 10
	}
	if height < 1 {
		height = 1
	}
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.refresh()
}

// SetSessions replaces the rendered summaries, clamping the cursor.
func (m *Model) SetSessions(sessions []models.SessionSummary) {
	m.sessions = sessions
	if m.cursor >= len(sessions) {
		m.cursor = len(sessions) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.refresh()
}

// SetCurrent updates the highlighted session identifier.
func (m *Model) SetCurrent(id string) {
	m.current = id
	m.refresh()
}

// Sessions returns the summaries currently rendered, in order.
func (m Model) Sessions() []models.SessionSummary {
	return m.sessions
}

// Hovered returns the summary under the cursor.
func (m Model) Hovered() (models.SessionSummary, bool) {
	if m.cursor < 0 || m.cursor >= len(m.sessions) {
		return models.SessionSummary{}, false
	}
	return m.sessions[m.cursor], true
}

// Update handles key and mouse-wheel input. Activation fires the select
// callback exactly once; when the trailing action matches it is handled
// first and the row's own activation path is skipped, so a shared key
// can never double-invoke the callback.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.up):
			if m.cursor > 0 {
				m.cursor--
				m.refresh()
			}
			return m, nil

		case key.Matches(msg, m.keys.down):
			if m.cursor < len(m.sessions)-1 {
				m.cursor++
				m.refresh()
			}
			return m, nil

		case m.trailing != nil && key.Matches(msg, m.trailing.binding):
			hovered, ok := m.Hovered()
			if !ok {
				return m, nil
			}
			if m.trailing.fn != nil {
				m.trailing.fn(hovered.ID)
			}
			if m.onSelect != nil {
				m.onSelect(hovered.ID)
			}
			id := hovered.ID
			return m, func() tea.Msg { return TrailingMsg{ID: id} }

		case key.Matches(msg, m.keys.choose):
			hovered, ok := m.Hovered()
			if !ok {
				return m, nil
			}
			if m.onSelect != nil {
				m.onSelect(hovered.ID)
			}
			id := hovered.ID
			return m, func() tea.Msg { return SelectMsg{ID: id} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the scroll container with one row per summary. An empty
// sequence renders an empty container.
func (m Model) View() string {
	return m.container.Render(m.viewport.View())
}

func (m *Model) refresh() {
	m.viewport.SetContent(strings.Join(m.rows(), "\n"))
	m.scrollToCursor()
}

// scrollToCursor keeps the hovered row inside the viewport. Rows are
// joined with a single newline, so row k starts at the summed height
// of the rows before it.
func (m *Model) scrollToCursor() {
	if m.cursor <= 0 || m.cursor >= len(m.sessions) {
		m.viewport.GotoTop()
		return
	}
	top := 0
	for i := 0; i < m.cursor && i < len(m.sessions); i++ {
		top += lipgloss.Height(m.renderRow(i))
	}
	bottom := top + lipgloss.Height(m.renderRow(m.cursor)) - 1
	if top < m.viewport.YOffset {
		m.viewport.SetYOffset(top)
	} else if bottom >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height + 1)
	}
}

// rows renders every summary, in input order.
func (m Model) rows() []string {
	rows := make([]string, len(m.sessions))
	for i := range m.sessions {
		rows[i] = m.renderRow(i)
	}
	return rows
}

func (m Model) renderRow(i int) string {
	s := m.sessions[i]
	hovered := i == m.cursor
	highlighted := s.ID != "" && s.ID == m.current

	cursor := "  "
	if hovered {
		cursor = "> "
	}

	dot := lipgloss.NewStyle().
		Foreground(StatusColor(s.Status)).
		Render("●")

	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	if highlighted {
		nameStyle = nameStyle.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("63")).Bold(true)
	} else if hovered {
		nameStyle = nameStyle.Foreground(lipgloss.Color("212")).Bold(true)
	}

	metaStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	stateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	if hovered {
		metaStyle = metaStyle.Foreground(lipgloss.Color("250"))
		stateStyle = stateStyle.Foreground(lipgloss.Color("250"))
	}

	wrapWidth := m.width - 4
	if wrapWidth < 10 {
		wrapWidth = 10
	}

	var b strings.Builder
	for j, line := range wrapText(s.DisplayName, wrapWidth) {
		if j == 0 {
			b.WriteString(cursor + dot + " " + nameStyle.Render(line))
		} else {
			b.WriteString("\n    " + nameStyle.Render(line))
		}
	}
	b.WriteString("\n    " + metaStyle.Render(FormatSubtitle(s.StepCount, s.LastUpdated)))
	b.WriteString("\n    " + stateStyle.Render(StateLabel(s.Status)))
	if m.trailing != nil {
		b.WriteString("  " + stateStyle.Render("["+m.trailing.label+"]"))
	}

	row := b.String()
	if m.rowWrap != nil {
		row = m.rowWrap(row, hovered)
	}
	return row
}

// StatusColor maps a lifecycle state to its indicator color. Unknown
// states get the neutral default.
func StatusColor(status models.Status) lipgloss.Color {
	switch status {
	case models.StatusActive:
		return lipgloss.Color("39")
	case models.StatusCompleted:
		return lipgloss.Color("42")
	case models.StatusError:
		return lipgloss.Color("196")
	default:
		return lipgloss.Color("245")
	}
}

// FormatSubtitle renders the step count and timestamp line, e.g.
// "3 steps • Mar 5, 02:07 PM". The layout carries no year and no
// seconds; the hour and minute are zero-padded.
func FormatSubtitle(stepCount int, lastUpdated time.Time) string {
	return fmt.Sprintf("%d steps • %s", stepCount, lastUpdated.Format("Jan 2, 03:04 PM"))
}

// StateLabel capitalizes the raw lifecycle state for display.
func StateLabel(status models.Status) string {
	s := string(status)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// wrapText word-wraps text to the given width without truncating.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	return append(lines, current)
}
