// Package tui hosts the interactive session browser: the session list
// on the left, step detail for the hovered session on the right.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agentdeck/agentdeck/internal/sample"
	"github.com/agentdeck/agentdeck/internal/sessionlist"
	"github.com/agentdeck/agentdeck/internal/store"
	"github.com/agentdeck/agentdeck/pkg/models"
)

// Options configures the browser.
type Options struct {
	// Store supplies sessions from step logs. When nil the bundled
	// sample data is shown instead.
	Store *store.Store
	// CurrentSessionID highlights the session the caller considers
	// already selected.
	CurrentSessionID string
}

type loadingState int

const (
	stateIdle loadingState = iota
	stateLoadingSessions
	stateLoadingSteps
)

type model struct {
	opts Options

	list        sessionlist.Model
	listReady   bool
	detail      viewport.Model
	detailReady bool

	sessions  []models.SessionSummary
	stepCache map[string][]models.Step
	loading   loadingState
	indicator *LoadingIndicator

	ctx            context.Context
	cancel         context.CancelFunc
	activeRequests map[string]context.CancelFunc

	selected *models.SessionSummary
	err      error

	ready  bool
	width  int
	height int
}

func initialModel(opts Options) model {
	ctx, cancel := context.WithCancel(context.Background())
	return model{
		opts:           opts,
		stepCache:      make(map[string][]models.Step),
		activeRequests: make(map[string]context.CancelFunc),
		indicator:      NewLoadingIndicator("Loading sessions..."),
		loading:        stateLoadingSessions,
		ctx:            ctx,
		cancel:         cancel,
	}
}

func (m model) Init() tea.Cmd {
	if m.opts.Store == nil {
		return tea.Batch(loadSampleCmd(), tickCmd())
	}
	return tea.Batch(loadSessionsCmd(m.ctx, m.opts.Store), tickCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case SessionsLoadedMsg:
		m.loading = stateIdle
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.sessions = msg.Sessions
		m.buildList()
		cmd := m.ensureStepsLoaded()
		return m, cmd

	case StepsLoadedMsg:
		if cancelReq, ok := m.activeRequests[msg.SessionID]; ok {
			cancelReq()
			delete(m.activeRequests, msg.SessionID)
		}
		if m.loading == stateLoadingSteps {
			m.loading = stateIdle
		}
		if msg.Err == nil {
			m.stepCache[msg.SessionID] = msg.Steps
		}
		m.renderDetail()
		return m, nil

	case sessionlist.SelectMsg:
		for i := range m.sessions {
			if m.sessions[i].ID == msg.ID {
				m.selected = &m.sessions[i]
				break
			}
		}
		m.cancel()
		return m, tea.Quit

	case sessionlist.TrailingMsg:
		kept := make([]models.SessionSummary, 0, len(m.sessions))
		for _, s := range m.sessions {
			if s.ID != msg.ID {
				kept = append(kept, s)
			}
		}
		m.sessions = kept
		m.list.SetSessions(kept)
		m.renderDetail()
		cmd := m.ensureStepsLoaded()
		return m, cmd

	case TickMsg:
		if m.loading == stateIdle {
			return m, nil
		}
		m.indicator.Tick()
		return m, tickCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.loading != stateIdle {
				for id, cancelReq := range m.activeRequests {
					cancelReq()
					delete(m.activeRequests, id)
				}
				m.loading = stateIdle
				return m, nil
			}
			m.cancel()
			return m, tea.Quit
		}
	}

	if !m.listReady {
		return m, nil
	}

	before, _ := m.list.Hovered()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	after, _ := m.list.Hovered()

	if before.ID != after.ID {
		m.renderDetail()
		stepsCmd := m.ensureStepsLoaded()
		return m, tea.Batch(cmd, stepsCmd)
	}
	return m, cmd
}

// buildList wires the session list component from current state.
func (m *model) buildList() {
	m.list = sessionlist.New(
		sessionlist.WithSessions(m.sessions),
		sessionlist.WithCurrentSession(m.opts.CurrentSessionID),
		sessionlist.WithTrailingAction([]string{"x"}, "x: dismiss", nil),
	)
	m.listReady = true
	m.resize()
	m.renderDetail()
}

func (m *model) resize() {
	if !m.ready {
		return
	}
	leftWidth := m.width/2 - 1
	rightWidth := m.width - leftWidth - 1
	viewHeight := m.height - 3

	if m.listReady {
		m.list.SetSize(leftWidth, viewHeight)
	}
	if !m.detailReady {
		m.detail = viewport.New(rightWidth, viewHeight)
		m.detailReady = true
	} else {
		// Resize in place so the step pane keeps its scroll position.
		m.detail.Width = rightWidth
		m.detail.Height = viewHeight
	}
	m.renderDetail()
}

// ensureStepsLoaded fetches step detail for the hovered session unless
// it is cached already. Sample sessions come straight from the bundle.
func (m *model) ensureStepsLoaded() tea.Cmd {
	if !m.listReady {
		return nil
	}
	hovered, ok := m.list.Hovered()
	if !ok {
		return nil
	}
	if _, cached := m.stepCache[hovered.ID]; cached {
		return nil
	}

	if m.opts.Store == nil {
		m.stepCache[hovered.ID] = sample.Steps(hovered.ID)
		m.renderDetail()
		return nil
	}

	if _, inFlight := m.activeRequests[hovered.ID]; inFlight {
		return nil
	}
	reqCtx, cancelReq := context.WithCancel(m.ctx)
	m.activeRequests[hovered.ID] = cancelReq
	m.loading = stateLoadingSteps
	m.indicator.SetMessage("Loading steps...")
	return tea.Batch(loadStepsCmd(reqCtx, m.opts.Store, hovered.ID), tickCmd())
}

// renderDetail fills the right pane with the hovered session's steps.
func (m *model) renderDetail() {
	if !m.ready || !m.listReady {
		return
	}

	hovered, ok := m.list.Hovered()
	if !ok {
		m.detail.SetContent("")
		return
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	var s strings.Builder
	s.WriteString(headerStyle.Render("Steps") + "\n")
	dividerWidth := m.detail.Width - 2
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	s.WriteString(strings.Repeat("─", dividerWidth) + "\n\n")

	steps, cached := m.stepCache[hovered.ID]
	switch {
	case !cached && m.loading == stateLoadingSteps:
		s.WriteString(m.indicator.View())
	case len(steps) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
		s.WriteString(emptyStyle.Render("No steps recorded"))
	default:
		numStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Bold(true)
		titleStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
		for i, step := range steps {
			dot := lipgloss.NewStyle().
				Foreground(sessionlist.StatusColor(step.Status)).
				Render("●")
			s.WriteString(fmt.Sprintf("%s %s %s\n",
				numStyle.Render(fmt.Sprintf("%2d.", step.Index)),
				dot,
				titleStyle.Render(step.Title)))
			s.WriteString("       " + lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Render(step.Timestamp.Format("Jan 2, 03:04 PM")))
			if i < len(steps)-1 {
				s.WriteString("\n")
			}
		}
	}

	m.detail.SetContent(s.String())
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.err)
	}
	if m.loading == stateLoadingSessions {
		return LoadingOverlay(m.width, m.height, m.indicator)
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	return fmt.Sprintf("%s\n%s\n%s", header, m.renderSplitView(), footer)
}

func (m model) renderSplitView() string {
	viewHeight := m.height - 3

	divider := strings.Builder{}
	for i := 0; i < viewHeight; i++ {
		divider.WriteString("│")
		if i < viewHeight-1 {
			divider.WriteString("\n")
		}
	}
	dividerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238")).
		Height(viewHeight)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.list.View(),
		dividerStyle.Render(divider.String()),
		m.detail.View(),
	)
}

func (m model) renderHeader() string {
	title := "Agentdeck - Sessions"
	if m.opts.Store == nil {
		title += " (sample data)"
	}
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63"))
	return style.Render(title)
}

func (m model) renderFooter() string {
	info := "↑/↓: navigate • enter: select • x: dismiss"
	if len(m.sessions) == 0 {
		info = "no sessions"
	}
	info += " • q: quit"
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	return style.Render(info)
}

// Show runs the browser and returns the selected session, or nil when
// the user quit without choosing one.
func Show(opts Options) (*models.SessionSummary, error) {
	p := tea.NewProgram(
		initialModel(opts),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(model)
	return m.selected, nil
}
