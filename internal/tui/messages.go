package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentdeck/agentdeck/internal/sample"
	"github.com/agentdeck/agentdeck/internal/store"
	"github.com/agentdeck/agentdeck/pkg/models"
)

// Message types for async operations
type (
	// SessionsLoadedMsg contains loaded session summaries
	SessionsLoadedMsg struct {
		Sessions []models.SessionSummary
		Err      error
	}

	// StepsLoadedMsg contains loaded step detail for one session
	StepsLoadedMsg struct {
		SessionID string
		Steps     []models.Step
		Err       error
	}

	// TickMsg is sent periodically for spinner animation
	TickMsg time.Time
)

// loadSessionsCmd loads summaries from the store asynchronously.
func loadSessionsCmd(ctx context.Context, st *store.Store) tea.Cmd {
	return func() tea.Msg {
		sessions, err := st.Summaries(ctx)
		return SessionsLoadedMsg{Sessions: sessions, Err: err}
	}
}

// loadStepsCmd loads step detail for a session asynchronously.
func loadStepsCmd(ctx context.Context, st *store.Store, sessionID string) tea.Cmd {
	return func() tea.Msg {
		steps, err := st.Steps(ctx, sessionID)
		return StepsLoadedMsg{SessionID: sessionID, Steps: steps, Err: err}
	}
}

// loadSampleCmd serves the bundled sample data through the same
// message path the store uses.
func loadSampleCmd() tea.Cmd {
	return func() tea.Msg {
		return SessionsLoadedMsg{Sessions: sample.Sessions()}
	}
}

// tickCmd creates a ticker for spinner animation
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
