package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/internal/sample"
	"github.com/agentdeck/agentdeck/internal/sessionlist"
	"github.com/agentdeck/agentdeck/pkg/models"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List session summaries without the TUI",
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	sessions, err := fetchSessions()
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions found")
		return nil
	}

	fmt.Println("Sessions:")
	fmt.Println("=========")
	for i, session := range sessions {
		fmt.Printf("%d. %s\n", i+1, session.DisplayName)
		fmt.Printf("   ID: %s\n", session.ID)
		fmt.Printf("   %s\n", sessionlist.FormatSubtitle(session.StepCount, session.LastUpdated))
		fmt.Printf("   %s\n", sessionlist.StateLabel(session.Status))
		fmt.Println()
	}

	return nil
}

// fetchSessions resolves summaries from the store or the sample
// bundle, shared by the non-interactive commands.
func fetchSessions() ([]models.SessionSummary, error) {
	st := newStore()
	if st == nil {
		return sample.Sessions(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sessions, err := st.Summaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	return sessions, nil
}
