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

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show the recorded steps of a session",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	sessionID := args[0]

	sessions, err := fetchSessions()
	if err != nil {
		return err
	}

	var target *models.SessionSummary
	for i := range sessions {
		if sessions[i].ID == sessionID {
			target = &sessions[i]
			break
		}
	}

	if target == nil {
		fmt.Printf("Session '%s' not found\n", sessionID)
		fmt.Println("\nAvailable sessions:")
		for i, session := range sessions {
			if i >= 10 {
				fmt.Printf("... and %d more sessions\n", len(sessions)-10)
				break
			}
			fmt.Printf("  - %s (%s)\n", session.ID, session.DisplayName)
		}
		return nil
	}

	steps, err := fetchSteps(sessionID)
	if err != nil {
		return err
	}

	fmt.Printf("Steps for '%s':\n", target.DisplayName)
	fmt.Println("===================================")
	if len(steps) == 0 {
		fmt.Println("No steps recorded")
		return nil
	}

	for _, step := range steps {
		fmt.Printf("%2d. %s\n", step.Index, step.Title)
		fmt.Printf("    %s • %s\n",
			sessionlist.StateLabel(step.Status),
			step.Timestamp.Format("Jan 2, 03:04 PM"))
	}

	return nil
}

func fetchSteps(sessionID string) ([]models.Step, error) {
	st := newStore()
	if st == nil {
		return sample.Steps(sessionID), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	steps, err := st.Steps(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch steps: %w", err)
	}
	return steps, nil
}
