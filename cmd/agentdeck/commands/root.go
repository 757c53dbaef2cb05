package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/internal/config"
	"github.com/agentdeck/agentdeck/internal/store"
	"github.com/agentdeck/agentdeck/internal/tui"
)

var (
	sampleMode bool
	dataDir    string
	currentID  string
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "agentdeck",
		Short: "Browse agent sessions in the terminal",
		Long: `agentdeck is a TUI for browsing agent session summaries recorded
as JSONL step logs. Selecting a session prints its identifier, so the
tool composes with shells and wrapper scripts.

Configuration is read from ` + config.Path() + `.`,
		RunE: runBrowser,
	}

	rootCmd.PersistentFlags().BoolVar(&sampleMode, "sample", false, "Use bundled sample data instead of step logs")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory scanned for *.jsonl step logs (overrides config)")
	rootCmd.Flags().StringVar(&currentID, "current", "", "Session identifier to highlight as already selected")
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewShowCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newStore builds a store from flags and config, or nil when sample
// data should be used.
func newStore() *store.Store {
	if sampleMode {
		return nil
	}
	cfg := config.Load()
	dir := cfg.DataDir
	if dataDir != "" {
		dir = dataDir
	}
	if _, err := os.Stat(dir); err != nil {
		// No step logs on this machine; fall back to sample data.
		return nil
	}
	return store.New(dir, cfg.Limit)
}

func runBrowser(cmd *cobra.Command, args []string) error {
	selected, err := tui.Show(tui.Options{
		Store:            newStore(),
		CurrentSessionID: currentID,
	})
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if selected == nil {
		return nil
	}

	fmt.Println(selected.ID)
	return nil
}
