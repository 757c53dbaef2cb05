// Package sample provides built-in session data used when no step logs
// are available, so the UI stays usable on a fresh machine.
package sample

import (
	"time"

	"github.com/google/uuid"

	"github.com/agentdeck/agentdeck/pkg/models"
)

// Identifiers are derived from the session name so sample data is
// stable across runs.
func sessionID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("agentdeck/sample/"+name)).String()
}

// Sessions returns the bundled sample summaries, most recent first.
func Sessions() []models.SessionSummary {
	now := time.Now()
	return []models.SessionSummary{
		{
			ID:          sessionID("refactor-auth-layer"),
			DisplayName: "Refactor auth layer",
			LastUpdated: now.Add(-4 * time.Minute),
			StepCount:   12,
			Status:      models.StatusActive,
		},
		{
			ID:          sessionID("build-pipeline"),
			DisplayName: "Build pipeline",
			LastUpdated: now.Add(-37 * time.Minute),
			StepCount:   3,
			Status:      models.StatusActive,
		},
		{
			ID:          sessionID("migrate-config-to-yaml"),
			DisplayName: "Migrate config to YAML",
			LastUpdated: now.Add(-2 * time.Hour),
			StepCount:   8,
			Status:      models.StatusCompleted,
		},
		{
			ID:          sessionID("flaky-integration-tests"),
			DisplayName: "Investigate flaky integration tests",
			LastUpdated: now.Add(-5 * time.Hour),
			StepCount:   21,
			Status:      models.StatusError,
		},
		{
			ID:          sessionID("dependency-audit"),
			DisplayName: "Dependency audit",
			LastUpdated: now.Add(-26 * time.Hour),
			StepCount:   5,
			Status:      models.StatusCompleted,
		},
		{
			ID:          sessionID("spike-duckdb-store"),
			DisplayName: "Spike: DuckDB-backed step store",
			LastUpdated: now.Add(-3 * 24 * time.Hour),
			StepCount:   14,
			Status:      models.Status("paused"),
		},
	}
}

// Steps returns sample step detail for a sample session, or nil when
// the identifier is not one of ours.
func Steps(id string) []models.Step {
	for _, s := range Sessions() {
		if s.ID != id {
			continue
		}
		steps := make([]models.Step, s.StepCount)
		base := s.LastUpdated.Add(-time.Duration(s.StepCount) * time.Minute)
		for i := range steps {
			status := models.StatusCompleted
			if i == len(steps)-1 {
				status = s.Status
			}
			steps[i] = models.Step{
				Index:     i + 1,
				Title:     stepTitles[i%len(stepTitles)],
				Status:    status,
				Timestamp: base.Add(time.Duration(i) * time.Minute),
			}
		}
		return steps
	}
	return nil
}

var stepTitles = []string{
	"Read repository layout",
	"Locate failing module",
	"Draft change plan",
	"Apply edit",
	"Run tests",
	"Inspect test output",
	"Fix follow-up breakage",
	"Update documentation",
}
