// Package store reads agent session step logs and shapes them into
// summaries for the UI. Logs are newline-delimited JSON files, one
// event per line: sessionId, name, step, title, status, timestamp.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/agentdeck/agentdeck/internal/db"
	"github.com/agentdeck/agentdeck/pkg/models"
)

// Store queries step logs under a data directory.
type Store struct {
	glob  string
	limit int
}

// New creates a store over dataDir. Logs may be nested; every *.jsonl
// file below the directory is considered.
func New(dataDir string, limit int) *Store {
	if limit <= 0 {
		limit = 100
	}
	return &Store{
		glob:  filepath.Join(dataDir, "**", "*.jsonl"),
		limit: limit,
	}
}

// Summaries aggregates every session in the data directory: display
// name, step count, last update and the status of the latest event,
// most recently updated first.
func (s *Store) Summaries(ctx context.Context) ([]models.SessionSummary, error) {
	database, err := db.Get()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		WITH events AS (
			SELECT
				CAST(sessionId AS VARCHAR) as session_id,
				name,
				status,
				timestamp,
				ROW_NUMBER() OVER (PARTITION BY sessionId ORDER BY timestamp DESC) as rn
			FROM read_json('%s',
				format = 'newline_delimited',
				union_by_name = true,
				filename = true
			)
			WHERE sessionId IS NOT NULL
		)
		SELECT
			session_id,
			MAX(name) as display_name,
			COUNT(*) as step_count,
			MAX(timestamp) as last_updated,
			MIN(CASE WHEN rn = 1 THEN status END) as last_status
		FROM events
		GROUP BY session_id
		ORDER BY MAX(timestamp) DESC
		LIMIT %d
	`, s.glob, s.limit)

	rows, err := database.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute summaries query: %w", err)
	}
	defer rows.Close()

	var summaries []models.SessionSummary
	for rows.Next() {
		var (
			id          string
			displayName sql.NullString
			stepCount   int
			lastUpdated sql.NullString
			lastStatus  sql.NullString
		)
		if err := rows.Scan(&id, &displayName, &stepCount, &lastUpdated, &lastStatus); err != nil {
			continue
		}
		summaries = append(summaries, shapeSummary(id, displayName, stepCount, lastUpdated, lastStatus))
	}

	return summaries, rows.Err()
}

// Steps returns the recorded steps of one session in timestamp order.
func (s *Store) Steps(ctx context.Context, sessionID string) ([]models.Step, error) {
	database, err := db.Get()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			COALESCE(step, 0) as step,
			COALESCE(title, '') as title,
			CAST(status AS VARCHAR) as status,
			timestamp
		FROM read_json('%s',
			format = 'newline_delimited',
			union_by_name = true,
			filename = true
		)
		WHERE CAST(sessionId AS VARCHAR) = ?
		ORDER BY timestamp ASC
	`, s.glob)

	rows, err := database.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute steps query: %w", err)
	}
	defer rows.Close()

	var steps []models.Step
	for rows.Next() {
		var (
			index     int
			title     sql.NullString
			status    sql.NullString
			timestamp sql.NullString
		)
		if err := rows.Scan(&index, &title, &status, &timestamp); err != nil {
			continue
		}
		step := models.Step{
			Index:     index,
			Status:    normalizeStatus(status),
			Timestamp: parseTimestamp(timestamp),
		}
		if title.Valid && title.String != "" {
			step.Title = title.String
		} else {
			step.Title = fmt.Sprintf("Step %d", index)
		}
		if step.Index == 0 {
			step.Index = len(steps) + 1
		}
		steps = append(steps, step)
	}

	return steps, rows.Err()
}

// shapeSummary builds a SessionSummary from scanned columns, filling
// the gaps a sparse log leaves.
func shapeSummary(id string, name sql.NullString, stepCount int, lastUpdated, lastStatus sql.NullString) models.SessionSummary {
	summary := models.SessionSummary{
		ID:          id,
		DisplayName: "Untitled session",
		StepCount:   stepCount,
		LastUpdated: parseTimestamp(lastUpdated),
		Status:      normalizeStatus(lastStatus),
	}
	if name.Valid && name.String != "" {
		summary.DisplayName = name.String
	}
	return summary
}

// parseTimestamp converts an RFC3339 column to local time, falling
// back to the current time the way the rest of the listing does.
func parseTimestamp(v sql.NullString) time.Time {
	if v.Valid {
		if t, err := time.Parse(time.RFC3339, v.String); err == nil {
			return t.Local()
		}
	}
	return time.Now()
}

// normalizeStatus keeps the raw state string; only empty and NULL
// collapse to "active", the state of a session still writing events.
func normalizeStatus(v sql.NullString) models.Status {
	if !v.Valid || v.String == "" {
		return models.StatusActive
	}
	return models.Status(v.String)
}
