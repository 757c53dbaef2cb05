package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agentdeck/agentdeck/pkg/models"
)

func ns(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func TestShapeSummary(t *testing.T) {
	got := shapeSummary("s1", ns("Build pipeline"), 3, ns("2024-03-05T14:07:00Z"), ns("active"))

	assert.Equal(t, "s1", got.ID)
	assert.Equal(t, "Build pipeline", got.DisplayName)
	assert.Equal(t, 3, got.StepCount)
	assert.Equal(t, models.StatusActive, got.Status)

	want := time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC).Local()
	assert.True(t, got.LastUpdated.Equal(want))
}

func TestShapeSummaryFillsGaps(t *testing.T) {
	got := shapeSummary("s2", sql.NullString{}, 0, sql.NullString{}, sql.NullString{})

	assert.Equal(t, "Untitled session", got.DisplayName)
	assert.Equal(t, models.StatusActive, got.Status, "a session with no status column is still running")
	assert.False(t, got.LastUpdated.IsZero())
}

func TestParseTimestamp(t *testing.T) {
	got := parseTimestamp(ns("2024-03-05T14:07:00+02:00"))
	want := time.Date(2024, time.March, 5, 12, 7, 0, 0, time.UTC)
	assert.True(t, got.Equal(want))

	// Garbage and NULL both fall back to now rather than a zero time.
	assert.False(t, parseTimestamp(ns("not-a-timestamp")).IsZero())
	assert.False(t, parseTimestamp(sql.NullString{}).IsZero())
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, models.StatusActive, normalizeStatus(sql.NullString{}))
	assert.Equal(t, models.StatusActive, normalizeStatus(ns("")))
	assert.Equal(t, models.StatusCompleted, normalizeStatus(ns("completed")))
	assert.Equal(t, models.StatusError, normalizeStatus(ns("error")))

	// Unknown states pass through untouched; the UI decides the
	// fallback treatment.
	assert.Equal(t, models.Status("paused"), normalizeStatus(ns("paused")))
}

func TestNewDefaults(t *testing.T) {
	s := New("/tmp/sessions", 0)
	assert.Equal(t, 100, s.limit)
	assert.Contains(t, s.glob, "*.jsonl")

	s = New("/tmp/sessions", 25)
	assert.Equal(t, 25, s.limit)
}
