package models

import "time"

// Status is the coarse lifecycle state of a session. It is an open
// string: values outside the named constants are still valid and get
// the default visual treatment in the UI.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// SessionSummary is a lightweight descriptor of an agent run
type SessionSummary struct {
	ID          string
	DisplayName string
	LastUpdated time.Time
	StepCount   int
	Status      Status
}

// Step is a single recorded step within a session
type Step struct {
	Index     int
	Title     string
	Status    Status
	Timestamp time.Time
}
