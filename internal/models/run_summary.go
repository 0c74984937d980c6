package models

import "time"

// RunSummary describes the outcome of one ingestion run
type RunSummary struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	Requests   int           `json:"requests"`
	Records    int           `json:"records"`
	Batches    int           `json:"batches"`
	OutputPath string        `json:"output_path"`
	Applied    bool          `json:"applied"`
	ApplyError string        `json:"apply_error,omitempty"`
	Cancelled  bool          `json:"cancelled"`
}
