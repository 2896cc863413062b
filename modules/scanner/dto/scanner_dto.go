package dto

import "time"

// ScanStatus summarizes the most recent scan run.
type ScanStatus struct {
	RunID       string    `json:"run_id"`
	Status      string    `json:"status"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Slots       int       `json:"slots"`
	Openings    int       `json:"openings"`
	NewOpenings int       `json:"new_openings"`
	EmailsSent  int       `json:"emails_sent"`
	Error       string    `json:"error,omitempty"`
}

const (
	ScanStatusOK      = "ok"
	ScanStatusFailed  = "failed"
	ScanStatusSkipped = "skipped"
)

type EnqueueScanResponse struct {
	Enqueued bool `json:"enqueued"`
}
