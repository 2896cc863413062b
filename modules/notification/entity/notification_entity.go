package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification records one delivered email in the notification log.
type Notification struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	RunID        string    `db:"run_id" json:"run_id"`
	OpeningCount int       `db:"opening_count" json:"opening_count"`
	SentAt       time.Time `db:"sent_at" json:"sent_at"`
}
