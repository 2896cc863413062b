package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Subscription is one notification filter for one email address. An email may
// hold several filters; a POST to /subscriptions replaces them all.
type Subscription struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	Email        string        `db:"email" json:"email"`
	Weekdays     pq.Int64Array `db:"weekdays" json:"weekdays"`
	MinStartHour float64       `db:"min_start_hour" json:"min_start_hour"`
	MaxEndHour   float64       `db:"max_end_hour" json:"max_end_hour"`
	HourLength   int           `db:"hour_length" json:"hour_length"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}

// MatchesWeekday reports whether the filter covers the given weekday
// (1 = Monday … 7 = Sunday).
func (s Subscription) MatchesWeekday(weekday int) bool {
	for _, d := range s.Weekdays {
		if int(d) == weekday {
			return true
		}
	}
	return false
}
