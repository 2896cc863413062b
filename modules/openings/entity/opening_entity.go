package entity

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

// HalfHourSlot is one bookable half-hour instant reported by the widget for
// one court. Slots only live for the duration of a single scan run.
type HalfHourSlot struct {
	Court    int
	Datetime time.Time
}

// Opening is a contiguous bookable window for one court, 1-3 hours long,
// aligned to the half-hour grid. Weekday, StartHour and EndHour are derived
// from Datetime and HourLength; URLs are derived booking deep links and are
// excluded from opening identity.
type Opening struct {
	Court      int            `db:"court" json:"court"`
	Datetime   time.Time      `db:"datetime" json:"datetime"`
	Weekday    int            `db:"weekday" json:"weekday"`
	HourLength int            `db:"hour_length" json:"hour_length"`
	StartHour  float64        `db:"start_hour" json:"start_hour"`
	EndHour    float64        `db:"end_hour" json:"end_hour"`
	URLs       pq.StringArray `db:"urls" json:"urls"`
}

// NewOpening builds an Opening with all derived fields populated.
// Weekday is 1 (Monday) through 7 (Sunday).
func NewOpening(court int, start time.Time, hourLength int) Opening {
	weekday := int(start.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	startHour := float64(start.Hour()) + float64(start.Minute())/60

	return Opening{
		Court:      court,
		Datetime:   start,
		Weekday:    weekday,
		HourLength: hourLength,
		StartHour:  startHour,
		EndHour:    startHour + float64(hourLength),
	}
}

// IsWeekend reports whether the opening falls on Saturday or Sunday.
func (o Opening) IsWeekend() bool {
	return o.Weekday == 6 || o.Weekday == 7
}

// End returns the instant the opening finishes.
func (o Opening) End() time.Time {
	return o.Datetime.Add(time.Duration(o.HourLength) * time.Hour)
}

// Key identifies an opening for diffing. Every field except the derived URLs
// participates.
func (o Opening) Key() string {
	return fmt.Sprintf("%d|%s|%d|%d|%g|%g",
		o.Court, o.Datetime.Format("2006-01-02 15:04"), o.Weekday, o.HourLength, o.StartHour, o.EndHour)
}
