package dto

import "time"

// OpeningResponse is one bookable window as served by GET /openings.
type OpeningResponse struct {
	Court      int       `json:"court"`
	Datetime   time.Time `json:"datetime"`
	Weekday    int       `json:"weekday"`
	HourLength int       `json:"hour_length"`
	StartHour  float64   `json:"start_hour"`
	EndHour    float64   `json:"end_hour"`
	URLs       []string  `json:"urls"`
}
