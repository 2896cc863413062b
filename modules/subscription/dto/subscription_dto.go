package dto

// SubscriptionFilter is one opening filter in a subscription request.
type SubscriptionFilter struct {
	Weekdays     []int   `json:"weekdays"`
	MinStartHour float64 `json:"min_start_hour"`
	MaxEndHour   float64 `json:"max_end_hour"`
	HourLength   int     `json:"length"`
}

// SubscriptionRequest replaces every filter stored for the email.
type SubscriptionRequest struct {
	Email   string               `json:"email"`
	Filters []SubscriptionFilter `json:"filters"`
}

type UnsubscribeResponse struct {
	Email string `json:"email"`
}
