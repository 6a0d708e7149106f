package events

import "time"

// Outcome values carried by PredictionEvent.
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeInternal = "error"
)

// PredictionEvent is published once per prediction request.
type PredictionEvent struct {
	RequestID string
	HotelID   string
	// Model is the name of the pricing model that produced BasePrice.
	Model     string
	Fallback  bool
	Outcome   string
	BasePrice int64
	CheckIn   time.Time
	Duration  time.Duration
	Time      time.Time
}
