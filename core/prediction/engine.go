package prediction

import (
	"context"

	"github.com/kilianp07/hotelprice/core/model"
)

// Result is a complete prediction. It is never partially populated.
type Result struct {
	HotelID     string
	BasePrice   int64
	Predictions model.PredictedSeries
	// Model names the pricing model that produced BasePrice.
	Model string
	// Fallback is true when the learned model failed and the rule-based
	// formula was used for this request.
	Fallback bool
}

// Predictor produces price predictions.
type Predictor interface {
	// Predict parses raw request fields and returns the prediction.
	Predict(ctx context.Context, raw map[string]any) (Result, error)
	// ModelLoaded reports whether the learned model is active.
	ModelLoaded() bool
}

type requestIDKey struct{}

// WithRequestID attaches a request identifier to ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the identifier attached by WithRequestID, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
