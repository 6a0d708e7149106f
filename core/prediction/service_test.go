package prediction

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/hotelprice/core/events"
	"github.com/kilianp07/hotelprice/core/model"
	"github.com/kilianp07/hotelprice/core/pricing"
)

type recordingPublisher struct {
	mu  sync.Mutex
	evs []events.PredictionEvent
}

func (r *recordingPublisher) Publish(ev events.PredictionEvent) {
	r.mu.Lock()
	r.evs = append(r.evs, ev)
	r.mu.Unlock()
}

type fixedRegressor struct {
	price float64
	err   error
}

func (f fixedRegressor) Name() string { return "fixed" }
func (f fixedRegressor) Predict(in []float64) (float64, error) {
	if len(in) != 4 {
		return 0, errors.New("bad shape")
	}
	return f.price, f.err
}

func clock() time.Time { return today }

func TestService_RuleBasedExample(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(pricing.RuleBased(), WithClock(clock), WithPublisher(pub))
	assert.False(t, svc.ModelLoaded())

	ctx := WithRequestID(context.Background(), "req-1")
	res, err := svc.Predict(ctx, map[string]any{
		"hotelId": "hotel-123", "rating": 4.5, "reviewsCount": 1000.0,
		"avgDistance": 0.5, "amenitiesCount": 15.0, "checkInDate": "2024-06-15",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1909893), res.BasePrice)
	assert.Equal(t, "rule_based", res.Model)
	assert.False(t, res.Fallback)
	require.Len(t, res.Predictions, pricing.HorizonDays)
	assert.Equal(t, "2024-06-15", res.Predictions[0].Date.Format(model.DateLayout))
	assert.Equal(t, pricing.Generate("hotel-123", 1909893, res.Predictions[0].Date), res.Predictions)

	require.Len(t, pub.evs, 1)
	assert.Equal(t, "req-1", pub.evs[0].RequestID)
	assert.Equal(t, events.OutcomeSuccess, pub.evs[0].Outcome)
	assert.Equal(t, int64(1909893), pub.evs[0].BasePrice)
}

func TestService_DefaultsUseToday(t *testing.T) {
	svc := NewService(pricing.RuleBased(), WithClock(clock))
	res, err := svc.Predict(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, int64(562500), res.BasePrice)
	assert.Equal(t, "2024-03-06", res.Predictions[0].Date.Format(model.DateLayout))
	assert.Equal(t, int64(548003), res.Predictions[0].Price)
}

func TestService_Learned(t *testing.T) {
	svc := NewService(pricing.Learned(fixedRegressor{price: 1200000.4}), WithClock(clock))
	assert.True(t, svc.ModelLoaded())
	res, err := svc.Predict(context.Background(), map[string]any{"checkInDate": "2024-06-15"})
	require.NoError(t, err)
	assert.Equal(t, int64(1200000), res.BasePrice)
	assert.Equal(t, "fixed", res.Model)
	assert.False(t, res.Fallback)
}

func TestService_LearnedFailureFallsBack(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(pricing.Learned(fixedRegressor{err: errors.New("numeric error")}), WithClock(clock), WithPublisher(pub))
	res, err := svc.Predict(context.Background(), map[string]any{
		"rating": 4.5, "reviewsCount": 1000.0, "avgDistance": 0.5, "amenitiesCount": 15.0, "checkInDate": "2024-06-15",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1909893), res.BasePrice)
	assert.Equal(t, "rule_based", res.Model)
	assert.True(t, res.Fallback)
	require.Len(t, pub.evs, 1)
	assert.True(t, pub.evs[0].Fallback)
}

func TestService_InvalidRequest(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(pricing.RuleBased(), WithPublisher(pub))
	res, err := svc.Predict(context.Background(), map[string]any{"hotelId": "h", "checkInDate": "tomorrow"})
	var perr *pricing.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Empty(t, res.Predictions)
	assert.Zero(t, res.BasePrice)
	require.Len(t, pub.evs, 1)
	assert.Equal(t, events.OutcomeInvalid, pub.evs[0].Outcome)
	assert.Equal(t, "h", pub.evs[0].HotelID)
}

func TestService_PredictRequest(t *testing.T) {
	svc := NewService(pricing.RuleBased(), WithClock(clock))
	res, err := svc.PredictRequest(context.Background(), Request{HotelID: "x", Features: model.FeatureVector{AvgDistance: 1, AmenitiesCount: 5}})
	require.NoError(t, err)
	assert.Equal(t, int64(562500), res.BasePrice)

	_, err = svc.PredictRequest(context.Background(), Request{Features: model.FeatureVector{Rating: 9}})
	assert.Error(t, err)
}

func TestService_Concurrent(t *testing.T) {
	svc := NewService(pricing.RuleBased(), WithClock(clock))
	want, err := svc.Predict(context.Background(), map[string]any{"hotelId": "h"})
	require.NoError(t, err)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.Predict(context.Background(), map[string]any{"hotelId": "h"})
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
