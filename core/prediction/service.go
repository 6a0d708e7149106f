package prediction

import (
	"context"
	"errors"
	"time"

	"github.com/kilianp07/hotelprice/core/events"
	"github.com/kilianp07/hotelprice/core/logger"
	"github.com/kilianp07/hotelprice/core/model"
	"github.com/kilianp07/hotelprice/core/monitoring"
	"github.com/kilianp07/hotelprice/core/pricing"
)

// Publisher receives one event per prediction request.
type Publisher interface {
	Publish(events.PredictionEvent)
}

// Service implements Predictor on top of a fixed pricing model.
type Service struct {
	model pricing.PricingModel
	log   logger.Logger
	pub   Publisher
	now   func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = logger.OrNop(l) } }

// WithPublisher sets the event publisher.
func WithPublisher(p Publisher) Option { return func(s *Service) { s.pub = p } }

// WithClock overrides the clock used for the default check-in date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService returns a Service bound to m for its whole lifetime.
func NewService(m pricing.PricingModel, opts ...Option) *Service {
	s := &Service{model: m, log: logger.NopLogger{}, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ModelLoaded reports whether the learned model is active.
func (s *Service) ModelLoaded() bool { return s.model.IsLearned() }

// Model returns the active pricing model.
func (s *Service) Model() pricing.PricingModel { return s.model }

// Predict parses raw and runs the prediction.
func (s *Service) Predict(ctx context.Context, raw map[string]any) (Result, error) {
	start := time.Now()
	req, err := ParseRequest(raw, s.now())
	if err != nil {
		hotelID, _ := raw[FieldHotelID].(string)
		s.publish(ctx, events.PredictionEvent{
			HotelID:  hotelID,
			Model:    s.model.Name(),
			Outcome:  outcomeFor(err),
			Duration: time.Since(start),
		})
		return Result{}, err
	}
	return s.predict(ctx, req, start), nil
}

// PredictRequest runs the prediction for an already parsed request.
func (s *Service) PredictRequest(ctx context.Context, req Request) (Result, error) {
	if err := checkDomain(req.Features); err != nil {
		return Result{}, err
	}
	if req.Features.CheckInDate.IsZero() {
		req.Features.CheckInDate = model.TruncateDate(s.now())
	}
	return s.predict(ctx, req, time.Now()), nil
}

func (s *Service) predict(ctx context.Context, req Request, start time.Time) Result {
	est := pricing.EstimateBasePrice(req.Features, s.model)
	if est.Fallback != nil {
		s.log.Warnf("learned model failed for hotel %q, using rule-based price: %v", req.HotelID, est.Fallback)
		monitoring.CaptureException(est.Fallback, map[string]string{
			"model":      s.model.Name(),
			"request_id": RequestID(ctx),
		})
	}
	modelName := s.model.Name()
	if est.Strategy == pricing.StrategyRuleBased {
		modelName = pricing.StrategyRuleBased.String()
	}
	res := Result{
		HotelID:     req.HotelID,
		BasePrice:   est.Price,
		Predictions: pricing.Generate(req.HotelID, est.Price, req.Features.CheckInDate),
		Model:       modelName,
		Fallback:    est.Fallback != nil,
	}
	s.log.Debugw("prediction", map[string]any{
		"request_id": RequestID(ctx),
		"hotel_id":   req.HotelID,
		"model":      res.Model,
		"base_price": res.BasePrice,
		"check_in":   req.Features.CheckInDate.Format(model.DateLayout),
	})
	s.publish(ctx, events.PredictionEvent{
		HotelID:   req.HotelID,
		Model:     res.Model,
		Fallback:  res.Fallback,
		Outcome:   events.OutcomeSuccess,
		BasePrice: res.BasePrice,
		CheckIn:   req.Features.CheckInDate,
		Duration:  time.Since(start),
	})
	return res
}

func (s *Service) publish(ctx context.Context, ev events.PredictionEvent) {
	if s.pub == nil {
		return
	}
	ev.RequestID = RequestID(ctx)
	ev.Time = time.Now()
	s.pub.Publish(ev)
}

func outcomeFor(err error) string {
	var verr *pricing.ValidationError
	var perr *pricing.ParseError
	if errors.As(err, &verr) || errors.As(err, &perr) {
		return events.OutcomeInvalid
	}
	return events.OutcomeInternal
}
