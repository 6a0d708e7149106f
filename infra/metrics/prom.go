package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/hotelprice/core/metrics"
)

// PromSink records prediction activity in Prometheus metrics.
type PromSink struct {
	predictions *prometheus.CounterVec
	fallbacks   prometheus.Counter
	basePrice   prometheus.Histogram
	duration    *prometheus.HistogramVec
	modelActive *prometheus.GaugeVec
}

// NewPromSink registers prediction metrics on the default Prometheus registerer.
// The /metrics endpoint is served separately, see StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	predictions, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_predictions_total",
		Help: "Total number of price prediction requests",
	}, []string{"model", "outcome"}))
	if err != nil {
		return nil, err
	}
	fallbacks, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "price_model_fallbacks_total",
		Help: "Learned model failures answered with rule-based pricing",
	}))
	if err != nil {
		return nil, err
	}
	basePrice, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "price_base_price",
		Help:    "Distribution of estimated base prices in the smallest currency unit",
		Buckets: prometheus.ExponentialBuckets(100000, 1.5, 12),
	}))
	if err != nil {
		return nil, err
	}
	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "price_prediction_duration_seconds",
		Help:    "Time spent producing a prediction",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"}))
	if err != nil {
		return nil, err
	}
	modelActive, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "price_model_loaded",
		Help: "1 when the learned model is active, 0 when rule-based pricing is used",
	}, []string{"model"}))
	if err != nil {
		return nil, err
	}
	return &PromSink{
		predictions: predictions,
		fallbacks:   fallbacks,
		basePrice:   basePrice,
		duration:    duration,
		modelActive: modelActive,
	}, nil
}

// register adds c to reg, reusing an identical collector registered earlier.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPrediction updates counters and histograms for one request.
func (s *PromSink) RecordPrediction(rec coremetrics.PredictionRecord) error {
	s.predictions.WithLabelValues(rec.Model, rec.Outcome).Inc()
	if rec.Fallback {
		s.fallbacks.Inc()
	}
	if rec.Outcome == "success" {
		s.basePrice.Observe(float64(rec.BasePrice))
	}
	s.duration.WithLabelValues(rec.Outcome).Observe(rec.Duration.Seconds())
	return nil
}

// RecordModelStatus sets the loaded gauge for the active model.
func (s *PromSink) RecordModelStatus(name string, learned bool) error {
	v := 0.0
	if learned {
		v = 1
	}
	s.modelActive.WithLabelValues(name).Set(v)
	return nil
}
