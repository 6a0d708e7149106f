package metrics

import "time"

// PredictionRecord describes one prediction request for observability
// purposes. It carries the base price only, never the daily series.
type PredictionRecord struct {
	RequestID string
	HotelID   string
	Model     string
	Fallback  bool
	Outcome   string
	BasePrice int64
	Duration  time.Duration
	Time      time.Time
}

// MetricsSink records prediction activity.
type MetricsSink interface {
	RecordPrediction(rec PredictionRecord) error
}

// ModelStatusRecorder records which pricing model is active.
type ModelStatusRecorder interface {
	RecordModelStatus(name string, learned bool) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordPrediction(PredictionRecord) error { return nil }
func (NopSink) RecordModelStatus(string, bool) error    { return nil }

// MultiSink fans out records to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPrediction forwards the record to all sinks, returning the first
// error encountered after every sink has been called.
func (m *MultiSink) RecordPrediction(rec PredictionRecord) error {
	var first error
	for _, s := range m.Sinks {
		if err := s.RecordPrediction(rec); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// RecordModelStatus forwards to sinks that support it.
func (m *MultiSink) RecordModelStatus(name string, learned bool) error {
	var first error
	for _, s := range m.Sinks {
		if r, ok := s.(ModelStatusRecorder); ok {
			if err := r.RecordModelStatus(name, learned); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}
