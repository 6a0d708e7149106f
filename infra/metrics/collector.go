package metrics

import (
	"context"

	"github.com/kilianp07/hotelprice/core/events"
	coremetrics "github.com/kilianp07/hotelprice/core/metrics"
	"github.com/kilianp07/hotelprice/core/logger"
	"github.com/kilianp07/hotelprice/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// prediction events. It stops when the context is canceled or the bus closes.
// The returned channel is closed once the collector has exited.
func StartEventCollector(ctx context.Context, bus *eventbus.Bus[events.PredictionEvent], sink coremetrics.MetricsSink, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	log = logger.OrNop(log)
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := sink.RecordPrediction(ToRecord(ev)); err != nil {
					log.Warnf("record prediction: %v", err)
				}
			}
		}
	}()
	return done
}

// ToRecord converts a prediction event into a metrics record.
func ToRecord(ev events.PredictionEvent) coremetrics.PredictionRecord {
	return coremetrics.PredictionRecord{
		RequestID: ev.RequestID,
		HotelID:   ev.HotelID,
		Model:     ev.Model,
		Fallback:  ev.Fallback,
		Outcome:   ev.Outcome,
		BasePrice: ev.BasePrice,
		Duration:  ev.Duration,
		Time:      ev.Time,
	}
}
