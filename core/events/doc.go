// Package events defines the pricing events emitted on the event bus.
//
// Available event types:
//   - PredictionEvent: a completed (or rejected) price prediction
package events
