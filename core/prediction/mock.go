package prediction

import (
	"context"
	"sync"
)

// MockPredictor returns a configured result or error and records the raw
// requests it received.
type MockPredictor struct {
	Result Result
	Err    error
	Loaded bool
	// Panic, when set, is raised from Predict.
	Panic any

	mu       sync.Mutex
	requests []map[string]any
}

// Predict returns the configured result.
func (m *MockPredictor) Predict(_ context.Context, raw map[string]any) (Result, error) {
	m.mu.Lock()
	m.requests = append(m.requests, raw)
	m.mu.Unlock()
	if m.Panic != nil {
		panic(m.Panic)
	}
	if m.Err != nil {
		return Result{}, m.Err
	}
	return m.Result, nil
}

// ModelLoaded returns the configured flag.
func (m *MockPredictor) ModelLoaded() bool { return m.Loaded }

// Requests returns a copy of the raw requests seen so far.
func (m *MockPredictor) Requests() []map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]map[string]any, len(m.requests))
	copy(cp, m.requests)
	return cp
}
