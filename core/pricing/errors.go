package pricing

import "fmt"

// ValidationError reports a malformed or out-of-domain request field.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ParseError reports a date string that is not in YYYY-MM-DD form.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s %q: expected YYYY-MM-DD", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ModelInferenceError is produced when the learned model fails on an input.
// It never reaches a client: the estimator falls back to the rule-based
// formula and reports it to the caller-supplied hook.
type ModelInferenceError struct {
	Model string
	Err   error
}

func (e *ModelInferenceError) Error() string {
	return fmt.Sprintf("model %s inference failed: %v", e.Model, e.Err)
}

func (e *ModelInferenceError) Unwrap() error { return e.Err }
