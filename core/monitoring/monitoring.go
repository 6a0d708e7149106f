package monitoring

import (
	"sync/atomic"
	"time"
)

// Monitor defines methods used for error reporting.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	// CapturePanic records a value obtained from recover().
	CapturePanic(v any)
	Flush(timeout time.Duration)
}

type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) CapturePanic(any)                          {}
func (NopMonitor) Flush(time.Duration)                       {}

type holder struct{ m Monitor }

var current atomic.Value

func init() { current.Store(holder{NopMonitor{}}) }

// Init sets the global monitor implementation. It is called once during
// startup; a nil monitor is ignored.
func Init(m Monitor) {
	if m != nil {
		current.Store(holder{m})
	}
}

// Current returns the installed monitor.
func Current() Monitor { return current.Load().(holder).m }

// CaptureException records the error with optional tags.
func CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	Current().CaptureException(err, tags)
}

// CapturePanic records a recovered panic value.
func CapturePanic(v any) {
	if v != nil {
		Current().CapturePanic(v)
	}
}

// Flush flushes buffered events.
func Flush(d time.Duration) { Current().Flush(d) }
