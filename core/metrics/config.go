package metrics

import "github.com/kilianp07/hotelprice/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusAddress serves /metrics on a dedicated listener. When empty,
	// /metrics is mounted on the main HTTP server.
	PrometheusAddress string `json:"prometheus_address"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	for i := range c.Sinks {
		if c.Sinks[i].Conf == nil {
			c.Sinks[i].Conf = map[string]any{}
		}
	}
}

// HasSink reports whether a sink of the given type is configured.
func (c Config) HasSink(typ string) bool {
	for _, s := range c.Sinks {
		if s.Type == typ {
			return true
		}
	}
	return false
}
