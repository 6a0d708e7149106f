// Package metrics defines the sink interfaces used to record pricing
// activity. Concrete sinks (Prometheus, InfluxDB) live in infra/metrics and
// register themselves in the sink registry; NewMetricsSink returns a
// MultiSink automatically when several sinks are configured.
package metrics
