// Package infra contains technical adapters: the model artifact store,
// metrics exporters, quote announcements over MQTT, error monitoring and
// logging. These packages depend only on the interfaces defined in the core
// packages and on config.
package infra
