package config

import (
	"fmt"
	"os"
)

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	// Address defaults to ":$PORT", or ":8080" when PORT is unset.
	Address             string `json:"address"`
	ReadTimeoutSeconds  int    `json:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `json:"write_timeout_seconds"`
	// RateLimitRPS caps /predict requests per second; 0 disables limiting.
	RateLimitRPS   float64  `json:"rate_limit_rps"`
	RateLimitBurst int      `json:"rate_limit_burst"`
	CORSOrigins    []string `json:"cors_origins"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		c.Address = ":" + port
	}
	if c.ReadTimeoutSeconds <= 0 {
		c.ReadTimeoutSeconds = 10
	}
	if c.WriteTimeoutSeconds <= 0 {
		c.WriteTimeoutSeconds = 10
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst <= 0 {
		c.RateLimitBurst = int(c.RateLimitRPS) + 1
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("server.rate_limit_rps must be non-negative")
	}
	return nil
}
