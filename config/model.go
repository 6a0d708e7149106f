package config

import (
	"fmt"
	"net/url"
)

// ModelConfig locates the optional learned model artifact. When neither Path
// nor URL resolves to a loadable artifact the service prices with rules.
type ModelConfig struct {
	// Path is a local JSON artifact produced by `hotelprice export-model`.
	Path string `json:"path"`
	// URL, when set, takes precedence over Path and is fetched once at startup.
	URL                    string `json:"url"`
	FetchTimeoutSeconds    int    `json:"fetch_timeout_seconds"`
	FetchMaxElapsedSeconds int    `json:"fetch_max_elapsed_seconds"`
}

// SetDefaults applies sane defaults.
func (c *ModelConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "models/hotel_price_model.json"
	}
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = 5
	}
	if c.FetchMaxElapsedSeconds <= 0 {
		c.FetchMaxElapsedSeconds = 30
	}
}

// Validate checks the artifact URL.
func (c ModelConfig) Validate() error {
	if c.URL == "" {
		return nil
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("model.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("model.url: unsupported scheme %q", u.Scheme)
	}
	return nil
}
