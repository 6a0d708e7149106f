package modelstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/kilianp07/hotelprice/config"
	"github.com/kilianp07/hotelprice/core/pricing"
	"github.com/kilianp07/hotelprice/infra/logger"
)

// ErrNotFound is returned when no artifact exists at the configured location.
var ErrNotFound = errors.New("model artifact not found")

const maxArtifactBytes = 1 << 20

// Loader resolves the learned model once at startup.
type Loader struct {
	cfg    config.ModelConfig
	client *http.Client
	log    logger.Logger
}

// NewLoader creates a Loader for cfg.
func NewLoader(cfg config.ModelConfig, log logger.Logger) *Loader {
	cfg.SetDefaults()
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Loader{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.FetchTimeoutSeconds) * time.Second},
		log:    log,
	}
}

// Load returns the learned model or an error describing why none is
// available.
func (l *Loader) Load(ctx context.Context) (*LinearModel, error) {
	if l.cfg.URL != "" {
		return l.fetch(ctx, l.cfg.URL)
	}
	return LoadFile(l.cfg.Path)
}

// Resolve returns the process-wide pricing model. Any load failure is logged
// and yields the rule-based variant; it is never fatal.
func (l *Loader) Resolve(ctx context.Context) pricing.PricingModel {
	src := l.cfg.Path
	if l.cfg.URL != "" {
		src = l.cfg.URL
	}
	l.log.Infof("loading model from %s", src)
	m, err := l.Load(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		l.log.Infof("model not found at %s, using rule-based pricing", src)
		return pricing.RuleBased()
	case err != nil:
		l.log.Errorf("error loading model: %v", err)
		return pricing.RuleBased()
	}
	l.log.Infof("model %s loaded successfully", m.Name())
	return pricing.Learned(m)
}

// LoadFile reads an artifact from path.
func LoadFile(path string) (*LinearModel, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(io.LimitReader(f, maxArtifactBytes))
}

func (l *Loader) fetch(ctx context.Context, url string) (*LinearModel, error) {
	var m *LinearModel
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		resp, err := l.client.Do(req)
		if err != nil {
			l.log.Warnf("model fetch failed, retrying: %v", err)
			return fmt.Errorf("HTTP request failed: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()
		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, url))
		case resp.StatusCode >= 500:
			return fmt.Errorf("non-200 status code: %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("non-200 status code: %d", resp.StatusCode))
		}
		dm, err := Decode(io.LimitReader(resp.Body, maxArtifactBytes))
		if err != nil {
			return backoff.Permanent(err)
		}
		m = dm
		return nil
	}

	strategy := backoff.NewExponentialBackOff()
	strategy.InitialInterval = 200 * time.Millisecond
	strategy.MaxElapsedTime = time.Duration(l.cfg.FetchMaxElapsedSeconds) * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(strategy, ctx)); err != nil {
		return nil, fmt.Errorf("fetch model: %w", err)
	}
	return m, nil
}
