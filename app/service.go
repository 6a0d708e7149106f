package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	api "github.com/kilianp07/hotelprice/api/prediction"
	"github.com/kilianp07/hotelprice/config"
	"github.com/kilianp07/hotelprice/core/events"
	coremetrics "github.com/kilianp07/hotelprice/core/metrics"
	coremon "github.com/kilianp07/hotelprice/core/monitoring"
	"github.com/kilianp07/hotelprice/core/prediction"
	"github.com/kilianp07/hotelprice/core/pricing"
	"github.com/kilianp07/hotelprice/infra/logger"
	"github.com/kilianp07/hotelprice/infra/metrics"
	"github.com/kilianp07/hotelprice/infra/modelstore"
	"github.com/kilianp07/hotelprice/infra/monitoring"
	"github.com/kilianp07/hotelprice/infra/mqtt"
	"github.com/kilianp07/hotelprice/internal/eventbus"
)

const shutdownTimeout = 5 * time.Second

// Service wires the prediction API, its model and observability sinks.
type Service struct {
	cfg       *config.Config
	log       logger.Logger
	bus       *eventbus.Bus[events.PredictionEvent]
	sink      coremetrics.MetricsSink
	announcer *mqtt.Announcer
	predictor *prediction.Service
	server    *http.Server
}

// ResolveModel loads the learned model described by cfg, falling back to
// rule-based pricing.
func ResolveModel(ctx context.Context, cfg config.ModelConfig) pricing.PricingModel {
	return modelstore.NewLoader(cfg, logger.New("modelstore")).Resolve(ctx)
}

// New creates a Service from the configuration. The pricing model is
// resolved here, once, and never changes afterwards.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	logger.SetLevel(cfg.Logging.Level)
	log := logger.New("service")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		log.Warnf("sentry disabled: %v", err)
	} else {
		coremon.Init(mon)
	}

	model := ResolveModel(ctx, cfg.Model)

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	if r, ok := sink.(coremetrics.ModelStatusRecorder); ok {
		if err := r.RecordModelStatus(model.Name(), model.IsLearned()); err != nil {
			log.Warnf("record model status: %v", err)
		}
	}

	bus := eventbus.New[events.PredictionEvent]()
	svc := &Service{cfg: cfg, log: log, bus: bus, sink: sink}

	if cfg.Publish.Enabled() {
		a, err := mqtt.NewAnnouncer(cfg.Publish)
		if err != nil {
			log.Errorf("quote announcements disabled: %v", err)
		} else {
			svc.announcer = a
		}
	}

	svc.predictor = prediction.NewService(model,
		prediction.WithLogger(logger.New("prediction")),
		prediction.WithPublisher(bus),
	)

	rc := api.RouterConfig{
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		CORSOrigins:    cfg.Server.CORSOrigins,
	}
	if cfg.Metrics.HasSink("prometheus") && cfg.Metrics.PrometheusAddress == "" {
		rc.Metrics = metrics.Handler()
	}
	svc.server = &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           api.NewRouter(svc.predictor, rc, logger.New("api")),
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}
	return svc, nil
}

// Predictor returns the prediction service.
func (s *Service) Predictor() *prediction.Service { return s.predictor }

// Handler returns the HTTP handler of the API.
func (s *Service) Handler() http.Handler { return s.server.Handler }

// Run listens on the configured address and blocks until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the service on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	collectorDone := metrics.StartEventCollector(ctx, s.bus, s.sink, logger.New("metrics"))
	if s.announcer != nil {
		s.announcer.Run(ctx, s.bus)
	}
	if addr := s.cfg.Metrics.PrometheusAddress; addr != "" && s.cfg.Metrics.HasSink("prometheus") {
		go func() {
			if err := metrics.StartPromServer(ctx, addr, logger.New("metrics")); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("hotel price API listening on %s (learned model: %t)", ln.Addr(), s.predictor.ModelLoaded())
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Infof("shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	cancel()
	<-collectorDone
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.announcer != nil {
		s.announcer.Disconnect()
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	coremon.Flush(2 * time.Second)
	return nil
}
