package prediction

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/kilianp07/hotelprice/core/logger"
	coreprediction "github.com/kilianp07/hotelprice/core/prediction"
)

// RouterConfig tunes the HTTP surface.
type RouterConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigins    []string
	// Metrics, when set, is mounted on /metrics.
	Metrics http.Handler
}

// NewRouter wires the prediction endpoints and middleware.
func NewRouter(p coreprediction.Predictor, cfg RouterConfig, log logger.Logger) http.Handler {
	log = logger.OrNop(log)
	mux := http.NewServeMux()
	health := NewHealthHandler(p)
	mux.Handle("GET /{$}", health)
	mux.Handle("GET /healthz", health)
	mux.Handle("POST /predict", RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)(NewPredictHandler(p, log)))
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})

	var h http.Handler = mux
	h = Recover(log)(h)
	h = AccessLog(log)(h)
	h = RequestID(h)
	return c.Handler(h)
}
