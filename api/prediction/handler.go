package prediction

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/kilianp07/hotelprice/core/logger"
	"github.com/kilianp07/hotelprice/core/model"
	"github.com/kilianp07/hotelprice/core/monitoring"
	coreprediction "github.com/kilianp07/hotelprice/core/prediction"
	"github.com/kilianp07/hotelprice/core/pricing"
)

// HealthMessage is reported by the health endpoint.
const HealthMessage = "Hotel price prediction API is running"

// maxBodyBytes bounds the size of a prediction request body.
const maxBodyBytes = 1 << 20

// HealthResponse is the body returned by GET /.
type HealthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	ModelLoaded bool   `json:"model_loaded"`
}

// PredictResponse is the body returned by a successful POST /predict.
type PredictResponse struct {
	Success     bool                  `json:"success"`
	BasePrice   int64                 `json:"basePrice"`
	Predictions model.PredictedSeries `json:"predictions"`
}

// ErrorResponse is the body returned on failure.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewHealthHandler reports liveness and whether the learned model is active.
func NewHealthHandler(p coreprediction.Predictor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{
			Status:      "ok",
			Message:     HealthMessage,
			ModelLoaded: p.ModelLoaded(),
		})
	})
}

// NewPredictHandler returns an HTTP handler serving POST /predict.
func NewPredictHandler(p coreprediction.Predictor, log logger.Logger) http.Handler {
	log = logger.OrNop(log)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := decodeBody(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		res, err := p.Predict(r.Context(), raw)
		if err != nil {
			if isClientError(err) {
				log.Debugf("rejected prediction request %s: %v", coreprediction.RequestID(r.Context()), err)
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Errorf("prediction failed: %v", err)
			monitoring.CaptureException(err, map[string]string{
				"module":     "api",
				"request_id": coreprediction.RequestID(r.Context()),
			})
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, PredictResponse{
			Success:     true,
			BasePrice:   res.BasePrice,
			Predictions: res.Predictions,
		})
	})
}

// decodeBody reads a JSON object. Numbers are kept as json.Number so that
// integer fields are not routed through float64. A null body is treated as an
// empty object.
func decodeBody(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("request body must be a JSON object")
		}
		return nil, errors.New("invalid JSON body: " + err.Error())
	}
	if dec.More() {
		return nil, errors.New("invalid JSON body: trailing data")
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

func isClientError(err error) bool {
	var verr *pricing.ValidationError
	var perr *pricing.ParseError
	return errors.As(err, &verr) || errors.As(err, &perr)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Success: false, Error: msg})
}
