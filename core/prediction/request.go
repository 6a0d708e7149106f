package prediction

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kilianp07/hotelprice/core/model"
	"github.com/kilianp07/hotelprice/core/pricing"
)

// Request field names.
const (
	FieldHotelID        = "hotelId"
	FieldRating         = "rating"
	FieldReviewsCount   = "reviewsCount"
	FieldAvgDistance    = "avgDistance"
	FieldAmenitiesCount = "amenitiesCount"
	FieldCheckInDate    = "checkInDate"
)

// Request is a parsed prediction request.
type Request struct {
	HotelID  string
	Features model.FeatureVector
}

// ParseRequest resolves raw into a Request, applying the documented defaults
// for absent or null fields. today is used when checkInDate is absent.
func ParseRequest(raw map[string]any, today time.Time) (Request, error) {
	req := Request{Features: model.DefaultFeatures(today)}
	var err error
	if req.HotelID, err = parseHotelID(raw[FieldHotelID]); err != nil {
		return Request{}, err
	}
	if v, ok := present(raw, FieldRating); ok {
		if req.Features.Rating, err = parseFloat(FieldRating, v); err != nil {
			return Request{}, err
		}
	}
	if v, ok := present(raw, FieldReviewsCount); ok {
		if req.Features.ReviewsCount, err = parseInt(FieldReviewsCount, v); err != nil {
			return Request{}, err
		}
	}
	if v, ok := present(raw, FieldAvgDistance); ok {
		if req.Features.AvgDistance, err = parseFloat(FieldAvgDistance, v); err != nil {
			return Request{}, err
		}
	}
	if v, ok := present(raw, FieldAmenitiesCount); ok {
		if req.Features.AmenitiesCount, err = parseInt(FieldAmenitiesCount, v); err != nil {
			return Request{}, err
		}
	}
	if v, ok := present(raw, FieldCheckInDate); ok {
		if req.Features.CheckInDate, err = parseDate(FieldCheckInDate, v); err != nil {
			return Request{}, err
		}
	}
	if err := checkDomain(req.Features); err != nil {
		return Request{}, err
	}
	return req, nil
}

func present(raw map[string]any, key string) (any, bool) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func parseHotelID(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	default:
		return "", &pricing.ValidationError{Field: FieldHotelID, Reason: fmt.Sprintf("expected string, got %T", v)}
	}
}

func parseFloat(field string, v any) (float64, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		p, err := x.Float64()
		if err != nil {
			return 0, &pricing.ValidationError{Field: field, Reason: "not a number", Err: err}
		}
		f = p
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, &pricing.ValidationError{Field: field, Reason: "not a number", Err: err}
		}
		f = p
	default:
		return 0, &pricing.ValidationError{Field: field, Reason: fmt.Sprintf("expected number, got %T", v)}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &pricing.ValidationError{Field: field, Reason: "must be finite"}
	}
	return f, nil
}

// parseInt accepts integer literals and truncates fractional JSON numbers
// toward zero.
func parseInt(field string, v any) (int, error) {
	if s, ok := v.(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, &pricing.ValidationError{Field: field, Reason: "not an integer", Err: err}
		}
		return n, nil
	}
	f, err := parseFloat(field, v)
	if err != nil {
		return 0, err
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, &pricing.ValidationError{Field: field, Reason: "out of range"}
	}
	return int(f), nil
}

func parseDate(field string, v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, &pricing.ParseError{Field: field, Value: fmt.Sprint(v)}
	}
	t, err := model.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &pricing.ParseError{Field: field, Value: s, Err: err}
	}
	return t, nil
}

func checkDomain(f model.FeatureVector) error {
	switch {
	case f.Rating < 0 || f.Rating > 5:
		return &pricing.ValidationError{Field: FieldRating, Reason: "must be within [0,5]"}
	case f.ReviewsCount < 0:
		return &pricing.ValidationError{Field: FieldReviewsCount, Reason: "must be non-negative"}
	case f.AvgDistance < 0:
		return &pricing.ValidationError{Field: FieldAvgDistance, Reason: "must be non-negative"}
	case f.AmenitiesCount < 0:
		return &pricing.ValidationError{Field: FieldAmenitiesCount, Reason: "must be non-negative"}
	}
	return nil
}
