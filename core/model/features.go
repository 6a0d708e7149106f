package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// Default attribute values applied when a request omits a field.
const (
	DefaultRating         = 0.0
	DefaultReviewsCount   = 0
	DefaultAvgDistance    = 1.0
	DefaultAmenitiesCount = 5
)

// FeatureVector holds the normalized hotel attributes used by both pricing
// strategies. Values are copied, never shared.
type FeatureVector struct {
	Rating         float64   // guest rating in [0,5]
	ReviewsCount   int       // number of reviews
	AvgDistance    float64   // average distance to points of interest in km
	AmenitiesCount int       // number of listed amenities
	CheckInDate    time.Time // calendar date at UTC midnight
}

// DefaultFeatures returns a FeatureVector populated with the documented
// defaults and the given check-in date.
func DefaultFeatures(checkIn time.Time) FeatureVector {
	return FeatureVector{
		Rating:         DefaultRating,
		ReviewsCount:   DefaultReviewsCount,
		AvgDistance:    DefaultAvgDistance,
		AmenitiesCount: DefaultAmenitiesCount,
		CheckInDate:    TruncateDate(checkIn),
	}
}

// Validate checks that every attribute lies inside its domain.
func (f FeatureVector) Validate() error {
	if f.Rating < 0 || f.Rating > 5 {
		return fmt.Errorf("rating %v outside [0,5]", f.Rating)
	}
	if f.ReviewsCount < 0 {
		return fmt.Errorf("reviewsCount must be non-negative")
	}
	if f.AvgDistance < 0 {
		return fmt.Errorf("avgDistance must be non-negative")
	}
	if f.AmenitiesCount < 0 {
		return fmt.Errorf("amenitiesCount must be non-negative")
	}
	if f.CheckInDate.IsZero() {
		return fmt.Errorf("checkInDate is required")
	}
	return nil
}

// Inputs returns the ordered numeric tuple fed to a learned regressor. The
// check-in date is deliberately absent.
func (f FeatureVector) Inputs() []float64 {
	return []float64{f.Rating, float64(f.ReviewsCount), f.AvgDistance, float64(f.AmenitiesCount)}
}

// TruncateDate drops the clock part of t and pins it to UTC so that date
// arithmetic never crosses a DST boundary.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
