package pricing

import (
	"math"
	"time"

	"github.com/kilianp07/hotelprice/core/model"
)

// Rule-based pricing constants.
const (
	ReferencePrice = 500000.0

	WeekendFactor  = 1.15
	HighSeason     = 1.2
	LowSeason      = 0.9
	maxReviewBoost = 1.3
	minDistance    = 0.8
)

// Weekday returns the day of week with Monday as 0 and Sunday as 6.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekendMultiplier is 1.15 on Friday, Saturday and Sunday and 1 otherwise.
func WeekendMultiplier(t time.Time) float64 {
	if Weekday(t) >= 4 {
		return WeekendFactor
	}
	return 1
}

// SeasonalFactor maps a 0-based month index to its multiplier: June, July,
// December and January are high season, September to November low season.
func SeasonalFactor(monthIndex int) float64 {
	switch {
	case monthIndex >= 5 && monthIndex <= 6, monthIndex >= 11, monthIndex == 0:
		return HighSeason
	case monthIndex >= 8 && monthIndex <= 10:
		return LowSeason
	default:
		return 1
	}
}

// SeasonalFactorFor applies SeasonalFactor to the month of t.
func SeasonalFactorFor(t time.Time) float64 {
	return SeasonalFactor(int(t.Month()) - 1)
}

// Factors is the breakdown of a rule-based estimate.
type Factors struct {
	Rating    float64
	Reviews   float64
	Amenities float64
	Distance  float64
	Weekend   float64
	Seasonal  float64
}

// RuleFactors computes every multiplier of the rule-based formula for f.
func RuleFactors(f model.FeatureVector) Factors {
	rating := 1.0
	if f.Rating > 0 {
		rating = math.Pow(f.Rating/5, 1.5) * 1.5
	}
	reviews := math.Min(1+math.Log(float64(max(f.ReviewsCount, 1)))/20, maxReviewBoost)
	return Factors{
		Rating:    rating,
		Reviews:   reviews,
		Amenities: 1 + float64(f.AmenitiesCount)/20,
		Distance:  math.Max(minDistance, 1-f.AvgDistance/10),
		Weekend:   WeekendMultiplier(f.CheckInDate),
		Seasonal:  SeasonalFactorFor(f.CheckInDate),
	}
}

// RuleBasedPrice returns the deterministic base price for f.
func RuleBasedPrice(f model.FeatureVector) int64 {
	x := RuleFactors(f)
	p := ReferencePrice * x.Rating * x.Reviews * x.Amenities * x.Distance * x.Weekend * x.Seasonal
	return clampRound(p)
}

// clampRound rounds half to even and clamps negatives to zero.
func clampRound(p float64) int64 {
	r := math.RoundToEven(p)
	if r < 0 || math.IsNaN(r) {
		return 0
	}
	return int64(r)
}
