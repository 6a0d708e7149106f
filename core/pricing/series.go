package pricing

import (
	"math"
	"time"

	"github.com/kilianp07/hotelprice/core/model"
)

// HorizonDays is the number of daily prices in a series.
const HorizonDays = 60

// DefaultSeed is used when the hotel identifier is empty.
const DefaultSeed = 42

// Seed derives the perturbation seed from a hotel identifier as the sum of
// its code points. Identifiers with equal sums share a series.
func Seed(hotelID string) int {
	if hotelID == "" {
		return DefaultSeed
	}
	seed := 0
	for _, r := range hotelID {
		seed += int(r)
	}
	return seed
}

// RandomFactor is the deterministic perturbation for a seed and day offset,
// always in [0.95, 1.05). The functional form must not change: cached
// client-side series depend on it.
func RandomFactor(seed, offset int) float64 {
	x := math.Sin(float64(seed+offset)*0.1) * 10000
	frac := x - math.Floor(x)
	if frac >= 1 {
		frac = 0
	}
	return 0.95 + frac*0.1
}

// Generate expands basePrice into HorizonDays consecutive daily prices
// starting at start.
func Generate(hotelID string, basePrice int64, start time.Time) model.PredictedSeries {
	seed := Seed(hotelID)
	start = model.TruncateDate(start)
	out := make(model.PredictedSeries, 0, HorizonDays)
	for i := 0; i < HorizonDays; i++ {
		date := start.AddDate(0, 0, i)
		p := float64(basePrice) * WeekendMultiplier(date) * SeasonalFactorFor(date) * RandomFactor(seed, i)
		out = append(out, model.DailyPrice{Date: date, Price: clampRound(p)})
	}
	return out
}
