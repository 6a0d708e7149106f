package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	assert.Equal(t, 42, Seed(""))
	assert.Equal(t, 735, Seed("hotel-123"))
	assert.Equal(t, Seed("ab"), Seed("ba"))
}

func TestRandomFactorBounds(t *testing.T) {
	for seed := -5000; seed < 5000; seed += 7 {
		for i := 0; i < HorizonDays; i++ {
			f := RandomFactor(seed, i)
			require.GreaterOrEqual(t, f, 0.95)
			require.Less(t, f, 1.05)
		}
	}
}

func TestGenerate_Golden(t *testing.T) {
	s := Generate("", 562500, date(2024, 3, 6))
	require.Len(t, s, HorizonDays)
	want := []int64{548003, 553536, 677877, 659736, 620351}
	for i, w := range want {
		assert.Equal(t, w, s[i].Price, "offset %d", i)
	}

	s = Generate("hotel-123", 562500, date(2024, 3, 6))
	want = []int64{549642, 562682, 619632, 663763, 635386}
	for i, w := range want {
		assert.Equal(t, w, s[i].Price, "offset %d", i)
	}
}

func TestGenerate_ConsecutiveDates(t *testing.T) {
	start := date(2024, 2, 20)
	s := Generate("h", 1000, start)
	require.Len(t, s, HorizonDays)
	assert.Equal(t, start, s.Start())
	for i := 1; i < len(s); i++ {
		assert.Equal(t, s[i-1].Date.AddDate(0, 0, 1), s[i].Date)
	}
	assert.Equal(t, "2024-04-19", s[HorizonDays-1].Date.Format("2006-01-02"))
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := json.Marshal(Generate("grand-hotel", 812345, date(2024, 11, 28)))
	require.NoError(t, err)
	b, err := json.Marshal(Generate("grand-hotel", 812345, date(2024, 11, 28)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_EqualCodePointSumsShareSeries(t *testing.T) {
	assert.Equal(t, Generate("ab", 500000, date(2024, 5, 1)), Generate("ba", 500000, date(2024, 5, 1)))
}

func TestGenerate_WeekendEffect(t *testing.T) {
	s := Generate("h1", 500000, date(2024, 3, 4))
	for i, d := range s {
		// Same seasonal factor within March; undo the perturbation to compare.
		if d.Date.Month() != 3 {
			continue
		}
		raw := float64(d.Price) / RandomFactor(Seed("h1"), i)
		if Weekday(d.Date) >= 4 {
			assert.InDelta(t, 500000*WeekendFactor, raw, 1)
		} else {
			assert.InDelta(t, 500000.0, raw, 1)
		}
	}
}

func TestGenerate_NegativeBaseClamped(t *testing.T) {
	for _, d := range Generate("x", -1000, date(2024, 3, 4)) {
		assert.Equal(t, int64(0), d.Price)
	}
}
