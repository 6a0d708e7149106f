package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFeatures(t *testing.T) {
	now := time.Date(2024, 3, 6, 17, 45, 0, 0, time.FixedZone("x", 7*3600))
	f := DefaultFeatures(now)
	assert.Equal(t, 0.0, f.Rating)
	assert.Equal(t, 0, f.ReviewsCount)
	assert.Equal(t, 1.0, f.AvgDistance)
	assert.Equal(t, 5, f.AmenitiesCount)
	assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), f.CheckInDate)
	assert.NoError(t, f.Validate())
}

func TestFeatureVectorValidate(t *testing.T) {
	base := DefaultFeatures(time.Now())
	cases := []struct {
		name string
		mut  func(*FeatureVector)
	}{
		{"rating high", func(f *FeatureVector) { f.Rating = 5.1 }},
		{"rating negative", func(f *FeatureVector) { f.Rating = -1 }},
		{"reviews", func(f *FeatureVector) { f.ReviewsCount = -3 }},
		{"distance", func(f *FeatureVector) { f.AvgDistance = -0.1 }},
		{"amenities", func(f *FeatureVector) { f.AmenitiesCount = -1 }},
		{"date", func(f *FeatureVector) { f.CheckInDate = time.Time{} }},
	}
	for _, c := range cases {
		f := base
		c.mut(&f)
		assert.Error(t, f.Validate(), c.name)
	}
}

func TestInputsOrder(t *testing.T) {
	f := FeatureVector{Rating: 4.5, ReviewsCount: 1000, AvgDistance: 0.5, AmenitiesCount: 15}
	assert.Equal(t, []float64{4.5, 1000, 0.5, 15}, f.Inputs())
}

func TestDailyPriceJSON(t *testing.T) {
	d := DailyPrice{Date: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), Price: 1909893}
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-06-15","price":1909893}`, string(b))

	var back DailyPrice
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)
}
