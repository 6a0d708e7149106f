package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/hotelprice/core/model"
)

type mockRegressor struct{ mock.Mock }

func (m *mockRegressor) Name() string { return "mock" }

func (m *mockRegressor) Predict(in []float64) (float64, error) {
	args := m.Called(in)
	return args.Get(0).(float64), args.Error(1)
}

type panicRegressor struct{}

func (panicRegressor) Name() string                       { return "panicky" }
func (panicRegressor) Predict([]float64) (float64, error) { panic("index out of range") }

var example = model.FeatureVector{Rating: 4.5, ReviewsCount: 1000, AvgDistance: 0.5, AmenitiesCount: 15, CheckInDate: date(2024, 6, 15)}

func TestPricingModelVariants(t *testing.T) {
	assert.False(t, PricingModel{}.IsLearned())
	assert.Equal(t, "rule_based", RuleBased().Name())
	assert.False(t, Learned(nil).IsLearned())
	m := Learned(&mockRegressor{})
	assert.True(t, m.IsLearned())
	assert.Equal(t, StrategyLearned, m.Strategy())
	assert.Equal(t, "mock", m.Name())
}

func TestEstimate_RuleBased(t *testing.T) {
	est := EstimateBasePrice(example, RuleBased())
	assert.Equal(t, int64(1909893), est.Price)
	assert.Equal(t, StrategyRuleBased, est.Strategy)
	assert.Nil(t, est.Fallback)
}

func TestEstimate_LearnedGetsOrderedTupleWithoutDate(t *testing.T) {
	r := &mockRegressor{}
	r.On("Predict", []float64{4.5, 1000, 0.5, 15}).Return(1234567.6, nil).Once()
	est := EstimateBasePrice(example, Learned(r))
	r.AssertExpectations(t)
	assert.Equal(t, int64(1234568), est.Price)
	assert.Equal(t, StrategyLearned, est.Strategy)
	assert.Nil(t, est.Fallback)
}

func TestEstimate_LearnedFailureFallsBack(t *testing.T) {
	cases := []struct {
		name string
		reg  Regressor
	}{
		{"error", func() Regressor {
			r := &mockRegressor{}
			r.On("Predict", mock.Anything).Return(0.0, errors.New("shape mismatch"))
			return r
		}()},
		{"nan", func() Regressor {
			r := &mockRegressor{}
			r.On("Predict", mock.Anything).Return(math.NaN(), nil)
			return r
		}()},
		{"panic", panicRegressor{}},
	}
	for _, c := range cases {
		est := EstimateBasePrice(example, Learned(c.reg))
		assert.Equal(t, int64(1909893), est.Price, c.name)
		assert.Equal(t, StrategyRuleBased, est.Strategy, c.name)
		require.NotNil(t, est.Fallback, c.name)
		var ierr *ModelInferenceError
		assert.True(t, errors.As(error(est.Fallback), &ierr), c.name)
		assert.Equal(t, c.reg.Name(), ierr.Model)
	}
}

func TestEstimate_LearnedNegativeClamped(t *testing.T) {
	r := &mockRegressor{}
	r.On("Predict", mock.Anything).Return(-25.0, nil)
	est := EstimateBasePrice(example, Learned(r))
	assert.Equal(t, int64(0), est.Price)
	assert.Equal(t, StrategyLearned, est.Strategy)
}

func TestErrorMessages(t *testing.T) {
	v := &ValidationError{Field: "rating", Reason: "not a number"}
	assert.Equal(t, "invalid rating: not a number", v.Error())
	p := &ParseError{Field: "checkInDate", Value: "15/06/2024"}
	assert.Contains(t, p.Error(), "YYYY-MM-DD")
	cause := errors.New("boom")
	m := &ModelInferenceError{Model: "linear", Err: cause}
	assert.ErrorIs(t, m, cause)
}
