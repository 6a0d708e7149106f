package pricing

import (
	"fmt"
	"math"

	"github.com/kilianp07/hotelprice/core/model"
)

// Regressor is a trained model mapping the ordered feature tuple
// (rating, reviewsCount, avgDistance, amenitiesCount) to a price. It owns its
// weights and must be safe for concurrent reads.
type Regressor interface {
	Name() string
	Predict(inputs []float64) (float64, error)
}

// Strategy identifies which pricing variant produced a price.
type Strategy int

const (
	StrategyRuleBased Strategy = iota
	StrategyLearned
)

func (s Strategy) String() string {
	switch s {
	case StrategyLearned:
		return "learned"
	default:
		return "rule_based"
	}
}

// PricingModel is the process-wide pricing variant: either Learned, wrapping
// a Regressor, or RuleBased. The zero value is RuleBased.
type PricingModel struct {
	strategy  Strategy
	regressor Regressor
}

// RuleBased returns the always-available formula variant.
func RuleBased() PricingModel { return PricingModel{strategy: StrategyRuleBased} }

// Learned wraps r. A nil regressor yields RuleBased.
func Learned(r Regressor) PricingModel {
	if r == nil {
		return RuleBased()
	}
	return PricingModel{strategy: StrategyLearned, regressor: r}
}

// Strategy reports the variant.
func (m PricingModel) Strategy() Strategy { return m.strategy }

// IsLearned reports whether a trained regressor is active.
func (m PricingModel) IsLearned() bool { return m.strategy == StrategyLearned }

// Name identifies the model in logs and metrics.
func (m PricingModel) Name() string {
	if m.IsLearned() {
		return m.regressor.Name()
	}
	return StrategyRuleBased.String()
}

// Estimate is the outcome of a base price estimation. When the learned model
// failed, Strategy is RuleBased and Fallback carries the cause.
type Estimate struct {
	Price    int64
	Strategy Strategy
	Fallback *ModelInferenceError
}

// EstimateBasePrice computes the base price for f with the active model,
// falling back to the rule-based formula for this call when the learned
// model fails.
func EstimateBasePrice(f model.FeatureVector, m PricingModel) Estimate {
	if m.IsLearned() {
		price, ierr := predictLearned(m.regressor, f)
		if ierr == nil {
			return Estimate{Price: price, Strategy: StrategyLearned}
		}
		return Estimate{Price: RuleBasedPrice(f), Strategy: StrategyRuleBased, Fallback: ierr}
	}
	return Estimate{Price: RuleBasedPrice(f), Strategy: StrategyRuleBased}
}

// predictLearned converts every failure mode of the regressor, including a
// panic, into a ModelInferenceError.
func predictLearned(r Regressor, f model.FeatureVector) (price int64, ierr *ModelInferenceError) {
	defer func() {
		if rec := recover(); rec != nil {
			price = 0
			ierr = &ModelInferenceError{Model: r.Name(), Err: fmt.Errorf("panic: %v", rec)}
		}
	}()
	v, err := r.Predict(f.Inputs())
	if err != nil {
		return 0, &ModelInferenceError{Model: r.Name(), Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ModelInferenceError{Model: r.Name(), Err: fmt.Errorf("non-finite output %v", v)}
	}
	return clampRound(v), nil
}
