package modelstore

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FeatureNames is the input order expected by every artifact.
var FeatureNames = []string{"rating", "reviewsCount", "avgDistance", "amenitiesCount"}

// LinearModel is a linear regressor over the hotel feature tuple. Its weights
// are fixed after construction, so Predict is safe for concurrent use.
type LinearModel struct {
	name      string
	weights   *mat.VecDense
	intercept float64
}

// NewLinearModel builds a model from its coefficients.
func NewLinearModel(name string, coefficients []float64, intercept float64) (*LinearModel, error) {
	if len(coefficients) != len(FeatureNames) {
		return nil, fmt.Errorf("expected %d coefficients, got %d", len(FeatureNames), len(coefficients))
	}
	if name == "" {
		name = "linear"
	}
	w := make([]float64, len(coefficients))
	copy(w, coefficients)
	return &LinearModel{name: name, weights: mat.NewVecDense(len(w), w), intercept: intercept}, nil
}

// Name identifies the model.
func (m *LinearModel) Name() string { return m.name }

// Coefficients returns a copy of the weights in FeatureNames order.
func (m *LinearModel) Coefficients() []float64 {
	out := make([]float64, m.weights.Len())
	for i := range out {
		out[i] = m.weights.AtVec(i)
	}
	return out
}

// Intercept returns the bias term.
func (m *LinearModel) Intercept() float64 { return m.intercept }

// Predict returns intercept + w·inputs.
func (m *LinearModel) Predict(inputs []float64) (float64, error) {
	if len(inputs) != m.weights.Len() {
		return 0, fmt.Errorf("input shape mismatch: expected %d features, got %d", m.weights.Len(), len(inputs))
	}
	x := make([]float64, len(inputs))
	copy(x, inputs)
	return m.intercept + mat.Dot(m.weights, mat.NewVecDense(len(x), x)), nil
}

// Fit solves the ordinary least squares problem for rows X and targets y with
// an intercept column.
func Fit(name string, X [][]float64, y []float64) (*LinearModel, error) {
	if len(X) == 0 || len(X) != len(y) {
		return nil, fmt.Errorf("fit: %d rows for %d targets", len(X), len(y))
	}
	cols := len(FeatureNames) + 1
	if len(X) < cols {
		return nil, fmt.Errorf("fit: need at least %d rows, got %d", cols, len(X))
	}
	a := mat.NewDense(len(X), cols, nil)
	for i, row := range X {
		if len(row) != len(FeatureNames) {
			return nil, fmt.Errorf("fit: row %d has %d features", i, len(row))
		}
		a.Set(i, 0, 1)
		for j, v := range row {
			a.Set(i, j+1, v)
		}
	}
	var beta mat.VecDense
	if err := beta.SolveVec(a, mat.NewVecDense(len(y), append([]float64(nil), y...))); err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}
	coef := make([]float64, len(FeatureNames))
	for j := range coef {
		coef[j] = beta.AtVec(j + 1)
	}
	return NewLinearModel(name, coef, beta.AtVec(0))
}
