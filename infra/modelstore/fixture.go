package modelstore

// FixtureName names the model produced by FitFixture.
const FixtureName = "hotel_price_linear"

// Sample hotels used to produce the fixture model: rating, reviews,
// distance, amenities.
var fixtureRows = [][]float64{
	{4.5, 1000, 0.5, 15}, // luxury, close
	{4.8, 2000, 0.2, 20}, // premium luxury
	{3.5, 500, 1.5, 8},   // mid-range
	{3.0, 200, 2.5, 5},   // budget
	{2.5, 100, 3.5, 3},   // economy
}

// Target nightly prices in the smallest currency unit.
var fixtureTargets = []float64{1200000, 1800000, 800000, 600000, 450000}

// FitFixture fits a linear model on the built-in sample table. It is a
// development fixture for exercising the learned code path, not a trained
// pricing model.
func FitFixture() (*LinearModel, error) {
	return Fit(FixtureName, fixtureRows, fixtureTargets)
}
