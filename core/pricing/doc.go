// Package pricing holds the price estimation core: the rule-based base price
// formula, the dispatch between a learned regressor and that formula, and the
// seeded day-by-day series generator. Everything here is pure and safe for
// concurrent use.
package pricing
