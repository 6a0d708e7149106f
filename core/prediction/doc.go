// Package prediction turns a raw price request into a base price and a
// 60-day price series. It parses and defaults the request fields, runs the
// process-wide pricing model through the estimator and expands the result
// with the seeded series generator. A Service holds no per-request state and
// may be shared by any number of goroutines.
package prediction
