// Package filter implements the edge-detection algorithms and the parameter
// validation that gates them.
//
// # Algorithms
//
// Three algorithms are supported: Sobel (first-derivative gradients),
// Laplacian (second derivative), and Canny (blur, gradient, non-maximum
// suppression, hysteresis). Each entry point is a pure function of an input
// buffer and a validated parameter set: identical inputs always produce
// byte-identical outputs, and the input buffer is never mutated.
//
// # Parameters
//
// Params carries the union of all algorithm parameters. Validate checks a
// Params against a Kind before the engine may run; an unvalidated set must
// never reach the Apply functions. Validation failures are ValidationError
// values identifying the offending field and wrapping one of the sentinel
// errors for programmatic classification.
//
// # Boundary Policy
//
// All convolutions use replicate-edge padding: out-of-bounds samples take the
// value of the nearest in-bounds pixel.
package filter
