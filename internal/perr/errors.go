// Package perr defines the error-kind taxonomy a tuple evaluation can
// raise, as sentinel values checked with errors.Is rather than by
// stringifying and pattern-matching a message.
package perr

import "errors"

var (
	// ErrInsufficientData: series shorter than an indicator requirement or
	// fewer than the minimum pivots for any family. Non-fatal; the tuple
	// yields zero records.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrPivotStarvation: ZigZag produced fewer pivots than the widest
	// window needs. Non-fatal; the tuple yields zero records.
	ErrPivotStarvation = errors.New("pivot starvation")

	// ErrFetch: the external PriceSeries producer failed. Fatal for the
	// tuple only; the driver logs a warning and continues.
	ErrFetch = errors.New("fetch failed")

	// ErrSink: writing a record failed. Fatal for the run.
	ErrSink = errors.New("sink write failed")
)
