// Package sink defines the row-emission contract and its implementations:
// a canonical CSV writer, optional SQLite and MongoDB persistence, and a
// Tee that fans out to several sinks from one run.
package sink

import "patterncore/internal/model"

// Sink receives accepted PatternRecords and flushes any buffered state on
// Finalize. Emit must not block the caller's main flow on a slow backend
// beyond what its own implementation chooses to do.
type Sink interface {
	Emit(rec *model.PatternRecord) error
	Finalize() error
}

// Tee fans every Emit/Finalize call out to all of its member sinks,
// returning the first error encountered (after attempting every member).
type Tee struct {
	sinks []Sink
}

// NewTee builds a Tee over sinks, in call order.
func NewTee(sinks ...Sink) *Tee {
	return &Tee{sinks: sinks}
}

func (t *Tee) Emit(rec *model.PatternRecord) error {
	var firstErr error
	for _, s := range t.sinks {
		if err := s.Emit(rec); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *Tee) Finalize() error {
	var firstErr error
	for _, s := range t.sinks {
		if err := s.Finalize(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
