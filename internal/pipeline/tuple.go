// Package pipeline drives the tuple sweep of SPEC_FULL §4.7: for every
// requested (ticker, interval, strategy) combination it fetches a series,
// enriches it, extracts pivots, enumerates and validates candidates per
// family, deduplicates by identity key, and emits the survivors.
package pipeline

import (
	"patterncore/internal/config"
	"patterncore/internal/model"
)

// Tuple is one unit of work: a ticker/interval pair evaluated under one
// named zigzag strategy.
type Tuple struct {
	Ticker   string
	Interval string
	Strategy string
}

// Request configures one run of the pipeline driver.
type Request struct {
	Tuples     []Tuple
	Families   []model.Family
	Period     int // bars requested per Fetch call
	Concurrency int
}

// Result summarizes one completed run, the shape notify.RunSummary is
// built from.
type Result struct {
	TuplesProcessed int
	Records         []*model.PatternRecord
	ByFamily        map[string]int
}

func familyRequested(families []model.Family, f model.Family) bool {
	for _, want := range families {
		if want == f {
			return true
		}
	}
	return false
}

func deviationFor(cfg *config.Config, strategy string) (float64, bool) {
	d, ok := cfg.ZigZag.Strategies[strategy]
	return d, ok
}
