// Package validator composes internal/rules into the per-family mandatory
// gate -> optional score -> accept/reject state machine of SPEC_FULL §4.6.
package validator

import (
	"patterncore/internal/config"
	"patterncore/internal/model"
)

// outcome accumulates one candidate's rule results in evaluation order.
// Mandatory rules are always recorded; optional rules are recorded only
// when the mandatory gate passes, so a rejected candidate's RuleOrder/Valid
// hold the mandatory rules alone.
type outcome struct {
	order []string
	valid map[string]bool
}

func newOutcome() *outcome {
	return &outcome{valid: make(map[string]bool)}
}

func (o *outcome) record(name string, pass bool) {
	o.order = append(o.order, name)
	o.valid[name] = pass
}

// score sums weight*flag for every optional rule weight present in flags.
func score(weights []config.RuleWeight, flags map[string]bool) int {
	total := 0
	for _, w := range weights {
		if w.Mandatory {
			continue
		}
		if flags[w.Name] {
			total += w.Weight
		}
	}
	return total
}

// allMandatoryPass reports whether every mandatory weight entry is true in
// flags. A mandatory rule never evaluated (e.g. skipped because an earlier
// mandatory rule already failed) counts as false, not as passing by omission.
func allMandatoryPass(weights []config.RuleWeight, flags map[string]bool) bool {
	for _, w := range weights {
		if w.Mandatory && !flags[w.Name] {
			return false
		}
	}
	return true
}

// avgPivotSeparation is the mean bar-distance between consecutive pivots
// in the candidate's window, the basis for extremity_in_context's window
// sizing.
func avgPivotSeparation(pivots []model.Pivot) float64 {
	if len(pivots) < 2 {
		return 0
	}
	total := 0
	for i := 1; i < len(pivots); i++ {
		total += pivots[i].Idx - pivots[i-1].Idx
	}
	return float64(total) / float64(len(pivots)-1)
}

// contextWindowBars implements max(min_bars, factor * avg_pivot_separation).
func contextWindowBars(pivots []model.Pivot, minBars int, factor float64) int {
	w := int(factor * avgPivotSeparation(pivots))
	if w < minBars {
		return minBars
	}
	return w
}

// findRetestPivot returns the first pivot in pivots past breakoutIdx whose
// kind opposes lastExtreme's — the neckline retest pivot is defined as the
// first opposite-kind pivot found after the breakout bar, not an arbitrary
// raw bar. pivots must be the full series pivot list (ascending Idx), not
// a candidate's own windowed slice, since the real retest can sit beyond
// whatever pivot the structural window happened to end on.
func findRetestPivot(pivots []model.Pivot, lastExtreme model.Pivot, breakoutIdx int) (model.Pivot, bool) {
	want := lastExtreme.Kind.Opposite()
	for _, p := range pivots {
		if p.Idx > breakoutIdx && p.Kind == want {
			return p, true
		}
	}
	return model.Pivot{}, false
}

// patternHeight is the price span between a pattern's extreme and its
// neckline/base reference, the denominator most tolerance rules compare
// against.
func patternHeight(extreme, reference float64) float64 {
	h := extreme - reference
	if h < 0 {
		h = -h
	}
	return h
}

// buildRecord assembles the PatternRecord shared by accept and reject
// outcomes, with RuleOrder/Valid as recorded so far; validators refresh
// them after evaluating the optional rules.
func buildRecord(cand model.PatternCandidate, series *model.PriceSeries, o *outcome, startIdx, structEndIdx, keyIdx, retestIdx int) *model.PatternRecord {
	endIdx := structEndIdx
	if retestIdx > endIdx {
		endIdx = retestIdx
	}
	return &model.PatternRecord{
		Ticker:    series.Ticker,
		Tipo:      cand.Tipo,
		Family:    cand.Family,
		StartIdx:  startIdx,
		EndIdx:    endIdx,
		KeyIdx:    keyIdx,
		RetestIdx: retestIdx,
		RuleOrder: o.order,
		Valid:     o.valid,
		Pivots:    cand.Pivots,
	}
}
