// Package candidate slides fixed-width windows across a ZigZag pivot list
// to enumerate PatternCandidates per family (SPEC_FULL §4.5). An
// enumerator only checks kind alternation; scoring and acceptance are
// internal/validator's job.
package candidate

import "patterncore/internal/model"

// windowKinds returns the expected alternating-kind sequence of length n
// starting with start.
func windowKinds(start model.PivotKind, n int) []model.PivotKind {
	out := make([]model.PivotKind, n)
	k := start
	for i := range out {
		out[i] = k
		k = k.Opposite()
	}
	return out
}

// matchesKinds reports whether pivots[offset:offset+len(expected)] match
// expected exactly.
func matchesKinds(pivots []model.Pivot, offset int, expected []model.PivotKind) bool {
	if offset+len(expected) > len(pivots) {
		return false
	}
	for i, k := range expected {
		if pivots[offset+i].Kind != k {
			return false
		}
	}
	return true
}

// recent restricts pivots to at most the last lookback entries, the
// recent_patterns_lookback_count restriction every enumerator applies.
func recent(pivots []model.Pivot, lookback int) []model.Pivot {
	if lookback <= 0 || len(pivots) <= lookback {
		return pivots
	}
	return pivots[len(pivots)-lookback:]
}

// HeadAndShoulders enumerates 7-pivot H&S windows (p0..p6): shoulders and
// head (p1, p3, p5) are peaks for a standard (topping) pattern, valleys
// for an inverse (bottoming) one, alternating with the neckline anchors
// and base (p0, p2, p4, p6). p6 here only closes the contiguous alternating
// window so the shape can be matched; the validator overwrites it with the
// real post-breakout retest pivot once the breakout bar is known.
func HeadAndShoulders(pivots []model.Pivot, lookback int, inverse bool) []model.PatternCandidate {
	pivots = recent(pivots, lookback)
	shoulderKind := model.Peak
	if inverse {
		shoulderKind = model.Valley
	}
	expected := windowKinds(shoulderKind.Opposite(), 7)

	var out []model.PatternCandidate
	for i := 0; i+7 <= len(pivots); i++ {
		if !matchesKinds(pivots, i, expected) {
			continue
		}
		window := append([]model.Pivot(nil), pivots[i:i+7]...)
		out = append(out, model.PatternCandidate{
			Family: model.FamilyHNS,
			Tipo:   tipoHNS(inverse),
			Pivots: window,
		})
	}
	return out
}

// DoubleTopBottom enumerates 5-pivot double top/bottom windows (p0..p4):
// the repeated extremes p1, p3 are peaks for a double top, valleys for a
// double bottom, alternating with p0 (prior) and p2 (intervening). p4
// only closes the contiguous alternating window here; the validator
// overwrites it with the real post-breakout retest pivot.
func DoubleTopBottom(pivots []model.Pivot, lookback int, isBottom bool) []model.PatternCandidate {
	pivots = recent(pivots, lookback)
	extremeKind := model.Peak
	if isBottom {
		extremeKind = model.Valley
	}
	expected := windowKinds(extremeKind.Opposite(), 5)

	var out []model.PatternCandidate
	for i := 0; i+5 <= len(pivots); i++ {
		if !matchesKinds(pivots, i, expected) {
			continue
		}
		window := append([]model.Pivot(nil), pivots[i:i+5]...)
		out = append(out, model.PatternCandidate{
			Family: model.FamilyDTB,
			Tipo:   tipoDTB(isBottom),
			Pivots: window,
		})
	}
	return out
}

// TripleTopBottom enumerates 7-pivot triple top/bottom windows (p0..p6):
// three matched extremes p1, p3, p5 with two intervening opposites p2, p4
// and p0 preceding. p6 only closes the contiguous alternating window
// here; the validator overwrites it with the real post-breakout retest
// pivot.
func TripleTopBottom(pivots []model.Pivot, lookback int, isBottom bool) []model.PatternCandidate {
	pivots = recent(pivots, lookback)
	extremeKind := model.Peak
	if isBottom {
		extremeKind = model.Valley
	}
	expected := windowKinds(extremeKind.Opposite(), 7)

	var out []model.PatternCandidate
	for i := 0; i+7 <= len(pivots); i++ {
		if !matchesKinds(pivots, i, expected) {
			continue
		}
		window := append([]model.Pivot(nil), pivots[i:i+7]...)
		out = append(out, model.PatternCandidate{
			Family: model.FamilyTTB,
			Tipo:   tipoTTB(isBottom),
			Pivots: window,
		})
	}
	return out
}

func tipoHNS(inverse bool) model.Tipo {
	if inverse {
		return model.TipoOCOI
	}
	return model.TipoOCO
}

func tipoDTB(isBottom bool) model.Tipo {
	if isBottom {
		return model.TipoDB
	}
	return model.TipoDT
}

func tipoTTB(isBottom bool) model.Tipo {
	if isBottom {
		return model.TipoTB
	}
	return model.TipoTT
}
