package rules

import (
	"patterncore/internal/mathutil"
	"patterncore/internal/model"
)

// NecklineFlatness checks |p2.price - p4.price| against a tolerance of
// reference (mean shoulder height for HNS, pattern height for DT/DB/TT/TB).
func NecklineFlatness(p2, p4 model.Pivot, reference, tolerance float64) Result {
	if mathutil.Within(p2.Price, p4.Price, reference, tolerance) {
		return pass()
	}
	return fail("neckline anchors differ by more than the allowed tolerance")
}

// SymmetryExtremes checks that the pattern's repeated extremes (p1, p3 for
// double tops/bottoms; p1, p3, p5 for triple tops/bottoms) each lie within
// symmetryToleranceFactor × patternHeight of the first extreme.
func SymmetryExtremes(extremes []model.Pivot, patternHeight, symmetryToleranceFactor float64) Result {
	if len(extremes) < 2 {
		return fail("need at least two extremes to compare symmetry")
	}
	ref := extremes[0].Price
	for _, e := range extremes[1:] {
		if !mathutil.Within(e.Price, ref, patternHeight, symmetryToleranceFactor) {
			return fail("extremes are not within the symmetry tolerance of one another")
		}
	}
	return pass()
}

// TrendContext checks the trend leading into the pattern: a double/triple
// top requires higher-highs/higher-lows into p1, a bottom requires
// lower-highs/lower-lows, each by at least trendMinDiffFactor ×
// patternHeight.
func TrendContext(priorHigh, priorLow, p1High, p1Low, patternHeight, trendMinDiffFactor float64, wantUptrend bool) Result {
	minDiff := trendMinDiffFactor * patternHeight
	if wantUptrend {
		if p1High-priorHigh >= minDiff && p1Low-priorLow >= minDiff {
			return pass()
		}
		return fail("prior trend does not show a sufficient higher-high/higher-low run")
	}
	if priorHigh-p1High >= minDiff && priorLow-p1Low >= minDiff {
		return pass()
	}
	return fail("prior trend does not show a sufficient lower-high/lower-low run")
}
