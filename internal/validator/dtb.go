package validator

import (
	"patterncore/internal/config"
	"patterncore/internal/model"
	"patterncore/internal/rulename"
	"patterncore/internal/rules"
)

// ValidateDTB runs the double top/bottom pipeline: mandatory gate ->
// optional score -> accept/reject. pivots is the full ZigZag pivot list
// for the series, used to locate the real post-breakout retest pivot.
func ValidateDTB(cand model.PatternCandidate, pivots []model.Pivot, series *model.PriceSeries, ind *model.IndicatorColumns, cfg *config.Config) (*model.PatternRecord, bool) {
	isBottom := cand.Tipo == model.TipoDB
	weights := cfg.Scoring.WeightsDTB
	o := newOutcome()

	p0, p1, p2, p3 := cand.P(0), cand.P(1), cand.P(2), cand.P(3)

	structExpected := []model.PivotKind{p0.Kind, p1.Kind, p2.Kind, p3.Kind, cand.P(4).Kind}
	o.record(rulename.Structure, rules.Structure(cand.Pivots, structExpected).Pass)

	window := contextWindowBars(cand.Pivots, cfg.Context.MinBars, cfg.Context.HeadExtremeLookbackFactor)
	o.record(rulename.ContextExtremityP1, rules.ExtremityInContext(series, p1, window, false).Pass)
	o.record(rulename.ContextExtremityP3, rules.ExtremityInContext(series, p3, window, false).Pass)

	height := patternHeight(p1.Price, p2.Price)
	priorHigh, priorLow := priorTrendWindow(series, p1.Idx, window)
	o.record(rulename.ContextoTendencia, rules.TrendContext(priorHigh, priorLow, series.H[p1.Idx], series.L[p1.Idx], height, cfg.Tolerance.TrendMinDiffFactor, !isBottom).Pass)
	o.record(rulename.SimetriaExtremos, rules.SymmetryExtremes([]model.Pivot{p1, p3}, height, cfg.Tolerance.SymmetryToleranceFactor).Pass)
	o.record(rulename.NecklineFlatness, true) // single neckline point in DTB: trivially flat

	necklinePrice := p2.Price
	breakUp := isBottom
	breakoutRes, breakoutIdx := rules.BreakoutFound(series, p3.Idx, necklinePrice, breakUp, cfg.VolumeBreakout.SearchMaxBars)
	o.record(rulename.BreakoutFound, breakoutRes.Pass)

	retestIdx := -1
	retestPass := false
	if breakoutRes.Pass {
		if retest, ok := findRetestPivot(pivots, p3, breakoutIdx); ok {
			retestIdx = retest.Idx
			retestPass = rules.NecklineRetest(series, ind.ATR14, retestIdx, necklinePrice, cfg.NecklineRetest.ATRMultiplier, cfg.NecklineRetest.PctOfNeckline).Pass
			cand.Pivots = append(append([]model.Pivot(nil), cand.Pivots[:4]...), retest)
		}
	}
	o.record(rulename.NecklineRetestP4, retestPass)

	rec := buildRecord(cand, series, o, p0.Idx, p3.Idx, p3.Idx, retestIdx)

	if !allMandatoryPass(weights, o.valid) {
		return rec, false
	}

	evaluateDTBOptional(o, p1, p3, breakoutIdx, series, ind, cfg)
	rec.RuleOrder, rec.Valid = o.order, o.valid

	sc := score(weights, o.valid)
	rec.ScoreTotal = sc
	return rec, sc >= cfg.Scoring.MinimumDTB
}

func evaluateDTBOptional(o *outcome, p1, p3 model.Pivot, breakoutIdx int, series *model.PriceSeries, ind *model.IndicatorColumns, cfg *config.Config) {
	o.record(rulename.RSIDivergence, rules.RSIDivergence(p1, p3, ind.RSIClose, cfg.RSI).Pass)
	o.record(rulename.MACDSignalCross, rules.MACDSignalCross(ind.MACD, ind.MACDs, p3.Idx, cfg.MACD.SignalCrossLookbackBars, cfg.MACD.CrossMaxAgeBars, p3.Kind).Pass)
	o.record(rulename.MACDHistDivergence, rules.MACDHistDivergence(p1, p3, ind.MACDh).Pass)
	o.record(rulename.StochasticConfirm, rules.StochasticConfirm(p1, p3, ind.STOCHk, ind.STOCHd, cfg.Stoch).Pass)
	o.record(rulename.OBVDivergence, rules.OBVDivergence(p1, p3, ind.OBV).Pass)
	o.record(rulename.VolumeBreakout, rules.BreakoutVolume(series, breakoutIdx, cfg.VolumeBreakout.LookbackBars, cfg.VolumeBreakout.Multiplier).Pass)
	o.record(rulename.VolumeProfile, rules.VolumeProfile(series, []model.Pivot{p1, p3}).Pass)
}

// priorTrendWindow returns the high/low extremes of the `window` bars
// strictly preceding idx, the "before_pattern" reference trend_context
// compares the pattern's first extreme against.
func priorTrendWindow(series *model.PriceSeries, idx, window int) (high, low float64) {
	lo := idx - window
	if lo < 0 {
		lo = 0
	}
	hi := idx - 1
	if hi < lo {
		return series.H[idx], series.L[idx]
	}
	high, low = series.H[lo], series.L[lo]
	for i := lo + 1; i <= hi; i++ {
		if series.H[i] > high {
			high = series.H[i]
		}
		if series.L[i] < low {
			low = series.L[i]
		}
	}
	return high, low
}
