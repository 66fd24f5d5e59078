package validator

import (
	"patterncore/internal/config"
	"patterncore/internal/model"
	"patterncore/internal/rulename"
	"patterncore/internal/rules"
)

// ValidateTTB runs the triple top/bottom pipeline. It differs from DTB
// only in window size (7 pivots), p1's context extremity being evaluated
// past-only, and symmetry spanning all three extremes (p1, p3, p5).
// pivots is the full ZigZag pivot list for the series, used to locate the
// real post-breakout retest pivot.
func ValidateTTB(cand model.PatternCandidate, pivots []model.Pivot, series *model.PriceSeries, ind *model.IndicatorColumns, cfg *config.Config) (*model.PatternRecord, bool) {
	isBottom := cand.Tipo == model.TipoTB
	weights := cfg.Scoring.WeightsTTB
	o := newOutcome()

	p0, p1, p2, p3, p4, p5 := cand.P(0), cand.P(1), cand.P(2), cand.P(3), cand.P(4), cand.P(5)

	structExpected := []model.PivotKind{p0.Kind, p1.Kind, p2.Kind, p3.Kind, p4.Kind, p5.Kind, cand.P(6).Kind}
	o.record(rulename.Structure, rules.Structure(cand.Pivots, structExpected).Pass)

	window := contextWindowBars(cand.Pivots, cfg.Context.MinBars, cfg.Context.HeadExtremeLookbackFactor)
	o.record(rulename.ContextExtremityP1, rules.ExtremityInContext(series, p1, window, true).Pass)
	o.record(rulename.ContextExtremityP3, rules.ExtremityInContext(series, p3, window, false).Pass)

	height := patternHeight(p1.Price, p2.Price)
	priorHigh, priorLow := priorTrendWindow(series, p1.Idx, window)
	o.record(rulename.ContextoTendencia, rules.TrendContext(priorHigh, priorLow, series.H[p1.Idx], series.L[p1.Idx], height, cfg.Tolerance.TrendMinDiffFactor, !isBottom).Pass)
	o.record(rulename.SimetriaExtremos, rules.SymmetryExtremes([]model.Pivot{p1, p3, p5}, height, cfg.Tolerance.SymmetryToleranceFactor).Pass)
	o.record(rulename.NecklineFlatness, true)

	necklinePrice := (p2.Price + p4.Price) / 2
	breakUp := isBottom
	breakoutRes, breakoutIdx := rules.BreakoutFound(series, p5.Idx, necklinePrice, breakUp, cfg.VolumeBreakout.SearchMaxBars)
	o.record(rulename.BreakoutFound, breakoutRes.Pass)

	retestIdx := -1
	retestPass := false
	if breakoutRes.Pass {
		if retest, ok := findRetestPivot(pivots, p5, breakoutIdx); ok {
			retestIdx = retest.Idx
			retestPass = rules.NecklineRetest(series, ind.ATR14, retestIdx, necklinePrice, cfg.NecklineRetest.ATRMultiplier, cfg.NecklineRetest.PctOfNeckline).Pass
			cand.Pivots = append(append([]model.Pivot(nil), cand.Pivots[:6]...), retest)
		}
	}
	o.record(rulename.NecklineRetestP4, retestPass)

	rec := buildRecord(cand, series, o, p0.Idx, p5.Idx, p5.Idx, retestIdx)

	if !allMandatoryPass(weights, o.valid) {
		return rec, false
	}

	evaluateTTBOptional(o, p1, p3, p5, breakoutIdx, series, ind, cfg)
	rec.RuleOrder, rec.Valid = o.order, o.valid

	sc := score(weights, o.valid)
	rec.ScoreTotal = sc
	return rec, sc >= cfg.Scoring.MinimumTTB
}

func evaluateTTBOptional(o *outcome, p1, p3, p5 model.Pivot, breakoutIdx int, series *model.PriceSeries, ind *model.IndicatorColumns, cfg *config.Config) {
	o.record(rulename.RSIDivergence, rules.RSIDivergence(p3, p5, ind.RSIClose, cfg.RSI).Pass)
	o.record(rulename.MACDSignalCross, rules.MACDSignalCross(ind.MACD, ind.MACDs, p5.Idx, cfg.MACD.SignalCrossLookbackBars, cfg.MACD.CrossMaxAgeBars, p5.Kind).Pass)
	o.record(rulename.MACDHistDivergence, rules.MACDHistDivergence(p3, p5, ind.MACDh).Pass)
	o.record(rulename.StochasticConfirm, rules.StochasticConfirm(p3, p5, ind.STOCHk, ind.STOCHd, cfg.Stoch).Pass)
	o.record(rulename.OBVDivergence, rules.OBVDivergence(p3, p5, ind.OBV).Pass)
	o.record(rulename.VolumeBreakout, rules.BreakoutVolume(series, breakoutIdx, cfg.VolumeBreakout.LookbackBars, cfg.VolumeBreakout.Multiplier).Pass)
	o.record(rulename.VolumeProfile, rules.VolumeProfile(series, []model.Pivot{p1, p3, p5}).Pass)
}
