package validator

import (
	"patterncore/internal/config"
	"patterncore/internal/model"
	"patterncore/internal/rulename"
	"patterncore/internal/rules"
)

// ValidateHNS runs the full mandatory-gate -> optional-score -> accept
// pipeline for a head & shoulders candidate (standard or inverse). pivots
// is the full ZigZag pivot list for the series (not the candidate's own
// windowed slice), used to locate the real post-breakout retest pivot. It
// always returns a record with RuleOrder/Valid populated (for debug
// logging even on rejection); the bool reports whether the pipeline
// should retain it.
func ValidateHNS(cand model.PatternCandidate, pivots []model.Pivot, series *model.PriceSeries, ind *model.IndicatorColumns, cfg *config.Config) (*model.PatternRecord, bool) {
	inverse := cand.Tipo == model.TipoOCOI
	weights := cfg.Scoring.WeightsHNS
	o := newOutcome()

	p0, p1, p2, p3, p4, p5 := cand.P(0), cand.P(1), cand.P(2), cand.P(3), cand.P(4), cand.P(5)

	structExpected := []model.PivotKind{p0.Kind, p1.Kind, p2.Kind, p3.Kind, p4.Kind, p5.Kind, cand.P(6).Kind}
	o.record(rulename.Structure, rules.Structure(cand.Pivots, structExpected).Pass)
	o.record(rulename.HeadExtremity, rules.HeadExtremity(p1, p3, p5, inverse).Pass)

	meanShoulderHeight := (patternHeight(p1.Price, p2.Price) + patternHeight(p5.Price, p4.Price)) / 2
	o.record(rulename.ShoulderSymmetry, rules.ShoulderSymmetry(p1, p5, meanShoulderHeight, cfg.Tolerance.SymmetryToleranceFactor).Pass)
	o.record(rulename.NecklineFlatness, rules.NecklineFlatness(p2, p4, meanShoulderHeight, cfg.Tolerance.SymmetryToleranceFactor).Pass)
	o.record(rulename.BaseTrend, rules.BaseTrend(p0, p2, p4, inverse).Pass)

	necklinePrice := (p2.Price + p4.Price) / 2
	breakoutRes, breakoutIdx := rules.BreakoutFound(series, p5.Idx, necklinePrice, inverse, cfg.VolumeBreakout.SearchMaxBars)
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
	o.record(rulename.NecklineRetestP6, retestPass)

	rec := buildRecord(cand, series, o, p0.Idx, p5.Idx, p3.Idx, retestIdx)

	if !allMandatoryPass(weights, o.valid) {
		return rec, false
	}

	evaluateHNSOptional(o, p1, p3, p5, breakoutIdx, series, ind, cfg)
	rec.RuleOrder, rec.Valid = o.order, o.valid

	sc := score(weights, o.valid)
	rec.ScoreTotal = sc
	return rec, sc >= cfg.Scoring.MinimumHNS
}

func evaluateHNSOptional(o *outcome, left, head, right model.Pivot, breakoutIdx int, series *model.PriceSeries, ind *model.IndicatorColumns, cfg *config.Config) {
	o.record(rulename.RSIDivergence, rules.RSIDivergence(left, head, ind.RSIClose, cfg.RSI).Pass)
	o.record(rulename.MACDSignalCross, rules.MACDSignalCross(ind.MACD, ind.MACDs, head.Idx, cfg.MACD.SignalCrossLookbackBars, cfg.MACD.CrossMaxAgeBars, head.Kind).Pass)
	o.record(rulename.MACDHistDivergence, rules.MACDHistDivergence(left, head, ind.MACDh).Pass)
	o.record(rulename.StochasticConfirm, rules.StochasticConfirm(left, head, ind.STOCHk, ind.STOCHd, cfg.Stoch).Pass)
	o.record(rulename.OBVDivergence, rules.OBVDivergence(left, head, ind.OBV).Pass)
	o.record(rulename.VolumeBreakout, rules.BreakoutVolume(series, breakoutIdx, cfg.VolumeBreakout.LookbackBars, cfg.VolumeBreakout.Multiplier).Pass)
	o.record(rulename.VolumeProfile, rules.VolumeProfile(series, []model.Pivot{left, head, right}).Pass)
}

