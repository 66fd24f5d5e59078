package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"patterncore/internal/candidate"
	"patterncore/internal/config"
	"patterncore/internal/indicator"
	"patterncore/internal/logging"
	"patterncore/internal/metrics"
	"patterncore/internal/model"
	"patterncore/internal/perr"
	"patterncore/internal/source"
	"patterncore/internal/validator"
	"patterncore/internal/zigzag"
)

const minBarsForIndicators = 35

// evaluateTuple runs steps 1-4 of §4.7 for a single tuple and returns
// every accepted record, not yet deduplicated. A FetchError or
// InsufficientData/PivotStarvation error yields zero records, never a
// returned error: it is logged here and the driver moves on to the next
// tuple.
func evaluateTuple(ctx context.Context, t Tuple, req Request, cfg *config.Config, prod source.Producer, m *metrics.Registry, log *logging.Loggers) []*model.PatternRecord {
	series, err := prod.Fetch(ctx, t.Ticker, t.Interval, req.Period)
	if err != nil {
		m.FetchErrors.Inc()
		log.Run.Warn().Err(err).Str("ticker", t.Ticker).Str("interval", t.Interval).Msg("fetch failed, skipping tuple")
		return nil
	}
	if series.Len() < minBarsForIndicators {
		log.Run.Debug().Str("ticker", t.Ticker).Msg(perr.ErrInsufficientData.Error())
		return nil
	}

	deviation, ok := deviationFor(cfg, t.Strategy)
	if !ok {
		log.Run.Warn().Str("strategy", t.Strategy).Msg("unknown strategy, skipping tuple")
		return nil
	}

	ind := indicator.Enrich(series, cfg)
	pivots := zigzag.Extract(series.C, deviation, cfg.ZigZag.ExtendToLastBar, cfg.ZigZag.ExtensionDeviationFactor)
	if len(pivots) < 5 {
		log.Run.Debug().Str("ticker", t.Ticker).Msg(perr.ErrPivotStarvation.Error())
		return nil
	}

	lookback := cfg.Recency.RecentPatternsLookbackCount

	var records []*model.PatternRecord
	if familyRequested(req.Families, model.FamilyHNS) {
		records = append(records, evaluateHNSCandidates(pivots, lookback, series, ind, cfg, m, &log.HNS, t)...)
	}
	if familyRequested(req.Families, model.FamilyDTB) {
		records = append(records, evaluateDTBCandidates(pivots, lookback, series, ind, cfg, m, &log.DTB, t)...)
	}
	if familyRequested(req.Families, model.FamilyTTB) {
		records = append(records, evaluateTTBCandidates(pivots, lookback, series, ind, cfg, m, &log.TTB, t)...)
	}

	for _, rec := range records {
		rec.Timeframe = t.Interval
		rec.Strategy = t.Strategy
	}
	return records
}

func evaluateHNSCandidates(pivots []model.Pivot, lookback int, series *model.PriceSeries, ind *model.IndicatorColumns, cfg *config.Config, m *metrics.Registry, log *zerolog.Logger, t Tuple) []*model.PatternRecord {
	var out []*model.PatternRecord
	for _, inverse := range [2]bool{false, true} {
		cands := candidate.HeadAndShoulders(pivots, lookback, inverse)
		m.CandidatesFound.WithLabelValues("hns").Add(float64(len(cands)))
		for _, cand := range cands {
			rec, accepted := validator.ValidateHNS(cand, pivots, series, ind, cfg)
			logValidation(log, "hns", t, rec, accepted)
			if accepted {
				m.PatternsAccepted.WithLabelValues("hns").Inc()
				out = append(out, rec)
			}
		}
	}
	return out
}

func evaluateDTBCandidates(pivots []model.Pivot, lookback int, series *model.PriceSeries, ind *model.IndicatorColumns, cfg *config.Config, m *metrics.Registry, log *zerolog.Logger, t Tuple) []*model.PatternRecord {
	var out []*model.PatternRecord
	for _, isBottom := range [2]bool{false, true} {
		cands := candidate.DoubleTopBottom(pivots, lookback, isBottom)
		m.CandidatesFound.WithLabelValues("dtb").Add(float64(len(cands)))
		for _, cand := range cands {
			rec, accepted := validator.ValidateDTB(cand, pivots, series, ind, cfg)
			logValidation(log, "dtb", t, rec, accepted)
			if accepted {
				m.PatternsAccepted.WithLabelValues("dtb").Inc()
				out = append(out, rec)
			}
		}
	}
	return out
}

func evaluateTTBCandidates(pivots []model.Pivot, lookback int, series *model.PriceSeries, ind *model.IndicatorColumns, cfg *config.Config, m *metrics.Registry, log *zerolog.Logger, t Tuple) []*model.PatternRecord {
	var out []*model.PatternRecord
	for _, isBottom := range [2]bool{false, true} {
		cands := candidate.TripleTopBottom(pivots, lookback, isBottom)
		m.CandidatesFound.WithLabelValues("ttb").Add(float64(len(cands)))
		for _, cand := range cands {
			rec, accepted := validator.ValidateTTB(cand, pivots, series, ind, cfg)
			logValidation(log, "ttb", t, rec, accepted)
			if accepted {
				m.PatternsAccepted.WithLabelValues("ttb").Inc()
				out = append(out, rec)
			}
		}
	}
	return out
}

func logValidation(log *zerolog.Logger, family string, t Tuple, rec *model.PatternRecord, accepted bool) {
	log.Debug().
		Str("ticker", t.Ticker).
		Str("family", family).
		Int("key_idx", rec.KeyIdx).
		Int("score", rec.ScoreTotal).
		Bool("accepted", accepted).
		Msg(fmt.Sprintf("%s candidate evaluated", family))
}
