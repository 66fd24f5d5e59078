package indicator

import (
	"patterncore/internal/config"
	"patterncore/internal/model"
)

// Enrich computes every indicator column for series under cfg. It is a
// pure function: given the same series and config it always returns
// bitwise-identical columns (SPEC_FULL §8, invariant 7), and every column
// is exactly len(series) long (invariant 3), NaN-padded rather than
// truncated wherever the underlying window hasn't filled yet.
func Enrich(series *model.PriceSeries, cfg *config.Config) *model.IndicatorColumns {
	rsiClose := RSI(series.C, cfg.RSI.Length)
	rsiHigh := RSI(series.H, cfg.RSI.Length)
	rsiLow := RSI(series.L, cfg.RSI.Length)

	macd, macdSignal, macdHist := MACD(series.C, cfg.MACD.Fast, cfg.MACD.Slow, cfg.MACD.Signal)

	stochK, stochD := Stochastic(series.H, series.L, series.C, cfg.Stoch.K, cfg.Stoch.D, cfg.Stoch.SmoothK)

	obv := OBV(series.C, series.V)

	atr := ATR(series.H, series.L, series.C, 14)

	return &model.IndicatorColumns{
		RSIClose: rsiClose,
		RSIHigh:  rsiHigh,
		RSILow:   rsiLow,
		MACD:     macd,
		MACDs:    macdSignal,
		MACDh:    macdHist,
		STOCHk:   stochK,
		STOCHd:   stochD,
		OBV:      obv,
		ATR14:    atr,
	}
}
