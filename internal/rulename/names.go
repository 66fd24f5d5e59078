// Package rulename centralizes the rule identifiers used as map keys in
// config.ScoringConfig, as the Valid map in model.PatternRecord, and as
// valid_<rule> CSV column names, so the three stay in lockstep.
package rulename

const (
	Structure            = "structure"
	HeadExtremity        = "head_extremity"
	ShoulderSymmetry     = "shoulder_symmetry"
	NecklineFlatness     = "neckline_flatness"
	BaseTrend            = "base_trend"
	BreakoutFound        = "breakout_found"
	NecklineRetestP6     = "neckline_retest_p6"
	ContextExtremityP1   = "context_extremity_p1"
	ContextExtremityP3   = "context_extremity_p3"
	SimetriaExtremos     = "simetria_extremos"
	ContextoTendencia    = "contexto_tendencia"
	NecklineRetestP4     = "neckline_retest_p4"
	RSIDivergence        = "rsi_divergence_strength"
	MACDSignalCross      = "macd_signal_cross"
	MACDHistDivergence   = "macd_histogram_divergence"
	StochasticConfirm    = "stochastic_confirmation"
	OBVDivergence        = "obv_divergence"
	VolumeBreakout       = "breakout_volume"
	VolumeProfile        = "volume_profile"
)
