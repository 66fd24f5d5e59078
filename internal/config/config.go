// Package config defines the single immutable configuration value that
// carries every threshold, weight, lookback and scoring minimum the core
// uses (SPEC_FULL §4.1), replacing the source's global mutable config
// object. A Config is built once by Default, optionally layered with
// LoadYAML overrides, and then passed by pointer to every component; no
// component mutates it and no component reads an environment variable to
// decide rule behavior.
package config

import "patterncore/internal/rulename"

// RSIConfig holds the RSI thresholds shared by the indicator engine and
// the rsi_divergence_strength rule.
type RSIConfig struct {
	Length            int     `yaml:"length"`
	Overbought        float64 `yaml:"overbought"`
	Oversold          float64 `yaml:"oversold"`
	StrongOverbought  float64 `yaml:"strong_overbought"`
	StrongOversold    float64 `yaml:"strong_oversold"`
	DivergenceMinDelta float64 `yaml:"divergence_min_delta"`
}

// StochConfig holds the Stochastic oscillator thresholds.
type StochConfig struct {
	K                  int     `yaml:"k"`
	D                  int     `yaml:"d"`
	SmoothK            int     `yaml:"smooth_k"`
	Overbought         float64 `yaml:"overbought"`
	Oversold           float64 `yaml:"oversold"`
	CrossLookbackBars  int     `yaml:"cross_lookback_bars"`
	DivergenceMinDelta float64 `yaml:"divergence_min_delta"`
	RequireOBOS        bool    `yaml:"require_obos"`
}

// MACDConfig holds the MACD periods and crossover tolerances.
type MACDConfig struct {
	Fast                    int `yaml:"fast"`
	Slow                    int `yaml:"slow"`
	Signal                  int `yaml:"signal"`
	SignalCrossLookbackBars int `yaml:"signal_cross_lookback_bars"`
	CrossMaxAgeBars         int `yaml:"cross_max_age_bars"`
}

// VolumeBreakoutConfig holds the breakout_volume rule's parameters.
type VolumeBreakoutConfig struct {
	LookbackBars  int     `yaml:"lookback_bars"`
	Multiplier    float64 `yaml:"multiplier"`
	SearchMaxBars int     `yaml:"search_max_bars"`
}

// NecklineRetestConfig holds the neckline_retest rule's tolerance.
type NecklineRetestConfig struct {
	ATRMultiplier  float64 `yaml:"atr_multiplier"`
	PctOfNeckline  float64 `yaml:"pct_of_neckline"`
}

// ZigZagConfig holds the pivot extractor's parameters, including the named
// deviation_percent presets ("strategies") callers select per tuple.
type ZigZagConfig struct {
	ExtendToLastBar          bool               `yaml:"extend_to_last_bar"`
	ExtensionDeviationFactor float64            `yaml:"extension_deviation_factor"`
	Strategies               map[string]float64 `yaml:"strategies"`
}

// ContextConfig holds extremity_in_context's window sizing.
type ContextConfig struct {
	HeadExtremeLookbackFactor float64 `yaml:"head_extreme_lookback_factor"`
	MinBars                   int     `yaml:"min_bars"`
}

// ToleranceConfig holds the symmetry/trend tolerance fractions shared by
// DTB/TTB rules.
type ToleranceConfig struct {
	SymmetryToleranceFactor float64 `yaml:"symmetry_tolerance_factor"`
	TrendMinDiffFactor      float64 `yaml:"trend_min_diff_factor"`
}

// RuleWeight names one rule's contribution to a family's score and
// whether it gates acceptance outright.
type RuleWeight struct {
	Name      string `yaml:"name"`
	Weight    int    `yaml:"weight"`
	Mandatory bool   `yaml:"mandatory"`
}

// ScoringConfig holds the per-family weight maps and minimum scores.
type ScoringConfig struct {
	WeightsHNS []RuleWeight `yaml:"weights_hns"`
	WeightsDTB []RuleWeight `yaml:"weights_dtb"`
	WeightsTTB []RuleWeight `yaml:"weights_ttb"`
	MinimumHNS int          `yaml:"minimum_score_hns"`
	MinimumDTB int          `yaml:"minimum_score_dtb"`
	MinimumTTB int          `yaml:"minimum_score_ttb"`
}

// RecencyConfig restricts candidate enumeration to recently-formed pivots.
type RecencyConfig struct {
	RecentPatternsLookbackCount int `yaml:"recent_patterns_lookback_count"`
}

// DebugConfig toggles per-family structured debug logging.
type DebugConfig struct {
	HNSDebug bool   `yaml:"hns_debug"`
	DTBDebug bool   `yaml:"dtb_debug"`
	TTBDebug bool   `yaml:"ttb_debug"`
	DebugDir string `yaml:"debug_dir"`
}

// Operational holds the handful of genuinely environment-shaped settings
// (credentials, connection strings, bind addresses) for the optional
// sinks/notifier — never rule thresholds. Populated by LoadEnv, not YAML.
type Operational struct {
	TelegramBotToken string
	TelegramChatID   string
	MongoURI         string
	MetricsAddr      string
}

// Config is the single immutable value passed to every component.
type Config struct {
	RSI            RSIConfig            `yaml:"rsi"`
	Stoch          StochConfig          `yaml:"stochastic"`
	MACD           MACDConfig           `yaml:"macd"`
	VolumeBreakout VolumeBreakoutConfig `yaml:"volume_breakout"`
	NecklineRetest NecklineRetestConfig `yaml:"neckline_retest"`
	ZigZag         ZigZagConfig         `yaml:"zigzag"`
	Context        ContextConfig        `yaml:"context"`
	Tolerance      ToleranceConfig      `yaml:"tolerance"`
	Scoring        ScoringConfig        `yaml:"scoring"`
	Recency        RecencyConfig        `yaml:"recency"`
	Debug          DebugConfig          `yaml:"debug"`

	Operational Operational `yaml:"-"`
}

// Default builds the built-in configuration: §4.1's documented defaults
// plus the mandatory/optional weight partition of §4.6.
func Default() *Config {
	return &Config{
		RSI: RSIConfig{
			Length:             14,
			Overbought:         70,
			Oversold:           30,
			StrongOverbought:   80,
			StrongOversold:     20,
			DivergenceMinDelta: 0.10,
		},
		Stoch: StochConfig{
			K:                  14,
			D:                  3,
			SmoothK:            3,
			Overbought:         80,
			Oversold:           20,
			CrossLookbackBars:  5,
			DivergenceMinDelta: 0.10,
			RequireOBOS:        false,
		},
		MACD: MACDConfig{
			Fast:                    12,
			Slow:                    26,
			Signal:                  9,
			SignalCrossLookbackBars: 10,
			CrossMaxAgeBars:         3,
		},
		VolumeBreakout: VolumeBreakoutConfig{
			LookbackBars:  20,
			Multiplier:    1.5,
			SearchMaxBars: 10,
		},
		NecklineRetest: NecklineRetestConfig{
			ATRMultiplier: 5.0,
			PctOfNeckline: 0.01,
		},
		ZigZag: ZigZagConfig{
			ExtendToLastBar:          true,
			ExtensionDeviationFactor: 0.25,
			Strategies: map[string]float64{
				"swing_short":         0.03,
				"swing_long":          0.08,
				"intraday_momentum":   0.015,
			},
		},
		Context: ContextConfig{
			HeadExtremeLookbackFactor: 2,
			MinBars:                   8,
		},
		Tolerance: ToleranceConfig{
			SymmetryToleranceFactor: 0.35,
			TrendMinDiffFactor:      0.01,
		},
		Scoring:  defaultScoring(),
		Recency:  RecencyConfig{RecentPatternsLookbackCount: 30},
		Debug:    DebugConfig{DebugDir: "debug"},
	}
}

func defaultScoring() ScoringConfig {
	return ScoringConfig{
		WeightsHNS: []RuleWeight{
			{Name: rulename.Structure, Weight: 0, Mandatory: true},
			{Name: rulename.HeadExtremity, Weight: 0, Mandatory: true},
			{Name: rulename.ShoulderSymmetry, Weight: 0, Mandatory: true},
			{Name: rulename.NecklineFlatness, Weight: 0, Mandatory: true},
			{Name: rulename.BaseTrend, Weight: 0, Mandatory: true},
			{Name: rulename.BreakoutFound, Weight: 0, Mandatory: true},
			{Name: rulename.NecklineRetestP6, Weight: 0, Mandatory: true},
			{Name: rulename.RSIDivergence, Weight: 20, Mandatory: false},
			{Name: rulename.MACDSignalCross, Weight: 15, Mandatory: false},
			{Name: rulename.MACDHistDivergence, Weight: 15, Mandatory: false},
			{Name: rulename.StochasticConfirm, Weight: 15, Mandatory: false},
			{Name: rulename.OBVDivergence, Weight: 15, Mandatory: false},
			{Name: rulename.VolumeBreakout, Weight: 10, Mandatory: false},
			{Name: rulename.VolumeProfile, Weight: 10, Mandatory: false},
		},
		WeightsDTB: []RuleWeight{
			{Name: rulename.Structure, Weight: 0, Mandatory: true},
			{Name: rulename.ContextExtremityP1, Weight: 0, Mandatory: true},
			{Name: rulename.ContextExtremityP3, Weight: 0, Mandatory: true},
			{Name: rulename.ContextoTendencia, Weight: 0, Mandatory: true},
			{Name: rulename.SimetriaExtremos, Weight: 0, Mandatory: true},
			{Name: rulename.NecklineFlatness, Weight: 0, Mandatory: true},
			{Name: rulename.BreakoutFound, Weight: 0, Mandatory: true},
			{Name: rulename.NecklineRetestP4, Weight: 0, Mandatory: true},
			{Name: rulename.RSIDivergence, Weight: 25, Mandatory: false},
			{Name: rulename.MACDSignalCross, Weight: 15, Mandatory: false},
			{Name: rulename.MACDHistDivergence, Weight: 15, Mandatory: false},
			{Name: rulename.StochasticConfirm, Weight: 15, Mandatory: false},
			{Name: rulename.OBVDivergence, Weight: 15, Mandatory: false},
			{Name: rulename.VolumeBreakout, Weight: 10, Mandatory: false},
			{Name: rulename.VolumeProfile, Weight: 5, Mandatory: false},
		},
		WeightsTTB: []RuleWeight{
			{Name: rulename.Structure, Weight: 0, Mandatory: true},
			{Name: rulename.ContextExtremityP1, Weight: 0, Mandatory: true},
			{Name: rulename.ContextExtremityP3, Weight: 0, Mandatory: true},
			{Name: rulename.ContextoTendencia, Weight: 0, Mandatory: true},
			{Name: rulename.SimetriaExtremos, Weight: 0, Mandatory: true},
			{Name: rulename.NecklineFlatness, Weight: 0, Mandatory: true},
			{Name: rulename.BreakoutFound, Weight: 0, Mandatory: true},
			{Name: rulename.NecklineRetestP4, Weight: 0, Mandatory: true},
			{Name: rulename.RSIDivergence, Weight: 20, Mandatory: false},
			{Name: rulename.MACDSignalCross, Weight: 15, Mandatory: false},
			{Name: rulename.MACDHistDivergence, Weight: 15, Mandatory: false},
			{Name: rulename.StochasticConfirm, Weight: 15, Mandatory: false},
			{Name: rulename.OBVDivergence, Weight: 15, Mandatory: false},
			{Name: rulename.VolumeBreakout, Weight: 15, Mandatory: false},
			{Name: rulename.VolumeProfile, Weight: 5, Mandatory: false},
		},
		MinimumHNS: 70,
		MinimumDTB: 70,
		MinimumTTB: 70,
	}
}
