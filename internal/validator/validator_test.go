package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patterncore/internal/config"
	"patterncore/internal/indicator"
	"patterncore/internal/model"
)

func barsFromCloses(closes []float64) []model.Bar {
	bars := make([]model.Bar, len(closes))
	t := time.Now()
	for i, c := range closes {
		bars[i] = model.Bar{
			Time:   t.Add(time.Duration(i) * time.Hour),
			Open:   c,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestValidateHNS_MandatoryStructuralRulesPass(t *testing.T) {
	closes := []float64{100, 95, 85, 92, 75, 92, 85, 95, 100, 105, 98, 100}
	bars := barsFromCloses(closes)
	bars[8].Volume = 3000 // breakout volume spike
	series := model.NewPriceSeries("BTCUSDT", bars)
	cfg := config.Default()
	ind := indicator.Enrich(series, cfg)

	pivots := []model.Pivot{
		{Idx: 0, Price: 100, Kind: model.Peak},
		{Idx: 2, Price: 85, Kind: model.Valley},
		{Idx: 3, Price: 92, Kind: model.Peak},
		{Idx: 4, Price: 75, Kind: model.Valley},
		{Idx: 6, Price: 85, Kind: model.Peak},
		{Idx: 7, Price: 95, Kind: model.Valley},
		{Idx: 9, Price: 105, Kind: model.Peak},
	}
	cand := model.PatternCandidate{Family: model.FamilyHNS, Tipo: model.TipoOCOI, Pivots: pivots, BreakoutIdx: -1}

	rec, _ := ValidateHNS(cand, pivots, series, ind, cfg)
	require.NotNil(t, rec)
	assert.True(t, rec.Valid["head_extremity"])
	assert.True(t, rec.Valid["base_trend"])
	assert.True(t, rec.Valid["structure"])
}

func TestValidateTTB_SymmetryViolationRejects(t *testing.T) {
	// Three peaks at 100, 100, 140: the third is far beyond tolerance.
	closes := []float64{90, 100, 95, 100, 95, 140, 100}
	bars := barsFromCloses(closes)
	series := model.NewPriceSeries("ETHUSDT", bars)
	cfg := config.Default()
	ind := indicator.Enrich(series, cfg)

	pivots := []model.Pivot{
		{Idx: 0, Price: 90, Kind: model.Valley},
		{Idx: 1, Price: 100, Kind: model.Peak},
		{Idx: 2, Price: 95, Kind: model.Valley},
		{Idx: 3, Price: 100, Kind: model.Peak},
		{Idx: 4, Price: 95, Kind: model.Valley},
		{Idx: 5, Price: 140, Kind: model.Peak},
		{Idx: 6, Price: 100, Kind: model.Valley},
	}
	cand := model.PatternCandidate{Family: model.FamilyTTB, Tipo: model.TipoTT, Pivots: pivots, BreakoutIdx: -1}

	rec, accepted := ValidateTTB(cand, pivots, series, ind, cfg)
	require.NotNil(t, rec)
	assert.False(t, rec.Valid["simetria_extremos"])
	assert.False(t, accepted)
}
