package rules

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"patterncore/internal/config"
	"patterncore/internal/model"
)

func TestStructure(t *testing.T) {
	pivots := []model.Pivot{
		{Idx: 0, Price: 10, Kind: model.Valley},
		{Idx: 1, Price: 12, Kind: model.Peak},
		{Idx: 2, Price: 9, Kind: model.Valley},
	}
	expected := []model.PivotKind{model.Valley, model.Peak, model.Valley}
	assert.True(t, Structure(pivots, expected).Pass)

	badKind := []model.Pivot{pivots[0], pivots[0]}
	assert.False(t, Structure(badKind, expected[:2]).Pass)
}

func TestExtremityInContext(t *testing.T) {
	series := model.NewPriceSeries("X", []model.Bar{
		{High: 100, Low: 90},
		{High: 101, Low: 91},
		{High: 110, Low: 95}, // the pivot bar, a peak at idx 2
		{High: 102, Low: 92},
		{High: 103, Low: 93},
	})
	pivot := model.Pivot{Idx: 2, Price: 110, Kind: model.Peak}
	res := ExtremityInContext(series, pivot, 2, false)
	assert.True(t, res.Pass)

	tallerNeighbor := model.NewPriceSeries("X", []model.Bar{
		{High: 100, Low: 90},
		{High: 120, Low: 91},
		{High: 110, Low: 95},
		{High: 102, Low: 92},
	})
	res2 := ExtremityInContext(tallerNeighbor, pivot, 2, false)
	assert.False(t, res2.Pass)
}

func TestNecklineFlatness(t *testing.T) {
	p2 := model.Pivot{Price: 100}
	p4 := model.Pivot{Price: 101}
	assert.True(t, NecklineFlatness(p2, p4, 50, 0.1).Pass)
	assert.False(t, NecklineFlatness(p2, p4, 50, 0.001).Pass)
}

func TestBreakoutFoundAndRetest(t *testing.T) {
	bars := make([]model.Bar, 10)
	for i := range bars {
		bars[i] = model.Bar{Close: 100}
	}
	bars[5].Close = 95 // breaks below 100 at idx 5
	series := model.NewPriceSeries("X", bars)

	res, idx := BreakoutFound(series, 3, 100, false, 5)
	assert.True(t, res.Pass)
	assert.Equal(t, 5, idx)

	atr := make([]float64, 10)
	for i := range atr {
		atr[i] = 1
	}
	retestRes := NecklineRetest(series, atr, 6, 100, 2, 0.01)
	assert.True(t, retestRes.Pass)
}

func TestRSIDivergence(t *testing.T) {
	cfg := config.Default().RSI
	rsi := make([]float64, 10)
	for i := range rsi {
		rsi[i] = math.NaN()
	}
	rsi[2] = 85
	rsi[6] = 75

	pivotA := model.Pivot{Idx: 2, Price: 100, Kind: model.Peak}
	pivotB := model.Pivot{Idx: 6, Price: 110, Kind: model.Peak}
	res := RSIDivergence(pivotA, pivotB, rsi, cfg)
	assert.True(t, res.Pass)
}
