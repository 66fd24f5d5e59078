package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patterncore/internal/model"
)

func pivotSeq(kinds ...model.PivotKind) []model.Pivot {
	out := make([]model.Pivot, len(kinds))
	for i, k := range kinds {
		out[i] = model.Pivot{Idx: i, Price: float64(i), Kind: k}
	}
	return out
}

func TestHeadAndShoulders_MatchesSevenPivotWindow(t *testing.T) {
	p, v := model.Peak, model.Valley
	// standard (topping): shoulders/head (p1,p3,p5) are peaks, so the
	// window starts on the opposite kind (valley).
	pivots := pivotSeq(v, p, v, p, v, p, v)
	cands := HeadAndShoulders(pivots, 0, false)
	require.Len(t, cands, 1)
	assert.Equal(t, model.FamilyHNS, cands[0].Family)
	assert.Equal(t, model.TipoOCO, cands[0].Tipo)
}

func TestHeadAndShoulders_Inverse(t *testing.T) {
	p, v := model.Peak, model.Valley
	pivots := pivotSeq(p, v, p, v, p, v, p)
	cands := HeadAndShoulders(pivots, 0, true)
	require.Len(t, cands, 1)
	assert.Equal(t, model.TipoOCOI, cands[0].Tipo)
}

func TestDoubleTopBottom_NoMatchWrongAlternation(t *testing.T) {
	p, v := model.Peak, model.Valley
	pivots := pivotSeq(p, p, v, p, v)
	cands := DoubleTopBottom(pivots, 0, false)
	assert.Empty(t, cands)
}

func TestTripleTopBottom_Matches(t *testing.T) {
	p, v := model.Peak, model.Valley
	// triple bottom: extremes (p1,p3,p5) are valleys, window starts on peak.
	pivots := pivotSeq(p, v, p, v, p, v, p)
	cands := TripleTopBottom(pivots, 0, true)
	require.Len(t, cands, 1)
	assert.Equal(t, model.TipoTB, cands[0].Tipo)
}

func TestRecentLookbackRestriction(t *testing.T) {
	p, v := model.Peak, model.Valley
	pivots := pivotSeq(v, p, v, p, v, p, v, p, v, p, v)
	restricted := recent(pivots, 5)
	assert.Len(t, restricted, 5)
	assert.Equal(t, pivots[len(pivots)-5:], restricted)
}
