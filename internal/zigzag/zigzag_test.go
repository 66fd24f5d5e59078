package zigzag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patterncore/internal/model"
)

func TestExtract_AlternatesAndMonotonic(t *testing.T) {
	close := []float64{
		100, 102, 105, 103, 98, 95, 99, 104, 110, 108, 101, 96, 92, 97, 103,
	}
	pivots := Extract(close, 0.03, false, 0.25)
	require.NotEmpty(t, pivots)

	for i := 1; i < len(pivots); i++ {
		assert.NotEqual(t, pivots[i-1].Kind, pivots[i].Kind, "pivots must alternate kind")
		assert.Greater(t, pivots[i].Idx, pivots[i-1].Idx, "pivot indices must strictly increase")
	}
}

func TestExtract_EmptySeries(t *testing.T) {
	assert.Nil(t, Extract(nil, 0.03, false, 0.25))
}

func TestExtract_NoReversalBigEnough(t *testing.T) {
	close := []float64{100, 100.1, 100.2, 100.3, 100.4}
	pivots := Extract(close, 0.05, false, 0.25)
	assert.Empty(t, pivots)
}

func TestExtract_ExtendsToLastBar(t *testing.T) {
	close := []float64{100, 110, 95, 120, 80, 95}
	withExt := Extract(close, 0.05, true, 0.1)
	withoutExt := Extract(close, 0.05, false, 0.1)
	assert.GreaterOrEqual(t, len(withExt), len(withoutExt))
	if len(withExt) > len(withoutExt) {
		last := withExt[len(withExt)-1]
		assert.Equal(t, len(close)-1, last.Idx)
	}
}
