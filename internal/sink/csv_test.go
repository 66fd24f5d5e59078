package sink

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patterncore/internal/model"
)

func TestCSVSink_EmitAndFinalize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s, err := NewCSVSink(path)
	require.NoError(t, err)

	rec := &model.PatternRecord{
		Ticker:     "BTCUSDT",
		Timeframe:  "1h",
		Strategy:   "swing_short",
		Tipo:       model.TipoOCOI,
		Family:     model.FamilyHNS,
		ScoreTotal: 85,
		RuleOrder:  []string{"structure", "head_extremity"},
		Valid:      map[string]bool{"structure": true, "head_extremity": false},
		Pivots: []model.Pivot{
			{Idx: 1, Price: 100, Kind: model.Peak},
		},
	}
	require.NoError(t, s.Emit(rec))
	require.NoError(t, s.Finalize())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ticker", rows[0][0])
	assert.Equal(t, "BTCUSDT", rows[1][0])
	assert.Contains(t, rows[0], "valid_structure")
}
