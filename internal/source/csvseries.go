package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"patterncore/internal/model"
	"patterncore/internal/perr"
)

// CSVSeries replays a fixed bar history from a CSV file: time,open,high,
// low,close,volume, one per ticker+interval pair registered with it. It
// exists for offline golden-dataset runs and deterministic tests.
type CSVSeries struct {
	paths map[string]string // "ticker/interval" -> file path
}

// NewCSVSeries builds a replayer from a ticker/interval -> path map.
func NewCSVSeries(paths map[string]string) *CSVSeries {
	return &CSVSeries{paths: paths}
}

func (s *CSVSeries) Fetch(_ context.Context, ticker, interval string, limit int) (*model.PriceSeries, error) {
	key := ticker + "/" + interval
	path, ok := s.paths[key]
	if !ok {
		return nil, fmt.Errorf("%w: no CSV registered for %s", perr.ErrFetch, key)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", perr.ErrFetch, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", perr.ErrFetch, path, err)
	}

	var bars []model.Bar
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		bar, ok := parseCSVRow(row)
		if !ok {
			continue
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no valid bars in %s", perr.ErrFetch, path)
	}

	if limit > 0 && len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}
	return model.NewPriceSeries(ticker, bars), nil
}

func parseCSVRow(row []string) (model.Bar, bool) {
	ts, err0 := strconv.ParseInt(row[0], 10, 64)
	open, err1 := strconv.ParseFloat(row[1], 64)
	high, err2 := strconv.ParseFloat(row[2], 64)
	low, err3 := strconv.ParseFloat(row[3], 64)
	closePrice, err4 := strconv.ParseFloat(row[4], 64)
	volume, err5 := strconv.ParseFloat(row[5], 64)
	if err0 != nil || err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		return model.Bar{}, false
	}
	return model.Bar{
		Time:   time.UnixMilli(ts),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}, true
}
