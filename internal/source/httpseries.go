// Package source provides PriceSeries producers: an HTTP OHLCV fetcher
// and a CSV replayer, both implementing the single-method Producer
// interface the pipeline driver depends on.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"patterncore/internal/model"
	"patterncore/internal/perr"
)

// Producer fetches a PriceSeries for one (ticker, interval) pair.
type Producer interface {
	Fetch(ctx context.Context, ticker, interval string, limit int) (*model.PriceSeries, error)
}

// HTTPSeries fetches candlestick data from a Binance-compatible REST
// endpoint. Malformed rows are skipped and logged rather than failing the
// whole fetch; the fetch only errors if nothing survives parsing.
type HTTPSeries struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewHTTPSeries builds a producer against baseURL (e.g.
// "https://api.binance.com").
func NewHTTPSeries(baseURL string, client *http.Client, log zerolog.Logger) *HTTPSeries {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPSeries{baseURL: baseURL, client: client, log: log}
}

type klineRow []interface{}

// Fetch implements Producer.
func (s *HTTPSeries) Fetch(ctx context.Context, ticker, interval string, limit int) (*model.PriceSeries, error) {
	url := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d", s.baseURL, ticker, interval, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", perr.ErrFetch, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", perr.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %s", perr.ErrFetch, resp.Status)
	}

	var rows []klineRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", perr.ErrFetch, err)
	}

	bars := make([]model.Bar, 0, len(rows))
	for i, row := range rows {
		bar, ok := parseKlineRow(row)
		if !ok {
			s.log.Warn().Int("row", i).Str("ticker", ticker).Msg("skipping malformed kline row")
			continue
		}
		bars = append(bars, bar)
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no valid bars for %s after parsing", perr.ErrFetch, ticker)
	}
	return model.NewPriceSeries(ticker, bars), nil
}

func parseKlineRow(row klineRow) (model.Bar, bool) {
	if len(row) < 7 {
		return model.Bar{}, false
	}

	openTimeMs, ok := row[0].(float64)
	if !ok {
		return model.Bar{}, false
	}
	open, err1 := strconv.ParseFloat(asString(row[1]), 64)
	high, err2 := strconv.ParseFloat(asString(row[2]), 64)
	low, err3 := strconv.ParseFloat(asString(row[3]), 64)
	closePrice, err4 := strconv.ParseFloat(asString(row[4]), 64)
	volume, err5 := strconv.ParseFloat(asString(row[5]), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		return model.Bar{}, false
	}
	if high < low || high < open || high < closePrice || low > open || low > closePrice {
		return model.Bar{}, false
	}

	return model.Bar{
		Time:   time.UnixMilli(int64(openTimeMs)),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}, true
}

func asString(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return "0"
	}
	return s
}
