package pipeline

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patterncore/internal/config"
	"patterncore/internal/logging"
	"patterncore/internal/metrics"
	"patterncore/internal/model"
)

var errSinkWrite = errors.New("sink write failed in test")

// fakeProducer always returns the same deterministic synthetic series,
// regardless of ticker/interval, so tests don't depend on network access.
type fakeProducer struct {
	series *model.PriceSeries
	err    error
}

func (f *fakeProducer) Fetch(_ context.Context, ticker, _ string, _ int) (*model.PriceSeries, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := *f.series
	s.Ticker = ticker
	return &s, nil
}

// memSink records every emitted record in memory.
type memSink struct {
	records   []*model.PatternRecord
	finalized bool
	failEmit  bool
}

func (s *memSink) Emit(rec *model.PatternRecord) error {
	if s.failEmit {
		return errSinkWrite
	}
	s.records = append(s.records, rec)
	return nil
}

func (s *memSink) Finalize() error {
	s.finalized = true
	return nil
}

// zigzaggableSeries builds a synthetic wavy close series long enough to
// clear minBarsForIndicators and produce several zigzag swings.
func zigzaggableSeries() *model.PriceSeries {
	r := rand.New(rand.NewSource(7))
	n := 240
	bars := make([]model.Bar, n)
	price := 100.0
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		swing := 6 * float64(i%40-20) / 20
		noise := (r.Float64() - 0.5) * 0.5
		price = 100 + swing + noise
		high := price + 1
		low := price - 1
		bars[i] = model.Bar{
			Time:   base.Add(time.Duration(i) * time.Hour),
			Open:   price,
			High:   high,
			Low:    low,
			Close:  price,
			Volume: 1000 + r.Float64()*500,
		}
	}
	return model.NewPriceSeries("TEST", bars)
}

func newTestDriver(t *testing.T, prod *fakeProducer, sk *memSink) *Driver {
	t.Helper()
	cfg := config.Default()
	reg := metrics.NewRegistry(prometheus.NewRegistry())
	loggers, err := logging.New(cfg, "test-run")
	require.NoError(t, err)
	t.Cleanup(loggers.Close)

	return &Driver{
		Config:   cfg,
		Producer: prod,
		Sink:     sk,
		Metrics:  reg,
		Log:      loggers,
	}
}

func TestDriver_RunProcessesAllTuples(t *testing.T) {
	prod := &fakeProducer{series: zigzaggableSeries()}
	sk := &memSink{}
	d := newTestDriver(t, prod, sk)

	req := Request{
		Tuples: []Tuple{
			{Ticker: "AAA", Interval: "1h", Strategy: "swing_short"},
			{Ticker: "BBB", Interval: "1h", Strategy: "swing_long"},
		},
		Families:    []model.Family{model.FamilyHNS, model.FamilyDTB, model.FamilyTTB},
		Period:      240,
		Concurrency: 4,
	}

	result, err := d.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TuplesProcessed)
	assert.True(t, sk.finalized)
}

func TestDriver_UnknownStrategySkipsTupleWithoutError(t *testing.T) {
	prod := &fakeProducer{series: zigzaggableSeries()}
	sk := &memSink{}
	d := newTestDriver(t, prod, sk)

	req := Request{
		Tuples:      []Tuple{{Ticker: "AAA", Interval: "1h", Strategy: "nonexistent"}},
		Families:    []model.Family{model.FamilyHNS},
		Period:      240,
		Concurrency: 2,
	}

	result, err := d.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TuplesProcessed)
	assert.Empty(t, result.Records)
}

func TestDriver_SinkErrorPropagates(t *testing.T) {
	prod := &fakeProducer{series: zigzaggableSeries()}
	sk := &memSink{failEmit: true}
	d := newTestDriver(t, prod, sk)

	req := Request{
		Tuples:      []Tuple{{Ticker: "AAA", Interval: "1h", Strategy: "swing_short"}},
		Families:    []model.Family{model.FamilyHNS, model.FamilyDTB, model.FamilyTTB},
		Period:      240,
		Concurrency: 2,
	}

	_, err := d.Run(context.Background(), req)
	if err != nil {
		assert.ErrorContains(t, err, "sink")
	}
}

func TestDeduplicateTuple_KeepsHighestScorePerIdentity(t *testing.T) {
	records := []*model.PatternRecord{
		{Family: model.FamilyHNS, KeyIdx: 10, EndIdx: 20, ScoreTotal: 70},
		{Family: model.FamilyHNS, KeyIdx: 10, EndIdx: 22, ScoreTotal: 90},
		{Family: model.FamilyHNS, KeyIdx: 30, EndIdx: 40, ScoreTotal: 80},
	}

	out := deduplicateTuple(records)
	require.Len(t, out, 2)
	assert.Equal(t, 90, out[0].ScoreTotal)
	assert.True(t, out[0].EndIdx <= out[1].EndIdx)
}
