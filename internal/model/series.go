// Package model holds the data types shared across the pattern-detection
// pipeline: price series, indicator columns, pivots, candidates, and the
// output record.
package model

import "time"

// Bar is a single OHLCV sample.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries is a columnar bar store: parallel slices indexed by bar
// position, not a dataframe and not a slice of structs. Rules read by
// index, never by label.
type PriceSeries struct {
	Ticker string
	T      []time.Time
	O      []float64
	H      []float64
	L      []float64
	C      []float64
	V      []float64
}

// NewPriceSeries builds a columnar series from bars in ascending time order.
func NewPriceSeries(ticker string, bars []Bar) *PriceSeries {
	n := len(bars)
	s := &PriceSeries{
		Ticker: ticker,
		T:      make([]time.Time, n),
		O:      make([]float64, n),
		H:      make([]float64, n),
		L:      make([]float64, n),
		C:      make([]float64, n),
		V:      make([]float64, n),
	}
	for i, b := range bars {
		s.T[i] = b.Time
		s.O[i] = b.Open
		s.H[i] = b.High
		s.L[i] = b.Low
		s.C[i] = b.Close
		s.V[i] = b.Volume
	}
	return s
}

// Len returns the bar count.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.C)
}
