// Package metrics exposes run counters as Prometheus gauges/counters,
// scraped via an HTTP handler the CLI optionally serves at --metrics-addr.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every counter the pipeline driver updates during a run.
type Registry struct {
	TuplesProcessed prometheus.Counter
	FetchErrors     prometheus.Counter
	CandidatesFound *prometheus.CounterVec
	PatternsAccepted *prometheus.CounterVec
	SinkErrors      prometheus.Counter
}

// NewRegistry builds and registers every metric against reg.
func NewRegistry(reg *prometheus.Registry) *Registry {
	r := &Registry{
		TuplesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "patterncore_tuples_processed_total",
			Help: "Number of (ticker, interval, strategy) tuples processed.",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "patterncore_fetch_errors_total",
			Help: "Number of tuples that failed during series acquisition.",
		}),
		CandidatesFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "patterncore_candidates_found_total",
			Help: "Number of candidates enumerated, by pattern family.",
		}, []string{"family"}),
		PatternsAccepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "patterncore_patterns_accepted_total",
			Help: "Number of candidates accepted, by pattern family.",
		}, []string{"family"}),
		SinkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "patterncore_sink_errors_total",
			Help: "Number of record emissions that failed.",
		}),
	}

	reg.MustRegister(r.TuplesProcessed, r.FetchErrors, r.CandidatesFound, r.PatternsAccepted, r.SinkErrors)
	return r
}
