package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"patterncore/internal/config"
	"patterncore/internal/logging"
	"patterncore/internal/metrics"
	"patterncore/internal/model"
	"patterncore/internal/perr"
	"patterncore/internal/sink"
	"patterncore/internal/source"
)

// Driver fans Request.Tuples out across a bounded worker pool (§5.1),
// validating each tuple independently and emitting its survivors to a
// single sink as soon as that tuple finishes.
type Driver struct {
	Config   *config.Config
	Producer source.Producer
	Sink     sink.Sink
	Metrics  *metrics.Registry
	Log      *logging.Loggers
}

// Run evaluates every tuple in req concurrently. Each tuple deduplicates
// its own candidates by identity key (§4.7 step 5 — distinct tuples never
// share an identity key, since ticker/timeframe/strategy are part of it)
// and emits survivors in non-decreasing end_idx order (§5's per-tuple
// ordering guarantee) before the next tuple's goroutine is free to start
// emitting. A sink failure wraps perr.ErrSink, cancels the group's
// context (in-flight tuples finish; no new ones are scheduled), and is
// returned from Run. Fetch failures never reach the group error: they are
// counted and logged inside evaluateTuple.
func (d *Driver) Run(ctx context.Context, req Request) (*Result, error) {
	limit := req.Concurrency
	if limit <= 0 {
		limit = 10
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var mu sync.Mutex
	var emitted []*model.PatternRecord
	processed := 0

	for _, t := range req.Tuples {
		t := t
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			recs := evaluateTuple(gctx, t, req, d.Config, d.Producer, d.Metrics, d.Log)
			d.Metrics.TuplesProcessed.Inc()

			deduped := deduplicateTuple(recs)
			mu.Lock()
			defer mu.Unlock()
			for _, rec := range deduped {
				if err := d.Sink.Emit(rec); err != nil {
					d.Metrics.SinkErrors.Inc()
					return fmt.Errorf("%w: %v", perr.ErrSink, err)
				}
			}

			processed++
			emitted = append(emitted, deduped...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := d.Sink.Finalize(); err != nil {
		d.Metrics.SinkErrors.Inc()
		return nil, fmt.Errorf("%w: finalize: %v", perr.ErrSink, err)
	}

	byFamily := map[string]int{}
	for _, rec := range emitted {
		byFamily[string(rec.Family)]++
	}

	return &Result{
		TuplesProcessed: processed,
		Records:         emitted,
		ByFamily:        byFamily,
	}, nil
}

// deduplicateTuple applies §4.7's identity-key rule within one tuple's
// candidate set: group by (family, key_idx) and keep the best record per
// group, where "best" is higher score_total then later end_idx then
// first-seen. The surviving records are returned sorted by non-decreasing
// end_idx, the ordering §5 guarantees within a tuple.
func deduplicateTuple(records []*model.PatternRecord) []*model.PatternRecord {
	type key struct {
		family model.Family
		keyIdx int
	}

	best := make(map[key]*model.PatternRecord)
	order := make(map[key]int)
	for i, rec := range records {
		k := key{rec.Family, rec.KeyIdx}
		cur, ok := best[k]
		if !ok || better(rec, cur) {
			best[k] = rec
			order[k] = i
		}
	}

	out := make([]*model.PatternRecord, 0, len(best))
	for _, rec := range best {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EndIdx != out[j].EndIdx {
			return out[i].EndIdx < out[j].EndIdx
		}
		ki := key{out[i].Family, out[i].KeyIdx}
		kj := key{out[j].Family, out[j].KeyIdx}
		return order[ki] < order[kj]
	})
	return out
}

func better(candidate, incumbent *model.PatternRecord) bool {
	if candidate.ScoreTotal != incumbent.ScoreTotal {
		return candidate.ScoreTotal > incumbent.ScoreTotal
	}
	return candidate.EndIdx > incumbent.EndIdx
}
