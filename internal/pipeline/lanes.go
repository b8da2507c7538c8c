// internal/pipeline/lanes.go
package pipeline

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
	"github.com/UCLA-VAST/minimap2-acceleration/core/sched"
)

// runLanes drives scheduler rounds through one engine per lane. Lanes in a
// round run concurrently (at most cfg.Threads at a time) and meet at a
// barrier before the round is deinterleaved. Cancellation is observed
// between rounds.
func runLanes(ctx context.Context, cfg Config, src sched.Source, visit func(chain.Result) error) (Stats, error) {
	s := sched.New(src, sched.Config{Lanes: cfg.Lanes, BatchSize: cfg.BatchSize})
	d := sched.NewDeinterleaver(cfg.Lanes, cfg.BatchSize)

	engines := make([]*chain.Lane, cfg.Lanes)
	outs := make([][]chain.Step, cfg.Lanes)
	for i := range engines {
		engines[i] = chain.NewLane()
		outs[i] = make([]chain.Step, cfg.BatchSize)
	}
	sem := make(chan struct{}, cfg.Threads)

	var kernel time.Duration
	stats := func() Stats {
		ss := s.Stats()
		return Stats{
			Queries:         ss.Queries,
			Anchors:         ss.Anchors,
			Rounds:          ss.Rounds,
			Batches:         ss.Batches,
			NullBatches:     ss.NullBatches,
			ParamMismatches: ss.ParamMismatches,
			Kernel:          kernel,
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return stats(), err
		}
		r, err := s.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats(), err
		}

		t0 := time.Now()
		var wg sync.WaitGroup
		for i := range r.Batches {
			b := &r.Batches[i]
			if b.IsNull() {
				continue
			}
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, b *sched.Batch) {
				defer wg.Done()
				defer func() { <-sem }()
				engines[i].Process(b.Anchors, b.NewQuery, b.Base(cfg.BatchSize), b.Params, outs[i])
			}(i, b)
		}
		wg.Wait()
		kernel += time.Since(t0)

		if cfg.OnRound != nil {
			cfg.OnRound(r)
		}
		if err := d.Consume(r, outs); err != nil {
			return stats(), err
		}
		for _, res := range d.Drain() {
			if err := visit(res); err != nil {
				return stats(), err
			}
		}
	}
	return stats(), d.Finish()
}
