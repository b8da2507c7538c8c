// internal/pipeline/direct.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
	"github.com/UCLA-VAST/minimap2-acceleration/core/sched"
)

// runDirect chains each query independently with its own limits. Workers
// pull from a jobs channel; a single collector restores input order.
func runDirect(parent context.Context, cfg Config, src sched.Source, visit func(chain.Result) error) (Stats, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	type job struct {
		ord int
		q   chain.Query
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan chain.Result, cfg.Threads*2)
	var kernel atomic.Int64

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			lane := chain.NewLane()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					t0 := time.Now()
					res := chain.RunWith(lane, j.q, j.q.Params())
					kernel.Add(int64(time.Since(t0)))
					res.ID = j.ord
					select {
					case results <- res:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: hold results until every earlier query has been visited.
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		held := make(map[int]chain.Result)
		next := 0
		for res := range results {
			if cerr != nil {
				continue
			}
			held[res.ID] = res
			for {
				r, ok := held[next]
				if !ok {
					break
				}
				delete(held, next)
				next++
				if err := visit(r); err != nil {
					cerr = err
					cancel()
					break
				}
			}
		}
	}()

	// Feed work
	var (
		st   Stats
		ferr error
	)
feed:
	for ord := 0; ; ord++ {
		q, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			ferr = fmt.Errorf("load query %d: %w", ord, err)
			break
		}
		if q.N != len(q.Anchors) {
			ferr = fmt.Errorf("query %d: header says %d anchors, got %d", q.ID, q.N, len(q.Anchors))
			break
		}
		st.Queries++
		st.Anchors += len(q.Anchors)
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{ord: ord, q: q}:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()
	st.Kernel = time.Duration(kernel.Load())

	if cerr != nil {
		return st, cerr
	}
	if err := parent.Err(); err != nil {
		return st, err
	}
	return st, ferr
}
