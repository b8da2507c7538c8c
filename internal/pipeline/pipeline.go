// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
	"github.com/UCLA-VAST/minimap2-acceleration/core/sched"
)

// Backends accepted by Config.Backend.
const (
	BackendLanes  = "lanes"
	BackendDirect = "direct"
)

// Config controls the chaining pipeline.
type Config struct {
	Backend   string // BackendLanes (default) or BackendDirect
	Lanes     int    // lane count for the lanes backend (>=1)
	BatchSize int    // anchors finalized per lane per round (0 = sched.DefaultBatchSize)
	Threads   int    // concurrent engines (0 = all CPUs)

	// OnRound, if set, is called from the driving goroutine after each
	// round has been chained. Lanes backend only.
	OnRound func(sched.Round)
}

// Stats summarises a run.
type Stats struct {
	Queries         int
	Anchors         int
	Rounds          int
	Batches         int
	NullBatches     int
	ParamMismatches int
	Kernel          time.Duration // wall time spent inside chaining kernels
	Elapsed         time.Duration
}

// ForEachResult chains every query from src and calls visit with each
// result in input order. It returns the first error encountered, including
// context cancellation, together with the statistics gathered so far.
func ForEachResult(ctx context.Context, cfg Config, src sched.Source, visit func(chain.Result) error) (Stats, error) {
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.NumCPU()
	}
	if cfg.Lanes < 1 {
		cfg.Lanes = 1
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = sched.DefaultBatchSize
	}
	start := time.Now()
	var (
		st  Stats
		err error
	)
	switch cfg.Backend {
	case "", BackendLanes:
		st, err = runLanes(ctx, cfg, src, visit)
	case BackendDirect:
		st, err = runDirect(ctx, cfg, src, visit)
	default:
		return Stats{}, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	st.Elapsed = time.Since(start)
	return st, err
}
