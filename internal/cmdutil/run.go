package cmdutil

import (
	"context"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
	"github.com/UCLA-VAST/minimap2-acceleration/core/sched"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/pipeline"
)

// RunStream runs the shared pipeline, lets every tap observe each result,
// and streams results via send. It returns the pipeline statistics, the
// number of results sent, and the first error encountered.
func RunStream(
	ctx context.Context,
	cfg pipeline.Config,
	src sched.Source,
	taps []func(chain.Result),
	send func(chain.Result) error,
) (pipeline.Stats, int, error) {
	total := 0
	st, err := pipeline.ForEachResult(ctx, cfg, src, func(r chain.Result) error {
		for _, tap := range taps {
			tap(r)
		}
		if err := send(r); err != nil {
			return err
		}
		total++
		return nil
	})
	return st, total, err
}
