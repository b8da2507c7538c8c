// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/UCLA-VAST/minimap2-acceleration/core/anchorio"
	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
	"github.com/UCLA-VAST/minimap2-acceleration/core/sched"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/cmdutil"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/digest"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/metrics"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/pipeline"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/progress"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/runutil"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/writers"
)

type Options struct {
	Inputs []string

	Backend   string
	Lanes     int
	BatchSize int
	Threads   int

	Output   string
	Header   bool
	Checksum bool

	Progress    bool
	MetricsAddr string
	Verbose     bool
	Quiet       bool
}

// inputError marks failures that came from reading the input, which exit
// with 2 instead of 3.
type inputError struct{ err error }

func (e inputError) Error() string { return e.err.Error() }
func (e inputError) Unwrap() error { return e.err }

type inputSource struct{ src sched.Source }

func (s inputSource) Next() (chain.Query, error) {
	q, err := s.src.Next()
	if err != nil && !errors.Is(err, io.EOF) {
		return q, inputError{err}
	}
	return q, err
}

// Run chains every query in o.Inputs and writes results to stdout.
// Exit codes: 0 ok, 2 bad input or setup, 3 runtime/write error, 130 cancelled.
func Run(parent context.Context, stdout, stderr io.Writer, o Options) int {
	log := cmdutil.NewLogger(stderr, o.Verbose, o.Quiet)
	if !writers.Known(o.Output) {
		fmt.Fprintf(stderr, "error: unknown output format %q\n", o.Output)
		return 2
	}

	lanes := runutil.EffectiveLanes(o.Lanes)
	thr := runutil.EffectiveThreads(o.Threads)
	if o.Backend == pipeline.BackendLanes {
		thr = runutil.LaneThreads(o.Threads, lanes)
	}
	for _, w := range runutil.LaneWarnings(o.Backend, lanes, o.Threads) {
		cmdutil.Warnf(stderr, o.Quiet, "%s", w)
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var m *metrics.Metrics
	if o.MetricsAddr != "" {
		m = metrics.New()
		addr, err := m.Serve(ctx, o.MetricsAddr, log)
		if err != nil {
			fmt.Fprintf(stderr, "error: metrics: %v\n", err)
			return 2
		}
		log.Info("metrics endpoint", slog.String("url", "http://"+addr+"/metrics"))
	}

	bar := progress.New(stderr, o.Progress)
	var dg digest.Digest
	taps := []func(chain.Result){m.ObserveResult, func(chain.Result) { bar.Inc() }}
	if o.Checksum {
		taps = append(taps, dg.Add)
	}

	files := anchorio.OpenFiles(o.Inputs)
	defer files.Close()

	outw := bufio.NewWriter(stdout)
	inCh, writeErr := writers.Start(outw, o.Output, o.Header, thr*4)

	cfg := pipeline.Config{
		Backend:   o.Backend,
		Lanes:     lanes,
		BatchSize: o.BatchSize,
		Threads:   thr,
		OnRound:   m.ObserveRound,
	}
	log.Debug("chaining",
		slog.String("backend", cfg.Backend),
		slog.Int("lanes", cfg.Lanes),
		slog.Int("batch_size", cfg.BatchSize),
		slog.Int("threads", cfg.Threads),
		slog.Int("inputs", len(o.Inputs)),
	)

	st, total, perr := cmdutil.RunStream(ctx, cfg, inputSource{files}, taps,
		func(r chain.Result) error {
			select {
			case inCh <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)
	bar.Done()

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		var ie inputError
		switch {
		case errors.Is(perr, context.Canceled):
			return 130
		case errors.As(perr, &ie):
			fmt.Fprintln(stderr, perr)
			return 2
		default:
			fmt.Fprintln(stderr, perr)
			return 3
		}
	}

	if st.ParamMismatches > 0 && o.Backend == pipeline.BackendLanes {
		cmdutil.Warnf(stderr, o.Quiet,
			"%d queries differ from the first query's distance limits; lanes apply the first query's limits (use --backend direct for per-query limits)",
			st.ParamMismatches)
	}
	if o.Checksum {
		fmt.Fprintf(stderr, "checksum\t%s\t%d results\n", dg.String(), dg.Count())
	}
	logSummary(log, st, total)
	return 0
}

func logSummary(log *slog.Logger, st pipeline.Stats, results int) {
	attrs := []any{
		slog.String("queries", humanize.Comma(int64(st.Queries))),
		slog.String("anchors", humanize.Comma(int64(st.Anchors))),
		slog.Int("results", results),
		slog.Duration("kernel", st.Kernel.Round(time.Microsecond)),
		slog.Duration("elapsed", st.Elapsed.Round(time.Microsecond)),
	}
	if st.Rounds > 0 {
		attrs = append(attrs,
			slog.String("rounds", humanize.Comma(int64(st.Rounds))),
			slog.String("null_batches", humanize.Comma(int64(st.NullBatches))),
		)
	}
	if s := st.Elapsed.Seconds(); s > 0 {
		attrs = append(attrs, slog.String("throughput", humanize.SI(float64(st.Anchors)/s, "anchors/s")))
	}
	log.Info("done", attrs...)
}
