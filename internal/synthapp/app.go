// internal/synthapp/app.go
package synthapp

import (
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/UCLA-VAST/minimap2-acceleration/core/anchorio"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/cli"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/cmdutil"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/synth"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/version"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/writers"
)

// create opens path for writing; "-" is stdout and a .gz suffix compresses.
func create(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "-" || path == "" {
		return stdout, func() error { return nil }, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return fh, fh.Close, nil
	}
	zw := gzip.NewWriter(fh)
	return zw, func() error {
		if err := zw.Close(); err != nil {
			_ = fh.Close()
			return err
		}
		return fh.Close()
	}, nil
}

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("mm2chain-synth")
	opts, err := cli.ParseSynthArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(stdout)
			fs.Usage()
			return 0
		}
		fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return 2
	}
	if opts.Version {
		fmt.Fprintf(stdout, "mm2chain-synth version %s\n", version.Version)
		return 0
	}

	dst, closeFn, err := create(opts.Out, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	w := bufio.NewWriter(dst)
	gen := synth.New(synth.Config{
		Queries:   opts.Queries,
		Anchors:   opts.Anchors,
		Tags:      opts.Tags,
		Seed:      opts.Seed,
		AvgQSpan:  opts.AvgQSpan,
		MaxDist:   int32(opts.MaxDist),
		BandWidth: int32(opts.BandWidth),
	})

	anchors := 0
	werr := func() error {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			q, err := gen.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			anchors += q.N
			if err := anchorio.WriteQuery(w, q); err != nil {
				return err
			}
		}
	}()
	if werr == nil {
		werr = w.Flush()
	}
	if cerr := closeFn(); werr == nil {
		werr = cerr
	}
	switch {
	case errors.Is(werr, context.Canceled):
		return 130
	case writers.IsBrokenPipe(werr):
		return 0
	case werr != nil:
		fmt.Fprintln(stderr, werr)
		return 3
	}

	cmdutil.NewLogger(stderr, false, false).Info("generated",
		slog.String("queries", humanize.Comma(int64(opts.Queries))),
		slog.String("anchors", humanize.Comma(int64(anchors))),
		slog.String("out", opts.Out),
	)
	return 0
}
