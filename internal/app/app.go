// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/UCLA-VAST/minimap2-acceleration/internal/appcore"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/cli"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/version"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/writers"
)

// flushed flushes w and maps the outcome to an exit code, keeping code on
// success. Broken pipes count as success.
func flushed(w *bufio.Writer, stderr io.Writer, code int) int {
	if e := w.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := cli.NewFlagSet("mm2chain")

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		fs.SetOutput(outw)
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return flushed(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.Usage()
		return flushed(outw, stderr, 2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "mm2chain version %s\n", version.Version)
		return flushed(outw, stderr, 0)
	}

	return appcore.Run(parent, stdout, stderr, appcore.Options{
		Inputs:      opts.Inputs,
		Backend:     opts.Backend,
		Lanes:       opts.Lanes,
		BatchSize:   opts.BatchSize,
		Threads:     opts.Threads,
		Output:      opts.Output,
		Header:      opts.Header,
		Checksum:    opts.Checksum,
		Progress:    opts.Progress,
		MetricsAddr: opts.MetricsAddr,
		Verbose:     opts.Verbose,
		Quiet:       opts.Quiet,
	})
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
