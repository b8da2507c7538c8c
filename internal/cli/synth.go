// internal/cli/synth.go
package cli

import (
	"errors"
	"flag"
	"fmt"
)

// SynthOptions holds mm2chain-synth flags.
type SynthOptions struct {
	Queries   int
	Anchors   int // mean anchors per query
	Tags      int // max tag runs per query
	Seed      int64
	AvgQSpan  float64
	MaxDist   int
	BandWidth int
	Out       string
	Version   bool
}

// ParseSynthArgs registers and parses the generator flags.
func ParseSynthArgs(fs *flag.FlagSet, argv []string) (SynthOptions, error) {
	var opt SynthOptions
	var help bool

	fs.IntVar(&opt.Queries, "queries", 100, "number of queries")
	fs.IntVar(&opt.Anchors, "anchors", 500, "mean anchors per query")
	fs.IntVar(&opt.Tags, "tags", 4, "max reference/strand runs per query")
	fs.Int64Var(&opt.Seed, "seed", 1, "random seed")
	fs.Float64Var(&opt.AvgQSpan, "avg-qspan", 15, "avg_qspan written to every header")
	fs.IntVar(&opt.MaxDist, "max-dist", 5000, "max_dist_x and max_dist_y")
	fs.IntVar(&opt.BandWidth, "bw", 500, "band width")
	fs.StringVar(&opt.Out, "out", "-", "output file ('-' = stdout, .gz = gzip)")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit")
	fs.BoolVar(&opt.Version, "v", false, "alias of --version")
	fs.BoolVar(&help, "h", false, "show this help message")
	fs.Usage = func() {
		header(fs.Output(), fs.Name(), "synthetic anchor dumps")
		fmt.Fprintf(fs.Output(), "Usage of %s:\n", fs.Name())
		fs.PrintDefaults()
	}

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if fs.NArg() > 0 {
		return opt, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	switch {
	case opt.Queries < 0:
		return opt, errors.New("--queries must be ≥ 0")
	case opt.Anchors < 0:
		return opt, errors.New("--anchors must be ≥ 0")
	case opt.Tags < 1:
		return opt, errors.New("--tags must be ≥ 1")
	case opt.AvgQSpan < 0:
		return opt, errors.New("--avg-qspan must be ≥ 0")
	case opt.MaxDist < 1 || opt.BandWidth < 1:
		return opt, errors.New("--max-dist and --bw must be ≥ 1")
	}
	return opt, nil
}
