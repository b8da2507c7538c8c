// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/UCLA-VAST/minimap2-acceleration/internal/version"
)

// Options holds all mm2chain flags and arguments.
type Options struct {
	// Input
	Inputs []string

	// Chaining
	Backend   string
	Lanes     int // 0 = auto
	BatchSize int
	Threads   int

	// Output
	Output   string
	Header   bool // true unless --no-header
	Checksum bool

	// Diagnostics
	Progress    bool
	MetricsAddr string
	Verbose     bool
	Quiet       bool

	Version bool
}

// Known output formats and backends. Kept here so cli does not import the
// writers or pipeline packages.
var (
	outputFormats = []string{"text", "tsv", "jsonl", "json"}
	backends      = []string{"lanes", "direct"}
)

func oneOf(v string, set []string) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

// ParseArgs registers and parses all flags and returns the Options.
// Help returns flag.ErrHelp after printing usage to fs.Output().
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help, noHeader bool

	in := multiString{dst: &opt.Inputs}
	fs.Var(in, "input", "anchor dump(s), gzip ok, '-' = stdin (repeatable)")
	fs.Var(in, "i", "alias of --input")

	fs.StringVar(&opt.Backend, "backend", "lanes", "chaining backend: lanes | direct")
	fs.StringVar(&opt.Backend, "b", "lanes", "alias of --backend")
	fs.IntVar(&opt.Lanes, "lanes", 0, "interleaved lanes (0 = from CPU vector width)")
	fs.IntVar(&opt.Lanes, "l", 0, "alias of --lanes")
	fs.IntVar(&opt.BatchSize, "batch-size", 2048, "anchors finalized per lane per round")
	fs.IntVar(&opt.Threads, "threads", 0, "concurrent engines (0 = all CPUs)")
	fs.IntVar(&opt.Threads, "t", 0, "alias of --threads")

	fs.StringVar(&opt.Output, "output", "text", "output: text | tsv | jsonl | json")
	fs.StringVar(&opt.Output, "o", "text", "alias of --output")
	fs.BoolVar(&noHeader, "no-header", false, "suppress tsv header line")
	fs.BoolVar(&opt.Checksum, "checksum", false, "print a digest of all results to stderr")

	fs.BoolVar(&opt.Progress, "progress", false, "show a progress bar on stderr")
	fs.StringVar(&opt.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")
	fs.BoolVar(&opt.Verbose, "verbose", false, "debug logging")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings and run summary")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")

	fs.BoolVar(&opt.Version, "version", false, "print version and exit")
	fs.BoolVar(&opt.Version, "v", false, "alias of --version")
	fs.BoolVar(&help, "h", false, "show this help message")
	installUsage(fs)

	flags, pos := splitArgs(fs, argv)
	if err := fs.Parse(flags); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader

	exp, err := expandInputs(append(opt.Inputs, pos...))
	if err != nil {
		return opt, err
	}
	opt.Inputs = exp
	if len(opt.Inputs) == 0 {
		opt.Inputs = []string{"-"}
	}

	// Validation
	if !oneOf(opt.Output, outputFormats) {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	if !oneOf(opt.Backend, backends) {
		return opt, fmt.Errorf("invalid --backend %q", opt.Backend)
	}
	if opt.Lanes < 0 {
		return opt, errors.New("--lanes must be ≥ 0")
	}
	if opt.BatchSize < 1 {
		return opt, errors.New("--batch-size must be ≥ 1")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.Verbose && opt.Quiet {
		return opt, errors.New("--verbose conflicts with --quiet")
	}
	return opt, nil
}

// NewFlagSet returns a silent FlagSet for one of the mm2chain tools; parse
// errors come back to the caller, which decides where usage goes.
func NewFlagSet(tool string) *flag.FlagSet {
	fs := flag.NewFlagSet(tool, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

func installUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(name string) string {
			if f := fs.Lookup(name); f != nil {
				return f.DefValue
			}
			return ""
		}
		header(out, fs.Name(), "long-read anchor chaining")
		fmt.Fprintf(out, "Usage: %s [flags] [anchors.txt[.gz] ...]\n", fs.Name())

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -i, --input file            Anchor dump(s) (repeatable, globs ok) or '-' for STDIN [-]")

		fmt.Fprintln(out, "\nChaining:")
		fmt.Fprintf(out, "  -b, --backend string        lanes | direct [%s]\n", def("backend"))
		fmt.Fprintf(out, "  -l, --lanes int             Interleaved lanes (0 = from CPU vector width) [%s]\n", def("lanes"))
		fmt.Fprintf(out, "      --batch-size int        Anchors finalized per lane per round [%s]\n", def("batch-size"))
		fmt.Fprintf(out, "  -t, --threads int           Concurrent engines (0 = all CPUs) [%s]\n", def("threads"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output string         text | tsv | jsonl | json [%s]\n", def("output"))
		fmt.Fprintf(out, "      --no-header             Suppress tsv header line [%s]\n", def("no-header"))
		fmt.Fprintf(out, "      --checksum              Print a digest of all results to stderr [%s]\n", def("checksum"))

		fmt.Fprintln(out, "\nDiagnostics:")
		fmt.Fprintf(out, "      --progress              Progress bar on stderr [%s]\n", def("progress"))
		fmt.Fprintln(out, "      --metrics-addr addr     Serve Prometheus metrics while running (e.g. :9090)")
		fmt.Fprintf(out, "      --verbose               Debug logging [%s]\n", def("verbose"))
		fmt.Fprintf(out, "  -q, --quiet                 Suppress warnings and run summary [%s]\n", def("quiet"))
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}

func header(out io.Writer, name, what string) {
	fmt.Fprintf(out, "%s: %s\n\n", name, what)
	fmt.Fprintln(out, "License: MIT")
	fmt.Fprintf(out, "Version: %s\n\n", version.Version)
}
