// internal/cli/args.go
package cli

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"
)

// splitArgs separates flags (with their values) from positionals so that
// positionals may appear anywhere on the command line. "-" is a positional,
// "--" ends flag parsing.
func splitArgs(fs *flag.FlagSet, argv []string) (flags, pos []string) {
	isBool := func(name string) bool {
		f := fs.Lookup(name)
		if f == nil {
			return false
		}
		bf, ok := f.Value.(interface{ IsBoolFlag() bool })
		return ok && bf.IsBoolFlag()
	}
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--":
			return flags, append(pos, argv[i+1:]...)
		case arg == "-" || !strings.HasPrefix(arg, "-"):
			pos = append(pos, arg)
		case strings.Contains(arg, "="):
			flags = append(flags, arg)
		default:
			flags = append(flags, arg)
			if !isBool(strings.TrimLeft(arg, "-")) && i+1 < len(argv) {
				i++
				flags = append(flags, argv[i])
			}
		}
	}
	return flags, pos
}

// expandInputs expands glob patterns; a pattern that matches nothing is an error.
func expandInputs(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		if a == "-" || !strings.ContainsAny(a, "*?[") {
			out = append(out, a)
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %v", a, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("no input matched %q", a)
		}
		out = append(out, m...)
	}
	return out, nil
}

// multiString appends each value (repeatable flag).
type multiString struct{ dst *[]string }

func (s multiString) String() string {
	if s.dst == nil {
		return ""
	}
	return strings.Join(*s.dst, ",")
}

func (s multiString) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}
