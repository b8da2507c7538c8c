// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
)

// Sink drains in and writes every result to w. header is only meaningful
// for tabular formats.
type Sink func(w io.Writer, in <-chan chain.Result, header bool) error

var sinks = map[string]Sink{}

// Register adds a format (last wins). Called from init blocks.
func Register(format string, s Sink) { sinks[format] = s }

// Known reports whether a sink is registered for format.
func Known(format string) bool {
	_, ok := sinks[format]
	return ok
}

// Names returns the registered formats, sorted.
func Names() []string {
	out := make([]string, 0, len(sinks))
	for k := range sinks {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func lookup(format string) (Sink, error) {
	s, ok := sinks[format]
	if !ok {
		return nil, fmt.Errorf("unknown result format %q (no writer registered)", format)
	}
	return s, nil
}
