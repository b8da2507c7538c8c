// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
	"github.com/UCLA-VAST/minimap2-acceleration/pkg/api"
)

// ToAPIResult converts a domain Result to the stable wire schema (v1).
// Slices are never nil so empty queries encode as [].
func ToAPIResult(r chain.Result) api.ResultV1 {
	return api.ResultV1{
		Query:   r.ID,
		N:       r.Len(),
		Scores:  append(make([]int32, 0, r.Len()), r.Scores...),
		Parents: append(make([]int32, 0, r.Len()), r.Parents...),
	}
}

// WriteJSON writes a single indented JSON array of v1 results.
func WriteJSON(w io.Writer, list []chain.Result) error {
	out := make([]api.ResultV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPIResult(r))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
