// internal/writers/formats.go
package writers

import (
	"encoding/json"
	"io"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/output"
)

func init() {
	Register(output.FormatText, writeText)
	Register(output.FormatTSV, writeTSV)
	Register(output.FormatJSONL, writeJSONL)
	Register(output.FormatJSON, writeJSON)
}

func writeText(w io.Writer, in <-chan chain.Result, _ bool) error {
	for r := range in {
		if err := output.WriteRecord(w, r); err != nil {
			return err
		}
	}
	return nil
}

func writeTSV(w io.Writer, in <-chan chain.Result, header bool) error {
	if header {
		if _, err := io.WriteString(w, output.TSVHeader+"\n"); err != nil {
			return err
		}
	}
	for r := range in {
		if err := output.WriteTSVRows(w, r); err != nil {
			return err
		}
	}
	return nil
}

func writeJSONL(w io.Writer, in <-chan chain.Result, _ bool) error {
	enc := json.NewEncoder(w)
	for r := range in {
		if err := enc.Encode(output.ToAPIResult(r)); err != nil {
			return err
		}
	}
	return nil
}

// writeJSON buffers everything: a JSON array cannot be streamed by line.
func writeJSON(w io.Writer, in <-chan chain.Result, _ bool) error {
	var buf []chain.Result
	for r := range in {
		buf = append(buf, r)
	}
	return output.WriteJSON(w, buf)
}
