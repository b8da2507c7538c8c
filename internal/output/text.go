// internal/output/text.go
package output

import (
	"io"
	"strconv"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
)

// WriteRecord writes one result in the text format read back by the
// original tooling: the count, one "score<TAB>parent" line per anchor, EOR.
func WriteRecord(w io.Writer, r chain.Result) error {
	buf := make([]byte, 0, 16*(r.Len()+2))
	buf = strconv.AppendInt(buf, int64(r.Len()), 10)
	buf = append(buf, '\n')
	for i := range r.Scores {
		buf = strconv.AppendInt(buf, int64(r.Scores[i]), 10)
		buf = append(buf, '\t')
		buf = strconv.AppendInt(buf, int64(r.Parents[i]), 10)
		buf = append(buf, '\n')
	}
	buf = append(buf, EndOfRecord...)
	buf = append(buf, '\n')
	_, err := w.Write(buf)
	return err
}

// WriteTSVRows writes one "query index score parent" row per anchor.
func WriteTSVRows(w io.Writer, r chain.Result) error {
	var buf []byte
	for i := range r.Scores {
		buf = strconv.AppendInt(buf, int64(r.ID), 10)
		buf = append(buf, '\t')
		buf = strconv.AppendInt(buf, int64(i), 10)
		buf = append(buf, '\t')
		buf = strconv.AppendInt(buf, int64(r.Scores[i]), 10)
		buf = append(buf, '\t')
		buf = strconv.AppendInt(buf, int64(r.Parents[i]), 10)
		buf = append(buf, '\n')
	}
	_, err := w.Write(buf)
	return err
}
