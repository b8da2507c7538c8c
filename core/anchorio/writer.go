// core/anchorio/writer.go
package anchorio

import (
	"io"
	"strconv"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
)

// WriteQuery writes q in the format Reader parses. avg_qspan is written
// back from the quantized span, so a reread yields the same AvgSpan.
func WriteQuery(w io.Writer, q chain.Query) error {
	buf := make([]byte, 0, 32+24*len(q.Anchors))
	buf = strconv.AppendInt(buf, int64(len(q.Anchors)), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendFloat(buf, q.AvgSpan.Float()*100, 'f', -1, 64)
	for _, v := range []int32{q.MaxDistX, q.MaxDistY, q.BandWidth} {
		buf = append(buf, ' ')
		buf = strconv.AppendInt(buf, int64(v), 10)
	}
	buf = append(buf, '\n')
	for _, a := range q.Anchors {
		buf = strconv.AppendUint(buf, uint64(a.Tag), 10)
		for _, v := range []int32{a.X, a.W, a.Y} {
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(v), 10)
		}
		buf = append(buf, '\n')
	}
	buf = append(buf, "EOR\n"...)
	_, err := w.Write(buf)
	return err
}
