// Package progress draws a query counter on stderr while chaining.
package progress

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Bar counts released queries. The total is unknown while streaming, so the
// bar only shows a running count and elapsed time. A nil *Bar is a no-op.
type Bar struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

// New starts a bar on w, or returns nil when disabled.
func New(w io.Writer, enabled bool) *Bar {
	if !enabled {
		return nil
	}
	p := mpb.New(mpb.WithWidth(40), mpb.WithOutput(w))
	bar := p.AddBar(0,
		mpb.PrependDecorators(
			decor.Name("chained queries: ", decor.WC{W: len("chained queries: "), C: decor.DindentRight}),
			decor.Any(func(s decor.Statistics) string { return humanize.Comma(s.Current) }, decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Name("elapsed: ", decor.WC{W: len("elapsed: ")}),
			decor.Elapsed(decor.ET_STYLE_GO),
			decor.OnComplete(decor.Name(""), ". done"),
		),
	)
	return &Bar{p: p, bar: bar}
}

// Inc counts one released query.
func (b *Bar) Inc() {
	if b == nil {
		return
	}
	b.bar.Increment()
}

// Done completes the bar at the current count and waits for the final
// render.
func (b *Bar) Done() {
	if b == nil {
		return
	}
	b.bar.SetTotal(-1, true)
	b.p.Wait()
}
