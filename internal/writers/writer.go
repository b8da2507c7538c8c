// internal/writers/writer.go
package writers

import (
	"bufio"
	"errors"
	"io"
	"sync"
	"syscall"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
)

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Downstream consumers like `head` close early; that is not a failure.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// Pooled 64 KiB buffered writers shared across writer goroutines.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Start spins up a writer goroutine for format. Results must be sent in
// the order they should appear; close the channel when done and read
// exactly one value from the error channel.
func Start(out io.Writer, format string, header bool, bufSize int) (chan<- chain.Result, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan chain.Result, bufSize)
	done := make(chan error, 1)

	go func() {
		sink, err := lookup(format)
		if err != nil {
			// keep the producer from blocking on a dead writer
			for range in {
			}
			done <- err
			return
		}

		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		if err := sink(bw, in, header); err != nil {
			for range in {
			}
			done <- err
			return
		}
		if err := bw.Flush(); err != nil && !IsBrokenPipe(err) {
			done <- err
			return
		}
		done <- nil
	}()

	return in, done
}
