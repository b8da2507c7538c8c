// Package anchorio reads the plain-text anchor dumps produced by the
// aligner's chaining hook.
//
// A record is a header line "n avg_qspan max_dist_x max_dist_y bw", n
// anchor lines "tag x w y", and a terminating "EOR" line. A header with
// n = -1 also ends the stream.
package anchorio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
)

// maxPrealloc bounds the capacity taken on trust from a record header.
const maxPrealloc = 1 << 16

// ErrTruncated is returned when input ends inside a record.
var ErrTruncated = errors.New("anchorio: truncated record")

// Reader yields one chain.Query per record, numbered from 0.
type Reader struct {
	sc   *bufio.Scanner
	name string
	line int
	next int
	done bool
}

// NewReader wraps r; name is used in error messages.
func NewReader(r io.Reader, name string) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	return &Reader{sc: sc, name: name}
}

func (r *Reader) scan() (string, bool) {
	for r.sc.Scan() {
		r.line++
		if s := strings.TrimSpace(r.sc.Text()); s != "" {
			return s, true
		}
	}
	return "", false
}

func (r *Reader) errf(format string, a ...any) error {
	return fmt.Errorf("%s:%d: %s", r.name, r.line, fmt.Sprintf(format, a...))
}

func (r *Reader) eof() error {
	if err := r.sc.Err(); err != nil {
		return fmt.Errorf("%s: %w", r.name, err)
	}
	return io.EOF
}

// Next returns the next query, or io.EOF at end of input.
func (r *Reader) Next() (chain.Query, error) {
	if r.done {
		return chain.Query{}, io.EOF
	}
	hdr, ok := r.scan()
	if !ok {
		r.done = true
		return chain.Query{}, r.eof()
	}
	f := strings.Fields(hdr)
	if len(f) != 5 {
		return chain.Query{}, r.errf("bad header field count %d", len(f))
	}
	n, err := strconv.ParseInt(f[0], 10, 64)
	if err != nil {
		return chain.Query{}, r.errf("bad anchor count: %v", err)
	}
	if n == -1 {
		r.done = true
		return chain.Query{}, io.EOF
	}
	if n < 0 {
		return chain.Query{}, r.errf("negative anchor count %d", n)
	}
	if n > math.MaxInt32 {
		return chain.Query{}, r.errf("anchor count %d exceeds %d", n, math.MaxInt32)
	}
	qspan, err := strconv.ParseFloat(f[1], 64)
	if err != nil {
		return chain.Query{}, r.errf("bad avg_qspan: %v", err)
	}
	var lim [3]int32
	for i := range lim {
		v, err := strconv.ParseInt(f[2+i], 10, 32)
		if err != nil {
			return chain.Query{}, r.errf("bad limit %q: %v", f[2+i], err)
		}
		lim[i] = int32(v)
	}

	q := chain.Query{
		ID:        r.next,
		N:         int(n),
		AvgSpan:   chain.SpanFromQSpan(qspan),
		MaxDistX:  lim[0],
		MaxDistY:  lim[1],
		BandWidth: lim[2],
		Anchors:   make([]chain.Anchor, 0, min(n, maxPrealloc)),
	}
	for i := int64(0); i < n; i++ {
		s, ok := r.scan()
		if !ok {
			if err := r.sc.Err(); err != nil {
				return chain.Query{}, fmt.Errorf("%s: %w", r.name, err)
			}
			return chain.Query{}, fmt.Errorf("%s: query %d: %w after %d of %d anchors", r.name, q.ID, ErrTruncated, i, n)
		}
		a, err := parseAnchor(s)
		if err != nil {
			return chain.Query{}, r.errf("%v", err)
		}
		q.Anchors = append(q.Anchors, a)
	}
	for {
		s, ok := r.scan()
		if !ok {
			if err := r.sc.Err(); err != nil {
				return chain.Query{}, fmt.Errorf("%s: %w", r.name, err)
			}
			return chain.Query{}, fmt.Errorf("%s: query %d: %w: missing EOR", r.name, q.ID, ErrTruncated)
		}
		if s == "EOR" {
			break
		}
	}
	r.next++
	return q, nil
}

// parseAnchor reads "tag x w y".
func parseAnchor(s string) (chain.Anchor, error) {
	f := strings.Fields(s)
	if len(f) != 4 {
		return chain.Anchor{}, fmt.Errorf("bad anchor field count %d", len(f))
	}
	tag, err := strconv.ParseUint(f[0], 10, 32)
	if err != nil {
		return chain.Anchor{}, fmt.Errorf("bad tag: %v", err)
	}
	var v [3]int32
	for i := range v {
		x, err := strconv.ParseInt(f[1+i], 10, 32)
		if err != nil {
			return chain.Anchor{}, fmt.Errorf("bad anchor value %q: %v", f[1+i], err)
		}
		v[i] = int32(x)
	}
	return chain.Anchor{Tag: uint32(tag), X: v[0], W: v[1], Y: v[2]}, nil
}

// ReadAll drains r into a slice.
func ReadAll(r *Reader) ([]chain.Query, error) {
	var qs []chain.Query
	for {
		q, err := r.Next()
		if errors.Is(err, io.EOF) {
			return qs, nil
		}
		if err != nil {
			return qs, err
		}
		qs = append(qs, q)
	}
}
