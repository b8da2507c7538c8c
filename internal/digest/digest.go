// Package digest folds a result stream into one order-sensitive 64-bit
// hash, so two runs (or two backends) can be compared without diffing
// their outputs.
package digest

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/wyhash"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
)

// Digest is not safe for concurrent use.
type Digest struct {
	sum uint64
	n   int
	buf []byte
}

// Add folds r into the digest. The query ordinal is hashed with the values
// so a reordering changes the sum.
func (d *Digest) Add(r chain.Result) {
	d.buf = d.buf[:0]
	d.buf = binary.LittleEndian.AppendUint64(d.buf, uint64(r.ID))
	d.buf = binary.LittleEndian.AppendUint64(d.buf, uint64(r.Len()))
	for i := range r.Scores {
		d.buf = binary.LittleEndian.AppendUint32(d.buf, uint32(r.Scores[i]))
		d.buf = binary.LittleEndian.AppendUint32(d.buf, uint32(r.Parents[i]))
	}
	d.sum = wyhash.HashString(string(d.buf), d.sum)
	d.n++
}

// Sum64 returns the current digest.
func (d *Digest) Sum64() uint64 { return d.sum }

// Count is the number of results folded in.
func (d *Digest) Count() int { return d.n }

func (d *Digest) String() string { return fmt.Sprintf("%016x", d.sum) }
