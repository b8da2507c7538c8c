// Package sched interleaves a stream of queries onto a fixed number of
// chaining lanes and turns the lanes' outputs back into per-query results.
//
// The Scheduler emits Rounds: one Batch per lane, every batch the same
// size, so all lanes advance in lock step. The Deinterleaver consumes each
// round after every lane has finished it.
package sched

import (
	"errors"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
)

// DefaultBatchSize is the number of anchors each lane finalizes per round.
const DefaultBatchSize = 2048

// NullSeq marks the batch of an idle lane.
const NullSeq = -1

// ErrMisaligned reports a broken round: lane counts that disagree, or a
// lane emitting results with no query bound to it.
var ErrMisaligned = errors.New("sched: misaligned round")

// Batch is one lane's share of a round. Anchors holds BatchSize anchors to
// finalize followed by chain.Window anchors of lookahead; positions past
// the end of the query are zero anchors. Null batches carry no anchors.
type Batch struct {
	Lane     int
	NewQuery bool
	Seq      int // batch counter within the query, NullSeq when idle
	Query    int // ordinal of the query in the input stream
	N        int // anchor count of the query
	Params   chain.Params
	Anchors  []chain.Anchor
}

// IsNull reports whether the lane had no work this round.
func (b *Batch) IsNull() bool { return b.Seq == NullSeq }

// Base is the query-local index of the batch's first anchor.
func (b *Batch) Base(batchSize int) int32 { return int32(b.Seq * batchSize) }

// Round is one batch per lane, in lane order.
type Round struct {
	Index   int
	Batches []Batch
}

// Active returns the number of non-null batches.
func (r *Round) Active() int {
	n := 0
	for i := range r.Batches {
		if !r.Batches[i].IsNull() {
			n++
		}
	}
	return n
}
