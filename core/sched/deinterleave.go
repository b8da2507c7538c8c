package sched

import (
	"fmt"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
)

type pending struct {
	res chain.Result
	n   int
}

// Deinterleaver rebuilds per-query results from rounds of lane outputs.
// Results are released in the order their queries first appeared, which is
// the input order.
type Deinterleaver struct {
	lanes     int
	batchSize int
	nextID    int
	bound     []int // lane -> index into queue, -1 if none
	queue     []*pending
	released  int // IDs below this have been handed out
}

// NewDeinterleaver returns a deinterleaver for the given lane count and
// batch size; both must match the scheduler's.
func NewDeinterleaver(lanes, batchSize int) *Deinterleaver {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	d := &Deinterleaver{lanes: lanes, batchSize: batchSize, bound: make([]int, lanes)}
	for i := range d.bound {
		d.bound[i] = -1
	}
	return d
}

// Consume folds one round into the pending results. outs[i] holds lane i's
// steps for the round (ignored for null batches).
func (d *Deinterleaver) Consume(r Round, outs [][]chain.Step) error {
	if len(r.Batches) != d.lanes || len(outs) != d.lanes {
		return fmt.Errorf("%w: round %d has %d batches and %d outputs for %d lanes",
			ErrMisaligned, r.Index, len(r.Batches), len(outs), d.lanes)
	}
	for i := range r.Batches {
		b := &r.Batches[i]
		if b.IsNull() {
			continue
		}
		if b.Lane != i {
			return fmt.Errorf("%w: round %d slot %d carries lane %d", ErrMisaligned, r.Index, i, b.Lane)
		}
		if b.NewQuery {
			if b.Query != d.nextID {
				return fmt.Errorf("%w: round %d lane %d starts query %d, expected %d",
					ErrMisaligned, r.Index, i, b.Query, d.nextID)
			}
			d.bound[i] = d.nextID
			d.queue = append(d.queue, &pending{
				res: chain.Result{ID: d.nextID, Scores: make([]int32, 0, b.N), Parents: make([]int32, 0, b.N)},
				n:   b.N,
			})
			d.nextID++
		}
		if d.bound[i] < 0 {
			return fmt.Errorf("%w: round %d lane %d has results but no query", ErrMisaligned, r.Index, i)
		}
		if len(outs[i]) != d.batchSize {
			return fmt.Errorf("%w: round %d lane %d produced %d steps, want %d",
				ErrMisaligned, r.Index, i, len(outs[i]), d.batchSize)
		}
		k := d.bound[i] - d.released
		if k < 0 {
			return fmt.Errorf("%w: round %d lane %d continues released query %d", ErrMisaligned, r.Index, i, d.bound[i])
		}
		p := d.queue[k]
		for _, s := range outs[i] {
			if len(p.res.Scores) == p.n {
				break
			}
			p.res.Scores = append(p.res.Scores, s.Score)
			p.res.Parents = append(p.res.Parents, s.Parent)
		}
	}
	return nil
}

// Drain returns the results that are complete and next in input order.
func (d *Deinterleaver) Drain() []chain.Result {
	var out []chain.Result
	for len(d.queue) > 0 && len(d.queue[0].res.Scores) == d.queue[0].n {
		out = append(out, d.queue[0].res)
		d.queue[0] = nil
		d.queue = d.queue[1:]
		d.released++
	}
	return out
}

// Pending is the number of queries seen but not yet released.
func (d *Deinterleaver) Pending() int { return len(d.queue) }

// Finish reports an error if any query was left incomplete.
func (d *Deinterleaver) Finish() error {
	if len(d.queue) > 0 {
		p := d.queue[0]
		return fmt.Errorf("%w: query %d ended with %d of %d anchors", ErrMisaligned, p.res.ID, len(p.res.Scores), p.n)
	}
	return nil
}
