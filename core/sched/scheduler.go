// core/sched/scheduler.go
package sched

import (
	"errors"
	"fmt"
	"io"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
)

// Source yields queries in input order and io.EOF once exhausted.
type Source interface {
	Next() (chain.Query, error)
}

// Config sizes the scheduler.
type Config struct {
	Lanes     int // number of lanes (>=1)
	BatchSize int // anchors finalized per lane per round (0 = DefaultBatchSize)
}

// Stats counts what the scheduler has emitted so far.
type Stats struct {
	Rounds          int
	Batches         int
	NullBatches     int
	Queries         int
	Anchors         int
	ParamMismatches int // queries whose distance limits differ from the first query's
}

type lane struct {
	q        chain.Query
	ord      int
	pos      int // next unconsumed anchor
	active   bool
	newQuery bool
	seq      int
	tags     chain.Generations
}

// Scheduler assigns queries to lanes round-robin and slices them into
// uniform batches. Distance and band limits are taken from the first query
// and applied to every lane; only AvgSpan travels per query.
type Scheduler struct {
	cfg    Config
	src    Source
	lanes  []lane
	params chain.Params
	primed bool
	eof    bool
	loaded int
	round  int
	stats  Stats
}

// New returns a scheduler reading from src.
func New(src Source, cfg Config) *Scheduler {
	if cfg.Lanes < 1 {
		cfg.Lanes = 1
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Scheduler{cfg: cfg, src: src, lanes: make([]lane, cfg.Lanes)}
}

// Config returns the effective configuration.
func (s *Scheduler) Config() Config { return s.cfg }

// Stats returns a copy of the running counters.
func (s *Scheduler) Stats() Stats { return s.stats }

// Params returns the distance limits shared by all lanes. It is only
// meaningful after the first call to Next.
func (s *Scheduler) Params() chain.Params { return s.params }

// load fills lane i with the next query, or marks it idle at end of input.
func (s *Scheduler) load(i int) error {
	l := &s.lanes[i]
	l.active = false
	if s.eof {
		return nil
	}
	q, err := s.src.Next()
	if errors.Is(err, io.EOF) {
		s.eof = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("load query %d: %w", s.loaded, err)
	}
	if q.N != len(q.Anchors) {
		return fmt.Errorf("query %d: header says %d anchors, got %d", q.ID, q.N, len(q.Anchors))
	}
	if s.loaded == 0 {
		s.params = q.Params()
	} else if q.MaxDistX != s.params.MaxDistX || q.MaxDistY != s.params.MaxDistY || q.BandWidth != s.params.BandWidth {
		s.stats.ParamMismatches++
	}
	*l = lane{q: q, ord: s.loaded, active: true, newQuery: true, tags: l.tags}
	s.loaded++
	s.stats.Queries++
	s.stats.Anchors += len(q.Anchors)
	return nil
}

// Next builds the next round. It returns io.EOF once every lane is idle.
func (s *Scheduler) Next() (Round, error) {
	if !s.primed {
		s.primed = true
		for i := range s.lanes {
			if err := s.load(i); err != nil {
				return Round{}, err
			}
		}
	}

	idle := true
	for i := range s.lanes {
		if s.lanes[i].active {
			idle = false
			break
		}
	}
	if idle {
		return Round{}, io.EOF
	}

	size := s.cfg.BatchSize + chain.Window
	r := Round{Index: s.round, Batches: make([]Batch, len(s.lanes))}
	for i := range s.lanes {
		l := &s.lanes[i]
		b := &r.Batches[i]
		b.Lane = i
		if !l.active {
			b.Seq = NullSeq
			b.Query = -1
			s.stats.NullBatches++
			continue
		}
		b.Anchors = make([]chain.Anchor, size)

		b.NewQuery = l.newQuery
		b.Seq = l.seq
		b.Query = l.ord
		b.N = len(l.q.Anchors)
		b.Params = s.params
		b.Params.AvgSpan = l.q.AvgSpan

		rest := l.q.Anchors[l.pos:]
		for k := 0; k < size && k < len(rest); k++ {
			switch {
			case k == s.cfg.BatchSize:
				l.tags.Backup()
			case k == 0 && l.seq != 0:
				l.tags.Restore()
			}
			a := rest[k]
			a.Tag = l.tags.Next(a.Tag, k == 0 && l.seq == 0)
			b.Anchors[k] = a
		}

		if len(rest) > s.cfg.BatchSize {
			l.pos += s.cfg.BatchSize
			l.newQuery = false
			l.seq++
		} else if err := s.load(i); err != nil {
			return Round{}, err
		}
	}

	s.round++
	s.stats.Rounds++
	s.stats.Batches += len(r.Batches)
	return r, nil
}
