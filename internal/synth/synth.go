// Package synth generates anchor workloads that look like an aligner's
// seeding output: per query, a few tag runs (reference/strand), each a
// mostly colinear walk with jitter and occasional jumps.
package synth

import (
	"io"
	"math/rand"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
)

// Config sizes a workload.
type Config struct {
	Queries   int
	Anchors   int // mean anchors per query; sizes are uniform in [0, 2*Anchors]
	Tags      int // max tag runs per query
	Seed      int64
	AvgQSpan  float64
	MaxDist   int32
	BandWidth int32
}

// Generator yields Config.Queries queries and then io.EOF. It satisfies
// sched.Source.
type Generator struct {
	cfg  Config
	rng  *rand.Rand
	next int
}

// New returns a deterministic generator for cfg.
func New(cfg Config) *Generator {
	if cfg.Tags < 1 {
		cfg.Tags = 1
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// Next returns the next query.
func (g *Generator) Next() (chain.Query, error) {
	if g.next >= g.cfg.Queries {
		return chain.Query{}, io.EOF
	}
	rng := g.rng
	n := 0
	if g.cfg.Anchors > 0 {
		n = rng.Intn(2*g.cfg.Anchors + 1)
	}
	runs := 1 + rng.Intn(g.cfg.Tags)

	a := make([]chain.Anchor, 0, n)
	tag := uint32(rng.Intn(64)) << 1
	for r := 0; r < runs; r++ {
		m := n / runs
		if r == runs-1 {
			m = n - len(a)
		}
		tag += uint32(1 + rng.Intn(3))
		x := int32(rng.Intn(1 << 20))
		y := int32(rng.Intn(1 << 12))
		for k := 0; k < m; k++ {
			step := int32(1 + rng.Intn(30))
			if rng.Intn(50) == 0 {
				step += int32(rng.Intn(int(g.cfg.MaxDist) + 1)) // large gap, may break the chain
			}
			x += step
			y += step + int32(rng.Intn(11)) - 5
			a = append(a, chain.Anchor{Tag: tag, X: x, Y: y, W: int32(11 + rng.Intn(9))})
		}
	}

	q := chain.Query{
		ID:        g.next,
		N:         len(a),
		AvgSpan:   chain.SpanFromQSpan(g.cfg.AvgQSpan),
		MaxDistX:  g.cfg.MaxDist,
		MaxDistY:  g.cfg.MaxDist,
		BandWidth: g.cfg.BandWidth,
		Anchors:   a,
	}
	g.next++
	return q, nil
}
