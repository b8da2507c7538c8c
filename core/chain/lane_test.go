package chain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func query(anchors []Anchor, p Params) Query {
	return Query{
		N: len(anchors), Anchors: anchors,
		AvgSpan: p.AvgSpan, MaxDistX: p.MaxDistX, MaxDistY: p.MaxDistY, BandWidth: p.BandWidth,
	}
}

// bruteForce evaluates the windowed recurrence directly: every anchor may
// start a chain at its own weight or extend one of the Window-1 anchors
// before it. Ties prefer a chain start, then the latest predecessor.
func bruteForce(q Query) Result {
	var g Generations
	a := g.Compress(q.Anchors)
	p := q.Params()
	n := len(a)
	res := Result{ID: q.ID, Scores: make([]int32, n), Parents: make([]int32, n)}
	for i := 0; i < n; i++ {
		best, par := NegInf, int32(-1)
		for j := i - (Window - 1); j < i; j++ {
			if j < 0 {
				continue
			}
			sc := Score(a[j], a[i], p)
			if sc == NegInf {
				continue
			}
			if c := AddScore(res.Scores[j], sc); c >= best {
				best, par = c, int32(j)
			}
		}
		if a[i].W >= best {
			best, par = a[i].W, -1
		}
		res.Scores[i], res.Parents[i] = best, par
	}
	return res
}

func randomAnchors(rng *rand.Rand, n, tags int) []Anchor {
	out := make([]Anchor, n)
	x, y := int32(0), int32(0)
	tag := uint32(1)
	for i := range out {
		if tags > 1 && rng.Intn(n/tags+1) == 0 {
			tag++
		}
		x += int32(rng.Intn(40))
		y += int32(rng.Intn(40)) - 5
		out[i] = Anchor{Tag: tag, X: x, Y: y, W: int32(10 + rng.Intn(10))}
	}
	return out
}

func TestWorkedExample(t *testing.T) {
	p := Params{MaxDistX: 50, MaxDistY: 50, BandWidth: 50}

	// x=y=10 for the middle anchor makes its distance exceed the weight.
	got := Run(query([]Anchor{
		{Tag: 1, X: 0, Y: 0, W: 10},
		{Tag: 1, X: 10, Y: 10, W: 8},
		{Tag: 1, X: 20, Y: 19, W: 6},
	}, p))
	require.Equal(t, []int32{10, 18, 24}, got.Scores)
	require.Equal(t, []int32{-1, 0, 1}, got.Parents)

	// at x=y=5 the first edge is bounded by the distance (5), not the weight.
	got = Run(query([]Anchor{
		{Tag: 1, X: 0, Y: 0, W: 10},
		{Tag: 1, X: 5, Y: 5, W: 8},
		{Tag: 1, X: 20, Y: 19, W: 6},
	}, p))
	require.Equal(t, []int32{10, 15, 21}, got.Scores)
	require.Equal(t, []int32{-1, 0, 1}, got.Parents)
}

func TestEmptyQuery(t *testing.T) {
	got := Run(Query{ID: 4})
	if got.ID != 4 || got.Len() != 0 || len(got.Parents) != 0 {
		t.Fatalf("empty query -> %+v", got)
	}
}

func TestOptimalSmallInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := Params{MaxDistX: 120, MaxDistY: 120, BandWidth: 60, AvgSpan: SpanFromQSpan(15)}
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(20)
		q := query(randomAnchors(rng, n, 1+rng.Intn(3)), p)
		require.Equal(t, bruteForce(q), Run(q), "trial %d", trial)
	}
}

func TestOptimalBeyondWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	p := Params{MaxDistX: 5000, MaxDistY: 5000, BandWidth: 500, AvgSpan: SpanFromQSpan(12)}
	q := query(randomAnchors(rng, 700, 4), p)
	require.Equal(t, bruteForce(q), Run(q))
}

func TestChainValidity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := Params{MaxDistX: 400, MaxDistY: 400, BandWidth: 100, AvgSpan: SpanFromQSpan(20)}
	q := query(randomAnchors(rng, 1500, 6), p)
	res := Run(q)

	var g Generations
	a := g.Compress(q.Anchors)
	for i, par := range res.Parents {
		if par == -1 {
			if res.Scores[i] != a[i].W {
				t.Fatalf("anchor %d starts a chain but scores %d != w %d", i, res.Scores[i], a[i].W)
			}
			continue
		}
		j := int(par)
		if j < 0 || j >= i {
			t.Fatalf("anchor %d has parent %d", i, j)
		}
		sc := Score(a[j], a[i], p)
		if sc == NegInf {
			t.Fatalf("anchor %d chains to rejected parent %d", i, j)
		}
		if want := AddScore(res.Scores[j], sc); res.Scores[i] != want {
			t.Fatalf("anchor %d: score %d, parent path gives %d", i, res.Scores[i], want)
		}
	}
}

func TestTagRunsNeverChain(t *testing.T) {
	p := Params{MaxDistX: 100, MaxDistY: 100, BandWidth: 100}
	// tags 1,2,1: the third anchor is colinear with the first but belongs
	// to a separate run, so it must not chain across the tag change.
	res := Run(query([]Anchor{
		{Tag: 1, X: 0, Y: 0, W: 10},
		{Tag: 2, X: 5, Y: 5, W: 10},
		{Tag: 1, X: 10, Y: 10, W: 10},
	}, p))
	require.Equal(t, []int32{-1, -1, -1}, res.Parents)
	require.Equal(t, []int32{10, 10, 10}, res.Scores)
}

func TestProcessMatchesRun(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	p := Params{MaxDistX: 300, MaxDistY: 300, BandWidth: 80, AvgSpan: SpanFromQSpan(10)}
	q := query(randomAnchors(rng, 333, 2), p)
	want := Run(q)

	var g Generations
	in := make([]Anchor, len(q.Anchors)+Window)
	copy(in, g.Compress(q.Anchors))

	// three uneven slices over the same lane, window re-primed each time
	l := NewLane()
	var got []Step
	cuts := []int{0, 100, 101, 333}
	for i := 0; i+1 < len(cuts); i++ {
		lo, hi := cuts[i], cuts[i+1]
		out := make([]Step, hi-lo)
		l.Process(in[lo:hi+Window], i == 0, int32(lo), p, out)
		got = append(got, out...)
	}
	for i, s := range got {
		if s.Score != want.Scores[i] || s.Parent != want.Parents[i] {
			t.Fatalf("anchor %d: got %+v want (%d,%d)", i, s, want.Scores[i], want.Parents[i])
		}
	}
}

func TestPrimePanicsOnWrongWidth(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for short prime")
		}
	}()
	NewLane().Prime(make([]Anchor, Window-1), true)
}

func TestGenerationsBackupRestore(t *testing.T) {
	var g Generations
	tags := []uint32{5, 5, 9, 9, 5}
	var first []uint32
	for i, tg := range tags {
		if i == 3 {
			g.Backup()
		}
		first = append(first, g.Next(tg, i == 0))
	}
	require.Equal(t, []uint32{1, 1, 2, 2, 3}, first)

	g.Restore()
	again := []uint32{g.Next(9, false), g.Next(5, false)}
	require.Equal(t, []uint32{2, 3}, again)
}
