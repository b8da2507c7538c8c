// core/chain/lane.go
package chain

import "fmt"

// Lane is one chaining engine. It keeps a Window-deep sliding window of
// in-flight anchors and, for each of them, the best score and parent seen
// so far. Finalizing the oldest anchor pushes its contribution forward into
// every later slot, so each step only depends on the previous one.
//
// A Lane is not safe for concurrent use; each lane owns its own.
type Lane struct {
	head   int
	active [Window]Anchor
	best   [Window]int32
	parent [Window]int32
}

// NewLane returns a lane with an empty window.
func NewLane() *Lane {
	l := &Lane{}
	l.Reset()
	return l
}

// Reset clears the window and trackers.
func (l *Lane) Reset() {
	l.head = 0
	for i := range l.active {
		l.active[i] = Anchor{}
		l.best[i] = 0
		l.parent[i] = -1
	}
}

func (l *Lane) slot(j int) int {
	k := l.head + j
	if k >= Window {
		k -= Window
	}
	return k
}

// Prime loads the first Window anchors of a batch into the window. When
// newQuery is set every tracker is seeded as a chain start at that
// anchor's weight; otherwise the trackers carried over from the previous
// batch of the same query are kept, since that batch ended with exactly
// these anchors in flight.
func (l *Lane) Prime(lead []Anchor, newQuery bool) {
	if len(lead) != Window {
		panic(fmt.Sprintf("chain: prime needs %d anchors, got %d", Window, len(lead)))
	}
	for j, a := range lead {
		k := l.slot(j)
		l.active[k] = a
		if newQuery {
			l.best[k] = a.W
			l.parent[k] = -1
		}
	}
}

// Step finalizes the oldest anchor in the window, whose global index within
// its query is idx, and admits next as the newest one.
func (l *Lane) Step(next Anchor, idx int32, p Params) Step {
	h := l.head
	curr := l.active[h]
	f, par := l.best[h], l.parent[h]
	if curr.W >= f {
		f, par = curr.W, -1
	}

	for j := 1; j < Window; j++ {
		k := l.slot(j)
		sc := Score(curr, l.active[k], p)
		if sc == NegInf {
			continue
		}
		if c := AddScore(sc, f); c >= l.best[k] {
			l.best[k] = c
			l.parent[k] = idx
		}
	}

	// the finalized slot becomes the tail
	l.active[h] = next
	l.best[h] = 0
	l.parent[h] = -1
	l.head = l.slot(1)

	return Step{Score: f, Parent: par}
}

// Process runs one batch: in holds len(out) anchors to finalize followed by
// Window anchors of lookahead. base is the query index of in[0].
func (l *Lane) Process(in []Anchor, newQuery bool, base int32, p Params, out []Step) {
	if len(in) != len(out)+Window {
		panic(fmt.Sprintf("chain: batch of %d anchors cannot produce %d steps", len(in), len(out)))
	}
	l.Prime(in[:Window], newQuery)
	for i := range out {
		out[i] = l.Step(in[i+Window], base+int32(i), p)
	}
}
