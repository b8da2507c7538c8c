package chain

// Run chains a single query without batching: its tags are renumbered into
// generations, the window is primed once, and every anchor is stepped
// through in order. This is the reference every batched schedule must
// reproduce.
func Run(q Query) Result {
	return RunWith(NewLane(), q, q.Params())
}

// RunWith is Run on a caller-owned lane with explicit parameters.
func RunWith(l *Lane, q Query, p Params) Result {
	n := len(q.Anchors)
	var g Generations
	in := make([]Anchor, n+Window)
	copy(in, g.Compress(q.Anchors))

	res := Result{ID: q.ID, Scores: make([]int32, n), Parents: make([]int32, n)}
	l.Prime(in[:Window], true)
	for i := 0; i < n; i++ {
		s := l.Step(in[i+Window], int32(i), p)
		res.Scores[i] = s.Score
		res.Parents[i] = s.Parent
	}
	return res
}
