// core/chain/anchor.go
package chain

// Window is the lookback/lookahead depth shared by every lane.
const Window = 65

// Anchor is one seed match between a query and the reference.
// Tag groups anchors that may chain together (strand/reference in the
// aligner's output); inside a lane it is replaced by a generation id.
type Anchor struct {
	Tag uint32
	X   int32
	Y   int32
	W   int32 // span of the seed; also the score of a chain starting here
}

// Params are the distance limits and gap scaling used by Score.
type Params struct {
	AvgSpan   Span
	MaxDistX  int32
	MaxDistY  int32
	BandWidth int32
}

// Query is one read's anchors plus its chaining parameters.
type Query struct {
	ID        int
	N         int
	AvgSpan   Span
	MaxDistX  int32
	MaxDistY  int32
	BandWidth int32
	Anchors   []Anchor
}

// Params returns the query's own scoring parameters.
func (q Query) Params() Params {
	return Params{AvgSpan: q.AvgSpan, MaxDistX: q.MaxDistX, MaxDistY: q.MaxDistY, BandWidth: q.BandWidth}
}

// Result holds the chain score and parent index of every anchor of a query.
// Parents[i] == -1 marks a chain start.
type Result struct {
	ID      int
	Scores  []int32
	Parents []int32
}

// Len is the number of anchors covered so far.
func (r Result) Len() int { return len(r.Scores) }

// Step is the finalized (score, parent) pair the engine emits per anchor.
type Step struct {
	Score  int32
	Parent int32
}
