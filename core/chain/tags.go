package chain

// Generations renumbers a lane's anchor tags into small, strictly
// increasing generation ids: a new id starts whenever the tag changes or a
// new query starts. Anchors of different queries sharing a lane therefore
// never compare equal, and generation 0 is never handed out so zero-padded
// anchors cannot chain with real ones.
//
// The snapshot taken by Backup bridges batch boundaries: the first anchor
// of the lookahead region is compressed again as the first anchor of the
// next batch, and Restore rewinds the state so it gets the same id.
type Generations struct {
	prev, gen           uint32
	savedPrev, savedGen uint32
}

// Next returns the generation id of an anchor with the given tag. first
// forces a new generation (first anchor of a query).
func (g *Generations) Next(tag uint32, first bool) uint32 {
	if first || tag != g.prev {
		g.gen++
		if g.gen == 0 {
			g.gen = 1
		}
	}
	g.prev = tag
	return g.gen
}

// Backup snapshots the state before the anchor at the batch boundary.
func (g *Generations) Backup() { g.savedPrev, g.savedGen = g.prev, g.gen }

// Restore rewinds to the last Backup.
func (g *Generations) Restore() { g.prev, g.gen = g.savedPrev, g.savedGen }

// Compress returns a copy of anchors with tags replaced by generations,
// as a single uninterrupted query.
func (g *Generations) Compress(anchors []Anchor) []Anchor {
	out := make([]Anchor, len(anchors))
	for i, a := range anchors {
		a.Tag = g.Next(a.Tag, i == 0)
		out[i] = a
	}
	return out
}
