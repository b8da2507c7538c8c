package chain

import (
	"math"
	"math/bits"
)

const (
	// NegInf marks a rejected pair. It sits far below any reachable chain
	// score so that NegInf plus a finite score never crosses a real one.
	NegInf int32 = math.MinInt32 / 2
	// MaxScore is the saturation ceiling of AddScore.
	MaxScore int32 = math.MaxInt32 / 2

	maxLogDD = 8
)

// AddScore adds two scores, saturating to [NegInf, MaxScore].
func AddScore(a, b int32) int32 {
	s := int64(a) + int64(b)
	switch {
	case s <= int64(NegInf):
		return NegInf
	case s >= int64(MaxScore):
		return MaxScore
	}
	return int32(s)
}

// ilog2 is floor(log2(v)) clamped to [0, 8]; 0 and 1 map to 0.
func ilog2(v int64) int32 {
	if v < 2 {
		return 0
	}
	if v >= 1<<maxLogDD {
		return maxLogDD
	}
	return int32(bits.Len64(uint64(v)) - 1)
}

// Score returns the contribution of chaining prev (the earlier anchor) into
// curr, or NegInf when the pair cannot be colinear under p.
func Score(prev, curr Anchor, p Params) int32 {
	if prev.Tag != curr.Tag {
		return NegInf
	}
	dx := int64(curr.X) - int64(prev.X)
	if dx == 0 || dx > int64(p.MaxDistX) {
		return NegInf
	}
	dy := int64(curr.Y) - int64(prev.Y)
	if dy > int64(p.MaxDistY) || dy <= 0 {
		return NegInf
	}
	dd := dx - dy
	if dd < 0 {
		dd = -dd
	}
	if dd > int64(p.BandWidth) {
		return NegInf
	}
	// dx may still be negative here; min_d then is dx and the base goes
	// negative, which the caller treats like any other weak edge.
	minD := dy
	if dx < dy {
		minD = dx
	}
	base := int64(curr.W)
	if minD < base {
		base = minD
	}
	gap := int64(p.AvgSpan.Scale(int32(dd))) + int64(ilog2(dd)>>1)
	sc := base - gap
	if sc <= int64(NegInf) {
		return NegInf
	}
	if sc >= int64(MaxScore) {
		return MaxScore
	}
	return int32(sc)
}
