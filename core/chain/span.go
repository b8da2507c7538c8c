package chain

import "math"

// Span is an unsigned Q0.16 fixed-point fraction in [0, 1). Conversions
// round to nearest and saturate, matching a 16-bit AP_RND/AP_SAT type.
type Span uint16

const spanOne = 1 << 16

// MaxSpan is the largest representable fraction (1 - 2^-16).
const MaxSpan Span = math.MaxUint16

// SpanFromFloat converts f to a Span, clamping to [0, MaxSpan].
func SpanFromFloat(f float64) Span {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	v := math.Round(f * spanOne)
	if v >= math.MaxUint16 {
		return MaxSpan
	}
	return Span(v)
}

// SpanFromQSpan scales an average query span (as printed by the aligner)
// by 0.01, the gap coefficient used by the chaining score.
func SpanFromQSpan(avgQSpan float64) Span { return SpanFromFloat(avgQSpan * 0.01) }

// Float returns the fraction as a float64.
func (s Span) Float() float64 { return float64(s) / spanOne }

// Scale returns floor(d * s) for d >= 0.
func (s Span) Scale(d int32) int32 {
	if d <= 0 {
		return 0
	}
	return int32((int64(d) * int64(s)) >> 16)
}
