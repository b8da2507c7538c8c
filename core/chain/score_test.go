package chain

import "testing"

var wide = Params{MaxDistX: 5000, MaxDistY: 5000, BandWidth: 500}

func TestILog2Table(t *testing.T) {
	cases := []struct {
		v    int64
		want int32
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}, {7, 2}, {8, 3},
		{31, 4}, {32, 5}, {127, 6}, {128, 7}, {255, 7}, {256, 8}, {1 << 20, 8},
	}
	for _, c := range cases {
		if got := ilog2(c.v); got != c.want {
			t.Errorf("ilog2(%d)=%d want %d", c.v, got, c.want)
		}
	}
}

func TestScoreRejections(t *testing.T) {
	prev := Anchor{Tag: 1, X: 100, Y: 100, W: 15}
	p := Params{MaxDistX: 50, MaxDistY: 40, BandWidth: 10}

	tests := []struct {
		name string
		curr Anchor
	}{
		{"same x", Anchor{Tag: 1, X: 100, Y: 110, W: 15}},
		{"x too far", Anchor{Tag: 1, X: 151, Y: 141, W: 15}},
		{"y too far", Anchor{Tag: 1, X: 141, Y: 141, W: 15}},
		{"y not increasing", Anchor{Tag: 1, X: 110, Y: 100, W: 15}},
		{"y decreasing", Anchor{Tag: 1, X: 110, Y: 90, W: 15}},
		{"off band", Anchor{Tag: 1, X: 130, Y: 105, W: 15}},
		{"other tag", Anchor{Tag: 2, X: 110, Y: 110, W: 15}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(prev, tc.curr, p); got != NegInf {
				t.Fatalf("want NegInf, got %d", got)
			}
		})
	}
}

func TestScoreValues(t *testing.T) {
	prev := Anchor{Tag: 3, X: 1000, Y: 2000, W: 15}
	tests := []struct {
		name string
		curr Anchor
		span Span
		want int32
	}{
		{"diagonal, weight bound", Anchor{Tag: 3, X: 1100, Y: 2100, W: 15}, 0, 15},
		{"diagonal, distance bound", Anchor{Tag: 3, X: 1004, Y: 2004, W: 15}, 0, 4},
		{"small gap no span", Anchor{Tag: 3, X: 1040, Y: 2037, W: 15}, 0, 15 - (1 >> 1)},
		{"log term", Anchor{Tag: 3, X: 1100, Y: 2090, W: 15}, 0, 15 - (3 >> 1)},
		{"span term", Anchor{Tag: 3, X: 1100, Y: 2090, W: 15}, SpanFromFloat(0.5), 15 - (5 + 1)},
		{"span floors", Anchor{Tag: 3, X: 1100, Y: 2097, W: 15}, SpanFromFloat(0.15), 15 - (0 + 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := wide
			p.AvgSpan = tc.span
			if got := Score(prev, tc.curr, p); got != tc.want {
				t.Fatalf("Score=%d want %d", got, tc.want)
			}
		})
	}
}

func TestScoreLargeCoordinatesDoNotWrap(t *testing.T) {
	prev := Anchor{Tag: 1, X: -2_000_000_000, Y: 0, W: 10}
	curr := Anchor{Tag: 1, X: 2_000_000_000, Y: 10, W: 10}
	if got := Score(prev, curr, Params{MaxDistX: 1 << 30, MaxDistY: 1 << 30, BandWidth: 1 << 30}); got != NegInf {
		t.Fatalf("distance overflow should reject, got %d", got)
	}
}

func TestAddScoreSaturates(t *testing.T) {
	if got := AddScore(NegInf, NegInf); got != NegInf {
		t.Fatalf("NegInf+NegInf=%d", got)
	}
	if got := AddScore(NegInf, 1<<20); got >= 0 {
		t.Fatalf("NegInf plus a finite score must stay negative, got %d", got)
	}
	if got := AddScore(MaxScore, MaxScore); got != MaxScore {
		t.Fatalf("MaxScore+MaxScore=%d", got)
	}
	if got := AddScore(7, -3); got != 4 {
		t.Fatalf("7-3=%d", got)
	}
}

func TestSpanConversion(t *testing.T) {
	if SpanFromFloat(-1) != 0 || SpanFromFloat(0) != 0 {
		t.Fatal("non-positive spans must clamp to 0")
	}
	if SpanFromFloat(1) != MaxSpan || SpanFromFloat(3.5) != MaxSpan {
		t.Fatal("spans >= 1 must saturate")
	}
	if got := SpanFromQSpan(50).Float(); got < 0.4999 || got > 0.5001 {
		t.Fatalf("qspan 50 -> %v", got)
	}
	if got := SpanFromFloat(0.5).Scale(7); got != 3 {
		t.Fatalf("0.5*7 floors to 3, got %d", got)
	}
	if got := MaxSpan.Scale(1000); got != 999 {
		t.Fatalf("MaxSpan*1000 = %d", got)
	}
}
