package sentiment

import "testing"

func TestScoreRange(t *testing.T) {
	inputs := []string{
		"excellent quality, highly recommend these amazing shoes",
		"terrible product, worst purchase ever, total scam",
		"the store is on main street",
		"good shoes but the laces are bad",
	}
	for _, in := range inputs {
		s := Score(in)
		if s < -1 || s > 1 {
			t.Errorf("Score(%q) = %v, out of [-1,1]", in, s)
		}
	}
}

func TestScorePolarity(t *testing.T) {
	if s := Score("excellent quality, highly recommend"); s <= 0 {
		t.Errorf("expected positive score, got %v", s)
	}
	if s := Score("terrible scam, worst product, avoid"); s >= 0 {
		t.Errorf("expected negative score, got %v", s)
	}
}

func TestScoreEmptyText(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		if s := Score(in); s != 0 {
			t.Errorf("Score(%q) = %v, want 0", in, s)
		}
	}
}

func TestScoreNoSignal(t *testing.T) {
	if s := Score("the quarterly meeting is on tuesday"); s != 0 {
		t.Errorf("expected 0 for neutral text, got %v", s)
	}
}

func TestScoreDeterministic(t *testing.T) {
	in := "great product with some minor issues"
	first := Score(in)
	for i := 0; i < 10; i++ {
		if got := Score(in); got != first {
			t.Fatalf("Score not deterministic: %v != %v", got, first)
		}
	}
}

func TestLabel(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.5, "Positive"},
		{0.01, "Positive"},
		{0, "Neutral"},
		{-0.01, "Negative"},
		{-1, "Negative"},
	}
	for _, tc := range cases {
		if got := Label(tc.score); got != tc.want {
			t.Errorf("Label(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
