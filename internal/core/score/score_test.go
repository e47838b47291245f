package score

import "testing"

func TestDecide_InclusiveBoundaries(t *testing.T) {
	t.Parallel()

	th := Thresholds{Notify: 0.8, LogOnly: 0.6}

	cases := []struct {
		conf float64
		want Decision
	}{
		{0.85, DecisionNotify},
		{0.8, DecisionNotify}, // boundary favors higher tier
		{0.7, DecisionLogOnly},
		{0.6, DecisionLogOnly},
		{0.5, DecisionIgnore},
		{0.0, DecisionIgnore},
		{1.0, DecisionNotify},
	}
	for i, c := range cases {
		if got := Decide(c.conf, th); got != c.want {
			t.Fatalf("case %d: Decide(%v) = %q, want %q", i, c.conf, got, c.want)
		}
	}
}

func TestDecide_Idempotent(t *testing.T) {
	t.Parallel()

	th := Thresholds{Notify: 0.8, LogOnly: 0.6}
	for i := 0; i < 3; i++ {
		if got := Decide(0.7, th); got != DecisionLogOnly {
			t.Fatalf("repeat %d: got %q", i, got)
		}
	}
}

func TestTerm_HandleHashtagWholeWordSubstring(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		term string
		text string
		want float64
	}{
		{"handle mention", "@mybrand", "hey @mybrand nice", 1.0},
		{"hashtag", "#mybrand", "loving it #mybrand", 0.95},
		{"whole word", "mybrand", "I bought MyBrand yesterday", 0.95},
		{"whole word with punctuation", "mybrand", "mybrand!", 0.95},
		{"substring only", "brand", "rebranding effort", 0.8},
		{"handle wins regardless of text", "@mybrand", "no mention at all", 1.0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			if got := Term(c.term, c.text); got != c.want {
				t.Fatalf("Term(%q, %q) = %v, want %v", c.term, c.text, got, c.want)
			}
		})
	}
}

func TestText_MaxOverTerms(t *testing.T) {
	t.Parallel()

	text := "check out @mybrand and our rebranding"
	if got := Text([]string{"brand", "@mybrand"}, text); got != 1.0 {
		t.Fatalf("expected handle to win: %v", got)
	}
	if got := Text([]string{"brand"}, text); got != 0.8 {
		t.Fatalf("expected substring score: %v", got)
	}
	if got := Text(nil, text); got != 0 {
		t.Fatalf("no terms must score 0: %v", got)
	}
}
