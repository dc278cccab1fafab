package questions

import (
	"slices"
	"testing"
)

func TestAllowedDifficulties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level  string
		expect []Difficulty
	}{
		{level: "Intern", expect: []Difficulty{DifficultyEasy}},
		{level: "junior", expect: []Difficulty{DifficultyEasy, DifficultyMedium}},
		{level: "MID", expect: []Difficulty{DifficultyMedium}},
		{level: "Senior", expect: []Difficulty{DifficultyMedium, DifficultyHard}},
		{level: "  senior ", expect: []Difficulty{DifficultyMedium, DifficultyHard}},
		{level: "Unknown", expect: nil},
		{level: "", expect: nil},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()
			got := AllowedDifficulties(tt.level)
			if !slices.Equal(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
			if (tt.expect == nil) != NoFilter(tt.level) {
				t.Fatalf("NoFilter(%q) mismatch", tt.level)
			}
		})
	}
}

func testBank() *Bank {
	return NewBank(
		&Question{ID: "q1", Text: "easy one", Difficulty: DifficultyEasy, RequiredKeywords: []string{"a"}},
		&Question{ID: "q2", Text: "medium one", RequiredKeywords: []string{"b"}},
		&Question{ID: "q3", Text: "hard one", Difficulty: DifficultyHard, RequiredKeywords: []string{"c"}},
	)
}

func TestFilterByLevel(t *testing.T) {
	t.Parallel()

	bank := testBank()

	senior := FilterByLevel(bank, "Senior")
	if got := ids(senior); !slices.Equal(got, []string{"q2", "q3"}) {
		t.Fatalf("unexpected senior questions: %v", got)
	}

	// q2 has no difficulty and counts as medium.
	mid := FilterByLevel(bank, "mid")
	if got := ids(mid); !slices.Equal(got, []string{"q2"}) {
		t.Fatalf("unexpected mid questions: %v", got)
	}

	unknown := FilterByLevel(bank, "Principal")
	if unknown.Len() != bank.Len() {
		t.Fatalf("expected unfiltered bank for unknown level, got %d questions", unknown.Len())
	}

	if bank.Len() != 3 {
		t.Fatalf("source bank must not be modified, got %d questions", bank.Len())
	}
}

func TestFilterByLevelFailsOpen(t *testing.T) {
	t.Parallel()

	bank := NewBank(
		&Question{ID: "h1", Difficulty: DifficultyHard},
		&Question{ID: "h2", Difficulty: DifficultyHard},
	)

	filtered, fallback := FilterByLevelWithFallback(bank, "Intern")
	if !fallback {
		t.Fatalf("expected fallback to be reported")
	}
	if got := ids(filtered); !slices.Equal(got, []string{"h1", "h2"}) {
		t.Fatalf("expected full bank on empty filter result, got %v", got)
	}

	_, fallback = FilterByLevelWithFallback(bank, "Senior")
	if fallback {
		t.Fatalf("did not expect fallback when hard questions are allowed")
	}
}

func ids(b *Bank) []string {
	out := make([]string, 0, b.Len())
	for _, q := range b.Items {
		out = append(out, q.ID)
	}
	return out
}
