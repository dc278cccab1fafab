package evaluation

import (
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{name: "empty", input: "", expect: []string{}},
		{name: "punctuation only", input: "... !?", expect: []string{}},
		{name: "lower-cases and splits", input: "Go's GC, e.g. tri-color!", expect: []string{"go", "s", "gc", "e", "g", "tri", "color"}},
		{name: "keeps digits and underscores", input: "http2 snake_case O(n)", expect: []string{"http2", "snake_case", "o", "n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Tokenize(tt.input)
			if len(got) == 0 && len(tt.expect) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestCountSentences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect int
	}{
		{input: "", expect: 0},
		{input: "No terminator", expect: 1},
		{input: "One. Two! Three?", expect: 3},
		{input: "Wait... what?!", expect: 2},
		{input: "...", expect: 0},
		{input: "Trailing. ", expect: 2},
	}

	for _, tt := range tests {
		if got := CountSentences(tt.input); got != tt.expect {
			t.Fatalf("CountSentences(%q) = %d, want %d", tt.input, got, tt.expect)
		}
	}
}

func TestMatchKeywordsFuzzy(t *testing.T) {
	t.Parallel()

	matched, missing := MatchKeywords(Tokenize("Treading makes programs responsive"), []string{"Threading"})
	if !reflect.DeepEqual(matched, []string{"threading"}) || len(missing) != 0 {
		t.Fatalf("expected threading to match treading, got %v / %v", matched, missing)
	}

	matched, missing = MatchKeywords(Tokenize("The indexes were rebuilt"), []string{"Index", "Kubernetes"})
	if !reflect.DeepEqual(matched, []string{"index"}) {
		t.Fatalf("expected stemmed match for index, got %v", matched)
	}
	if !reflect.DeepEqual(missing, []string{"kubernetes"}) {
		t.Fatalf("expected kubernetes missing, got %v", missing)
	}

	// A longer token containing the keyword stem counts as a match.
	matched, _ = MatchKeywords(Tokenize("microservices everywhere"), []string{"service"})
	if !reflect.DeepEqual(matched, []string{"service"}) {
		t.Fatalf("expected substring match, got %v", matched)
	}
}

func TestMatchKeywordsKeepsOrderAndNonNil(t *testing.T) {
	t.Parallel()

	matched, missing := MatchKeywords(nil, nil)
	if matched == nil || missing == nil {
		t.Fatalf("expected non-nil slices")
	}

	matched, missing = MatchKeywords(Tokenize("heap then stack"), []string{"Zookeeper", "Stack", "Quantum", "Heap"})
	if !reflect.DeepEqual(matched, []string{"stack", "heap"}) {
		t.Fatalf("unexpected matched order: %v", matched)
	}
	if !reflect.DeepEqual(missing, []string{"zookeeper", "quantum"}) {
		t.Fatalf("unexpected missing order: %v", missing)
	}
}

func TestStem(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Running":   "run",
		"threading": "thread",
		"memory":    "memori",
		"dynamic":   "dynam",
		"go":        "go",
		"":          "",
	}
	for in, want := range tests {
		if got := Stem(in); got != want {
			t.Fatalf("Stem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAnalyzeAverageWordLength(t *testing.T) {
	t.Parallel()

	a := Analyze("ab cd.", nil)
	if a.WordCount != 2 || a.UniqueWords != 2 || a.SentenceCount != 1 {
		t.Fatalf("unexpected analysis: %+v", a)
	}
	// Raw length including spaces and punctuation.
	if a.AverageWordLength != 3 {
		t.Fatalf("expected 3, got %v", a.AverageWordLength)
	}
	if a.KeywordMatchRatio != 0 {
		t.Fatalf("expected zero ratio without keywords, got %v", a.KeywordMatchRatio)
	}
}

func TestTermIndex(t *testing.T) {
	t.Parallel()

	ix := NewTermIndex()
	ix.AddDocument("go is fast")
	ix.AddDocument("rust is safe and rust is fast")
	ix.AddDocument("python")

	if ix.Len() != 3 {
		t.Fatalf("expected 3 documents, got %d", ix.Len())
	}
	if got := ix.IDF("missing"); got != 0 {
		t.Fatalf("expected 0 idf for an unknown term, got %v", got)
	}
	if got, want := ix.IDF("go"), math.Log(3); math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected idf %v, got %v", want, got)
	}
	if got, want := ix.TFIDF("rust", 1), 2*math.Log(3); math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected tf-idf %v, got %v", want, got)
	}
	if got, want := ix.TFIDF("Rust safe", 1), 2*math.Log(3)+math.Log(3); math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected multi-word tf-idf %v, got %v", want, got)
	}
	if got := ix.TFIDF("go", 7); got != 0 {
		t.Fatalf("expected 0 for an out of range document, got %v", got)
	}
}

func TestSemanticScoreSingleDocument(t *testing.T) {
	t.Parallel()

	if got := SemanticScore(memoryAnswer, []string{"stack", "heap"}); got != 0 {
		t.Fatalf("expected 0 for a single-document index, got %v", got)
	}
	if got := SemanticScore(memoryAnswer, nil); got != 0 {
		t.Fatalf("expected 0 without keywords, got %v", got)
	}
}
