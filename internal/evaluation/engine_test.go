package evaluation

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/interview-evaluator/internal/logger"
	"github.com/spigell/interview-evaluator/internal/questions"
)

const memoryAnswer = "Stack memory is static and allocated at compile time, while heap memory is dynamic and allocated at runtime."

func memoryQuestion() questions.Question {
	return questions.Question{
		ID:               "memory",
		Text:             "Explain the difference between stack and heap memory.",
		RequiredKeywords: []string{"Stack", "Heap", "Static", "Dynamic", "Memory"},
	}
}

func TestEvaluateMemoryAnswer(t *testing.T) {
	res := Evaluate(memoryAnswer, memoryQuestion(), Context{})

	wantMatched := []string{"stack", "heap", "static", "dynamic", "memory"}
	if !reflect.DeepEqual(res.MatchedKeywords, wantMatched) {
		t.Fatalf("expected matched %v, got %v", wantMatched, res.MatchedKeywords)
	}
	if len(res.MissingKeywords) != 0 || res.MissingKeywords == nil {
		t.Fatalf("expected empty non-nil missing keywords, got %#v", res.MissingKeywords)
	}

	d := res.DetailedAnalysis
	if d.WordCount != 18 || d.UniqueWords != 13 || d.SentenceCount != 1 {
		t.Fatalf("unexpected counts: %+v", d)
	}
	if d.ClarityScore != 0.72 {
		t.Fatalf("expected clarity 0.72, got %v", d.ClarityScore)
	}
	if d.DepthScore != 0.2 {
		t.Fatalf("expected depth 0.2, got %v", d.DepthScore)
	}
	if d.SemanticScore != 0 {
		t.Fatalf("expected semantic 0, got %v", d.SemanticScore)
	}
	if d.KeywordDensity != 27.78 {
		t.Fatalf("expected keyword density 27.78, got %v", d.KeywordDensity)
	}
	wantAvg := float64(utf8.RuneCountInString(memoryAnswer)) / 18
	if d.AverageWordLength != wantAvg {
		t.Fatalf("expected average word length %v, got %v", wantAvg, d.AverageWordLength)
	}

	want := 100 * (0.45 + 0.15*13.0/18.0 + 0.15*0.2)
	if math.Abs(res.MatchPercentage-want) > 1e-9 {
		t.Fatalf("expected match percentage %v, got %v", want, res.MatchPercentage)
	}
	if res.MatchPercentage < 58 || res.MatchPercentage > 59 {
		t.Fatalf("match percentage out of expected range: %v", res.MatchPercentage)
	}
	if res.Classification != Moderate {
		t.Fatalf("expected Moderate, got %q", res.Classification)
	}
}

func TestEvaluateFeedback(t *testing.T) {
	res := Evaluate(memoryAnswer, memoryQuestion(), Context{})

	want := "Analysis for a Mid-level General at Generic:\n\n" +
		"Your answer demonstrates a moderate understanding.\n" +
		"It covered ~59% of expected concepts.\n" +
		"Covered: stack, heap, static, dynamic, memory.\n" +
		"Add examples or deeper steps for more depth.\n" +
		"Add more role-specific technical terms.\n" +
		"Structure as problem -> approach -> result.\n"
	if res.Feedback != want {
		t.Fatalf("unexpected feedback:\n%s\nwant:\n%s", res.Feedback, want)
	}

	res = Evaluate("I do not know.", memoryQuestion(), Context{
		Role:            "Backend Engineer",
		Company:         "Acme",
		ExperienceLevel: "Senior",
	})
	if !strings.HasPrefix(res.Feedback, "Analysis for a Senior-level Backend Engineer at Acme:\n\n") {
		t.Fatalf("unexpected header: %q", res.Feedback)
	}
	if !strings.Contains(res.Feedback, "Missing: stack, heap, static, dynamic, memory.\n") {
		t.Fatalf("expected missing line, got %q", res.Feedback)
	}
	if strings.Contains(res.Feedback, "Covered:") {
		t.Fatalf("did not expect covered line, got %q", res.Feedback)
	}
	if !strings.Contains(res.Feedback, "needs improvement understanding") {
		t.Fatalf("expected lower-cased classification, got %q", res.Feedback)
	}
}

func TestEvaluateLongAnswerIsTrimmed(t *testing.T) {
	answer := strings.TrimSpace(strings.Repeat("Caching reduces latency. ", 13))
	res := Evaluate(answer, questions.Question{RequiredKeywords: []string{"cache"}}, Context{})

	if res.DetailedAnalysis.SentenceCount != 13 {
		t.Fatalf("expected 13 sentences, got %d", res.DetailedAnalysis.SentenceCount)
	}
	if !strings.HasSuffix(res.Feedback, "Trim to keep it sharp and focused.\n") {
		t.Fatalf("expected trim hint, got %q", res.Feedback)
	}
	if !strings.Contains(res.Feedback, "Use more varied vocabulary for clarity.\n") {
		t.Fatalf("expected clarity hint for a repetitive answer, got %q", res.Feedback)
	}
}

func TestEvaluateEmptyAnswer(t *testing.T) {
	res := Evaluate("", memoryQuestion(), Context{})

	if res.DetailedAnalysis.WordCount != 1 {
		t.Fatalf("expected word count floor of 1, got %d", res.DetailedAnalysis.WordCount)
	}
	if res.DetailedAnalysis.UniqueWords != 0 || res.DetailedAnalysis.SentenceCount != 0 {
		t.Fatalf("unexpected analysis: %+v", res.DetailedAnalysis)
	}
	if res.MatchPercentage != 0 {
		t.Fatalf("expected 0%%, got %v", res.MatchPercentage)
	}
	if res.Classification != NeedsImprovement {
		t.Fatalf("expected Needs Improvement, got %q", res.Classification)
	}
	if len(res.MissingKeywords) != 5 {
		t.Fatalf("expected every keyword missing, got %v", res.MissingKeywords)
	}
}

func TestEvaluateNoKeywords(t *testing.T) {
	res := Evaluate(memoryAnswer, questions.Question{RequiredKeywords: []string{}}, Context{})

	if res.MatchedKeywords == nil || res.MissingKeywords == nil {
		t.Fatalf("keyword lists must be non-nil")
	}
	if len(res.MatchedKeywords)+len(res.MissingKeywords) != 0 {
		t.Fatalf("expected empty partition, got %v / %v", res.MatchedKeywords, res.MissingKeywords)
	}
	if res.Classification != NeedsImprovement {
		t.Fatalf("expected Needs Improvement without keyword credit, got %q (%v)", res.Classification, res.MatchPercentage)
	}
}

func TestEvaluatePartitionAndBounds(t *testing.T) {
	answers := []string{
		"",
		memoryAnswer,
		"Treading lets programs do several things. Locks guard shared state! Deadlocks happen?",
		strings.Repeat("Kubernetes schedules pods onto nodes. ", 20),
	}
	keywordSets := [][]string{
		{},
		{"Threading", "Locks", "Deadlock", "Race Condition"},
		{"Kubernetes", "Pods", "Nodes", "Scheduler", "Etcd"},
	}
	contexts := []Context{
		{},
		{Role: "AI/ML Engineer", ExperienceLevel: "Senior"},
		{Role: "Frontend Engineer", ExperienceLevel: "Intern"},
		{Role: "Backend Engineer", ExperienceLevel: "Unknown"},
	}

	for _, answer := range answers {
		for _, keywords := range keywordSets {
			for _, c := range contexts {
				res := Evaluate(answer, questions.Question{RequiredKeywords: keywords}, c)

				if res.MatchPercentage < 0 || res.MatchPercentage > 100 {
					t.Fatalf("match percentage out of bounds: %v", res.MatchPercentage)
				}
				if got := len(res.MatchedKeywords) + len(res.MissingKeywords); got != len(keywords) {
					t.Fatalf("partition size %d, want %d", got, len(keywords))
				}
				for i, k := range keywords {
					lower := strings.ToLower(k)
					if !contains(res.MatchedKeywords, lower) && !contains(res.MissingKeywords, lower) {
						t.Fatalf("keyword %d (%q) missing from partition", i, lower)
					}
				}
				if res.Classification != Classify(res.MatchPercentage) {
					t.Fatalf("classification %q does not match percentage %v", res.Classification, res.MatchPercentage)
				}
			}
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	first := Evaluate(memoryAnswer, memoryQuestion(), Context{Role: "Backend Engineer"})

	var wg sync.WaitGroup
	results := make([]Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Evaluate(memoryAnswer, memoryQuestion(), Context{Role: "Backend Engineer"})
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		if !reflect.DeepEqual(first, res) {
			t.Fatalf("result %d differs: %+v vs %+v", i, first, res)
		}
	}
}

func TestEvaluateRoleWeightCapped(t *testing.T) {
	answer := "Gradient descent minimises the loss. Backpropagation computes gradients layer by layer. " +
		"Regularisation fights overfitting. Validation sets guide tuning. Learning rate schedules help convergence. " +
		"Batch normalisation stabilises training."
	q := questions.Question{RequiredKeywords: []string{"gradient", "loss", "overfitting", "validation"}}

	res := Evaluate(answer, q, Context{Role: "AI/ML Engineer", ExperienceLevel: "Senior"})
	if res.MatchPercentage > 100 {
		t.Fatalf("expected percentage capped at 100, got %v", res.MatchPercentage)
	}
	if res.DetailedAnalysis.DepthScore != 1.2 {
		t.Fatalf("expected depth capped at 1.2, got %v", res.DetailedAnalysis.DepthScore)
	}

	neutral := Evaluate(answer, q, Context{ExperienceLevel: "Senior"})
	if res.MatchPercentage <= neutral.MatchPercentage {
		t.Fatalf("expected ml role to raise the score: %v <= %v", res.MatchPercentage, neutral.MatchPercentage)
	}
}

func TestEngineLogsEvaluation(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	engine := New(zap.New(core))

	engine.Evaluate(memoryAnswer, memoryQuestion(), Context{Role: "Backend Engineer", ExperienceLevel: "Junior"})

	entries := observed.FilterMessage("answer evaluated").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx[logger.FieldRole] != "Backend Engineer" || ctx[logger.FieldExperienceLevel] != "Junior" {
		t.Fatalf("unexpected candidate fields: %v", ctx)
	}
	if ctx[logger.FieldQuestionID] != "memory" {
		t.Fatalf("unexpected question id: %v", ctx[logger.FieldQuestionID])
	}
	if answer, _ := ctx["answer"].(string); !strings.HasSuffix(answer, "...") {
		t.Fatalf("expected truncated answer, got %q", answer)
	}
}

func TestEvaluateRequest(t *testing.T) {
	engine := New(nil)
	q := memoryQuestion()

	tests := []struct {
		name    string
		req     *Request
		wantErr bool
	}{
		{name: "nil request", req: nil, wantErr: true},
		{name: "missing answer", req: &Request{Question: &q}, wantErr: true},
		{name: "missing question", req: &Request{Answer: "a"}, wantErr: true},
		{name: "missing keywords", req: &Request{Answer: "a", Question: &questions.Question{Text: "q"}}, wantErr: true},
		{name: "empty keywords allowed", req: &Request{Answer: "a", Question: &questions.Question{RequiredKeywords: []string{}}}},
		{name: "complete", req: &Request{Answer: memoryAnswer, Question: &q, Role: "Backend Engineer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := engine.EvaluateRequest(tt.req)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRequest) {
					t.Fatalf("expected ErrInvalidRequest, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Classification == "" {
				t.Fatalf("expected a classification")
			}
		})
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
