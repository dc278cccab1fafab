package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spigell/interview-evaluator/internal/questions"
)

func TestReadAnswer(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "answer.txt")
	if err := os.WriteFile(file, []byte("  from file \n"), 0o600); err != nil {
		t.Fatalf("write answer: %v", err)
	}

	tests := []struct {
		name   string
		text   string
		file   string
		stdin  string
		expect string
		err    bool
	}{
		{name: "inline text wins", text: " inline ", file: file, stdin: "stdin", expect: "inline"},
		{name: "file", file: file, stdin: "stdin", expect: "from file"},
		{name: "stdin by default", stdin: "piped answer\n", expect: "piped answer"},
		{name: "dash reads stdin", file: "-", stdin: "dash", expect: "dash"},
		{name: "empty", stdin: "   ", err: true},
		{name: "missing file", file: filepath.Join(dir, "missing.txt"), err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readAnswer(tt.text, tt.file, strings.NewReader(tt.stdin))
			if tt.err {
				if err == nil {
					t.Fatalf("expected an error, got answer %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestResolveQuestionFromBank(t *testing.T) {
	catalog := questions.Builtin()
	id := questions.QuestionID("Backend Developer", 0)

	q, role, err := resolveQuestion(catalog, id, "ignored", []string{"ignored"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != "Backend Developer" {
		t.Fatalf("expected Backend Developer, got %q", role)
	}
	if q.Text != "What is CRUD and how is it used in APIs?" {
		t.Fatalf("unexpected question %q", q.Text)
	}

	if _, _, err := resolveQuestion(catalog, "nope-01", "", nil, ""); err == nil {
		t.Fatal("expected an error for an unknown id")
	}
}

func TestResolveAdHocQuestion(t *testing.T) {
	q, role, err := resolveQuestion(questions.Builtin(), "", " Explain caching ", []string{"Cache", " ", "TTL "}, "hard")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != "" {
		t.Fatalf("expected no role, got %q", role)
	}
	if q.Text != "Explain caching" || q.Difficulty != questions.DifficultyHard {
		t.Fatalf("unexpected question %+v", q)
	}
	if len(q.RequiredKeywords) != 2 || q.RequiredKeywords[0] != "Cache" || q.RequiredKeywords[1] != "TTL" {
		t.Fatalf("unexpected keywords %v", q.RequiredKeywords)
	}

	empty, _, err := resolveQuestion(questions.Builtin(), "", "Tell me about yourself", nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty.RequiredKeywords == nil {
		t.Fatal("expected an empty, non-nil keyword list")
	}
	if empty.Difficulty != questions.DefaultDifficulty {
		t.Fatalf("expected the default difficulty, got %s", empty.Difficulty)
	}

	if _, _, err := resolveQuestion(questions.Builtin(), "", "", nil, ""); err == nil {
		t.Fatal("expected an error without a question")
	}
	if _, _, err := resolveQuestion(questions.Builtin(), "", "text", nil, "extreme"); err == nil {
		t.Fatal("expected an error for an unknown difficulty")
	}
}

func TestReadSubmissions(t *testing.T) {
	input := `{"submissions":[{"id":"a","answer":"heap","question":{"requiredKeywords":["heap"]}},{"answer":"x"}]}`

	subs, err := readSubmissions("-", strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(subs))
	}
	if subs[0].ID != "a" || subs[0].Answer != "heap" || subs[0].Question == nil {
		t.Fatalf("unexpected first submission %+v", subs[0])
	}
	if subs[1].Question != nil {
		t.Fatalf("expected no question in the second submission, got %+v", subs[1].Question)
	}

	if _, err := readSubmissions("-", strings.NewReader(`{"submissions":[]}`)); err == nil {
		t.Fatal("expected an error for an empty batch")
	}
	if _, err := readSubmissions("-", strings.NewReader(`not json`)); err == nil {
		t.Fatal("expected an error for malformed input")
	}
}
