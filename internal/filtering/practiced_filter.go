package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/questions"
)

type practicedFilter struct {
	disabled bool
	reason   string
	path     string
}

// NewPracticed creates a filter that removes questions recorded in the practiced file.
// Once every question has been practiced the bank is kept so a session never starts empty.
func NewPracticed() Filter {
	return &practicedFilter{}
}

func (f *practicedFilter) Name() string { return "practiced" }

func (f *practicedFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *practicedFilter) IsEnabled() bool { return !f.disabled }

func (f *practicedFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.PracticedFile)
	}
	return nil
}

func (f *practicedFilter) Apply(_ context.Context, deps Deps, b *questions.Bank) (*questions.Bank, Step, error) {
	initial := b.Len()
	if f.path == "" {
		return b, Step{Initial: initial, Dropped: 0, Left: b.Len()}, nil
	}

	practiced, err := questions.GetPracticedFromFile(f.path)
	if err != nil {
		return b, Step{}, fmt.Errorf("getting practiced questions from file: %w", err)
	}

	remaining := b.Clone()
	removed := remaining.Exclude(practiced.QuestionIDs())
	if remaining.Len() == 0 {
		if deps.Logger != nil {
			deps.Logger.Info("every question was already practiced; keeping the full bank",
				zap.String("path", f.path),
			)
		}
		return b, Step{Initial: initial, Dropped: 0, Left: b.Len()}, nil
	}

	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding already practiced questions",
			zap.String("path", f.path),
			zap.Strings("excluded_questions", removed),
			zap.Int("questions_left", remaining.Len()),
		)
	}

	return remaining, Step{Initial: initial, Dropped: len(removed), Left: remaining.Len()}, nil
}

func (f *practicedFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
