package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/questions"
)

type withKeywordsFilter struct {
	disabled bool
	reason   string
}

// NewWithKeywords creates a filter that removes questions without required keywords. They cannot earn
// keyword credit, so they are not offered for practice.
func NewWithKeywords() Filter {
	return &withKeywordsFilter{}
}

func (f *withKeywordsFilter) Name() string { return "with_keywords" }

func (f *withKeywordsFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *withKeywordsFilter) IsEnabled() bool { return !f.disabled }

func (f *withKeywordsFilter) Validate(*Config) error { return nil }

func (f *withKeywordsFilter) Apply(_ context.Context, deps Deps, b *questions.Bank) (*questions.Bank, Step, error) {
	initial := b.Len()
	excluded := b.Retain(func(q *questions.Question) bool {
		return len(q.RequiredKeywords) > 0
	})
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding questions without required keywords",
			zap.Strings("excluded_questions", excluded),
			zap.Int("questions_left", b.Len()),
		)
	}

	return b, Step{Initial: initial, Dropped: len(excluded), Left: b.Len()}, nil
}

func (f *withKeywordsFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
