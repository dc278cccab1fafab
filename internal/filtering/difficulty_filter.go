package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/questions"
)

type difficultyFilter struct {
	disabled bool
	reason   string
	level    string
	fellBack bool
}

// NewDifficulty creates a filter that keeps the difficulties suited to the candidate's experience level.
// When no question survives, the bank is left untouched.
func NewDifficulty() Filter {
	return &difficultyFilter{}
}

func (f *difficultyFilter) Name() string { return "difficulty" }

func (f *difficultyFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *difficultyFilter) IsEnabled() bool { return !f.disabled }

func (f *difficultyFilter) Validate(cfg *Config) error {
	f.level = ""
	if cfg != nil {
		f.level = strings.TrimSpace(cfg.ExperienceLevel)
	}
	return nil
}

func (f *difficultyFilter) Apply(_ context.Context, deps Deps, b *questions.Bank) (*questions.Bank, Step, error) {
	initial := b.Len()

	filtered, fellBack := questions.FilterByLevelWithFallback(b, f.level)
	f.fellBack = fellBack

	if deps.Logger != nil && fellBack {
		deps.Logger.Info("no questions match the experience level; keeping the full bank",
			zap.String("experience_level", f.level),
			zap.Int("questions_left", filtered.Len()),
		)
	}

	return filtered, Step{Initial: initial, Dropped: initial - filtered.Len(), Left: filtered.Len()}, nil
}

func (f *difficultyFilter) Status() Status {
	details := map[string]string{}
	if f.level != "" {
		details["experience_level"] = f.level
		allowed := make([]string, 0, 2)
		for _, d := range questions.AllowedDifficulties(f.level) {
			allowed = append(allowed, string(d))
		}
		if len(allowed) > 0 {
			details["allowed"] = strings.Join(allowed, ",")
		}
	}
	if f.fellBack {
		details["fallback"] = "true"
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
