package evaluation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/interview-evaluator/internal/questions"
)

// ErrInvalidRequest is returned when an evaluation request lacks its answer, question or keywords.
var ErrInvalidRequest = errors.New("missing required data")

var validate = validator.New()

// Request is the transport shape of a single evaluation.
type Request struct {
	Answer          string              `json:"answer" validate:"required"`
	Question        *questions.Question `json:"question" validate:"required"`
	Role            string              `json:"role,omitempty"`
	Company         string              `json:"company,omitempty"`
	ExperienceLevel string              `json:"experienceLevel,omitempty"`
}

// Validate checks that the answer is non-empty and that the question carries a keyword list.
// An empty keyword list is accepted.
func (r *Request) Validate() error {
	if r == nil {
		return ErrInvalidRequest
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

func (r *Request) Context() Context {
	return Context{
		Role:            r.Role,
		Company:         r.Company,
		ExperienceLevel: r.ExperienceLevel,
	}
}

// EvaluateRequest validates r and evaluates it.
func (e *Engine) EvaluateRequest(r *Request) (Result, error) {
	if err := r.Validate(); err != nil {
		return Result{}, err
	}
	return e.Evaluate(r.Answer, *r.Question, r.Context()), nil
}
