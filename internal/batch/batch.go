// Package batch evaluates many submissions concurrently.
package batch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/interview-evaluator/internal/evaluation"
	"github.com/spigell/interview-evaluator/internal/metrics"
)

// DefaultConcurrency is used when Options.Concurrency is not positive.
const DefaultConcurrency = 4

// Evaluator scores a validated request.
type Evaluator interface {
	EvaluateRequest(r *evaluation.Request) (evaluation.Result, error)
}

// Submission is a single answer in a batch.
type Submission struct {
	ID string `json:"id"`
	evaluation.Request
}

// Outcome is the result of one submission. Exactly one of Result and Error is set.
type Outcome struct {
	ID     string             `json:"id"`
	Result *evaluation.Result `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

type Options struct {
	Concurrency int
	Logger      *zap.Logger
}

// Run evaluates submissions with at most opts.Concurrency evaluations in flight.
// Outcomes keep the submission order. Invalid submissions produce an Outcome with
// Error set instead of failing the batch; only context cancellation aborts it.
func Run(ctx context.Context, ev Evaluator, submissions []Submission, opts Options) ([]Outcome, error) {
	if ev == nil {
		return nil, errors.New("evaluator is required")
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	outcomes := make([]Outcome, len(submissions))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range submissions {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			sub := &submissions[i]
			outcome := Outcome{ID: sub.ID}
			if outcome.ID == "" {
				outcome.ID = fmt.Sprintf("%d", i+1)
			}

			res, err := ev.EvaluateRequest(&sub.Request)
			if err != nil {
				metrics.BatchSubmissionsTotal.WithLabelValues("invalid").Inc()
				log.Debug("submission rejected", zap.String("id", outcome.ID), zap.Error(err))
				outcome.Error = err.Error()
			} else {
				metrics.BatchSubmissionsTotal.WithLabelValues("evaluated").Inc()
				metrics.ObserveEvaluation(string(res.Classification), res.MatchPercentage)
				outcome.Result = &res
			}

			outcomes[i] = outcome
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch evaluation: %w", err)
	}

	log.Info("batch evaluated",
		zap.Int("submissions", len(submissions)),
		zap.Int("concurrency", concurrency),
	)

	return outcomes, nil
}
