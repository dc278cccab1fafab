// Package client talks to a running interview-evaluator API.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/batch"
	"github.com/spigell/interview-evaluator/internal/evaluation"
	"github.com/spigell/interview-evaluator/internal/questions"
	"github.com/spigell/interview-evaluator/internal/utils"
)

const (
	userAgent = "spigell/interview-evaluator"

	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 2
	retryDelay        = 500 * time.Millisecond
)

// Config holds the API client settings.
type Config struct {
	URL        string        `mapstructure:"url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max-retries"`
}

type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	BaseURL    string
	maxRetries int
}

func New(cfg Config, logger *zap.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api url %q must be an absolute http(s) url", cfg.URL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent:  userAgent,
		BaseURL:    base,
		maxRetries: maxRetries,
	}, nil
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code    int
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bad status: %s", e.Status)
	}
	return fmt.Sprintf("bad status: %s: %s", e.Status, e.Message)
}

// Temporary reports whether the request may succeed when retried.
func (e *StatusError) Temporary() bool {
	return e.Code >= http.StatusInternalServerError
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound
}

func (c *Client) Health(ctx context.Context) error {
	return c.getJSON(ctx, "/health", nil, nil)
}

func (c *Client) Roles(ctx context.Context) ([]string, error) {
	var roles []string
	if err := c.getJSON(ctx, "/api/roles", nil, &roles); err != nil {
		return nil, fmt.Errorf("get roles: %w", err)
	}
	return roles, nil
}

// Questions returns the role's questions, narrowed to experienceLevel when it is set.
func (c *Client) Questions(ctx context.Context, role, experienceLevel string) ([]questions.Question, error) {
	var q url.Values
	if level := strings.TrimSpace(experienceLevel); level != "" {
		q = url.Values{"experienceLevel": []string{level}}
	}

	var list []questions.Question
	if err := c.getJSON(ctx, "/api/questions/"+url.PathEscape(role), q, &list); err != nil {
		return nil, fmt.Errorf("get questions for %q: %w", role, err)
	}
	return list, nil
}

func (c *Client) Evaluate(ctx context.Context, req *evaluation.Request) (*evaluation.Result, error) {
	var res evaluation.Result
	if err := c.postJSON(ctx, "/api/evaluate", req, &res); err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	return &res, nil
}

func (c *Client) EvaluateBatch(ctx context.Context, submissions []batch.Submission) ([]batch.Outcome, error) {
	body := struct {
		Submissions []batch.Submission `json:"submissions"`
	}{Submissions: submissions}

	var resp struct {
		Outcomes []batch.Outcome `json:"outcomes"`
	}
	if err := c.postJSON(ctx, "/api/evaluate/batch", body, &resp); err != nil {
		return nil, fmt.Errorf("evaluate batch: %w", err)
	}
	return resp.Outcomes, nil
}

// wait is swapped in tests to skip retry delays.
var wait = utils.WaitFor

// withRetries runs call until it succeeds, fails permanently or maxRetries is exhausted.
// Delays grow linearly with the attempt number.
func (c *Client) withRetries(ctx context.Context, name string, call func() (retryable bool, err error)) error {
	for attempt := 0; ; attempt++ {
		retryable, err := call()
		if err == nil {
			return nil
		}
		if !retryable || attempt >= c.maxRetries {
			return err
		}

		delay := time.Duration(attempt+1) * retryDelay
		c.logger.Debug("request failed; retrying",
			zap.String("request", name),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if err := wait(ctx, delay); err != nil {
			return err
		}
	}
}
