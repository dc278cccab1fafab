package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/batch"
	"github.com/spigell/interview-evaluator/internal/cache"
	"github.com/spigell/interview-evaluator/internal/evaluation"
	"github.com/spigell/interview-evaluator/internal/logger"
	"github.com/spigell/interview-evaluator/internal/metrics"
	"github.com/spigell/interview-evaluator/internal/questions"
)

const (
	maxBodyBytes       = 1 << 20
	maxBatchSize       = 100
	missingDataMessage = "Missing required data"
	cacheHeader        = "X-Cache"
)

// BatchRequest is the body of POST /api/evaluate/batch.
type BatchRequest struct {
	Submissions []batch.Submission `json:"submissions"`
}

type BatchResponse struct {
	Outcomes []batch.Outcome `json:"outcomes"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRoles(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.catalog.Roles())
}

// handleQuestions returns the role's questions narrowed to the experienceLevel query parameter.
// When the level filter leaves nothing, the whole bank is returned.
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	role := r.PathValue("role")

	bank, ok := s.catalog.Lookup(role)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("No questions found for role: %s", role))
		return
	}

	level := r.URL.Query().Get("experienceLevel")
	filtered, fellBack := questions.FilterByLevelWithFallback(bank, level)
	if fellBack {
		s.requestLogger(r).Debug("no questions match the experience level; returning the full bank",
			zap.String(logger.FieldRole, role),
			zap.String(logger.FieldExperienceLevel, level),
		)
	}

	s.jsonResponse(w, http.StatusOK, filtered.Questions())
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluation.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.requestLogger(r).Debug("decoding evaluation request", zap.Error(err))
		s.errorResponse(w, http.StatusBadRequest, missingDataMessage)
		return
	}
	if err := req.Validate(); err != nil {
		s.requestLogger(r).Debug("invalid evaluation request", zap.Error(err))
		s.errorResponse(w, http.StatusBadRequest, missingDataMessage)
		return
	}

	key, err := cache.Key(&req)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, missingDataMessage)
		return
	}

	if res, ok := s.cachedResult(r, key); ok {
		w.Header().Set(cacheHeader, "HIT")
		s.jsonResponse(w, http.StatusOK, res)
		return
	}

	res := s.engine.Evaluate(req.Answer, *req.Question, req.Context())
	metrics.ObserveEvaluation(string(res.Classification), res.MatchPercentage)
	s.storeResult(r, key, res)

	w.Header().Set(cacheHeader, "MISS")
	s.jsonResponse(w, http.StatusOK, res)
}

func (s *Server) handleEvaluateBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, missingDataMessage)
		return
	}
	if len(req.Submissions) == 0 {
		s.errorResponse(w, http.StatusBadRequest, missingDataMessage)
		return
	}
	if len(req.Submissions) > maxBatchSize {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("Too many submissions: at most %d allowed", maxBatchSize))
		return
	}

	outcomes, err := batch.Run(r.Context(), s.engine, req.Submissions, s.batch)
	if err != nil {
		s.requestLogger(r).Warn("batch evaluation aborted", zap.Error(err))
		s.errorResponse(w, http.StatusServiceUnavailable, "Batch evaluation aborted")
		return
	}

	s.jsonResponse(w, http.StatusOK, BatchResponse{Outcomes: outcomes})
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	s.errorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// cachedResult treats cache failures as misses.
func (s *Server) cachedResult(r *http.Request, key string) (*evaluation.Result, bool) {
	res, ok, err := s.cache.Get(r.Context(), key)
	switch {
	case err != nil:
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		s.requestLogger(r).Warn("result cache lookup failed", zap.Error(err))
		return nil, false
	case ok:
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return res, true
	default:
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
}

func (s *Server) storeResult(r *http.Request, key string, res evaluation.Result) {
	// Cached even when the client has disconnected.
	ctx := context.WithoutCancel(r.Context())
	if err := s.cache.Set(ctx, key, res); err != nil {
		s.requestLogger(r).Warn("storing result in cache failed", zap.Error(err))
	}
}

func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logger.WithFields(s.logger, zap.String(logger.FieldRequestID, RequestID(r.Context())))
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encoding JSON response", zap.Error(err))
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
