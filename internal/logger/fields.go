package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldRole is the structured log field key for the candidate role.
	FieldRole = "role"
	// FieldExperienceLevel is the structured log field key for the candidate seniority.
	FieldExperienceLevel = "experience_level"
	// FieldQuestionID is the structured log field key for a question identifier.
	FieldQuestionID = "question_id"
	// FieldRequestID is the structured log field key for the HTTP request identifier.
	FieldRequestID = "request_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CandidateFields describes who an answer is evaluated for.
// Empty values are ignored to keep log entries compact.
func CandidateFields(role, experienceLevel string) []zap.Field {
	return StringFields(
		StringField{Key: FieldRole, Value: role},
		StringField{Key: FieldExperienceLevel, Value: experienceLevel},
	)
}

// WithCandidateFields attaches the candidate fields to the provided logger.
func WithCandidateFields(logger *zap.Logger, role, experienceLevel string) *zap.Logger {
	return WithFields(logger, CandidateFields(role, experienceLevel)...)
}
