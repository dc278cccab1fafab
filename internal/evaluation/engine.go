package evaluation

import (
	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/logger"
	"github.com/spigell/interview-evaluator/internal/questions"
	"github.com/spigell/interview-evaluator/internal/utils"
)

const answerLogLimit = 80

type Engine struct {
	logger *zap.Logger
}

// New returns an Engine. A nil logger disables logging.
func New(l *zap.Logger) *Engine {
	return &Engine{logger: logger.WithFields(l)}
}

// Evaluate scores answer against the keywords of question for the given candidate context.
// It never fails: empty answers and empty keyword lists produce a low but valid Result.
func (e *Engine) Evaluate(answer string, question questions.Question, c Context) Result {
	c = c.WithDefaults()
	keywords := question.Keywords()

	a := Analyze(answer, keywords)

	components := Components{
		KeywordMatchRatio: a.KeywordMatchRatio,
		Semantic:          SemanticScore(answer, keywords),
		Clarity:           ClarityScore(a.UniqueWords, a.WordCount),
		Depth:             DepthScore(a.SentenceCount, c.ExperienceLevel),
	}

	percentage := MatchPercentage(components, RoleWeight(c.Role))
	classification := Classify(percentage)

	feedback := buildFeedback(feedbackInput{
		context:        c,
		classification: classification,
		percentage:     percentage,
		matched:        a.MatchedKeywords,
		missing:        a.MissingKeywords,
		components:     components,
		sentenceCount:  a.SentenceCount,
	})

	logger.WithCandidateFields(e.logger, c.Role, c.ExperienceLevel).Debug("answer evaluated",
		zap.String(logger.FieldQuestionID, question.ID),
		zap.String("answer", utils.TruncateForLog(answer, answerLogLimit)),
		zap.Float64("match_percentage", percentage),
		zap.String("classification", string(classification)),
		zap.Int("matched", len(a.MatchedKeywords)),
		zap.Int("missing", len(a.MissingKeywords)),
	)

	return Result{
		Classification:  classification,
		MatchedKeywords: a.MatchedKeywords,
		MissingKeywords: a.MissingKeywords,
		MatchPercentage: percentage,
		Feedback:        feedback,
		DetailedAnalysis: DetailedAnalysis{
			WordCount:         a.WordCount,
			UniqueWords:       a.UniqueWords,
			SentenceCount:     a.SentenceCount,
			AverageWordLength: a.AverageWordLength,
			KeywordDensity:    round2(float64(len(a.MatchedKeywords)) / float64(a.WordCount) * 100),
			SemanticScore:     round2(components.Semantic),
			ClarityScore:      round2(components.Clarity),
			DepthScore:        round2(components.Depth),
		},
	}
}

// Evaluate scores an answer without logging.
func Evaluate(answer string, question questions.Question, c Context) Result {
	return New(nil).Evaluate(answer, question, c)
}
