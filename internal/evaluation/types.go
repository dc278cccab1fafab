// Package evaluation scores free-text interview answers against the concepts a question expects.
//
// Scoring is deterministic and keeps no state between calls: the same answer, question and
// context always produce the same Result, and any number of evaluations may run in parallel.
package evaluation

import "strings"

// Classification is the qualitative band of a match percentage.
type Classification string

const (
	Outstanding      Classification = "Outstanding"
	Strong           Classification = "Strong"
	Moderate         Classification = "Moderate"
	NeedsImprovement Classification = "Needs Improvement"
)

const (
	defaultRole            = "General"
	defaultCompany         = "Generic"
	defaultExperienceLevel = "Mid"
)

// Context describes the candidate the answer is evaluated for.
type Context struct {
	Role            string `json:"role,omitempty" mapstructure:"role"`
	Company         string `json:"company,omitempty" mapstructure:"company"`
	ExperienceLevel string `json:"experienceLevel,omitempty" mapstructure:"experience-level"`
}

// WithDefaults fills empty fields with the neutral General/Generic/Mid context.
func (c Context) WithDefaults() Context {
	c.Role = orDefault(c.Role, defaultRole)
	c.Company = orDefault(c.Company, defaultCompany)
	c.ExperienceLevel = orDefault(c.ExperienceLevel, defaultExperienceLevel)
	return c
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// Result is the outcome of a single evaluation.
type Result struct {
	Classification   Classification   `json:"classification"`
	MatchedKeywords  []string         `json:"matchedKeywords"`
	MissingKeywords  []string         `json:"missingKeywords"`
	MatchPercentage  float64          `json:"matchPercentage"`
	Feedback         string           `json:"feedback"`
	DetailedAnalysis DetailedAnalysis `json:"detailedAnalysis"`
}

// DetailedAnalysis exposes the statistics behind the score. Ratios are rounded to two decimals.
type DetailedAnalysis struct {
	WordCount         int     `json:"wordCount"`
	UniqueWords       int     `json:"uniqueWords"`
	SentenceCount     int     `json:"sentenceCount"`
	AverageWordLength float64 `json:"averageWordLength"`
	KeywordDensity    float64 `json:"keywordDensity"`
	SemanticScore     float64 `json:"semanticScore"`
	ClarityScore      float64 `json:"clarityScore"`
	DepthScore        float64 `json:"depthScore"`
}
