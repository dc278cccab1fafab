package evaluation

import (
	"math"
	"strings"
)

const (
	keywordWeight  = 0.45
	semanticWeight = 0.25
	clarityWeight  = 0.15
	depthWeight    = 0.15

	// sentencesForFullDepth is the sentence count that earns a depth of 1 at a neutral level.
	sentencesForFullDepth = 5
	maxDepthScore         = 1.2
	maxPercentage         = 100
)

// Inclusive lower bounds of each classification band.
const (
	outstandingThreshold = 85
	strongThreshold      = 70
	moderateThreshold    = 55
)

// Components are the normalised inputs of the composite score.
type Components struct {
	KeywordMatchRatio float64
	Semantic          float64
	Clarity           float64
	Depth             float64
}

// ExperienceWeight scales the expected elaboration by seniority. Unknown levels are neutral.
func ExperienceWeight(level string) float64 {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "intern":
		return 0.8
	case "junior":
		return 0.9
	case "mid":
		return 1.0
	case "senior":
		return 1.2
	default:
		return 1.0
	}
}

// RoleWeight is the multiplicative correction applied for the candidate role.
func RoleWeight(role string) float64 {
	role = strings.ToLower(role)
	switch {
	case strings.Contains(role, "frontend"):
		return 1.1
	case strings.Contains(role, "backend"):
		return 1.15
	case strings.Contains(role, "ml"):
		return 1.25
	default:
		return 1.0
	}
}

func DepthScore(sentenceCount int, level string) float64 {
	return math.Min(float64(sentenceCount)/sentencesForFullDepth*ExperienceWeight(level), maxDepthScore)
}

// ClarityScore is the lexical diversity of the answer.
func ClarityScore(uniqueWords, wordCount int) float64 {
	if wordCount <= 0 {
		return 0
	}
	return math.Min(float64(uniqueWords)/float64(wordCount), 1.0)
}

// MatchPercentage combines the components into a score within [0, 100].
func MatchPercentage(c Components, roleWeight float64) float64 {
	composite := keywordWeight*c.KeywordMatchRatio +
		semanticWeight*c.Semantic +
		clarityWeight*c.Clarity +
		depthWeight*c.Depth

	return math.Max(0, math.Min(maxPercentage*composite*roleWeight, maxPercentage))
}

func Classify(percentage float64) Classification {
	switch {
	case percentage >= outstandingThreshold:
		return Outstanding
	case percentage >= strongThreshold:
		return Strong
	case percentage >= moderateThreshold:
		return Moderate
	default:
		return NeedsImprovement
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
