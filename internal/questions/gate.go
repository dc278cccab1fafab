package questions

import (
	"slices"
	"strings"
)

// AllowedDifficulties maps an experience level to the difficulties a candidate should be asked.
// A nil result means the level is unknown and no filtering applies.
func AllowedDifficulties(level string) []Difficulty {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "intern":
		return []Difficulty{DifficultyEasy}
	case "junior":
		return []Difficulty{DifficultyEasy, DifficultyMedium}
	case "mid":
		return []Difficulty{DifficultyMedium}
	case "senior":
		return []Difficulty{DifficultyMedium, DifficultyHard}
	default:
		return nil
	}
}

// NoFilter reports whether the level leaves the question bank unfiltered.
func NoFilter(level string) bool {
	return AllowedDifficulties(level) == nil
}

// FilterByLevel returns the questions allowed for the experience level.
// It fails open: when nothing survives the filter, the full bank is returned.
func FilterByLevel(bank *Bank, level string) *Bank {
	filtered, _ := FilterByLevelWithFallback(bank, level)
	return filtered
}

// FilterByLevelWithFallback is FilterByLevel that also reports whether the unfiltered bank was returned
// because the filter left nothing.
func FilterByLevelWithFallback(bank *Bank, level string) (*Bank, bool) {
	allowed := AllowedDifficulties(level)
	if allowed == nil {
		return bank.Clone(), false
	}

	filtered := bank.Clone()
	filtered.Retain(func(q *Question) bool {
		return slices.Contains(allowed, q.Difficulty.OrDefault())
	})

	if filtered.Len() == 0 {
		return bank.Clone(), true
	}
	return filtered, false
}
