package questions

import (
	"fmt"
	"strings"
)

// Difficulty is the difficulty tag of an interview question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"

	// DefaultDifficulty is applied when a question does not declare one.
	DefaultDifficulty = DifficultyMedium
)

// ParseDifficulty resolves a case-insensitive difficulty label.
// An empty label resolves to DefaultDifficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultDifficulty, nil
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
}

// OrDefault returns the difficulty itself or DefaultDifficulty when unset.
func (d Difficulty) OrDefault() Difficulty {
	if d == "" {
		return DefaultDifficulty
	}
	return d
}

// Key is the lower-cased form used by the difficulty gate.
func (d Difficulty) Key() string {
	return strings.ToLower(string(d.OrDefault()))
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.OrDefault()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Question is a single interview question together with the concepts a good answer covers.
type Question struct {
	ID               string     `json:"id,omitempty" mapstructure:"id"`
	Text             string     `json:"text" mapstructure:"text"`
	Difficulty       Difficulty `json:"difficulty" mapstructure:"difficulty"`
	RequiredKeywords []string   `json:"requiredKeywords" validate:"required" mapstructure:"requiredKeywords"`
}

// Keywords returns the required keywords lower-cased, in their declared order.
func (q Question) Keywords() []string {
	keywords := make([]string, 0, len(q.RequiredKeywords))
	for _, k := range q.RequiredKeywords {
		keywords = append(keywords, strings.ToLower(k))
	}
	return keywords
}
