package questions

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"
)

// PracticedQuestions is the history of questions a candidate already answered.
type PracticedQuestions struct {
	Items []*PracticedQuestion
}

type PracticedQuestion struct {
	ID             string
	Role           string
	Classification string
	Score          float64
	PracticedAt    time.Time
}

// GetPracticedFromFile reads the practice history. A missing or empty file is an empty history.
func GetPracticedFromFile(path string) (*PracticedQuestions, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &PracticedQuestions{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &PracticedQuestions{}, nil
	}

	var practiced PracticedQuestions
	if err := json.NewDecoder(file).Decode(&practiced); err != nil {
		return nil, err
	}
	return &practiced, nil
}

func (p *PracticedQuestions) Append(items ...*PracticedQuestion) {
	p.Items = append(p.Items, items...)
}

// QuestionIDs returns the ids of every practiced question, without duplicates.
func (p *PracticedQuestions) QuestionIDs() []string {
	seen := make(map[string]struct{}, len(p.Items))
	ids := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		ids = append(ids, item.ID)
	}
	return ids
}

func (p *PracticedQuestions) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
