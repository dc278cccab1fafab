package questions

import (
	"encoding/json"
	"os"
	"slices"
	"sort"
	"strings"
)

// Bank is an ordered list of questions for a single role.
type Bank struct {
	Items []*Question
}

// NewBank wraps the provided questions into a bank.
func NewBank(items ...*Question) *Bank {
	return &Bank{Items: items}
}

func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Items)
}

// Clone returns a shallow copy so filters can drop items without touching the source bank.
func (b *Bank) Clone() *Bank {
	if b == nil {
		return &Bank{}
	}
	return &Bank{Items: slices.Clone(b.Items)}
}

// Questions returns the questions by value, suitable for JSON responses.
func (b *Bank) Questions() []Question {
	out := make([]Question, 0, b.Len())
	if b == nil {
		return out
	}
	for _, q := range b.Items {
		out = append(out, *q)
	}
	return out
}

func (b *Bank) FindByID(id string) *Question {
	if b == nil {
		return nil
	}
	for _, q := range b.Items {
		if q.ID == id {
			return q
		}
	}
	return nil
}

// Exclude removes questions with the given ids, keeping the remaining order intact.
// It returns the ids that were actually removed.
func (b *Bank) Exclude(ids []string) []string {
	if b == nil || len(ids) == 0 {
		return nil
	}

	var excluded []string
	kept := b.Items[:0:0]
	for _, q := range b.Items {
		if slices.Contains(ids, q.ID) {
			excluded = append(excluded, q.ID)
			continue
		}
		kept = append(kept, q)
	}
	b.Items = kept

	return excluded
}

// Retain keeps only the questions for which keep returns true and returns the dropped ids.
func (b *Bank) Retain(keep func(*Question) bool) []string {
	if b == nil {
		return nil
	}

	var dropped []string
	kept := b.Items[:0:0]
	for _, q := range b.Items {
		if keep(q) {
			kept = append(kept, q)
			continue
		}
		dropped = append(dropped, q.ID)
	}
	b.Items = kept

	return dropped
}

// ReportByDifficulty groups question texts by difficulty.
func (b *Bank) ReportByDifficulty() map[string][]string {
	report := make(map[string][]string)
	if b == nil {
		return report
	}
	for _, q := range b.Items {
		key := string(q.Difficulty.OrDefault())
		report[key] = append(report[key], q.Text)
	}
	return report
}

// DumpToTmpFile writes the bank as indented JSON into a temporary file and returns its name.
func (b *Bank) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "questions_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b.Questions()); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Catalog maps a role label to its question bank.
type Catalog map[string]*Bank

// Roles returns the role labels in sorted order.
func (c Catalog) Roles() []string {
	roles := make([]string, 0, len(c))
	for role := range c {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// Lookup finds a bank by exact role label, falling back to a case-insensitive match.
func (c Catalog) Lookup(role string) (*Bank, bool) {
	if bank, ok := c[role]; ok {
		return bank, true
	}

	role = strings.TrimSpace(role)
	for name, bank := range c {
		if strings.EqualFold(name, role) {
			return bank, true
		}
	}
	return nil, false
}

// FindQuestion searches every bank for a question id and returns it with its role.
func (c Catalog) FindQuestion(id string) (*Question, string) {
	for _, role := range c.Roles() {
		if q := c[role].FindByID(id); q != nil {
			return q, role
		}
	}
	return nil, ""
}
