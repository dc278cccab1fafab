package questions

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/bank.schema.json
var bankSchema string

// ErrInvalidBank is returned when a question bank document does not match the bank schema.
var ErrInvalidBank = errors.New("invalid question bank")

// FieldError describes a single schema violation in a bank document.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every schema violation found in a bank document.
type ValidationError struct {
	Path   string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", ErrInvalidBank, e.Path)
	for i, fe := range e.Errors {
		fmt.Fprintf(&sb, "\n  %d. %s: %s", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidBank
}

// bankDocument is the on-disk layout. Keys are lower-case so any format viper reads decodes the same way.
type bankDocument struct {
	Banks []struct {
		Role      string `mapstructure:"role"`
		Questions []struct {
			ID         string   `mapstructure:"id"`
			Text       string   `mapstructure:"text"`
			Difficulty string   `mapstructure:"difficulty"`
			Keywords   []string `mapstructure:"keywords"`
		} `mapstructure:"questions"`
	} `mapstructure:"banks"`
}

// LoadFile reads a question catalog from a yaml, json or toml file.
// Questions without an id get one derived from their role and position,
// questions without a difficulty default to Medium.
func LoadFile(path string) (Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading question bank %q: %w", path, err)
	}

	return decode(path, v.AllSettings())
}

func decode(path string, raw map[string]any) (Catalog, error) {
	if err := validateDocument(path, raw); err != nil {
		return nil, err
	}

	var doc bankDocument
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding question bank %q: %w", path, err)
	}

	catalog := make(Catalog, len(doc.Banks))
	for _, b := range doc.Banks {
		role := strings.TrimSpace(b.Role)
		bank, ok := catalog[role]
		if !ok {
			bank = &Bank{}
			catalog[role] = bank
		}

		for _, item := range b.Questions {
			difficulty, err := ParseDifficulty(item.Difficulty)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: role %q: %v", ErrInvalidBank, path, role, err)
			}

			id := strings.TrimSpace(item.ID)
			if id == "" {
				id = QuestionID(role, bank.Len())
			}

			keywords := item.Keywords
			if keywords == nil {
				keywords = []string{}
			}

			bank.Items = append(bank.Items, &Question{
				ID:               id,
				Text:             strings.TrimSpace(item.Text),
				Difficulty:       difficulty,
				RequiredKeywords: keywords,
			})
		}
	}

	return catalog, nil
}

func validateDocument(path string, raw map[string]any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(bankSchema),
		gojsonschema.NewGoLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("validating question bank %q: %w", path, err)
	}

	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Path: path}
	for _, e := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   e.Field(),
			Message: e.Description(),
		})
	}
	return verr
}
