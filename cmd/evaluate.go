package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/client"
	"github.com/spigell/interview-evaluator/internal/evaluation"
	"github.com/spigell/interview-evaluator/internal/logger"
	"github.com/spigell/interview-evaluator/internal/questions"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a single answer and print the result",
	Long: `Evaluate a single answer. The answer is taken from --answer, --answer-file or stdin.
The question is either a bank question (--question-id) or an ad-hoc one (--question and --keywords).`,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringP("answer", "a", "", "the answer text")
	evaluateCmd.Flags().String("answer-file", "", "read the answer from a file ('-' for stdin)")
	evaluateCmd.Flags().StringP("question-id", "q", "", "id of a question from the bank")
	evaluateCmd.Flags().String("question", "", "text of an ad-hoc question")
	evaluateCmd.Flags().StringSlice("keywords", nil, "required keywords of an ad-hoc question")
	evaluateCmd.Flags().String("difficulty", "", "difficulty of an ad-hoc question (Easy, Medium, Hard)")
	addContextFlags(evaluateCmd)
	evaluateCmd.Flags().Bool("text", false, "print the feedback text instead of JSON")
	evaluateCmd.Flags().String("server", "", "evaluate through a running API instead of locally")
}

// addContextFlags registers the candidate context flags shared by several commands.
func addContextFlags(cmd *cobra.Command) {
	cmd.Flags().String("role", "", "target role, e.g. \"Backend Developer\"")
	cmd.Flags().String("company", "", "target company")
	cmd.Flags().String("experience-level", "", "experience level: Intern, Junior, Mid or Senior")
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	catalog, err := loadCatalog(config)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	answerText, _ := flags.GetString("answer")
	answerFile, _ := flags.GetString("answer-file")
	answer, err := readAnswer(answerText, answerFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	questionID, _ := flags.GetString("question-id")
	questionText, _ := flags.GetString("question")
	keywords, _ := flags.GetStringSlice("keywords")
	difficulty, _ := flags.GetString("difficulty")
	question, questionRole, err := resolveQuestion(catalog, questionID, questionText, keywords, difficulty)
	if err != nil {
		return err
	}

	c := contextFromFlags(cmd, config.Defaults)
	if c.Role == "" {
		c.Role = questionRole
	}

	req := &evaluation.Request{
		Answer:          answer,
		Question:        question,
		Role:            c.Role,
		Company:         c.Company,
		ExperienceLevel: c.ExperienceLevel,
	}

	api, err := apiClient(cmd, config, log)
	if err != nil {
		return err
	}

	var res evaluation.Result
	if api != nil {
		logger.WithCandidateFields(log, c.Role, c.ExperienceLevel).
			Debug("evaluating through the api", zap.String("url", api.BaseURL))
		remote, err := api.Evaluate(context.Background(), req)
		if err != nil {
			return err
		}
		res = *remote
	} else {
		res, err = evaluation.New(log).EvaluateRequest(req)
		if err != nil {
			return err
		}
	}

	if asText, _ := flags.GetBool("text"); asText {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Feedback)
		return err
	}

	return writeJSON(cmd.OutOrStdout(), res)
}

// readAnswer picks the answer from the inline text, a file, or stdin, in that order.
func readAnswer(text, file string, stdin io.Reader) (string, error) {
	if answer := strings.TrimSpace(text); answer != "" {
		return answer, nil
	}

	var (
		data []byte
		err  error
	)
	switch file = strings.TrimSpace(file); file {
	case "", "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("reading the answer: %w", err)
	}

	answer := strings.TrimSpace(string(data))
	if answer == "" {
		return "", errors.New("answer is empty: pass --answer, --answer-file or pipe it to stdin")
	}
	return answer, nil
}

// resolveQuestion returns a bank question when id is set, otherwise an ad-hoc question built from
// text and keywords. The second value is the role the bank question belongs to.
func resolveQuestion(catalog questions.Catalog, id, text string, keywords []string, difficulty string) (*questions.Question, string, error) {
	if id = strings.TrimSpace(id); id != "" {
		q, role := catalog.FindQuestion(id)
		if q == nil {
			return nil, "", fmt.Errorf("there is no such question id %s", id)
		}
		return q, role, nil
	}

	if strings.TrimSpace(text) == "" && len(keywords) == 0 {
		return nil, "", errors.New("a question is required: pass --question-id or --question with --keywords")
	}

	d, err := questions.ParseDifficulty(difficulty)
	if err != nil {
		return nil, "", err
	}

	cleaned := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			cleaned = append(cleaned, k)
		}
	}

	return &questions.Question{
		Text:             strings.TrimSpace(text),
		Difficulty:       d,
		RequiredKeywords: cleaned,
	}, "", nil
}

// contextFromFlags overlays the candidate context flags on the configured defaults.
func contextFromFlags(cmd *cobra.Command, defaults evaluation.Context) evaluation.Context {
	c := defaults
	if v, _ := cmd.Flags().GetString("role"); v != "" {
		c.Role = v
	}
	if v, _ := cmd.Flags().GetString("company"); v != "" {
		c.Company = v
	}
	if v, _ := cmd.Flags().GetString("experience-level"); v != "" {
		c.ExperienceLevel = v
	}
	return c
}

// apiClient returns a client when an API url is set by --server or client.url, and nil otherwise.
func apiClient(cmd *cobra.Command, config *Config, log *zap.Logger) (*client.Client, error) {
	cfg := config.Client
	if flag := cmd.Flags().Lookup("server"); flag != nil && flag.Value.String() != "" {
		cfg.URL = flag.Value.String()
	}
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, nil
	}

	return client.New(cfg, log)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
