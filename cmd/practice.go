package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/evaluation"
	"github.com/spigell/interview-evaluator/internal/filtering"
	"github.com/spigell/interview-evaluator/internal/logger"
	"github.com/spigell/interview-evaluator/internal/metrics"
	"github.com/spigell/interview-evaluator/internal/questions"
)

const (
	PromptAnswer             = "Answer a question"
	PromptReportByDifficulty = "Report by difficulty"
	PromptQuestionsToFile    = "Dump questions to file"
	PromptExit               = "Exit"
	PromptBack               = "back"
)

var errExit = errors.New("exit requested")

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Practice interactively: pick a question, answer it and get feedback",
	Run: func(cmd *cobra.Command, _ []string) {
		practice(cmd)
	},
}

func init() {
	rootCmd.AddCommand(practiceCmd)

	addContextFlags(practiceCmd)
	practiceCmd.Flags().StringP("practiced-file", "p", "", "file recording practiced questions; they are skipped next time. Default is unset.")
	practiceCmd.Flags().Bool("allow-empty-keywords", false, "keep questions without required keywords")
	practiceCmd.Flags().Bool("repeat-practiced", false, "do not skip questions from the practiced file")

	viper.BindPFlag("practiced-file", practiceCmd.Flags().Lookup("practiced-file"))
}

type practiceSession struct {
	engine        *evaluation.Engine
	logger        *zap.Logger
	context       evaluation.Context
	role          string
	bank          *questions.Bank
	practicedFile string
}

// practice is the interactive command loop.
func practice(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the practice session", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	catalog, err := loadCatalog(config)
	if err != nil {
		logger.Fatal("loading the question bank", zap.Error(err))
	}

	c := contextFromFlags(cmd, config.Defaults)
	role, bank, err := chooseRole(catalog, c.Role)
	if err != nil {
		logger.Fatal("choosing a role", zap.Error(err))
	}
	c.Role = role

	steps := prepareFilters(cmd)
	filterCfg := &filtering.Config{
		ExperienceLevel: c.ExperienceLevel,
		PracticedFile:   config.PracticedFile,
	}

	bank, err = filtering.Run(ctx, filterCfg, filtering.Deps{Logger: logger}, steps, bank)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}
	for _, status := range filtering.Describe(steps) {
		logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	if bank.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no questions left after filters"))
		return
	}

	session := &practiceSession{
		engine:        evaluation.New(logger),
		logger:        logger,
		context:       c,
		role:          role,
		bank:          bank,
		practicedFile: strings.TrimSpace(config.PracticedFile),
	}

	prompt := promptui.Select{
		Label: "What next?",
		Items: []string{PromptAnswer, PromptReportByDifficulty, PromptQuestionsToFile, PromptExit},
	}

	for {
		if session.bank.Len() == 0 {
			logger.Info("exiting", zap.String("reason", "every question was answered"))
			return
		}

		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		logger.Info("current list of questions", zap.Int("count", session.bank.Len()))

		if err := session.handleAction(action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func (s *practiceSession) handleAction(action string) error {
	switch action {
	case PromptAnswer:
		return s.answerQuestions()
	case PromptReportByDifficulty:
		pretty, _ := json.MarshalIndent(s.bank.ReportByDifficulty(), "", "  ")
		s.logger.Info(string(pretty), zap.Int("questions count", s.bank.Len()))
		return nil
	case PromptQuestionsToFile:
		filename, err := s.bank.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump questions to file: %w", err)
		}
		s.logger.Info("dumping questions to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func (s *practiceSession) answerQuestions() error {
	for s.bank.Len() > 0 {
		items := make([]string, 0, s.bank.Len()+1)
		for _, q := range s.bank.Items {
			items = append(items, fmt.Sprintf("%s [%s] %s", q.ID, q.Difficulty.OrDefault(), q.Text))
		}

		questionPrompt := promptui.Select{
			Label: "Choose a question and press ENTER",
			Items: append(items, PromptBack),
			Size:  10,
		}

		_, selected, err := questionPrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		questionID := strings.Split(selected, " ")[0]
		question := s.bank.FindByID(questionID)
		if question == nil {
			return fmt.Errorf("there is no such question id %s", questionID)
		}

		fmt.Printf("\n%s\n\n", question.Text)

		answerPrompt := promptui.Prompt{
			Label: "Your answer",
			Validate: func(input string) error {
				if strings.TrimSpace(input) == "" {
					return errors.New("answer is empty")
				}
				return nil
			},
		}

		answer, err := answerPrompt.Run()
		if err != nil {
			return err
		}

		res := s.engine.Evaluate(answer, *question, s.context)
		metrics.ObserveEvaluation(string(res.Classification), res.MatchPercentage)

		fmt.Printf("\n%s\n", res.Feedback)

		if err := s.record(question, res); err != nil {
			return err
		}

		s.bank.Exclude([]string{questionID})
	}
	return nil
}

// record appends the answered question to the practiced file when one is configured.
func (s *practiceSession) record(question *questions.Question, res evaluation.Result) error {
	if s.practicedFile == "" {
		return nil
	}

	practiced, err := questions.GetPracticedFromFile(s.practicedFile)
	if err != nil {
		return err
	}

	practiced.Append(&questions.PracticedQuestion{
		ID:             question.ID,
		Role:           s.role,
		Classification: string(res.Classification),
		Score:          res.MatchPercentage,
		PracticedAt:    time.Now().UTC(),
	})

	if err := practiced.ToFile(s.practicedFile); err != nil {
		return err
	}

	logger.WithFields(s.logger, zap.String(logger.FieldQuestionID, question.ID)).
		Info("appended to practiced file", zap.String("filename", s.practicedFile))
	return nil
}

// chooseRole returns the bank of the given role, asking for one when it is empty.
func chooseRole(catalog questions.Catalog, role string) (string, *questions.Bank, error) {
	if strings.TrimSpace(role) == "" {
		rolePrompt := promptui.Select{
			Label: "Choose a role",
			Items: catalog.Roles(),
		}

		var err error
		if _, role, err = rolePrompt.Run(); err != nil {
			return "", nil, err
		}
	}

	bank, ok := catalog.Lookup(role)
	if !ok {
		return "", nil, fmt.Errorf("no questions found for role: %s", role)
	}
	return role, bank, nil
}

func prepareFilters(cmd *cobra.Command) []filtering.Filter {
	steps := filtering.DefaultSteps()

	if flag := cmd.Flag("allow-empty-keywords"); flag != nil && strings.EqualFold(flag.Value.String(), "true") {
		filtering.DisableByName(steps, "with_keywords", "disabled by --allow-empty-keywords")
	}
	if flag := cmd.Flag("repeat-practiced"); flag != nil && strings.EqualFold(flag.Value.String(), "true") {
		filtering.DisableByName(steps, "practiced", "disabled by --repeat-practiced")
	}

	return steps
}
