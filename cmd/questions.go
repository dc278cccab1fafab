package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/logger"
	"github.com/spigell/interview-evaluator/internal/questions"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List roles, or the questions of a role",
	RunE:  runQuestions,
}

func init() {
	rootCmd.AddCommand(questionsCmd)

	questionsCmd.Flags().String("role", "", "list the questions of this role")
	questionsCmd.Flags().String("experience-level", "", "only questions suited to this experience level")
	questionsCmd.Flags().Bool("by-difficulty", false, "group question texts by difficulty")
	questionsCmd.Flags().String("server", "", "query a running API instead of the local bank")
}

func runQuestions(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	role, _ := cmd.Flags().GetString("role")
	level, _ := cmd.Flags().GetString("experience-level")
	role = strings.TrimSpace(role)

	api, err := apiClient(cmd, config, log)
	if err != nil {
		return err
	}

	var (
		roles []string
		bank  *questions.Bank
	)
	switch {
	case api != nil && role == "":
		roles, err = api.Roles(context.Background())
	case api != nil:
		var list []questions.Question
		list, err = api.Questions(context.Background(), role, level)
		bank = questions.NewBank()
		for i := range list {
			bank.Items = append(bank.Items, &list[i])
		}
	default:
		roles, bank, err = localQuestions(config, role, level, log)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if bank == nil {
		for _, r := range roles {
			fmt.Fprintln(out, r)
		}
		return nil
	}

	if grouped, _ := cmd.Flags().GetBool("by-difficulty"); grouped {
		return writeJSON(out, bank.ReportByDifficulty())
	}
	return writeJSON(out, bank.Questions())
}

// localQuestions lists the roles of the configured bank when role is empty, otherwise the
// questions of role allowed for level. An empty level match falls back to the whole bank.
func localQuestions(config *Config, role, level string, log *zap.Logger) ([]string, *questions.Bank, error) {
	catalog, err := loadCatalog(config)
	if err != nil {
		return nil, nil, err
	}

	if role == "" {
		return catalog.Roles(), nil, nil
	}

	bank, ok := catalog.Lookup(role)
	if !ok {
		return nil, nil, fmt.Errorf("no questions found for role: %s", role)
	}

	filtered, fellBack := questions.FilterByLevelWithFallback(bank, level)
	if fellBack {
		logger.WithCandidateFields(log, role, level).
			Warn("no questions match the experience level; listing the full bank")
	}
	return nil, filtered, nil
}
