package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/batch"
	"github.com/spigell/interview-evaluator/internal/evaluation"
	"github.com/spigell/interview-evaluator/internal/server"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate a JSON file of submissions concurrently",
	Long: `Evaluate every submission of a JSON file shaped like {"submissions": [{"id": ..., "answer": ..., "question": {...}}]}.
Outcomes keep the input order and are written as JSON.`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("input", "i", "-", "submissions file ('-' for stdin)")
	batchCmd.Flags().StringP("output", "o", "", "write outcomes to this file instead of stdout")
	batchCmd.Flags().IntP("concurrency", "c", batch.DefaultConcurrency, "evaluations in flight at once")
	batchCmd.Flags().String("server", "", "evaluate through a running API instead of locally")

	viper.BindPFlag("batch.concurrency", batchCmd.Flags().Lookup("concurrency"))
}

func runBatch(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	input, _ := cmd.Flags().GetString("input")
	submissions, err := readSubmissions(input, cmd.InOrStdin())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := apiClient(cmd, config, log)
	if err != nil {
		return err
	}

	var outcomes []batch.Outcome
	if api != nil {
		outcomes, err = api.EvaluateBatch(ctx, submissions)
	} else {
		outcomes, err = batch.Run(ctx, evaluation.New(log), submissions, batch.Options{
			Concurrency: config.Batch.Concurrency,
			Logger:      log,
		})
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Error != "" {
			failed++
		}
	}
	log.Info("batch evaluated", zap.Int("submissions", len(outcomes)), zap.Int("rejected", failed))

	output, _ := cmd.Flags().GetString("output")
	if output = strings.TrimSpace(output); output == "" {
		return writeJSON(cmd.OutOrStdout(), server.BatchResponse{Outcomes: outcomes})
	}

	file, err := os.Create(output)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := writeJSON(file, server.BatchResponse{Outcomes: outcomes}); err != nil {
		return err
	}
	log.Info("outcomes written", zap.String("filename", output))
	return nil
}

func readSubmissions(path string, stdin io.Reader) ([]batch.Submission, error) {
	var reader io.Reader = stdin
	if path = strings.TrimSpace(path); path != "" && path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		reader = file
	}

	var req server.BatchRequest
	if err := json.NewDecoder(reader).Decode(&req); err != nil {
		return nil, fmt.Errorf("decoding submissions: %w", err)
	}
	if len(req.Submissions) == 0 {
		return nil, fmt.Errorf("no submissions in %s", path)
	}
	return req.Submissions, nil
}
