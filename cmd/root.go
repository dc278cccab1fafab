package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/cache"
	"github.com/spigell/interview-evaluator/internal/client"
	"github.com/spigell/interview-evaluator/internal/evaluation"
	"github.com/spigell/interview-evaluator/internal/logger"
	"github.com/spigell/interview-evaluator/internal/questions"
	"github.com/spigell/interview-evaluator/internal/server"
)

const (
	app       = "interview-evaluator"
	envPrefix = "INTERVIEW_EVALUATOR"
)

type Config struct {
	QuestionsFile string             `mapstructure:"questions-file"`
	PracticedFile string             `mapstructure:"practiced-file"`
	Defaults      evaluation.Context `mapstructure:"defaults"`
	Server        server.Config      `mapstructure:"server"`
	Cache         cache.Config       `mapstructure:"cache"`
	Batch         BatchConfig        `mapstructure:"batch"`
	Client        client.Config      `mapstructure:"client"`
}

type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "interview-evaluator scores free-text interview answers against the concepts a good answer covers",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is interview-evaluator.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("server.address", server.DefaultAddress)
	viper.SetDefault("cache.address", "localhost:6379")
	viper.SetDefault("cache.ttl", cache.DefaultTTL)
	viper.SetDefault("client.timeout", client.DefaultTimeout)
	viper.SetDefault("client.max-retries", client.DefaultMaxRetries)
}

func initConfig() {
	// A .env file is optional; its values only reach viper through the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The config file is optional unless it was given explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func newLogger() (*zap.Logger, error) {
	return logger.New(logger.Options{
		JSON:  viper.GetBool("json"),
		Debug: viper.GetBool("debug"),
	})
}

// loadCatalog returns the configured question bank, or the built-in one when no file is set.
func loadCatalog(config *Config) (questions.Catalog, error) {
	path := strings.TrimSpace(config.QuestionsFile)
	if path == "" {
		return questions.Builtin(), nil
	}

	return questions.LoadFile(path)
}
