package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/cache"
	"github.com/spigell/interview-evaluator/internal/evaluation"
	"github.com/spigell/interview-evaluator/internal/secrets"
	"github.com/spigell/interview-evaluator/internal/server"
)

const cachePasswordEnv = "INTERVIEW_EVALUATOR_CACHE_PASSWORD"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evaluation HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("address", server.DefaultAddress, "listen address")
	serveCmd.Flags().Bool("cache", false, "cache evaluation results in redis")

	viper.BindPFlag("server.address", serveCmd.Flags().Lookup("address"))
	viper.BindPFlag("cache.enabled", serveCmd.Flags().Lookup("cache"))
}

func serve() {
	logger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the interview-evaluator api", zap.String("version", version))

	catalog, err := loadCatalog(config)
	if err != nil {
		logger.Fatal("loading the question bank", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(config.Server, server.Deps{
		Engine:           evaluation.New(logger),
		Catalog:          catalog,
		Cache:            newCache(ctx, config.Cache, logger),
		Logger:           logger,
		BatchConcurrency: config.Batch.Concurrency,
	})

	if err := srv.Start(ctx); err != nil {
		logger.Fatal("serving the api", zap.Error(err))
	}
}

// newCache connects the redis result cache. The api works without a cache, so an unreachable
// server only disables caching.
func newCache(ctx context.Context, cfg cache.Config, logger *zap.Logger) cache.Cache {
	if !cfg.Enabled {
		return cache.Nop{}
	}

	password, err := secrets.LoadOptional(secrets.Source{
		Name:  "cache password",
		Value: cfg.Password,
		File:  cfg.PasswordFile,
		Env:   cachePasswordEnv,
	})
	if err != nil {
		logger.Fatal("loading the cache password",
			zap.Error(err),
			zap.String("hint", "set "+cachePasswordEnv+" or the 'cache.password-file' key in the configuration file"),
		)
	}

	rdb := cache.NewRedis(cfg, password)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx); err != nil {
		logger.Warn("redis is unavailable; serving without a result cache",
			zap.String("address", cfg.Address),
			zap.Error(err),
		)
		_ = rdb.Close()
		return cache.Nop{}
	}

	logger.Info("result cache enabled", zap.String("address", cfg.Address), zap.Duration("ttl", cfg.TTL))
	return rdb
}
