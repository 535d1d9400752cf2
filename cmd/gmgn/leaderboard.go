package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/0xali3n/gmgn/internal/analyzer"
	"github.com/0xali3n/gmgn/internal/chain"
	"github.com/0xali3n/gmgn/internal/config"
	"github.com/0xali3n/gmgn/internal/leaderboard"
	"github.com/0xali3n/gmgn/internal/storage/postgres"
)

func runLeaderboard(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadLeaderboard(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	addresses, err := chain.ParseAddresses(cfg.Addresses)
	if err != nil {
		return err
	}
	if len(addresses) == 0 {
		return fmt.Errorf("address list is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := newService(cfg.Common, analyzer.Options{
		Leaderboard: leaderboard.Config{Concurrency: cfg.Concurrency, Limit: analyzer.DefaultAnalysisLimit},
	}, logger)

	logger.Info("leaderboard start",
		zap.String("rpc", cfg.RPCURL),
		zap.Int("addresses", len(addresses)),
		zap.Int("concurrency", cfg.Concurrency),
	)

	stats, err := svc.RankTraders(ctx, addresses)
	if err != nil {
		return err
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		runID, err := store.SaveLeaderboard(ctx, stats, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("save leaderboard: %w", err)
		}
		logger.Info("leaderboard snapshot stored", zap.String("run_id", runID.String()))
	}

	if !cfg.All {
		stats = leaderboard.FilterValid(stats)
	}
	return printJSON(stats)
}
