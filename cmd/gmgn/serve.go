package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/0xali3n/gmgn/internal/analyzer"
	"github.com/0xali3n/gmgn/internal/api"
	"github.com/0xali3n/gmgn/internal/chain"
	"github.com/0xali3n/gmgn/internal/config"
	"github.com/0xali3n/gmgn/internal/leaderboard"
	"github.com/0xali3n/gmgn/internal/storage/cache"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadServe(cfgFile, cmd.Flags())
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := analyzer.Options{
		Leaderboard: leaderboard.Config{Concurrency: cfg.Concurrency, Limit: analyzer.DefaultAnalysisLimit},
		CacheTTL:    cfg.CacheTTL,
	}
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		opts.Cache = redisCache
	}

	svc := newService(cfg.Common, opts, logger)

	logger.Info("serve start",
		zap.String("rpc", cfg.RPCURL),
		zap.String("listen", cfg.Listen),
		zap.Int("addresses", len(addresses)),
		zap.Bool("cache", opts.Cache != nil),
	)

	return api.NewServer(svc, addresses, logger).Run(ctx, cfg.Listen)
}
