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
	"github.com/0xali3n/gmgn/internal/chain"
	"github.com/0xali3n/gmgn/internal/config"
	"github.com/0xali3n/gmgn/internal/storage"
	"github.com/0xali3n/gmgn/internal/storage/postgres"
)

func runHistory(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadHistory(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Address == "" {
		return fmt.Errorf("address is required")
	}
	address, err := chain.ParseAddress(cfg.Address)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := newService(cfg.Common, analyzer.Options{}, logger)

	logger.Info("history start",
		zap.String("rpc", cfg.RPCURL),
		zap.String("address", address),
		zap.Int("limit", cfg.Limit),
	)

	swaps, err := svc.BuildSwapHistory(ctx, address, cfg.Limit)
	if err != nil {
		return err
	}

	sinks := make([]storage.Storage, 0, 2)
	if cfg.Out != "" {
		sinks = append(sinks, storage.NewJsonlStorage(cfg.Out))
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
		sinks = append(sinks, store)
	}
	for _, sink := range sinks {
		if err := sink.PutSwapBatch(ctx, address, swaps); err != nil {
			return fmt.Errorf("store swaps: %w", err)
		}
	}

	logger.Info("history complete", zap.Int("swaps", len(swaps)), zap.Int("sinks", len(sinks)))
	return printJSON(swaps)
}
