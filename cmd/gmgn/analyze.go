package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/0xali3n/gmgn/internal/analyzer"
	"github.com/0xali3n/gmgn/internal/chain"
	"github.com/0xali3n/gmgn/internal/config"
)

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadAnalyze(cfgFile, cmd.Flags())
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

	analysis, err := newService(cfg.Common, analyzer.Options{}, logger).AnalyzeTrader(ctx, address)
	if err != nil {
		return err
	}
	return printJSON(analysis)
}
