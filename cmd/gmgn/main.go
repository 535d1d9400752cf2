package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/0xali3n/gmgn/internal/analytics"
	"github.com/0xali3n/gmgn/internal/analyzer"
	"github.com/0xali3n/gmgn/internal/chain"
	"github.com/0xali3n/gmgn/internal/config"
	"github.com/0xali3n/gmgn/internal/leaderboard"
	"github.com/0xali3n/gmgn/internal/swap"
	"github.com/0xali3n/gmgn/internal/token"
)

func main() {
	root := &cobra.Command{
		Use:          "gmgn",
		Short:        "Aptos wallet swap history and trader analytics",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Print the swap history of a wallet",
		RunE:  runHistory,
	}
	addCommonFlags(historyCmd.Flags())
	historyCmd.Flags().String("address", "", "wallet address")
	historyCmd.Flags().Int("limit", 50, "number of transactions to fetch")
	historyCmd.Flags().String("out", "", "optional JSONL output path")
	historyCmd.Flags().String("pg-dsn", "", "optional Postgres DSN to persist swaps")
	root.AddCommand(historyCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print stats and per-token analysis of a wallet",
		RunE:  runAnalyze,
	}
	addCommonFlags(analyzeCmd.Flags())
	analyzeCmd.Flags().String("address", "", "wallet address")
	root.AddCommand(analyzeCmd)

	leaderboardCmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Rank wallets by estimated PnL",
		RunE:  runLeaderboard,
	}
	addCommonFlags(leaderboardCmd.Flags())
	leaderboardCmd.Flags().StringSlice("address", nil, "wallet addresses (comma-separated)")
	leaderboardCmd.Flags().Int("concurrency", leaderboard.DefaultConcurrency, "maximum concurrent fetches")
	leaderboardCmd.Flags().Bool("all", false, "include entries without trades or with undefined PnL")
	leaderboardCmd.Flags().String("pg-dsn", "", "optional Postgres DSN to store a snapshot")
	root.AddCommand(leaderboardCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analytics HTTP API",
		RunE:  runServe,
	}
	addCommonFlags(serveCmd.Flags())
	serveCmd.Flags().String("listen", ":8080", "listen address")
	serveCmd.Flags().StringSlice("address", nil, "tracked wallet addresses for the leaderboard (comma-separated)")
	serveCmd.Flags().Int("concurrency", leaderboard.DefaultConcurrency, "maximum concurrent fetches")
	serveCmd.Flags().String("redis-addr", "", "optional Redis address for the analysis cache")
	serveCmd.Flags().String("redis-password", "", "Redis password")
	serveCmd.Flags().Int("redis-db", 0, "Redis database")
	serveCmd.Flags().Duration("cache-ttl", 5*time.Minute, "analysis cache TTL")
	root.AddCommand(serveCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addCommonFlags(flags *pflag.FlagSet) {
	flags.String("rpc", "", "Aptos node REST URL")
	flags.Duration("timeout", 30*time.Second, "HTTP request timeout")
	flags.Float64("rate-limit", 0, "maximum node requests per second, 0 disables")
	flags.Int("max-retries", 0, "retry attempts for server and network errors")
	flags.Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	flags.String("timezone", "Local", "time zone used to render timestamps")
	flags.Bool("chronological-pnl", false, "replay history oldest first when computing PnL")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
}

func newService(cfg config.Common, opts analyzer.Options, logger *zap.Logger) *analyzer.Service {
	client := chain.NewClient(chain.ClientConfig{
		BaseURL:      cfg.RPCURL,
		Timeout:      cfg.Timeout,
		RateLimit:    cfg.RateLimit,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, logger)

	resolver := token.NewResolver(token.DefaultRegistry())
	pipeline := swap.NewPipeline(swap.NewExtractor(resolver, logger), swap.WithLocation(cfg.Location))
	agg := analytics.NewAggregator(analytics.Options{ChronologicalPnL: cfg.ChronologicalPnL})

	return analyzer.New(client, pipeline, agg, opts, logger)
}

func printJSON(value interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
