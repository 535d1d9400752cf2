package config

import (
	"time"

	"github.com/spf13/pflag"
)

// HistoryConfig holds configuration for the history command.
type HistoryConfig struct {
	Common
	Address string
	Limit   int
	Out     string
	PGDSN   string
}

// LoadHistory merges config sources into HistoryConfig.
func LoadHistory(cfgFile string, flags *pflag.FlagSet) (HistoryConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return HistoryConfig{}, err
	}
	v.SetDefault("limit", 50)

	common, err := loadCommon(v)
	if err != nil {
		return HistoryConfig{}, err
	}

	return HistoryConfig{
		Common:  common,
		Address: v.GetString("address"),
		Limit:   v.GetInt("limit"),
		Out:     v.GetString("out"),
		PGDSN:   v.GetString("pg-dsn"),
	}, nil
}

// AnalyzeConfig holds configuration for the analyze command.
type AnalyzeConfig struct {
	Common
	Address string
}

// LoadAnalyze merges config sources into AnalyzeConfig.
func LoadAnalyze(cfgFile string, flags *pflag.FlagSet) (AnalyzeConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return AnalyzeConfig{}, err
	}

	common, err := loadCommon(v)
	if err != nil {
		return AnalyzeConfig{}, err
	}

	return AnalyzeConfig{
		Common:  common,
		Address: v.GetString("address"),
	}, nil
}

// LeaderboardConfig holds configuration for the leaderboard command.
type LeaderboardConfig struct {
	Common
	Addresses   []string
	Concurrency int
	All         bool
	PGDSN       string
}

// LoadLeaderboard merges config sources into LeaderboardConfig.
func LoadLeaderboard(cfgFile string, flags *pflag.FlagSet) (LeaderboardConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return LeaderboardConfig{}, err
	}
	v.SetDefault("concurrency", 4)

	common, err := loadCommon(v)
	if err != nil {
		return LeaderboardConfig{}, err
	}

	return LeaderboardConfig{
		Common:      common,
		Addresses:   getStringSlice(v, "address"),
		Concurrency: v.GetInt("concurrency"),
		All:         v.GetBool("all"),
		PGDSN:       v.GetString("pg-dsn"),
	}, nil
}

// ServeConfig holds configuration for the serve command.
type ServeConfig struct {
	Common
	Listen        string
	Addresses     []string
	Concurrency   int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

// LoadServe merges config sources into ServeConfig.
func LoadServe(cfgFile string, flags *pflag.FlagSet) (ServeConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return ServeConfig{}, err
	}
	v.SetDefault("listen", ":8080")
	v.SetDefault("concurrency", 4)
	v.SetDefault("cache-ttl", 5*time.Minute)

	common, err := loadCommon(v)
	if err != nil {
		return ServeConfig{}, err
	}

	return ServeConfig{
		Common:        common,
		Listen:        v.GetString("listen"),
		Addresses:     getStringSlice(v, "address"),
		Concurrency:   v.GetInt("concurrency"),
		RedisAddr:     v.GetString("redis-addr"),
		RedisPassword: v.GetString("redis-password"),
		RedisDB:       v.GetInt("redis-db"),
		CacheTTL:      v.GetDuration("cache-ttl"),
	}, nil
}
