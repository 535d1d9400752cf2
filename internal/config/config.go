package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "GMGN"
	defaultRPCURL  = "https://fullnode.mainnet.aptoslabs.com"
	fallbackRPCEnv = "APTOS_RPC"
)

// Common holds settings shared by every command.
type Common struct {
	RPCURL           string
	Timeout          time.Duration
	RateLimit        float64
	MaxRetries       int
	RetryBackoff     time.Duration
	Location         *time.Location
	ChronologicalPnL bool
	LogLevel         string
}

// Load merges .env, config file, environment variables, and flags into the
// shared settings.
func Load(cfgFile string, flags *pflag.FlagSet) (Common, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return Common{}, err
	}
	return loadCommon(v)
}

func newViper(cfgFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("rate-limit", 0.0)
	v.SetDefault("max-retries", 0)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("timezone", "Local")
	v.SetDefault("chronological-pnl", false)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

func loadCommon(v *viper.Viper) (Common, error) {
	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return Common{}, fmt.Errorf("load timezone: %w", err)
	}

	rpcURL := v.GetString("rpc")
	if rpcURL == "" {
		rpcURL = os.Getenv(fallbackRPCEnv)
	}
	if rpcURL == "" {
		rpcURL = defaultRPCURL
	}

	return Common{
		RPCURL:           rpcURL,
		Timeout:          v.GetDuration("timeout"),
		RateLimit:        v.GetFloat64("rate-limit"),
		MaxRetries:       v.GetInt("max-retries"),
		RetryBackoff:     v.GetDuration("retry-backoff"),
		Location:         loc,
		ChronologicalPnL: v.GetBool("chronological-pnl"),
		LogLevel:         v.GetString("log-level"),
	}, nil
}

// loadDotEnv reads ./.env when present. Existing environment variables win.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
