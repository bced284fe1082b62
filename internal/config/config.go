package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// MintConfig holds configuration for the mint command, loaded from flags,
// env (MINTER_ prefix), or config file.
type MintConfig struct {
	Network      string
	RPCURL       string
	PrivateKey   string
	AmountWETH   string
	AmountUSDC   string
	TickLower    int32
	TickUpper    int32
	FeeTier      uint32
	Slippage     float64
	Deadline     time.Duration
	GasLimit     uint64
	MaxRetries   int
	RetryBackoff time.Duration
	Journal      string
	PGDSN        string
	DryRun       bool
	LogLevel     string
}

// LoadMint merges config file, environment variables, and flags into MintConfig.
func LoadMint(cfgFile string, flags *pflag.FlagSet) (MintConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"network":       "ethereum-mainnet",
		"fee-tier":      uint32(3000),
		"slippage":      0.005,
		"deadline":      30 * time.Minute,
		"gas-limit":     uint64(3000000),
		"max-retries":   5,
		"retry-backoff": 500 * time.Millisecond,
		"journal":       "./data/positions.jsonl",
		"log-level":     "info",
	})
	if err != nil {
		return MintConfig{}, err
	}

	cfg := MintConfig{
		Network:      v.GetString("network"),
		RPCURL:       v.GetString("rpc"),
		PrivateKey:   v.GetString("private-key"),
		AmountWETH:   v.GetString("amount-weth"),
		AmountUSDC:   v.GetString("amount-usdc"),
		TickLower:    v.GetInt32("tick-lower"),
		TickUpper:    v.GetInt32("tick-upper"),
		FeeTier:      v.GetUint32("fee-tier"),
		Slippage:     v.GetFloat64("slippage"),
		Deadline:     v.GetDuration("deadline"),
		GasLimit:     v.GetUint64("gas-limit"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		Journal:      v.GetString("journal"),
		PGDSN:        v.GetString("pg-dsn"),
		DryRun:       v.GetBool("dry-run"),
		LogLevel:     v.GetString("log-level"),
	}

	return cfg, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]interface{}) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("MINTER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

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
