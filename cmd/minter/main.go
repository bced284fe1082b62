package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "minter",
		Short:        "Uniswap V3 WETH/USDC liquidity tool",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	mintCmd := &cobra.Command{
		Use:   "mint",
		Short: "Open a WETH/USDC liquidity position",
		RunE:  runMint,
	}

	mintCmd.Flags().String("network", "ethereum-mainnet", "network identifier")
	mintCmd.Flags().String("rpc", "", "Ethereum RPC URL")
	mintCmd.Flags().String("private-key", "", "hex private key (or MINTER_PRIVATE_KEY)")
	mintCmd.Flags().String("amount-weth", "", "WETH amount, human-readable (e.g. 0.5)")
	mintCmd.Flags().String("amount-usdc", "", "USDC amount, human-readable (e.g. 1000)")
	mintCmd.Flags().Int32("tick-lower", 0, "lower tick boundary (e.g. -60000)")
	mintCmd.Flags().Int32("tick-upper", 0, "upper tick boundary (e.g. 60000)")
	mintCmd.Flags().Uint32("fee-tier", 3000, "fee tier (500, 3000, or 10000)")
	mintCmd.Flags().Float64("slippage", 0.005, "max slippage as a fraction (e.g. 0.005)")
	mintCmd.Flags().Duration("deadline", 30*time.Minute, "transaction deadline window")
	mintCmd.Flags().Uint64("gas-limit", 3000000, "gas limit cap for the mint")
	mintCmd.Flags().Int("max-retries", 5, "maximum retry attempts for reads")
	mintCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	mintCmd.Flags().String("journal", "./data/positions.jsonl", "position journal JSONL path")
	mintCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for position records")
	mintCmd.Flags().Bool("dry-run", false, "build and validate params without submitting")
	mintCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(mintCmd)

	priceCmd := &cobra.Command{
		Use:   "price",
		Short: "Show the current WETH/USDC pool price",
		RunE:  runPrice,
	}

	priceCmd.Flags().String("network", "ethereum-mainnet", "network identifier")
	priceCmd.Flags().String("rpc", "", "Ethereum RPC URL")
	priceCmd.Flags().Uint32("fee-tier", 3000, "fee tier (500, 3000, or 10000)")
	priceCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(priceCmd)

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Read a position back by NFT token id",
		RunE:  runInspect,
	}

	inspectCmd.Flags().String("network", "ethereum-mainnet", "network identifier")
	inspectCmd.Flags().String("rpc", "", "Ethereum RPC URL")
	inspectCmd.Flags().String("token-id", "", "position NFT token id")
	inspectCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(inspectCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
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
