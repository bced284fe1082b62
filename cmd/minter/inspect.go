package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"liquidityMinter/internal/chain"
	"liquidityMinter/internal/config"
	"liquidityMinter/internal/network"
	"liquidityMinter/internal/uniswap"
)

func runInspect(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadInspect(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	tokenID, ok := new(big.Int).SetString(cfg.TokenID, 10)
	if !ok || tokenID.Sign() < 0 {
		return fmt.Errorf("invalid token id: %q", cfg.TokenID)
	}

	net, err := network.Lookup(cfg.Network)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	info, err := uniswap.FetchPosition(ctx, chainClient, net.PositionManager, tokenID)
	if err != nil {
		return fmt.Errorf("fetch position: %w", err)
	}

	logger.Info("position",
		zap.String("token_id", tokenID.String()),
		zap.String("token0", info.Token0),
		zap.String("token1", info.Token1),
		zap.Uint32("fee", info.Fee),
	)

	fmt.Printf("position %s:\n", tokenID)
	fmt.Printf("  pair:      %s / %s (fee %d)\n", info.Token0, info.Token1, info.Fee)
	fmt.Printf("  ticks:     [%d, %d]\n", info.TickLower, info.TickUpper)
	fmt.Printf("  liquidity: %s\n", info.Liquidity)
	fmt.Printf("  owed:      %s / %s\n", info.TokensOwed0, info.TokensOwed1)
	return nil
}
