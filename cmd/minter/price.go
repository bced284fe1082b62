package main

import (
	"context"
	"fmt"
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

func runPrice(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadPrice(cfgFile, cmd.Flags())
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

	net, err := network.Lookup(cfg.Network)
	if err != nil {
		return err
	}
	if _, err := uniswap.TickSpacing(cfg.FeeTier); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	pool, err := uniswap.PoolAddress(ctx, chainClient, net.Factory, net.WETH, net.USDC, cfg.FeeTier)
	if err != nil {
		return fmt.Errorf("resolve pool: %w", err)
	}

	state, err := uniswap.FetchPoolState(ctx, chainClient, pool)
	if err != nil {
		return fmt.Errorf("fetch pool state: %w", err)
	}

	meta0, err := uniswap.FetchTokenMeta(ctx, chainClient, net.USDC, logger)
	if err != nil {
		return fmt.Errorf("usdc metadata: %w", err)
	}
	meta1, err := uniswap.FetchTokenMeta(ctx, chainClient, net.WETH, logger)
	if err != nil {
		return fmt.Errorf("weth metadata: %w", err)
	}

	// USDC is token0 on mainnet, so the token1 price is USDC per WETH.
	price, err := uniswap.Token1PriceInToken0(state.SqrtPriceX96, meta0.Decimals, meta1.Decimals)
	if err != nil {
		return err
	}

	logger.Info("pool price",
		zap.String("pool", pool.Hex()),
		zap.Uint32("fee_tier", cfg.FeeTier),
		zap.Int32("tick", state.Tick),
		zap.String("sqrt_price_x96", state.SqrtPriceX96.String()),
	)

	fmt.Printf("%s/%s %s pool: %s %s per %s (tick %d)\n",
		meta1.Symbol, meta0.Symbol, feeTierLabel(cfg.FeeTier),
		price.StringFixed(6), meta0.Symbol, meta1.Symbol, state.Tick)
	return nil
}

func feeTierLabel(fee uint32) string {
	return fmt.Sprintf("%.2f%%", float64(fee)/10000)
}
