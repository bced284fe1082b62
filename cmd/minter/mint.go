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
	"liquidityMinter/internal/minter"
	"liquidityMinter/internal/network"
	"liquidityMinter/internal/storage"
	"liquidityMinter/internal/storage/postgres"
	"liquidityMinter/internal/wallet"
)

func runMint(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadMint(cfgFile, cmd.Flags())
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
	if cfg.PrivateKey == "" {
		return fmt.Errorf("private key is required")
	}
	if cfg.AmountWETH == "" || cfg.AmountUSDC == "" {
		return fmt.Errorf("amount-weth and amount-usdc are required")
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

	chainID, err := chainClient.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("get chain id: %w", err)
	}
	if !chainID.IsUint64() || chainID.Uint64() != net.ChainID {
		return fmt.Errorf("chain id mismatch: rpc reports %s, network %s expects %d", chainID, net.ID, net.ChainID)
	}

	signer, err := wallet.NewSigner(cfg.PrivateKey, chainID)
	if err != nil {
		return err
	}

	var journal storage.Storage = storage.NewJsonlStorage(cfg.Journal)

	var store *postgres.Store
	if cfg.PGDSN != "" {
		store, err = postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
	}

	m := minter.NewMinter(minter.RunConfig{
		Network:        net,
		AmountWETH:     cfg.AmountWETH,
		AmountUSDC:     cfg.AmountUSDC,
		TickLower:      cfg.TickLower,
		TickUpper:      cfg.TickUpper,
		FeeTier:        cfg.FeeTier,
		Slippage:       cfg.Slippage,
		DeadlineWindow: cfg.Deadline,
		GasLimit:       cfg.GasLimit,
		MaxRetries:     cfg.MaxRetries,
		RetryBackoff:   cfg.RetryBackoff,
		DryRun:         cfg.DryRun,
	}, chainClient, signer, journal, store, logger)

	logger.Info("mint start",
		zap.String("network", net.ID),
		zap.String("recipient", signer.Address().Hex()),
		zap.String("amount_weth", cfg.AmountWETH),
		zap.String("amount_usdc", cfg.AmountUSDC),
		zap.Int32("tick_lower", cfg.TickLower),
		zap.Int32("tick_upper", cfg.TickUpper),
		zap.Uint32("fee_tier", cfg.FeeTier),
		zap.Float64("slippage", cfg.Slippage),
		zap.Bool("dry_run", cfg.DryRun),
	)

	result, err := m.Run(ctx)
	if err != nil {
		return err
	}

	if result.DryRun {
		fmt.Printf("dry run ok: token0=%s token1=%s ticks=[%d, %d] amount0=%s amount1=%s\n",
			result.Params.Token0.Hex(), result.Params.Token1.Hex(),
			result.Params.TickLower, result.Params.TickUpper,
			result.Params.Amount0Desired, result.Params.Amount1Desired)
		return nil
	}

	logger.Info("mint complete",
		zap.String("tx_hash", result.TxHash.Hex()),
		zap.Uint64("block_number", result.BlockNumber),
		zap.String("token_id", result.TokenID.String()),
	)

	fmt.Printf("position minted: tx=%s token_id=%s liquidity=%s\n",
		result.TxHash.Hex(), result.TokenID, result.Liquidity)
	return nil
}
