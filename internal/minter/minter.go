package minter

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"liquidityMinter/internal/chain"
	"liquidityMinter/internal/model"
	"liquidityMinter/internal/network"
	"liquidityMinter/internal/storage"
	"liquidityMinter/internal/storage/postgres"
	"liquidityMinter/internal/uniswap"
	"liquidityMinter/internal/wallet"
)

// ErrInsufficientBalance indicates the wallet cannot cover a desired amount.
var ErrInsufficientBalance = errors.New("insufficient balance")

// RunConfig holds runtime settings for a mint.
type RunConfig struct {
	Network        network.Network
	AmountWETH     string
	AmountUSDC     string
	TickLower      int32
	TickUpper      int32
	FeeTier        uint32
	Slippage       float64
	DeadlineWindow time.Duration
	GasLimit       uint64
	MaxRetries     int
	RetryBackoff   time.Duration
	DryRun         bool
}

// Minter opens a WETH/USDC liquidity position through the position manager.
type Minter struct {
	cfg     RunConfig
	chain   *chain.Client
	signer  *wallet.Signer
	journal storage.Storage
	store   *postgres.Store
	logger  *zap.Logger
}

// Result describes a completed (or dry-run) mint.
type Result struct {
	Params      uniswap.PositionParams
	TxHash      common.Hash
	BlockNumber uint64
	TokenID     *big.Int
	Liquidity   *big.Int
	Amount0     *big.Int
	Amount1     *big.Int
	DryRun      bool
}

// NewMinter builds a Minter with its dependencies. The Postgres store is
// optional; the JSONL journal is not.
func NewMinter(cfg RunConfig, chainClient *chain.Client, signer *wallet.Signer, journal storage.Storage, store *postgres.Store, logger *zap.Logger) *Minter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Minter{
		cfg:     cfg,
		chain:   chainClient,
		signer:  signer,
		journal: journal,
		store:   store,
		logger:  logger,
	}
}

// Run executes the mint flow: align ticks, build params, check balances,
// ensure allowances, submit mint, decode the receipt, journal the record.
func (m *Minter) Run(ctx context.Context) (*Result, error) {
	if m.chain == nil {
		return nil, fmt.Errorf("chain client is nil")
	}
	if m.signer == nil {
		return nil, fmt.Errorf("signer is nil")
	}
	if m.journal == nil {
		return nil, fmt.Errorf("journal is nil")
	}

	lower, upper, err := uniswap.AlignRange(m.cfg.TickLower, m.cfg.TickUpper, m.cfg.FeeTier)
	if err != nil {
		return nil, err
	}
	if lower != m.cfg.TickLower || upper != m.cfg.TickUpper {
		m.logger.Info("ticks aligned to fee tier spacing",
			zap.Int32("requested_lower", m.cfg.TickLower),
			zap.Int32("requested_upper", m.cfg.TickUpper),
			zap.Int32("lower", lower),
			zap.Int32("upper", upper),
		)
	}

	params, err := uniswap.BuildPositionParams(m.cfg.Network, uniswap.PositionInput{
		AmountWETH:     m.cfg.AmountWETH,
		AmountUSDC:     m.cfg.AmountUSDC,
		TickLower:      lower,
		TickUpper:      upper,
		Fee:            m.cfg.FeeTier,
		Slippage:       m.cfg.Slippage,
		Recipient:      m.signer.Address(),
		DeadlineWindow: m.cfg.DeadlineWindow,
	}, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := m.verifyTokenDecimals(ctx); err != nil {
		return nil, err
	}
	if err := m.checkBalances(ctx, params); err != nil {
		return nil, err
	}

	if m.cfg.DryRun {
		m.logger.Info("dry run, skipping submission",
			zap.String("token0", params.Token0.Hex()),
			zap.String("token1", params.Token1.Hex()),
			zap.String("amount0_desired", params.Amount0Desired.String()),
			zap.String("amount1_desired", params.Amount1Desired.String()),
			zap.Int32("tick_lower", params.TickLower),
			zap.Int32("tick_upper", params.TickUpper),
		)
		return &Result{Params: params, DryRun: true}, nil
	}

	if err := m.ensureAllowance(ctx, params.Token0, params.Amount0Desired); err != nil {
		return nil, err
	}
	if err := m.ensureAllowance(ctx, params.Token1, params.Amount1Desired); err != nil {
		return nil, err
	}

	data, err := uniswap.PackMint(params)
	if err != nil {
		return nil, err
	}

	m.logger.Info("submitting mint",
		zap.String("position_manager", m.cfg.Network.PositionManager.Hex()),
		zap.String("token0", params.Token0.Hex()),
		zap.String("token1", params.Token1.Hex()),
		zap.Uint32("fee", params.Fee),
		zap.Int32("tick_lower", params.TickLower),
		zap.Int32("tick_upper", params.TickUpper),
		zap.String("amount0_desired", params.Amount0Desired.String()),
		zap.String("amount1_desired", params.Amount1Desired.String()),
		zap.String("amount0_min", params.Amount0Min.String()),
		zap.String("amount1_min", params.Amount1Min.String()),
	)

	receipt, txHash, err := m.sendAndWait(ctx, m.cfg.Network.PositionManager, data)
	if err != nil {
		return nil, fmt.Errorf("mint: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("mint reverted: tx %s", txHash.Hex())
	}

	outcome, err := decodeMintReceipt(receipt, m.cfg.Network.PositionManager)
	if err != nil {
		return nil, fmt.Errorf("decode mint receipt: %w", err)
	}

	result := &Result{
		Params:      params,
		TxHash:      txHash,
		BlockNumber: receipt.BlockNumber.Uint64(),
		TokenID:     outcome.TokenID,
		Liquidity:   outcome.Liquidity,
		Amount0:     outcome.Amount0,
		Amount1:     outcome.Amount1,
	}

	if err := m.journalResult(ctx, result); err != nil {
		// Position is live on chain; a journal failure must not mask that.
		m.logger.Warn("journal write failed", zap.Error(err), zap.String("tx_hash", txHash.Hex()))
	}

	return result, nil
}

func (m *Minter) verifyTokenDecimals(ctx context.Context) error {
	checks := []struct {
		token    common.Address
		decimals uint8
	}{
		{m.cfg.Network.WETH, m.cfg.Network.WETHDecimals},
		{m.cfg.Network.USDC, m.cfg.Network.USDCDecimals},
	}

	for _, check := range checks {
		var meta model.TokenMeta
		err := withRetry(ctx, m.cfg.MaxRetries, m.cfg.RetryBackoff, func(ctx context.Context) error {
			var err error
			meta, err = uniswap.FetchTokenMeta(ctx, m.chain, check.token, m.logger)
			return err
		})
		if err != nil {
			return fmt.Errorf("token metadata %s: %w", check.token.Hex(), err)
		}
		if meta.Decimals != check.decimals {
			return fmt.Errorf("token %s (%s): on-chain decimals %d disagree with configured %d",
				meta.Symbol, meta.Address, meta.Decimals, check.decimals)
		}
	}
	return nil
}

func (m *Minter) checkBalances(ctx context.Context, params uniswap.PositionParams) error {
	checks := []struct {
		token    common.Address
		needed   *big.Int
		decimals uint8
		symbol   string
	}{
		{m.cfg.Network.WETH, wethAmount(m.cfg.Network, params), m.cfg.Network.WETHDecimals, "WETH"},
		{m.cfg.Network.USDC, usdcAmount(m.cfg.Network, params), m.cfg.Network.USDCDecimals, "USDC"},
	}

	owner := m.signer.Address()
	for _, check := range checks {
		var balance *big.Int
		err := withRetry(ctx, m.cfg.MaxRetries, m.cfg.RetryBackoff, func(ctx context.Context) error {
			var err error
			balance, err = uniswap.BalanceOf(ctx, m.chain, check.token, owner)
			if err != nil {
				m.logger.Warn("balance read failed", zap.Error(err), zap.String("token", check.token.Hex()))
			}
			return err
		})
		if err != nil {
			return fmt.Errorf("balance %s: %w", check.symbol, err)
		}
		if balance.Cmp(check.needed) < 0 {
			return fmt.Errorf("%w: have %s %s, need %s",
				ErrInsufficientBalance,
				uniswap.FromBaseUnits(balance, check.decimals),
				check.symbol,
				uniswap.FromBaseUnits(check.needed, check.decimals),
			)
		}
	}
	return nil
}

func (m *Minter) ensureAllowance(ctx context.Context, token common.Address, needed *big.Int) error {
	owner := m.signer.Address()
	spender := m.cfg.Network.PositionManager

	var allowance *big.Int
	err := withRetry(ctx, m.cfg.MaxRetries, m.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		allowance, err = uniswap.Allowance(ctx, m.chain, token, owner, spender)
		if err != nil {
			m.logger.Warn("allowance read failed", zap.Error(err), zap.String("token", token.Hex()))
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("allowance %s: %w", token.Hex(), err)
	}

	if allowance.Cmp(needed) >= 0 {
		m.logger.Debug("allowance sufficient", zap.String("token", token.Hex()), zap.String("allowance", allowance.String()))
		return nil
	}

	data, err := uniswap.PackApprove(spender, needed)
	if err != nil {
		return err
	}

	m.logger.Info("approving position manager",
		zap.String("token", token.Hex()),
		zap.String("amount", needed.String()),
	)

	receipt, txHash, err := m.sendAndWait(ctx, token, data)
	if err != nil {
		return fmt.Errorf("approve %s: %w", token.Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("approve %s reverted: tx %s", token.Hex(), txHash.Hex())
	}
	return nil
}

func (m *Minter) sendAndWait(ctx context.Context, to common.Address, data []byte) (*types.Receipt, common.Hash, error) {
	from := m.signer.Address()

	var nonce uint64
	err := withRetry(ctx, m.cfg.MaxRetries, m.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		nonce, err = m.chain.PendingNonceAt(ctx, from)
		return err
	})
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("nonce: %w", err)
	}

	var tip *big.Int
	err = withRetry(ctx, m.cfg.MaxRetries, m.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		tip, err = m.chain.SuggestGasTipCap(ctx)
		return err
	})
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("gas tip: %w", err)
	}

	head, err := m.chain.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("latest header: %w", err)
	}
	feeCap := new(big.Int).Set(tip)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	gasLimit := m.cfg.GasLimit
	estimated, err := m.chain.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &to, Data: data})
	if err != nil {
		m.logger.Warn("gas estimation failed, using configured limit",
			zap.Error(err), zap.Uint64("gas_limit", gasLimit))
	} else if estimated < gasLimit {
		gasLimit = estimated + estimated/5
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   new(big.Int).SetUint64(m.cfg.Network.ChainID),
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gasLimit,
		To:        &to,
		Value:     big.NewInt(0),
		Data:      data,
	})

	signed, err := m.signer.SignTx(tx)
	if err != nil {
		return nil, common.Hash{}, err
	}

	if err := m.chain.SendTransaction(ctx, signed); err != nil {
		return nil, common.Hash{}, fmt.Errorf("send tx: %w", err)
	}

	txHash := signed.Hash()
	m.logger.Info("transaction sent", zap.String("tx_hash", txHash.Hex()), zap.Uint64("nonce", nonce))

	receipt, err := m.chain.WaitMined(ctx, signed)
	if err != nil {
		return nil, txHash, fmt.Errorf("wait mined %s: %w", txHash.Hex(), err)
	}
	return receipt, txHash, nil
}

func (m *Minter) journalResult(ctx context.Context, result *Result) error {
	record := model.PositionRecord{
		ChainID:        m.cfg.Network.ChainID,
		Network:        m.cfg.Network.ID,
		TxHash:         result.TxHash.Hex(),
		BlockNumber:    result.BlockNumber,
		TokenID:        bigString(result.TokenID),
		Token0:         result.Params.Token0.Hex(),
		Token1:         result.Params.Token1.Hex(),
		Fee:            result.Params.Fee,
		TickLower:      result.Params.TickLower,
		TickUpper:      result.Params.TickUpper,
		Amount0Desired: bigString(result.Params.Amount0Desired),
		Amount1Desired: bigString(result.Params.Amount1Desired),
		Amount0Min:     bigString(result.Params.Amount0Min),
		Amount1Min:     bigString(result.Params.Amount1Min),
		Liquidity:      bigString(result.Liquidity),
		Amount0:        bigString(result.Amount0),
		Amount1:        bigString(result.Amount1),
		Recipient:      result.Params.Recipient.Hex(),
		Deadline:       result.Params.Deadline.Uint64(),
		MintedAt:       time.Now().UTC().Format(time.RFC3339Nano),
	}

	if err := m.journal.PutPositionBatch([]model.PositionRecord{record}); err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	if m.store != nil {
		if err := m.store.UpsertPositions(ctx, []model.PositionRecord{record}); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	return nil
}

func wethAmount(net network.Network, params uniswap.PositionParams) *big.Int {
	if params.Token0 == net.WETH {
		return params.Amount0Desired
	}
	return params.Amount1Desired
}

func usdcAmount(net network.Network, params uniswap.PositionParams) *big.Int {
	if params.Token0 == net.USDC {
		return params.Amount0Desired
	}
	return params.Amount1Desired
}

func bigString(value *big.Int) string {
	if value == nil {
		return ""
	}
	return value.String()
}
