package uniswap

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"liquidityMinter/internal/chain"
	"liquidityMinter/internal/model"
)

var q96 = decimal.NewFromInt(2).Pow(decimal.NewFromInt(96))

// PoolAddress resolves the pool for a token pair and fee tier via the factory.
func PoolAddress(ctx context.Context, chainClient *chain.Client, factory, tokenA, tokenB common.Address, fee uint32) (common.Address, error) {
	parsed, err := FactoryABI()
	if err != nil {
		return common.Address{}, fmt.Errorf("parse factory abi: %w", err)
	}

	values, err := callMethod(ctx, chainClient, factory, parsed, "getPool", tokenA, tokenB, big.NewInt(int64(fee)))
	if err != nil {
		return common.Address{}, err
	}
	pool, err := asAddress(values[0])
	if err != nil {
		return common.Address{}, fmt.Errorf("pool address: %w", err)
	}
	if pool == (common.Address{}) {
		return common.Address{}, fmt.Errorf("no pool for fee tier %d", fee)
	}
	return pool, nil
}

// FetchPoolState reads slot0 from a pool.
func FetchPoolState(ctx context.Context, chainClient *chain.Client, pool common.Address) (model.PoolState, error) {
	parsed, err := PoolABI()
	if err != nil {
		return model.PoolState{}, fmt.Errorf("parse pool abi: %w", err)
	}

	values, err := callMethod(ctx, chainClient, pool, parsed, "slot0")
	if err != nil {
		return model.PoolState{}, err
	}
	if len(values) < 2 {
		return model.PoolState{}, fmt.Errorf("slot0: unexpected output arity %d", len(values))
	}

	sqrtPrice, err := asBigInt(values[0])
	if err != nil {
		return model.PoolState{}, fmt.Errorf("sqrt price: %w", err)
	}
	tickBig, err := asBigInt(values[1])
	if err != nil {
		return model.PoolState{}, fmt.Errorf("tick: %w", err)
	}
	tick, err := int24FromBig(tickBig)
	if err != nil {
		return model.PoolState{}, fmt.Errorf("tick: %w", err)
	}

	return model.PoolState{SqrtPriceX96: sqrtPrice, Tick: tick}, nil
}

// Token1PriceInToken0 converts a pool's sqrtPriceX96 into the human-readable
// price of one token1 unit denominated in token0. The raw ratio
// (sqrtPriceX96 / 2^96)^2 is base token1 units per base token0 unit, so the
// human price of token1 is 10^(decimals1-decimals0) divided by that ratio.
func Token1PriceInToken0(sqrtPriceX96 *big.Int, decimals0, decimals1 uint8) (decimal.Decimal, error) {
	if sqrtPriceX96 == nil || sqrtPriceX96.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("sqrt price must be positive")
	}
	sqrt := decimal.NewFromBigInt(sqrtPriceX96, 0).Div(q96)
	ratio := sqrt.Mul(sqrt)
	return decimal.New(1, int32(decimals1)-int32(decimals0)).Div(ratio), nil
}
