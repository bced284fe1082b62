package uniswap

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"liquidityMinter/internal/chain"
	"liquidityMinter/internal/model"
)

// FetchPosition reads a position back from the position manager by NFT id.
func FetchPosition(ctx context.Context, chainClient *chain.Client, manager common.Address, tokenID *big.Int) (model.PositionInfo, error) {
	parsed, err := PositionManagerABI()
	if err != nil {
		return model.PositionInfo{}, fmt.Errorf("parse position manager abi: %w", err)
	}

	values, err := callMethod(ctx, chainClient, manager, parsed, "positions", tokenID)
	if err != nil {
		return model.PositionInfo{}, err
	}
	if len(values) < 12 {
		return model.PositionInfo{}, fmt.Errorf("positions: unexpected output arity %d", len(values))
	}

	token0, err := asAddress(values[2])
	if err != nil {
		return model.PositionInfo{}, fmt.Errorf("token0: %w", err)
	}
	token1, err := asAddress(values[3])
	if err != nil {
		return model.PositionInfo{}, fmt.Errorf("token1: %w", err)
	}
	fee, err := asBigInt(values[4])
	if err != nil {
		return model.PositionInfo{}, fmt.Errorf("fee: %w", err)
	}
	tickLowerBig, err := asBigInt(values[5])
	if err != nil {
		return model.PositionInfo{}, fmt.Errorf("tick lower: %w", err)
	}
	tickLower, err := int24FromBig(tickLowerBig)
	if err != nil {
		return model.PositionInfo{}, fmt.Errorf("tick lower: %w", err)
	}
	tickUpperBig, err := asBigInt(values[6])
	if err != nil {
		return model.PositionInfo{}, fmt.Errorf("tick upper: %w", err)
	}
	tickUpper, err := int24FromBig(tickUpperBig)
	if err != nil {
		return model.PositionInfo{}, fmt.Errorf("tick upper: %w", err)
	}
	liquidity, err := asBigInt(values[7])
	if err != nil {
		return model.PositionInfo{}, fmt.Errorf("liquidity: %w", err)
	}
	owed0, err := asBigInt(values[10])
	if err != nil {
		return model.PositionInfo{}, fmt.Errorf("tokens owed0: %w", err)
	}
	owed1, err := asBigInt(values[11])
	if err != nil {
		return model.PositionInfo{}, fmt.Errorf("tokens owed1: %w", err)
	}

	return model.PositionInfo{
		Token0:      token0.Hex(),
		Token1:      token1.Hex(),
		Fee:         uint32(fee.Uint64()),
		TickLower:   tickLower,
		TickUpper:   tickUpper,
		Liquidity:   liquidity.String(),
		TokensOwed0: owed0.String(),
		TokensOwed1: owed1.String(),
	}, nil
}
