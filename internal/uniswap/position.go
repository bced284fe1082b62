package uniswap

import (
	"bytes"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"liquidityMinter/internal/network"
)

// PositionParams is the fully resolved payload for a position mint, with
// tokens in the canonical pool ordering (token0 address < token1 address).
type PositionParams struct {
	Token0         common.Address
	Token1         common.Address
	Fee            uint32
	TickLower      int32
	TickUpper      int32
	Amount0Desired *big.Int
	Amount1Desired *big.Int
	Amount0Min     *big.Int
	Amount1Min     *big.Int
	Recipient      common.Address
	Deadline       *big.Int
}

// PositionInput is the caller-facing description of a WETH/USDC position.
// Ticks must already be aligned to the fee tier's spacing.
type PositionInput struct {
	AmountWETH     string
	AmountUSDC     string
	TickLower      int32
	TickUpper      int32
	Fee            uint32
	Slippage       float64
	Recipient      common.Address
	DeadlineWindow time.Duration
}

// BuildPositionParams converts human-readable amounts into base units,
// orders the pair canonically, applies slippage minimums, and attaches the
// deadline. Pure computation over the input and the network tables.
func BuildPositionParams(net network.Network, in PositionInput, now time.Time) (PositionParams, error) {
	spacing, err := TickSpacing(in.Fee)
	if err != nil {
		return PositionParams{}, err
	}
	if mod(in.TickLower, spacing) != 0 || mod(in.TickUpper, spacing) != 0 {
		return PositionParams{}, fmt.Errorf("%w: ticks [%d, %d] not aligned to spacing %d", ErrInvalidRange, in.TickLower, in.TickUpper, spacing)
	}
	if in.TickLower >= in.TickUpper {
		return PositionParams{}, fmt.Errorf("%w: lower %d >= upper %d", ErrInvalidRange, in.TickLower, in.TickUpper)
	}

	amountWETH, err := ToBaseUnits(in.AmountWETH, net.WETHDecimals)
	if err != nil {
		return PositionParams{}, fmt.Errorf("weth amount: %w", err)
	}
	amountUSDC, err := ToBaseUnits(in.AmountUSDC, net.USDCDecimals)
	if err != nil {
		return PositionParams{}, fmt.Errorf("usdc amount: %w", err)
	}

	minWETH, err := ApplySlippage(amountWETH, in.Slippage)
	if err != nil {
		return PositionParams{}, err
	}
	minUSDC, err := ApplySlippage(amountUSDC, in.Slippage)
	if err != nil {
		return PositionParams{}, err
	}

	params := PositionParams{
		Fee:       in.Fee,
		TickLower: in.TickLower,
		TickUpper: in.TickUpper,
		Recipient: in.Recipient,
		Deadline:  big.NewInt(now.Add(in.DeadlineWindow).Unix()),
	}

	if bytes.Compare(net.WETH.Bytes(), net.USDC.Bytes()) < 0 {
		params.Token0, params.Token1 = net.WETH, net.USDC
		params.Amount0Desired, params.Amount1Desired = amountWETH, amountUSDC
		params.Amount0Min, params.Amount1Min = minWETH, minUSDC
	} else {
		params.Token0, params.Token1 = net.USDC, net.WETH
		params.Amount0Desired, params.Amount1Desired = amountUSDC, amountWETH
		params.Amount0Min, params.Amount1Min = minUSDC, minWETH
	}

	return params, nil
}

// mintTuple mirrors the mint params tuple for ABI packing.
type mintTuple struct {
	Token0         common.Address
	Token1         common.Address
	Fee            *big.Int
	TickLower      *big.Int
	TickUpper      *big.Int
	Amount0Desired *big.Int
	Amount1Desired *big.Int
	Amount0Min     *big.Int
	Amount1Min     *big.Int
	Recipient      common.Address
	Deadline       *big.Int
}

// PackMint encodes a mint(params) call for the position manager.
func PackMint(p PositionParams) ([]byte, error) {
	managerABI, err := PositionManagerABI()
	if err != nil {
		return nil, fmt.Errorf("parse position manager abi: %w", err)
	}

	data, err := managerABI.Pack("mint", mintTuple{
		Token0:         p.Token0,
		Token1:         p.Token1,
		Fee:            big.NewInt(int64(p.Fee)),
		TickLower:      big.NewInt(int64(p.TickLower)),
		TickUpper:      big.NewInt(int64(p.TickUpper)),
		Amount0Desired: p.Amount0Desired,
		Amount1Desired: p.Amount1Desired,
		Amount0Min:     p.Amount0Min,
		Amount1Min:     p.Amount1Min,
		Recipient:      p.Recipient,
		Deadline:       p.Deadline,
	})
	if err != nil {
		return nil, fmt.Errorf("pack mint: %w", err)
	}
	return data, nil
}

func mod(a, b int32) int32 {
	return ((a % b) + b) % b
}
