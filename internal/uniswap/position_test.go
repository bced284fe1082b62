package uniswap

import (
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"liquidityMinter/internal/network"
)

func mainnet(t *testing.T) network.Network {
	t.Helper()
	net, err := network.Lookup("ethereum-mainnet")
	if err != nil {
		t.Fatalf("lookup mainnet: %v", err)
	}
	return net
}

func TestBuildPositionParams(t *testing.T) {
	net := mainnet(t)
	recipient := common.HexToAddress("0x4444444444444444444444444444444444444444")
	now := time.Unix(1700000000, 0)

	params, err := BuildPositionParams(net, PositionInput{
		AmountWETH:     "0.5",
		AmountUSDC:     "1000",
		TickLower:      -60000,
		TickUpper:      60000,
		Fee:            3000,
		Slippage:       0.005,
		Recipient:      recipient,
		DeadlineWindow: 30 * time.Minute,
	}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// USDC < WETH numerically, so USDC takes the token0 slot.
	if params.Token0 != net.USDC || params.Token1 != net.WETH {
		t.Fatalf("ordering mismatch: %s / %s", params.Token0.Hex(), params.Token1.Hex())
	}
	if params.Amount0Desired.String() != "1000000000" {
		t.Fatalf("amount0 mismatch: %s", params.Amount0Desired)
	}
	if params.Amount1Desired.String() != "500000000000000000" {
		t.Fatalf("amount1 mismatch: %s", params.Amount1Desired)
	}
	if params.Amount0Min.String() != "995000000" {
		t.Fatalf("amount0 min mismatch: %s", params.Amount0Min)
	}
	if params.Amount1Min.String() != "497500000000000000" {
		t.Fatalf("amount1 min mismatch: %s", params.Amount1Min)
	}
	if params.Deadline.Int64() != 1700000000+1800 {
		t.Fatalf("deadline mismatch: %s", params.Deadline)
	}
	if params.Recipient != recipient {
		t.Fatalf("recipient mismatch: %s", params.Recipient.Hex())
	}
}

func TestBuildPositionParamsMisalignedTicks(t *testing.T) {
	net := mainnet(t)
	_, err := BuildPositionParams(net, PositionInput{
		AmountWETH: "1",
		AmountUSDC: "1",
		TickLower:  -60001,
		TickUpper:  60000,
		Fee:        3000,
	}, time.Now())
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestBuildPositionParamsEmptyRange(t *testing.T) {
	net := mainnet(t)
	_, err := BuildPositionParams(net, PositionInput{
		AmountWETH: "1",
		AmountUSDC: "1",
		TickLower:  60,
		TickUpper:  60,
		Fee:        3000,
	}, time.Now())
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestBuildPositionParamsUnsupportedFee(t *testing.T) {
	net := mainnet(t)
	_, err := BuildPositionParams(net, PositionInput{
		AmountWETH: "1",
		AmountUSDC: "1",
		TickLower:  -60,
		TickUpper:  60,
		Fee:        123,
	}, time.Now())
	if !errors.Is(err, ErrUnsupportedFeeTier) {
		t.Fatalf("expected ErrUnsupportedFeeTier, got %v", err)
	}
}

func TestPackMintSelector(t *testing.T) {
	net := mainnet(t)
	params, err := BuildPositionParams(net, PositionInput{
		AmountWETH:     "0.1",
		AmountUSDC:     "200",
		TickLower:      202540,
		TickUpper:      202640,
		Fee:            500,
		Slippage:       0.005,
		Recipient:      common.HexToAddress("0x4444444444444444444444444444444444444444"),
		DeadlineWindow: 30 * time.Minute,
	}, time.Unix(1700000000, 0))
	if err != nil {
		t.Fatalf("build params: %v", err)
	}

	data, err := PackMint(params)
	if err != nil {
		t.Fatalf("pack mint: %v", err)
	}

	// Canonical 4-byte selector for mint((address,address,uint24,...)).
	if got := hex.EncodeToString(data[:4]); got != "88316456" {
		t.Fatalf("selector mismatch: %s", got)
	}
	if len(data) != 4+11*32 {
		t.Fatalf("calldata length mismatch: %d", len(data))
	}
}
