package uniswap

import (
	"math/big"
	"testing"
)

func TestToken1PriceInToken0UnitRatio(t *testing.T) {
	// sqrtPriceX96 == 2^96 means one base token1 unit per base token0 unit.
	sqrt := new(big.Int).Lsh(big.NewInt(1), 96)

	price, err := Token1PriceInToken0(sqrt, 6, 18)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price.String() != "1000000000000" {
		t.Fatalf("price mismatch: %s", price)
	}

	price, err = Token1PriceInToken0(sqrt, 18, 18)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price.String() != "1" {
		t.Fatalf("equal-decimals price mismatch: %s", price)
	}
}

func TestToken1PriceInToken0Realistic(t *testing.T) {
	// Snapshot from a USDC/WETH 0.05% pool: sqrtPriceX96 around tick 202500
	// should put WETH in the low four figures of USDC.
	sqrt, ok := new(big.Int).SetString("1973456789012345678901234567890123", 10)
	if !ok {
		t.Fatalf("parse sqrt")
	}

	price, err := Token1PriceInToken0(sqrt, 6, 18)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, _ := price.Float64()
	if f < 1000 || f > 2500 {
		t.Fatalf("price out of expected band: %v", f)
	}
}

func TestToken1PriceInToken0Invalid(t *testing.T) {
	if _, err := Token1PriceInToken0(nil, 6, 18); err == nil {
		t.Fatalf("expected error for nil sqrt price")
	}
	if _, err := Token1PriceInToken0(big.NewInt(0), 6, 18); err == nil {
		t.Fatalf("expected error for zero sqrt price")
	}
}
