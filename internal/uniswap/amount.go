package uniswap

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ToBaseUnits converts a human-readable token amount into integer base units.
// Fractional digits beyond the token's precision are truncated.
func ToBaseUnits(amount string, decimals uint8) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("invalid amount %q: must not be negative", amount)
	}
	return d.Shift(int32(decimals)).Truncate(0).BigInt(), nil
}

// FromBaseUnits renders integer base units as a human-readable amount.
func FromBaseUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}

// ApplySlippage computes floor(amount * (1 - slippage)) for a slippage
// fraction in [0, 1).
func ApplySlippage(amount *big.Int, slippage float64) (*big.Int, error) {
	if slippage < 0 || slippage >= 1 {
		return nil, fmt.Errorf("slippage %v out of range [0, 1)", slippage)
	}
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(slippage))
	return decimal.NewFromBigInt(amount, 0).Mul(factor).Floor().BigInt(), nil
}
