package uniswap

import (
	"errors"
	"fmt"
)

// Protocol-wide tick bounds (price = 1.0001^tick).
const (
	MinTick int32 = -887272
	MaxTick int32 = 887272
)

// ErrUnsupportedFeeTier indicates a fee tier outside the recognized set.
var ErrUnsupportedFeeTier = errors.New("unsupported fee tier")

// ErrInvalidRange indicates a tick range that is empty after alignment.
var ErrInvalidRange = errors.New("invalid tick range")

var tickSpacingByFee = map[uint32]int32{
	500:   10,
	3000:  60,
	10000: 200,
}

// TickSpacing returns the tick spacing for a fee tier.
func TickSpacing(fee uint32) (int32, error) {
	spacing, ok := tickSpacingByFee[fee]
	if !ok {
		return 0, fmt.Errorf("%w: %d (expected 500, 3000, or 10000)", ErrUnsupportedFeeTier, fee)
	}
	return spacing, nil
}

// AlignTickLower rounds a tick down to the nearest multiple of spacing.
func AlignTickLower(tick, spacing int32) int32 {
	return floorDiv(tick, spacing) * spacing
}

// AlignTickUpper rounds a tick up to the nearest multiple of spacing.
func AlignTickUpper(tick, spacing int32) int32 {
	return -floorDiv(-tick, spacing) * spacing
}

// AlignRange aligns a [lower, upper] tick range to the fee tier's spacing.
// The lower bound rounds down and the upper bound rounds up, so an already
// valid range never collapses. A range that is empty after alignment or that
// leaves the protocol tick bounds is rejected.
func AlignRange(lower, upper int32, fee uint32) (int32, int32, error) {
	spacing, err := TickSpacing(fee)
	if err != nil {
		return 0, 0, err
	}

	alignedLower := AlignTickLower(lower, spacing)
	alignedUpper := AlignTickUpper(upper, spacing)

	if alignedLower >= alignedUpper {
		return 0, 0, fmt.Errorf("%w: lower %d >= upper %d after alignment", ErrInvalidRange, alignedLower, alignedUpper)
	}
	if alignedLower < MinTick || alignedUpper > MaxTick {
		return 0, 0, fmt.Errorf("%w: [%d, %d] outside [%d, %d]", ErrInvalidRange, alignedLower, alignedUpper, MinTick, MaxTick)
	}

	return alignedLower, alignedUpper, nil
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
