package uniswap

import (
	"errors"
	"testing"
)

func TestTickSpacing(t *testing.T) {
	cases := map[uint32]int32{500: 10, 3000: 60, 10000: 200}
	for fee, want := range cases {
		got, err := TickSpacing(fee)
		if err != nil {
			t.Fatalf("fee %d: unexpected error: %v", fee, err)
		}
		if got != want {
			t.Fatalf("fee %d: spacing mismatch: %d != %d", fee, got, want)
		}
	}

	if _, err := TickSpacing(2500); !errors.Is(err, ErrUnsupportedFeeTier) {
		t.Fatalf("expected ErrUnsupportedFeeTier, got %v", err)
	}
}

func TestAlignRangeAlreadyAligned(t *testing.T) {
	lower, upper, err := AlignRange(-60000, 60000, 3000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lower != -60000 || upper != 60000 {
		t.Fatalf("aligned range changed: [%d, %d]", lower, upper)
	}
}

func TestAlignRangeRounding(t *testing.T) {
	lower, upper, err := AlignRange(202543, 202649, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lower != 202540 {
		t.Fatalf("lower should round down: %d", lower)
	}
	if upper != 202650 {
		t.Fatalf("upper should round up: %d", upper)
	}
}

func TestAlignRangeNegativeTicks(t *testing.T) {
	lower, upper, err := AlignRange(-61, -1, 3000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lower != -120 {
		t.Fatalf("lower should floor toward negative infinity: %d", lower)
	}
	if upper != 0 {
		t.Fatalf("upper should ceil toward zero: %d", upper)
	}
}

func TestAlignRangeSpacingInvariant(t *testing.T) {
	ticks := []int32{-887272, -202543, -61, -1, 0, 1, 59, 60, 202543, 887271}
	for fee, spacing := range map[uint32]int32{500: 10, 3000: 60, 10000: 200} {
		for _, tick := range ticks {
			if got := AlignTickLower(tick, spacing); ((got%spacing)+spacing)%spacing != 0 {
				t.Fatalf("fee %d lower(%d) = %d not a multiple of %d", fee, tick, got, spacing)
			}
			if got := AlignTickLower(tick, spacing); got > tick {
				t.Fatalf("fee %d lower(%d) = %d exceeds input", fee, tick, got)
			}
			if got := AlignTickUpper(tick, spacing); got < tick {
				t.Fatalf("fee %d upper(%d) = %d below input", fee, tick, got)
			}
		}
	}
}

func TestAlignRangeEmpty(t *testing.T) {
	// Equal bounds stay equal after alignment.
	if _, _, err := AlignRange(120, 120, 500); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, _, err := AlignRange(60000, -60000, 3000); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestAlignRangeOutOfBounds(t *testing.T) {
	if _, _, err := AlignRange(-887273, 0, 500); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, _, err := AlignRange(0, 887273, 500); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestAlignRangeUnsupportedFee(t *testing.T) {
	if _, _, err := AlignRange(-60000, 60000, 100); !errors.Is(err, ErrUnsupportedFeeTier) {
		t.Fatalf("expected ErrUnsupportedFeeTier, got %v", err)
	}
}
