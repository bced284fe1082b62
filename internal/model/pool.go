package model

import "math/big"

// PoolState holds the live slot0 fields used for pricing.
type PoolState struct {
	SqrtPriceX96 *big.Int
	Tick         int32
}

// PositionInfo is the positions(tokenId) readback from the position manager.
type PositionInfo struct {
	Token0      string `json:"token0"`
	Token1      string `json:"token1"`
	Fee         uint32 `json:"fee"`
	TickLower   int32  `json:"tick_lower"`
	TickUpper   int32  `json:"tick_upper"`
	Liquidity   string `json:"liquidity"`
	TokensOwed0 string `json:"tokens_owed0"`
	TokensOwed1 string `json:"tokens_owed1"`
}
