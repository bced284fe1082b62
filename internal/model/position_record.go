package model

// PositionRecord is the normalized representation of a minted position for
// the journal and database.
type PositionRecord struct {
	ChainID        uint64 `json:"chain_id"`
	Network        string `json:"network"`
	TxHash         string `json:"tx_hash"`
	BlockNumber    uint64 `json:"block_number"`
	TokenID        string `json:"token_id"`
	Token0         string `json:"token0"`
	Token1         string `json:"token1"`
	Fee            uint32 `json:"fee"`
	TickLower      int32  `json:"tick_lower"`
	TickUpper      int32  `json:"tick_upper"`
	Amount0Desired string `json:"amount0_desired"`
	Amount1Desired string `json:"amount1_desired"`
	Amount0Min     string `json:"amount0_min"`
	Amount1Min     string `json:"amount1_min"`
	Liquidity      string `json:"liquidity"`
	Amount0        string `json:"amount0"`
	Amount1        string `json:"amount1"`
	Recipient      string `json:"recipient"`
	Deadline       uint64 `json:"deadline"`
	MintedAt       string `json:"minted_at"`
}
