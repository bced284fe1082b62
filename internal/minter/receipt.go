package minter

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"liquidityMinter/internal/uniswap"
)

// mintOutcome carries the values decoded from a successful mint receipt.
type mintOutcome struct {
	TokenID   *big.Int
	Liquidity *big.Int
	Amount0   *big.Int
	Amount1   *big.Int
}

// decodeMintReceipt extracts the NFT token id from the position manager's
// ERC721 Transfer log and the minted liquidity and consumed amounts from
// its IncreaseLiquidity log.
func decodeMintReceipt(receipt *types.Receipt, manager common.Address) (mintOutcome, error) {
	managerABI, err := uniswap.PositionManagerABI()
	if err != nil {
		return mintOutcome{}, fmt.Errorf("parse position manager abi: %w", err)
	}

	transferID := managerABI.Events["Transfer"].ID
	increaseID := managerABI.Events["IncreaseLiquidity"].ID

	outcome := mintOutcome{}
	for _, log := range receipt.Logs {
		if log == nil || log.Address != manager || len(log.Topics) == 0 {
			continue
		}

		switch log.Topics[0] {
		case transferID:
			// Mint transfers come from the zero address and carry the
			// token id in the third indexed slot.
			if len(log.Topics) != 4 || log.Topics[1] != (common.Hash{}) {
				continue
			}
			outcome.TokenID = new(big.Int).SetBytes(log.Topics[3].Bytes())
		case increaseID:
			if len(log.Topics) != 2 {
				continue
			}
			values, err := managerABI.Events["IncreaseLiquidity"].Inputs.NonIndexed().Unpack(log.Data)
			if err != nil {
				return mintOutcome{}, fmt.Errorf("unpack increase liquidity: %w", err)
			}
			if len(values) != 3 {
				return mintOutcome{}, fmt.Errorf("increase liquidity: unexpected arity %d", len(values))
			}
			liquidity, ok := values[0].(*big.Int)
			if !ok {
				return mintOutcome{}, fmt.Errorf("increase liquidity: liquidity type %T", values[0])
			}
			amount0, ok := values[1].(*big.Int)
			if !ok {
				return mintOutcome{}, fmt.Errorf("increase liquidity: amount0 type %T", values[1])
			}
			amount1, ok := values[2].(*big.Int)
			if !ok {
				return mintOutcome{}, fmt.Errorf("increase liquidity: amount1 type %T", values[2])
			}
			outcome.Liquidity = liquidity
			outcome.Amount0 = amount0
			outcome.Amount1 = amount1
			if outcome.TokenID == nil {
				outcome.TokenID = new(big.Int).SetBytes(log.Topics[1].Bytes())
			}
		}
	}

	if outcome.TokenID == nil {
		return mintOutcome{}, fmt.Errorf("no position transfer log found in receipt")
	}
	return outcome, nil
}
