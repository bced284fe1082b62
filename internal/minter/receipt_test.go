package minter

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"liquidityMinter/internal/uniswap"
)

func topicFromUint(value *big.Int) common.Hash {
	return common.BigToHash(value)
}

func topicFromAddress(addr common.Address) common.Hash {
	return common.BytesToHash(common.LeftPadBytes(addr.Bytes(), 32))
}

func TestDecodeMintReceipt(t *testing.T) {
	managerABI, err := uniswap.PositionManagerABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}

	manager := common.HexToAddress("0xC36442b4a4522E871399CD717aBDD847Ab11FE88")
	recipient := common.HexToAddress("0x4444444444444444444444444444444444444444")
	tokenID := big.NewInt(987654)

	increaseData, err := managerABI.Events["IncreaseLiquidity"].Inputs.NonIndexed().Pack(
		big.NewInt(123456789),
		big.NewInt(999999999),
		big.NewInt(499999999999999999),
	)
	if err != nil {
		t.Fatalf("pack increase liquidity: %v", err)
	}

	receipt := &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		Logs: []*types.Log{
			{
				// Unrelated log from another contract.
				Address: common.HexToAddress("0x1111111111111111111111111111111111111111"),
				Topics:  []common.Hash{managerABI.Events["Transfer"].ID},
			},
			{
				Address: manager,
				Topics: []common.Hash{
					managerABI.Events["Transfer"].ID,
					common.Hash{}, // mint comes from the zero address
					topicFromAddress(recipient),
					topicFromUint(tokenID),
				},
			},
			{
				Address: manager,
				Topics: []common.Hash{
					managerABI.Events["IncreaseLiquidity"].ID,
					topicFromUint(tokenID),
				},
				Data: increaseData,
			},
		},
	}

	outcome, err := decodeMintReceipt(receipt, manager)
	if err != nil {
		t.Fatalf("decode receipt: %v", err)
	}

	if outcome.TokenID.Cmp(tokenID) != 0 {
		t.Fatalf("token id mismatch: %s", outcome.TokenID)
	}
	if outcome.Liquidity.String() != "123456789" {
		t.Fatalf("liquidity mismatch: %s", outcome.Liquidity)
	}
	if outcome.Amount0.String() != "999999999" {
		t.Fatalf("amount0 mismatch: %s", outcome.Amount0)
	}
	if outcome.Amount1.String() != "499999999999999999" {
		t.Fatalf("amount1 mismatch: %s", outcome.Amount1)
	}
}

func TestDecodeMintReceiptTokenIDFromIncreaseLiquidity(t *testing.T) {
	managerABI, err := uniswap.PositionManagerABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}

	manager := common.HexToAddress("0xC36442b4a4522E871399CD717aBDD847Ab11FE88")
	tokenID := big.NewInt(42)

	increaseData, err := managerABI.Events["IncreaseLiquidity"].Inputs.NonIndexed().Pack(
		big.NewInt(1), big.NewInt(2), big.NewInt(3),
	)
	if err != nil {
		t.Fatalf("pack increase liquidity: %v", err)
	}

	receipt := &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		Logs: []*types.Log{
			{
				Address: manager,
				Topics: []common.Hash{
					managerABI.Events["IncreaseLiquidity"].ID,
					topicFromUint(tokenID),
				},
				Data: increaseData,
			},
		},
	}

	outcome, err := decodeMintReceipt(receipt, manager)
	if err != nil {
		t.Fatalf("decode receipt: %v", err)
	}
	if outcome.TokenID.Cmp(tokenID) != 0 {
		t.Fatalf("token id mismatch: %s", outcome.TokenID)
	}
}

func TestDecodeMintReceiptMissingLogs(t *testing.T) {
	manager := common.HexToAddress("0xC36442b4a4522E871399CD717aBDD847Ab11FE88")
	receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful}

	if _, err := decodeMintReceipt(receipt, manager); err == nil {
		t.Fatalf("expected error for receipt without position logs")
	}
}
