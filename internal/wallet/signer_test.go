package wallet

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Well-known throwaway key (hardhat account #0).
const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestNewSignerAddress(t *testing.T) {
	signer, err := NewSigner(testKey, big.NewInt(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	if signer.Address() != want {
		t.Fatalf("address mismatch: %s", signer.Address().Hex())
	}
}

func TestNewSignerAcceptsHexPrefix(t *testing.T) {
	prefixed, err := NewSigner("0x"+testKey, big.NewInt(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bare, err := NewSigner(testKey, big.NewInt(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefixed.Address() != bare.Address() {
		t.Fatalf("prefix handling changed the derived address")
	}
}

func TestNewSignerInvalid(t *testing.T) {
	if _, err := NewSigner("not-a-key", big.NewInt(1)); err == nil {
		t.Fatalf("expected error for malformed key")
	}
	if _, err := NewSigner(testKey, nil); err == nil {
		t.Fatalf("expected error for missing chain id")
	}
}

func TestSignTxSenderRecovery(t *testing.T) {
	chainID := big.NewInt(1)
	signer, err := NewSigner(testKey, chainID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	to := common.HexToAddress("0xC36442b4a4522E871399CD717aBDD847Ab11FE88")
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     7,
		GasTipCap: big.NewInt(1_000_000_000),
		GasFeeCap: big.NewInt(30_000_000_000),
		Gas:       3_000_000,
		To:        &to,
		Value:     big.NewInt(0),
	})

	signed, err := signer.SignTx(tx)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	from, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
	if err != nil {
		t.Fatalf("sender recovery failed: %v", err)
	}
	if from != signer.Address() {
		t.Fatalf("sender mismatch: %s != %s", from.Hex(), signer.Address().Hex())
	}
}
