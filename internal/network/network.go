package network

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ErrUnsupportedNetwork indicates the requested network has no registry entry.
var ErrUnsupportedNetwork = errors.New("unsupported network")

// Network holds the static contract and token configuration for one chain.
type Network struct {
	ID              string
	ChainID         uint64
	Factory         common.Address
	PositionManager common.Address
	WETH            common.Address
	USDC            common.Address
	WETHDecimals    uint8
	USDCDecimals    uint8
}

var registry = map[string]Network{
	"ethereum-mainnet": {
		ID:              "ethereum-mainnet",
		ChainID:         1,
		Factory:         common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984"),
		PositionManager: common.HexToAddress("0xC36442b4a4522E871399CD717aBDD847Ab11FE88"),
		WETH:            common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
		USDC:            common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
		WETHDecimals:    18,
		USDCDecimals:    6,
	},
}

// Lookup resolves a network by its identifier.
func Lookup(id string) (Network, error) {
	net, ok := registry[strings.TrimSpace(id)]
	if !ok {
		return Network{}, fmt.Errorf("%w: %q (known: %s)", ErrUnsupportedNetwork, id, strings.Join(IDs(), ", "))
	}
	return net, nil
}

// LookupChainID resolves a network by its numeric chain id.
func LookupChainID(chainID uint64) (Network, error) {
	for _, net := range registry {
		if net.ChainID == chainID {
			return net, nil
		}
	}
	return Network{}, fmt.Errorf("%w: chain id %d", ErrUnsupportedNetwork, chainID)
}

// IDs returns the known network identifiers in stable order.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
