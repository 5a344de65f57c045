// Package config holds the read-only network registry. The registry is
// built once by the embedding application and passed by value; there is
// no process-wide mutable state.
package config

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// ChainConfig describes one supported network.
type ChainConfig struct {
	ChainID          uint64
	Name             string
	RPCURL           string
	PaymasterAddress common.Address
	EntryPoint       common.Address
	SubgraphURL      string
}

// EntryPointV07 is the canonical ERC-4337 v0.7 EntryPoint deployment.
var EntryPointV07 = common.HexToAddress("0x0000000071727De22E5E9d8BAf0edAc6f37da032")

// Registry is an immutable chain-id lookup over chain configurations.
type Registry struct {
	byID map[uint64]ChainConfig
}

// NewRegistry builds a registry from the given configurations. Later
// entries with a duplicate chain id override earlier ones.
func NewRegistry(chains ...ChainConfig) *Registry {
	byID := make(map[uint64]ChainConfig, len(chains))
	for _, c := range chains {
		byID[c.ChainID] = c
	}
	return &Registry{byID: byID}
}

// ByChainID looks up the configuration for a chain id.
func (r *Registry) ByChainID(id uint64) (ChainConfig, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// Chains returns all configurations ordered by chain id.
func (r *Registry) Chains() []ChainConfig {
	out := make([]ChainConfig, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChainID < out[j].ChainID })
	return out
}

// DefaultChains lists the networks this library ships support for. The
// embedding application usually overrides RPC and subgraph endpoints.
func DefaultChains() []ChainConfig {
	return []ChainConfig{
		{
			ChainID:          11155111,
			Name:             "sepolia",
			RPCURL:           "https://ethereum-sepolia-rpc.publicnode.com",
			PaymasterAddress: common.HexToAddress("0x8817340E0a3435E06254f2ed411E6418cd070D6F"),
			EntryPoint:       EntryPointV07,
			SubgraphURL:      "https://api.studio.thegraph.com/query/semaphore-paymaster/sepolia/version/latest",
		},
		{
			ChainID:          84532,
			Name:             "base-sepolia",
			RPCURL:           "https://sepolia.base.org",
			PaymasterAddress: common.HexToAddress("0x976B64Af4e1D0247e5D6EeBF09b8db34e86bE098"),
			EntryPoint:       EntryPointV07,
			SubgraphURL:      "https://api.studio.thegraph.com/query/semaphore-paymaster/base-sepolia/version/latest",
		},
	}
}
