package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry(DefaultChains()...)

	sepolia, ok := reg.ByChainID(11155111)
	require.True(t, ok)
	require.Equal(t, "sepolia", sepolia.Name)
	require.Equal(t, EntryPointV07, sepolia.EntryPoint)

	_, ok = reg.ByChainID(1)
	require.False(t, ok)
}

func TestRegistryOverride(t *testing.T) {
	base := DefaultChains()
	custom := ChainConfig{ChainID: 11155111, Name: "sepolia-custom", RPCURL: "http://localhost:8545"}

	reg := NewRegistry(append(base, custom)...)
	got, ok := reg.ByChainID(11155111)
	require.True(t, ok)
	require.Equal(t, "sepolia-custom", got.Name)
}

func TestChainsOrderedByID(t *testing.T) {
	reg := NewRegistry(
		ChainConfig{ChainID: 300, Name: "c"},
		ChainConfig{ChainID: 100, Name: "a"},
		ChainConfig{ChainID: 200, Name: "b"},
	)
	chains := reg.Chains()
	require.Len(t, chains, 3)
	require.Equal(t, uint64(100), chains[0].ChainID)
	require.Equal(t, uint64(200), chains[1].ChainID)
	require.Equal(t, uint64(300), chains[2].ChainID)
}

func TestRegistryIsDetachedFromInput(t *testing.T) {
	input := []ChainConfig{{ChainID: 1, Name: "original"}}
	reg := NewRegistry(input...)

	input[0].Name = "mutated"
	got, ok := reg.ByChainID(1)
	require.True(t, ok)
	require.Equal(t, "original", got.Name)
}
