package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainMapping_RoundTrip(t *testing.T) {
	for _, chain := range SupportedChains() {
		roundTripped, ok := ChainFromProviderID(chain.ProviderID())
		require.True(t, ok, "provider id %q must map back", chain.ProviderID())
		assert.Equal(t, chain, roundTripped)
	}
}

func TestChainMapping_Bijection(t *testing.T) {
	seenProvider := make(map[string]bool)
	seenInternal := make(map[string]bool)
	for _, chain := range SupportedChains() {
		assert.False(t, seenProvider[chain.ProviderID()], "duplicate provider id %q", chain.ProviderID())
		assert.False(t, seenInternal[chain.InternalID()], "duplicate internal id %q", chain.InternalID())
		seenProvider[chain.ProviderID()] = true
		seenInternal[chain.InternalID()] = true
	}
	assert.Len(t, seenProvider, 10)
	assert.Len(t, seenInternal, 10)
}

func TestChainFromProviderID_CaseInsensitive(t *testing.T) {
	chain, ok := ChainFromProviderID("Ethereum")
	require.True(t, ok)
	assert.Equal(t, ChainEthereum, chain)
}

func TestChainFromProviderID_Unsupported(t *testing.T) {
	_, ok := ChainFromProviderID("osmosis")
	assert.False(t, ok)
}

func TestChainDisplayName(t *testing.T) {
	assert.Equal(t, "Binance Smart Chain", ChainBSC.DisplayName())
	assert.Equal(t, "Ethereum", ChainEthereum.DisplayName())
}
