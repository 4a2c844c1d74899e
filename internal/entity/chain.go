package entity

import "strings"

// Chain identifies a blockchain network supported by the bubble map service.
// The value is the internal chain id used by the Bubblemaps APIs.
type Chain string

const (
	ChainEthereum  Chain = "eth"
	ChainBSC       Chain = "bsc"
	ChainFantom    Chain = "ftm"
	ChainAvalanche Chain = "avax"
	ChainCronos    Chain = "cro"
	ChainArbitrum  Chain = "arbi"
	ChainPolygon   Chain = "poly"
	ChainBase      Chain = "base"
	ChainSolana    Chain = "sol"
	ChainSonic     Chain = "sonic"
)

// supportedChains fixes the display order for menus and the /start message.
var supportedChains = []Chain{
	ChainEthereum,
	ChainBSC,
	ChainFantom,
	ChainAvalanche,
	ChainCronos,
	ChainArbitrum,
	ChainPolygon,
	ChainBase,
	ChainSolana,
	ChainSonic,
}

// providerToChain maps DEX Screener chain ids to internal chain ids.
var providerToChain = map[string]Chain{
	"ethereum":  ChainEthereum,
	"bsc":       ChainBSC,
	"fantom":    ChainFantom,
	"avalanche": ChainAvalanche,
	"cronos":    ChainCronos,
	"arbitrum":  ChainArbitrum,
	"polygon":   ChainPolygon,
	"base":      ChainBase,
	"solana":    ChainSolana,
	"sonic":     ChainSonic,
}

// chainToProvider is the inverse of providerToChain, built once at startup.
var chainToProvider = func() map[Chain]string {
	m := make(map[Chain]string, len(providerToChain))
	for providerID, chain := range providerToChain {
		m[chain] = providerID
	}
	return m
}()

var chainDisplayNames = map[Chain]string{
	ChainEthereum:  "Ethereum",
	ChainBSC:       "Binance Smart Chain",
	ChainFantom:    "Fantom",
	ChainAvalanche: "Avalanche",
	ChainCronos:    "Cronos",
	ChainArbitrum:  "Arbitrum",
	ChainPolygon:   "Polygon",
	ChainBase:      "Base",
	ChainSolana:    "Solana",
	ChainSonic:     "Sonic",
}

// ChainFromProviderID resolves a DEX Screener chain id to the internal chain id.
// The lookup is case-insensitive. A missing entry means the chain is not
// supported for bubble maps, which is a policy decision, not a registry fault.
func ChainFromProviderID(providerID string) (Chain, bool) {
	chain, ok := providerToChain[strings.ToLower(providerID)]
	return chain, ok
}

// InternalID returns the chain id in the Bubblemaps vocabulary.
func (c Chain) InternalID() string {
	return string(c)
}

// ProviderID returns the chain id in the DEX Screener vocabulary.
func (c Chain) ProviderID() string {
	return chainToProvider[c]
}

// DisplayName returns the human-readable network name.
func (c Chain) DisplayName() string {
	if name, ok := chainDisplayNames[c]; ok {
		return name
	}
	return string(c)
}

// SupportedChains returns all supported chains in display order.
func SupportedChains() []Chain {
	chains := make([]Chain, len(supportedChains))
	copy(chains, supportedChains)
	return chains
}
