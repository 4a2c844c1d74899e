package entity

// ResolvedToken merges the validated address, the canonical pair selected for
// it, the mapped chain and the optional holder metadata. It lives for one
// request only and is the unit handed to message composition and the image
// fetch.
type ResolvedToken struct {
	Address Address
	Chain   Chain

	Name        string
	Symbol      string
	PriceUsd    string
	PriceNative string

	LiquidityUsd *float64
	MarketCap    *float64
	Fdv          *float64
	VolumeH24    *float64

	PairAddress string
	DexID       string

	Metadata *HolderMetadata
}
