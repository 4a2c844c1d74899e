package entity

// DEXSearchResponse is the payload of the DEX Screener search endpoint.
type DEXSearchResponse struct {
	SchemaVersion string     `json:"schemaVersion"`
	Pairs         []PairData `json:"pairs"`
}

// PairData contains detailed information about a trading pair. Optional
// fields are pointers so that an absent value is distinguishable from zero;
// the composer renders absent values as "Unknown".
type PairData struct {
	ChainID     string        `json:"chainId"`
	DexID       string        `json:"dexId"`
	URL         string        `json:"url"`
	PairAddress string        `json:"pairAddress"`
	BaseToken   DEXToken      `json:"baseToken"`
	QuoteToken  DEXToken      `json:"quoteToken"`
	PriceNative string        `json:"priceNative"`
	PriceUsd    string        `json:"priceUsd"`
	Volume      *PairVolume   `json:"volume"`
	Liquidity   *DEXLiquidity `json:"liquidity"`
	Fdv         *float64      `json:"fdv"`
	MarketCap   *float64      `json:"marketCap"`
}

// DEXToken represents a token in a trading pair.
type DEXToken struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// DEXLiquidity represents the liquidity information for a pair.
type DEXLiquidity struct {
	Usd   *float64 `json:"usd"`
	Base  float64  `json:"base"`
	Quote float64  `json:"quote"`
}

// PairVolume represents trading volume over different periods. H24 is a
// pointer because the canonical-pair selection must know whether the field
// was reported at all.
type PairVolume struct {
	M5  *float64 `json:"m5"`
	H1  *float64 `json:"h1"`
	H6  *float64 `json:"h6"`
	H24 *float64 `json:"h24"`
}
