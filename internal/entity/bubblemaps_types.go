package entity

// MapMetadataResponse is the payload of the Bubblemaps map-metadata endpoint.
// Every field is optional; the endpoint omits what it has not computed.
type MapMetadataResponse struct {
	Status                string            `json:"status"`
	DecentralisationScore *float64          `json:"decentralisation_score"`
	IdentifiedSupply      *IdentifiedSupply `json:"identified_supply"`
}

// IdentifiedSupply breaks down where the identified token supply sits.
type IdentifiedSupply struct {
	PercentInCEXs      *float64 `json:"percent_in_cexs"`
	PercentInContracts *float64 `json:"percent_in_contracts"`
}

// HolderMetadata is the optional enrichment attached to a resolved token.
// Absence of the whole record, or of any field, is not an error; the composer
// omits what is missing.
type HolderMetadata struct {
	DecentralisationScore *float64
	PercentInCEXs         *float64
	PercentInContracts    *float64
}

// RenderErrorBody is the structured error payload the rendering service may
// return instead of an image.
type RenderErrorBody struct {
	Error string `json:"error"`
}
