package entity

import "fmt"

// ResolveErrorCode enumerates the terminal failure modes of a resolution run.
type ResolveErrorCode string

const (
	ResolveErrInvalidAddress   ResolveErrorCode = "invalid_address"
	ResolveErrTokenNotFound    ResolveErrorCode = "token_not_found"
	ResolveErrUnsupportedChain ResolveErrorCode = "unsupported_chain"
	ResolveErrMarketProvider   ResolveErrorCode = "market_provider"
)

// ResolveError is a terminal resolution failure. UserMessage carries the text
// shown to the user; Cause, when set, is for logging only.
type ResolveError struct {
	Code            ResolveErrorCode
	ProviderChainID string
	Cause           error
}

func (e *ResolveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resolve failed (%s): %v", e.Code, e.Cause)
	}
	return fmt.Sprintf("resolve failed (%s)", e.Code)
}

func (e *ResolveError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the text to surface to the user for this failure.
func (e *ResolveError) UserMessage() string {
	switch e.Code {
	case ResolveErrInvalidAddress:
		return "Invalid token address format. Please provide a valid CA."
	case ResolveErrTokenNotFound:
		return "No token information found. Please verify the contract address."
	case ResolveErrUnsupportedChain:
		return fmt.Sprintf("Chain %s not supported for bubble maps.", e.ProviderChainID)
	default:
		return "Error fetching token info. Please try again later."
	}
}

// ErrInvalidAddressFormat is returned by ParseAddress for malformed input.
var ErrInvalidAddressFormat = &ResolveError{Code: ResolveErrInvalidAddress}

// ErrTokenNotFound is returned when the market provider knows no pairs for an address.
var ErrTokenNotFound = &ResolveError{Code: ResolveErrTokenNotFound}

// NewUnsupportedChainError marks a valid pair whose chain has no internal mapping.
func NewUnsupportedChainError(providerChainID string) *ResolveError {
	return &ResolveError{Code: ResolveErrUnsupportedChain, ProviderChainID: providerChainID}
}

// NewMarketProviderError wraps a transport or parse fault from the market provider.
func NewMarketProviderError(cause error) *ResolveError {
	return &ResolveError{Code: ResolveErrMarketProvider, Cause: cause}
}

// RenderFailureKind enumerates the user-facing flavors of a failed map render.
type RenderFailureKind string

const (
	RenderFailureNoMapData       RenderFailureKind = "no_map_data"
	RenderFailureTokenNotFound   RenderFailureKind = "token_not_found"
	RenderFailureProviderMessage RenderFailureKind = "provider_message"
	RenderFailureGeneric         RenderFailureKind = "generic"
)

// RenderError is a failed image fetch. It is terminal for the image only: the
// caller is expected to still deliver the composed token info text.
type RenderError struct {
	Kind            RenderFailureKind
	Chain           Chain
	ProviderMessage string
	Cause           error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render failed (%s): %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("render failed (%s)", e.Kind)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the reason line prepended to the degraded reply.
func (e *RenderError) UserMessage() string {
	switch e.Kind {
	case RenderFailureNoMapData:
		return "No bubble map data available for this token."
	case RenderFailureTokenNotFound:
		return fmt.Sprintf("Token not found on %s.", e.Chain.DisplayName())
	case RenderFailureProviderMessage:
		return e.ProviderMessage
	default:
		return "Error generating bubble map."
	}
}
