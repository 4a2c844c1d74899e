package entity

import (
	"strings"

	"github.com/mr-tron/base58"
)

// AddressFamily tags which address encoding a validated address uses.
type AddressFamily string

const (
	AddressFamilyHex    AddressFamily = "hex"
	AddressFamilyBase58 AddressFamily = "base58"
)

// Address is a user-supplied contract address that passed format validation.
// The zero value is not a valid address; use ParseAddress.
type Address struct {
	value  string
	family AddressFamily
}

// ParseAddress classifies a raw string as a plausible contract address.
// A string is hex-family if it starts with "0x" and is at least 40 characters
// long in total; otherwise it is base58-family if it decodes to exactly 32
// bytes. Anything else fails with ErrInvalidAddressFormat. No network access.
func ParseAddress(raw string) (Address, error) {
	if strings.HasPrefix(raw, "0x") && len(raw) >= 40 {
		return Address{value: raw, family: AddressFamilyHex}, nil
	}
	if decoded, err := base58.Decode(raw); err == nil && len(decoded) == 32 {
		return Address{value: raw, family: AddressFamilyBase58}, nil
	}
	return Address{}, ErrInvalidAddressFormat
}

// String returns the address exactly as the user supplied it.
func (a Address) String() string {
	return a.value
}

// Family returns the address encoding family.
func (a Address) Family() AddressFamily {
	return a.family
}
