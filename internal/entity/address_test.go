package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress_HexFamily(t *testing.T) {
	addr, err := ParseAddress("0xc00e94cb662c3520282e6f5717214004a7f26888")
	require.NoError(t, err)
	assert.Equal(t, AddressFamilyHex, addr.Family())
	assert.Equal(t, "0xc00e94cb662c3520282e6f5717214004a7f26888", addr.String())
}

func TestParseAddress_Base58Family(t *testing.T) {
	// Wrapped SOL mint, decodes to exactly 32 bytes.
	addr, err := ParseAddress("So11111111111111111111111111111111111111112")
	require.NoError(t, err)
	assert.Equal(t, AddressFamilyBase58, addr.Family())
}

func TestParseAddress_Invalid(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"short hex prefix", "0x1234"},
		{"hex prefix 39 chars total", "0x1234567890123456789012345678901234567"},
		{"plain word", "hello"},
		{"base58 too short", "3mJr7AoUXx2Wqd"},
		{"invalid base58 runes", "0OIl+/=="},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAddress(tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidAddressFormat)
		})
	}
}

func TestParseAddress_HexMinimumLength(t *testing.T) {
	// Exactly 40 characters total, prefix included, is accepted.
	addr, err := ParseAddress("0x12345678901234567890123456789012345678")
	require.NoError(t, err)
	assert.Equal(t, AddressFamilyHex, addr.Family())
}
