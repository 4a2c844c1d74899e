package service

import (
	"strings"
	"testing"

	"bubblemap_bot/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{999, "999.00"},
		{0, "0.00"},
		{1_500, "1.50K"},
		{1_500_000, "1.50M"},
		{2_300_000_000, "2.30B"},
		{4_200_000_000_000, "4.20T"},
		{1_000, "1.00K"},
		{999_999, "1000.00K"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatNumber(tc.in), "FormatNumber(%v)", tc.in)
	}
}

func resolvedTokenFixture(t *testing.T) *entity.ResolvedToken {
	t.Helper()
	addr, err := entity.ParseAddress("0xc00e94cb662c3520282e6f5717214004a7f26888")
	require.NoError(t, err)
	return &entity.ResolvedToken{
		Address:     addr,
		Chain:       entity.ChainEthereum,
		Name:        "Compound",
		Symbol:      "COMP",
		PriceUsd:    "42.50",
		PriceNative: "0.013",
	}
}

func TestComposeTokenInfo_MinimalFields(t *testing.T) {
	token := resolvedTokenFixture(t)
	msg := ComposeTokenInfo(token)

	assert.Contains(t, msg, "*Compound (COMP)*")
	assert.Contains(t, msg, "🔗 *Chain:* ETHEREUM")
	assert.Contains(t, msg, "`0xc00e94cb662c3520282e6f5717214004a7f26888`")
	assert.Contains(t, msg, "💰 *Price:* $42.50")

	// Absent optional metrics drop their lines entirely.
	assert.NotContains(t, msg, "24h Volume")
	assert.NotContains(t, msg, "Liquidity")
	assert.NotContains(t, msg, "Market Cap")
	assert.NotContains(t, msg, "FDV")
	assert.NotContains(t, msg, "BubbleMap Metrics")
}

func TestComposeTokenInfo_AllFields(t *testing.T) {
	token := resolvedTokenFixture(t)
	token.VolumeH24 = floatPtr(1_500_000)
	token.LiquidityUsd = floatPtr(250_000)
	token.MarketCap = floatPtr(2_300_000_000)
	token.Fdv = floatPtr(3_000_000_000)
	token.Metadata = &entity.HolderMetadata{
		DecentralisationScore: floatPtr(71.456),
		PercentInCEXs:         floatPtr(12.3),
		PercentInContracts:    floatPtr(4),
	}

	msg := ComposeTokenInfo(token)

	assert.Contains(t, msg, "📊 *24h Volume:* $1.50M")
	assert.Contains(t, msg, "💧 *Liquidity:* $250.00K")
	assert.Contains(t, msg, "📈 *Market Cap:* $2.30B")
	assert.Contains(t, msg, "🌐 *FDV:* $3.00B")
	assert.Contains(t, msg, "*BubbleMap Metrics:*")
	assert.Contains(t, msg, "🏆 *Decentralization Score:* 71.46/100")
	assert.Contains(t, msg, "📊 *% in CEXs:* 12.30%")
	assert.Contains(t, msg, "📝 *% in Contracts:* 4.00%")
}

func TestComposeTokenInfo_UnknownPlaceholders(t *testing.T) {
	token := resolvedTokenFixture(t)
	token.Name = ""
	token.Symbol = ""
	token.PriceUsd = ""

	msg := ComposeTokenInfo(token)

	assert.Contains(t, msg, "*Unknown (Unknown)*")
	assert.Contains(t, msg, "💰 *Price:* $Unknown")
}

func TestComposeDegradedReply_KeepsBothParts(t *testing.T) {
	token := resolvedTokenFixture(t)
	info := ComposeTokenInfo(token)
	renderErr := &entity.RenderError{Kind: entity.RenderFailureNoMapData, Chain: token.Chain}

	reply := ComposeDegradedReply(renderErr.UserMessage(), info)

	assert.True(t, strings.HasPrefix(reply, "No bubble map data available for this token.\n\n"))
	assert.Contains(t, reply, "*Compound (COMP)*")
	assert.Contains(t, reply, "💰 *Price:* $42.50")
}

func floatPtr(v float64) *float64 {
	return &v
}
