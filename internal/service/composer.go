package service

import (
	"fmt"
	"strconv"
	"strings"

	"bubblemap_bot/internal/entity"
)

// unknownValue is the placeholder for any field the market provider omitted.
const unknownValue = "Unknown"

// ComposeTokenInfo formats a resolved token into the Markdown caption sent to
// the user. Optional market fields render as "Unknown" or drop their line;
// the BubbleMap metrics block appears only when holder metadata is present.
func ComposeTokenInfo(token *entity.ResolvedToken) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s (%s)*\n\n", orUnknown(token.Name), orUnknown(token.Symbol))
	fmt.Fprintf(&b, "🔗 *Chain:* %s\n", strings.ToUpper(token.Chain.ProviderID()))
	fmt.Fprintf(&b, "📝 *Contract:* `%s`\n", token.Address.String())
	fmt.Fprintf(&b, "💰 *Price:* $%s\n", orUnknown(token.PriceUsd))

	if token.VolumeH24 != nil {
		fmt.Fprintf(&b, "📊 *24h Volume:* $%s\n", FormatNumber(*token.VolumeH24))
	}
	if token.LiquidityUsd != nil {
		fmt.Fprintf(&b, "💧 *Liquidity:* $%s\n", FormatNumber(*token.LiquidityUsd))
	}
	if token.MarketCap != nil {
		fmt.Fprintf(&b, "📈 *Market Cap:* $%s\n", FormatNumber(*token.MarketCap))
	}
	if token.Fdv != nil {
		fmt.Fprintf(&b, "🌐 *FDV:* $%s\n", FormatNumber(*token.Fdv))
	}

	if meta := token.Metadata; meta != nil {
		b.WriteString("\n*BubbleMap Metrics:*\n")
		if meta.DecentralisationScore != nil {
			fmt.Fprintf(&b, "🏆 *Decentralization Score:* %s/100\n", FormatPercent(*meta.DecentralisationScore))
		}
		if meta.PercentInCEXs != nil {
			fmt.Fprintf(&b, "📊 *%% in CEXs:* %s%%\n", FormatPercent(*meta.PercentInCEXs))
		}
		if meta.PercentInContracts != nil {
			fmt.Fprintf(&b, "📝 *%% in Contracts:* %s%%\n", FormatPercent(*meta.PercentInContracts))
		}
	}

	return b.String()
}

// ComposeDegradedReply prepends a render failure reason to the token info
// text. The token info is always delivered; losing the image never loses the
// resolution work.
func ComposeDegradedReply(reason string, tokenInfo string) string {
	return reason + "\n\n" + tokenInfo
}

// FormatNumber renders a value with the smallest applicable magnitude suffix
// and two-decimal precision: 1_500_000 -> "1.50M", 999 -> "999.00".
func FormatNumber(value float64) string {
	switch {
	case value >= 1_000_000_000_000:
		return strconv.FormatFloat(value/1_000_000_000_000, 'f', 2, 64) + "T"
	case value >= 1_000_000_000:
		return strconv.FormatFloat(value/1_000_000_000, 'f', 2, 64) + "B"
	case value >= 1_000_000:
		return strconv.FormatFloat(value/1_000_000, 'f', 2, 64) + "M"
	case value >= 1_000:
		return strconv.FormatFloat(value/1_000, 'f', 2, 64) + "K"
	default:
		return strconv.FormatFloat(value, 'f', 2, 64)
	}
}

// FormatPercent renders a percentage-like value with two-decimal precision.
func FormatPercent(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func orUnknown(value string) string {
	if value == "" {
		return unknownValue
	}
	return value
}
