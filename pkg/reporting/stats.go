package reporting

import (
	"math"

	"github.com/ducminhle1904/nextrade-dashboard/internal/format"
	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

// Stat is one cell of the market stats strip. Sub is the optional second
// line; Signed marks values coloured by Positive.
type Stat struct {
	Label    string
	Value    string
	Sub      string
	Signed   bool
	Positive bool
}

// MarketStats returns the 24h figures for ticker in display order.
func MarketStats(t types.Ticker) []Stat {
	return []Stat{
		{
			Label:    "24h Change",
			Value:    format.USD(math.Abs(t.Change24h)),
			Sub:      format.SignedPercent(t.ChangePercent24h),
			Signed:   true,
			Positive: t.IsPositive(),
		},
		{Label: "24h High", Value: format.USD(t.High24h)},
		{Label: "24h Low", Value: format.USD(t.Low24h)},
		{Label: "24h Volume", Value: format.AbbreviatedCurrency(t.Volume24h)},
		{Label: "Market Cap", Value: format.AbbreviatedCurrency(t.MarketCap)},
	}
}

// FlashMarker is the glyph shown next to a flashing price.
func FlashMarker(dir types.FlashDirection) string {
	switch dir {
	case types.FlashUp:
		return "▲"
	case types.FlashDown:
		return "▼"
	}
	return ""
}
