// Package portfolio provides the demo portfolio and the figures the summary
// panel shows for it. Nothing here is recomputed from live prices.
package portfolio

import (
	"fmt"
	"math"

	"github.com/ducminhle1904/nextrade-dashboard/internal/format"
	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

// Fixture returns the demo portfolio.
func Fixture() types.Portfolio {
	return types.Portfolio{
		TotalValue:      156847.32,
		TotalPnL:        12453.65,
		TotalPnLPercent: 8.62,
		Positions: []types.Position{
			{Symbol: "BTC", Amount: 1.234, AvgPrice: 94500, CurrentPrice: 97432.18, PnL: 3619.05, PnLPercent: 3.10},
			{Symbol: "ETH", Amount: 8.5, AvgPrice: 3650, CurrentPrice: 3842.67, PnL: 1637.70, PnLPercent: 5.28},
			{Symbol: "SOL", Amount: 45, AvgPrice: 220, CurrentPrice: 234.82, PnL: 666.90, PnLPercent: 6.74},
		},
	}
}

// PositionRow is one formatted line of the positions list.
type PositionRow struct {
	Symbol   string
	Holding  string
	Value    string
	PnL      string
	Positive bool
}

// Rows formats each position as "<amount 4dp> @ $<avg 2dp>" with its value
// and signed PnL percent.
func Rows(p types.Portfolio) []PositionRow {
	rows := make([]PositionRow, 0, len(p.Positions))
	for _, pos := range p.Positions {
		rows = append(rows, PositionRow{
			Symbol:   pos.Symbol,
			Holding:  fmt.Sprintf("%s @ %s", format.Fixed(pos.Amount, 4), format.USD(pos.AvgPrice)),
			Value:    format.USD(pos.Value()),
			PnL:      format.SignedPercent(pos.PnLPercent),
			Positive: pos.PnLPercent >= 0,
		})
	}
	return rows
}

// Headline is the total value line and the absolute PnL with its percent.
// The sign is carried by the percent only.
func Headline(p types.Portfolio) (value, pnl string, positive bool) {
	value = format.USD(p.TotalValue)
	pnl = fmt.Sprintf("%s (%s)", format.USD(math.Abs(p.TotalPnL)), format.SignedPercent(p.TotalPnLPercent))
	return value, pnl, p.TotalPnLPercent >= 0
}

// Allocation returns each position's share of the summed position values in
// percent. An empty or zero-valued portfolio yields zeros.
func Allocation(p types.Portfolio) map[string]float64 {
	out := make(map[string]float64, len(p.Positions))

	var sum float64
	for _, pos := range p.Positions {
		sum += pos.Value()
	}
	for _, pos := range p.Positions {
		if sum <= 0 {
			out[pos.Symbol] = 0
			continue
		}
		out[pos.Symbol] = pos.Value() / sum * 100
	}
	return out
}
