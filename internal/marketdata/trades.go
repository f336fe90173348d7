package marketdata

import (
	"fmt"
	"math"
	"time"

	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

// GenerateTrades walks a price backward in time from price and returns count
// trades, newest first. Trade i is stamped i*TradeSpacing before now and every
// price stays inside price*(1±TradeBand).
func (g *Generator) GenerateTrades(price float64, count int) ([]types.Trade, error) {
	if err := validateInput("generate trades", price, count); err != nil {
		return nil, err
	}

	floor := price * (1 - g.cfg.TradeBand)
	ceiling := price * (1 + g.cfg.TradeBand)
	now := g.now()

	trades := make([]types.Trade, 0, count)
	current := price
	for i := 0; i < count; i++ {
		side := types.SideSell
		if g.src.Float64() > 0.5 {
			side = types.SideBuy
		}

		// Uniform in [-drift*price, +drift*price).
		delta := (g.src.Float64() - 0.5) * price * g.cfg.TradeDrift * 2
		current = math.Max(floor, math.Min(ceiling, current+delta))

		trades = append(trades, types.Trade{
			ID:        fmt.Sprintf("trade-%d", i),
			Price:     current,
			Amount:    g.uniform(g.cfg.MinTradeAmount, g.cfg.TradeAmountSpan),
			Side:      side,
			Timestamp: now.Add(-time.Duration(i) * g.cfg.TradeSpacing),
		})
	}

	return trades, nil
}
