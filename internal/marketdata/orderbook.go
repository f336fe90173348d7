package marketdata

import (
	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

// GenerateOrderBook builds a depth ladder of levels bids and asks around price.
// Level i (1-based) sits at price*(1∓i*LevelStep); totals accumulate outward
// from the best price on each side.
func (g *Generator) GenerateOrderBook(price float64, levels int) (types.OrderBook, error) {
	if err := validateInput("generate order book", price, levels); err != nil {
		return types.OrderBook{}, err
	}

	bids := make([]types.OrderBookEntry, 0, levels)
	asks := make([]types.OrderBookEntry, 0, levels)

	var bidTotal, askTotal float64
	for i := 1; i <= levels; i++ {
		offset := float64(i) * g.cfg.LevelStep

		bidAmount := g.uniform(g.cfg.MinLevelAmount, g.cfg.LevelAmountSpan)
		bidTotal += bidAmount
		bids = append(bids, types.OrderBookEntry{
			Price:  price * (1 - offset),
			Amount: bidAmount,
			Total:  bidTotal,
		})

		askAmount := g.uniform(g.cfg.MinLevelAmount, g.cfg.LevelAmountSpan)
		askTotal += askAmount
		asks = append(asks, types.OrderBookEntry{
			Price:  price * (1 + offset),
			Amount: askAmount,
			Total:  askTotal,
		})
	}

	spread := asks[0].Price - bids[0].Price
	return types.OrderBook{
		Bids:          bids,
		Asks:          asks,
		Spread:        spread,
		SpreadPercent: spread / price * 100,
	}, nil
}
