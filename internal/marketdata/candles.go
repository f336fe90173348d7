package marketdata

import (
	"math"
	"time"

	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

// GenerateCandles returns count contiguous bars, oldest first, ending at now.
// The walk starts at CandleStart*price and each close moves by
// (u-DriftCenter)*open*Volatility. Wicks are added on top of the body so
// High >= max(Open, Close) and Low <= min(Open, Close) hold for every bar.
func (g *Generator) GenerateCandles(price float64, count int) ([]types.Candle, error) {
	if err := validateInput("generate candles", price, count); err != nil {
		return nil, err
	}

	now := g.now()
	interval := g.cfg.CandleInterval
	candles := make([]types.Candle, 0, count)

	running := price * g.cfg.CandleStart
	for remaining := count - 1; remaining >= 0; remaining-- {
		open := running
		change := (g.src.Float64() - g.cfg.DriftCenter) * open * g.cfg.Volatility
		closePrice := open + change
		high := math.Max(open, closePrice) + g.src.Float64()*open*g.cfg.WickRange
		low := math.Min(open, closePrice) - g.src.Float64()*open*g.cfg.WickRange

		candles = append(candles, types.Candle{
			Time:   now.Add(-time.Duration(remaining) * interval),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: g.uniform(g.cfg.MinVolume, g.cfg.VolumeSpan),
		})

		running = closePrice
	}

	return candles, nil
}
