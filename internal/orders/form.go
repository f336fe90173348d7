package orders

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

// FeeRate is the estimated taker fee shown under the order total.
const FeeRate = 0.001

// AmountDecimals is the precision of slider-derived amounts.
const AmountDecimals = 6

type Balance struct {
	USD    float64
	Crypto float64
}

// Form is the order form state. Price is ignored for market orders.
type Form struct {
	Side   types.Side
	Type   types.OrderType
	Amount float64
	Price  float64
}

// MaxAmount is what the balance allows: USD over the ticker price when buying,
// the crypto balance when selling. A non-positive price allows nothing to be bought.
func MaxAmount(side types.Side, balance Balance, price float64) float64 {
	if side == types.SideSell {
		return balance.Crypto
	}
	if !(price > 0) {
		return 0
	}
	return balance.USD / price
}

// AmountFromSlider converts a 0..100 slider position into an amount.
func AmountFromSlider(max, pct float64) float64 {
	pct = math.Max(0, math.Min(100, pct))
	amount, _ := decimal.NewFromFloat(max).
		Mul(decimal.NewFromFloat(pct)).
		Div(decimal.NewFromInt(100)).
		Round(AmountDecimals).
		Float64()
	return amount
}

// SliderFromAmount is the inverse of AmountFromSlider, capped at 100.
func SliderFromAmount(amount, max float64) float64 {
	if !(max > 0) || !(amount > 0) {
		return 0
	}
	return math.Min(100, amount/max*100)
}

// Total is amount times price.
func Total(amount, price float64) float64 {
	return amount * price
}

// Fee estimates the fee on total.
func Fee(total float64) float64 {
	return total * FeeRate
}

// EffectivePrice is the price the form submits: the ticker price for market
// orders, the typed price otherwise.
func (f Form) EffectivePrice(ticker types.Ticker) float64 {
	if f.Type == types.OrderTypeMarket {
		return ticker.Price
	}
	return f.Price
}

// Total of the form at its effective price.
func (f Form) Total(ticker types.Ticker) float64 {
	return Total(f.Amount, f.EffectivePrice(ticker))
}

// Fee of the form at its effective price.
func (f Form) Fee(ticker types.Ticker) float64 {
	return Fee(f.Total(ticker))
}
