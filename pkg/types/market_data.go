package types

import (
	"fmt"
	"time"
)

// Ticker is a display snapshot of one tradable instrument.
type Ticker struct {
	Symbol           string  `yaml:"symbol" json:"symbol"`
	Name             string  `yaml:"name" json:"name"`
	Price            float64 `yaml:"price" json:"price"`
	Change24h        float64 `yaml:"change_24h" json:"change_24h"`
	ChangePercent24h float64 `yaml:"change_percent_24h" json:"change_percent_24h"`
	High24h          float64 `yaml:"high_24h" json:"high_24h"`
	Low24h           float64 `yaml:"low_24h" json:"low_24h"`
	Volume24h        float64 `yaml:"volume_24h" json:"volume_24h"`
	MarketCap        float64 `yaml:"market_cap" json:"market_cap"`
	Icon             string  `yaml:"icon" json:"icon"`
}

// IsPositive reports whether the 24h change is non-negative.
func (t Ticker) IsPositive() bool {
	return t.ChangePercent24h >= 0
}

// OrderBookEntry is one level of a book side. Total is the running sum of
// amounts from the best price up to and including this level.
type OrderBookEntry struct {
	Price  float64
	Amount float64
	Total  float64
}

// OrderBook holds bids best (highest) first and asks best (lowest) first.
type OrderBook struct {
	Bids          []OrderBookEntry
	Asks          []OrderBookEntry
	Spread        float64
	SpreadPercent float64
}

// BestBid returns the highest bid, if any.
func (ob OrderBook) BestBid() (OrderBookEntry, bool) {
	if len(ob.Bids) == 0 {
		return OrderBookEntry{}, false
	}
	return ob.Bids[0], true
}

// BestAsk returns the lowest ask, if any.
func (ob OrderBook) BestAsk() (OrderBookEntry, bool) {
	if len(ob.Asks) == 0 {
		return OrderBookEntry{}, false
	}
	return ob.Asks[0], true
}

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Title returns "Buy" or "Sell".
func (s Side) Title() string {
	switch s {
	case SideBuy:
		return "Buy"
	case SideSell:
		return "Sell"
	}
	return string(s)
}

func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideBuy, SideSell:
		return Side(s), nil
	}
	return "", fmt.Errorf("unknown order side %q", s)
}

// Trade is a synthetic executed trade.
type Trade struct {
	ID        string
	Price     float64
	Amount    float64
	Side      Side
	Timestamp time.Time
}

// Candle is one OHLCV bar; Time is the bar-open instant.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// IsBullish reports whether the bar closed at or above its open.
func (c Candle) IsBullish() bool {
	return c.Close >= c.Open
}

type OrderType string

const (
	OrderTypeMarket OrderType = "market"
	OrderTypeLimit  OrderType = "limit"
	OrderTypeStop   OrderType = "stop"
)

// Title returns the capitalised type name used in notifications.
func (t OrderType) Title() string {
	switch t {
	case OrderTypeMarket:
		return "Market"
	case OrderTypeLimit:
		return "Limit"
	case OrderTypeStop:
		return "Stop"
	}
	return string(t)
}

func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(s) {
	case OrderTypeMarket, OrderTypeLimit, OrderTypeStop:
		return OrderType(s), nil
	}
	return "", fmt.Errorf("unknown order type %q", s)
}

type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusPartial   OrderStatus = "partial"
	OrderStatusFilled    OrderStatus = "filled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is cosmetic: it lives only as long as the view holding it.
type Order struct {
	ID        string
	Symbol    string
	Side      Side
	Type      OrderType
	Price     *float64 // nil for market orders
	Amount    float64
	Filled    float64
	Status    OrderStatus
	Timestamp time.Time
}

// LimitPrice returns the order price or 0 when unset.
func (o Order) LimitPrice() float64 {
	if o.Price == nil {
		return 0
	}
	return *o.Price
}

// FillPercent returns filled/amount as a percentage; 0 for an empty order.
func (o Order) FillPercent() float64 {
	if o.Amount <= 0 {
		return 0
	}
	return o.Filled / o.Amount * 100
}

// Position is a static portfolio row; PnL fields are fixture data.
type Position struct {
	Symbol       string
	Amount       float64
	AvgPrice     float64
	CurrentPrice float64
	PnL          float64
	PnLPercent   float64
}

// Value returns the position's display value at the current price.
func (p Position) Value() float64 {
	return p.Amount * p.CurrentPrice
}

type Portfolio struct {
	TotalValue      float64
	TotalPnL        float64
	TotalPnLPercent float64
	Positions       []Position
}

// Timeframe is the chart bucket selector. It is stored for display only and
// does not change candle synthesis.
type Timeframe string

const (
	Timeframe1m  Timeframe = "1m"
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe1h  Timeframe = "1h"
	Timeframe4h  Timeframe = "4h"
	Timeframe1d  Timeframe = "1d"
	Timeframe1w  Timeframe = "1w"
)

// Timeframes lists the selectable timeframes in display order.
var Timeframes = []Timeframe{
	Timeframe1m, Timeframe5m, Timeframe15m, Timeframe1h, Timeframe4h, Timeframe1d, Timeframe1w,
}

func ParseTimeframe(s string) (Timeframe, error) {
	for _, tf := range Timeframes {
		if string(tf) == s {
			return tf, nil
		}
	}
	return "", fmt.Errorf("unknown timeframe %q", s)
}

// FlashDirection is the transient price pulse shown by the ticker.
type FlashDirection string

const (
	FlashNone FlashDirection = ""
	FlashUp   FlashDirection = "up"
	FlashDown FlashDirection = "down"
)
