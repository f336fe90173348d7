// Package chart computes the numeric layout the dashboard views need: depth
// bar widths, candle price scaling, volume bar heights and bar-to-bar change.
//
// Every ratio divides by a range or maximum taken from the data. When that
// divisor is zero (a flat window, an empty side) the ratio is reported as 1,
// a full bar, instead of NaN or Inf.
package chart

import (
	"math"

	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

// GridRatios are the fractions of the price range where grid lines are drawn.
var GridRatios = []float64{0, 0.25, 0.5, 0.75, 1}

// safeRatio returns num/den clamped to [0, 1], or 1 when den is not positive.
func safeRatio(num, den float64) float64 {
	if !(den > 0) {
		return 1
	}
	r := num / den
	if math.IsNaN(r) {
		return 1
	}
	return math.Max(0, math.Min(1, r))
}

// MaxDepthTotal returns the largest cumulative total across both book sides.
func MaxDepthTotal(book types.OrderBook) float64 {
	var max float64
	for _, e := range book.Bids {
		max = math.Max(max, e.Total)
	}
	for _, e := range book.Asks {
		max = math.Max(max, e.Total)
	}
	return max
}

// DepthPercent returns the width of a level's depth bar as a percentage of the
// deepest total in the book.
func DepthPercent(entry types.OrderBookEntry, maxTotal float64) float64 {
	return safeRatio(entry.Total, maxTotal) * 100
}

// PriceScale maps prices in [Min, Max] onto a vertical pixel axis.
type PriceScale struct {
	Min     float64
	Max     float64
	Height  float64
	Padding float64
}

// NewPriceScale spans the highs and lows of candles.
func NewPriceScale(candles []types.Candle, height, padding float64) PriceScale {
	scale := PriceScale{Height: height, Padding: padding}
	if len(candles) == 0 {
		return scale
	}

	scale.Min = math.Inf(1)
	scale.Max = math.Inf(-1)
	for _, c := range candles {
		scale.Min = math.Min(scale.Min, c.Low)
		scale.Max = math.Max(scale.Max, c.High)
	}
	return scale
}

// Range returns Max - Min.
func (s PriceScale) Range() float64 {
	return s.Max - s.Min
}

// Ratio returns the position of price within the range, 0 at Min and 1 at Max.
func (s PriceScale) Ratio(price float64) float64 {
	return safeRatio(price-s.Min, s.Range())
}

// Y returns the pixel row of price, with Max at the top padding line.
func (s PriceScale) Y(price float64) float64 {
	return s.Height - s.Ratio(price)*(s.Height-s.Padding*2) - s.Padding
}

// GridLine is a horizontal price guide.
type GridLine struct {
	Ratio float64
	Price float64
	Y     float64
}

// GridLines returns one line per GridRatios entry.
func (s PriceScale) GridLines() []GridLine {
	lines := make([]GridLine, 0, len(GridRatios))
	for _, r := range GridRatios {
		price := s.Min + s.Range()*r
		lines = append(lines, GridLine{Ratio: r, Price: price, Y: s.Y(price)})
	}
	return lines
}

// MaxVolume returns the largest candle volume.
func MaxVolume(candles []types.Candle) float64 {
	var max float64
	for _, c := range candles {
		max = math.Max(max, c.Volume)
	}
	return max
}

// VolumeRatio returns a bar's volume relative to maxVolume.
func VolumeRatio(c types.Candle, maxVolume float64) float64 {
	return safeRatio(c.Volume, maxVolume)
}

// Change describes the move of the last bar against the one before it.
type Change struct {
	Last    float64
	Delta   float64
	Percent float64
}

// LastChange compares the last close with the previous close, or with the last
// open when there is only one bar. Percent is 0 without a previous bar.
func LastChange(candles []types.Candle) (Change, bool) {
	if len(candles) == 0 {
		return Change{}, false
	}

	last := candles[len(candles)-1]
	if len(candles) == 1 {
		return Change{Last: last.Close, Delta: last.Close - last.Open}, true
	}

	prev := candles[len(candles)-2]
	change := Change{Last: last.Close, Delta: last.Close - prev.Close}
	if prev.Close != 0 {
		change.Percent = change.Delta / prev.Close * 100
	}
	return change, true
}
