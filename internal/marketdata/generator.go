// Package marketdata synthesizes the mock order book, trade tape and candle
// history that drive the dashboard.
package marketdata

import (
	"math"
	"time"

	dasherrors "github.com/ducminhle1904/nextrade-dashboard/internal/errors"
)

const component = "marketdata"

// GeneratorConfig holds the shape parameters of every synthesizer.
type GeneratorConfig struct {
	// Order book
	Levels          int     // levels per side
	LevelStep       float64 // fractional price distance between levels
	MinLevelAmount  float64
	LevelAmountSpan float64 // amounts are drawn from [MinLevelAmount, MinLevelAmount+LevelAmountSpan)

	// Trade tape
	TradeCount      int
	TradeSpacing    time.Duration
	TradeDrift      float64 // max per-trade move as a fraction of the reference price
	TradeBand       float64 // prices stay within reference*(1±TradeBand)
	MinTradeAmount  float64
	TradeAmountSpan float64

	// Candles
	CandleCount    int
	CandleInterval time.Duration
	CandleStart    float64 // first open as a fraction of the reference price
	Volatility     float64
	DriftCenter    float64 // draws below this move price down; 0.48 gives an upward bias
	WickRange      float64 // max wick excess as a fraction of the bar open
	MinVolume      float64
	VolumeSpan     float64
}

// DefaultGeneratorConfig returns the reference generator shape
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Levels:          15,
		LevelStep:       0.0002,
		MinLevelAmount:  0.1,
		LevelAmountSpan: 5,

		TradeCount:      20,
		TradeSpacing:    30 * time.Second,
		TradeDrift:      0.0005,
		TradeBand:       0.01,
		MinTradeAmount:  0.01,
		TradeAmountSpan: 2,

		CandleCount:    100,
		CandleInterval: time.Hour,
		CandleStart:    0.85,
		Volatility:     0.02,
		DriftCenter:    0.48,
		WickRange:      0.01,
		MinVolume:      100000,
		VolumeSpan:     1000000,
	}
}

// Validate checks that the configuration produces well-formed output.
func (c GeneratorConfig) Validate() error {
	switch {
	case c.Levels <= 0:
		return dasherrors.Validation(component, "validate config", "levels must be positive, got %d", c.Levels)
	case c.LevelStep <= 0:
		return dasherrors.Validation(component, "validate config", "level step must be positive, got %f", c.LevelStep)
	case c.MinLevelAmount <= 0 || c.LevelAmountSpan < 0:
		return dasherrors.Validation(component, "validate config", "level amounts must be positive")
	case c.TradeCount <= 0:
		return dasherrors.Validation(component, "validate config", "trade count must be positive, got %d", c.TradeCount)
	case c.TradeSpacing <= 0:
		return dasherrors.Validation(component, "validate config", "trade spacing must be positive, got %s", c.TradeSpacing)
	case c.TradeBand < 0 || c.TradeDrift < 0:
		return dasherrors.Validation(component, "validate config", "trade band and drift must not be negative")
	case c.MinTradeAmount <= 0 || c.TradeAmountSpan < 0:
		return dasherrors.Validation(component, "validate config", "trade amounts must be positive")
	case c.CandleCount <= 0:
		return dasherrors.Validation(component, "validate config", "candle count must be positive, got %d", c.CandleCount)
	case c.CandleInterval <= 0:
		return dasherrors.Validation(component, "validate config", "candle interval must be positive, got %s", c.CandleInterval)
	case c.CandleStart <= 0:
		return dasherrors.Validation(component, "validate config", "candle start must be positive, got %f", c.CandleStart)
	case c.Volatility < 0 || c.WickRange < 0:
		return dasherrors.Validation(component, "validate config", "volatility and wick range must not be negative")
	case c.MinVolume <= 0 || c.VolumeSpan < 0:
		return dasherrors.Validation(component, "validate config", "volume must be positive")
	}
	return nil
}

// Generator synthesizes market data around a reference price. It is not safe
// for concurrent use; callers serialize access to it.
type Generator struct {
	cfg GeneratorConfig
	src Source
	now func() time.Time
}

// NewGenerator creates a generator drawing from src.
func NewGenerator(cfg GeneratorConfig, src Source) *Generator {
	return &Generator{
		cfg: cfg,
		src: src,
		now: time.Now,
	}
}

// WithClock replaces the wall clock used to stamp trades and candles.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Config returns the generator configuration.
func (g *Generator) Config() GeneratorConfig {
	return g.cfg
}

// uniform draws from [min, min+span).
func (g *Generator) uniform(min, span float64) float64 {
	return g.src.Float64()*span + min
}

func validateInput(operation string, price float64, count int) error {
	if !(price > 0) || math.IsInf(price, 0) {
		return dasherrors.Validation(component, operation, "reference price must be positive and finite, got %f", price).
			WithContext("price", price)
	}
	if count <= 0 {
		return dasherrors.Validation(component, operation, "count must be positive, got %d", count).
			WithContext("count", count)
	}
	return nil
}
