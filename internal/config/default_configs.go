package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	dasherrors "github.com/ducminhle1904/nextrade-dashboard/internal/errors"
	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

// DefaultInstruments returns the built-in instrument catalogue
func DefaultInstruments() []types.Ticker {
	return []types.Ticker{
		{
			Symbol: "BTC", Name: "Bitcoin", Price: 97432.18,
			Change24h: 2341.50, ChangePercent24h: 2.46,
			High24h: 98150.00, Low24h: 94820.00,
			Volume24h: 28453000000, MarketCap: 1920000000000, Icon: "₿",
		},
		{
			Symbol: "ETH", Name: "Ethereum", Price: 3842.67,
			Change24h: -52.33, ChangePercent24h: -1.34,
			High24h: 3920.00, Low24h: 3780.00,
			Volume24h: 15230000000, MarketCap: 462000000000, Icon: "Ξ",
		},
		{
			Symbol: "SOL", Name: "Solana", Price: 234.82,
			Change24h: 12.45, ChangePercent24h: 5.60,
			High24h: 238.50, Low24h: 218.00,
			Volume24h: 4820000000, MarketCap: 112000000000, Icon: "◎",
		},
		{
			Symbol: "XRP", Name: "Ripple", Price: 2.34,
			Change24h: 0.15, ChangePercent24h: 6.85,
			High24h: 2.42, Low24h: 2.15,
			Volume24h: 8920000000, MarketCap: 134000000000, Icon: "✕",
		},
		{
			Symbol: "ADA", Name: "Cardano", Price: 1.12,
			Change24h: -0.03, ChangePercent24h: -2.61,
			High24h: 1.18, Low24h: 1.08,
			Volume24h: 1230000000, MarketCap: 39500000000, Icon: "₳",
		},
		{
			Symbol: "AVAX", Name: "Avalanche", Price: 52.34,
			Change24h: 3.21, ChangePercent24h: 6.53,
			High24h: 54.20, Low24h: 48.50,
			Volume24h: 890000000, MarketCap: 21300000000, Icon: "🔺",
		},
	}
}

type instrumentsFile struct {
	Instruments []types.Ticker `yaml:"instruments"`
}

// LoadInstruments reads a YAML catalogue, or returns the built-in one when
// path is empty.
func LoadInstruments(path string) ([]types.Ticker, error) {
	if path == "" {
		return DefaultInstruments(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dasherrors.WrapError(err, dasherrors.ErrorCategoryConfiguration, "config", "read instruments")
	}

	return ParseInstruments(data)
}

// ParseInstruments decodes and validates a YAML catalogue.
func ParseInstruments(data []byte) ([]types.Ticker, error) {
	var file instrumentsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, dasherrors.WrapError(err, dasherrors.ErrorCategoryConfiguration, "config", "parse instruments")
	}

	for i := range file.Instruments {
		file.Instruments[i].Symbol = strings.ToUpper(strings.TrimSpace(file.Instruments[i].Symbol))
	}

	if err := ValidateInstruments(file.Instruments); err != nil {
		return nil, err
	}
	return file.Instruments, nil
}

// ValidateInstruments requires a non-empty list of unique symbols with
// positive prices.
func ValidateInstruments(tickers []types.Ticker) error {
	if len(tickers) == 0 {
		return configError("validate instruments", "instrument catalogue is empty")
	}

	seen := make(map[string]struct{}, len(tickers))
	for i, t := range tickers {
		if t.Symbol == "" {
			return configError("validate instruments", fmt.Sprintf("instrument %d has no symbol", i))
		}
		if _, dup := seen[t.Symbol]; dup {
			return configError("validate instruments", fmt.Sprintf("duplicate symbol %s", t.Symbol))
		}
		seen[t.Symbol] = struct{}{}

		if !(t.Price > 0) || math.IsInf(t.Price, 0) {
			return configError("validate instruments", fmt.Sprintf("%s price must be positive and finite, got %f", t.Symbol, t.Price))
		}
	}
	return nil
}
