package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dasherrors "github.com/ducminhle1904/nextrade-dashboard/internal/errors"
	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "BTC", cfg.Market.DefaultSymbol)
	assert.Equal(t, types.Timeframe1h, cfg.Market.DefaultTimeframe)
	assert.Equal(t, []string{"BTC", "ETH"}, cfg.Market.Favorites)
	assert.Equal(t, 15, cfg.Generator.Levels)
	assert.Equal(t, 20, cfg.Generator.TradeCount)
	assert.Equal(t, 100, cfg.Generator.CandleCount)
	assert.Equal(t, 3*time.Second, cfg.Flash.Period)
	assert.Equal(t, 500*time.Millisecond, cfg.Flash.Duration)
	assert.Equal(t, 50000.0, cfg.Balance.USD)
	assert.Equal(t, 2.5, cfg.Balance.Crypto)
	assert.Equal(t, 4*time.Second, cfg.Notifications.ToastTTL)
	assert.Empty(t, cfg.Notifications.TelegramToken)
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DASHBOARD_LEVELS=8\nDASHBOARD_DEFAULT_SYMBOL=sol\n"), 0644))
	t.Cleanup(func() {
		os.Unsetenv("DASHBOARD_LEVELS")
		os.Unsetenv("DASHBOARD_DEFAULT_SYMBOL")
	})
	t.Setenv("DASHBOARD_SEED", "42")
	t.Setenv("DASHBOARD_CANDLE_INTERVAL", "15m")

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Generator.Levels)
	assert.Equal(t, "SOL", cfg.Market.DefaultSymbol)
	assert.Equal(t, int64(42), cfg.Market.Seed)
	assert.Equal(t, 15*time.Minute, cfg.Generator.CandleInterval)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero levels", "DASHBOARD_LEVELS", "0"},
		{"unknown timeframe", "DASHBOARD_DEFAULT_TIMEFRAME", "2h"},
		{"flash longer than period", "DASHBOARD_FLASH_DURATION", "5s"},
		{"negative balance", "DASHBOARD_BALANCE_USD", "-1"},
		{"nan balance", "DASHBOARD_BALANCE_USD", "NaN"},
		{"infinite crypto balance", "DASHBOARD_BALANCE_CRYPTO", "+Inf"},
		{"zero toast ttl", "DASHBOARD_TOAST_TTL", "0s"},
		{"telegram token without chat", "DASHBOARD_TELEGRAM_TOKEN", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load("")
			require.Error(t, err)
			assert.True(t, dasherrors.IsCategory(err, dasherrors.ErrorCategoryConfiguration))
		})
	}
}

func TestDefaultInstruments(t *testing.T) {
	tickers := DefaultInstruments()

	require.Len(t, tickers, 6)
	assert.Equal(t, "BTC", tickers[0].Symbol)
	assert.Equal(t, 234.82, tickers[2].Price)
	assert.NoError(t, ValidateInstruments(tickers))
}

func TestParseInstruments(t *testing.T) {
	data := []byte(`
instruments:
  - symbol: doge
    name: Dogecoin
    price: 0.42
    change_percent_24h: -3.1
    volume_24h: 2100000000
  - symbol: LTC
    name: Litecoin
    price: 104.5
`)

	tickers, err := ParseInstruments(data)
	require.NoError(t, err)
	require.Len(t, tickers, 2)
	assert.Equal(t, "DOGE", tickers[0].Symbol)
	assert.Equal(t, 0.42, tickers[0].Price)
	assert.Equal(t, -3.1, tickers[0].ChangePercent24h)
	assert.Equal(t, 2100000000.0, tickers[0].Volume24h)
}

func TestParseInstruments_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":      "instruments: []",
		"duplicate":  "instruments:\n  - {symbol: BTC, price: 1}\n  - {symbol: btc, price: 2}\n",
		"zero price": "instruments:\n  - {symbol: BTC, price: 0}\n",
		"inf price":  "instruments:\n  - {symbol: DOGE, price: .inf}\n",
		"nan price":  "instruments:\n  - {symbol: DOGE, price: .nan}\n",
		"no symbol":  "instruments:\n  - {price: 3}\n",
		"bad yaml":   "instruments: [",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseInstruments([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadInstruments_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instruments.yaml")
	require.NoError(t, os.WriteFile(path, []byte("instruments:\n  - {symbol: BTC, name: Bitcoin, price: 50000}\n"), 0644))

	tickers, err := LoadInstruments(path)
	require.NoError(t, err)
	assert.Len(t, tickers, 1)

	defaults, err := LoadInstruments("")
	require.NoError(t, err)
	assert.Len(t, defaults, 6)

	_, err = LoadInstruments(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
