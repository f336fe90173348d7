package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	dasherrors "github.com/ducminhle1904/nextrade-dashboard/internal/errors"
	"github.com/ducminhle1904/nextrade-dashboard/internal/marketdata"
	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

type Config struct {
	LogLevel string
	LogDir   string

	Market struct {
		DefaultSymbol    string
		DefaultTimeframe types.Timeframe
		InstrumentsFile  string
		Favorites        []string
		Seed             int64
	}

	Generator marketdata.GeneratorConfig

	Flash struct {
		Period   time.Duration
		Duration time.Duration
	}

	Balance struct {
		USD    float64
		Crypto float64
	}

	Notifications struct {
		ToastTTL       time.Duration
		TelegramToken  string
		TelegramChatID string
	}

	Monitoring struct {
		MetricsAddr string
	}
}

// Load reads envFile (a missing file is not an error) and then builds the
// configuration from environment variables with defaults.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, dasherrors.WrapError(err, dasherrors.ErrorCategoryConfiguration, "config", "load env file")
		}
	}

	cfg := &Config{
		LogLevel: getEnv("DASHBOARD_LOG_LEVEL", "INFO"),
		LogDir:   getEnv("DASHBOARD_LOG_DIR", ""),
	}

	cfg.Market.DefaultSymbol = strings.ToUpper(getEnv("DASHBOARD_DEFAULT_SYMBOL", "BTC"))
	cfg.Market.DefaultTimeframe = types.Timeframe(getEnv("DASHBOARD_DEFAULT_TIMEFRAME", string(types.Timeframe1h)))
	cfg.Market.InstrumentsFile = getEnv("DASHBOARD_INSTRUMENTS", "")
	cfg.Market.Favorites = splitAndTrim(getEnv("DASHBOARD_FAVORITES", "BTC,ETH"))
	cfg.Market.Seed = getEnvInt64("DASHBOARD_SEED", 0)

	gen := marketdata.DefaultGeneratorConfig()
	gen.Levels = getEnvInt("DASHBOARD_LEVELS", gen.Levels)
	gen.TradeCount = getEnvInt("DASHBOARD_TRADES", gen.TradeCount)
	gen.CandleCount = getEnvInt("DASHBOARD_CANDLES", gen.CandleCount)
	gen.CandleInterval = getEnvDuration("DASHBOARD_CANDLE_INTERVAL", gen.CandleInterval)
	cfg.Generator = gen

	cfg.Flash.Period = getEnvDuration("DASHBOARD_FLASH_PERIOD", 3*time.Second)
	cfg.Flash.Duration = getEnvDuration("DASHBOARD_FLASH_DURATION", 500*time.Millisecond)

	cfg.Balance.USD = getEnvFloat("DASHBOARD_BALANCE_USD", 50000)
	cfg.Balance.Crypto = getEnvFloat("DASHBOARD_BALANCE_CRYPTO", 2.5)

	cfg.Notifications.ToastTTL = getEnvDuration("DASHBOARD_TOAST_TTL", 4*time.Second)
	cfg.Notifications.TelegramToken = getEnv("DASHBOARD_TELEGRAM_TOKEN", "")
	cfg.Notifications.TelegramChatID = getEnv("DASHBOARD_TELEGRAM_CHAT_ID", "")

	cfg.Monitoring.MetricsAddr = getEnv("DASHBOARD_METRICS_ADDR", "")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if err := c.Generator.Validate(); err != nil {
		return dasherrors.WrapError(err, dasherrors.ErrorCategoryConfiguration, "config", "validate generator")
	}
	if _, err := types.ParseTimeframe(string(c.Market.DefaultTimeframe)); err != nil {
		return configError("validate market", err.Error())
	}
	if c.Market.DefaultSymbol == "" {
		return configError("validate market", "default symbol must not be empty")
	}
	if c.Flash.Period <= 0 {
		return configError("validate flash", fmt.Sprintf("flash period must be positive, got %s", c.Flash.Period))
	}
	if c.Flash.Duration <= 0 || c.Flash.Duration >= c.Flash.Period {
		return configError("validate flash", fmt.Sprintf("flash duration must be positive and shorter than the period, got %s", c.Flash.Duration))
	}
	if c.Notifications.ToastTTL <= 0 {
		return configError("validate notifications", fmt.Sprintf("toast ttl must be positive, got %s", c.Notifications.ToastTTL))
	}
	if (c.Notifications.TelegramToken == "") != (c.Notifications.TelegramChatID == "") {
		return configError("validate notifications", "telegram token and chat id must be set together")
	}
	if !finiteNonNegative(c.Balance.USD) || !finiteNonNegative(c.Balance.Crypto) {
		return configError("validate balance", "balances must be finite and not negative")
	}
	return nil
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

func configError(operation, message string) error {
	return dasherrors.NewDashboardError(dasherrors.ErrorCategoryConfiguration, "config", operation, message)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func splitAndTrim(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.ToUpper(strings.TrimSpace(p)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
