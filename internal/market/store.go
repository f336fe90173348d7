// Package market owns the dashboard's application state: the instrument
// catalogue, the selected instrument and timeframe, favourites, and the
// market snapshot synthesized for the selection.
package market

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	dasherrors "github.com/ducminhle1904/nextrade-dashboard/internal/errors"
	"github.com/ducminhle1904/nextrade-dashboard/internal/logger"
	"github.com/ducminhle1904/nextrade-dashboard/internal/marketdata"
	"github.com/ducminhle1904/nextrade-dashboard/internal/monitoring"
	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

const component = "market"

// Snapshot is the data the views render for one selection. A snapshot is
// never mutated after it is published; a change produces a new one.
type Snapshot struct {
	Ticker      types.Ticker
	Timeframe   types.Timeframe
	OrderBook   types.OrderBook
	Trades      []types.Trade
	Candles     []types.Candle
	GeneratedAt time.Time
}

type StoreParams struct {
	Instruments []types.Ticker
	Generator   *marketdata.Generator

	// Symbol selected at start. Defaults to the first instrument.
	DefaultSymbol string
	// Defaults to 1h.
	DefaultTimeframe types.Timeframe
	Favorites        []string

	Logger *logger.Logger
	Health *monitoring.HealthChecker
}

// Store is the application state owned by the top-level controller.
type Store struct {
	p   StoreParams
	gen *marketdata.Generator
	log *logger.Logger

	mtx       sync.RWMutex
	tickers   []types.Ticker
	index     map[string]int
	selected  string
	timeframe types.Timeframe
	favorites map[string]struct{}
	snapshot  *Snapshot

	flashMtx sync.Mutex
	flasher  *PriceFlasher
	flashCtx context.Context
}

// NewStore validates the catalogue, selects the default instrument and
// synthesizes its first snapshot.
func NewStore(p StoreParams) (*Store, error) {
	if p.Generator == nil {
		return nil, dasherrors.Validation(component, "new store", "generator is required")
	}
	if len(p.Instruments) == 0 {
		return nil, dasherrors.Validation(component, "new store", "instrument catalogue is empty")
	}
	if p.DefaultTimeframe == "" {
		p.DefaultTimeframe = types.Timeframe1h
	}
	if _, err := types.ParseTimeframe(string(p.DefaultTimeframe)); err != nil {
		return nil, dasherrors.WrapError(err, dasherrors.ErrorCategoryValidation, component, "new store")
	}
	if p.Logger == nil {
		p.Logger = logger.Discard()
	}

	s := &Store{
		p:         p,
		gen:       p.Generator,
		log:       p.Logger,
		tickers:   make([]types.Ticker, len(p.Instruments)),
		index:     make(map[string]int, len(p.Instruments)),
		timeframe: p.DefaultTimeframe,
		favorites: make(map[string]struct{}),
	}
	copy(s.tickers, p.Instruments)

	for i := range s.tickers {
		sym := normalize(s.tickers[i].Symbol)
		if _, dup := s.index[sym]; dup {
			return nil, dasherrors.Validation(component, "new store", "duplicate symbol %s", sym)
		}
		s.tickers[i].Symbol = sym
		s.index[sym] = i
	}
	for _, sym := range p.Favorites {
		sym = normalize(sym)
		if _, ok := s.index[sym]; ok {
			s.favorites[sym] = struct{}{}
		}
	}

	symbol := p.DefaultSymbol
	if symbol == "" {
		symbol = s.tickers[0].Symbol
	}
	if err := s.SelectInstrument(symbol); err != nil {
		return nil, err
	}
	return s, nil
}

// Tickers returns a copy of the catalogue in display order.
func (s *Store) Tickers() []types.Ticker {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	out := make([]types.Ticker, len(s.tickers))
	copy(out, s.tickers)
	return out
}

// Ticker looks up an instrument by symbol.
func (s *Store) Ticker(symbol string) (types.Ticker, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	i, ok := s.index[normalize(symbol)]
	if !ok {
		return types.Ticker{}, false
	}
	return s.tickers[i], true
}

// Selected returns the selected instrument.
func (s *Store) Selected() types.Ticker {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.tickers[s.index[s.selected]]
}

// Timeframe returns the selected chart timeframe.
func (s *Store) Timeframe() types.Timeframe {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.timeframe
}

// Snapshot returns the current market snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return *s.snapshot
}

// SelectInstrument makes symbol the selection. Choosing a different
// instrument regenerates the whole snapshot; re-selecting the current one
// keeps it.
func (s *Store) SelectInstrument(symbol string) error {
	symbol = normalize(symbol)

	s.mtx.Lock()
	i, ok := s.index[symbol]
	if !ok {
		s.mtx.Unlock()
		monitoring.RecordError(string(dasherrors.ErrorCategoryMarket))
		return dasherrors.NewDashboardError(dasherrors.ErrorCategoryMarket, component, "select instrument", "unknown symbol").
			WithContext("symbol", symbol)
	}
	if s.snapshot != nil && s.selected == symbol {
		s.mtx.Unlock()
		return nil
	}

	ticker := s.tickers[i]
	snap, err := s.regenerateLocked(ticker)
	if err != nil {
		s.mtx.Unlock()
		return err
	}
	s.selected = symbol
	s.mtx.Unlock()

	s.log.Info("selected %s at %.8g", symbol, ticker.Price)
	s.restartFlash(snap.Ticker.Price)
	return nil
}

// SetTimeframe stores tf for display. The candle shape does not depend on the
// timeframe; the candle series is redrawn so the chart refreshes.
func (s *Store) SetTimeframe(tf types.Timeframe) error {
	if _, err := types.ParseTimeframe(string(tf)); err != nil {
		return dasherrors.WrapError(err, dasherrors.ErrorCategoryValidation, component, "set timeframe")
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if tf == s.timeframe {
		return nil
	}

	cfg := s.gen.Config()
	candles, err := s.gen.GenerateCandles(s.snapshot.Ticker.Price, cfg.CandleCount)
	if err != nil {
		s.recordError(err)
		return err
	}

	next := *s.snapshot
	next.Timeframe = tf
	next.Candles = candles
	next.GeneratedAt = time.Now()
	s.snapshot = &next
	s.timeframe = tf

	s.log.Debug("timeframe set to %s for %s", tf, next.Ticker.Symbol)
	return nil
}

// UpdatePrice replaces the reference price of symbol. When symbol is selected
// and the price changed, a new snapshot is synthesized.
func (s *Store) UpdatePrice(symbol string, price float64) error {
	symbol = normalize(symbol)
	if !(price > 0) || math.IsInf(price, 0) {
		return dasherrors.Validation(component, "update price", "price must be positive and finite, got %f", price).
			WithContext("symbol", symbol)
	}

	s.mtx.Lock()
	i, ok := s.index[symbol]
	if !ok {
		s.mtx.Unlock()
		return dasherrors.NewDashboardError(dasherrors.ErrorCategoryMarket, component, "update price", "unknown symbol").
			WithContext("symbol", symbol)
	}
	if s.tickers[i].Price == price {
		s.mtx.Unlock()
		return nil
	}

	updated := s.tickers[i]
	updated.Price = price

	if symbol != s.selected {
		s.tickers[i] = updated
		s.mtx.Unlock()
		return nil
	}

	if _, err := s.regenerateLocked(updated); err != nil {
		s.mtx.Unlock()
		return err
	}
	s.tickers[i] = updated
	s.mtx.Unlock()

	s.restartFlash(price)
	return nil
}

// regenerateLocked synthesizes and publishes a full snapshot for ticker.
// The new snapshot replaces the old one only when all three parts succeed.
func (s *Store) regenerateLocked(ticker types.Ticker) (*Snapshot, error) {
	start := time.Now()
	cfg := s.gen.Config()

	book, err := s.gen.GenerateOrderBook(ticker.Price, cfg.Levels)
	if err != nil {
		s.recordError(err)
		return nil, err
	}
	trades, err := s.gen.GenerateTrades(ticker.Price, cfg.TradeCount)
	if err != nil {
		s.recordError(err)
		return nil, err
	}
	candles, err := s.gen.GenerateCandles(ticker.Price, cfg.CandleCount)
	if err != nil {
		s.recordError(err)
		return nil, err
	}

	snap := &Snapshot{
		Ticker:      ticker,
		Timeframe:   s.timeframe,
		OrderBook:   book,
		Trades:      trades,
		Candles:     candles,
		GeneratedAt: time.Now(),
	}
	s.snapshot = snap

	monitoring.RecordRegeneration(ticker.Symbol, ticker.Price, time.Since(start).Seconds())
	if s.p.Health != nil {
		s.p.Health.MarkRegenerated(ticker.Symbol, ticker.Price)
	}
	s.log.Debug("regenerated %s: %d levels, %d trades, %d candles", ticker.Symbol, len(book.Bids), len(trades), len(candles))
	return snap, nil
}

// IsFavorite reports whether symbol is starred.
func (s *Store) IsFavorite(symbol string) bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	_, ok := s.favorites[normalize(symbol)]
	return ok
}

// ToggleFavorite stars or unstars symbol and returns the new state.
func (s *Store) ToggleFavorite(symbol string) (bool, error) {
	symbol = normalize(symbol)

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.index[symbol]; !ok {
		return false, dasherrors.NewDashboardError(dasherrors.ErrorCategoryMarket, component, "toggle favorite", "unknown symbol").
			WithContext("symbol", symbol)
	}
	if _, ok := s.favorites[symbol]; ok {
		delete(s.favorites, symbol)
		return false, nil
	}
	s.favorites[symbol] = struct{}{}
	return true, nil
}

// Watchlist filters the catalogue by a case-insensitive search over symbol
// and name, optionally keeping favourites only. Catalogue order is preserved.
func (s *Store) Watchlist(search string, favoritesOnly bool) []types.Ticker {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	query := strings.ToLower(strings.TrimSpace(search))
	out := make([]types.Ticker, 0, len(s.tickers))
	for _, t := range s.tickers {
		if favoritesOnly {
			if _, ok := s.favorites[t.Symbol]; !ok {
				continue
			}
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Symbol), query) &&
			!strings.Contains(strings.ToLower(t.Name), query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *Store) recordError(err error) {
	s.log.LogError("regenerate", err)
	monitoring.RecordError(string(dasherrors.ErrorCategoryMarket))
	if s.p.Health != nil {
		s.p.Health.RecordError(err)
	}
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
