package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ducminhle1904/nextrade-dashboard/cmd/common"
	"github.com/ducminhle1904/nextrade-dashboard/internal/config"
	dasherrors "github.com/ducminhle1904/nextrade-dashboard/internal/errors"
	"github.com/ducminhle1904/nextrade-dashboard/internal/logger"
	"github.com/ducminhle1904/nextrade-dashboard/internal/market"
	"github.com/ducminhle1904/nextrade-dashboard/internal/marketdata"
	"github.com/ducminhle1904/nextrade-dashboard/internal/monitoring"
	"github.com/ducminhle1904/nextrade-dashboard/internal/notifications"
	"github.com/ducminhle1904/nextrade-dashboard/internal/orders"
	"github.com/ducminhle1904/nextrade-dashboard/internal/portfolio"
	"github.com/ducminhle1904/nextrade-dashboard/pkg/reporting"
	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

const appComponent = "dashboard"

// Options are the per-run choices taken from the command line
type Options struct {
	Symbol    string
	Timeframe string
	Seed      int64
	Price     float64

	Search        string
	FavoritesOnly bool
	Toggle        string

	OrderSide    string
	OrderType    string
	OrderAmount  float64
	OrderPercent float64
	OrderPrice   float64
	Place        bool
	Cancel       string

	Export string
	Colors bool
}

// App owns the dashboard state for one run
type App struct {
	cfg      *config.Config
	opts     Options
	store    *market.Store
	orders   *orders.Service
	reporter *reporting.DefaultReporter
	health   *monitoring.HealthChecker
	toasts   *notifications.Center
	log      *logger.Logger
	cli      *common.Logger

	mu         sync.Mutex
	form       orders.Form
	balance    orders.Balance
	openOrders []types.Order
	now        func() time.Time
}

// NewApp builds the store, order service and reporter from cfg
func NewApp(cfg *config.Config, instruments []types.Ticker, opts Options, out io.Writer, log *logger.Logger, cli *common.Logger) (*App, error) {
	if log == nil {
		log = logger.Discard()
	}
	if cli == nil {
		cli = common.NewLoggerTo(io.Discard)
	}

	seed := cfg.Market.Seed
	if opts.Seed != 0 {
		seed = opts.Seed
	}

	health := monitoring.NewHealthChecker()
	store, err := market.NewStore(market.StoreParams{
		Instruments:      instruments,
		Generator:        marketdata.NewGenerator(cfg.Generator, marketdata.NewSource(seed)),
		DefaultSymbol:    cfg.Market.DefaultSymbol,
		DefaultTimeframe: cfg.Market.DefaultTimeframe,
		Favorites:        cfg.Market.Favorites,
		Logger:           log,
		Health:           health,
	})
	if err != nil {
		return nil, err
	}

	if opts.Symbol != "" {
		if err := store.SelectInstrument(opts.Symbol); err != nil {
			return nil, err
		}
	}
	if opts.Timeframe != "" {
		tf, err := types.ParseTimeframe(opts.Timeframe)
		if err != nil {
			return nil, dasherrors.WrapError(err, dasherrors.ErrorCategoryValidation, appComponent, "parse timeframe")
		}
		if err := store.SetTimeframe(tf); err != nil {
			return nil, err
		}
	}

	var forward notifications.Notifier
	if cfg.Notifications.TelegramToken != "" {
		forward = notifications.NewTelegramNotifier(cfg.Notifications.TelegramToken, cfg.Notifications.TelegramChatID)
	}
	toasts := notifications.NewCenter(notifications.CenterParams{
		TTL:     cfg.Notifications.ToastTTL,
		Forward: forward,
		Logger:  log,
	})

	a := &App{
		cfg:      cfg,
		opts:     opts,
		store:    store,
		orders:   orders.NewService(orders.NewMockExecutor(log), log),
		reporter: reporting.NewDefaultReporter(out, reporting.ConsoleOptions{Colors: opts.Colors}),
		health:   health,
		toasts:   toasts,
		log:      log,
		cli:      cli,
		balance:  orders.Balance{USD: cfg.Balance.USD, Crypto: cfg.Balance.Crypto},
		now:      time.Now,
	}
	a.openOrders = orders.FixtureOpenOrders(a.now())

	form, err := a.buildForm()
	if err != nil {
		return nil, err
	}
	a.form = form
	return a, nil
}

func (a *App) buildForm() (orders.Form, error) {
	form := orders.Form{Side: types.SideBuy, Type: types.OrderTypeLimit}

	if a.opts.OrderSide != "" {
		side, err := types.ParseSide(a.opts.OrderSide)
		if err != nil {
			return form, dasherrors.WrapError(err, dasherrors.ErrorCategoryValidation, appComponent, "parse side")
		}
		form.Side = side
	}
	if a.opts.OrderType != "" {
		ot, err := types.ParseOrderType(a.opts.OrderType)
		if err != nil {
			return form, dasherrors.WrapError(err, dasherrors.ErrorCategoryValidation, appComponent, "parse order type")
		}
		form.Type = ot
	}

	ticker := a.store.Selected()
	form.Price = ticker.Price
	if a.opts.OrderPrice > 0 {
		form.Price = a.opts.OrderPrice
	}
	form.Amount = a.opts.OrderAmount
	if a.opts.OrderPercent > 0 {
		available := orders.MaxAmount(form.Side, a.balance, ticker.Price)
		form.Amount = orders.AmountFromSlider(available, a.opts.OrderPercent)
	}
	return form, nil
}

// Run applies the one-shot actions requested on the command line in the
// order a user would: price update, favourite toggle, cancel, then place.
func (a *App) Run(ctx context.Context) error {
	if a.opts.Price != 0 {
		sym := a.store.Selected().Symbol
		if err := a.store.UpdatePrice(sym, a.opts.Price); err != nil {
			return err
		}
		a.cli.Info("Price of %s set to $%.2f", sym, a.opts.Price)

		form, err := a.buildForm()
		if err != nil {
			return err
		}
		a.mu.Lock()
		a.form = form
		a.mu.Unlock()
	}

	if a.opts.Toggle != "" {
		fav, err := a.store.ToggleFavorite(a.opts.Toggle)
		if err != nil {
			return err
		}
		a.cli.Info("%s favourite: %t", strings.ToUpper(a.opts.Toggle), fav)
	}

	if a.opts.Cancel != "" {
		if err := a.CancelOrder(ctx, a.opts.Cancel); err != nil {
			return err
		}
	}

	if a.opts.Place {
		if err := a.PlaceOrder(ctx); err != nil {
			return err
		}
	}
	return nil
}

// PlaceOrder submits the current form for the selected instrument
func (a *App) PlaceOrder(ctx context.Context) error {
	a.mu.Lock()
	form := a.form
	a.mu.Unlock()

	n, err := a.orders.Place(ctx, a.store.Selected(), form)
	a.push(n)
	return err
}

// CancelOrder cancels one of the open orders by ID
func (a *App) CancelOrder(ctx context.Context, id string) error {
	a.mu.Lock()
	order, ok := orders.FindOrder(a.openOrders, id)
	a.mu.Unlock()

	if !ok {
		err := dasherrors.NewDashboardError(dasherrors.ErrorCategoryOrder, appComponent, "cancel order",
			fmt.Sprintf("no open order %q", id))
		a.health.RecordError(err)
		return err
	}

	n, err := a.orders.Cancel(ctx, order)
	a.push(n)
	return err
}

func (a *App) push(n orders.Notification) {
	a.toasts.Push(n)

	if n.IsError() {
		a.cli.Error("%s %s", n.Title, n.Description)
		return
	}
	a.cli.Success("%s: %s", n.Title, n.Description)
}

// View assembles everything one render needs
func (a *App) View() reporting.DashboardView {
	favorites := make(map[string]bool)
	for _, t := range a.store.Tickers() {
		favorites[t.Symbol] = a.store.IsFavorite(t.Symbol)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return reporting.DashboardView{
		Snapshot:      a.store.Snapshot(),
		Flash:         a.store.Flash(),
		Watchlist:     a.store.Watchlist(a.opts.Search, a.opts.FavoritesOnly),
		Favorites:     favorites,
		OpenOrders:    append([]types.Order(nil), a.openOrders...),
		Form:          a.form,
		Balance:       a.balance,
		Notifications: a.toasts.Active(),
		Portfolio:     portfolio.Fixture(),
	}
}

// Render draws the dashboard once
func (a *App) Render() {
	a.reporter.RenderDashboard(a.View())
}

// Export writes the current view; see reporting.DefaultReporter.Export
func (a *App) Export() (string, error) {
	view := a.View()
	path, err := a.reporter.Export(view, a.opts.Export)
	if err != nil {
		a.health.RecordError(err)
		monitoring.RecordError(string(dasherrors.ErrorCategoryExport))
		return path, err
	}
	a.log.Info("exported %s to %s (%s)", view.Snapshot.Ticker.Symbol, path, reporting.SnapshotSummary(view))
	return path, nil
}

// Watch keeps the price flash running and redraws on every flag change
// until ctx ends.
func (a *App) Watch(ctx context.Context) error {
	redraw := make(chan struct{}, 1)
	flasher := market.NewPriceFlasher(market.FlashParams{
		Period:   a.cfg.Flash.Period,
		Duration: a.cfg.Flash.Duration,
		OnChange: func(types.FlashDirection) {
			select {
			case redraw <- struct{}{}:
			default:
			}
		},
	})

	a.store.AttachFlasher(ctx, flasher)
	defer a.store.Close()

	a.Render()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-redraw:
			a.Render()
		}
	}
}

// StartMonitoring serves /metrics and /health on addr until ctx ends
func (a *App) StartMonitoring(ctx context.Context, addr string) *http.Server {
	srv := &http.Server{Addr: addr, Handler: a.monitoringHandler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.LogError("metrics server", err)
			a.cli.Error("Metrics server stopped: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		a.stopMonitoring(srv, 2*time.Second)
	}()

	a.cli.Info("Metrics on http://%s/metrics", addr)
	return srv
}

func (a *App) stopMonitoring(srv *http.Server, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		a.log.LogError("metrics server shutdown", err)
	}
}

func (a *App) monitoringHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler())
	mux.Handle("/health", a.health)
	return mux
}
