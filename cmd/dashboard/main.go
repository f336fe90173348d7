package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ducminhle1904/nextrade-dashboard/cmd/common"
	"github.com/ducminhle1904/nextrade-dashboard/internal/config"
	"github.com/ducminhle1904/nextrade-dashboard/internal/logger"
)

const appName = "dashboard"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	commonFlags := common.RegisterCommonFlags(fs)

	var opts Options
	fs.StringVar(&opts.Symbol, "symbol", "", "Instrument to select (default from DASHBOARD_DEFAULT_SYMBOL)")
	fs.StringVar(&opts.Timeframe, "timeframe", "", "Chart timeframe: 1m, 5m, 15m, 1h, 4h, 1d, 1w")
	fs.Int64Var(&opts.Seed, "seed", 0, "Random seed for reproducible data (0 = config or time based)")
	fs.Float64Var(&opts.Price, "price", 0, "Override the selected instrument's price before rendering")
	fs.StringVar(&opts.Search, "search", "", "Filter the watchlist by symbol or name")
	fs.BoolVar(&opts.FavoritesOnly, "favorites", false, "Show only favourites in the watchlist")
	fs.StringVar(&opts.Toggle, "toggle-favorite", "", "Toggle a symbol's favourite flag")

	fs.StringVar(&opts.OrderSide, "order-side", "buy", "Order side: buy or sell")
	fs.StringVar(&opts.OrderType, "order-type", "limit", "Order type: market, limit or stop")
	fs.Float64Var(&opts.OrderAmount, "order-amount", 0, "Order amount")
	fs.Float64Var(&opts.OrderPercent, "order-percent", 0, "Order amount as a percentage of the available balance")
	fs.Float64Var(&opts.OrderPrice, "order-price", 0, "Limit or stop price")
	fs.BoolVar(&opts.Place, "place", false, "Submit the order form")
	fs.StringVar(&opts.Cancel, "cancel", "", "Cancel an open order by ID")

	fs.StringVar(&opts.Export, "export", "", "Export path (.xlsx workbook or .csv trades); use 'auto' for the default location")
	watch := fs.Bool("watch", false, "Keep running and redraw on every price flash")
	duration := fs.Duration("duration", 0, "Stop watching after this long (0 = until interrupted)")
	metricsAddr := fs.String("metrics-addr", "", "Serve /metrics and /health on this address")

	usage := common.NewUsageFormatter(appName, "Mock crypto trading dashboard")
	usage.AddExample("dashboard -symbol ETH -timeframe 4h", "Show Ethereum on the 4h chart").
		AddExample("dashboard -symbol SOL -order-side sell -order-type market -order-amount 2 -place", "Place a market sell").
		AddExample("dashboard -seed 42 -export auto", "Export a reproducible snapshot workbook").
		AddExample("dashboard -watch -duration 30s", "Watch price flashes for 30 seconds")
	fs.Usage = func() { usage.PrintUsage(os.Stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if common.CheckHelpAndVersion(os.Stdout, appName, commonFlags, usage, fs) {
		return 0
	}

	cli := common.DefaultLogger
	common.SetupLogger(cli, commonFlags)
	opts.Colors = cli.ShowColors && !*commonFlags.Silent

	validator := common.NewFlagValidator()
	validator.ValidateChoice("order-side", opts.OrderSide, []string{"buy", "sell"}).
		ValidateChoice("order-type", opts.OrderType, []string{"market", "limit", "stop"}).
		ValidateFloat("order-percent", opts.OrderPercent, 0, 100)
	if opts.OrderAmount < 0 || opts.OrderPrice < 0 {
		validator.AddError("order-amount and order-price must not be negative")
	}
	if err := validator.GetError(); err != nil {
		cli.Error("%v", err)
		return 2
	}
	if opts.Export == "auto" {
		opts.Export = ""
	}
	opts.Export = common.ResolvePath(opts.Export, "exports", ".xlsx")

	if err := common.LoadEnvFile(*commonFlags.EnvFile); err != nil {
		cli.Warn("Continuing without %s", *commonFlags.EnvFile)
	}
	cfg, err := config.Load("")
	if err != nil {
		cli.Error("Configuration: %v", err)
		return 1
	}

	if f := cfg.Market.InstrumentsFile; f != "" && !common.FileExists(f) {
		cli.Error("Instruments file %s not found", f)
		return 1
	}
	instruments, err := config.LoadInstruments(cfg.Market.InstrumentsFile)
	if err != nil {
		cli.Error("Instruments: %v", err)
		return 1
	}

	log, err := logger.NewSessionLogger(cfg.LogDir, appName, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		cli.Warn("File logging disabled: %v", err)
		log = logger.Discard()
	}
	defer log.Close()
	cli.Debug("Session log: %s", log.Path())

	app, err := NewApp(cfg, instruments, opts, os.Stdout, log, cli)
	if err != nil {
		cli.Error("%v", err)
		log.LogError("start", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := *metricsAddr
	if addr == "" {
		addr = cfg.Monitoring.MetricsAddr
	}
	if addr != "" {
		app.StartMonitoring(ctx, addr)
	}

	if err := app.Run(ctx); err != nil {
		cli.Error("%v", err)
		log.LogError("run", err)
		return 1
	}

	if *watch {
		watchCtx := ctx
		if *duration > 0 {
			var cancel context.CancelFunc
			watchCtx, cancel = context.WithTimeout(ctx, *duration)
			defer cancel()
		}
		cli.Progress("Watching %s, Ctrl+C to stop", app.store.Selected().Symbol)
		if err := app.Watch(watchCtx); err != nil {
			cli.Error("%v", err)
			return 1
		}
	} else {
		app.Render()
	}

	if isFlagSet(fs, "export") {
		start := time.Now()
		path, err := app.Export()
		if err != nil {
			cli.Error("Export failed: %v", err)
			return 1
		}
		cli.Success("Exported to %s in %v", path, time.Since(start).Round(time.Millisecond))
	}

	if !*commonFlags.Silent && common.IsDevBuild() {
		cli.Debug("%s %s", common.ProjectName, common.GetFullVersion())
	}
	return 0
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
