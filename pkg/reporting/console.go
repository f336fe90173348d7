package reporting

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ducminhle1904/nextrade-dashboard/internal/chart"
	"github.com/ducminhle1904/nextrade-dashboard/internal/format"
	"github.com/ducminhle1904/nextrade-dashboard/internal/orders"
	"github.com/ducminhle1904/nextrade-dashboard/internal/portfolio"
	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

// ConsoleOptions controls how much of each panel is printed.
type ConsoleOptions struct {
	Colors bool
	// Book levels shown per side. Defaults to 8.
	DepthRows int
	// Trade tape rows. Defaults to 20.
	TradeRows int
	// Closes drawn in the chart sparkline. Defaults to 48.
	SparklineWidth int
}

// DefaultConsoleReporter renders the dashboard as go-pretty tables
type DefaultConsoleReporter struct {
	out  io.Writer
	opts ConsoleOptions
}

// NewDefaultConsoleReporter creates a console reporter writing to out, or
// stdout when out is nil
func NewDefaultConsoleReporter(out io.Writer, opts ConsoleOptions) *DefaultConsoleReporter {
	if out == nil {
		out = os.Stdout
	}
	if opts.DepthRows <= 0 {
		opts.DepthRows = 8
	}
	if opts.TradeRows <= 0 {
		opts.TradeRows = 20
	}
	if opts.SparklineWidth <= 0 {
		opts.SparklineWidth = 48
	}
	return &DefaultConsoleReporter{out: out, opts: opts}
}

// RenderDashboard prints every panel of view
func (r *DefaultConsoleReporter) RenderDashboard(view DashboardView) {
	snap := view.Snapshot

	sections := []string{
		r.HeaderTable(snap.Ticker, view.Flash),
		r.StatsTable(snap.Ticker),
		r.WatchlistTable(view.Watchlist, view.Favorites, snap.Ticker.Symbol),
		r.ChartTable(snap.Candles, snap.Timeframe),
		r.OrderBookTable(snap.OrderBook, snap.Ticker.Price),
		r.TradesTable(snap.Trades),
		r.OpenOrdersTable(view.OpenOrders),
		r.OrderFormTable(snap.Ticker, view.Form, view.Balance),
		r.PortfolioTable(view.Portfolio),
	}
	if len(view.Notifications) > 0 {
		sections = append(sections, r.NotificationsTable(view.Notifications))
	}

	for _, s := range sections {
		fmt.Fprintln(r.out, s)
	}
}

// HeaderTable shows the selected instrument with its price and flash marker
func (r *DefaultConsoleReporter) HeaderTable(t types.Ticker, flash types.FlashDirection) string {
	tw := r.newTable(fmt.Sprintf("%s %s/USD", t.Icon, t.Symbol))

	price := "$" + format.Price(t.Price)
	switch flash {
	case types.FlashUp:
		price = r.paint(price+" "+FlashMarker(flash), true)
	case types.FlashDown:
		price = r.paint(price+" "+FlashMarker(flash), false)
	}

	tw.AppendRows([]table.Row{
		{"Instrument", t.Name},
		{"Price", price},
		{"24h", r.paint(format.SignedPercent(t.ChangePercent24h), t.IsPositive())},
		{"Vol", format.AbbreviatedCurrency(t.Volume24h)},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 12, Align: text.AlignLeft},
		{Number: 2, WidthMin: 24, Align: text.AlignRight},
	})
	return tw.Render()
}

// StatsTable shows the 24h market statistics
func (r *DefaultConsoleReporter) StatsTable(t types.Ticker) string {
	tw := r.newTable("MARKET STATS")

	stats := MarketStats(t)
	header := table.Row{}
	values := table.Row{}
	for _, s := range stats {
		header = append(header, s.Label)
		v := s.Value
		if s.Sub != "" {
			v = fmt.Sprintf("%s %s", v, s.Sub)
		}
		if s.Signed {
			v = r.paint(v, s.Positive)
		}
		values = append(values, v)
	}
	tw.AppendHeader(header)
	tw.AppendRow(values)
	return tw.Render()
}

// WatchlistTable lists instruments with favourites starred and the selection
// marked
func (r *DefaultConsoleReporter) WatchlistTable(list []types.Ticker, favorites map[string]bool, selected string) string {
	tw := r.newTable("WATCHLIST")
	tw.AppendHeader(table.Row{"", "Symbol", "Name", "Price", "24h"})

	for _, t := range list {
		marker := " "
		if favorites[t.Symbol] {
			marker = "★"
		}
		symbol := t.Symbol
		if t.Symbol == selected {
			symbol = "› " + symbol
		}
		tw.AppendRow(table.Row{
			marker,
			symbol,
			t.Name,
			"$" + format.Price(t.Price),
			r.paint(format.SignedPercent(t.ChangePercent24h), t.IsPositive()),
		})
	}
	if len(list) == 0 {
		tw.AppendRow(table.Row{"", "-", "no instruments match", "", ""})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	return tw.Render()
}

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws the last width closes scaled to the candles' price range.
func Sparkline(candles []types.Candle, width int) string {
	if len(candles) == 0 || width <= 0 {
		return ""
	}
	if len(candles) > width {
		candles = candles[len(candles)-width:]
	}

	scale := chart.NewPriceScale(candles, 1, 0)
	var b strings.Builder
	top := len(sparkGlyphs) - 1
	for _, c := range candles {
		idx := int(scale.Ratio(c.Close)*float64(top) + 0.5)
		b.WriteRune(sparkGlyphs[idx])
	}
	return b.String()
}

// ChartTable summarises the candle series: range, grid lines, last change and
// a close-price sparkline
func (r *DefaultConsoleReporter) ChartTable(candles []types.Candle, tf types.Timeframe) string {
	tw := r.newTable(fmt.Sprintf("PRICE CHART (%s)", tf))

	if len(candles) == 0 {
		tw.AppendRow(table.Row{"Candles", "0"})
		return tw.Render()
	}

	scale := chart.NewPriceScale(candles, 100, 10)
	grid := make([]string, 0, len(chart.GridRatios))
	for _, g := range scale.GridLines() {
		grid = append(grid, format.Fixed(g.Price, 2))
	}

	rows := []table.Row{
		{"Candles", fmt.Sprintf("%d", len(candles))},
		{"Range", fmt.Sprintf("%s - %s", format.Fixed(scale.Min, 2), format.Fixed(scale.Max, 2))},
		{"Grid", strings.Join(grid, " | ")},
	}

	if change, ok := chart.LastChange(candles); ok {
		positive := change.Delta >= 0
		rows = append(rows,
			table.Row{"Last", "$" + format.Fixed(change.Last, 2)},
			table.Row{"Change", r.paint(fmt.Sprintf("%s (%s)", format.SignedFixed(change.Delta, 2), format.SignedPercent(change.Percent)), positive)},
		)
	}

	last := candles[len(candles)-1]
	volPct := chart.VolumeRatio(last, chart.MaxVolume(candles)) * 100
	rows = append(rows,
		table.Row{"Volume", fmt.Sprintf("%s (%s%% of max)", format.AbbreviatedCurrency(last.Volume), format.Fixed(volPct, 1))},
		table.Row{"Closes", r.paint(Sparkline(candles, r.opts.SparklineWidth), last.IsBullish())},
	)

	tw.AppendRows(rows)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 10, Align: text.AlignLeft},
	})
	return tw.Render()
}

// depthBar renders a depth percentage as a ten-cell bar.
func depthBar(pct float64) string {
	cells := int(pct/10 + 0.5)
	if cells > 10 {
		cells = 10
	}
	if cells < 0 {
		cells = 0
	}
	return strings.Repeat("█", cells) + strings.Repeat("·", 10-cells)
}

// OrderBookTable shows the top levels of each side around the mid price.
// Asks are reversed so the best ask sits next to the mid line.
func (r *DefaultConsoleReporter) OrderBookTable(book types.OrderBook, price float64) string {
	tw := r.newTable(fmt.Sprintf("ORDER BOOK  Spread: $%s (%s%%)", format.Fixed(book.Spread, 2), format.Fixed(book.SpreadPercent, 3)))
	tw.AppendHeader(table.Row{"Price", "Amount", "Total", "Depth"})

	maxTotal := chart.MaxDepthTotal(book)

	asks := book.Asks
	if len(asks) > r.opts.DepthRows {
		asks = asks[:r.opts.DepthRows]
	}
	for i := len(asks) - 1; i >= 0; i-- {
		e := asks[i]
		tw.AppendRow(table.Row{
			r.paint(format.Fixed(e.Price, 2), false),
			format.Fixed(e.Amount, 4),
			format.Fixed(e.Total, 4),
			depthBar(chart.DepthPercent(e, maxTotal)),
		})
	}

	tw.AppendSeparator()
	tw.AppendRow(table.Row{"$" + format.Fixed(price, 2), "", "", ""})
	tw.AppendSeparator()

	bids := book.Bids
	if len(bids) > r.opts.DepthRows {
		bids = bids[:r.opts.DepthRows]
	}
	for _, e := range bids {
		tw.AppendRow(table.Row{
			r.paint(format.Fixed(e.Price, 2), true),
			format.Fixed(e.Amount, 4),
			format.Fixed(e.Total, 4),
			depthBar(chart.DepthPercent(e, maxTotal)),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	return tw.Render()
}

// TradesTable shows the trade tape, newest first
func (r *DefaultConsoleReporter) TradesTable(trades []types.Trade) string {
	tw := r.newTable("RECENT TRADES")
	tw.AppendHeader(table.Row{"Price", "Amount", "Time"})

	if len(trades) > r.opts.TradeRows {
		trades = trades[:r.opts.TradeRows]
	}
	for _, tr := range trades {
		tw.AppendRow(table.Row{
			r.paint(format.Fixed(tr.Price, 2), tr.Side == types.SideBuy),
			format.Fixed(tr.Amount, 4),
			tr.Timestamp.Format("15:04:05"),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
	})
	return tw.Render()
}

// OpenOrdersTable lists open orders with their fill progress
func (r *DefaultConsoleReporter) OpenOrdersTable(list []types.Order) string {
	tw := r.newTable(fmt.Sprintf("OPEN ORDERS (%d)", len(list)))
	tw.AppendHeader(table.Row{"ID", "Pair", "Side", "Type", "Price", "Amount", "Filled", "Status"})

	for _, o := range list {
		price := "Market"
		if o.Price != nil {
			price = "$" + format.Fixed(o.LimitPrice(), 2)
		}
		tw.AppendRow(table.Row{
			o.ID,
			o.Symbol + "/USD",
			r.paint(strings.ToUpper(string(o.Side)), o.Side == types.SideBuy),
			o.Type.Title(),
			price,
			format.Fixed(o.Amount, 4),
			format.Fixed(o.FillPercent(), 1) + "%",
			string(o.Status),
		})
	}
	if len(list) == 0 {
		tw.AppendRow(table.Row{"-", "No open orders", "", "", "", "", "", ""})
	}
	return tw.Render()
}

// OrderFormTable summarises the order form for ticker
func (r *DefaultConsoleReporter) OrderFormTable(t types.Ticker, form orders.Form, balance orders.Balance) string {
	tw := r.newTable("PLACE ORDER")

	maxAmount := orders.MaxAmount(form.Side, balance, t.Price)
	total := form.Total(t)

	price := "$" + format.Fixed(form.EffectivePrice(t), 2)
	if form.Type == types.OrderTypeMarket {
		price += " (market)"
	}

	available := "$" + format.Fixed(balance.USD, 2)
	if form.Side == types.SideSell {
		available = fmt.Sprintf("%s %s", format.Fixed(balance.Crypto, 6), t.Symbol)
	}

	tw.AppendRows([]table.Row{
		{"Side", r.paint(form.Side.Title(), form.Side == types.SideBuy)},
		{"Type", form.Type.Title()},
		{"Price", price},
		{"Amount", fmt.Sprintf("%s %s", format.Fixed(form.Amount, 6), t.Symbol)},
		{"Slider", format.Fixed(orders.SliderFromAmount(form.Amount, maxAmount), 0) + "%"},
		{"Max", fmt.Sprintf("%s %s", format.Fixed(maxAmount, 6), t.Symbol)},
		{"Available", available},
	})
	tw.AppendSeparator()
	tw.AppendRows([]table.Row{
		{"Total", "$" + format.Fixed(total, 2)},
		{"Est. Fee", "$" + format.Fixed(orders.Fee(total), 4)},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 10, Align: text.AlignLeft},
		{Number: 2, WidthMin: 20, Align: text.AlignRight},
	})
	return tw.Render()
}

// PortfolioTable shows the portfolio headline and its positions
func (r *DefaultConsoleReporter) PortfolioTable(p types.Portfolio) string {
	tw := r.newTable("PORTFOLIO")

	value, pnl, positive := portfolio.Headline(p)
	tw.AppendRows([]table.Row{
		{"Total Value", value, "", ""},
		{"PnL", r.paint(pnl, positive), "", ""},
	})
	tw.AppendSeparator()

	alloc := portfolio.Allocation(p)
	for _, row := range portfolio.Rows(p) {
		tw.AppendRow(table.Row{
			row.Symbol + "  " + row.Holding,
			row.Value,
			r.paint(row.PnL, row.Positive),
			format.Fixed(alloc[row.Symbol], 1) + "%",
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	return tw.Render()
}

// NotificationsTable shows the toasts raised by the last form actions
func (r *DefaultConsoleReporter) NotificationsTable(list []orders.Notification) string {
	tw := r.newTable("NOTIFICATIONS")

	for _, n := range list {
		title := r.paint(n.Title, !n.IsError())
		tw.AppendRow(table.Row{title, n.Description})
	}
	return tw.Render()
}

func (r *DefaultConsoleReporter) newTable(title string) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle(title)
	tw.SetStyle(table.StyleRounded)
	return tw
}

// paint colours s bull-green or bear-red when colours are enabled
func (r *DefaultConsoleReporter) paint(s string, positive bool) string {
	if !r.opts.Colors {
		return s
	}
	if positive {
		return text.Colors{text.FgGreen}.Sprint(s)
	}
	return text.Colors{text.FgRed}.Sprint(s)
}

// Package-level convenience function
func RenderDashboard(out io.Writer, view DashboardView, colors bool) {
	reporter := NewDefaultConsoleReporter(out, ConsoleOptions{Colors: colors})
	reporter.RenderDashboard(view)
}
