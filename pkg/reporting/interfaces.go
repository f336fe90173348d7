package reporting

import (
	"github.com/xuri/excelize/v2"

	"github.com/ducminhle1904/nextrade-dashboard/internal/market"
	"github.com/ducminhle1904/nextrade-dashboard/internal/orders"
	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

// Package reporting renders dashboard state to the terminal and to files

// DashboardView is everything one render of the dashboard shows.
type DashboardView struct {
	Snapshot      market.Snapshot
	Flash         types.FlashDirection
	Watchlist     []types.Ticker
	Favorites     map[string]bool
	OpenOrders    []types.Order
	Form          orders.Form
	Balance       orders.Balance
	Notifications []orders.Notification
	Portfolio     types.Portfolio
}

// ConsoleReporter defines interface for terminal output
type ConsoleReporter interface {
	RenderDashboard(view DashboardView)
}

// FileReporter defines interface for file output
type FileReporter interface {
	WriteTradesCSV(trades []types.Trade, path string) error
	WriteSnapshotXLSX(view DashboardView, path string) error
}

// PathManager defines interface for output path management
type PathManager interface {
	GetDefaultExportPath(symbol string, ext string) string
	EnsureDirectoryExists(path string) error
}

// Reporter combines all reporting interfaces
type Reporter interface {
	ConsoleReporter
	FileReporter
	PathManager
}

// ExcelStyles holds Excel formatting styles
type ExcelStyles struct {
	HeaderStyle   int
	PriceStyle    int
	AmountStyle   int
	CurrencyStyle int
	PercentStyle  int
	BaseStyle     int
	BullStyle     int
	BearStyle     int
	TimeStyle     int
}

// ExcelFormatter defines interface for Excel-specific formatting
type ExcelFormatter interface {
	WriteHeader(fx *excelize.File, sheet string, headers []string, styles ExcelStyles) error
}
