package reporting

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

// DefaultReporter implements the complete Reporter interface
type DefaultReporter struct {
	console *DefaultConsoleReporter
	csv     *DefaultCSVReporter
	excel   *DefaultExcelReporter
	paths   *DefaultPathManager
}

// NewDefaultReporter creates a new default reporter with all functionality
func NewDefaultReporter(out io.Writer, opts ConsoleOptions) *DefaultReporter {
	return &DefaultReporter{
		console: NewDefaultConsoleReporter(out, opts),
		csv:     NewDefaultCSVReporter(),
		excel:   NewDefaultExcelReporter(),
		paths:   NewDefaultPathManager(),
	}
}

// Console output methods
func (r *DefaultReporter) RenderDashboard(view DashboardView) {
	r.console.RenderDashboard(view)
}

// File output methods
func (r *DefaultReporter) WriteTradesCSV(trades []types.Trade, path string) error {
	return r.csv.WriteTradesCSV(trades, path)
}

func (r *DefaultReporter) WriteSnapshotXLSX(view DashboardView, path string) error {
	return r.excel.WriteSnapshotXLSX(view, path)
}

// Export writes view to path, picking the format from the extension: .csv
// writes the trade tape, anything else the full workbook. An empty path
// uses the default export location.
func (r *DefaultReporter) Export(view DashboardView, path string) (string, error) {
	if path == "" {
		path = r.paths.GetDefaultExportPath(view.Snapshot.Ticker.Symbol, "xlsx")
	}
	if err := r.paths.EnsureDirectoryExists(path); err != nil {
		return path, exportError(err, "create directory")
	}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return path, r.csv.WriteTradesCSV(view.Snapshot.Trades, path)
	}
	return path, r.excel.WriteSnapshotXLSX(view, path)
}

// Path management methods
func (r *DefaultReporter) GetDefaultExportPath(symbol, ext string) string {
	return r.paths.GetDefaultExportPath(symbol, ext)
}

func (r *DefaultReporter) EnsureDirectoryExists(path string) error {
	return r.paths.EnsureDirectoryExists(path)
}
