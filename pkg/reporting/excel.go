package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	dasherrors "github.com/ducminhle1904/nextrade-dashboard/internal/errors"
	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

const (
	orderBookSheet = "Order Book"
	tradesSheet    = "Trades"
	candlesSheet   = "Candles"
	watchlistSheet = "Watchlist"
)

// DefaultExcelReporter implements Excel output functionality
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// WriteSnapshotXLSX writes the order book, trade tape, candles and watchlist
// of view to an Excel workbook at path
func (r *DefaultExcelReporter) WriteSnapshotXLSX(view DashboardView, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return exportError(err, "create directory")
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	if err := fx.SetSheetName(fx.GetSheetName(0), orderBookSheet); err != nil {
		return exportError(err, "create sheets")
	}
	for _, name := range []string{tradesSheet, candlesSheet, watchlistSheet} {
		if _, err := fx.NewSheet(name); err != nil {
			return exportError(err, "create sheets")
		}
	}

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return exportError(err, "create styles")
	}

	snap := view.Snapshot
	if err := r.writeOrderBookSheet(fx, snap.OrderBook, styles); err != nil {
		return exportError(err, "write order book")
	}
	if err := r.writeTradesSheet(fx, snap.Trades, styles); err != nil {
		return exportError(err, "write trades")
	}
	if err := r.writeCandlesSheet(fx, snap.Candles, styles); err != nil {
		return exportError(err, "write candles")
	}
	if err := r.writeWatchlistSheet(fx, view.Watchlist, view.Favorites, styles); err != nil {
		return exportError(err, "write watchlist")
	}

	if err := fx.SaveAs(path); err != nil {
		return exportError(err, "save workbook")
	}
	return nil
}

func exportError(err error, operation string) error {
	return dasherrors.WrapError(err, dasherrors.ErrorCategoryExport, "reporting", operation)
}

// createExcelStyles creates the workbook styles
func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	cellBorder := []excelize.Border{
		{Type: "left", Color: "E0E0E0", Style: 1},
		{Type: "right", Color: "E0E0E0", Style: 1},
		{Type: "bottom", Color: "E0E0E0", Style: 1},
	}
	right := &excelize.Alignment{Horizontal: "right"}

	// Header style - Dark slate background with white text
	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	priceFmt := "#,##0.00"
	styles.PriceStyle, err = fx.NewStyle(&excelize.Style{CustomNumFmt: &priceFmt, Alignment: right, Border: cellBorder})
	if err != nil {
		return styles, err
	}

	amountFmt := "#,##0.0000"
	styles.AmountStyle, err = fx.NewStyle(&excelize.Style{CustomNumFmt: &amountFmt, Alignment: right, Border: cellBorder})
	if err != nil {
		return styles, err
	}

	// Currency format with $ symbol
	styles.CurrencyStyle, err = fx.NewStyle(&excelize.Style{NumFmt: 7, Alignment: right, Border: cellBorder})
	if err != nil {
		return styles, err
	}

	percentFmt := `+0.00"%";-0.00"%"`
	styles.PercentStyle, err = fx.NewStyle(&excelize.Style{CustomNumFmt: &percentFmt, Alignment: right, Border: cellBorder})
	if err != nil {
		return styles, err
	}

	styles.BaseStyle, err = fx.NewStyle(&excelize.Style{Border: cellBorder})
	if err != nil {
		return styles, err
	}

	// Bull rows - green text
	styles.BullStyle, err = fx.NewStyle(&excelize.Style{
		CustomNumFmt: &priceFmt,
		Font:         &excelize.Font{Color: "16A34A"},
		Alignment:    right,
		Border:       cellBorder,
	})
	if err != nil {
		return styles, err
	}

	// Bear rows - red text
	styles.BearStyle, err = fx.NewStyle(&excelize.Style{
		CustomNumFmt: &priceFmt,
		Font:         &excelize.Font{Color: "DC2626"},
		Alignment:    right,
		Border:       cellBorder,
	})
	if err != nil {
		return styles, err
	}

	timeFmt := "yyyy-mm-dd hh:mm:ss"
	styles.TimeStyle, err = fx.NewStyle(&excelize.Style{CustomNumFmt: &timeFmt, Border: cellBorder})
	if err != nil {
		return styles, err
	}

	return styles, nil
}

// WriteHeader writes a styled header row and freezes it
func (r *DefaultExcelReporter) WriteHeader(fx *excelize.File, sheet string, headers []string, styles ExcelStyles) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle); err != nil {
			return err
		}
	}

	return fx.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// setRow writes values from column A of row with one style per column
func setRow(fx *excelize.File, sheet string, row int, values []interface{}, styles []int) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		if i < len(styles) {
			if err := fx.SetCellStyle(sheet, cell, cell, styles[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *DefaultExcelReporter) writeOrderBookSheet(fx *excelize.File, book types.OrderBook, styles ExcelStyles) error {
	sheet := orderBookSheet
	if err := r.WriteHeader(fx, sheet, []string{"Side", "Level", "Price", "Amount", "Total"}, styles); err != nil {
		return err
	}
	fx.SetColWidth(sheet, "A", "B", 8)
	fx.SetColWidth(sheet, "C", "E", 16)

	row := 2
	write := func(side string, priceStyle int, entries []types.OrderBookEntry) error {
		for i, e := range entries {
			values := []interface{}{side, i + 1, e.Price, e.Amount, e.Total}
			rowStyles := []int{styles.BaseStyle, styles.BaseStyle, priceStyle, styles.AmountStyle, styles.AmountStyle}
			if err := setRow(fx, sheet, row, values, rowStyles); err != nil {
				return err
			}
			row++
		}
		return nil
	}

	if err := write("ask", styles.BearStyle, book.Asks); err != nil {
		return err
	}
	if err := write("bid", styles.BullStyle, book.Bids); err != nil {
		return err
	}

	row++
	if err := setRow(fx, sheet, row, []interface{}{"Spread", "", book.Spread}, []int{styles.BaseStyle, styles.BaseStyle, styles.PriceStyle}); err != nil {
		return err
	}
	row++
	return setRow(fx, sheet, row, []interface{}{"Spread %", "", book.SpreadPercent}, []int{styles.BaseStyle, styles.BaseStyle, styles.PercentStyle})
}

func (r *DefaultExcelReporter) writeTradesSheet(fx *excelize.File, trades []types.Trade, styles ExcelStyles) error {
	sheet := tradesSheet
	if err := r.WriteHeader(fx, sheet, []string{"ID", "Side", "Price", "Amount", "Time"}, styles); err != nil {
		return err
	}
	fx.SetColWidth(sheet, "A", "B", 10)
	fx.SetColWidth(sheet, "C", "D", 14)
	fx.SetColWidth(sheet, "E", "E", 20)

	for i, tr := range trades {
		priceStyle := styles.BearStyle
		if tr.Side == types.SideBuy {
			priceStyle = styles.BullStyle
		}
		values := []interface{}{tr.ID, string(tr.Side), tr.Price, tr.Amount, tr.Timestamp}
		rowStyles := []int{styles.BaseStyle, styles.BaseStyle, priceStyle, styles.AmountStyle, styles.TimeStyle}
		if err := setRow(fx, sheet, i+2, values, rowStyles); err != nil {
			return err
		}
	}
	return nil
}

func (r *DefaultExcelReporter) writeCandlesSheet(fx *excelize.File, candles []types.Candle, styles ExcelStyles) error {
	sheet := candlesSheet
	if err := r.WriteHeader(fx, sheet, []string{"Time", "Open", "High", "Low", "Close", "Volume"}, styles); err != nil {
		return err
	}
	fx.SetColWidth(sheet, "A", "A", 20)
	fx.SetColWidth(sheet, "B", "F", 14)

	for i, c := range candles {
		closeStyle := styles.BearStyle
		if c.IsBullish() {
			closeStyle = styles.BullStyle
		}
		values := []interface{}{c.Time, c.Open, c.High, c.Low, c.Close, c.Volume}
		rowStyles := []int{styles.TimeStyle, styles.PriceStyle, styles.PriceStyle, styles.PriceStyle, closeStyle, styles.CurrencyStyle}
		if err := setRow(fx, sheet, i+2, values, rowStyles); err != nil {
			return err
		}
	}
	return nil
}

func (r *DefaultExcelReporter) writeWatchlistSheet(fx *excelize.File, list []types.Ticker, favorites map[string]bool, styles ExcelStyles) error {
	sheet := watchlistSheet
	headers := []string{"Favorite", "Symbol", "Name", "Price", "24h Change", "24h %", "24h High", "24h Low", "Volume", "Market Cap"}
	if err := r.WriteHeader(fx, sheet, headers, styles); err != nil {
		return err
	}
	fx.SetColWidth(sheet, "A", "C", 12)
	fx.SetColWidth(sheet, "D", "J", 18)

	for i, t := range list {
		fav := ""
		if favorites[t.Symbol] {
			fav = "★"
		}
		changeStyle := styles.BearStyle
		if t.IsPositive() {
			changeStyle = styles.BullStyle
		}
		values := []interface{}{fav, t.Symbol, t.Name, t.Price, t.Change24h, t.ChangePercent24h, t.High24h, t.Low24h, t.Volume24h, t.MarketCap}
		rowStyles := []int{
			styles.BaseStyle, styles.BaseStyle, styles.BaseStyle,
			styles.PriceStyle, changeStyle, styles.PercentStyle,
			styles.PriceStyle, styles.PriceStyle, styles.CurrencyStyle, styles.CurrencyStyle,
		}
		if err := setRow(fx, sheet, i+2, values, rowStyles); err != nil {
			return err
		}
	}
	return nil
}

// Package-level convenience function
func WriteSnapshotXLSX(view DashboardView, path string) error {
	reporter := NewDefaultExcelReporter()
	return reporter.WriteSnapshotXLSX(view, path)
}

// SnapshotSummary describes the row count of each exported sheet
func SnapshotSummary(view DashboardView) string {
	snap := view.Snapshot
	return fmt.Sprintf("%s=%d %s=%d %s=%d %s=%d",
		orderBookSheet, len(snap.OrderBook.Bids)+len(snap.OrderBook.Asks),
		tradesSheet, len(snap.Trades),
		candlesSheet, len(snap.Candles),
		watchlistSheet, len(view.Watchlist))
}
