package reporting

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

// DefaultCSVReporter implements CSV output functionality
type DefaultCSVReporter struct{}

// NewDefaultCSVReporter creates a new CSV reporter
func NewDefaultCSVReporter() *DefaultCSVReporter {
	return &DefaultCSVReporter{}
}

// WriteTradesCSV writes the trade tape to a CSV file, newest trade first
func (r *DefaultCSVReporter) WriteTradesCSV(trades []types.Trade, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return exportError(err, "create directory")
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return exportError(err, "create csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{"ID", "Side", "Price", "Amount", "Timestamp"}); err != nil {
		return exportError(err, "write csv")
	}

	for _, t := range trades {
		row := []string{
			t.ID,
			strings.ToUpper(string(t.Side)),
			strconv.FormatFloat(t.Price, 'f', 8, 64),
			strconv.FormatFloat(t.Amount, 'f', 8, 64),
			t.Timestamp.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(row); err != nil {
			return exportError(err, "write csv")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return exportError(err, "flush csv")
	}
	return nil
}

// Package-level convenience function
func WriteTradesCSV(trades []types.Trade, path string) error {
	reporter := NewDefaultCSVReporter()
	return reporter.WriteTradesCSV(trades, path)
}
