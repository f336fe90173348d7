package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultPathManager implements path management functionality
type DefaultPathManager struct {
	now func() time.Time
}

// NewDefaultPathManager creates a new path manager
func NewDefaultPathManager() *DefaultPathManager {
	return &DefaultPathManager{now: time.Now}
}

// GetDefaultExportPath returns exports/<SYMBOL>_<timestamp>.<ext>
func (p *DefaultPathManager) GetDefaultExportPath(symbol, ext string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		s = "UNKNOWN"
	}
	e := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	if e == "" {
		e = "xlsx"
	}

	return filepath.Join("exports", fmt.Sprintf("%s_%s.%s", s, p.now().Format("20060102_150405"), e))
}

// EnsureDirectoryExists creates the parent directory of path if needed
func (p *DefaultPathManager) EnsureDirectoryExists(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// Package-level convenience function
func DefaultExportPath(symbol, ext string) string {
	manager := NewDefaultPathManager()
	return manager.GetDefaultExportPath(symbol, ext)
}
