package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// HealthChecker tracks the last snapshot the dashboard produced.
type HealthChecker struct {
	mu               sync.RWMutex
	started          time.Time
	lastRegeneration time.Time
	symbol           string
	price            float64
	errors           []string
}

type HealthStatus struct {
	Status           string    `json:"status"`
	Timestamp        time.Time `json:"timestamp"`
	LastRegeneration time.Time `json:"last_regeneration"`
	Symbol           string    `json:"symbol"`
	Price            float64   `json:"price"`
	Uptime           string    `json:"uptime"`
	Errors           []string  `json:"errors,omitempty"`
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		started: time.Now(),
		errors:  make([]string, 0),
	}
}

// MarkRegenerated records a fresh snapshot for symbol at price.
func (h *HealthChecker) MarkRegenerated(symbol string, price float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastRegeneration = time.Now()
	h.symbol = symbol
	h.price = price
}

// RecordError keeps the last ten error messages.
func (h *HealthChecker) RecordError(err error) {
	if err == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.errors = append(h.errors, err.Error())
	if len(h.errors) > 10 {
		h.errors = h.errors[len(h.errors)-10:]
	}
}

// Status returns the current health snapshot.
func (h *HealthChecker) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if h.lastRegeneration.IsZero() {
		status = "starting"
	}
	if len(h.errors) > 0 {
		status = "degraded"
	}

	return HealthStatus{
		Status:           status,
		Timestamp:        time.Now(),
		LastRegeneration: h.lastRegeneration,
		Symbol:           h.symbol,
		Price:            h.price,
		Uptime:           time.Since(h.started).Round(time.Second).String(),
		Errors:           append([]string(nil), h.errors...),
	}
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	health := h.Status()

	w.Header().Set("Content-Type", "application/json")
	if health.Status != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(health)
}
