package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Market data metrics
	regenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nextrade_dashboard_regenerations_total",
			Help: "Total number of order book, trade tape and candle regenerations",
		},
		[]string{"symbol"},
	)

	regenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nextrade_dashboard_regeneration_seconds",
			Help:    "Time spent synthesizing a market snapshot",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)

	selectedPrice = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nextrade_dashboard_selected_price",
			Help: "Reference price of the selected instrument",
		},
		[]string{"symbol"},
	)

	flashesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nextrade_dashboard_price_flashes_total",
			Help: "Total number of price flash pulses",
		},
		[]string{"direction"},
	)

	// Order entry metrics
	ordersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nextrade_dashboard_orders_total",
			Help: "Total number of order intents by outcome",
		},
		[]string{"symbol", "side", "outcome"},
	)

	// Error metrics
	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nextrade_dashboard_errors_total",
			Help: "Total number of errors",
		},
		[]string{"category"},
	)
)

func init() {
	// Register metrics
	prometheus.MustRegister(regenerationsTotal)
	prometheus.MustRegister(regenerationDuration)
	prometheus.MustRegister(selectedPrice)
	prometheus.MustRegister(flashesTotal)
	prometheus.MustRegister(ordersTotal)
	prometheus.MustRegister(errorsTotal)
}

// MetricsHandler handles Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordRegeneration records one snapshot regeneration for symbol
func RecordRegeneration(symbol string, price, seconds float64) {
	regenerationsTotal.WithLabelValues(symbol).Inc()
	regenerationDuration.Observe(seconds)
	selectedPrice.Reset()
	selectedPrice.WithLabelValues(symbol).Set(price)
}

// RecordFlash records a price flash pulse
func RecordFlash(direction string) {
	flashesTotal.WithLabelValues(direction).Inc()
}

// RecordOrder records an order intent outcome (submitted, cancelled, rejected)
func RecordOrder(symbol, side, outcome string) {
	ordersTotal.WithLabelValues(symbol, side, outcome).Inc()
}

// RecordError records an error metric
func RecordError(category string) {
	errorsTotal.WithLabelValues(category).Inc()
}
