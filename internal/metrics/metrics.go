package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// Business Metrics
var (
	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "items_bought_total",
			Help: "Total number of items bought, by item",
		},
		[]string{"item"},
	)

	ItemsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "items_sold_total",
			Help: "Total number of items sold, by item",
		},
		[]string{"item"},
	)

	DropsAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drops_awarded_total",
			Help: "Total number of random drops awarded, by rarity",
		},
		[]string{"rarity"},
	)

	TransactionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transactions_rejected_total",
			Help: "Total number of rejected buy/sell transactions, by reason",
		},
		[]string{"operation", "reason"},
	)

	ForcedSales = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "forced_sales_total",
			Help: "Total number of overflow-triggered forced sales",
		},
	)

	NarrativeHijacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "narrative_hijacks_total",
			Help: "Total number of sales hijacked into narrative sequences",
		},
	)
)
