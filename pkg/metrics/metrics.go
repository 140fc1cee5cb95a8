package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HTTP request metrics
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studysheets_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"path", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studysheets_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
)

// SearchResults records how many sheets a search returned, split by the source
// that produced them ("filter" for the column predicate, "keyword" for the join).
var SearchResults = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "studysheets_search_results",
		Help:    "Number of sheets returned by a search, by source",
		Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
	},
	[]string{"source"},
)

// Database connection pool metrics
var (
	DBOpenConns = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "studysheets_db_open_connections",
			Help: "Number of open connections in the DB pool",
		},
	)

	DBIdleConns = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "studysheets_db_idle_connections",
			Help: "Number of idle connections in the DB pool",
		},
	)

	DBInUseConns = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "studysheets_db_in_use_connections",
			Help: "Number of in-use connections in the DB pool",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration, SearchResults)
	prometheus.MustRegister(DBOpenConns, DBIdleConns, DBInUseConns)
}
