package persistence

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sqlpager_queries_total",
		Help: "Total number of queries, counts and updates executed.",
	})

	metricExecutionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sqlpager_execution_failures_total",
		Help: "Total number of statements the data source failed to execute.",
	})

	metricRowsMapped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sqlpager_rows_mapped_total",
		Help: "Total number of rows mapped into records.",
	})

	metricMappingFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sqlpager_mapping_failures_total",
		Help: "Total number of paging operations aborted by a mapping failure.",
	})

	metricOpenCursors = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sqlpager_open_cursors",
		Help: "Number of cursors currently open.",
	})
)
