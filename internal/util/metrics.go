package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_queries_total",
		Help: "Total number of sales queries by kind (page, export)",
	}, []string{"kind"})

	QueryCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_query_cache_total",
		Help: "Query cache lookups by cache and result (hit, miss)",
	}, []string{"cache", "result"})

	PipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sales_pipeline_duration_seconds",
		Help:    "Latency of query pipeline executions on cache miss",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	PipelineErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_pipeline_errors_total",
		Help: "Total number of failed pipeline executions by stage",
	}, []string{"stage"})

	ExportTruncatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_export_truncated_total",
		Help: "Total number of exports cut at the configured row cap",
	})

	DatasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sales_dataset_rows",
		Help: "Number of transactions in the current snapshot",
	})

	DatasetReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_dataset_reloads_total",
		Help: "Total number of dataset reloads by outcome",
	}, []string{"status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
