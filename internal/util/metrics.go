package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersUpdatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_updated_total",
		Help: "Total number of orders updated",
	})

	OrdersDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_deleted_total",
		Help: "Total number of orders deleted",
	})

	OrdersSettledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_settled_total",
		Help: "Total number of orders fully paid off",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of failed order operations",
	}, []string{"reason"})

	PaymentsRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_recorded_total",
		Help: "Total number of payments recorded",
	})

	PaymentsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_deleted_total",
		Help: "Total number of payments deleted",
	})

	TransactionsRecordedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "financial_transactions_recorded_total",
		Help: "Total number of financial transactions recorded",
	}, []string{"type"})

	SnapshotRebuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_snapshot_rebuilds_total",
		Help: "Total number of dashboard snapshot rebuilds",
	}, []string{"trigger"})

	SnapshotCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_snapshot_cache_hits_total",
		Help: "Total number of dashboard reads served from cache",
	})

	DebtComputeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "debt_aggregation_latency_seconds",
		Help:    "Latency of debt aggregation and calendar expansion",
		Buckets: prometheus.DefBuckets,
	})

	ExchangeRateFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exchange_rate_fetches_total",
		Help: "Total number of exchange rate fetches",
	}, []string{"outcome"})

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
