package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PurchasesRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "purchases_recorded_total",
		Help: "Total number of purchases recorded",
	})

	PurchasesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "purchases_failed_total",
		Help: "Total number of failed purchase recordings",
	}, []string{"reason"})

	ProductLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "product_lookups_total",
		Help: "Total number of product lookups",
	}, []string{"result"})

	PurchaseRecordLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "purchase_record_latency_seconds",
		Help:    "Latency of the purchase recording unit of work",
		Buckets: prometheus.DefBuckets,
	})

	SalesAmountTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_amount_total",
		Help: "Accumulated sales amount in the smallest currency unit",
	}, []string{"store_code"})

	SalesItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_items_total",
		Help: "Accumulated quantity of items sold",
	}, []string{"store_code"})

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
