package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrderTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transitions_total",
		Help: "Total number of order status transitions",
	}, []string{"to_status"})

	OrderTransitionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transitions_rejected_total",
		Help: "Total number of rejected order status transitions",
	}, []string{"reason"})

	CouponValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coupon_validations_total",
		Help: "Total number of coupon validation attempts",
	}, []string{"result"})

	CouponRedemptionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coupon_redemptions_total",
		Help: "Total number of successful coupon redemptions",
	})

	ReviewsModeratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reviews_moderated_total",
		Help: "Total number of review moderation actions",
	}, []string{"action"})

	RatingRecomputeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rating_recompute_latency_seconds",
		Help:    "Latency of product rating aggregate recomputation",
		Buckets: prometheus.DefBuckets,
	})

	NotificationsDispatchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifications_dispatched_total",
		Help: "Total number of notifications handed to the push gateway",
	})

	AuthFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_failures_total",
		Help: "Total number of failed authentication attempts",
	}, []string{"reason"})

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
