// Package metrics holds the Prometheus collectors of the storefront.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "teslo",
		Name:      "orders_created_total",
		Help:      "Orders persisted after a successful total check.",
	})

	OrdersPaid = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "teslo",
		Name:      "orders_paid_total",
		Help:      "Orders marked as paid.",
	})

	// OrderRejections counts refused order creations and payment confirmations by reason.
	OrderRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "teslo",
		Name:      "order_rejections_total",
		Help:      "Order creations and payment confirmations refused, by reason.",
	}, []string{"reason"})

	CartActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "teslo",
		Name:      "cart_actions_total",
		Help:      "Cart transitions dispatched, by action.",
	}, []string{"action"})

	OrderEventsConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "teslo",
		Name:      "order_events_consumed_total",
		Help:      "Order events read from the broker, by type.",
	}, []string{"type"})

	PaymentProviderRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "teslo",
		Name:      "payment_provider_request_seconds",
		Help:      "Latency of calls to the payment provider.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "outcome"})
)
