// Package metrics exposes prometheus instrumentation for the SDK's outbound
// calls. The registry is package-local so embedding applications can mount it
// next to their own without collisions.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry collects all SDK metrics. Callers wanting to expose them mount
// this registry on their own handler.
var Registry = prometheus.NewRegistry()

var (
	httpRequests = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "arseed",
		Subsystem: "client",
		Name:      "http_requests_total",
		Help:      "Outbound HTTP requests by service client, endpoint and status code.",
	}, []string{"client", "endpoint", "status"})

	httpDuration = promauto.With(Registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "arseed",
		Subsystem: "client",
		Name:      "http_request_duration_seconds",
		Help:      "Outbound HTTP request latency by service client and endpoint.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"client", "endpoint"})

	paymentFlows = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "arseed",
		Subsystem: "client",
		Name:      "payment_flows_total",
		Help:      "Submit-and-pay outcomes (paid, submit_failed, payment_failed).",
	}, []string{"outcome"})
)

// ObserveRequest records one outbound HTTP request. A status of 0 means the
// request never produced a response (transport failure).
func ObserveRequest(client, endpoint string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(client, endpoint, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(client, endpoint).Observe(elapsed.Seconds())
}

// Payment outcome labels.
const (
	PaymentPaid          = "paid"
	PaymentSubmitFailed  = "submit_failed"
	PaymentPaymentFailed = "payment_failed"
)

// CountPayment records the outcome of one submit-and-pay flow.
func CountPayment(outcome string) {
	paymentFlows.WithLabelValues(outcome).Inc()
}
