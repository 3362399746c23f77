package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portal_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	httpErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_http_errors_total",
		Help: "Total number of failed HTTP requests by error code",
	}, []string{"method", "path", "code"})

	billsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_bills_created_total",
		Help: "Count of maintenance bills created",
	})

	paymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_payments_total",
		Help: "Count of bill payment attempts by result",
	}, []string{"result"})

	residentsRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_residents_registered_total",
		Help: "Count of resident accounts registered",
	})
)

// ObserveHTTPRequest records request count and latency for one request.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveHTTPError increments the error counter for a mapped domain error.
func ObserveHTTPError(method, path, code string) {
	httpErrorsTotal.WithLabelValues(method, path, code).Inc()
}

// ObserveBillCreated increments the bill creation counter.
func ObserveBillCreated() {
	billsCreatedTotal.Inc()
}

// ObservePayment increments the payment counter with a result label.
func ObservePayment(result string) {
	paymentsTotal.WithLabelValues(result).Inc()
}

// ObserveResidentRegistered increments the registration counter.
func ObserveResidentRegistered() {
	residentsRegisteredTotal.Inc()
}
