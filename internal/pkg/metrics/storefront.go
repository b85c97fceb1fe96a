package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Storefront records cart, checkout and HTTP metrics.
// A nil *Storefront is valid and records nothing.
type Storefront struct {
	checkouts     *prometheus.CounterVec
	cartMutations *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// NewStorefront registers the storefront metrics on the provided registerer.
func NewStorefront(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return &Storefront{}
	}
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_checkout_outcomes_total",
		Help: "Checkout submissions by outcome.",
	}, []string{"status"})
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"operation"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	reg.MustRegister(checkouts, cartMutations, httpDuration)
	return &Storefront{
		checkouts:     checkouts,
		cartMutations: cartMutations,
		httpDuration:  httpDuration,
	}
}

// ObserveCheckout counts one checkout submission with the given outcome.
func (s *Storefront) ObserveCheckout(status string) {
	if s == nil || s.checkouts == nil {
		return
	}
	s.checkouts.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncCartMutation counts one successful cart mutation.
func (s *Storefront) IncCartMutation(operation string) {
	if s == nil || s.cartMutations == nil {
		return
	}
	s.cartMutations.WithLabelValues(normalizeLabel(operation)).Inc()
}

// ObserveHTTPRequest records the latency of one HTTP request.
func (s *Storefront) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if s == nil || s.httpDuration == nil {
		return
	}
	s.httpDuration.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Observe(duration.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
