package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics records timings and cache behavior for the rate pipeline.
type QuoteMetrics struct {
	requestDuration  *prometheus.HistogramVec
	upstreamDuration *prometheus.HistogramVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
}

// NewQuoteMetrics registers the pipeline metrics on the provided registerer.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_request_duration_seconds",
		Help:    "Duration of rate quote requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "yampi_call_duration_seconds",
		Help:    "Duration of outbound Yampi calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"call"})
	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sku_cache_hits_total",
		Help: "SKU cache lookups served from memory.",
	})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sku_cache_misses_total",
		Help: "SKU cache lookups that required a catalog call.",
	})
	reg.MustRegister(requestDuration, upstreamDuration, cacheHits, cacheMisses)
	return &QuoteMetrics{
		requestDuration:  requestDuration,
		upstreamDuration: upstreamDuration,
		cacheHits:        cacheHits,
		cacheMisses:      cacheMisses,
	}
}

// ObserveRequest records the duration of one quote request by outcome.
func (m *QuoteMetrics) ObserveRequest(outcome string, duration time.Duration) {
	if m == nil || m.requestDuration == nil {
		return
	}
	m.requestDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// ObserveUpstream records the duration of one outbound call by call name.
func (m *QuoteMetrics) ObserveUpstream(call string, duration time.Duration) {
	if m == nil || m.upstreamDuration == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(call).Observe(duration.Seconds())
}

// IncCacheHit counts a SKU cache hit.
func (m *QuoteMetrics) IncCacheHit() {
	if m == nil || m.cacheHits == nil {
		return
	}
	m.cacheHits.Inc()
}

// IncCacheMiss counts a SKU cache miss.
func (m *QuoteMetrics) IncCacheMiss() {
	if m == nil || m.cacheMisses == nil {
		return
	}
	m.cacheMisses.Inc()
}
