package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics records list query latency and line-item resolution drift.
type CatalogMetrics struct {
	queryDuration *prometheus.HistogramVec
	queryFailure  *prometheus.CounterVec
	staleItems    *prometheus.CounterVec
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	queryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_list_query_duration_seconds",
		Help:    "Duration of paginated list queries (page plus count) in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity"})
	queryFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_list_query_failures_total",
		Help: "List queries that returned an error.",
	}, []string{"entity"})
	staleItems := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_stale_line_items_total",
		Help: "Cart or order items dropped because the referenced product no longer exists.",
	}, []string{"source"})
	reg.MustRegister(queryDuration, queryFailure, staleItems)
	return &CatalogMetrics{
		queryDuration: queryDuration,
		queryFailure:  queryFailure,
		staleItems:    staleItems,
	}
}

// ObserveQuery records the duration of a list query for entity.
func (c *CatalogMetrics) ObserveQuery(entity string, duration time.Duration) {
	if c == nil || c.queryDuration == nil {
		return
	}
	c.queryDuration.WithLabelValues(normalizeLabel(entity)).Observe(duration.Seconds())
}

// IncQueryFailure increments the failure counter for entity.
func (c *CatalogMetrics) IncQueryFailure(entity string) {
	if c == nil || c.queryFailure == nil {
		return
	}
	c.queryFailure.WithLabelValues(normalizeLabel(entity)).Inc()
}

// AddStaleItems counts n dropped line items for source ("cart" or "order").
func (c *CatalogMetrics) AddStaleItems(source string, n int) {
	if c == nil || c.staleItems == nil || n <= 0 {
		return
	}
	c.staleItems.WithLabelValues(normalizeLabel(source)).Add(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
