package metric

import "github.com/prometheus/client_golang/prometheus"

// KeyspaceStats is a snapshot of the key space counters.
type KeyspaceStats struct {
	Keys          int
	ExpiredLazy   uint64
	ExpiredActive uint64
}

// KeyspaceCollector reads key space counters at scrape time.
type KeyspaceCollector struct {
	stats func() KeyspaceStats

	keys    *prometheus.Desc
	expired *prometheus.Desc
}

// NewKeyspaceCollector creates a collector that calls stats on every scrape.
func NewKeyspaceCollector(stats func() KeyspaceStats) *KeyspaceCollector {
	return &KeyspaceCollector{
		stats: stats,
		keys: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "keys"),
			"Keys stored, including expired keys not yet removed.",
			nil, nil,
		),
		expired: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "expired_keys_total"),
			"Keys removed after expiry, by path.",
			[]string{"path"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *KeyspaceCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keys
	ch <- c.expired
}

// Collect implements prometheus.Collector.
func (c *KeyspaceCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(s.Keys))
	ch <- prometheus.MustNewConstMetric(c.expired, prometheus.CounterValue, float64(s.ExpiredLazy), "lazy")
	ch <- prometheus.MustNewConstMetric(c.expired, prometheus.CounterValue, float64(s.ExpiredActive), "active")
}
