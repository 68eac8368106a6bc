// Package metric provides Prometheus metrics for respkv.
//
//   - prometheus.go: Registry with command, connection and keyspace metrics
//   - collector.go: KeyspaceCollector reading store counters at scrape time
//
// Metrics include:
//
//   - Command counts by command and result, and latency histograms
//   - Active, accepted and rejected connections
//   - Key count and expired keys (lazy and active)
//
// Metrics are exposed at /metrics in Prometheus format by the httpserver
// package.
package metric
