// Package httpserver provides the operational HTTP endpoint of respkv.
//
// Routes:
//
//   - GET /metrics: Prometheus text exposition
//   - GET /health: liveness with build version and key count
//
// Every route runs behind Recover and RequestID; AccessLog writes one debug
// record per request.
package httpserver
