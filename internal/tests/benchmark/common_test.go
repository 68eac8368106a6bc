package benchmark

import (
	"context"
	"fmt"
	"net"
	"runtime"
	"testing"
	"time"

	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
)

// KeyCounts defines the key space sizes for benchmarking.
var KeyCounts = []int{10000, 100000, 500000, 1000000}

// SmallKeyCounts for quick benchmarks.
var SmallKeyCounts = []int{1000, 10000, 100000}

func keyName(i int) string {
	return fmt.Sprintf("key:%08d", i)
}

// prefillStore stores count keys; every other key expires after ttl when
// ttl > 0.
func prefillStore(store *memory.Store, count int, ttl time.Duration) []string {
	keys := make([]string, count)
	for i := range keys {
		keys[i] = keyName(i)
		var d time.Duration
		if ttl > 0 && i%2 == 0 {
			d = ttl
		}
		store.Set(keys[i], "value", d)
	}
	return keys
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithKeyCounts runs a benchmark function with various key counts.
func runWithKeyCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("keys_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}

// startServer runs a server on a loopback port for the duration of b.
func startServer(b *testing.B, reg *metric.Registry) (string, *memory.Store) {
	b.Helper()

	store := memory.New()
	store.Start()
	params := memory.NewConfigStore(nil)

	srv, err := redisserver.New(redisserver.DefaultConfig(), store, params, reg, logger.Discard())
	if err != nil {
		b.Fatalf("redisserver.New() error = %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		b.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = srv.Serve(ctx, ln) }()

	b.Cleanup(func() {
		cancel()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = srv.Shutdown(shutdownCtx)
		_ = store.Close()
	})

	return ln.Addr().String(), store
}
