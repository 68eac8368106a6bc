package memory

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/respkv/internal/core/domain"
	"github.com/yndnr/respkv/pkg/cmap"
)

// DefaultSweepInterval is the default period of the active expiration sweep.
const DefaultSweepInterval = 100 * time.Millisecond

// Store is the shared key space.
type Store struct {
	entries *cmap.Map[domain.Entry]

	now           func() time.Time
	sweepInterval time.Duration
	logger        *slog.Logger

	expiredLazy   atomic.Uint64
	expiredActive atomic.Uint64

	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// Option configures the Store.
type Option func(*Store)

// WithShardCount sets the number of shards (power of two).
func WithShardCount(n int) Option {
	return func(s *Store) {
		s.entries = cmap.NewWithShards[domain.Entry](n)
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithSweepInterval sets the active expiration period. Values <= 0 keep the default.
func WithSweepInterval(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.sweepInterval = d
		}
	}
}

// WithLogger sets the logger used by the sweeper.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a new store. Call Start to enable active expiration.
func New(opts ...Option) *Store {
	s := &Store{
		entries:       cmap.New[domain.Entry](),
		now:           time.Now,
		sweepInterval: DefaultSweepInterval,
		logger:        slog.Default(),
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Set stores value under key, replacing any previous entry and its expiry.
// A ttl <= 0 stores the value without expiration.
func (s *Store) Set(key, value string, ttl time.Duration) {
	s.entries.Set(key, domain.NewEntry(value, ttl, s.now()))
}

// Get returns the value stored under key if it exists and has not expired.
func (s *Store) Get(key string) (string, bool) {
	entry, ok := s.entries.Get(key)
	if !ok {
		return "", false
	}

	now := s.now()
	if entry.IsExpired(now) {
		// Another writer may have replaced the entry since the read above;
		// only drop it if what is stored now is still expired.
		if s.entries.DeleteIf(key, func(cur domain.Entry) bool { return cur.IsExpired(now) }) {
			s.expiredLazy.Add(1)
		}
		return "", false
	}

	return entry.Value, true
}

// TTL returns the remaining lifetime of key: -1 if it never expires.
// The boolean is false when the key is absent or expired.
func (s *Store) TTL(key string) (time.Duration, bool) {
	entry, ok := s.entries.Get(key)
	now := s.now()
	if !ok || entry.IsExpired(now) {
		return 0, false
	}
	return entry.TTL(now), true
}

// Len returns the number of stored entries, including expired entries not
// yet removed.
func (s *Store) Len() int {
	return s.entries.Count()
}

// DeleteExpired removes every entry expired at the current time and returns
// the count.
func (s *Store) DeleteExpired() int {
	now := s.now()
	n := s.entries.DeleteFunc(func(_ string, e domain.Entry) bool {
		return e.IsExpired(now)
	})
	s.expiredActive.Add(uint64(n))
	return n
}

// Stats is a point-in-time view of the store counters.
type Stats struct {
	Keys          int
	ExpiredLazy   uint64
	ExpiredActive uint64
}

// Stats returns the current counters.
func (s *Store) Stats() Stats {
	return Stats{
		Keys:          s.entries.Count(),
		ExpiredLazy:   s.expiredLazy.Load(),
		ExpiredActive: s.expiredActive.Load(),
	}
}

// Start launches the background sweeper. It is safe to call more than once.
func (s *Store) Start() {
	s.startOnce.Do(func() {
		go s.sweepLoop()
	})
}

// Close stops the sweeper and waits for it to exit.
func (s *Store) Close() error {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})

	// Never started: nothing to wait for.
	s.startOnce.Do(func() {
		close(s.doneCh)
	})
	<-s.doneCh
	return nil
}

func (s *Store) sweepLoop() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.DeleteExpired(); n > 0 {
				s.logger.Debug("expired keys removed", "count", n)
			}
		case <-s.stopCh:
			return
		}
	}
}
