package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Redis.Addr != DefaultRedisAddr {
		t.Errorf("Redis.Addr = %q, want %q", cfg.Server.Redis.Addr, DefaultRedisAddr)
	}
	if cfg.Server.Redis.MaxClients != DefaultMaxClients {
		t.Errorf("Redis.MaxClients = %d, want %d", cfg.Server.Redis.MaxClients, DefaultMaxClients)
	}
	if cfg.Server.Redis.Decoder != DefaultDecoder {
		t.Errorf("Redis.Decoder = %q, want %q", cfg.Server.Redis.Decoder, DefaultDecoder)
	}
	if cfg.Server.Redis.RateLimit != 0 {
		t.Errorf("Redis.RateLimit = %d, want 0", cfg.Server.Redis.RateLimit)
	}
	if cfg.Server.Metrics.Enabled {
		t.Error("Metrics should be disabled by default")
	}

	if cfg.Storage.ShardCount != DefaultShardCount {
		t.Errorf("ShardCount = %d, want %d", cfg.Storage.ShardCount, DefaultShardCount)
	}
	if cfg.Storage.SweepInterval != DefaultSweepInterval {
		t.Errorf("SweepInterval = %v, want %v", cfg.Storage.SweepInterval, DefaultSweepInterval)
	}

	if cfg.Persistence.Dir != "" || cfg.Persistence.DBFilename != "" {
		t.Errorf("Persistence should be unset by default, got %+v", cfg.Persistence)
	}

	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, DefaultLogFormat)
	}

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr string
	}{
		{
			name:   "tokens decoder",
			mutate: func(c *ServerConfig) { c.Server.Redis.Decoder = "tokens" },
		},
		{
			name: "metrics enabled",
			mutate: func(c *ServerConfig) {
				c.Server.Metrics.Enabled = true
			},
		},
		{
			name:    "empty redis addr",
			mutate:  func(c *ServerConfig) { c.Server.Redis.Addr = "" },
			wantErr: "server.redis.addr is required",
		},
		{
			name:    "redis addr without port",
			mutate:  func(c *ServerConfig) { c.Server.Redis.Addr = "localhost" },
			wantErr: "server.redis.addr",
		},
		{
			name:    "zero max clients",
			mutate:  func(c *ServerConfig) { c.Server.Redis.MaxClients = 0 },
			wantErr: "max_clients",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *ServerConfig) { c.Server.Redis.IdleTimeout = -time.Second },
			wantErr: "timeouts",
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *ServerConfig) { c.Server.Redis.RateLimit = -1 },
			wantErr: "rate_limit",
		},
		{
			name:    "unknown decoder",
			mutate:  func(c *ServerConfig) { c.Server.Redis.Decoder = "json" },
			wantErr: "unknown decoder",
		},
		{
			name: "metrics port conflict",
			mutate: func(c *ServerConfig) {
				c.Server.Metrics.Enabled = true
				c.Server.Metrics.Addr = c.Server.Redis.Addr
			},
			wantErr: "conflicts",
		},
		{
			name: "metrics addr ignored when disabled",
			mutate: func(c *ServerConfig) {
				c.Server.Metrics.Addr = ""
			},
		},
		{
			name:    "shard count not power of two",
			mutate:  func(c *ServerConfig) { c.Storage.ShardCount = 12 },
			wantErr: "power of two",
		},
		{
			name:    "zero sweep interval",
			mutate:  func(c *ServerConfig) { c.Storage.SweepInterval = 0 },
			wantErr: "sweep_interval",
		},
		{
			name:    "bad log level",
			mutate:  func(c *ServerConfig) { c.Log.Level = "verbose" },
			wantErr: "log.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *ServerConfig) { c.Log.Format = "xml" },
			wantErr: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Verify(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Verify() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Verify() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
