package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	if err := verifyLog(&cfg.Log); err != nil {
		return err
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	r := &cfg.Redis
	if err := verifyAddr("server.redis.addr", r.Addr); err != nil {
		return err
	}
	if r.MaxClients < 1 {
		return errors.New("server.redis.max_clients must be at least 1")
	}
	if r.ReadTimeout < 0 || r.WriteTimeout < 0 || r.IdleTimeout < 0 {
		return errors.New("server.redis timeouts must not be negative")
	}
	if r.RateLimit < 0 {
		return errors.New("server.redis.rate_limit must not be negative")
	}
	switch strings.ToLower(r.Decoder) {
	case "", "resp", "tokens":
	default:
		return fmt.Errorf("server.redis.decoder: unknown decoder %q (want resp or tokens)", r.Decoder)
	}

	if cfg.Metrics.Enabled {
		if err := verifyAddr("server.metrics.addr", cfg.Metrics.Addr); err != nil {
			return err
		}
		if cfg.Metrics.Addr == r.Addr {
			return fmt.Errorf("server.metrics.addr conflicts with server.redis.addr (%s)", r.Addr)
		}
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	if cfg.ShardCount < 1 || cfg.ShardCount&(cfg.ShardCount-1) != 0 {
		return fmt.Errorf("storage.shard_count must be a power of two, got %d", cfg.ShardCount)
	}
	if cfg.SweepInterval <= 0 {
		return errors.New("storage.sweep_interval must be positive")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if !logger.ValidLevel(cfg.Level) {
		return fmt.Errorf("log.level: unknown level %q", cfg.Level)
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		return fmt.Errorf("log.format: unknown format %q", cfg.Format)
	}
	return nil
}

func verifyAddr(name, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s is required", name)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
