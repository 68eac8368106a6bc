package config

import "time"

// ServerConfig is the root configuration for respkv-server.
type ServerConfig struct {
	Server      ServerSection      `koanf:"server"`
	Storage     StorageSection     `koanf:"storage"`
	Persistence PersistenceSection `koanf:"persistence"`
	Log         LogSection         `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	Redis   RedisConfig   `koanf:"redis"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// RedisConfig configures the RESP protocol server.
type RedisConfig struct {
	Addr string `koanf:"addr"`

	// MaxClients bounds concurrently served connections.
	MaxClients int `koanf:"max_clients"`

	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`

	// RateLimit is commands per second per client IP; 0 disables it.
	RateLimit int `koanf:"rate_limit"`

	// Decoder is the request framing: "resp" or "tokens".
	Decoder string `koanf:"decoder"`
}

// MetricsConfig configures the /metrics and /health HTTP endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// StorageSection configures the in-memory key space.
type StorageSection struct {
	ShardCount    int           `koanf:"shard_count"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// PersistenceSection holds the parameters reported by CONFIG GET.
// They are never used to load or save data.
type PersistenceSection struct {
	Dir        string `koanf:"dir"`
	DBFilename string `koanf:"dbfilename"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
