// Package confloader provides the configuration loading mechanism.
//
// It layers configuration sources with koanf:
//
//  1. Command-line flags (LoadMap)
//  2. Environment variables (RESPKV_ prefix)
//  3. Configuration file (YAML)
//  4. Default values (LoadDefaults)
//
// Higher entries override lower ones. Environment names are matched against
// the known keys, so RESPKV_SERVER_REDIS_MAX_CLIENTS resolves to
// server.redis.max_clients.
//
// Watcher notifies callbacks when a watched file changes; respkv-server uses
// it to apply a new log level without restarting.
package confloader
