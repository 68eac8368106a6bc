// Package main provides the entry point for respkv-server.
//
// The server speaks a subset of the Redis protocol (PING, ECHO, SET, GET,
// CONFIG GET/SET) over TCP, backed by a shared in-memory key space with
// lazy and active expiration. An optional HTTP listener serves /metrics
// and /health.
//
// Usage:
//
//	respkv-server [flags]
//	respkv-server --config /etc/respkv/config.yaml
//	respkv-server --dir /tmp/redis-files --dbfilename dump.rdb
//
// Configuration priority, lowest first: defaults, config file, RESPKV_*
// environment variables, command line flags.
package main
