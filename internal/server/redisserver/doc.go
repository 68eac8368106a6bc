// Package redisserver provides the RESP protocol server for respkv.
//
//   - decoder.go: request framing (binary-safe "resp" and chunk "tokens")
//   - command.go: CommandHandler, dispatch of PING, ECHO, SET, GET, CONFIG
//   - server.go: listener, bounded connection pool and per-connection loop
//
// Every connection shares one memory.Store and one memory.ConfigStore.
// Per-command failures become error replies and the connection continues;
// I/O errors and protocol limit violations end only that connection.
package redisserver
