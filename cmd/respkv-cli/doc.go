// Package main provides the entry point for respkv-cli.
//
// Usage:
//
//	respkv-cli [global flags] [command] [args]
//	respkv-cli -s 127.0.0.1:6379 set --px 100 foo bar
//	respkv-cli -o json config get dir
//	respkv-cli                      # interactive mode
package main
