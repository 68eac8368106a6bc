// Package config holds the respkv-cli local settings.
//
// The file lives at ~/.respkv/cli.yaml and supplies defaults for the global
// flags; explicit flags and RESPKV_* environment variables win.
package config
