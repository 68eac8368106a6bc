package config

import "time"

// CLIConfig is the configuration for respkv-cli.
type CLIConfig struct {
	// Server is the default "host:port" to connect to.
	Server string `yaml:"server"`
	// Output is the default output format: plain, json, yaml.
	Output string `yaml:"output"`
	// Timeout bounds dialing and each command round trip.
	Timeout time.Duration `yaml:"timeout"`
	// HistoryFile is where the REPL keeps its history. Empty disables it.
	HistoryFile string `yaml:"history_file"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server:      "127.0.0.1:6379",
		Output:      "plain",
		Timeout:     5 * time.Second,
		HistoryFile: defaultHistoryFile(),
	}
}
