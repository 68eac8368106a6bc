// Package command provides CLI command definitions for respkv-cli.
//
// It uses urfave/cli/v2 for command parsing. Every subcommand opens one
// connection, sends one command and prints the reply with the selected
// formatter; running without a subcommand starts the REPL.
package command
