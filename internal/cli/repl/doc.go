// Package repl provides the interactive mode of respkv-cli.
//
// Each input line is split into arguments (double and single quotes group
// words, backslash escapes inside double quotes) and passed to an Executor,
// which sends it to the server and prints the reply. History is kept in a
// plain text file between sessions.
package repl
