// Package output formats server replies for respkv-cli.
//
//   - plain: redis-cli style text ("PONG", "\"v\"", "(nil)", "1) ...")
//   - json: {"type": ..., "value": ...}, indented
//   - yaml: the same document as YAML
package output
