// Package domain defines the core domain models for respkv.
//
//   - entry.go: stored values and their expiration
//   - command.go: decoded commands and their kinds
//   - errors.go: coded domain errors shared by storage and server layers
package domain
