// Package buildinfo provides build information for respkv.
//
// Version, Commit and BuildTime are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/respkv/internal/infra/buildinfo.Version=v1.0.0"
//
// When they are not injected, Get falls back to the VCS data the Go
// toolchain embeds in the binary.
package buildinfo
