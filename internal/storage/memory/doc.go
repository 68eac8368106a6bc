// Package memory provides the in-memory key space and the runtime
// configuration parameters of respkv.
//
//   - store.go: Store, the shared key-value map with per-key expiration
//   - params.go: ConfigStore, the string-to-string CONFIG parameter map
//
// Expiration:
//
// Reads apply a lazy check, so an expired entry is never returned. A single
// background sweeper started with Start removes expired entries that are no
// longer read. Removal always re-checks the entry under the shard write lock,
// so a value written after the expired one is never deleted.
//
// Thread Safety:
//
// All operations are thread-safe. Store locks one shard per operation;
// ConfigStore uses a single RWMutex. Locks are never held across I/O.
package memory
