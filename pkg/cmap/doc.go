// Package cmap provides a sharded concurrent map keyed by strings.
//
// Keys are spread over a power-of-two number of shards using murmur3, and
// every shard is guarded by its own RWMutex:
//
//   - Reads (Get, Has, Count) take the shard read lock
//   - Writes (Set, Delete, GetOrSet) take the shard write lock
//   - Conditional removal (DeleteIf, DeleteFunc) evaluates the predicate
//     under the write lock, so the value tested is the value removed
//
// Usage:
//
//	m := cmap.NewWithShards[Entry](32)
//	m.Set("key", entry)
//	val, ok := m.Get("key")
package cmap
