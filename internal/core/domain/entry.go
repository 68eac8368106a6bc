package domain

import "time"

// Entry is the value stored under one key.
//
// A zero ExpiresAt means the entry never expires. Entries are immutable once
// stored; SET replaces the whole Entry, so a reader never observes a value
// paired with another write's expiry.
type Entry struct {
	Value     string
	ExpiresAt time.Time
}

// NewEntry creates an entry that expires ttl after now.
// A ttl <= 0 creates an entry without expiration.
func NewEntry(value string, ttl time.Duration, now time.Time) Entry {
	e := Entry{Value: value}
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}
	return e
}

// HasExpiry reports whether the entry carries an expiration time.
func (e Entry) HasExpiry() bool {
	return !e.ExpiresAt.IsZero()
}

// IsExpired reports whether the entry is no longer visible at now.
// An entry whose expiry equals now is expired.
func (e Entry) IsExpired(now time.Time) bool {
	return e.HasExpiry() && !now.Before(e.ExpiresAt)
}

// TTL returns the remaining lifetime at now, or -1 if the entry never expires.
func (e Entry) TTL(now time.Time) time.Duration {
	if !e.HasExpiry() {
		return -1
	}
	if d := e.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
