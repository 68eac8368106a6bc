package domain

import (
	"testing"
	"time"
)

func TestNewEntry(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	e := NewEntry("v", 0, now)
	if e.HasExpiry() {
		t.Error("entry without ttl should not expire")
	}
	if e.IsExpired(now.Add(100 * 365 * 24 * time.Hour)) {
		t.Error("entry without ttl reported expired")
	}
	if e.TTL(now) != -1 {
		t.Errorf("TTL() = %v, want -1", e.TTL(now))
	}

	e = NewEntry("v", -time.Second, now)
	if e.HasExpiry() {
		t.Error("negative ttl should create an entry without expiration")
	}

	e = NewEntry("v", 50*time.Millisecond, now)
	if !e.ExpiresAt.Equal(now.Add(50 * time.Millisecond)) {
		t.Errorf("ExpiresAt = %v", e.ExpiresAt)
	}
}

func TestEntry_IsExpired(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	e := NewEntry("v", 50*time.Millisecond, now)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"at creation", now, false},
		{"just before", now.Add(49 * time.Millisecond), false},
		{"exactly at expiry", now.Add(50 * time.Millisecond), true},
		{"after", now.Add(60 * time.Millisecond), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.IsExpired(tt.at); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntry_TTL(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	e := NewEntry("v", time.Second, now)

	if got := e.TTL(now.Add(400 * time.Millisecond)); got != 600*time.Millisecond {
		t.Errorf("TTL() = %v, want 600ms", got)
	}
	if got := e.TTL(now.Add(2 * time.Second)); got != 0 {
		t.Errorf("TTL() after expiry = %v, want 0", got)
	}
}
