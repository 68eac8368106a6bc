package domain

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// ConnIDPrefix prefixes every connection id.
const ConnIDPrefix = "conn-"

// GenerateConnID generates a connection id using ULID.
// Format: conn-{ulid_lowercase}, 31 characters total.
func GenerateConnID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return ConnIDPrefix + strings.ToLower(id.String()), nil
}

// ValidateConnID reports whether id has the form produced by GenerateConnID.
func ValidateConnID(id string) bool {
	if !strings.HasPrefix(id, ConnIDPrefix) {
		return false
	}
	_, err := ulid.ParseStrict(strings.ToUpper(id[len(ConnIDPrefix):]))
	return err == nil
}
