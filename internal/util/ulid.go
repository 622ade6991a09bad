package util

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string using a monotonic entropy source
// seeded with the current time. Good enough for package-internal
// identifiers; these only need to be unique within one build.
func NewULID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// NewSeededULID generates a ULID from a fixed timestamp and seed so tests
// can assert on deterministic identifiers.
func NewSeededULID(ts time.Time, seed int64) string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
	return ulid.MustNew(ulid.Timestamp(ts), entropy).String()
}
