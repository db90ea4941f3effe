package util

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// NewRunIDAt generates a time-sortable run ID for t.
// Safe for concurrent use; runs started by parallel workers stay ordered.
func NewRunIDAt(t time.Time) string {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// RunTime parses a run ID and returns the time it was created.
func RunTime(id string) (time.Time, error) {
	parsed, err := ulid.Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}

// ShortID returns the last 7 characters of an ID in lowercase.
// For ULIDs, the last part has more entropy than the first (timestamp) part.
func ShortID(id string) string {
	if len(id) <= 7 {
		return strings.ToLower(id)
	}
	return strings.ToLower(id[len(id)-7:])
}
