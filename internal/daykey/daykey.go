// internal/daykey/daykey.go
//
// Date keys and the deterministic per-day random stream.
// Responsibilities:
//   - DateKey: the stable YYYY-MM-DD key (UTC) that seeds target selection
//     and keys persisted guess sequences.
//   - LegacyDateKey: the older DD-MM-YYYY key, kept only for display.
//   - DayNumber: whole days since the game epoch, for the share header.
//   - Stream: a seeded pseudo-random float stream that is identical across
//     platforms and process restarts for a given seed string.
//
// Both keys for a request must be derived from the same captured instant;
// two separate clock reads around midnight would disagree.

package daykey

import (
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC. This is the seed key: every player
// shares it regardless of their local time zone.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// LegacyDateKey returns DD-MM-YYYY in UTC for the same instant.
// Display/versioning only; never used as a seed.
func LegacyDateKey(t time.Time) string {
	return t.UTC().Format("02-01-2006")
}

// ParseKey parses a DateKey back into a UTC midnight instant.
func ParseKey(key string) (time.Time, error) {
	return time.Parse("2006-01-02", key)
}

// DayNumber returns the number of whole days from epoch to the day named
// by key. Returns 0 and an error for malformed keys.
func DayNumber(epoch time.Time, key string) (int, error) {
	day, err := ParseKey(key)
	if err != nil {
		return 0, err
	}
	return int(day.Sub(epoch.UTC().Truncate(24*time.Hour)).Hours() / 24), nil
}

// Stream is a deterministic pseudo-random stream derived from a seed
// string. The construction is SHA-256 over seed||counter, so the sequence
// depends only on the seed bytes, not on platform, Go version, or any
// process state.
type Stream struct {
	seed    []byte
	counter uint64
}

// NewStream builds a Stream for the given seed string.
func NewStream(seed string) *Stream {
	return &Stream{seed: []byte(seed)}
}

// Float64 returns the next value in [0, 1).
func (s *Stream) Float64() float64 {
	var ctr [8]byte
	binary.BigEndian.PutUint64(ctr[:], s.counter)
	s.counter++

	h := sha256.New()
	h.Write(s.seed)
	h.Write(ctr[:])
	sum := h.Sum(nil)

	// Top 53 bits of the digest give a uniform float in [0,1).
	n := binary.BigEndian.Uint64(sum[:8]) >> 11
	return float64(n) / (1 << 53)
}
