// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// This is a lightweight persistence layer used for ephemeral play,
// primarily in development/testing, or when durability is not required.
//
// Characteristics:
//   - Stores guess sequences keyed by owner|date in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - A missing key loads as an empty sequence, never an error.

package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/kommundle/go-server/internal/game"
)

// Store persists per-day guess sequences keyed by player and day.
// Implementations may be backed by memory (this file), SQLite, etc.
type Store interface {
	// LoadSequence fetches the guesses for a player and day in order,
	// defaulting to an empty sequence when none exists.
	LoadSequence(ctx context.Context, ownerID, dayKey string) ([]game.Guess, error)

	// SaveSequence overwrites the stored sequence for a player and day.
	SaveSequence(ctx context.Context, ownerID, dayKey string, seq []game.Guess) error

	// Leaderboard lists players who solved the given day, fewest guesses
	// first.
	Leaderboard(ctx context.Context, dayKey string, limit int) ([]LBRow, error)
}

// LBRow is one leaderboard entry.
type LBRow struct {
	OwnerID string `json:"ownerId"`
	Guesses int    `json:"guesses"`
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu   sync.RWMutex            // guards seqs map
	seqs map[string][]game.Guess // keyed by ownerID|dayKey
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{seqs: make(map[string][]game.Guess)}
}

func key(ownerID, dayKey string) string { return ownerID + "|" + dayKey }

// LoadSequence returns a copy of the stored sequence, or empty if missing.
func (m *memory) LoadSequence(ctx context.Context, ownerID, dayKey string) ([]game.Guess, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seq := m.seqs[key(ownerID, dayKey)]
	out := make([]game.Guess, len(seq))
	copy(out, seq)
	return out, nil
}

// SaveSequence stores a copy of seq, replacing any previous value.
func (m *memory) SaveSequence(ctx context.Context, ownerID, dayKey string, seq []game.Guess) error {
	cp := make([]game.Guess, len(seq))
	copy(cp, seq)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seqs[key(ownerID, dayKey)] = cp
	return nil
}

// Leaderboard scans the map for winners of the given day.
func (m *memory) Leaderboard(ctx context.Context, dayKey string, limit int) ([]LBRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []LBRow{}
	suffix := "|" + dayKey
	for k, seq := range m.seqs {
		if !strings.HasSuffix(k, suffix) || !game.Won(seq) {
			continue
		}
		out = append(out, LBRow{OwnerID: strings.TrimSuffix(k, suffix), Guesses: len(seq)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Guesses != out[j].Guesses {
			return out[i].Guesses < out[j].Guesses
		}
		return out[i].OwnerID < out[j].OwnerID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
