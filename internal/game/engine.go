// internal/game/engine.go
//
// Core rules for a single day's guess sequence.
// Responsibilities:
//   - Derive game state (ended / won) from a guess sequence.
//   - Enforce the append invariants: at most maxTries guesses, and nothing
//     after an exact match.
//   - Resolve raw guess text against the catalog and score it against the
//     day's target.
//
// Notes:
//   - A sequence is a plain []Guess; persistence is the store package's
//     concern. All functions here are pure.
//   - Distance 0 is the win condition. Direction is not meaningful for an
//     exact match and is ignored by Won.
package game

import (
	"github.com/kommundle/go-server/internal/entity"
	"github.com/kommundle/go-server/internal/geo"
)

// Ended reports whether the day's game is over: either every attempt is
// used or the last guess was an exact match.
func Ended(seq []Guess, maxTries int) bool {
	if len(seq) >= maxTries {
		return true
	}
	return Won(seq)
}

// Won reports whether the sequence ends in an exact match.
func Won(seq []Guess) bool {
	return len(seq) > 0 && seq[len(seq)-1].DistanceMeters == 0
}

// Append returns a new sequence with g added, or ErrGameAlreadyEnded if the
// sequence is already ended. The input sequence is never mutated.
func Append(seq []Guess, g Guess, maxTries int) ([]Guess, error) {
	if Ended(seq, maxTries) {
		return nil, ErrGameAlreadyEnded
	}
	out := make([]Guess, len(seq), len(seq)+1)
	copy(out, seq)
	return append(out, g), nil
}

// Resolve validates raw guess text against the catalog and scores the
// matched entity against the target.
//
// Validation rules:
//   - Lookup is a case-insensitive exact name match, no prefix or fuzzy
//     matching. A miss returns ErrUnknownEntity.
//
// The returned Guess carries the catalog's canonical name, not the raw
// input, so persisted sequences render consistently.
func Resolve(raw string, target entity.Entity) (Guess, error) {
	e, ok := entity.Find(raw)
	if !ok {
		return Guess{}, ErrUnknownEntity
	}
	dist, dir := geo.Score(
		geo.Point{Lat: e.Lat, Lng: e.Lng},
		geo.Point{Lat: target.Lat, Lng: target.Lng},
	)
	return Guess{Name: e.Name, DistanceMeters: dist, Direction: dir}, nil
}
