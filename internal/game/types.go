// internal/game/types.go
//
// Core type definitions for the daily guessing engine.
// Defines:
//   - Guess: one scored attempt (name, distance, direction).
//   - MaxTries: default attempt cap per day.
//   - The engine's sentinel errors.

package game

import (
	"errors"

	"github.com/kommundle/go-server/internal/geo"
)

// MaxTries is the default number of attempts per day.
const MaxTries = 6

var (
	// ErrUnknownEntity means the guess text matched no catalog entity.
	ErrUnknownEntity = errors.New("game: unknown municipality")

	// ErrGameAlreadyEnded means an append was attempted after the day's
	// game ended. The sequence is left untouched.
	ErrGameAlreadyEnded = errors.New("game: already ended")
)

// Guess is one scored attempt. Immutable once created; DistanceMeters of 0
// means an exact match.
type Guess struct {
	Name           string        `json:"name"`
	DistanceMeters int           `json:"distanceMeters"`
	Direction      geo.Direction `json:"direction"`
}
