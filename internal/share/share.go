// internal/share/share.go
//
// Encodes a finished day's guess sequence into the shareable result text:
// a header with the game title, day number and guess count, one row of five
// emoji squares per guess, and a footer URL.
//
// Encoding is pure; clipboard handling and notifications belong to clients.

package share

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kommundle/go-server/internal/daykey"
	"github.com/kommundle/go-server/internal/game"
)

const (
	greenSquare  = "🟩"
	yellowSquare = "🟨"
	whiteSquare  = "⬜"

	// proximityRangeMeters is the distance at which proximity bottoms out
	// at 0%. Closeness falls off linearly from 100% at 0 m to 0% at
	// 1000 km, which spans the catalog's farthest guess-to-target pairs.
	proximityRangeMeters = 1_000_000
)

// Config carries the externally tunable share constants.
type Config struct {
	Title    string    // game title in the header, e.g. "Kommundle"
	URL      string    // footer line
	Epoch    time.Time // day-count epoch (day #0)
	MaxTries int
}

// DefaultConfig matches the public kommundle.no deployment.
func DefaultConfig() Config {
	return Config{
		Title:    "Kommundle",
		URL:      "https://kommundle.no",
		Epoch:    time.Date(2023, time.February, 24, 0, 0, 0, 0, time.UTC),
		MaxTries: game.MaxTries,
	}
}

// Encode renders the share text for a finished sequence on the given day.
// Encoding the same sequence twice yields byte-identical output.
func Encode(cfg Config, seq []game.Guess, dayKey string) (string, error) {
	dayNum, err := daykey.DayNumber(cfg.Epoch, dayKey)
	if err != nil {
		return "", fmt.Errorf("share: bad day key %q: %w", dayKey, err)
	}

	label := "X"
	if game.Won(seq) {
		label = strconv.Itoa(len(seq))
	}
	header := fmt.Sprintf("#%s #%d %s/%d", cfg.Title, dayNum, label, cfg.MaxTries)

	rows := make([]string, 0, len(seq)+2)
	rows = append(rows, header)
	for _, g := range seq {
		rows = append(rows, squaresRow(g.DistanceMeters))
	}
	rows = append(rows, cfg.URL)
	return strings.Join(rows, "\n"), nil
}

// ProximityPercent maps a distance to a closeness score in [0, 100].
// Monotonically decreasing; 0 m is 100%.
func ProximityPercent(distanceMeters int) int {
	p := math.Round(100 * (1 - float64(distanceMeters)/proximityRangeMeters))
	if p < 0 {
		return 0
	}
	return int(p)
}

// squaresRow renders one guess as five squares: each green square is a full
// 20 points of proximity, a yellow square a half step of at least 10, and
// white squares pad the rest.
func squaresRow(distanceMeters int) string {
	percent := ProximityPercent(distanceMeters)
	greens := percent / 20
	yellows := 0
	if percent-greens*20 >= 10 {
		yellows = 1
	}
	whites := 5 - greens - yellows
	if whites < 0 {
		whites = 0
	}
	return strings.Repeat(greenSquare, greens) +
		strings.Repeat(yellowSquare, yellows) +
		strings.Repeat(whiteSquare, whites)
}
