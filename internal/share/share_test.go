package share_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kommundle/go-server/internal/game"
	"github.com/kommundle/go-server/internal/share"
)

func seq(distances ...int) []game.Guess {
	out := make([]game.Guess, len(distances))
	for i, d := range distances {
		out[i] = game.Guess{Name: "Oslo", DistanceMeters: d}
	}
	return out
}

// squareCount counts emoji squares in a row regardless of color.
func squareCount(row string) int {
	return strings.Count(row, "🟩") + strings.Count(row, "🟨") + strings.Count(row, "⬜")
}

func TestEncodeWonGame(t *testing.T) {
	t.Parallel()

	cfg := share.DefaultConfig()
	got, err := share.Encode(cfg, seq(500_000, 50_000, 0), "2023-02-27")
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 5)
	require.Equal(t, "#Kommundle #3 3/6", lines[0])
	require.Equal(t, "🟩🟩🟨⬜⬜", lines[1]) // 500 km → 50%
	require.Equal(t, "🟩🟩🟩🟩🟨", lines[2]) // 50 km → 95%
	require.Equal(t, "🟩🟩🟩🟩🟩", lines[3]) // exact match → 100%
	require.Equal(t, "https://kommundle.no", lines[4])
}

func TestEncodeLostGame(t *testing.T) {
	t.Parallel()

	cfg := share.DefaultConfig()
	distances := []int{900_000, 700_000, 500_000, 300_000, 100_000, 20_000}
	got, err := share.Encode(cfg, seq(distances...), "2023-02-25")
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 8)
	require.Equal(t, "#Kommundle #1 X/6", lines[0])
	for _, row := range lines[1 : len(lines)-1] {
		require.Equal(t, 5, squareCount(row))
	}
}

func TestEncodeIdempotent(t *testing.T) {
	t.Parallel()

	cfg := share.DefaultConfig()
	s := seq(250_000, 0)
	a, err := share.Encode(cfg, s, "2024-03-01")
	require.NoError(t, err)
	b, err := share.Encode(cfg, s, "2024-03-01")
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestEncodeRespectsConfig(t *testing.T) {
	t.Parallel()

	cfg := share.DefaultConfig()
	cfg.Title = "Testdle"
	cfg.URL = "https://example.test"
	got, err := share.Encode(cfg, seq(0), "2023-02-24")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(got, "#Testdle #0 1/6\n"))
	require.True(t, strings.HasSuffix(got, "\nhttps://example.test"))
}

func TestEncodeRejectsBadDayKey(t *testing.T) {
	t.Parallel()

	_, err := share.Encode(share.DefaultConfig(), seq(0), "24-02-2023")
	require.Error(t, err)
}

func TestProximityPercent(t *testing.T) {
	t.Parallel()

	require.Equal(t, 100, share.ProximityPercent(0))
	require.Equal(t, 95, share.ProximityPercent(50_000))
	require.Equal(t, 50, share.ProximityPercent(500_000))
	require.Equal(t, 0, share.ProximityPercent(1_000_000))
	require.Equal(t, 0, share.ProximityPercent(5_000_000), "clamped below zero")

	// Monotonically decreasing.
	prev := 101
	for _, d := range []int{0, 10_000, 100_000, 400_000, 900_000, 2_000_000} {
		p := share.ProximityPercent(d)
		require.LessOrEqual(t, p, prev)
		prev = p
	}
}
