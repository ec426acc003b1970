package entity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kommundle/go-server/internal/entity"
)

func TestInitLoadsEmbeddedCatalog(t *testing.T) {
	require.NoError(t, entity.Init())

	total, withImage := entity.Stats()
	require.Greater(t, total, 0)
	require.Greater(t, withImage, 0)
	require.LessOrEqual(t, withImage, total)
	require.Len(t, entity.All(), total)
	require.Len(t, entity.Pool(), withImage)
}

func TestFindIsCaseInsensitiveExact(t *testing.T) {
	require.NoError(t, entity.Init())

	for _, name := range []string{"Oslo", "oslo", "OSLO", "  Oslo  "} {
		e, ok := entity.Find(name)
		require.True(t, ok, name)
		require.Equal(t, "Oslo", e.Name)
		require.Equal(t, "0301", e.Code)
	}

	// Exact match only, no prefix completion.
	_, ok := entity.Find("Osl")
	require.False(t, ok)
	_, ok = entity.Find("Atlantis")
	require.False(t, ok)
}

func TestSelectDailyDeterministic(t *testing.T) {
	require.NoError(t, entity.Init())
	pool := entity.Pool()

	first, err := entity.SelectDaily("2024-03-01", pool)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := entity.SelectDaily("2024-03-01", pool)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
	require.Contains(t, pool, first)
}

func TestSelectDailyVariesAcrossDays(t *testing.T) {
	require.NoError(t, entity.Init())
	pool := entity.Pool()

	// Over a month of keys at least two distinct targets must show up;
	// a constant selector would be a broken stream.
	seen := map[string]struct{}{}
	for _, key := range []string{
		"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-05",
		"2024-03-06", "2024-03-07", "2024-03-08", "2024-03-09", "2024-03-10",
	} {
		e, err := entity.SelectDaily(key, pool)
		require.NoError(t, err)
		seen[e.Name] = struct{}{}
	}
	require.Greater(t, len(seen), 1)
}

func TestSelectDailyEmptyPool(t *testing.T) {
	_, err := entity.SelectDaily("2024-03-01", nil)
	require.ErrorIs(t, err, entity.ErrEmptyPool)
}
