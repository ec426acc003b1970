package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kommundle/go-server/internal/daykey"
	"github.com/kommundle/go-server/internal/entity"
	"github.com/kommundle/go-server/internal/game"
	"github.com/kommundle/go-server/internal/httpserver"
	"github.com/kommundle/go-server/internal/share"
	"github.com/kommundle/go-server/internal/store"
)

// newTestClient returns a server over the memory store and a cookie-jarred
// client, so the anonymous player cookie persists across requests.
func newTestClient(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	require.NoError(t, entity.Init())

	srv := httpserver.New(store.NewMemoryStore(), nil, share.DefaultConfig())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return ts, &http.Client{Jar: jar}
}

func getJSON(t *testing.T, c *http.Client, url string, out any) *http.Response {
	t.Helper()
	res, err := c.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res
}

func postGuess(t *testing.T, c *http.Client, url, guess string) (*http.Response, map[string]any) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"guess": guess})
	res, err := c.Post(url+"/daily/guess", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res, out
}

// todaysTarget recomputes the deterministic target the same way the
// server does.
func todaysTarget(t *testing.T) entity.Entity {
	t.Helper()
	target, err := entity.SelectDaily(daykey.DateKey(time.Now()), entity.Pool())
	require.NoError(t, err)
	return target
}

// wrongGuess picks any catalog name that is not the target.
func wrongGuess(target entity.Entity) string {
	for _, e := range entity.All() {
		if e.Name != target.Name {
			return e.Name
		}
	}
	return ""
}

func TestHealth(t *testing.T) {
	ts, c := newTestClient(t)
	res := getJSON(t, c, ts.URL+"/health", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestDailyStateForNewPlayer(t *testing.T) {
	ts, c := newTestClient(t)
	target := todaysTarget(t)

	var state struct {
		DayKey      string       `json:"dayKey"`
		DisplayDate string       `json:"displayDate"`
		ImageCode   string       `json:"imageCode"`
		Guesses     []game.Guess `json:"guesses"`
		MaxTries    int          `json:"maxTries"`
		State       string       `json:"state"`
	}
	res := getJSON(t, c, ts.URL+"/daily", &state)
	require.Equal(t, http.StatusOK, res.StatusCode)

	require.Equal(t, daykey.DateKey(time.Now()), state.DayKey)
	require.Equal(t, daykey.LegacyDateKey(time.Now()), state.DisplayDate)
	require.Equal(t, target.Code, state.ImageCode)
	require.Empty(t, state.Guesses)
	require.Equal(t, game.MaxTries, state.MaxTries)
	require.Equal(t, "in_progress", state.State)
}

func TestDailyGuessFlow(t *testing.T) {
	ts, c := newTestClient(t)
	target := todaysTarget(t)

	// Unknown municipality: 400, nothing recorded.
	res, _ := postGuess(t, c, ts.URL, "Atlantis")
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	// A wrong-but-valid guess stays in progress with a scored distance.
	res, out := postGuess(t, c, ts.URL, wrongGuess(target))
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "in_progress", out["state"])
	g := out["guess"].(map[string]any)
	require.Greater(t, g["distanceMeters"].(float64), 0.0)
	require.NotEmpty(t, g["direction"])

	// Share before the end is refused.
	resp, err := c.Get(ts.URL + "/daily/share")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Guessing the target wins.
	res, out = postGuess(t, c, ts.URL, strings.ToLower(target.Name))
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "won", out["state"])
	require.Equal(t, 2.0, out["guesses"])

	// Further guesses are rejected, not silently dropped.
	res, _ = postGuess(t, c, ts.URL, target.Name)
	require.Equal(t, http.StatusConflict, res.StatusCode)

	// Sequence survives in the state endpoint.
	var state struct {
		Guesses []game.Guess `json:"guesses"`
		State   string       `json:"state"`
	}
	getJSON(t, c, ts.URL+"/daily", &state)
	require.Len(t, state.Guesses, 2)
	require.Equal(t, "won", state.State)

	// And the share text encodes it.
	var shareRes struct {
		Text string `json:"text"`
	}
	res2 := getJSON(t, c, ts.URL+"/daily/share", &shareRes)
	require.Equal(t, http.StatusOK, res2.StatusCode)
	lines := strings.Split(shareRes.Text, "\n")
	require.Len(t, lines, 4) // header, two rows, footer
	require.True(t, strings.HasPrefix(lines[0], "#Kommundle #"))
	require.True(t, strings.HasSuffix(lines[0], "2/6"))
	require.Equal(t, "🟩🟩🟩🟩🟩", lines[2])
}

func TestDailyLeaderboard(t *testing.T) {
	ts, c := newTestClient(t)
	target := todaysTarget(t)

	res, _ := postGuess(t, c, ts.URL, target.Name)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var lb struct {
		Date string `json:"date"`
		Top  []struct {
			OwnerID string `json:"ownerId"`
			Guesses int    `json:"guesses"`
		} `json:"top"`
	}
	getJSON(t, c, ts.URL+"/daily/leaderboard", &lb)
	require.Equal(t, daykey.DateKey(time.Now()), lb.Date)
	require.Len(t, lb.Top, 1)
	require.Equal(t, 1, lb.Top[0].Guesses)
}

func TestPlayersAreIsolated(t *testing.T) {
	ts, c1 := newTestClient(t)
	target := todaysTarget(t)

	res, _ := postGuess(t, c1, ts.URL, target.Name)
	require.Equal(t, http.StatusOK, res.StatusCode)

	// A second client has its own cookie and an untouched sequence.
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	c2 := &http.Client{Jar: jar}

	var state struct {
		Guesses []game.Guess `json:"guesses"`
		State   string       `json:"state"`
	}
	getJSON(t, c2, ts.URL+"/daily", &state)
	require.Empty(t, state.Guesses)
	require.Equal(t, "in_progress", state.State)
}
