// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily game.
// Exposes four endpoints under /daily:
//   - GET  /daily             → today's keys, clue image code, and guess state
//   - POST /daily/guess       → submit a guess for today's municipality
//   - GET  /daily/share       → share text once the day's game has ended
//   - GET  /daily/leaderboard → winners of a day, fewest guesses first
//
// The target is never created per player: it is a pure function of the
// UTC date key and the catalog's image pool, so every player gets the
// same municipality. Guess sequences are persisted per owner (user ID or
// anonymous cookie) and day key.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/kommundle/go-server/internal/daykey"
	"github.com/kommundle/go-server/internal/entity"
	"github.com/kommundle/go-server/internal/game"
	"github.com/kommundle/go-server/internal/share"
	"github.com/kommundle/go-server/internal/store"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDailyState)
		r.Post("/guess", s.handleDailyGuess)
		r.Get("/share", s.handleDailyShare)
		r.Get("/leaderboard", s.handleDailyLeaderboard)
	})
}

// today captures the clock once and derives everything that depends on it:
// both day keys and the day's target. Deriving the keys from separate clock
// reads could disagree across midnight.
func (s *Server) today() (dayKey, legacyKey string, target entity.Entity, err error) {
	now := time.Now()
	dayKey = daykey.DateKey(now)
	legacyKey = daykey.LegacyDateKey(now)
	target, err = entity.SelectDaily(dayKey, entity.Pool())
	return
}

// ownerID returns the authenticated user ID if logged in, otherwise the
// stable anonymous cookie ID.
func (s *Server) ownerID(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return s.ensureAnonID(w, r)
}

// gameState summarizes a sequence for responses.
func gameState(seq []game.Guess, maxTries int) string {
	switch {
	case game.Won(seq):
		return "won"
	case game.Ended(seq, maxTries):
		return "lost"
	default:
		return "in_progress"
	}
}

// -----------------------------------------------------------------------------
// GET /daily

// dailyStateRes is returned by GET /daily. ImageCode keys the illustration
// asset that serves as the day's clue; Reveal carries the target's name but
// only once the game is lost.
type dailyStateRes struct {
	DayKey      string       `json:"dayKey"`
	DisplayDate string       `json:"displayDate"`
	ImageCode   string       `json:"imageCode"`
	Guesses     []game.Guess `json:"guesses"`
	MaxTries    int          `json:"maxTries"`
	State       string       `json:"state"`
	Reveal      string       `json:"reveal,omitempty"`
}

// handleDailyState returns today's keys, the clue image code, and the
// caller's guesses so far.
func (s *Server) handleDailyState(w http.ResponseWriter, r *http.Request) {
	uid := s.ownerID(w, r)
	dayKey, legacyKey, target, err := s.today()
	if err != nil {
		http.Error(w, `{"error":"no_target"}`, http.StatusInternalServerError)
		return
	}

	seq, err := s.store.LoadSequence(r.Context(), uid, dayKey)
	if err != nil {
		log.Error().Err(err).Str("day", dayKey).Msg("load sequence")
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
		return
	}

	res := dailyStateRes{
		DayKey:      dayKey,
		DisplayDate: legacyKey,
		ImageCode:   target.Code,
		Guesses:     seq,
		MaxTries:    s.cfg.MaxTries,
		State:       gameState(seq, s.cfg.MaxTries),
	}
	if res.State == "lost" {
		res.Reveal = target.Name
	}
	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// POST /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	Guess string `json:"guess"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Guess   game.Guess `json:"guess"`
	State   string     `json:"state"` // in_progress | won | lost
	Guesses int        `json:"guesses"`
	Reveal  string     `json:"reveal,omitempty"` // target name when lost on the final guess
}

// handleDailyGuess validates and applies a guess for today.
// - Resolves the text against the catalog (case-insensitive exact match).
// - Rejects once the day's game has ended.
// - Scores distance + direction against the deterministic target.
// - Persists the extended sequence; updates user stats on the final guess.
func (s *Server) handleDailyGuess(w http.ResponseWriter, r *http.Request) {
	uid := s.ownerID(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if p.Guess == "" {
		http.Error(w, `{"error":"empty_guess"}`, http.StatusBadRequest)
		return
	}

	dayKey, _, target, err := s.today()
	if err != nil {
		http.Error(w, `{"error":"no_target"}`, http.StatusInternalServerError)
		return
	}

	seq, err := s.store.LoadSequence(r.Context(), uid, dayKey)
	if err != nil {
		log.Error().Err(err).Str("day", dayKey).Msg("load sequence")
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
		return
	}

	g, err := game.Resolve(p.Guess, target)
	if errors.Is(err, game.ErrUnknownEntity) {
		http.Error(w, `{"error":"unknown_municipality"}`, http.StatusBadRequest)
		return
	}

	next, err := game.Append(seq, g, s.cfg.MaxTries)
	if errors.Is(err, game.ErrGameAlreadyEnded) {
		http.Error(w, `{"error":"game_over"}`, http.StatusConflict)
		return
	}

	if err := s.store.SaveSequence(r.Context(), uid, dayKey, next); err != nil {
		log.Error().Err(err).Str("day", dayKey).Msg("save sequence")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	state := gameState(next, s.cfg.MaxTries)
	res := dailyGuessRes{Guess: g, State: state, Guesses: len(next)}
	if state == "lost" {
		res.Reveal = target.Name
	}

	// Stats are per-account; guests have none. Best effort, non-fatal.
	if state != "in_progress" {
		if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
			tx, err := s.db.Begin()
			if err == nil {
				if err := s.bumpStats(tx, me.ID, state == "won"); err != nil {
					log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
				}
				_ = tx.Commit()
			}
		}
	}

	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// GET /daily/share

// dailyShareRes is returned by /daily/share.
type dailyShareRes struct {
	Text string `json:"text"`
}

// handleDailyShare encodes the finished day into share text. Conflict
// before the game has ended; the squares would leak the remaining tries.
func (s *Server) handleDailyShare(w http.ResponseWriter, r *http.Request) {
	uid := s.ownerID(w, r)
	dayKey, _, _, err := s.today()
	if err != nil {
		http.Error(w, `{"error":"no_target"}`, http.StatusInternalServerError)
		return
	}

	seq, err := s.store.LoadSequence(r.Context(), uid, dayKey)
	if err != nil {
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
		return
	}
	if !game.Ended(seq, s.cfg.MaxTries) {
		http.Error(w, `{"error":"not_finished"}`, http.StatusConflict)
		return
	}

	text, err := share.Encode(s.cfg, seq, dayKey)
	if err != nil {
		log.Error().Err(err).Str("day", dayKey).Msg("encode share text")
		http.Error(w, `{"error":"encode_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(dailyShareRes{Text: text})
}

// -----------------------------------------------------------------------------
// GET /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []store.LBRow `json:"top"`
}

// handleDailyLeaderboard returns the top solvers for the given date
// (default today).
func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daykey.DateKey(time.Now())
	}
	rows, err := s.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Str("day", date).Msg("leaderboard query")
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
