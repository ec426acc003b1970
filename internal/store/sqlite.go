// internal/store/sqlite.go
//
// SQLite-backed Store. Guess sequences live in the guesses_v2 table, one
// row per guess, keyed by (owner_id, date, seq). The table name carries a
// schema version so an older layout can never silently merge with this one.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kommundle/go-server/internal/game"
	"github.com/kommundle/go-server/internal/geo"
)

type sqliteStore struct{ db *sql.DB }

// NewSQLiteStore wraps an open database handle. Schema is applied by the
// server's migration step, not here.
func NewSQLiteStore(db *sql.DB) Store { return &sqliteStore{db: db} }

func (s *sqliteStore) LoadSequence(ctx context.Context, ownerID, dayKey string) ([]game.Guess, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, distance_m, direction
		 FROM guesses_v2
		 WHERE owner_id=? AND date=?
		 ORDER BY seq ASC`, ownerID, dayKey,
	)
	if err != nil {
		return nil, fmt.Errorf("store: load sequence: %w", err)
	}
	defer rows.Close()

	out := []game.Guess{}
	for rows.Next() {
		var g game.Guess
		var dir string
		if err := rows.Scan(&g.Name, &g.DistanceMeters, &dir); err != nil {
			return nil, fmt.Errorf("store: scan guess: %w", err)
		}
		g.Direction = geo.Direction(dir)
		out = append(out, g)
	}
	return out, rows.Err()
}

// SaveSequence overwrites the day's rows in one transaction, preserving
// guess order in the seq column.
func (s *sqliteStore) SaveSequence(ctx context.Context, ownerID, dayKey string, seq []game.Guess) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM guesses_v2 WHERE owner_id=? AND date=?`, ownerID, dayKey); err != nil {
		return fmt.Errorf("store: clear sequence: %w", err)
	}
	for i, g := range seq {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO guesses_v2(owner_id, date, seq, name, distance_m, direction)
			 VALUES(?,?,?,?,?,?)`,
			ownerID, dayKey, i, g.Name, g.DistanceMeters, string(g.Direction)); err != nil {
			return fmt.Errorf("store: insert guess %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// Leaderboard ranks the day's winners by guess count, earliest finisher
// breaking ties. Only the last guess of a sequence can have distance 0, so
// MIN(distance_m)=0 identifies solved days.
func (s *sqliteStore) Leaderboard(ctx context.Context, dayKey string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT owner_id, COUNT(1) AS guesses
		 FROM guesses_v2
		 WHERE date=?
		 GROUP BY owner_id
		 HAVING MIN(distance_m)=0
		 ORDER BY guesses ASC, MAX(created_at) ASC
		 LIMIT ?`, dayKey, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store: leaderboard: %w", err)
	}
	defer rows.Close()

	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.OwnerID, &r.Guesses); err != nil {
			return nil, fmt.Errorf("store: scan leaderboard row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
