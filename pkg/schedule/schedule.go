// Package schedule is the read-only game and roster collaborator. It answers
// "which games are on this date" and "who plays for this team" from the
// schedule database and has no effect on the auction core.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Dates in the schedule database carry the upstream feed's civil format,
// e.g. "Wed, Aug 27, 2026".
const dateLayout = "Mon, Jan 02, 2006"

// Game is one scheduled matchup.
type Game struct {
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
}

// Source defines the lookups the API layer needs.
type Source interface {
	GamesOn(ctx context.Context, date time.Time) ([]Game, error)
	Roster(ctx context.Context, team string) ([]string, error)
}

// Store implements Source using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ Source = (*Store)(nil)

// GamesOn returns the matchups scheduled for the given date.
func (s *Store) GamesOn(ctx context.Context, date time.Time) ([]Game, error) {
	const query = `SELECT home_team, visitor_team FROM games WHERE date = $1`

	rows, err := s.pool.Query(ctx, query, date.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("schedule: query games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		var g Game
		if err := rows.Scan(&g.HomeTeam, &g.AwayTeam); err != nil {
			return nil, fmt.Errorf("schedule: scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("schedule: iterate games: %w", err)
	}
	return games, nil
}

// Roster returns the player names on the given team.
func (s *Store) Roster(ctx context.Context, team string) ([]string, error) {
	const query = `SELECT player FROM players WHERE team = $1`

	rows, err := s.pool.Query(ctx, query, team)
	if err != nil {
		return nil, fmt.Errorf("schedule: query roster: %w", err)
	}
	defer rows.Close()

	var players []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("schedule: scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("schedule: iterate roster: %w", err)
	}
	return players, nil
}
