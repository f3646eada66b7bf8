package store

import (
	"context"

	"github.com/AdamBeresnev/billiards-league/internal/league"
	"github.com/jmoiron/sqlx"
)

type PlayerStore struct {
	db *sqlx.DB
}

const (
	listPlayersQuery         = "SELECT name, handicap FROM player ORDER BY name ASC"
	getPlayerQuery           = "SELECT name, handicap FROM player WHERE name = ?"
	listPlayerSummariesQuery = `
		SELECT p.name, p.handicap,
			EXISTS (SELECT 1 FROM game g WHERE g.winner_name = p.name OR g.loser_name = p.name) AS has_game_history
		FROM player p
		ORDER BY p.name ASC
	`
	upsertPlayerQuery = `
		INSERT INTO player (name, handicap) VALUES (:name, :handicap)
		ON CONFLICT (name) DO UPDATE SET handicap = excluded.handicap
	`
	// the guard lives in the statement so a game recorded concurrently still blocks the delete
	deletePlayerWithoutGamesQuery = `
		DELETE FROM player
		WHERE name = ?
		AND NOT EXISTS (SELECT 1 FROM game WHERE winner_name = ? OR loser_name = ?)
	`
)

func NewPlayerStore(db *sqlx.DB) *PlayerStore {
	return &PlayerStore{db: db}
}

func (s *PlayerStore) ListPlayers(ctx context.Context) ([]league.Player, error) {
	var players []league.Player
	err := s.db.SelectContext(ctx, &players, listPlayersQuery)
	return players, err
}

func (s *PlayerStore) ListPlayerSummaries(ctx context.Context) ([]league.PlayerSummary, error) {
	var players []league.PlayerSummary
	err := s.db.SelectContext(ctx, &players, listPlayerSummariesQuery)
	return players, err
}

func (s *PlayerStore) GetPlayer(ctx context.Context, name string) (*league.Player, error) {
	var player league.Player
	err := s.db.GetContext(ctx, &player, getPlayerQuery, name)
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *PlayerStore) GetPlayerTx(ctx context.Context, tx *sqlx.Tx, name string) (*league.Player, error) {
	var player league.Player
	err := tx.GetContext(ctx, &player, getPlayerQuery, name)
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// GetHandicaps returns the handicaps of the named players that exist.
func (s *PlayerStore) GetHandicaps(ctx context.Context, names []string) (map[string]int, error) {
	handicaps := make(map[string]int, len(names))
	if len(names) == 0 {
		return handicaps, nil
	}

	query, args, err := sqlx.In("SELECT name, handicap FROM player WHERE name IN (?)", names)
	if err != nil {
		return nil, err
	}

	var players []league.Player
	if err := s.db.SelectContext(ctx, &players, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, p := range players {
		handicaps[p.Name] = p.Handicap
	}
	return handicaps, nil
}

func (s *PlayerStore) UpsertPlayer(ctx context.Context, player *league.Player) error {
	_, err := s.db.NamedExecContext(ctx, upsertPlayerQuery, player)
	return err
}

// DeletePlayerWithoutGames deletes the player only when no game mentions them and
// reports whether a row was removed.
func (s *PlayerStore) DeletePlayerWithoutGames(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, deletePlayerWithoutGamesQuery, name, name, name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
