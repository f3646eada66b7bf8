package store

import (
	"context"

	"github.com/AdamBeresnev/billiards-league/internal/league"
	"github.com/jmoiron/sqlx"
)

type GameStore struct {
	db *sqlx.DB
}

const (
	listGamesQuery = "SELECT * FROM game ORDER BY id ASC"
	getGameQuery   = "SELECT * FROM game WHERE id = ?"
	// mirrors the pairing lookup of the result form: both names in both columns
	findPairingGamesQuery = `
		SELECT * FROM game
		WHERE winner_name IN (?, ?)
		AND loser_name IN (?, ?)
	`
	listGamesForPlayerQuery = `
		SELECT * FROM game
		WHERE winner_name = ? OR loser_name = ?
		ORDER BY played_at DESC, id DESC
	`
	countGamesForPlayerQuery = "SELECT COUNT(*) FROM game WHERE winner_name = ? OR loser_name = ?"
	insertGameQuery          = `
		INSERT INTO game (winner_name, loser_name, score, bonus)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`
	deleteGameQuery = "DELETE FROM game WHERE id = ?"
)

func NewGameStore(db *sqlx.DB) *GameStore {
	return &GameStore{db: db}
}

func (s *GameStore) ListGames(ctx context.Context) ([]league.Game, error) {
	var games []league.Game
	err := s.db.SelectContext(ctx, &games, listGamesQuery)
	return games, err
}

func (s *GameStore) GetGame(ctx context.Context, id int64) (*league.Game, error) {
	var game league.Game
	err := s.db.GetContext(ctx, &game, getGameQuery, id)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *GameStore) GetGameTx(ctx context.Context, tx *sqlx.Tx, id int64) (*league.Game, error) {
	var game league.Game
	err := tx.GetContext(ctx, &game, getGameQuery, id)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *GameStore) ListGamesForPlayer(ctx context.Context, name string) ([]league.Game, error) {
	var games []league.Game
	err := s.db.SelectContext(ctx, &games, listGamesForPlayerQuery, name, name)
	return games, err
}

func (s *GameStore) CountGamesForPlayer(ctx context.Context, name string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, countGamesForPlayerQuery, name, name)
	return count, err
}

func (s *GameStore) FindPairingGamesTx(ctx context.Context, tx *sqlx.Tx, a, b string) ([]league.Game, error) {
	var games []league.Game
	err := tx.SelectContext(ctx, &games, findPairingGamesQuery, a, b, a, b)
	return games, err
}

// CreateGameTx inserts the game and returns its server-assigned id. A second game
// for the same pairing fails with ErrDuplicate.
func (s *GameStore) CreateGameTx(ctx context.Context, tx *sqlx.Tx, game *league.Game) (int64, error) {
	var id int64
	err := tx.GetContext(ctx, &id, insertGameQuery, game.WinnerName, game.LoserName, game.Score, game.Bonus)
	if isUniqueViolation(err) {
		return 0, ErrDuplicate
	}
	return id, err
}

func (s *GameStore) DeleteGame(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, deleteGameQuery, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
