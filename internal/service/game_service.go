package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AdamBeresnev/billiards-league/internal/events"
	"github.com/AdamBeresnev/billiards-league/internal/league"
	"github.com/AdamBeresnev/billiards-league/internal/metrics"
	"github.com/AdamBeresnev/billiards-league/internal/store"
	"github.com/jmoiron/sqlx"
)

// Publisher hands events to the bus.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

type GameService struct {
	db        *sqlx.DB
	players   *store.PlayerStore
	games     *store.GameStore
	standings *StandingsService
	publisher Publisher
	metrics   metrics.Metrics
}

func NewGameService(db *sqlx.DB, players *store.PlayerStore, games *store.GameStore, standings *StandingsService, publisher Publisher, m metrics.Metrics) *GameService {
	return &GameService{db: db, players: players, games: games, standings: standings, publisher: publisher, metrics: m}
}

// GameDetail is a game with both players' current handicaps. Unknown handicaps
// are 0. RecomputedBonus is the bonus those handicaps would award today.
type GameDetail struct {
	Game            league.Game
	WinnerHandicap  int
	LoserHandicap   int
	RecomputedBonus int
}

// Record stores a new result. The bonus comes from the stored handicaps of both
// players and each unordered pairing may only be recorded once.
func (s *GameService) Record(ctx context.Context, winner, loser, score string) (*league.Game, error) {
	winner = strings.TrimSpace(winner)
	loser = strings.TrimSpace(loser)
	score = strings.TrimSpace(score)

	if err := league.ValidateResult(winner, loser, score); err != nil {
		s.reject(err)
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storeFailure("begin", err)
	}
	defer tx.Rollback()

	winnerPlayer, err := s.players.GetPlayerTx(ctx, tx, winner)
	if isNotFound(err) {
		return nil, fmt.Errorf("%w: %s", league.ErrPlayerNotFound, winner)
	}
	if err != nil {
		return nil, storeFailure("get winner", err)
	}
	loserPlayer, err := s.players.GetPlayerTx(ctx, tx, loser)
	if isNotFound(err) {
		return nil, fmt.Errorf("%w: %s", league.ErrPlayerNotFound, loser)
	}
	if err != nil {
		return nil, storeFailure("get loser", err)
	}

	existing, err := s.games.FindPairingGamesTx(ctx, tx, winner, loser)
	if err != nil {
		return nil, storeFailure("find pairing", err)
	}
	if league.HasPlayed(existing, winner, loser) {
		s.reject(league.ErrAlreadyPlayed)
		return nil, league.ErrAlreadyPlayed
	}

	game := &league.Game{
		WinnerName: winner,
		LoserName:  loser,
		Score:      score,
		Bonus:      league.Bonus(winnerPlayer.Handicap, loserPlayer.Handicap),
	}
	id, err := s.games.CreateGameTx(ctx, tx, game)
	if errors.Is(err, store.ErrDuplicate) {
		s.reject(league.ErrAlreadyPlayed)
		return nil, league.ErrAlreadyPlayed
	}
	if err != nil {
		return nil, storeFailure("create game", err)
	}

	created, err := s.games.GetGameTx(ctx, tx, id)
	if err != nil {
		return nil, storeFailure("get game", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storeFailure("commit", err)
	}

	s.standings.Invalidate(ctx)
	s.metrics.IncGamesRecorded()
	s.publish(ctx, events.TopicGameRecorded, events.GameRecorded{
		ID:     created.ID,
		Winner: created.WinnerName,
		Loser:  created.LoserName,
		Score:  created.Score,
		Bonus:  created.Bonus,
	})

	return created, nil
}

func (s *GameService) Get(ctx context.Context, id int64) (*GameDetail, error) {
	game, err := s.games.GetGame(ctx, id)
	if isNotFound(err) {
		return nil, league.ErrGameNotFound
	}
	if err != nil {
		return nil, storeFailure("get game", err)
	}

	handicaps, err := s.players.GetHandicaps(ctx, []string{game.WinnerName, game.LoserName})
	if err != nil {
		return nil, storeFailure("get handicaps", err)
	}

	winnerHandicap := handicaps[game.WinnerName]
	loserHandicap := handicaps[game.LoserName]
	return &GameDetail{
		Game:            *game,
		WinnerHandicap:  winnerHandicap,
		LoserHandicap:   loserHandicap,
		RecomputedBonus: league.Bonus(winnerHandicap, loserHandicap),
	}, nil
}

func (s *GameService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.games.DeleteGame(ctx, id)
	if err != nil {
		return storeFailure("delete game", err)
	}
	if !deleted {
		return league.ErrGameNotFound
	}

	s.standings.Invalidate(ctx)
	s.publish(ctx, events.TopicGameDeleted, events.GameDeleted{ID: id})
	return nil
}

func (s *GameService) reject(err error) {
	reason := "invalid"
	switch {
	case errors.Is(err, league.ErrAlreadyPlayed):
		reason = "already_played"
	case errors.Is(err, league.ErrSamePlayer):
		reason = "same_player"
	case errors.Is(err, league.ErrMissingField):
		reason = "missing_field"
	}
	s.metrics.IncRejectedWrites(reason)
}

func (s *GameService) publish(ctx context.Context, topic string, payload any) {
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		slog.Error("Failed to publish event", "topic", topic, "error", err)
	}
}
