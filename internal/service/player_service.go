package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AdamBeresnev/billiards-league/internal/league"
	"github.com/AdamBeresnev/billiards-league/internal/metrics"
	"github.com/AdamBeresnev/billiards-league/internal/store"
)

type PlayerService struct {
	players   *store.PlayerStore
	games     *store.GameStore
	standings *StandingsService
	metrics   metrics.Metrics
}

func NewPlayerService(players *store.PlayerStore, games *store.GameStore, standings *StandingsService, m metrics.Metrics) *PlayerService {
	return &PlayerService{players: players, games: games, standings: standings, metrics: m}
}

// PlayerGame is one game from a player's point of view.
type PlayerGame struct {
	GameID           int64
	PlayedAt         time.Time
	Opponent         string
	OpponentHandicap int
	Won              bool
	Score            string
	Bonus            int
	RecomputedBonus  int
}

type PlayerDetail struct {
	Player   league.Player
	Standing *league.Standing
	Games    []PlayerGame
}

// Register creates the player or updates the handicap of an existing one.
func (s *PlayerService) Register(ctx context.Context, name string, handicap int) (*league.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.metrics.IncRejectedWrites("missing_player")
		return nil, league.ErrMissingPlayer
	}
	if handicap < 0 {
		s.metrics.IncRejectedWrites("invalid_handicap")
		return nil, league.ErrInvalidHandicap
	}

	player := &league.Player{Name: name, Handicap: handicap}
	if err := s.players.UpsertPlayer(ctx, player); err != nil {
		return nil, storeFailure("upsert player", err)
	}
	s.standings.Invalidate(ctx)
	return player, nil
}

func (s *PlayerService) List(ctx context.Context) ([]league.PlayerSummary, error) {
	players, err := s.players.ListPlayerSummaries(ctx)
	if err != nil {
		return nil, storeFailure("list players", err)
	}
	return players, nil
}

// Delete removes a player that no game mentions.
func (s *PlayerService) Delete(ctx context.Context, name string) error {
	count, err := s.games.CountGamesForPlayer(ctx, name)
	if err != nil {
		return storeFailure("count games", err)
	}
	if count > 0 {
		s.metrics.IncRejectedWrites("player_has_games")
		return league.ErrPlayerHasGames
	}

	deleted, err := s.players.DeletePlayerWithoutGames(ctx, name)
	if err != nil {
		return storeFailure("delete player", err)
	}
	if !deleted {
		// either unknown, or a game was recorded since the check above
		count, err := s.games.CountGamesForPlayer(ctx, name)
		if err != nil {
			return storeFailure("count games", err)
		}
		if count > 0 {
			s.metrics.IncRejectedWrites("player_has_games")
			return league.ErrPlayerHasGames
		}
		return league.ErrPlayerNotFound
	}

	s.standings.Invalidate(ctx)
	return nil
}

// Detail returns a player with their standing and their games, newest first.
// Unknown opponent handicaps are shown as 0.
func (s *PlayerService) Detail(ctx context.Context, name string) (*PlayerDetail, error) {
	player, err := s.players.GetPlayer(ctx, name)
	if isNotFound(err) {
		return nil, league.ErrPlayerNotFound
	}
	if err != nil {
		return nil, storeFailure("get player", err)
	}

	games, err := s.games.ListGamesForPlayer(ctx, name)
	if err != nil {
		return nil, storeFailure("list games", err)
	}

	opponents := make([]string, 0, len(games))
	for i := range games {
		opponents = append(opponents, games[i].Opponent(name))
	}
	handicaps, err := s.players.GetHandicaps(ctx, opponents)
	if err != nil {
		return nil, storeFailure("get handicaps", err)
	}

	detail := &PlayerDetail{Player: *player, Games: make([]PlayerGame, 0, len(games))}
	for i := range games {
		g := &games[i]
		opponent := g.Opponent(name)
		won := g.WonBy(name)

		recomputed := 0
		if won {
			recomputed = league.Bonus(player.Handicap, handicaps[opponent])
		}
		detail.Games = append(detail.Games, PlayerGame{
			GameID:           g.ID,
			PlayedAt:         g.PlayedAt,
			Opponent:         opponent,
			OpponentHandicap: handicaps[opponent],
			Won:              won,
			Score:            g.Score,
			Bonus:            g.Bonus,
			RecomputedBonus:  recomputed,
		})
	}

	standing, err := s.standings.Standing(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load standing: %w", err)
	}
	detail.Standing = standing
	return detail, nil
}
