package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/AdamBeresnev/billiards-league/internal/cache"
	"github.com/AdamBeresnev/billiards-league/internal/league"
	"github.com/AdamBeresnev/billiards-league/internal/metrics"
	"github.com/AdamBeresnev/billiards-league/internal/store"
)

type StandingsService struct {
	players *store.PlayerStore
	games   *store.GameStore
	cache   cache.StandingsCache
	metrics metrics.Metrics
}

func NewStandingsService(players *store.PlayerStore, games *store.GameStore, c cache.StandingsCache, m metrics.Metrics) *StandingsService {
	return &StandingsService{players: players, games: games, cache: c, metrics: m}
}

// Table returns the ranked standings. A cache miss or cache failure falls back to
// a full scan of players and games. The scanned table is only cached when no write
// invalidated the cache while it was being computed.
func (s *StandingsService) Table(ctx context.Context) (*league.Table, error) {
	cached, ok, err := s.cache.Get(ctx)
	if err != nil {
		slog.Warn("Standings cache read failed", "error", err)
	}
	s.metrics.IncStandingsCache(ok)
	if ok {
		return cached, nil
	}

	// read before the scan so a write landing during it keeps the result out of the cache
	gen, genErr := s.cache.Generation(ctx)
	if genErr != nil {
		slog.Warn("Standings cache generation read failed", "error", genErr)
	}

	start := time.Now()
	players, err := s.players.ListPlayers(ctx)
	if err != nil {
		return nil, storeFailure("list players", err)
	}
	games, err := s.games.ListGames(ctx)
	if err != nil {
		return nil, storeFailure("list games", err)
	}
	table := league.Compute(players, games)
	s.metrics.ObserveStandingsDuration(time.Since(start).Seconds())

	if genErr == nil {
		stored, err := s.cache.Set(ctx, gen, &table)
		if err != nil {
			slog.Warn("Standings cache write failed", "error", err)
		} else if !stored {
			slog.Debug("Standings changed during computation, not cached")
		}
	}
	return &table, nil
}

// Standing returns the row of a single player, if registered.
func (s *StandingsService) Standing(ctx context.Context, name string) (*league.Standing, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	for i := range table.Standings {
		if table.Standings[i].Name == name {
			return &table.Standings[i], nil
		}
	}
	return nil, league.ErrPlayerNotFound
}

// Invalidate drops the cached table after a write.
func (s *StandingsService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.Error("Standings cache invalidation failed", "error", err)
	}
}
