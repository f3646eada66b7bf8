package service

import (
	"context"
	"sync"
	"testing"

	"github.com/AdamBeresnev/billiards-league/internal/cache"
	"github.com/AdamBeresnev/billiards-league/internal/db"
	"github.com/AdamBeresnev/billiards-league/internal/metrics"
	"github.com/AdamBeresnev/billiards-league/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

type published struct {
	topic   string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{topic: topic, payload: payload})
	return nil
}

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	topics := make([]string, 0, len(p.events))
	for _, e := range p.events {
		topics = append(topics, e.topic)
	}
	return topics
}

type testEnv struct {
	db          *sqlx.DB
	playerStore *store.PlayerStore
	gameStore   *store.GameStore
	adminStore  *store.AdminStore
	cache       cache.StandingsCache
	metrics     *metrics.Mock
	publisher   *recordingPublisher

	standings *StandingsService
	players   *PlayerService
	games     *GameService
	admins    *AdminService
}

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.NewTestDB()
	require.NoError(t, err, "Failed to create test DB")
	t.Cleanup(func() { database.Close() })

	return database
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithCache(t, cache.NewMemory())
}

func newTestEnvWithCache(t *testing.T, c cache.StandingsCache) *testEnv {
	t.Helper()

	database := setupTestDB(t)
	env := &testEnv{
		db:          database,
		playerStore: store.NewPlayerStore(database),
		gameStore:   store.NewGameStore(database),
		adminStore:  store.NewAdminStore(database),
		cache:       c,
		metrics:     metrics.NewMock(),
		publisher:   &recordingPublisher{},
	}
	env.standings = NewStandingsService(env.playerStore, env.gameStore, env.cache, env.metrics)
	env.players = NewPlayerService(env.playerStore, env.gameStore, env.standings, env.metrics)
	env.games = NewGameService(database, env.playerStore, env.gameStore, env.standings, env.publisher, env.metrics)
	env.admins = NewAdminService(env.adminStore, env.publisher, env.metrics)
	return env
}

func (e *testEnv) register(t *testing.T, players map[string]int) {
	t.Helper()
	for name, handicap := range players {
		_, err := e.players.Register(context.Background(), name, handicap)
		require.NoError(t, err)
	}
}
