package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/AdamBeresnev/billiards-league/internal/events"
	"github.com/AdamBeresnev/billiards-league/internal/league"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordGame(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, map[string]int{"A": 0, "C": 10})

	game, err := env.games.Record(ctx, " A ", "C", " 10:8 ")
	require.NoError(t, err)
	assert.Positive(t, game.ID)
	assert.Equal(t, "A", game.WinnerName)
	assert.Equal(t, "C", game.LoserName)
	assert.Equal(t, "10:8", game.Score)
	assert.Equal(t, 1, game.Bonus)
	assert.False(t, game.PlayedAt.IsZero())

	assert.Equal(t, 1, env.metrics.GamesRecorded())
	assert.Equal(t, []string{events.TopicGameRecorded}, env.publisher.topics())
}

func TestRecordGameBonusMatchesStoredHandicaps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	faker := gofakeit.New(7)

	const n = 12
	for i := range n {
		_, err := env.players.Register(ctx, fmt.Sprintf("P%02d", i), faker.IntRange(0, 15))
		require.NoError(t, err)
	}

	for i := range n {
		for j := i + 1; j < n; j++ {
			winner, loser := fmt.Sprintf("P%02d", i), fmt.Sprintf("P%02d", j)
			if faker.Bool() {
				winner, loser = loser, winner
			}
			game, err := env.games.Record(ctx, winner, loser, "5-3")
			require.NoError(t, err)

			detail, err := env.games.Get(ctx, game.ID)
			require.NoError(t, err)
			assert.Equal(t, league.Bonus(detail.WinnerHandicap, detail.LoserHandicap), game.Bonus)
			assert.Equal(t, game.Bonus, detail.RecomputedBonus)
		}
	}

	table, err := env.standings.Table(ctx)
	require.NoError(t, err)
	assert.Equal(t, n*(n-1)/2, table.Summary.GameCount)
	assert.Equal(t, 100, table.Summary.Progress)
}

func TestRecordGameRejectsRepeatPairing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, map[string]int{"A": 1, "B": 2})

	_, err := env.games.Record(ctx, "A", "B", "5-3")
	require.NoError(t, err)

	for _, pair := range [][2]string{{"A", "B"}, {"B", "A"}} {
		_, err := env.games.Record(ctx, pair[0], pair[1], "5-4")
		assert.ErrorIs(t, err, league.ErrAlreadyPlayed)
	}

	games, err := env.gameStore.ListGames(ctx)
	require.NoError(t, err)
	assert.Len(t, games, 1)
	assert.Equal(t, 2, env.metrics.RejectedWrites("already_played"))
	assert.Equal(t, []string{events.TopicGameRecorded}, env.publisher.topics())
}

func TestRecordGameValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, map[string]int{"A": 1, "B": 2})

	tests := []struct {
		name                 string
		winner, loser, score string
		wantErr              error
	}{
		{"same player", "A", "A", "5-3", league.ErrSamePlayer},
		{"missing winner", "", "B", "5-3", league.ErrMissingField},
		{"missing score", "A", "B", "  ", league.ErrMissingField},
		{"unknown winner", "ghost", "B", "5-3", league.ErrPlayerNotFound},
		{"unknown loser", "A", "ghost", "5-3", league.ErrPlayerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.games.Record(ctx, tt.winner, tt.loser, tt.score)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	games, err := env.gameStore.ListGames(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)
	assert.Equal(t, 0, env.metrics.GamesRecorded())
}

func TestGetGameUnknownHandicaps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, map[string]int{"A": 1})

	tx, err := env.db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	id, err := env.gameStore.CreateGameTx(ctx, tx, &league.Game{WinnerName: "ghost", LoserName: "A", Score: "3-1"})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	detail, err := env.games.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, detail.WinnerHandicap)
	assert.Equal(t, 1, detail.LoserHandicap)
	assert.Equal(t, 0, detail.RecomputedBonus)

	_, err = env.games.Get(ctx, id+100)
	assert.ErrorIs(t, err, league.ErrGameNotFound)
}

func TestDeleteGame(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, map[string]int{"A": 0, "B": 5})

	game, err := env.games.Record(ctx, "A", "B", "5-3")
	require.NoError(t, err)

	before, err := env.standings.Table(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, before.Summary.GameCount)

	require.NoError(t, env.games.Delete(ctx, game.ID))
	assert.ErrorIs(t, env.games.Delete(ctx, game.ID), league.ErrGameNotFound)

	after, err := env.standings.Table(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, after.Summary.GameCount)
	for _, s := range after.Standings {
		assert.Zero(t, s.Points)
	}

	// the pairing can be recorded again
	_, err = env.games.Record(ctx, "B", "A", "5-4")
	assert.NoError(t, err)
	assert.Equal(t, []string{events.TopicGameRecorded, events.TopicGameDeleted, events.TopicGameRecorded}, env.publisher.topics())
}
