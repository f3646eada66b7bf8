package service

import (
	"context"
	"errors"
	"testing"

	"github.com/AdamBeresnev/billiards-league/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterPlayer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.players.Register(ctx, "  Mina ", 4)
	require.NoError(t, err)
	assert.Equal(t, "Mina", p.Name)

	// re-registration updates the handicap
	_, err = env.players.Register(ctx, "Mina", 6)
	require.NoError(t, err)

	list, err := env.players.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 6, list[0].Handicap)
	assert.False(t, list[0].HasGameHistory)
}

func TestRegisterPlayerValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.players.Register(ctx, "   ", 4)
	assert.ErrorIs(t, err, league.ErrMissingPlayer)

	_, err = env.players.Register(ctx, "Mina", -2)
	assert.ErrorIs(t, err, league.ErrInvalidHandicap)

	list, err := env.players.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 1, env.metrics.RejectedWrites("missing_player"))
}

func TestDeletePlayerGuard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, map[string]int{"A": 1, "B": 2, "C": 3})

	_, err := env.games.Record(ctx, "A", "B", "5-3")
	require.NoError(t, err)

	for _, name := range []string{"A", "B"} {
		err := env.players.Delete(ctx, name)
		assert.ErrorIs(t, err, league.ErrPlayerHasGames, name)
	}

	require.NoError(t, env.players.Delete(ctx, "C"))
	assert.ErrorIs(t, env.players.Delete(ctx, "C"), league.ErrPlayerNotFound)

	list, err := env.players.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].HasGameHistory)
	assert.True(t, list[1].HasGameHistory)
}

func TestDeletePlayerAfterGameDeleted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, map[string]int{"A": 1, "B": 2})

	game, err := env.games.Record(ctx, "A", "B", "5-3")
	require.NoError(t, err)
	require.NoError(t, env.games.Delete(ctx, game.ID))

	assert.NoError(t, env.players.Delete(ctx, "A"))
}

func TestPlayerDetail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, map[string]int{"A": 0, "B": 5, "C": 10})

	first, err := env.games.Record(ctx, "A", "C", "10:8")
	require.NoError(t, err)
	second, err := env.games.Record(ctx, "B", "A", "10:2")
	require.NoError(t, err)

	detail, err := env.players.Detail(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, league.Player{Name: "A", Handicap: 0}, detail.Player)
	require.Len(t, detail.Games, 2)

	assert.Equal(t, second.ID, detail.Games[0].GameID)
	assert.Equal(t, "B", detail.Games[0].Opponent)
	assert.Equal(t, 5, detail.Games[0].OpponentHandicap)
	assert.False(t, detail.Games[0].Won)

	assert.Equal(t, first.ID, detail.Games[1].GameID)
	assert.Equal(t, "C", detail.Games[1].Opponent)
	assert.True(t, detail.Games[1].Won)
	assert.Equal(t, 1, detail.Games[1].Bonus)
	assert.Equal(t, detail.Games[1].Bonus, detail.Games[1].RecomputedBonus)

	require.NotNil(t, detail.Standing)
	assert.Equal(t, 5, detail.Standing.Points)
	assert.Equal(t, 100, detail.Standing.Progress)
}

func TestPlayerDetailUnknownOpponentHandicap(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, map[string]int{"A": 2})

	// a game naming an unregistered player can only come from outside the services
	tx, err := env.db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	_, err = env.gameStore.CreateGameTx(ctx, tx, &league.Game{WinnerName: "A", LoserName: "ghost", Score: "3-0"})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	detail, err := env.players.Detail(ctx, "A")
	require.NoError(t, err)
	require.Len(t, detail.Games, 1)
	assert.Equal(t, 0, detail.Games[0].OpponentHandicap)
}

func TestPlayerDetailNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.players.Detail(context.Background(), "nobody")
	assert.ErrorIs(t, err, league.ErrPlayerNotFound)
}

func TestStoreFailureKeepsMessage(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Close())

	_, err := env.players.List(context.Background())
	require.Error(t, err)

	var storeErr *StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, storeErr.Err.Error(), err.Error())
	assert.Equal(t, "list players", storeErr.Op)
}
