package identity

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/AdamBeresnev/billiards-league/internal/events"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/markbates/goth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingStore holds every Delete until release is closed.
type blockingStore struct {
	*memstore.MemStore
	release chan struct{}
}

func (s *blockingStore) Delete(token string) error {
	<-s.release
	return s.MemStore.Delete(token)
}

func newTestProvider(t *testing.T, store scs.Store, timeout time.Duration) (*Provider, context.Context) {
	t.Helper()

	bus := events.NewBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { bus.Close() })

	sessions := scs.New()
	sessions.Store = store

	ctx, err := sessions.Load(context.Background(), "")
	require.NoError(t, err)

	return NewProvider(sessions, bus, timeout), ctx
}

func TestSignInSignOut(t *testing.T) {
	p, ctx := newTestProvider(t, memstore.New(), time.Second)

	_, ok := p.Current(ctx)
	assert.False(t, ok)
	assert.Empty(t, p.Subject(ctx))

	require.NoError(t, p.SignIn(ctx, Dev("mina@example.com")))

	id, ok := p.Current(ctx)
	require.True(t, ok)
	assert.Equal(t, "mina@example.com", id.Email)
	assert.True(t, strings.HasPrefix(p.Subject(ctx), "dev:"))

	require.NoError(t, p.SignOut(ctx))
	_, ok = p.Current(ctx)
	assert.False(t, ok)
}

func TestSignOutTimeout(t *testing.T) {
	store := &blockingStore{MemStore: memstore.New(), release: make(chan struct{})}
	defer close(store.release)

	p, ctx := newTestProvider(t, store, 20*time.Millisecond)
	require.NoError(t, p.SignIn(ctx, Dev("mina@example.com")))

	start := time.Now()
	err := p.SignOut(ctx)
	assert.ErrorIs(t, err, ErrSignOutTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRegisterIntent(t *testing.T) {
	p, ctx := newTestProvider(t, memstore.New(), time.Second)

	assert.False(t, p.PopRegisterIntent(ctx))

	p.SetRegisterIntent(ctx)
	assert.True(t, p.PopRegisterIntent(ctx))
	assert.False(t, p.PopRegisterIntent(ctx), "the intent must only survive one round trip")

	p.SetRegisterIntent(ctx)
	p.ClearRegisterIntent(ctx)
	assert.False(t, p.PopRegisterIntent(ctx))
}

func TestSubscribe(t *testing.T) {
	p, ctx := newTestProvider(t, memstore.New(), time.Second)

	subCtx, cancel := context.WithCancel(context.Background())
	changes, err := p.Subscribe(subCtx)
	require.NoError(t, err)

	id := Dev("mina@example.com")
	require.NoError(t, p.SignIn(ctx, id))

	select {
	case c := <-changes:
		assert.Equal(t, Change{Kind: SignedIn, Subject: id.Subject, Provider: DevProvider}, c)
	case <-time.After(time.Second):
		t.Fatal("no change received")
	}

	require.NoError(t, p.SignOut(ctx))

	select {
	case c := <-changes:
		assert.Equal(t, SignedOut, c.Kind)
		assert.Equal(t, id.Subject, c.Subject)
	case <-time.After(time.Second):
		t.Fatal("no change received")
	}

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, open := <-changes:
			return !open
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestDevIdentityIsStable(t *testing.T) {
	a := Dev("Mina@Example.com ")
	b := Dev("mina@example.com")
	c := Dev("alex@example.com")

	assert.Equal(t, a.Subject, b.Subject)
	assert.NotEqual(t, a.Subject, c.Subject)
	assert.Equal(t, "mina", a.Name)
	assert.Equal(t, DevProvider, a.Provider)
}

func TestFromGothUser(t *testing.T) {
	id := FromGothUser(goth.User{
		Provider:  "google",
		UserID:    "1234",
		Email:     "mina@example.com",
		NickName:  "mina",
		AvatarURL: " ",
	})

	assert.Equal(t, "google:1234", id.Subject)
	assert.Equal(t, "mina", id.DisplayName())
	assert.Nil(t, id.AvatarURL)
	assert.Empty(t, id.Avatar())
}

func TestChangeKindString(t *testing.T) {
	assert.Equal(t, "signed_in", SignedIn.String())
	assert.Equal(t, "signed_out", SignedOut.String())
	assert.Equal(t, "unknown", ChangeKind(0).String())
}
