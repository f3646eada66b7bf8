package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/AdamBeresnev/billiards-league/internal/events"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/alexedwards/scs/v2"
)

const (
	identityKey       = "identity"
	registerIntentKey = "register_intent"

	DefaultSignOutTimeout = 5 * time.Second
)

var ErrSignOutTimeout = errors.New("sign-out did not complete in time, please try again")

type ChangeKind int

const (
	SignedIn ChangeKind = iota + 1
	SignedOut
)

func (k ChangeKind) String() string {
	switch k {
	case SignedIn:
		return "signed_in"
	case SignedOut:
		return "signed_out"
	default:
		return "unknown"
	}
}

type Change struct {
	Kind     ChangeKind
	Subject  string
	Provider string
}

type Provider struct {
	sessions       *scs.SessionManager
	bus            *events.Bus
	signOutTimeout time.Duration
}

func NewProvider(sessions *scs.SessionManager, bus *events.Bus, signOutTimeout time.Duration) *Provider {
	if signOutTimeout <= 0 {
		signOutTimeout = DefaultSignOutTimeout
	}
	return &Provider{sessions: sessions, bus: bus, signOutTimeout: signOutTimeout}
}

// Current returns the identity of the session loaded in ctx.
func (p *Provider) Current(ctx context.Context) (*Identity, bool) {
	id, ok := p.sessions.Get(ctx, identityKey).(Identity)
	if !ok || id.Subject == "" {
		return nil, false
	}
	return &id, true
}

// Subject returns the subject of the current identity, or "" without a session.
func (p *Provider) Subject(ctx context.Context) string {
	if id, ok := p.Current(ctx); ok {
		return id.Subject
	}
	return ""
}

// SignIn binds id to the session under a fresh token.
func (p *Provider) SignIn(ctx context.Context, id Identity) error {
	if err := p.sessions.RenewToken(ctx); err != nil {
		return fmt.Errorf("failed to renew session token: %w", err)
	}
	p.sessions.Put(ctx, identityKey, id)

	p.publish(ctx, events.TopicSignedIn, id)
	return nil
}

// SignOut destroys the session. If the session store does not answer within the
// configured timeout the sign-out is reported as failed with ErrSignOutTimeout.
func (p *Provider) SignOut(ctx context.Context) error {
	id, _ := p.Current(ctx)

	done := make(chan error, 1)
	go func() {
		done <- p.sessions.Destroy(ctx)
	}()

	timer := time.NewTimer(p.signOutTimeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to destroy session: %w", err)
		}
	case <-timer.C:
		slog.Warn("Sign-out timed out", "timeout", p.signOutTimeout)
		return ErrSignOutTimeout
	case <-ctx.Done():
		return ctx.Err()
	}

	if id != nil {
		p.publish(ctx, events.TopicSignedOut, *id)
	}
	return nil
}

// SetRegisterIntent marks the next authentication round trip as an admin
// registration attempt.
func (p *Provider) SetRegisterIntent(ctx context.Context) {
	p.sessions.Put(ctx, registerIntentKey, true)
}

// PopRegisterIntent reads and clears the register intent.
func (p *Provider) PopRegisterIntent(ctx context.Context) bool {
	return p.sessions.PopBool(ctx, registerIntentKey)
}

func (p *Provider) ClearRegisterIntent(ctx context.Context) {
	p.sessions.Remove(ctx, registerIntentKey)
}

// Subscribe streams sign-in and sign-out changes until ctx is cancelled, which
// also closes the returned channel.
func (p *Provider) Subscribe(ctx context.Context) (<-chan Change, error) {
	signedIn, err := p.bus.Subscribe(ctx, events.TopicSignedIn)
	if err != nil {
		return nil, err
	}
	signedOut, err := p.bus.Subscribe(ctx, events.TopicSignedOut)
	if err != nil {
		return nil, err
	}

	out := make(chan Change)
	var wg sync.WaitGroup
	forward := func(kind ChangeKind, in <-chan *message.Message) {
		defer wg.Done()
		for msg := range in {
			ev, err := events.Decode[events.IdentityChanged](msg)
			msg.Ack()
			if err != nil {
				slog.Error("Malformed identity event", "error", err)
				continue
			}
			select {
			case out <- Change{Kind: kind, Subject: ev.Subject, Provider: ev.Provider}:
			case <-ctx.Done():
			}
		}
	}

	wg.Add(2)
	go forward(SignedIn, signedIn)
	go forward(SignedOut, signedOut)
	go func() {
		wg.Wait()
		close(out)
	}()

	return out, nil
}

func (p *Provider) publish(ctx context.Context, topic string, id Identity) {
	err := p.bus.Publish(ctx, topic, events.IdentityChanged{Subject: id.Subject, Provider: id.Provider})
	if err != nil {
		slog.Error("Failed to publish identity change", "topic", topic, "error", err)
	}
}
