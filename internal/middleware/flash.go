package middleware

import (
	"context"

	"github.com/alexedwards/scs/v2"
)

const flashKey = "flash"

// SetFlash stores a one-time message shown on the next rendered page.
func SetFlash(ctx context.Context, sessions *scs.SessionManager, msg string) {
	sessions.Put(ctx, flashKey, msg)
}

func PopFlash(ctx context.Context, sessions *scs.SessionManager) string {
	return sessions.PopString(ctx, flashKey)
}
