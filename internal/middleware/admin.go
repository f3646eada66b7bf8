package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/AdamBeresnev/billiards-league/internal/admin"
	"github.com/AdamBeresnev/billiards-league/internal/httputil"
	"github.com/AdamBeresnev/billiards-league/internal/identity"
	"github.com/AdamBeresnev/billiards-league/internal/service"
	"github.com/alexedwards/scs/v2"
)

type ContextKey string

const signInPrompt = "Sign in as the league admin to continue."

const (
	AdminStateKey ContextKey = "adminState"
	IdentityKey   ContextKey = "identity"
)

// LoadAdminState evaluates the admin state for the current session on every
// request. A live session that is not the admin's while an admin exists, or any
// session while no admin exists, is signed out on the spot.
func LoadAdminState(sessions *scs.SessionManager, idp *identity.Provider, admins *service.AdminService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id, _ := idp.Current(ctx)
			subject := ""
			if id != nil {
				subject = id.Subject
			}

			state, err := admins.State(ctx, subject)
			if err != nil {
				httputil.StoreFailure(w, "Failed to evaluate admin state", err)
				return
			}

			if subject != "" && (state == admin.AdminExistsSessionMismatch || state == admin.NoAdminExists) {
				reason := admin.ErrNotAdmin
				if state == admin.NoAdminExists {
					reason = admin.ErrNoAdmin
				}
				if err := idp.SignOut(ctx); err != nil {
					httputil.StoreFailure(w, "Forced sign-out failed", err)
					return
				}
				slog.Info("Session terminated", "subject", subject, "state", state.String())
				SetFlash(ctx, sessions, reason.Error())

				id = nil
				if state == admin.AdminExistsSessionMismatch {
					state = admin.AdminExistsNoSession
				}
			}

			ctx = context.WithValue(ctx, AdminStateKey, state)
			if id != nil {
				ctx = context.WithValue(ctx, IdentityKey, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin lets only the signed in admin through.
func RequireAdmin(sessions *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := GetAdminState(r.Context())
			if state.CanEdit() {
				next.ServeHTTP(w, r)
				return
			}

			switch state {
			case admin.AdminExistsNoSession:
				if r.Method == http.MethodGet {
					SetFlash(r.Context(), sessions, signInPrompt)
					http.Redirect(w, r, "/login", http.StatusFound)
					return
				}
				httputil.Forbidden(w, signInPrompt)
			case admin.NoAdminExists:
				httputil.Forbidden(w, admin.ErrNoAdmin.Error())
			default:
				httputil.Forbidden(w, admin.ErrNotAdmin.Error())
			}
		})
	}
}

func GetAdminState(ctx context.Context) admin.State {
	state, ok := ctx.Value(AdminStateKey).(admin.State)
	if !ok {
		return admin.NoAdminExists
	}
	return state
}

func GetIdentity(ctx context.Context) *identity.Identity {
	id, ok := ctx.Value(IdentityKey).(*identity.Identity)
	if !ok {
		return nil
	}
	return id
}
