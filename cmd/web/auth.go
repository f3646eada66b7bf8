package main

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/AdamBeresnev/billiards-league/internal/admin"
	"github.com/AdamBeresnev/billiards-league/internal/httputil"
	"github.com/AdamBeresnev/billiards-league/internal/identity"
	"github.com/AdamBeresnev/billiards-league/internal/middleware"
	"github.com/AdamBeresnev/billiards-league/views"
	"github.com/go-chi/chi/v5"
	"github.com/markbates/goth/gothic"
)

func (app *application) loginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAdminState(r.Context()) == admin.AdminExistsSessionMatch {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	register := r.URL.Query().Get("register") == "1"
	if !register {
		app.idp.ClearRegisterIntent(r.Context())
	}
	views.Render(w, r, views.LoginPage(app.page(r), register))
}

func (app *application) beginAuth(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	if !slices.Contains(app.providers, provider) {
		httputil.NotFound(w, "Unknown provider", nil)
		return
	}

	// The intent must survive the round trip through the provider.
	if r.URL.Query().Get("register") == "1" {
		app.idp.SetRegisterIntent(r.Context())
	} else {
		app.idp.ClearRegisterIntent(r.Context())
	}

	gothic.BeginAuthHandler(w, gothic.GetContextWithProvider(r, provider))
}

func (app *application) authCallback(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	register := app.idp.PopRegisterIntent(r.Context())

	r = gothic.GetContextWithProvider(r, provider)
	gothUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		httputil.BadRequest(w, "Authentication failure", err)
		return
	}

	app.completeSignIn(w, r, identity.FromGothUser(gothUser), register)
}

func (app *application) devLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "Invalid form data", err)
		return
	}
	email := strings.TrimSpace(r.Form.Get("email"))
	if email == "" {
		httputil.BadRequest(w, "E-mail is required", nil)
		return
	}

	app.completeSignIn(w, r, identity.Dev(email), r.Form.Get("register") == "1")
}

// completeSignIn establishes the session and then runs the bootstrap decision.
// A rejected identity is signed out again and sent back to the login page.
func (app *application) completeSignIn(w http.ResponseWriter, r *http.Request, id identity.Identity, register bool) {
	ctx := r.Context()
	if err := app.idp.SignIn(ctx, id); err != nil {
		httputil.InternalServerError(w, "Failed to start session", err)
		return
	}

	_, err := app.admins.Authenticate(ctx, id.Subject, register)
	if err == nil {
		app.redirectWithFlash(w, r, "/", "Signed in as "+id.DisplayName()+".")
		return
	}

	if signOutErr := app.idp.SignOut(ctx); signOutErr != nil {
		httputil.StoreFailure(w, "Sign-out after rejected sign-in failed", signOutErr)
		return
	}
	if !admin.Rejected(err) {
		httputil.StoreFailure(w, "Failed to authenticate", err)
		return
	}

	slog.Info("Sign-in rejected", "subject", id.Subject, "reason", err)
	target := "/login"
	if errors.Is(err, admin.ErrNoAdmin) {
		target = "/login?register=1"
	}
	app.redirectWithFlash(w, r, target, err.Error())
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	if err := app.idp.SignOut(r.Context()); err != nil {
		httputil.StoreFailure(w, "Sign-out failed", err)
		return
	}
	gothic.Logout(w, r)
	app.redirectWithFlash(w, r, "/", "Signed out.")
}

func (app *application) resetAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := app.admins.Reset(ctx, app.idp.Subject(ctx)); err != nil {
		if isStoreError(err) {
			httputil.StoreFailure(w, "Failed to reset admin", err)
			return
		}
		httputil.Forbidden(w, err.Error())
		return
	}

	if err := app.idp.SignOut(ctx); err != nil {
		httputil.StoreFailure(w, "Sign-out after admin reset failed", err)
		return
	}
	app.redirectWithFlash(w, r, "/", "The admin was removed. The next account to register becomes admin.")
}
