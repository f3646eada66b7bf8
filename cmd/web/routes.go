package main

import (
	"net/http"

	"github.com/AdamBeresnev/billiards-league/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(app.sessions.LoadAndSave)
	r.Use(middleware.LoadAdminState(app.sessions, app.idp, app.admins))

	r.Get("/health", app.health)
	r.Handle("/metrics", app.metricsHandler)

	r.Get("/", app.standingsPage)
	r.Get("/standings.xlsx", app.standingsXLSX)
	r.Get("/standings/chart.png", app.standingsChart)
	r.Get("/api/standings", app.standingsJSON)
	r.Get("/players", app.playersPage)
	r.Get("/players/{name}", app.playerDetail)
	r.Get("/games/{id:[0-9]+}", app.gameDetail)

	r.Get("/login", app.loginPage)
	r.Post("/logout", app.logout)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(app.authLimiter))

		r.Get("/auth/{provider}", app.beginAuth)
		r.Get("/auth/{provider}/callback", app.authCallback)
		if app.cfg.Server.DevLogin {
			r.Post("/auth/dev", app.devLogin)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(app.sessions))

		r.Post("/players", app.registerPlayer)
		r.Post("/players/{name}/delete", app.deletePlayer)
		r.Get("/games/new", app.newGamePage)
		r.Post("/games", app.recordGame)
		r.Post("/games/{id:[0-9]+}/delete", app.deleteGame)
		r.Post("/admin/reset", app.resetAdmin)
	})

	return r
}
