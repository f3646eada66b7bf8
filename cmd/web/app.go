package main

import (
	"errors"
	"net/http"

	"github.com/AdamBeresnev/billiards-league/internal/cache"
	"github.com/AdamBeresnev/billiards-league/internal/config"
	"github.com/AdamBeresnev/billiards-league/internal/events"
	"github.com/AdamBeresnev/billiards-league/internal/httputil"
	"github.com/AdamBeresnev/billiards-league/internal/identity"
	"github.com/AdamBeresnev/billiards-league/internal/league"
	"github.com/AdamBeresnev/billiards-league/internal/metrics"
	"github.com/AdamBeresnev/billiards-league/internal/middleware"
	"github.com/AdamBeresnev/billiards-league/internal/service"
	"github.com/AdamBeresnev/billiards-league/internal/store"
	"github.com/AdamBeresnev/billiards-league/views"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"golang.org/x/time/rate"
)

type application struct {
	cfg       *config.Config
	db        *sqlx.DB
	sessions  *scs.SessionManager
	idp       *identity.Provider
	players   *service.PlayerService
	games     *service.GameService
	standings *service.StandingsService
	admins    *service.AdminService

	providers      []string
	authLimiter    *middleware.IPRateLimiter
	metricsHandler http.Handler
}

type deps struct {
	db             *sqlx.DB
	sessions       *scs.SessionManager
	bus            *events.Bus
	cache          cache.StandingsCache
	metrics        metrics.Metrics
	metricsHandler http.Handler
	providers      []string
}

func newApplication(cfg *config.Config, d deps) *application {
	playerStore := store.NewPlayerStore(d.db)
	gameStore := store.NewGameStore(d.db)
	standings := service.NewStandingsService(playerStore, gameStore, d.cache, d.metrics)

	return &application{
		cfg:       cfg,
		db:        d.db,
		sessions:  d.sessions,
		idp:       identity.NewProvider(d.sessions, d.bus, cfg.Server.SignOutTimeout),
		players:   service.NewPlayerService(playerStore, gameStore, standings, d.metrics),
		games:     service.NewGameService(d.db, playerStore, gameStore, standings, d.bus, d.metrics),
		standings: standings,
		admins:    service.NewAdminService(store.NewAdminStore(d.db), d.bus, d.metrics),

		providers:      d.providers,
		authLimiter:    middleware.NewIPRateLimiter(rate.Limit(cfg.Server.AuthRateLimit), cfg.Server.AuthRateBurst),
		metricsHandler: d.metricsHandler,
	}
}

// page collects the layout data for the current request. Flash messages are
// only consumed by GET requests so a redirect after a write still shows them.
func (app *application) page(r *http.Request) views.Page {
	ctx := r.Context()
	p := views.Page{
		State:     middleware.GetAdminState(ctx),
		Identity:  middleware.GetIdentity(ctx),
		Providers: app.providers,
		DevLogin:  app.cfg.Server.DevLogin,
	}
	if r.Method == http.MethodGet {
		p.Flash = middleware.PopFlash(ctx, app.sessions)
	}
	return p
}

func (app *application) redirectWithFlash(w http.ResponseWriter, r *http.Request, target, msg string) {
	middleware.SetFlash(r.Context(), app.sessions, msg)
	http.Redirect(w, r, target, http.StatusFound)
}

// formStatus maps a rejected write to the status used when the form is shown again.
func formStatus(err error) int {
	if errors.Is(err, league.ErrAlreadyPlayed) {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

func isStoreError(err error) bool {
	var storeErr *service.StoreError
	return errors.As(err, &storeErr)
}

// renderForm shows a form page again with err, or reports a store failure.
func renderForm(w http.ResponseWriter, r *http.Request, err error, render func(status int) error) {
	if isStoreError(err) {
		httputil.StoreFailure(w, "Write failed", err)
		return
	}
	if renderErr := render(formStatus(err)); renderErr != nil {
		httputil.InternalServerError(w, "Failed to render page", renderErr)
	}
}
