package main

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AdamBeresnev/billiards-league/internal/export"
	"github.com/AdamBeresnev/billiards-league/internal/httputil"
	"github.com/AdamBeresnev/billiards-league/internal/league"
	"github.com/AdamBeresnev/billiards-league/views"
	"github.com/go-chi/chi/v5"
)

func (app *application) health(w http.ResponseWriter, r *http.Request) {
	if err := app.db.PingContext(r.Context()); err != nil {
		httputil.JSONError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (app *application) standingsPage(w http.ResponseWriter, r *http.Request) {
	table, err := app.standings.Table(r.Context())
	if err != nil {
		httputil.StoreFailure(w, "Failed to compute standings", err)
		return
	}
	views.Render(w, r, views.StandingsPage(app.page(r), table))
}

func (app *application) standingsJSON(w http.ResponseWriter, r *http.Request) {
	table, err := app.standings.Table(r.Context())
	if err != nil {
		httputil.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httputil.JSON(w, http.StatusOK, table)
}

func (app *application) standingsXLSX(w http.ResponseWriter, r *http.Request) {
	table, err := app.standings.Table(r.Context())
	if err != nil {
		httputil.StoreFailure(w, "Failed to compute standings", err)
		return
	}
	filename := "standings-" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := export.WriteStandingsXLSX(w, table); err != nil {
		httputil.InternalServerError(w, "Failed to write spreadsheet", err)
	}
}

func (app *application) standingsChart(w http.ResponseWriter, r *http.Request) {
	table, err := app.standings.Table(r.Context())
	if err != nil {
		httputil.StoreFailure(w, "Failed to compute standings", err)
		return
	}
	png, err := export.PointsChartPNG(table)
	if err != nil {
		httputil.InternalServerError(w, "Failed to render chart", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

func (app *application) playersPage(w http.ResponseWriter, r *http.Request) {
	players, err := app.players.List(r.Context())
	if err != nil {
		httputil.StoreFailure(w, "Failed to list players", err)
		return
	}
	views.Render(w, r, views.PlayersPage(app.page(r), players, views.PlayerForm{}))
}

func (app *application) playerDetail(w http.ResponseWriter, r *http.Request) {
	name, ok := playerName(w, r)
	if !ok {
		return
	}
	detail, err := app.players.Detail(r.Context(), name)
	if err != nil {
		if errors.Is(err, league.ErrPlayerNotFound) {
			httputil.NotFound(w, "Player not found", err)
			return
		}
		httputil.StoreFailure(w, "Failed to load player", err)
		return
	}
	views.Render(w, r, views.PlayerDetailPage(app.page(r), detail))
}

func (app *application) registerPlayer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "Invalid form data", err)
		return
	}
	form := views.PlayerForm{
		Name:     strings.TrimSpace(r.Form.Get("name")),
		Handicap: strings.TrimSpace(r.Form.Get("handicap")),
	}

	player, err := app.savePlayer(r, form)
	if err != nil {
		renderForm(w, r, err, func(status int) error {
			players, listErr := app.players.List(r.Context())
			if listErr != nil {
				return listErr
			}
			page := app.page(r)
			page.Error = err.Error()
			return views.RenderStatus(w, r, status, views.PlayersPage(page, players, form))
		})
		return
	}
	app.redirectWithFlash(w, r, "/players", "Saved "+player.Name+" with handicap "+strconv.Itoa(player.Handicap)+".")
}

func (app *application) savePlayer(r *http.Request, form views.PlayerForm) (*league.Player, error) {
	if form.Name == "" {
		return nil, league.ErrMissingPlayer
	}
	handicap, err := league.ParseHandicap(form.Handicap)
	if err != nil {
		return nil, err
	}
	return app.players.Register(r.Context(), form.Name, handicap)
}

func (app *application) deletePlayer(w http.ResponseWriter, r *http.Request) {
	name, ok := playerName(w, r)
	if !ok {
		return
	}
	err := app.players.Delete(r.Context(), name)
	switch {
	case err == nil:
		app.redirectWithFlash(w, r, "/players", "Deleted "+name+".")
	case errors.Is(err, league.ErrPlayerNotFound):
		httputil.NotFound(w, "Player not found", err)
	default:
		renderForm(w, r, err, func(status int) error {
			players, listErr := app.players.List(r.Context())
			if listErr != nil {
				return listErr
			}
			page := app.page(r)
			page.Error = err.Error()
			return views.RenderStatus(w, r, status, views.PlayersPage(page, players, views.PlayerForm{}))
		})
	}
}

func (app *application) newGamePage(w http.ResponseWriter, r *http.Request) {
	players, err := app.players.List(r.Context())
	if err != nil {
		httputil.StoreFailure(w, "Failed to list players", err)
		return
	}
	views.Render(w, r, views.NewGamePage(app.page(r), players, views.GameForm{}))
}

func (app *application) recordGame(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "Invalid form data", err)
		return
	}
	form := views.GameForm{
		Winner: strings.TrimSpace(r.Form.Get("winner")),
		Loser:  strings.TrimSpace(r.Form.Get("loser")),
		Score:  strings.TrimSpace(r.Form.Get("score")),
	}

	game, err := app.games.Record(r.Context(), form.Winner, form.Loser, form.Score)
	if err != nil {
		renderForm(w, r, err, func(status int) error {
			players, listErr := app.players.List(r.Context())
			if listErr != nil {
				return listErr
			}
			page := app.page(r)
			page.Error = err.Error()
			return views.RenderStatus(w, r, status, views.NewGamePage(page, players, form))
		})
		return
	}
	app.redirectWithFlash(w, r, views.GamePath(game.ID), game.WinnerName+" beat "+game.LoserName+" "+game.Score+".")
}

func (app *application) gameDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}
	detail, err := app.games.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, league.ErrGameNotFound) {
			httputil.NotFound(w, "Game not found", err)
			return
		}
		httputil.StoreFailure(w, "Failed to load game", err)
		return
	}
	views.Render(w, r, views.GameDetailPage(app.page(r), detail))
}

func (app *application) deleteGame(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}
	if err := app.games.Delete(r.Context(), id); err != nil {
		if errors.Is(err, league.ErrGameNotFound) {
			httputil.NotFound(w, "Game not found", err)
			return
		}
		httputil.StoreFailure(w, "Failed to delete game", err)
		return
	}
	app.redirectWithFlash(w, r, "/", "Game deleted.")
}

// playerName reads the {name} segment. chi routes on RawPath when the request
// has one, so a name holding a slash arrives as %2F and is unescaped here.
func playerName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, true
	}
	name, err := url.PathUnescape(name)
	if err != nil {
		httputil.NotFound(w, "Player not found", err)
		return "", false
	}
	return name, true
}

func gameID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.NotFound(w, "Game not found", err)
		return 0, false
	}
	return id, true
}
