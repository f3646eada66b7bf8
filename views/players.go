package views

import (
	"context"
	"strconv"

	"github.com/AdamBeresnev/billiards-league/internal/league"
	"github.com/AdamBeresnev/billiards-league/internal/service"
	"github.com/a-h/templ"
)

// PlayerForm holds what was typed into the registration form.
type PlayerForm struct {
	Name     string
	Handicap string
}

func PlayersPage(page Page, players []league.PlayerSummary, form PlayerForm) templ.Component {
	page.Title = "Players"
	return Layout(page, component(func(ctx context.Context, h *html) {
		h.raw(`<h1>Players</h1>`)

		if page.CanEdit() {
			h.raw(`<form method="post" action="/players" id="register-player">`)
			h.raw(`<label>Name <input type="text" name="name" required value="`)
			h.text(form.Name)
			h.raw(`"></label> <label>Handicap <input type="number" name="handicap" min="0" required value="`)
			h.text(form.Handicap)
			h.raw(`"></label> <button type="submit">Save</button>`)
			h.raw(`<p><small>Saving an existing name updates the handicap.</small></p></form>`)
		}

		if len(players) == 0 {
			h.raw(`<p id="no-players">No players registered yet.</p>`)
			return
		}

		h.raw(`<ul id="players">`)
		for _, p := range players {
			h.raw(`<li data-player="`)
			h.text(p.Name)
			h.raw(`"><a href="`)
			h.href(PlayerPath(p.Name))
			h.raw(`">`)
			h.text(p.Name)
			h.raw(`</a> (`)
			h.num(p.Handicap)
			h.raw(`)`)
			if page.CanEdit() && !p.HasGameHistory {
				h.raw(` <form method="post" style="display:inline" action="`)
				h.href(PlayerPath(p.Name) + "/delete")
				h.raw(`"><button type="submit" class="delete-player">Delete</button></form>`)
			}
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
	}))
}

func PlayerDetailPage(page Page, detail *service.PlayerDetail) templ.Component {
	page.Title = detail.Player.Name
	return Layout(page, component(func(ctx context.Context, h *html) {
		h.raw(`<h1 id="player-name">`)
		h.text(detail.Player.Name)
		h.raw(`</h1><p>Handicap <strong id="player-handicap">`)
		h.num(detail.Player.Handicap)
		h.raw(`</strong>`)
		if st := detail.Standing; st != nil {
			h.raw(` · Rank <strong id="player-rank">`)
			h.num(st.Rank)
			h.raw(`</strong> · Points <strong id="player-points">`)
			h.num(st.Points)
			h.raw(`</strong> · `)
			h.num(st.WinCount)
			h.raw(`W `)
			h.num(st.LossCount)
			h.raw(`L · Progress <span class="`)
			h.raw(ProgressClass(st.Progress))
			h.raw(`">`)
			h.num(st.Progress)
			h.raw(`%</span>`)
		}
		h.raw(`</p>`)

		if len(detail.Games) == 0 {
			h.raw(`<p id="no-games">No games played yet.</p>`)
			return
		}

		h.raw(`<table id="player-games"><thead><tr><th>Played</th><th>Opponent</th><th>Opponent handicap</th><th>Result</th><th>Score</th><th>Bonus</th></tr></thead><tbody>`)
		for _, g := range detail.Games {
			h.raw(`<tr data-game="`)
			h.raw(strconv.FormatInt(g.GameID, 10))
			h.raw(`"><td><a href="`)
			h.href(GamePath(g.GameID))
			h.raw(`">`)
			h.text(FormatPlayedAt(g.PlayedAt))
			h.raw(`</a></td><td><a href="`)
			h.href(PlayerPath(g.Opponent))
			h.raw(`">`)
			h.text(g.Opponent)
			h.raw(`</a></td><td>`)
			h.num(g.OpponentHandicap)
			h.raw(`</td><td class="result">`)
			h.raw(ResultLabel(g.Won))
			h.raw(`</td><td>`)
			h.text(g.Score)
			h.raw(`</td><td class="bonus">`)
			h.num(g.RecomputedBonus)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)
	}))
}
