package views

import (
	"context"
	"strconv"

	"github.com/AdamBeresnev/billiards-league/internal/league"
	"github.com/AdamBeresnev/billiards-league/internal/service"
	"github.com/a-h/templ"
)

// GameForm holds what was entered into the result form.
type GameForm struct {
	Winner string
	Loser  string
	Score  string
}

func NewGamePage(page Page, players []league.PlayerSummary, form GameForm) templ.Component {
	page.Title = "Record game"
	return Layout(page, component(func(ctx context.Context, h *html) {
		h.raw(`<h1>Record game</h1>`)
		if len(players) < 2 {
			h.raw(`<p>At least two players must be registered. <a href="/players">Register players</a></p>`)
			return
		}

		h.raw(`<form method="post" action="/games" id="record-game-form">`)
		playerSelect(h, "winner", "Winner", players, form.Winner)
		playerSelect(h, "loser", "Loser", players, form.Loser)
		h.raw(`<label>Score <input type="text" name="score" required placeholder="10:8" value="`)
		h.text(form.Score)
		h.raw(`"></label> <button type="submit">Save</button></form>`)
	}))
}

func playerSelect(h *html, name, label string, players []league.PlayerSummary, selected string) {
	h.raw(`<label>`)
	h.text(label)
	h.raw(` <select name="`)
	h.text(name)
	h.raw(`" required><option value="">Select a player</option>`)
	for _, p := range players {
		h.raw(`<option value="`)
		h.text(p.Name)
		h.raw(`"`)
		if p.Name == selected {
			h.raw(` selected`)
		}
		h.raw(`>`)
		h.text(p.Name)
		h.raw(` (`)
		h.num(p.Handicap)
		h.raw(`)</option>`)
	}
	h.raw(`</select></label> `)
}

func GameDetailPage(page Page, detail *service.GameDetail) templ.Component {
	page.Title = "Game"
	g := detail.Game
	return Layout(page, component(func(ctx context.Context, h *html) {
		h.raw(`<h1>Game #`)
		h.raw(strconv.FormatInt(g.ID, 10))
		h.raw(`</h1><table id="game"><tbody>`)
		h.raw(`<tr><th>Played</th><td>`)
		h.text(FormatPlayedAt(g.PlayedAt))
		h.raw(`</td></tr><tr><th>Winner</th><td id="winner"><a href="`)
		h.href(PlayerPath(g.WinnerName))
		h.raw(`">`)
		h.text(g.WinnerName)
		h.raw(`</a> (`)
		h.num(detail.WinnerHandicap)
		h.raw(`)</td></tr><tr><th>Loser</th><td id="loser"><a href="`)
		h.href(PlayerPath(g.LoserName))
		h.raw(`">`)
		h.text(g.LoserName)
		h.raw(`</a> (`)
		h.num(detail.LoserHandicap)
		h.raw(`)</td></tr><tr><th>Score</th><td id="score">`)
		h.text(g.Score)
		h.raw(`</td></tr><tr><th>Bonus</th><td id="bonus">`)
		h.num(g.Bonus)
		h.raw(`</td></tr></tbody></table>`)

		if page.CanEdit() {
			h.raw(`<form method="post" action="`)
			h.href(GamePath(g.ID) + "/delete")
			h.raw(`" onsubmit="return confirm('Delete this game? Standings will be recalculated.')"><button type="submit" id="delete-game">Delete game</button></form>`)
		}
	}))
}
