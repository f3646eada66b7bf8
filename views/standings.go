package views

import (
	"context"

	"github.com/AdamBeresnev/billiards-league/internal/league"
	"github.com/a-h/templ"
)

func StandingsPage(page Page, table *league.Table) templ.Component {
	page.Title = "Standings"
	return Layout(page, component(func(ctx context.Context, h *html) {
		s := table.Summary
		h.raw(`<section class="summary" id="summary">`)
		h.raw(`<div>Players <strong id="player-count">`)
		h.num(s.PlayerCount)
		h.raw(`</strong></div><div>Games <strong id="game-count">`)
		h.num(s.GameCount)
		h.raw(` / `)
		h.num(s.TotalPossibleGames)
		h.raw(`</strong></div><div>Progress <strong id="league-progress">`)
		h.num(s.Progress)
		h.raw(` %</strong></div></section>`)

		if len(table.Standings) == 0 {
			h.raw(`<p id="no-players">No players registered yet.</p>`)
			return
		}

		h.raw(`<table id="standings"><thead><tr><th>Rank</th><th>Player</th><th>Handicap</th><th>Games</th><th>W</th><th>L</th><th>Bonus</th><th>Points</th><th>Progress</th></tr></thead><tbody>`)
		for _, st := range table.Standings {
			h.raw(`<tr data-player="`)
			h.text(st.Name)
			h.raw(`"><td class="rank">`)
			h.num(st.Rank)
			h.raw(`</td><td class="name"><a href="`)
			h.href(PlayerPath(st.Name))
			h.raw(`">`)
			h.text(st.Name)
			h.raw(`</a></td><td>`)
			h.num(st.Handicap)
			h.raw(`</td><td>`)
			h.num(st.GameCount)
			h.raw(`</td><td>`)
			h.num(st.WinCount)
			h.raw(`</td><td>`)
			h.num(st.LossCount)
			h.raw(`</td><td>`)
			h.num(st.Bonus)
			h.raw(`</td><td class="points">`)
			h.num(st.Points)
			h.raw(`</td><td class="`)
			h.raw(ProgressClass(st.Progress))
			h.raw(`">`)
			h.num(st.Progress)
			h.raw(`%</td></tr>`)
		}
		h.raw(`</tbody></table>`)
		h.raw(`<p><a href="/standings.xlsx">Download spreadsheet</a> · <a href="/standings/chart.png">Points chart</a></p>`)
	}))
}
