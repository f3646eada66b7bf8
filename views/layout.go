package views

import (
	"context"

	"github.com/AdamBeresnev/billiards-league/internal/admin"
	"github.com/a-h/templ"
)

const stylesheet = `
body { font-family: system-ui, sans-serif; margin: 0; color: #1f2937; background: #f9fafb; }
nav { display: flex; gap: 1rem; align-items: center; padding: .75rem 1.5rem; background: #1b5e20; color: #fff; }
nav a, nav button { color: #fff; background: none; border: 0; font: inherit; cursor: pointer; text-decoration: none; }
nav .spacer { flex: 1; }
nav form { display: inline; }
main { max-width: 960px; margin: 1.5rem auto; padding: 0 1rem; }
table { width: 100%; border-collapse: collapse; background: #fff; }
th, td { padding: .4rem .6rem; border-bottom: 1px solid #e5e7eb; text-align: left; }
.flash { padding: .75rem 1rem; background: #e0f2fe; margin-bottom: 1rem; }
.error { padding: .75rem 1rem; background: #fee2e2; color: #991b1b; margin-bottom: 1rem; }
.progress-low { color: #dc2626; }
.summary { display: flex; gap: 2rem; margin-bottom: 1rem; }
`

// Layout wraps body with the navigation matching the admin state.
func Layout(page Page, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		if page.Title != "" {
			h.text(page.Title)
			h.raw(` · `)
		}
		h.raw(`Billiards League</title><style>`)
		h.raw(stylesheet)
		h.raw(`</style></head><body>`)

		h.raw(`<nav><a href="/"><strong>Billiards League</strong></a><a href="/">Standings</a><a href="/players">Players</a>`)
		if page.CanEdit() {
			h.raw(`<a href="/games/new" id="record-game">Record game</a>`)
		}
		h.raw(`<span class="spacer"></span>`)
		switch page.State {
		case admin.NoAdminExists:
			h.raw(`<a href="/login?register=1" id="register-admin">Register as admin</a>`)
		case admin.AdminExistsSessionMatch:
			if page.Identity != nil {
				h.raw(`<span id="signed-in-as">`)
				h.text(page.Identity.DisplayName())
				h.raw(`</span>`)
			}
			h.raw(`<form method="post" action="/admin/reset" onsubmit="return confirm('Remove the league admin? You will be signed out.')"><button type="submit" id="reset-admin">Reset admin</button></form>`)
			h.raw(`<form method="post" action="/logout"><button type="submit" id="logout">Log out</button></form>`)
		default:
			h.raw(`<a href="/login" id="login">Log in</a>`)
		}
		h.raw(`</nav><main>`)

		if page.Flash != "" {
			h.raw(`<div class="flash">`)
			h.text(page.Flash)
			h.raw(`</div>`)
		}
		if page.Error != "" {
			h.raw(`<div class="error" role="alert">`)
			h.text(page.Error)
			h.raw(`</div>`)
		}

		h.render(ctx, body)
		h.raw(`</main></body></html>`)
	})
}
