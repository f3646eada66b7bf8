package views

import (
	"context"

	"github.com/a-h/templ"
)

var providerLabels = map[string]string{
	"google":  "Google",
	"kakao":   "Kakao",
	"discord": "Discord",
}

// LoginPage lists the configured providers. With register set every link
// carries the admin registration intent.
func LoginPage(page Page, register bool) templ.Component {
	page.Title = "Log in"
	return Layout(page, component(func(ctx context.Context, h *html) {
		if register {
			h.raw(`<h1>Register as league admin</h1><p>The first account to complete this sign-in becomes the only admin.</p>`)
		} else {
			h.raw(`<h1>Log in</h1>`)
		}

		if len(page.Providers) == 0 && !page.DevLogin {
			h.raw(`<p id="no-providers">No sign-in provider is configured.</p>`)
		}

		h.raw(`<ul id="providers">`)
		for _, p := range page.Providers {
			target := "/auth/" + p
			if register {
				target += "?register=1"
			}
			label := providerLabels[p]
			if label == "" {
				label = p
			}
			h.raw(`<li><a href="`)
			h.href(target)
			h.raw(`">Continue with `)
			h.text(label)
			h.raw(`</a></li>`)
		}
		h.raw(`</ul>`)

		if page.DevLogin {
			h.raw(`<form method="post" action="/auth/dev" id="dev-login"><label>E-mail <input type="email" name="email" required></label>`)
			if register {
				h.raw(`<input type="hidden" name="register" value="1">`)
			}
			h.raw(` <button type="submit">Development sign-in</button></form>`)
		}
	}))
}
