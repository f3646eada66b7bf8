package middleware

import (
	"github.com/AdamBeresnev/billiards-league/internal/config"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/discord"
	"github.com/markbates/goth/providers/google"
	"github.com/markbates/goth/providers/kakao"
)

// InitAuth registers every OAuth provider that has credentials and returns
// their names in display order.
func InitAuth(cfg config.AuthConfig, sessionSecret string, secure bool) []string {
	store := sessions.NewCookieStore([]byte(sessionSecret))
	store.MaxAge(15 * 60)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	gothic.Store = store

	var providers []goth.Provider
	var names []string

	if cfg.Google.Enabled() {
		providers = append(providers, google.New(cfg.Google.Key, cfg.Google.Secret, cfg.Google.CallbackURL, "email", "profile"))
		names = append(names, "google")
	}
	if cfg.Kakao.Enabled() {
		providers = append(providers, kakao.New(cfg.Kakao.Key, cfg.Kakao.Secret, cfg.Kakao.CallbackURL))
		names = append(names, "kakao")
	}
	if cfg.Discord.Enabled() {
		providers = append(providers, discord.New(cfg.Discord.Key, cfg.Discord.Secret, cfg.Discord.CallbackURL, discord.ScopeIdentify, discord.ScopeEmail))
		names = append(names, "discord")
	}

	goth.ClearProviders()
	goth.UseProviders(providers...)
	return names
}
