package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/AdamBeresnev/billiards-league/internal/cache"
	"github.com/AdamBeresnev/billiards-league/internal/config"
	"github.com/AdamBeresnev/billiards-league/internal/db"
	"github.com/AdamBeresnev/billiards-league/internal/events"
	"github.com/AdamBeresnev/billiards-league/internal/logging"
	"github.com/AdamBeresnev/billiards-league/internal/metrics"
	"github.com/AdamBeresnev/billiards-league/internal/middleware"
	"github.com/AdamBeresnev/billiards-league/internal/notifier"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		return err
	}
	logger, err := logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	database, err := db.InitDB(cfg.Database.DSN, cfg.Database.AuthToken)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.RunMigrations(database.DB); err != nil {
		return err
	}

	secure := strings.HasPrefix(cfg.Server.BaseURL, "https://")

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Server.SessionLifetime
	sessionManager.Store = sqlite3store.New(database.DB)
	sessionManager.Cookie.Secure = secure

	bus := events.NewBus(logger)
	defer bus.Close()

	standingsCache, err := newCache(cfg.Cache)
	if err != nil {
		return err
	}
	if c, ok := standingsCache.(io.Closer); ok {
		defer c.Close()
	}

	m := metrics.NewService()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var n notifier.Notifier = notifier.Noop{}
	if cfg.Slack.Enabled() {
		n = notifier.NewSlack(cfg.Slack.Token, cfg.Slack.ChannelID, cfg.Server.BaseURL)
	}
	if err := notifier.Listen(ctx, bus, n, m); err != nil {
		return err
	}

	providers := middleware.InitAuth(cfg.Auth, cfg.Server.SessionSecret, secure)
	if len(providers) == 0 && !cfg.Server.DevLogin {
		slog.Warn("No sign-in provider is configured; nobody can become admin")
	}

	app := newApplication(cfg, deps{
		db:             database,
		sessions:       sessionManager,
		bus:            bus,
		cache:          standingsCache,
		metrics:        m,
		metricsHandler: metrics.NewMetricsHandler(),
		providers:      providers,
	})

	changes, err := app.idp.Subscribe(ctx)
	if err != nil {
		return err
	}
	go func() {
		for c := range changes {
			slog.Info("Identity changed", "kind", c.Kind.String(), "subject", c.Subject, "provider", c.Provider)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           app.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "addr", cfg.Server.Addr, "providers", providers, "dev_login", cfg.Server.DevLogin)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newCache(cfg config.CacheConfig) (cache.StandingsCache, error) {
	if cfg.RedisURL == "" {
		return cache.NewMemory(), nil
	}
	c, err := cache.NewRedis(cfg.RedisURL, cfg.TTL)
	if err != nil {
		return nil, err
	}
	slog.Info("Standings cache backed by redis")
	return c, nil
}
