package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/AdamBeresnev/billiards-league/migrations"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

const DefaultDSN = "league.db?_journal_mode=WAL"

// InitDB opens the league database. A libsql:// or https:// DSN connects to a hosted
// libSQL database, anything else is treated as a local SQLite file.
func InitDB(dsn string, authToken string) (*sqlx.DB, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}

	driver := "sqlite3"
	if isRemote(dsn) {
		driver = "libsql"
		var err error
		if dsn, err = remoteDSN(dsn, authToken); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if driver == "sqlite3" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			db.Close()
			return nil, err
		}
	}

	slog.Info("Database connected", "driver", driver)
	return db, nil
}

// remoteDSN adds the auth token to a hosted database URL, keeping any query it has.
func remoteDSN(dsn, authToken string) (string, error) {
	if authToken == "" {
		return dsn, nil
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid database url: %w", err)
	}
	q := u.Query()
	q.Set("authToken", authToken)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func isRemote(dsn string) bool {
	return strings.HasPrefix(dsn, "libsql://") || strings.HasPrefix(dsn, "https://") || strings.HasPrefix(dsn, "http://")
}

// RunMigrations applies the embedded migrations.
func RunMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migrate driver: %w", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// NewTestDB opens a private in-memory database with all migrations applied.
// A single connection keeps every query on the same in-memory database.
func NewTestDB() (*sqlx.DB, error) {
	database, err := sqlx.Connect("sqlite3", "file::memory:")
	if err != nil {
		return nil, err
	}
	database.SetMaxOpenConns(1)

	if _, err := database.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		database.Close()
		return nil, err
	}
	if err := RunMigrations(database.DB); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
