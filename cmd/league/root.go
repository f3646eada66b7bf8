package main

import (
	"fmt"
	"os"

	"github.com/AdamBeresnev/billiards-league/internal/config"
	"github.com/AdamBeresnev/billiards-league/internal/db"
	"github.com/AdamBeresnev/billiards-league/internal/logging"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

// env holds what the commands share. A preset db is used as is.
type env struct {
	configFile string
	dsn        string
	cfg        *config.Config
	db         *sqlx.DB
	ownsDB     bool
}

func newRootCmd(e *env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "league",
		Short: "Operator tool for the billiards league",
		Long: `league works directly on the league database: it applies migrations,
prints the standings and can clear the admin so the next sign-in can register.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return e.close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&e.configFile, "config", config.DefaultFile, "Config file")
	rootCmd.PersistentFlags().StringVar(&e.dsn, "dsn", "", "Database DSN (overrides config and DATABASE_URL)")

	rootCmd.AddCommand(newMigrateCmd(e))
	rootCmd.AddCommand(newStandingsCmd(e))
	rootCmd.AddCommand(newPlayersCmd(e))
	rootCmd.AddCommand(newAdminCmd(e))

	return rootCmd
}

func (e *env) load() error {
	if e.cfg == nil {
		cfg, err := config.Load(e.configFile)
		if err != nil {
			return err
		}
		e.cfg = cfg
	}
	if _, err := logging.Setup(os.Stderr, e.cfg.Log.Level, e.cfg.Log.Format); err != nil {
		return err
	}

	if e.db != nil {
		return nil
	}
	dsn := e.cfg.Database.DSN
	if e.dsn != "" {
		dsn = e.dsn
	}
	database, err := db.InitDB(dsn, e.cfg.Database.AuthToken)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	e.db = database
	e.ownsDB = true
	return nil
}

func (e *env) close() error {
	if e.db == nil || !e.ownsDB {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	e.ownsDB = false
	return err
}
