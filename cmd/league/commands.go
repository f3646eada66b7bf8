package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/AdamBeresnev/billiards-league/internal/db"
	"github.com/AdamBeresnev/billiards-league/internal/events"
	"github.com/AdamBeresnev/billiards-league/internal/league"
	"github.com/AdamBeresnev/billiards-league/internal/metrics"
	"github.com/AdamBeresnev/billiards-league/internal/service"
	"github.com/AdamBeresnev/billiards-league/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply all pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.RunMigrations(e.db.DB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			return nil
		},
	}
}

func newStandingsCmd(e *env) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Print the ranked standings and the league summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := computeTable(cmd.Context(), e)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return printJSON(cmd.OutOrStdout(), table)
			case "text":
				return printStandings(cmd.OutOrStdout(), table)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")
	return cmd
}

func newPlayersCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "List registered players",
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := store.NewPlayerStore(e.db).ListPlayerSummaries(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tHANDICAP\tGAMES")
			for _, p := range players {
				history := "no"
				if p.HasGameHistory {
					history = "yes"
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", p.Name, p.Handicap, history)
			}
			return w.Flush()
		},
	}
}

func newAdminCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Inspect or clear the league admin",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show who is registered as admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := store.NewAdminStore(e.db).GetAdmin(cmd.Context())
			if errors.Is(err, sql.ErrNoRows) {
				fmt.Fprintln(cmd.OutOrStdout(), "No admin registered.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin: %s (since %s)\n", a.ID, a.CreatedAt.Format("2006-01-02 15:04"))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Remove the admin so the next registration takes over",
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := events.NewBus(slog.Default())
			defer bus.Close()

			admins := service.NewAdminService(store.NewAdminStore(e.db), bus, metrics.NewService(prometheus.NewRegistry()))
			cleared, err := admins.ForceReset(cmd.Context())
			if err != nil {
				return err
			}
			if !cleared {
				fmt.Fprintln(cmd.OutOrStdout(), "No admin registered.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Admin removed.")
			return nil
		},
	})

	return cmd
}

func computeTable(ctx context.Context, e *env) (*league.Table, error) {
	players, err := store.NewPlayerStore(e.db).ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	games, err := store.NewGameStore(e.db).ListGames(ctx)
	if err != nil {
		return nil, err
	}
	table := league.Compute(players, games)
	return &table, nil
}

func printStandings(out io.Writer, table *league.Table) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tPLAYER\tHCP\tGAMES\tW\tL\tBONUS\tPOINTS\tPROGRESS")
	for _, s := range table.Standings {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d%%\n",
			s.Rank, s.Name, s.Handicap, s.GameCount, s.WinCount, s.LossCount, s.Bonus, s.Points, s.Progress)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	sum := table.Summary
	_, err := fmt.Fprintf(out, "\n%d players, %d of %d games played (%d%%)\n",
		sum.PlayerCount, sum.GameCount, sum.TotalPossibleGames, sum.Progress)
	return err
}

func printJSON(out io.Writer, data any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
