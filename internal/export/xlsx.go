package export

import (
	"fmt"
	"io"

	"github.com/AdamBeresnev/billiards-league/internal/league"
	"github.com/xuri/excelize/v2"
)

const (
	standingsSheet = "Standings"
	summarySheet   = "Summary"
)

var standingsHeader = []any{"Rank", "Player", "Handicap", "Games", "Wins", "Losses", "Bonus", "Points", "Progress %"}

// WriteStandingsXLSX writes the table as a workbook with a standings sheet and a
// league summary sheet.
func WriteStandingsXLSX(w io.Writer, table *league.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), standingsSheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(standingsSheet, "A1", &standingsHeader); err != nil {
		return err
	}
	for i, s := range table.Standings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{s.Rank, s.Name, s.Handicap, s.GameCount, s.WinCount, s.LossCount, s.Bonus, s.Points, s.Progress}
		if err := f.SetSheetRow(standingsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", s.Name, err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	summary := [][]any{
		{"Players", table.Summary.PlayerCount},
		{"Games played", table.Summary.GameCount},
		{"Possible games", table.Summary.TotalPossibleGames},
		{"Progress %", table.Summary.Progress},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}
