package export

import (
	"bytes"
	"testing"

	"github.com/AdamBeresnev/billiards-league/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func scenarioTable() *league.Table {
	table := league.Compute(
		[]league.Player{{Name: "A", Handicap: 0}, {Name: "B", Handicap: 5}, {Name: "C", Handicap: 10}},
		[]league.Game{{ID: 1, WinnerName: "A", LoserName: "C", Score: "10:8", Bonus: 1}},
	)
	return &table
}

func TestWriteStandingsXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStandingsXLSX(&buf, scenarioTable()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{standingsSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(standingsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Player", rows[0][1])
	assert.Equal(t, []string{"1", "A", "0", "1", "1", "0", "1", "4", "50"}, rows[1])
	assert.Equal(t, "C", rows[2][1])
	assert.Equal(t, "B", rows[3][1])

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Possible games", "3"}, summary[2])
}

func TestPointsChartPNG(t *testing.T) {
	data, err := PointsChartPNG(scenarioTable())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngSignature))
}

func TestPointsChartPlaceholder(t *testing.T) {
	empty := league.Compute(nil, nil)
	data, err := PointsChartPNG(&empty)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngSignature))
}
