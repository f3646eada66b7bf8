package export

import (
	"bytes"

	"github.com/AdamBeresnev/billiards-league/internal/league"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	feltGreen  = drawing.ColorFromHex("1b5e20")
	chalkWhite = drawing.ColorFromHex("fafafa")
	inkGrey    = drawing.ColorFromHex("37474f")
)

// PointsChartPNG renders the points of every player as a bar chart, in ranking
// order. An empty or pointless league gets a placeholder image.
func PointsChartPNG(table *league.Table) ([]byte, error) {
	maxPoints := 0
	for _, s := range table.Standings {
		maxPoints = max(maxPoints, s.Points)
	}
	if maxPoints == 0 {
		return renderPlaceholder("No games recorded yet")
	}

	bars := make([]chart.Value, 0, len(table.Standings))
	for _, s := range table.Standings {
		bars = append(bars, chart.Value{
			Label: s.Name,
			Value: float64(s.Points),
			Style: chart.Style{FillColor: feltGreen, StrokeColor: feltGreen},
		})
	}

	graph := chart.BarChart{
		Title:      "Points",
		Width:      max(400, 80*len(bars)),
		Height:     400,
		BarWidth:   40,
		Background: chart.Style{FillColor: chalkWhite},
		Canvas:     chart.Style{FillColor: chalkWhite},
		XAxis:      chart.Style{FontColor: inkGrey},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: inkGrey},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxPoints)},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderPlaceholder(msg string) ([]byte, error) {
	graph := chart.Chart{
		Width:      400,
		Height:     200,
		Background: chart.Style{FillColor: chalkWhite},
		Canvas:     chart.Style{FillColor: chalkWhite},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(inkGrey)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
