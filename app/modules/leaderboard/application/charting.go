package leaderboardservice

import (
	"bytes"
	"fmt"

	leaderboarddomain "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colours used for leaderboard charts.
type ChartPalette struct {
	Background drawing.Color
	Bar        drawing.Color
	BarStroke  drawing.Color
	TextColor  drawing.Color
}

// ArcadePalette is the dark neon palette used by the web client.
var ArcadePalette = ChartPalette{
	Background: drawing.ColorFromHex("1a1a2e"),
	Bar:        drawing.ColorFromHex("e94560"),
	BarStroke:  drawing.ColorFromHex("ffd460"),
	TextColor:  drawing.ColorFromHex("eeeeee"),
}

// GenerateRankingChart produces a PNG bar chart with one bar per ranking entry,
// best rank on the left.
func GenerateRankingChart(title string, entries []leaderboarddomain.Entry, palette ChartPalette) ([]byte, error) {
	if len(entries) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	bars := make([]chart.Value, len(entries))
	for i, e := range entries {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("#%d %s", e.Rank, e.Player),
			Value: float64(e.Score),
			Style: chart.Style{
				FillColor:   palette.Bar,
				StrokeColor: palette.BarStroke,
				StrokeWidth: 1,
			},
		}
	}

	graph := chart.BarChart{
		Title: title,
		TitleStyle: chart.Style{
			FontColor: palette.TextColor,
		},
		Width:    640,
		Height:   360,
		BarWidth: 80,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.Style{
			FontColor: palette.TextColor,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render ranking chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// renderNoDataPlaceholder draws straight onto a renderer: chart types refuse to
// render without data.
func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No scores yet"
	)

	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}

	r.SetFillColor(palette.Background)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(palette.TextColor)
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)

	buffer := bytes.NewBuffer([]byte{})
	if err := r.Save(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
