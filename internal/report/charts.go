package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tomsh-hr/pingstat/internal/models"
)

// LatencyChart renders the daily average RTT of one host as a PNG line
// chart. Buckets without RTT data are skipped; fewer than two plottable
// days is not enough for a line and reports an error.
func (g *Generator) LatencyChart(host string, buckets []models.Bucket) error {
	var timestamps []time.Time
	var values []float64

	// Buckets arrive newest first; the chart wants ascending time.
	for i := len(buckets) - 1; i >= 0; i-- {
		b := buckets[i]
		if b.AvgAvg == nil {
			continue
		}
		day, err := time.Parse("2006-01-02", b.Key)
		if err != nil {
			continue
		}
		timestamps = append(timestamps, day)
		values = append(values, *b.AvgAvg)
	}

	if len(values) < 2 {
		return fmt.Errorf("not enough data to chart %s", host)
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Daily Average Latency - %s", host),
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Date",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Latency (ms)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: host,
				Style: chart.Style{
					StrokeColor: chart.GetDefaultColor(0),
					StrokeWidth: 2,
				},
				XValues: timestamps,
				YValues: values,
			},
		},
	}

	filename := filepath.Join(g.dir, fmt.Sprintf("latency_%s.png", sanitizeFilename(host)))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := graph.Render(chart.PNG, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
