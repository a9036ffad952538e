package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tomsh-hr/pingstat/internal/models"
)

// FormatRTT renders an aggregate RTT field to three decimal places, or a
// dash when the bucket has no data for it.
func FormatRTT(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f", *v)
}

// FormatLoss renders a loss percentage to one decimal place.
func FormatLoss(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// Table is a column-aligned text table.
type Table struct {
	Columns []string
	Rows    [][]string
}

// BucketTable converts stat buckets into display rows.
func BucketTable(g models.Granularity, buckets []models.Bucket) Table {
	t := Table{}
	if g == models.Daily {
		t.Columns = []string{"date", "day", "min", "avg min", "avg", "avg max", "max", "loss", "pings"}
	} else {
		t.Columns = []string{"month", "min", "avg min", "avg", "avg max", "max", "loss", "pings"}
	}

	for _, b := range buckets {
		row := []string{b.Key}
		if g == models.Daily {
			row = append(row, b.Weekday)
		}
		row = append(row,
			FormatRTT(b.AbsMin),
			FormatRTT(b.AvgMin),
			FormatRTT(b.AvgAvg),
			FormatRTT(b.AvgMax),
			FormatRTT(b.AbsMax),
			FormatLoss(b.AvgLoss),
			strconv.Itoa(b.NumPings),
		)
		t.Rows = append(t.Rows, row)
	}

	return t
}

// Print writes the table with columns padded to their widest cell.
func (t Table) Print(w io.Writer) {
	if len(t.Columns) == 0 {
		return
	}

	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = len(col)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(values []string) {
		for i, value := range values {
			if i > 0 {
				fmt.Fprint(w, "  ")
			}
			fmt.Fprint(w, padRight(value, widths[i]))
		}
		fmt.Fprint(w, "\n")
	}

	writeRow(t.Columns)
	separators := make([]string, len(t.Columns))
	for i, width := range widths {
		separators[i] = strings.Repeat("-", width)
	}
	writeRow(separators)

	for _, row := range t.Rows {
		writeRow(row)
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
