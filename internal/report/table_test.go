package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomsh-hr/pingstat/internal/models"
)

func fptr(v float64) *float64 { return &v }

func TestFormatRTT(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   *float64
		want string
	}{
		{in: nil, want: "-"},
		{in: fptr(12.345), want: "12.345"},
		{in: fptr(0), want: "0.000"},
		{in: fptr(7.5), want: "7.500"},
		{in: fptr(1234.5678), want: "1234.568"},
	}

	for _, tt := range tests {
		if got := FormatRTT(tt.in); got != tt.want {
			t.Errorf("FormatRTT(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatLoss(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0.0%"},
		{in: 25, want: "25.0%"},
		{in: 10.0, want: "10.0%"},
		{in: 33.333, want: "33.3%"},
		{in: 100, want: "100.0%"},
	}

	for _, tt := range tests {
		if got := FormatLoss(tt.in); got != tt.want {
			t.Errorf("FormatLoss(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBucketTable_Daily(t *testing.T) {
	t.Parallel()

	buckets := []models.Bucket{
		{
			Key:      "2026-08-30",
			Weekday:  "Sunday",
			AbsMin:   fptr(9.1),
			AvgMin:   fptr(10.2),
			AvgAvg:   fptr(12.3),
			AvgMax:   fptr(14.4),
			AbsMax:   fptr(16.5),
			AvgLoss:  2.5,
			NumPings: 48,
		},
		{
			Key:      "2026-08-29",
			Weekday:  "Saturday",
			AvgLoss:  100,
			NumPings: 3,
		},
	}

	table := BucketTable(models.Daily, buckets)
	if len(table.Columns) != 9 {
		t.Fatalf("columns = %d, want 9", len(table.Columns))
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}

	want := []string{"2026-08-30", "Sunday", "9.100", "10.200", "12.300", "14.400", "16.500", "2.5%", "48"}
	for i, cell := range want {
		if table.Rows[0][i] != cell {
			t.Errorf("row[0][%d] = %q, want %q", i, table.Rows[0][i], cell)
		}
	}

	// All-null bucket renders dashes, loss is still present.
	nullRow := table.Rows[1]
	for _, i := range []int{2, 3, 4, 5, 6} {
		if nullRow[i] != "-" {
			t.Errorf("row[1][%d] = %q, want dash", i, nullRow[i])
		}
	}
	if nullRow[7] != "100.0%" {
		t.Errorf("loss cell = %q", nullRow[7])
	}
}

func TestBucketTable_MonthlyHasNoWeekday(t *testing.T) {
	t.Parallel()

	table := BucketTable(models.Monthly, []models.Bucket{{Key: "2026-08", AvgLoss: 0, NumPings: 10}})
	if len(table.Columns) != 8 {
		t.Fatalf("columns = %d, want 8", len(table.Columns))
	}
	if table.Rows[0][0] != "2026-08" {
		t.Errorf("key cell = %q", table.Rows[0][0])
	}
}

func TestTablePrint_Alignment(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	Table{
		Columns: []string{"date", "loss"},
		Rows:    [][]string{{"2026-08-30", "0.0%"}},
	}.Print(&out)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header, separator, row", len(lines))
	}
	if lines[0] != "date        loss" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "----------  ----" {
		t.Errorf("separator = %q", lines[1])
	}
	if lines[2] != "2026-08-30  0.0%" {
		t.Errorf("row = %q", lines[2])
	}
}
