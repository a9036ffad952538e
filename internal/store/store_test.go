package store

import (
	"os"
	"testing"
	"time"

	"github.com/tomsh-hr/pingstat/internal/models"
)

func fptr(v float64) *float64 { return &v }

func TestStorageKey(t *testing.T) {
	t.Parallel()

	valid := []string{"kernel.org", "1.1.1.1", "my-host_1", "2001:db8::1"}
	for _, host := range valid {
		key, err := StorageKey(host)
		if err != nil {
			t.Errorf("StorageKey(%q): %v", host, err)
		}
		if key != host+".db" {
			t.Errorf("StorageKey(%q) = %q", host, key)
		}
	}

	invalid := []string{"", "../../etc/passwd", "a/b", `a\b`, "-c4", "host..db", ".hidden"}
	for _, host := range invalid {
		if _, err := StorageKey(host); err == nil {
			t.Errorf("StorageKey(%q) accepted, want error", host)
		}
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	t.Parallel()

	s := New(t.TempDir())
	for i := 0; i < 2; i++ {
		if err := s.EnsureSchema("kernel.org"); err != nil {
			t.Fatalf("EnsureSchema #%d: %v", i+1, err)
		}
	}

	path, err := s.Path("kernel.org")
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("store file missing: %v", err)
	}
}

func TestInsert_NullPropagation(t *testing.T) {
	t.Parallel()

	s := New(t.TempDir())
	if err := s.Insert("kernel.org", models.Degraded()); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	buckets, err := s.QueryBuckets("kernel.org", models.Daily, 10)
	if err != nil {
		t.Fatalf("QueryBuckets: %v", err)
	}
	if len(buckets) != 1 {
		t.Fatalf("buckets = %d, want 1", len(buckets))
	}

	b := buckets[0]
	if b.AbsMin != nil || b.AvgMin != nil || b.AvgAvg != nil || b.AvgMax != nil || b.AbsMax != nil {
		t.Errorf("expected all RTT aggregates nil, got %+v", b)
	}
	if b.AvgLoss != 100 {
		t.Errorf("avg_loss = %v, want 100", b.AvgLoss)
	}
	if b.NumPings != 1 {
		t.Errorf("num_pings = %d, want 1", b.NumPings)
	}
	if b.Weekday == "" {
		t.Errorf("daily bucket missing weekday")
	}
}

func TestQueryBuckets_DailyAggregates(t *testing.T) {
	t.Parallel()

	s := New(t.TempDir())
	day := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

	samples := []models.Measurement{
		{Min: fptr(1.0), Avg: fptr(2.0), Max: fptr(3.0), Mdev: fptr(0.1), Loss: 0},
		{Min: fptr(3.0), Avg: fptr(4.0), Max: fptr(5.0), Mdev: fptr(0.2), Loss: 10},
		{Min: fptr(5.0), Avg: fptr(6.0), Max: fptr(7.0), Mdev: fptr(0.3), Loss: 20},
	}
	for i, m := range samples {
		ts := day.Add(time.Duration(i) * time.Hour)
		if err := s.insertAt("kernel.org", ts, m); err != nil {
			t.Fatalf("insertAt #%d: %v", i, err)
		}
	}

	buckets, err := s.QueryBuckets("kernel.org", models.Daily, 10)
	if err != nil {
		t.Fatalf("QueryBuckets: %v", err)
	}
	if len(buckets) != 1 {
		t.Fatalf("buckets = %d, want 1", len(buckets))
	}

	b := buckets[0]
	if b.Key != "2026-08-30" {
		t.Errorf("key = %q", b.Key)
	}
	if b.Weekday != "Sunday" {
		t.Errorf("weekday = %q, want Sunday", b.Weekday)
	}
	if b.AvgLoss != 10.0 {
		t.Errorf("avg_loss = %v, want 10.0", b.AvgLoss)
	}
	if b.NumPings != 3 {
		t.Errorf("num_pings = %d, want 3", b.NumPings)
	}
	if *b.AbsMin != 1.0 || *b.AvgMin != 3.0 {
		t.Errorf("abs_min = %v, avg_min = %v", *b.AbsMin, *b.AvgMin)
	}
	if *b.AvgAvg != 4.0 {
		t.Errorf("avg_avg = %v, want 4.0", *b.AvgAvg)
	}
	if *b.AvgMax != 5.0 || *b.AbsMax != 7.0 {
		t.Errorf("avg_max = %v, abs_max = %v", *b.AvgMax, *b.AbsMax)
	}
}

func TestQueryBuckets_LimitAndOrder(t *testing.T) {
	t.Parallel()

	s := New(t.TempDir())
	for i := 0; i < 5; i++ {
		ts := time.Date(2026, 8, 20+i, 12, 0, 0, 0, time.UTC)
		m := models.Measurement{Min: fptr(1), Avg: fptr(2), Max: fptr(3), Mdev: fptr(0.1), Loss: 0}
		if err := s.insertAt("kernel.org", ts, m); err != nil {
			t.Fatalf("insertAt: %v", err)
		}
	}

	buckets, err := s.QueryBuckets("kernel.org", models.Daily, 2)
	if err != nil {
		t.Fatalf("QueryBuckets: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(buckets))
	}
	if buckets[0].Key != "2026-08-24" || buckets[1].Key != "2026-08-23" {
		t.Errorf("keys = %q, %q; want newest first", buckets[0].Key, buckets[1].Key)
	}
}

func TestQueryBuckets_MonthlyGrouping(t *testing.T) {
	t.Parallel()

	s := New(t.TempDir())
	stamps := []time.Time{
		time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 15, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 2, 8, 0, 0, 0, time.UTC),
	}
	for _, ts := range stamps {
		m := models.Measurement{Min: fptr(1), Avg: fptr(2), Max: fptr(3), Mdev: fptr(0.1), Loss: 0}
		if err := s.insertAt("kernel.org", ts, m); err != nil {
			t.Fatalf("insertAt: %v", err)
		}
	}

	buckets, err := s.QueryBuckets("kernel.org", models.Monthly, 10)
	if err != nil {
		t.Fatalf("QueryBuckets: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(buckets))
	}
	if buckets[0].Key != "2026-08" || buckets[1].Key != "2026-07" {
		t.Errorf("keys = %q, %q", buckets[0].Key, buckets[1].Key)
	}
	if buckets[1].NumPings != 2 {
		t.Errorf("july num_pings = %d, want 2", buckets[1].NumPings)
	}
	if buckets[0].Weekday != "" {
		t.Errorf("monthly bucket carries weekday %q", buckets[0].Weekday)
	}
}

func TestQueryBuckets_EmptyStore(t *testing.T) {
	t.Parallel()

	s := New(t.TempDir())
	buckets, err := s.QueryBuckets("kernel.org", models.Daily, 10)
	if err != nil {
		t.Fatalf("QueryBuckets: %v", err)
	}
	if len(buckets) != 0 {
		t.Errorf("buckets = %v, want none", buckets)
	}
}
