package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tomsh-hr/pingstat/internal/models"
)

// QueryBuckets groups all of the host's samples into calendar buckets and
// computes one summary row per bucket, newest first, truncated to limit.
// NULL RTT fields are excluded from the aggregates, so a bucket whose
// samples all lack a field aggregates it to NULL.
func (s *Store) QueryBuckets(host string, g models.Granularity, limit int) ([]models.Bucket, error) {
	db, err := s.open(host)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	pattern := "%Y-%m-%d"
	if g == models.Monthly {
		pattern = "%Y-%m"
	}

	query := fmt.Sprintf(`
        SELECT
            strftime('%s', timestamp) as bucket,
            MIN(min) as abs_min,
            AVG(min) as avg_min,
            AVG(avg) as avg_avg,
            AVG(max) as avg_max,
            MAX(max) as abs_max,
            AVG(loss) as avg_loss,
            COUNT(*) as num_pings
        FROM pings
        GROUP BY bucket
        ORDER BY bucket DESC
        LIMIT ?
    `, pattern)

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []models.Bucket
	for rows.Next() {
		var b models.Bucket
		var absMin, avgMin, avgAvg, avgMax, absMax sql.NullFloat64
		err := rows.Scan(&b.Key, &absMin, &avgMin, &avgAvg, &avgMax, &absMax, &b.AvgLoss, &b.NumPings)
		if err != nil {
			return nil, err
		}
		b.AbsMin = nullable(absMin)
		b.AvgMin = nullable(avgMin)
		b.AvgAvg = nullable(avgAvg)
		b.AvgMax = nullable(avgMax)
		b.AbsMax = nullable(absMax)
		if g == models.Daily {
			b.Weekday = weekdayName(b.Key)
		}
		buckets = append(buckets, b)
	}

	return buckets, rows.Err()
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// weekdayName derives the weekday from a YYYY-MM-DD bucket key.
func weekdayName(key string) string {
	day, err := time.Parse("2006-01-02", key)
	if err != nil {
		return ""
	}
	return day.Weekday().String()
}
