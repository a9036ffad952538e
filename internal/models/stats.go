package models

// Granularity selects the calendar unit samples are bucketed by.
type Granularity int

const (
	Daily Granularity = iota
	Monthly
)

func (g Granularity) String() string {
	if g == Monthly {
		return "monthly"
	}
	return "daily"
}

// Bucket is a derived aggregate over one calendar day or month of samples.
// It is computed on demand and never stored. Aggregate fields follow SQL
// NULL semantics: a bucket whose samples all have a nil RTT field yields
// nil for the aggregates over that field.
type Bucket struct {
	Key      string   `json:"key"`               // YYYY-MM-DD or YYYY-MM
	Weekday  string   `json:"weekday,omitempty"` // daily buckets only
	AbsMin   *float64 `json:"abs_min"`
	AvgMin   *float64 `json:"avg_min"`
	AvgAvg   *float64 `json:"avg_avg"`
	AvgMax   *float64 `json:"avg_max"`
	AbsMax   *float64 `json:"abs_max"`
	AvgLoss  float64  `json:"avg_loss"`
	NumPings int      `json:"num_pings"`
}
