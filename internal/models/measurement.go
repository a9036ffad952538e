package models

import "time"

// Measurement represents a single probe outcome before persistence.
// The RTT fields are nil when the probe produced no round-trip summary;
// Loss is always present and defaults to 100 for an unparsable result.
type Measurement struct {
	Min  *float64 `json:"min_ms"`
	Avg  *float64 `json:"avg_ms"`
	Max  *float64 `json:"max_ms"`
	Mdev *float64 `json:"mdev_ms"`
	Loss float64  `json:"loss_pct"` // percentage, 0-100
}

// Degraded returns the measurement recorded when a probe yields nothing
// usable: full packet loss, no RTT data.
func Degraded() Measurement {
	return Measurement{Loss: 100}
}

// Reachable reports whether at least one echo request was answered.
func (m Measurement) Reachable() bool {
	return m.Loss < 100
}

// Sample is a Measurement persisted with a row identity and timestamp.
type Sample struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Measurement
}
