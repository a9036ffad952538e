package models

// Prober interface defines probe execution operations
type Prober interface {
	Probe(host string, count int) Measurement
}

// SampleStore interface defines operations for sample persistence
type SampleStore interface {
	EnsureSchema(host string) error
	Insert(host string, m Measurement) error
	QueryBuckets(host string, g Granularity, limit int) ([]Bucket, error)
}
