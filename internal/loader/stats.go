package loader

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stats counts package-load attempts and the time they took. The counters
// are lock-free and safe for concurrent loads.
type Stats struct {
	attempts atomic.Uint64
	elapsed  atomic.Int64 // nanoseconds
}

// NewStats returns a fresh, zeroed counter set.
func NewStats() *Stats { return &Stats{} }

// Track records one load attempt. Call the returned func when the load
// finishes to add its duration.
func (s *Stats) Track() func() {
	s.attempts.Add(1)
	start := time.Now()
	return func() {
		s.elapsed.Add(int64(time.Since(start)))
	}
}

// Attempts returns the number of load attempts so far.
func (s *Stats) Attempts() uint64 { return s.attempts.Load() }

// Elapsed returns the total time spent in load attempts.
func (s *Stats) Elapsed() time.Duration { return time.Duration(s.elapsed.Load()) }

var (
	attemptsDesc = prometheus.NewDesc(
		"portico_package_load_attempts_total",
		"Number of package metadata load attempts.",
		nil, nil,
	)
	secondsDesc = prometheus.NewDesc(
		"portico_package_load_seconds_total",
		"Total time spent loading package metadata.",
		nil, nil,
	)
)

// Describe implements prometheus.Collector.
func (s *Stats) Describe(ch chan<- *prometheus.Desc) {
	ch <- attemptsDesc
	ch <- secondsDesc
}

// Collect implements prometheus.Collector.
func (s *Stats) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(attemptsDesc, prometheus.CounterValue, float64(s.Attempts()))
	ch <- prometheus.MustNewConstMetric(secondsDesc, prometheus.CounterValue, s.Elapsed().Seconds())
}
