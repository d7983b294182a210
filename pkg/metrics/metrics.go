// Package metrics holds shared metric configuration reused across the
// application.
package metrics

// DefaultBuckets provides a common set of histogram bucket boundaries in
// seconds for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals
