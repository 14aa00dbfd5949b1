// Package metrics provides a small, backend-agnostic abstraction for recording
// operational metrics from the cleaning pipeline and the SQL loader.
//
// A global backend defaults to a no-op implementation, so the helpers below
// are always safe to call. Concrete metric systems live in subpackages
// (see prompush) and are installed once by the binaries via SetBackend.
package metrics

import "time"

// Metric names shared by the helpers and the backends.
const (
	FilesTotal   = "labclean_files_total"
	FileDuration = "labclean_file_duration_seconds"
	RowsTotal    = "labclean_rows_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordFile counts one processed file and observes how long it took.
// outcome is one of the pipeline outcomes ("success", "skipped", "failed").
func RecordFile(job, table, outcome string, d time.Duration) {
	lbls := Labels{
		"job":     job,
		"table":   table,
		"outcome": outcome,
	}

	backend.IncCounter(FilesTotal, 1, lbls)
	backend.ObserveHistogram(FileDuration, d.Seconds(), lbls)
}

// RecordRows increments a row-level counter for the given job and kind.
//
// Kinds used by the binaries:
//   - "read"
//   - "written"
//   - "dropped"
//   - "inserted"
//   - "rejected"
func RecordRows(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(RowsTotal, float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}
