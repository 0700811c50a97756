// Package progress defines the reporting and cancellation contract shared by
// the import and export pipelines. Updates are delivered synchronously from
// within the pipeline loop; there is no background reporter.
package progress

import "sync/atomic"

// Update is a point-in-time report emitted by a pipeline.
type Update struct {
	Status         string
	Progress       float64 // fraction of work done, 0..1
	ProcessedLines int
	TotalLines     int
	CurrentFile    string
	HasError       bool
}

// Func receives updates. A nil Func is valid and reports nothing.
type Func func(Update)

// Notify invokes the callback when set.
func (f Func) Notify(u Update) {
	if f != nil {
		f(u)
	}
}

// Token is a cooperative cancellation flag. The caller may flip it from any
// goroutine; pipelines poll it between iterations and never preempt mid-line,
// so cancellation latency is bounded by one line's processing time.
type Token struct {
	cancelled atomic.Bool
}

// Cancel requests that the pipeline stop at the next iteration boundary.
func (t *Token) Cancel() {
	if t != nil {
		t.cancelled.Store(true)
	}
}

// Cancelled reports whether cancellation was requested. A nil token never
// cancels.
func (t *Token) Cancelled() bool {
	return t != nil && t.cancelled.Load()
}
