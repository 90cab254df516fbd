package matching

import "time"

// Job outcomes reported to a Recorder.
const (
	OutcomeSuccess   = "success"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
	OutcomeSkipped   = "skipped"
)

// RunStats summarises one MatchAll call.
type RunStats struct {
	Theory     string
	Candidates int
	Jobs       int
	Solutions  int
	PoolSize   int
	Dropped    int
	Duration   time.Duration
	TimedOut   bool
}

// Recorder receives engine measurements.  RecordJob is called by the
// goroutine running the match, once per classified job and once per
// collected outcome.  A recorder shared between matchers must be safe for
// concurrent use.
type Recorder interface {
	RecordJob(theory, outcome string, d time.Duration)
	RecordRun(stats RunStats)
}

type noopRecorder struct{}

func (noopRecorder) RecordJob(string, string, time.Duration) {}
func (noopRecorder) RecordRun(RunStats)                    {}

// NoopRecorder discards every measurement.
func NoopRecorder() Recorder { return noopRecorder{} }
