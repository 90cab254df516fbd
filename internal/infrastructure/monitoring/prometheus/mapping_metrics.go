package prometheus

import (
	"time"

	"github.com/turtacn/ReactionMapper/internal/application/matching"
)

// MappingMetrics records engine activity.  It implements matching.Recorder.
type MappingMetrics struct {
	runs         CounterVec
	runDuration  HistogramVec
	jobs         CounterVec
	jobDuration  HistogramVec
	candidates   CounterVec
	solutions    CounterVec
	droppedPairs CounterVec
	poolSize     GaugeVec
	dedupRatio   GaugeVec
}

var _ matching.Recorder = (*MappingMetrics)(nil)

// NewMappingMetrics registers the engine metrics on c.
func NewMappingMetrics(c Collector) *MappingMetrics {
	return &MappingMetrics{
		runs: c.Counter("runs_total",
			"Mapping runs by theory and status (ok or timeout).", "theory", "status"),
		runDuration: c.Histogram("run_duration_seconds",
			"Wall time of a mapping run.", nil, "theory"),
		jobs: c.Counter("jobs_total",
			"Kernel jobs by theory and outcome.", "theory", "outcome"),
		jobDuration: c.Histogram("job_duration_seconds",
			"Kernel time of a job that was started.", nil, "theory"),
		candidates: c.Counter("candidate_pairs_total",
			"Reactant-product pairs selected for matching.", "theory"),
		solutions: c.Counter("solutions_total",
			"Replicated solutions returned.", "theory"),
		droppedPairs: c.Counter("dropped_pairs_total",
			"Atom pairs dropped during replication because an identifier did not resolve.", "theory"),
		poolSize: c.Gauge("pool_size",
			"Workers used by the most recent run.", "theory"),
		dedupRatio: c.Gauge("dedup_ratio",
			"Jobs per candidate pair in the most recent run; 1 means no pair was folded.", "theory"),
	}
}

// RecordJob implements matching.Recorder.
func (m *MappingMetrics) RecordJob(theory, outcome string, d time.Duration) {
	m.jobs.WithLabelValues(theory, outcome).Inc()
	if outcome == matching.OutcomeSuccess || outcome == matching.OutcomeFailed {
		m.jobDuration.WithLabelValues(theory).Observe(d.Seconds())
	}
}

// RecordRun implements matching.Recorder.
func (m *MappingMetrics) RecordRun(s matching.RunStats) {
	status := "ok"
	if s.TimedOut {
		status = "timeout"
	}
	m.runs.WithLabelValues(s.Theory, status).Inc()
	m.runDuration.WithLabelValues(s.Theory).Observe(s.Duration.Seconds())
	m.candidates.WithLabelValues(s.Theory).Add(float64(s.Candidates))
	m.solutions.WithLabelValues(s.Theory).Add(float64(s.Solutions))
	m.droppedPairs.WithLabelValues(s.Theory).Add(float64(s.Dropped))
	m.poolSize.WithLabelValues(s.Theory).Set(float64(s.PoolSize))
	if s.Candidates > 0 {
		m.dedupRatio.WithLabelValues(s.Theory).Set(float64(s.Jobs) / float64(s.Candidates))
	}
}
