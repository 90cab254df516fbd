package matching

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/turtacn/ReactionMapper/internal/domain/mapping"
	"github.com/turtacn/ReactionMapper/internal/domain/reaction"
	"github.com/turtacn/ReactionMapper/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ReactionMapper/pkg/errors"
)

const tracerName = "github.com/turtacn/ReactionMapper/internal/application/matching"

// Matcher is the engine contract consumed by the CLI and the HTTP API.
type Matcher interface {
	// MatchAll returns one solution per candidate pair whose job succeeded,
	// in completion order.
	MatchAll(ctx context.Context, src reaction.Source, theory mapping.Theory) ([]*mapping.MCSSolution, error)

	// Run is MatchAll with run statistics.
	Run(ctx context.Context, src reaction.Source, theory mapping.Theory) (*RunResult, error)
}

// RunResult is the outcome of one run.
type RunResult struct {
	RunID      string
	Theory     mapping.Theory
	Candidates int
	Jobs       int
	PoolSize   int
	Dropped    int
	Duration   time.Duration
	TimedOut   bool
	Solutions  []*mapping.MCSSolution
}

// Option configures a GraphMatcher.
type Option func(*GraphMatcher)

// WithLogger sets the logger.  The engine logs under the name "matching".
func WithLogger(l logging.Logger) Option {
	return func(m *GraphMatcher) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(m *GraphMatcher) {
		if r != nil {
			m.recorder = r
		}
	}
}

// WithTracer sets the tracer.  Defaults to the global provider's tracer.
func WithTracer(t trace.Tracer) Option {
	return func(m *GraphMatcher) {
		if t != nil {
			m.tracer = t
		}
	}
}

// WithProcessors overrides runtime.NumCPU() in the pool size computation.
// Non-positive values keep the default.
func WithProcessors(n int) Option {
	return func(m *GraphMatcher) { m.workers = n }
}

// WithShutdownTimeout bounds the wait for all jobs of a run, counted from
// the first submission.  Zero waits without bound.
func WithShutdownTimeout(d time.Duration) Option {
	return func(m *GraphMatcher) { m.shutdownTimeout = d }
}

// WithStrictIdentifiers makes a reaction with missing or repeated atom
// identifiers fail the run instead of only logging a warning.
func WithStrictIdentifiers(strict bool) Option {
	return func(m *GraphMatcher) { m.strict = strict }
}

// WithIndexedJobs selects hashed job deduplication.
func WithIndexedJobs(indexed bool) Option {
	return func(m *GraphMatcher) { m.indexed = indexed }
}

// GraphMatcher is the parallel MCS engine.  It keeps no per-run state and
// is safe for concurrent use.
type GraphMatcher struct {
	kernel          mapping.Kernel
	finder          mapping.CycleFinder
	logger          logging.Logger
	recorder        Recorder
	tracer          trace.Tracer
	workers         int
	shutdownTimeout time.Duration
	strict          bool
	indexed         bool
}

var _ Matcher = (*GraphMatcher)(nil)

// NewGraphMatcher builds an engine delegating to kernel and finder.
func NewGraphMatcher(kernel mapping.Kernel, finder mapping.CycleFinder, opts ...Option) (*GraphMatcher, error) {
	if kernel == nil {
		return nil, errors.InvalidParam("matching: kernel is required")
	}
	if finder == nil {
		return nil, errors.InvalidParam("matching: cycle finder is required")
	}
	m := &GraphMatcher{
		kernel:          kernel,
		finder:          finder,
		logger:          logging.NewNopLogger(),
		recorder:        NoopRecorder(),
		tracer:          otel.Tracer(tracerName),
		shutdownTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.Named("matching")
	return m, nil
}

func (m *GraphMatcher) processors() int {
	if m.workers > 0 {
		return m.workers
	}
	return runtime.NumCPU()
}

// MatchAll implements Matcher.
func (m *GraphMatcher) MatchAll(ctx context.Context, src reaction.Source, theory mapping.Theory) ([]*mapping.MCSSolution, error) {
	res, err := m.Run(ctx, src, theory)
	if res == nil {
		return nil, err
	}
	return res.Solutions, err
}

// Run implements Matcher.
//
// Failures of individual jobs degrade the result instead of failing the
// run.  The errors returned are an invalid argument, the strict identifier
// check, and ErrPoolShutdownTimeout; with the latter the partial result is
// returned alongside.
func (m *GraphMatcher) Run(ctx context.Context, src reaction.Source, theory mapping.Theory) (*RunResult, error) {
	if src == nil {
		return nil, errors.InvalidParam("matching: reaction source is nil")
	}
	start := time.Now()
	res := &RunResult{
		RunID:     uuid.NewString(),
		Theory:    theory,
		Solutions: []*mapping.MCSSolution{},
	}
	log := m.logger.With(logging.String("run_id", res.RunID), logging.String("theory", theory.String()))

	ctx, span := m.tracer.Start(ctx, "matching.MatchAll", trace.WithAttributes(
		attribute.String("run.id", res.RunID),
		attribute.String("run.theory", theory.String()),
		attribute.Int("reaction.educts", src.EductCount()),
		attribute.Int("reaction.products", src.ProductCount()),
	))
	defer span.End()

	if err := reaction.ValidateIdentifiers(src); err != nil {
		if m.strict {
			span.RecordError(err)
			span.SetStatus(codes.Error, "atom identifiers")
			return nil, err
		}
		log.Warn("atom identifiers are incomplete; affected pairs will be dropped", logging.Err(err))
	}

	candidates := GenerateCandidates(src)
	res.Candidates = candidates.Len()
	if res.Candidates == 0 {
		log.Debug("no candidate pairs")
		m.finish(span, res, start, log)
		return res, nil
	}

	table := BuildJobs(src, candidates, m.indexed)
	res.Jobs = table.Len()
	log.Debug("jobs built", logging.Int("candidates", res.Candidates), logging.Int("jobs", res.Jobs))

	tasks := m.classifyAll(table, theory, src, log)

	raws, poolSize, dispatchErr := m.dispatch(ctx, theory, tasks, log)
	res.PoolSize = poolSize

	res.Solutions, res.Dropped = Replicate(src, table, raws, log)

	if dispatchErr != nil {
		res.TimedOut = true
		span.RecordError(dispatchErr)
		span.SetStatus(codes.Error, "pool shutdown timeout")
		log.Error("worker pool did not terminate; returning partial result", logging.Err(dispatchErr))
	}
	m.finish(span, res, start, log)
	return res, dispatchErr
}

func (m *GraphMatcher) finish(span trace.Span, res *RunResult, start time.Time, log logging.Logger) {
	res.Duration = time.Since(start)
	span.SetAttributes(
		attribute.Int("run.candidates", res.Candidates),
		attribute.Int("run.jobs", res.Jobs),
		attribute.Int("run.solutions", len(res.Solutions)),
		attribute.Int("run.dropped_pairs", res.Dropped),
	)
	m.recorder.RecordRun(RunStats{
		Theory:     res.Theory.String(),
		Candidates: res.Candidates,
		Jobs:       res.Jobs,
		Solutions:  len(res.Solutions),
		PoolSize:   res.PoolSize,
		Dropped:    res.Dropped,
		Duration:   res.Duration,
		TimedOut:   res.TimedOut,
	})
	log.Info("mapping run completed",
		logging.Int("candidates", res.Candidates),
		logging.Int("jobs", res.Jobs),
		logging.Int("solutions", len(res.Solutions)),
		logging.Int("dropped_pairs", res.Dropped),
		logging.Duration("elapsed", res.Duration))
}

// classifyAll classifies every job in key order.  Skipped and failed jobs
// stay in the table and are reported by Replicate.
func (m *GraphMatcher) classifyAll(table *JobTable, theory mapping.Theory, src reaction.Source, log logging.Logger) []Task {
	tasks := make([]Task, 0, table.Len())
	for _, job := range table.Jobs() {
		task, ok, err := m.safeClassify(job, theory, src)
		jobLog := log.With(logging.Stringer("combination", job.Key))
		switch {
		case err != nil:
			m.recorder.RecordJob(theory.String(), OutcomeFailed, 0)
			jobLog.Error("job classification failed", logging.Err(err))
		case !ok:
			m.recorder.RecordJob(theory.String(), OutcomeSkipped, 0)
			jobLog.Debug("theory not supported; job skipped")
		default:
			jobLog.Debug("job classified",
				logging.Int("reactant_cycles", task.ReactantCycles),
				logging.Int("product_cycles", task.ProductCycles),
				logging.Bool("ring_match", task.Request.Flags.RingMatch),
				logging.Bool("perfect_rings", task.Request.PerfectRings),
				logging.Bool("atom_type_match", task.Request.Flags.AtomTypeMatch),
				logging.Int("absorbed", job.Size()))
			tasks = append(tasks, task)
		}
	}
	return tasks
}

func (m *GraphMatcher) safeClassify(job *Job, theory mapping.Theory, src reaction.Source) (task Task, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			task, ok = Task{}, false
			err = errors.New(errors.ErrCodeCycleSearchFailed, fmt.Sprintf("cycle finder panicked: %v", r))
		}
	}()
	return Classify(job, theory, m.finder, src.EductCount(), src.ProductCount())
}
