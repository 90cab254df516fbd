package matching

import (
	"context"
	stdliberrors "errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/ReactionMapper/internal/domain/mapping"
	"github.com/turtacn/ReactionMapper/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ReactionMapper/pkg/errors"
)

// ---------------------------------------------------------------------------
// Sentinel Errors
// ---------------------------------------------------------------------------

// ErrPoolShutdownTimeout is returned (wrapped) when in-flight jobs do not
// finish within the shutdown timeout.  Results collected up to that point
// are still returned.
var ErrPoolShutdownTimeout = stdliberrors.New("worker pool did not terminate in time")

// PoolSize returns the number of workers for jobs pending jobs on a machine
// with processors processors: one below the processor count, at least one,
// and never more than there are jobs.
func PoolSize(processors, jobs int) int {
	size := processors - 1
	if size < 1 {
		size = 1
	}
	if size > jobs {
		size = jobs
	}
	if size < 1 {
		size = 1
	}
	return size
}

type outcome struct {
	task    Task
	raw     *mapping.RawSolution
	err     error
	status  string
	elapsed time.Duration
}

// dispatch runs every task on a bounded pool and returns the raw solutions
// in completion order together with the pool size used.
func (m *GraphMatcher) dispatch(ctx context.Context, theory mapping.Theory, tasks []Task, log logging.Logger) ([]*mapping.RawSolution, int, error) {
	n := len(tasks)
	if n == 0 {
		return nil, 0, nil
	}
	size := PoolSize(m.processors(), n)
	log.Debug("dispatching jobs", logging.Int("jobs", n), logging.Int("pool_size", size))

	// The barrier is armed before the first submission: a kernel that never
	// returns holds up the run for at most shutdownTimeout, cancelled or not.
	var deadline <-chan time.Time
	if m.shutdownTimeout > 0 {
		timer := time.NewTimer(m.shutdownTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	// Buffered to n so that neither workers nor the submitter ever block on
	// delivery, even after collection has given up.
	results := make(chan outcome, n)
	var g errgroup.Group
	g.SetLimit(size)

	submitted := make(chan struct{})
	go func() {
		defer close(submitted)
		for _, t := range tasks {
			if err := ctx.Err(); err != nil {
				results <- outcome{task: t, err: err, status: OutcomeCancelled}
				continue
			}
			t := t
			g.Go(func() error {
				results <- m.runTask(ctx, t)
				return nil
			})
		}
	}()

	raws := make([]*mapping.RawSolution, 0, n)
	received := 0
	accept := func(o outcome) {
		received++
		m.recorder.RecordJob(theory.String(), o.status, o.elapsed)
		jobLog := log.With(logging.Stringer("combination", o.task.Job.Key))
		switch o.status {
		case OutcomeSuccess:
			jobLog.Debug("job completed",
				logging.Int("pairs", o.raw.Mapping.Count()),
				logging.Duration("elapsed", o.elapsed))
			raws = append(raws, o.raw)
		case OutcomeCancelled:
			jobLog.Warn("job interrupted", logging.Err(o.err))
		default:
			jobLog.Error("job failed", logging.Err(o.err), logging.Duration("elapsed", o.elapsed))
		}
	}

	timedOut := func() error {
		return errors.Wrap(ErrPoolShutdownTimeout, errors.ErrCodePoolShutdownTimeout,
			fmt.Sprintf("%d of %d jobs still running after %s", n-received, n, m.shutdownTimeout))
	}

	// Cancellation needs no case of its own: cooperative kernels answer with
	// a cancelled outcome and the submitter reports the tasks it never started.
	for received < n {
		select {
		case o := <-results:
			accept(o)
		case <-deadline:
			return raws, size, timedOut()
		}
	}

	done := make(chan struct{})
	go func() {
		<-submitted
		_ = g.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-deadline:
		return raws, size, timedOut()
	}
	return raws, size, nil
}

// runTask calls the kernel for one task.  Errors and panics become a failed
// outcome; they never reach sibling tasks.
func (m *GraphMatcher) runTask(ctx context.Context, t Task) (o outcome) {
	start := time.Now()
	o.task = t

	ctx, span := m.tracer.Start(ctx, "matching.job", trace.WithAttributes(
		attribute.String("job.combination", t.Job.Key.String()),
		attribute.Int("job.absorbed", t.Job.Size()),
		attribute.Int("job.reactant_cycles", t.ReactantCycles),
		attribute.Int("job.product_cycles", t.ProductCycles),
		attribute.Bool("job.ring_match", t.Request.Flags.RingMatch),
		attribute.Bool("job.atom_type_match", t.Request.Flags.AtomTypeMatch),
	))
	defer func() {
		if r := recover(); r != nil {
			o.raw = nil
			o.status = OutcomeFailed
			o.err = errors.Newf(errors.ErrCodeKernelFailed, "kernel panicked: %v", r).
				WithDetail("job=" + t.Job.Key.String())
		}
		o.elapsed = time.Since(start)
		if o.err != nil {
			span.RecordError(o.err)
			span.SetStatus(codes.Error, o.status)
		} else {
			span.SetAttributes(attribute.Int("job.pairs", o.raw.Mapping.Count()))
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	raw, err := m.kernel.Match(ctx, t.Request)
	switch {
	case err != nil && ctx.Err() != nil:
		o.status, o.err = OutcomeCancelled, err
	case err != nil:
		o.status = OutcomeFailed
		o.err = errors.Wrap(err, errors.ErrCodeKernelFailed, "kernel failed").WithDetail("job=" + t.Job.Key.String())
	case raw == nil || raw.Mapping == nil:
		o.status = OutcomeFailed
		o.err = errors.New(errors.ErrCodeKernelFailed, "kernel returned no solution").WithDetail("job=" + t.Job.Key.String())
	case raw.Combination() != t.Job.Key:
		o.status = OutcomeFailed
		o.err = errors.Newf(errors.ErrCodeKernelFailed, "kernel answered %s instead of %s", raw.Combination(), t.Job.Key)
	default:
		o.status, o.raw = OutcomeSuccess, raw
	}
	return o
}
