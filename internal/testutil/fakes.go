package testutil

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/turtacn/ReactionMapper/internal/domain/mapping"
	"github.com/turtacn/ReactionMapper/internal/domain/molecule"
	"github.com/turtacn/ReactionMapper/internal/domain/reaction"
)

// FakeKernel maps atoms with equal positions onto each other, working on
// clones as a real kernel may.  Per-combination failures, panics and delays
// can be scripted.  Every call is recorded on the embedded mock.Mock under
// the method name "Match", so AssertCalled and AssertNumberOfCalls work.
type FakeKernel struct {
	mock.Mock

	mu       sync.Mutex
	failures map[reaction.Combination]error
	panics   map[reaction.Combination]bool

	// Delay is slept (or interrupted by ctx) before every match.
	Delay time.Duration

	// Block makes every call wait for ctx to be cancelled.
	Block bool

	// IgnoreContext makes Block and Delay deaf to ctx; a blocked call then
	// returns only after Release.
	IgnoreContext bool

	release     chan struct{}
	releaseOnce sync.Once

	inFlight, peak int32
}

var _ mapping.Kernel = (*FakeKernel)(nil)

// NewFakeKernel returns a kernel with no scripted behaviour.
func NewFakeKernel() *FakeKernel {
	k := &FakeKernel{
		failures: make(map[reaction.Combination]error),
		panics:   make(map[reaction.Combination]bool),
		release:  make(chan struct{}),
	}
	k.On("Match", mock.Anything, mock.Anything).Return(nil, nil)
	return k
}

// Release unblocks every call held by Block with IgnoreContext.
func (k *FakeKernel) Release() {
	k.releaseOnce.Do(func() { close(k.release) })
}

// FailOn makes the job keyed by c fail with err.
func (k *FakeKernel) FailOn(c reaction.Combination, err error) *FakeKernel {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.failures[c] = err
	return k
}

// PanicOn makes the job keyed by c panic.
func (k *FakeKernel) PanicOn(c reaction.Combination) *FakeKernel {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.panics[c] = true
	return k
}

// Requests returns the requests received, in arrival order.
func (k *FakeKernel) Requests() []mapping.KernelRequest {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]mapping.KernelRequest, 0, len(k.Mock.Calls))
	for _, call := range k.Mock.Calls {
		if call.Method == "Match" {
			out = append(out, call.Arguments.Get(1).(mapping.KernelRequest))
		}
	}
	return out
}

// Calls returns how many requests were received.
func (k *FakeKernel) Calls() int { return len(k.Requests()) }

// PeakConcurrency returns the largest number of simultaneous calls seen.
func (k *FakeKernel) PeakConcurrency() int { return int(atomic.LoadInt32(&k.peak)) }

// Match implements mapping.Kernel.
func (k *FakeKernel) Match(ctx context.Context, req mapping.KernelRequest) (*mapping.RawSolution, error) {
	cur := atomic.AddInt32(&k.inFlight, 1)
	defer atomic.AddInt32(&k.inFlight, -1)
	for {
		p := atomic.LoadInt32(&k.peak)
		if cur <= p || atomic.CompareAndSwapInt32(&k.peak, p, cur) {
			break
		}
	}

	key := reaction.NewCombination(req.ReactantIndex, req.ProductIndex)
	k.mu.Lock()
	k.MethodCalled("Match", ctx, req)
	failure := k.failures[key]
	panics := k.panics[key]
	k.mu.Unlock()

	if err := k.wait(ctx); err != nil {
		return nil, err
	}
	if panics {
		panic("fake kernel panic on " + key.String())
	}
	if failure != nil {
		return nil, failure
	}

	query, target := req.Reactant.Clone(), req.Product.Clone()
	m := mapping.NewAtomMapping(query, target)
	for i := 0; i < query.AtomCount() && i < target.AtomCount(); i++ {
		m.Put(query.Atoms[i], target.Atoms[i])
	}
	return &mapping.RawSolution{
		QueryPosition:  req.ReactantIndex,
		TargetPosition: req.ProductIndex,
		Query:          query,
		Target:         target,
		Mapping:        m,
	}, nil
}

func (k *FakeKernel) wait(ctx context.Context) error {
	done := ctx.Done()
	if k.IgnoreContext {
		done = nil
	}
	if k.Block {
		select {
		case <-done:
			return ctx.Err()
		case <-k.release:
			return nil
		}
	}
	if k.Delay <= 0 {
		return nil
	}
	select {
	case <-time.After(k.Delay):
		return nil
	case <-done:
		return ctx.Err()
	}
}

// FakeCycleFinder returns scripted cycle counts keyed by graph ID; unknown
// graphs have zero cycles.
type FakeCycleFinder struct {
	mu     sync.Mutex
	counts map[string]int
	errs   map[string]error
	calls  int
}

var _ mapping.CycleFinder = (*FakeCycleFinder)(nil)

// NewFakeCycleFinder returns a finder reporting counts.
func NewFakeCycleFinder(counts map[string]int) *FakeCycleFinder {
	if counts == nil {
		counts = make(map[string]int)
	}
	return &FakeCycleFinder{counts: counts, errs: make(map[string]error)}
}

// FailOn makes Find fail for the graph with id.
func (f *FakeCycleFinder) FailOn(id string, err error) *FakeCycleFinder {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[id] = err
	return f
}

// Calls returns how many times Find ran.
func (f *FakeCycleFinder) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Find implements mapping.CycleFinder.
func (f *FakeCycleFinder) Find(g *molecule.Graph) (mapping.CycleResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.errs[g.ID]; err != nil {
		return mapping.CycleResult{}, err
	}
	return mapping.CycleResult{Count: f.counts[g.ID]}, nil
}
