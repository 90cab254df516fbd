package cli

import (
	"github.com/turtacn/ReactionMapper/internal/application/matching"
	"github.com/turtacn/ReactionMapper/internal/config"
	"github.com/turtacn/ReactionMapper/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ReactionMapper/internal/intelligence/cycles"
	"github.com/turtacn/ReactionMapper/internal/intelligence/mcs"
)

// NewMatcher builds the engine with the baseline kernel and the configured
// cycle strategy.  recorder may be nil.
func NewMatcher(cfg config.MappingConfig, logger logging.Logger, recorder matching.Recorder) (*matching.GraphMatcher, error) {
	finder, err := cycles.New(cfg.CycleStrategy, cfg.CycleLimit)
	if err != nil {
		return nil, err
	}
	return matching.NewGraphMatcher(mcs.NewKernel(cfg.KernelStepLimit), finder,
		matching.WithLogger(logger),
		matching.WithRecorder(recorder),
		matching.WithProcessors(cfg.Workers),
		matching.WithShutdownTimeout(cfg.ShutdownTimeout),
		matching.WithStrictIdentifiers(cfg.StrictIdentifiers),
		matching.WithIndexedJobs(cfg.IndexedJobs),
	)
}
