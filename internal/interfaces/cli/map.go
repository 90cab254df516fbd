package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/ReactionMapper/internal/application/matching"
	"github.com/turtacn/ReactionMapper/internal/domain/mapping"
	"github.com/turtacn/ReactionMapper/internal/domain/reaction"
	"github.com/turtacn/ReactionMapper/internal/infrastructure/monitoring/logging"
)

type mapOptions struct {
	theory        string
	workers       int
	cycleStrategy string
	assignIDs     bool
	indexed       bool
	strict        bool
	timeout       time.Duration
}

// NewMapCommand creates `rxnmap map <reaction-file>`.
func NewMapCommand() *cobra.Command {
	opts := &mapOptions{}
	cmd := &cobra.Command{
		Use:   "map <reaction-file>",
		Short: "Map the atoms of a reaction document",
		Long: "Reads a YAML or JSON reaction document and prints one solution per\n" +
			"candidate reactant/product pair.  Flags override the mapping section of\n" +
			"the configuration.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.theory, "theory", "t", "", "matching theory: MIN, MAX, MIXTURE or RINGS (default: mapping.theory)")
	f.IntVarP(&opts.workers, "workers", "w", 0, "processor count used to size the worker pool (default: mapping.workers)")
	f.StringVar(&opts.cycleStrategy, "cycle-strategy", "", "cycle finder: all, sssr, all_or_sssr or all_or_all")
	f.BoolVar(&opts.assignIDs, "assign-ids", false, "give atoms without an identifier a generated one")
	f.BoolVar(&opts.indexed, "indexed", false, "deduplicate jobs through a hashed index")
	f.BoolVar(&opts.strict, "strict", false, "fail when atom identifiers are missing or repeated")
	f.DurationVar(&opts.timeout, "timeout", 0, "abort collection after this long (0 means no limit)")
	return cmd
}

func runMap(cmd *cobra.Command, path string, opts *mapOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}

	mcfg := cliCtx.Config.Mapping
	if opts.workers > 0 {
		mcfg.Workers = opts.workers
	}
	if opts.cycleStrategy != "" {
		mcfg.CycleStrategy = opts.cycleStrategy
	}
	mcfg.IndexedJobs = mcfg.IndexedJobs || opts.indexed
	mcfg.StrictIdentifiers = mcfg.StrictIdentifiers || opts.strict

	name := opts.theory
	if name == "" {
		name = mcfg.Theory
	}
	theory, err := mapping.ParseTheory(name)
	if err != nil {
		return err
	}

	rxn, err := reaction.LoadFile(path, reaction.DecodeOptions{AssignMissingIDs: opts.assignIDs})
	if err != nil {
		return err
	}

	m, err := NewMatcher(mcfg, cliCtx.Logger, nil)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	res, runErr := m.Run(ctx, rxn, theory)
	if res == nil {
		return runErr
	}
	cliCtx.Logger.Info("reaction mapped",
		logging.String("reaction_id", rxn.ID),
		logging.String("run_id", res.RunID),
		logging.Int("solutions", len(res.Solutions)),
		logging.Duration("elapsed", res.Duration))

	if err := PrintResult(cmd, matching.NewReport(rxn.ID, res)); err != nil {
		return err
	}
	return runErr
}
