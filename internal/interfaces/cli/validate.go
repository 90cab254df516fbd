package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/ReactionMapper/internal/application/matching"
	"github.com/turtacn/ReactionMapper/internal/domain/reaction"
	"github.com/turtacn/ReactionMapper/pkg/errors"
)

// NewValidateCommand creates `rxnmap validate <reaction-file>...`.  It
// reports candidate and job counts and atom identifier problems without
// running any search, and fails when a file has problems.
func NewValidateCommand() *cobra.Command {
	var assignIDs bool
	cmd := &cobra.Command{
		Use:   "validate <reaction-file>...",
		Short: "Check reaction documents without mapping them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			invalid := 0
			for _, path := range args {
				rxn, err := reaction.LoadFile(path, reaction.DecodeOptions{AssignMissingIDs: assignIDs})
				if err != nil {
					return err
				}
				v := matching.Inspect(rxn, rxn.ID, cliCtx.Config.Mapping.IndexedJobs)
				if !v.Valid {
					invalid++
				}
				if err := PrintResult(cmd, v); err != nil {
					return err
				}
			}
			if invalid > 0 {
				return errors.Newf(errors.ErrCodeReactionIdentifiers, "%d of %d reaction(s) have identifier problems", invalid, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&assignIDs, "assign-ids", false, "give atoms without an identifier a generated one before checking")
	return cmd
}
