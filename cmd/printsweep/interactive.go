package printsweep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/printsweep/printsweep/internal/engine"
	"github.com/printsweep/printsweep/internal/tui"
	"github.com/printsweep/printsweep/internal/types"
	"github.com/spf13/cobra"
)

func init() {
	var dryRun bool
	cmd := &cobra.Command{
		Use:     "interactive [path]",
		Aliases: []string{"i", "tui"},
		Short:   "Pick categories interactively, then strip with a progress view",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSweep(cmd, args)
			if err != nil {
				return err
			}
			targets, err := engine.ResolveTargets(cmd.Context(), s.scope, s.target, s.cfg)
			if errors.Is(err, engine.ErrNoTargets) {
				fmt.Fprintln(cmd.OutOrStdout(), noTargetsMsg)
				return nil
			}
			if err != nil {
				return err
			}

			process := s.auditedProcess(targets, dryRun)
			// only an explicit -c preselects; otherwise the saved picks apply
			var defaults []types.Category
			if cmd.Flags().Changed("category") {
				defaults = s.cats
			}
			_, results, err := tui.Run(targets.Root, defaults, dryRun, process)
			if err != nil {
				return err
			}
			if results == nil {
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), headlineFor(results, dryRun))
			return nil
		},
	}
	addSweepFlags(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be removed without writing files")
	rootCmd.AddCommand(cmd)
}

// auditedProcess runs the sweep for the TUI. Each run, including reruns
// started from the results screen, gets its own audit record.
func (s sweep) auditedProcess(targets engine.Targets, dryRun bool) tui.ProcessFunc {
	return func(ctx context.Context, cats []types.Category, progress engine.ProgressFunc) types.BatchResult {
		start := time.Now()
		results := s.run(ctx, targets.Paths, targets.Root, cats, dryRun, progress)
		s.recordAudit(targets.Root, cats, results, time.Since(start), dryRun)
		return results
	}
}
