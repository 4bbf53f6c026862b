package printsweep

import (
	"fmt"

	"github.com/printsweep/printsweep/internal/update"
	"github.com/spf13/cobra"
)

func init() {
	var checkOnly bool
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update printsweep to the latest release",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if checkOnly {
				latest, newer, err := update.Check(version, false)
				if err != nil {
					return err
				}
				if newer {
					fmt.Fprintf(out, "v%s is available (current v%s)\n", latest, version)
				} else {
					fmt.Fprintf(out, "printsweep v%s is up to date\n", version)
				}
				return nil
			}
			latest, err := selfUpdate()
			if err != nil {
				return fmt.Errorf("self-update: %w", err)
			}
			fmt.Fprintf(out, "updated to v%s\n", latest)
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether a newer release exists")
	rootCmd.AddCommand(cmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the printsweep version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "printsweep", version)
		},
	})
}
