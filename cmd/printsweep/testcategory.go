package printsweep

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/printsweep/printsweep/internal/detectors"
	"github.com/printsweep/printsweep/internal/report"
	"github.com/printsweep/printsweep/internal/scanner"
	"github.com/printsweep/printsweep/internal/types"
	"github.com/spf13/cobra"
)

func init() {
	var ns string
	var quiet bool
	cmd := &cobra.Command{
		Use:   "test-category <category>[,<category>...]",
		Short: "Strip provided text (stdin) and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := detectors.ParseCategories(args)
			if err != nil {
				return err
			}
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			res := scanner.New(scanner.Options{Namespace: ns}).Scan(string(data), cats)
			if _, err := io.WriteString(cmd.OutOrStdout(), res.Text); err != nil {
				return err
			}
			if !quiet {
				fr := types.FileResult{Path: "stdin", Removed: res.Removed, Lines: res.Lines}
				report.PrintPreview(os.Stderr, types.BatchResult{fr}, report.PrintOptions{NoColor: true})
				fmt.Fprintf(os.Stderr, "removed %d line(s)\n", res.Removed)
			}
			return nil
		},
	}
	// help message includes category IDs
	cmd.Long = "Available categories: " + strings.Join(detectors.IDs(), ", ")
	cmd.Flags().StringVar(&ns, "namespace", "", "receiver the statements are called on (default console)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not list removed lines on stderr")
	rootCmd.AddCommand(cmd)
}
