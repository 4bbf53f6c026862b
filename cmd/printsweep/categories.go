package printsweep

import (
	"fmt"
	"strings"

	"github.com/printsweep/printsweep/internal/detectors"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List statement categories and the methods each removes",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			defaults := map[string]bool{}
			for _, c := range detectors.DefaultCategories() {
				defaults[string(c)] = true
			}
			for _, sig := range detectors.Signatures() {
				mark := " "
				if defaults[string(sig.Category)] {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %-6s %s\n", mark, sig.Category, strings.Join(sig.Methods, ", "))
			}
			fmt.Fprintln(out, "\n* selected by default")
		},
	}
	rootCmd.AddCommand(cmd)
}
