package printsweep

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/printsweep/printsweep/internal/files"
	"github.com/printsweep/printsweep/internal/ignore"
	"github.com/spf13/cobra"
)

func init() {
	var root string
	var generated bool

	ign := &cobra.Command{Use: "ignore", Short: "Manage the " + ignore.FileName + " file"}
	rootCmd.AddCommand(ign)

	add := &cobra.Command{
		Use:   "add [pattern...]",
		Short: "Append patterns to " + ignore.FileName,
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := args
			if generated {
				patterns = append(patterns, files.DefaultGeneratedIgnores()...)
			}
			if len(patterns) == 0 {
				return fmt.Errorf("nothing to add: pass a pattern or --generated")
			}
			for _, p := range patterns {
				if err := files.AppendIgnore(root, p); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated", filepath.Join(root, ignore.FileName))
			return nil
		},
	}
	add.Flags().StringVarP(&root, "path", "p", ".", "directory holding the ignore file")
	add.Flags().BoolVar(&generated, "generated", false, "also add common bundled and generated outputs")
	ign.AddCommand(add)

	list := &cobra.Command{
		Use:   "list",
		Short: "Print the active ignore patterns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := ignore.Load(filepath.Join(root, ignore.FileName))
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			for _, p := range m.Patterns() {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	list.Flags().StringVarP(&root, "path", "p", ".", "directory holding the ignore file")
	ign.AddCommand(list)
}
