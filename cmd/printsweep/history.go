package printsweep

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/printsweep/printsweep/internal/audit"
	"github.com/spf13/cobra"
)

func init() {
	var (
		root    string
		limit   int
		jsonOut bool
		deleteN int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the audit log of previous runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			abs, err := filepath.Abs(root)
			if err != nil {
				return err
			}
			log := audit.NewAuditLog(abs)
			out := cmd.OutOrStdout()
			if cmd.Flags().Changed("delete") {
				if err := log.DeleteRecord(deleteN - 1); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted record %d from %s\n", deleteN, log.Path())
				return nil
			}
			records, err := log.LoadHistory()
			if errors.Is(err, os.ErrNotExist) {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}
			if err != nil {
				return err
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			return printHistory(out, records)
		},
	}
	cmd.Flags().StringVarP(&root, "path", "p", ".", "project root")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most N runs (0 = all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit JSON")
	cmd.Flags().IntVar(&deleteN, "delete", 0, "delete the Nth most recent run (1-based)")
	rootCmd.AddCommand(cmd)
}

func printHistory(w io.Writer, records []audit.RunRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header("#", "WHEN", "CATEGORIES", "FILES", "CHANGED", "REMOVED", "ERRORS", "DURATION")
	for i, r := range records {
		row := []string{
			strconv.Itoa(i + 1),
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			strings.Join(r.Categories, ","),
			strconv.Itoa(r.FilesProcessed),
			strconv.Itoa(r.FilesChanged),
			strconv.Itoa(r.TotalRemoved),
			strconv.Itoa(r.TotalErrors),
			r.Duration,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
