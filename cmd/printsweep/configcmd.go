package printsweep

import (
	"fmt"
	"strings"

	"github.com/printsweep/printsweep/internal/config"
	"github.com/printsweep/printsweep/internal/detectors"
	"github.com/spf13/cobra"
)

var (
	cfgPreset          string
	cfgOutput          string
	cfgCategories      []string
	cfgInclude         string
	cfgExclude         string
	cfgMaxBytes        int64
	cfgNamespace       string
	cfgNoColor         bool
	cfgDefaultExcludes bool
	cfgAudit           bool
	cfgGlobal          bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .printsweep.yml with selected categories and options",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgPreset, "preset", "standard", "category preset: minimal | standard | maximal")
	initCmd.Flags().StringVar(&cfgOutput, "output", ".printsweep.yml", "output file path")
	initCmd.Flags().StringSliceVarP(&cfgCategories, "category", "c", nil, "categories to select (overrides preset if set)")
	initCmd.Flags().StringVar(&cfgInclude, "include", "", "comma-separated include globs")
	initCmd.Flags().StringVar(&cfgExclude, "exclude", "", "comma-separated exclude globs")
	initCmd.Flags().Int64Var(&cfgMaxBytes, "max-bytes", 0, "skip files larger than this (0 = no limit)")
	initCmd.Flags().StringVar(&cfgNamespace, "namespace", "", "receiver the statements are called on")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgDefaultExcludes, "default-excludes", false, "enable the extended exclude list")
	initCmd.Flags().BoolVar(&cfgAudit, "audit", true, "record runs in the audit log")
	initCmd.Flags().BoolVar(&cfgGlobal, "global", false, "write the user-wide config instead of --output")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	cats := cfgCategories
	if len(cats) == 0 {
		switch strings.ToLower(cfgPreset) {
		case "minimal":
			cats = []string{"log"}
		case "maximal":
			cats = []string{"all"}
		default: // standard
			for _, c := range detectors.DefaultCategories() {
				cats = append(cats, string(c))
			}
		}
	}
	parsed, err := detectors.ParseCategories(cats)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(parsed))
	for _, c := range parsed {
		names = append(names, string(c))
	}

	fc := config.FileConfig{
		Categories:      names,
		Include:         optStrPtr(cfgInclude),
		Exclude:         optStrPtr(cfgExclude),
		MaxBytes:        int64Ptr(cfgMaxBytes),
		Namespace:       optStrPtr(cfgNamespace),
		NoColor:         boolPtr(cfgNoColor),
		DefaultExcludes: boolPtr(cfgDefaultExcludes),
		Audit:           boolPtr(cfgAudit),
	}

	path := cfgOutput
	if cfgGlobal {
		path = config.GlobalPath()
	}
	if err := config.Write(path, fc); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
	return nil
}

func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
func int64Ptr(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}
func boolPtr(v bool) *bool { return &v }
