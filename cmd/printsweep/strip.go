package printsweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/printsweep/printsweep/internal/audit"
	"github.com/printsweep/printsweep/internal/cache"
	"github.com/printsweep/printsweep/internal/config"
	"github.com/printsweep/printsweep/internal/engine"
	"github.com/printsweep/printsweep/internal/logger"
	"github.com/printsweep/printsweep/internal/report"
	"github.com/printsweep/printsweep/internal/types"
	"github.com/printsweep/printsweep/internal/update"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagCategories      []string
	flagScope           string
	flagDryRun          bool
	flagJSON            bool
	flagYAML            bool
	flagTable           bool
	flagSARIF           bool
	flagPreview         bool
	flagInclude         string
	flagExclude         string
	flagExt             []string
	flagMaxBytes        int64
	flagNamespace       string
	flagNoCache         bool
	flagNoAudit         bool
	flagDefaultExcludes bool

	// replaced in tests so check can be exercised in-process
	exitFunc = os.Exit
)

const noTargetsMsg = "No files found to process."

func init() {
	strip := &cobra.Command{
		Use:   "strip [path]",
		Short: "Remove debug print statements from a file or folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, args, false)
		},
	}
	check := &cobra.Command{
		Use:   "check [path]",
		Short: "Report removable print statements without writing; exit 1 if any",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, args, true)
		},
	}
	addSweepFlags(strip)
	addSweepFlags(check)
	strip.Flags().BoolVar(&flagDryRun, "dry-run", false, "report what would be removed without writing files")
	strip.Flags().BoolVar(&flagNoAudit, "no-audit", false, "do not append this run to the audit log")
	rootCmd.AddCommand(strip, check)
}

func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&flagCategories, "category", "c", nil, "categories to remove: log,error,warn,info,debug,all (default from config, else log,error,warn)")
	cmd.Flags().StringVar(&flagScope, "scope", "", "file | folder | changed (default: inferred from path)")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "emit JSON")
	cmd.Flags().BoolVar(&flagYAML, "yaml", false, "emit YAML")
	cmd.Flags().BoolVar(&flagTable, "table", false, "output a table of changed files")
	cmd.Flags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	cmd.Flags().BoolVar(&flagPreview, "preview", false, "show the removed lines with syntax highlighting")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().StringSliceVar(&flagExt, "ext", nil, "extra file extensions to process (e.g. mjs,cjs)")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (0 = no limit)")
	cmd.Flags().StringVar(&flagNamespace, "namespace", "", "receiver the statements are called on (default console)")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "disable the unchanged-file cache")
	cmd.Flags().BoolVar(&flagDefaultExcludes, "default-excludes", false, "also skip vendor, coverage, bin and generated bundles")
}

// sweep is a fully resolved run request shared by strip, check and
// interactive.
type sweep struct {
	target  string
	scope   engine.Scope
	cats    []types.Category
	cfg     engine.Config
	ns      string
	noCache bool
	audit   bool
	noColor bool
	log     *logger.Logger
}

func resolveSweep(cmd *cobra.Command, args []string) (sweep, error) {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return sweep{}, err
	}
	lcfg, gcfg := loadConfigs(abs)
	log := newLogger(lcfg, gcfg)

	cats, err := pickCategories(flagCategories, lcfg, gcfg)
	if err != nil {
		return sweep{}, err
	}
	scope := engine.InferScope(abs)
	if flagScope != "" {
		if scope, err = engine.ParseScope(flagScope); err != nil {
			return sweep{}, err
		}
	}

	defaults := flagDefaultExcludes
	if f := cmd.Flags().Lookup("default-excludes"); f == nil || !f.Changed {
		defaults = pickBool(false, lcfg.DefaultExcludes, gcfg.DefaultExcludes)
	}
	s := sweep{
		target: abs,
		scope:  scope,
		cats:   cats,
		cfg: engine.Config{
			IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
			ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
			Extensions:      pickStrings(flagExt, lcfg.Extensions, gcfg.Extensions),
			MaxBytes:        pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
			DefaultExcludes: defaults,
			Logger:          log,
		},
		ns:      pickString(flagNamespace, lcfg.Namespace, gcfg.Namespace),
		noCache: pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
		audit:   auditEnabled(lcfg, gcfg),
		noColor: pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor),
		log:     log,
	}
	return s, nil
}

func auditEnabled(lcfg, gcfg config.FileConfig) bool {
	if flagNoAudit {
		return false
	}
	if lcfg.Audit != nil {
		return *lcfg.Audit
	}
	if gcfg.Audit != nil {
		return *gcfg.Audit
	}
	return true
}

// run processes paths and persists the cache under root.
func (s sweep) run(ctx context.Context, paths []string, root string, cats []types.Category, dryRun bool, progress engine.ProgressFunc) types.BatchResult {
	if len(paths) == 0 {
		return types.BatchResult{}
	}
	opts := engine.Options{
		Progress:  progress,
		DryRun:    dryRun,
		Namespace: s.ns,
		Logger:    s.log,
		CacheRoot: root,
	}
	var db cache.DB
	if !s.noCache {
		var err error
		if db, err = cache.Load(root); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.log.Debugf("cache unreadable, starting fresh: %v", err)
		}
		opts.Cache = &db
	}
	results := engine.ProcessAll(ctx, paths, cats, opts)
	if opts.Cache != nil {
		if err := cache.Save(root, db); err != nil {
			s.log.Warnf("save cache: %v", err)
		}
	}
	return results
}

func (s sweep) recordAudit(root string, cats []types.Category, results types.BatchResult, dur time.Duration, dryRun bool) {
	if !s.audit || dryRun || len(results) == 0 {
		return
	}
	rec := audit.CreateRunRecord(root, cats, results, dur, dryRun)
	if err := audit.NewAuditLog(root).LogRun(rec); err != nil {
		s.log.Warnf("audit log: %v", err)
	}
}

func runSweep(cmd *cobra.Command, args []string, checkOnly bool) error {
	s, err := resolveSweep(cmd, args)
	if err != nil {
		return err
	}
	dryRun := checkOnly || flagDryRun
	machine := flagJSON || flagYAML || flagSARIF
	out := cmd.OutOrStdout()

	if !machine && !flagNoUpdateCheck {
		if latest, newer, _ := update.Check(version, false); newer && latest != "" {
			_, _ = fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'printsweep update' to upgrade\n", latest)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	targets, err := engine.ResolveTargets(ctx, s.scope, s.target, s.cfg)
	switch {
	case errors.Is(err, engine.ErrNoTargets):
		if !machine {
			_, _ = fmt.Fprintln(out, noTargetsMsg)
			return nil
		}
	case err != nil:
		return err
	}

	var progress engine.ProgressFunc
	showProgress := !machine && term.IsTerminal(int(os.Stderr.Fd()))
	if showProgress {
		progress = func(i, n int, name string) {
			_, _ = fmt.Fprintf(os.Stderr, "\r\x1b[KProcessing %s (%d/%d)", name, i, n)
		}
	}
	start := time.Now()
	results := s.run(ctx, targets.Paths, targets.Root, s.cats, dryRun, progress)
	dur := time.Since(start)
	if showProgress && len(results) > 0 {
		_, _ = fmt.Fprintln(os.Stderr)
	}
	s.log.Infof("processed %d file(s) in %s", len(results), dur.Round(time.Millisecond))

	if !checkOnly {
		s.recordAudit(targets.Root, s.cats, results, dur, dryRun)
	}

	if err := render(out, targets.Root, s.cats, results, report.PrintOptions{NoColor: s.noColor, DryRun: dryRun, Duration: dur}); err != nil {
		return err
	}

	if checkOnly && report.ShouldFail(results) {
		exitFunc(1)
	}
	return nil
}

func render(w io.Writer, root string, cats []types.Category, results types.BatchResult, opts report.PrintOptions) error {
	if results == nil {
		results = types.BatchResult{}
	} // no `null` in JSON
	switch {
	case flagSARIF:
		if err := report.WriteSARIF(w, version, root, results); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
		return nil
	case flagJSON:
		return report.WriteJSON(w, report.NewEnvelope(version, root, cats, opts.DryRun, results))
	case flagYAML:
		return report.WriteYAML(w, report.NewEnvelope(version, root, cats, opts.DryRun, results))
	}

	if flagTable {
		if err := report.PrintTable(w, results, opts); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(w, headlineFor(results, opts.DryRun))
		_, _ = fmt.Fprintln(w)
		report.PrintText(w, results, opts)
	}
	if flagPreview {
		report.PrintPreview(w, results, opts)
	}
	return nil
}

func headlineFor(results types.BatchResult, dryRun bool) string {
	if dryRun {
		return "(dry run) " + report.Headline(results)
	}
	return report.Headline(results)
}
