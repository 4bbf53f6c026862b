package printsweep

import (
	"fmt"
	"os"

	"github.com/printsweep/printsweep/internal/config"
	"github.com/printsweep/printsweep/internal/logger"
	"github.com/spf13/cobra"
)

var (
	flagLogLevel      string
	flagNoColor       bool
	flagNoUpdateCheck bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the printsweep CLI.
var rootCmd = &cobra.Command{
	Use:           "printsweep",
	Short:         "Strip debug print statements from source files",
	Long:          "printsweep removes console.log-style debug statements from a file, a folder or the files changed in a git worktree, skipping comments.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the printsweep CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: trace|debug|info|warn|error (default warn)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
}

// newLogger builds the stderr logger from the flag or the layered config.
func newLogger(lcfg, gcfg config.FileConfig) *logger.Logger {
	log := logger.New(os.Stderr, pickString(flagLogLevel, lcfg.LogLevel, gcfg.LogLevel))
	if pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor) {
		log.SetColor(false)
	}
	return log
}
