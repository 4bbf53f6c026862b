package printsweep

import (
	"os"
	"path/filepath"
	"runtime/debug"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/printsweep/printsweep/internal/config"
	"github.com/printsweep/printsweep/internal/detectors"
	"github.com/printsweep/printsweep/internal/types"
	"github.com/printsweep/printsweep/internal/update"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

func selfUpdate() (string, error) {
	v := version
	// Use build info if tag overridden at build-time
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(v) == 0 {
				v = s.Value
			}
		}
	}
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), update.Repo)
	if err != nil {
		return "", err
	}
	return latest.Version.String(), nil
}

// loadConfigs returns the local config for root and the global config. Read
// failures leave the layer empty.
func loadConfigs(root string) (local, global config.FileConfig) {
	if c, err := config.LoadGlobal(); err == nil {
		global = c
	}
	dir := root
	if st, err := os.Stat(root); err == nil && st.Mode().IsRegular() {
		dir = filepath.Dir(root)
	}
	if c, err := config.LoadLocal(dir); err == nil {
		local = c
	}
	return local, global
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt64(cli int64, local, global *int64) int64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

func pickStrings(cli, local, global []string) []string {
	switch {
	case len(cli) > 0:
		return cli
	case len(local) > 0:
		return local
	default:
		return global
	}
}

// pickCategories resolves the category selection: CLI > local > global >
// built-in defaults.
func pickCategories(cli []string, lcfg, gcfg config.FileConfig) ([]types.Category, error) {
	names := pickStrings(cli, lcfg.Categories, gcfg.Categories)
	if len(names) == 0 {
		return detectors.DefaultCategories(), nil
	}
	return detectors.ParseCategories(names)
}
