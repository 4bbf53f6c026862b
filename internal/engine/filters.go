package engine

import (
	"path/filepath"
	"sort"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// skipDirs are never descended into, whatever the configuration says.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	".vscode":      true,
	"dist":         true,
	"build":        true,
	"out":          true,
}

// extra directories skipped when default excludes are enabled
var defaultExcludeDirs = map[string]bool{
	"vendor":      true,
	"target":      true,
	".venv":       true,
	"venv":        true,
	"__pycache__": true,
	"coverage":    true,
	"bin":         true,
	"obj":         true,
	".next":       true,
	".nuxt":       true,
}

// sourceExtensions is the allow-list of files that may contain print
// statements worth stripping.
var sourceExtensions = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".vue": true, ".svelte": true, ".html": true, ".php": true,
	".py": true, ".java": true, ".cs": true, ".cpp": true, ".c": true,
	".go": true, ".rs": true, ".swift": true, ".kt": true, ".scala": true,
	".rb": true, ".pl": true, ".sh": true, ".ps1": true, ".bat": true, ".cmd": true,
}

// bundled or generated outputs, only with default excludes
var defaultExcludeFileSuffixes = []string{
	".min.js", ".bundle.js", ".chunk.js",
	".pb.go", ".gen.go", ".d.ts",
}

// SourceExtensions returns the built-in extension allow-list, sorted.
func SourceExtensions() []string {
	out := make([]string, 0, len(sourceExtensions))
	for ext := range sourceExtensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

func isSkippedDir(name string, defaults bool) bool {
	if skipDirs[name] {
		return true
	}
	return defaults && defaultExcludeDirs[name]
}

func hasAllowedExt(name string, extra map[string]bool) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	return sourceExtensions[ext] || extra[ext]
}

func extraExtensions(exts []string) map[string]bool {
	if len(exts) == 0 {
		return nil
	}
	out := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out[e] = true
	}
	return out
}

func isDefaultFileExcluded(lowerRel string) bool {
	for _, s := range defaultExcludeFileSuffixes {
		if strings.HasSuffix(lowerRel, s) {
			return true
		}
	}
	return false
}

// allowedByGlobs returns true if the given path is allowed by the include/exclude
// glob configuration. Include globs are comma-separated and, if provided, act as
// a positive filter. Exclude globs are subtracted last.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
