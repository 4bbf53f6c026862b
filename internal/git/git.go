package git

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// open finds the repository containing path, walking up to the .git dir.
func open(path string) (*gogit.Repository, error) {
	if strings.ContainsRune(path, 0) {
		return nil, fmt.Errorf("invalid path: contains null byte")
	}
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	return gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{DetectDotGit: true})
}

// ChangedFiles returns the worktree root containing path and the
// slash-separated paths, relative to that root, of files that are modified,
// added, renamed or untracked. Deleted files are left out.
func ChangedFiles(path string) (string, []string, error) {
	repo, err := open(path)
	if err != nil {
		return "", nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", nil, err
	}
	st, err := wt.Status()
	if err != nil {
		return "", nil, err
	}
	var out []string
	for p, fs := range st {
		if fs.Worktree == gogit.Deleted || (fs.Staging == gogit.Deleted && fs.Worktree != gogit.Untracked) {
			continue
		}
		if fs.Worktree == gogit.Unmodified && fs.Staging == gogit.Unmodified {
			continue
		}
		out = append(out, filepath.ToSlash(p))
	}
	sort.Strings(out)
	return wt.Filesystem.Root(), out, nil
}

// RepoMetadata returns (repo, commit, branch) best-effort for the given root.
// Empty strings are returned on failure.
func RepoMetadata(root string) (string, string, string) {
	repo, err := open(root)
	if err != nil {
		return "", "", ""
	}
	name := ""
	if rem, err := repo.Remote("origin"); err == nil && len(rem.Config().URLs) > 0 {
		name = shortRepo(rem.Config().URLs[0])
	}
	commit, branch := "", ""
	head, err := repo.Head()
	if err == nil {
		commit = head.Hash().String()
		if head.Name().IsBranch() {
			branch = head.Name().Short()
		}
	}
	return name, commit, branch
}

// shortRepo keeps owner/name from a remote URL when possible.
func shortRepo(url string) string {
	s := strings.TrimSuffix(strings.TrimSpace(url), ".git")
	if i := strings.LastIndex(s, ":"); i >= 0 && !strings.Contains(s[:i], "//") {
		s = s[i+1:]
	}
	parts := strings.Split(s, "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2] + "/" + parts[len(parts)-1]
	}
	return s
}

// IsRepo reports whether path is inside a git worktree.
func IsRepo(path string) bool {
	_, err := open(path)
	return err == nil
}
