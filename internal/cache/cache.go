package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/gofrs/flock"
	"github.com/printsweep/printsweep/internal/files"
	"github.com/printsweep/printsweep/internal/types"
)

type DB struct {
	// Key (category set + path) -> xxhash of the content after the last run
	Entries map[string]string `json:"entries"`
}

func New() DB { return DB{Entries: map[string]string{}} }

// Path returns where the cache for root lives. It prefers .git to avoid
// accidental commits.
func Path(root string) string {
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "printsweepcache.json")
	}
	return filepath.Join(root, ".printsweepcache.json")
}

func Load(root string) (DB, error) {
	var db DB
	f, err := os.ReadFile(Path(root))
	if err != nil {
		return New(), err
	}
	if err := json.Unmarshal(f, &db); err != nil {
		return New(), err
	}
	if db.Entries == nil {
		db.Entries = map[string]string{}
	}
	return db, nil
}

// Save merges db into the file on disk under an advisory lock so that
// concurrent runs in the same tree do not drop each other's entries.
func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	p := Path(root)
	lock := flock.New(p + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock cache: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(p + ".lock")
	}()

	merged := New()
	if onDisk, err := Load(root); err == nil {
		for k, v := range onDisk.Entries {
			merged.Entries[k] = v
		}
	}
	for k, v := range db.Entries {
		merged.Entries[k] = v
	}
	b, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}
	// atomic replace
	return files.OS{}.WriteFile(p, b)
}

// Hash returns the hex xxhash of data.
func Hash(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

// Key identifies path under a given category selection and namespace. A
// file clean for "log" is not necessarily clean for "all".
func Key(path string, cats []types.Category, namespace string) string {
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, string(c))
	}
	sort.Strings(names)
	return namespace + ":" + strings.Join(names, ",") + ":" + filepath.ToSlash(path)
}

// Fresh reports whether data matches the hash recorded for key.
func (db DB) Fresh(key string, data []byte) bool {
	if db.Entries == nil {
		return false
	}
	h, ok := db.Entries[key]
	return ok && h == Hash(data)
}

// Record stores the hash of data under key.
func (db DB) Record(key string, data []byte) {
	if db.Entries == nil {
		return
	}
	db.Entries[key] = Hash(data)
}
