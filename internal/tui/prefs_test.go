package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/printsweep/printsweep/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPrefs(t *testing.T) {
	assert.Equal(t, []string{"log", "error", "warn"}, DefaultPrefs().Categories)
}

func TestPrefs_SaveLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, DefaultPrefs(), LoadPrefs(), "defaults before anything is saved")

	require.NoError(t, SavePrefs(Prefs{Categories: []string{"debug", "bogus"}}))
	st, err := os.Stat(filepath.Join(home, ".printsweep", "tui_prefs.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), st.Mode().Perm())

	p := LoadPrefs()
	assert.Equal(t, []string{"debug", "bogus"}, p.Categories)
	assert.Equal(t, []types.Category{types.CatDebug}, p.CategoryList())
}

func TestPrefs_CorruptFileFallsBack(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".printsweep"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".printsweep", "tui_prefs.json"), []byte("{"), 0600))
	assert.Equal(t, DefaultPrefs(), LoadPrefs())
}
