package update

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_NoNetworkOrCI(t *testing.T) {
	t.Setenv("CI", "1")
	latest, newer, err := Check("1.0.0", false)
	require.NoError(t, err)
	assert.Empty(t, latest)
	assert.False(t, newer)

	t.Setenv("CI", "")
	latest, newer, err = Check("1.0.0", true)
	require.NoError(t, err)
	assert.Empty(t, latest)
	assert.False(t, newer)
}

func TestNormalizeAndCompare(t *testing.T) {
	assert.Equal(t, "1.2.3", normalize(" v1.2.3 "))
	assert.Equal(t, 0, compare("1.2.3", "1.2.3"))
	assert.Equal(t, 1, compare("1.3.0", "1.2.9"))
	assert.Equal(t, -1, compare("1.2.0", "1.2.1"))
	assert.Equal(t, 1, compare("1.10.0", "1.9.0"))
	assert.Equal(t, 1, compare("1.0.0", "dev"))
	assert.Equal(t, -1, compare("dev", "0.0.1"))
	assert.Equal(t, 1, compare("2", "1.9"))
}

func TestCheck_UsesCacheWhenFresh(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CI", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "printsweep", cacheFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	b, _ := json.Marshal(cache{LastChecked: time.Now(), Latest: "1.2.3"})
	require.NoError(t, os.WriteFile(path, b, 0644))

	latest, newer, err := Check("1.2.2", false)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", latest)
	assert.True(t, newer)
}

func TestCheck_FetchesWhenStale(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "printsweep-updater", r.Header.Get("User-Agent"))
		_ = json.NewEncoder(w).Encode(map[string]string{"tag_name": "v9.9.9"})
	}))
	defer srv.Close()
	old := latestURL
	latestURL = srv.URL
	t.Cleanup(func() { latestURL = old })

	dir := t.TempDir()
	t.Setenv("CI", "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	latest, newer, err := Check("v1.0.0", false)
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", latest)
	assert.True(t, newer)

	c, err := loadCache()
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", c.Latest)
}

func TestLatestVersionOnline_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()
	old := latestURL
	latestURL = srv.URL
	t.Cleanup(func() { latestURL = old })

	_, err := latestVersionOnline()
	assert.Error(t, err)
}
