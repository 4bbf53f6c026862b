package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "printsweep.yaml", "categories: [log, debug]\nmax_bytes: 123\nnamespace: logger\naudit: false\nextensions: [.mjs]\n")
	cfg, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"log", "debug"}, cfg.Categories)
	require.NotNil(t, cfg.MaxBytes)
	assert.Equal(t, int64(123), *cfg.MaxBytes)
	require.NotNil(t, cfg.Namespace)
	assert.Equal(t, "logger", *cfg.Namespace)
	require.NotNil(t, cfg.Audit)
	assert.False(t, *cfg.Audit)
	assert.Equal(t, []string{".mjs"}, cfg.Extensions)
	assert.Nil(t, cfg.NoColor)
}

func TestLoadFile_Invalid(t *testing.T) {
	p := writeTemp(t, t.TempDir(), "bad.yml", "categories: [log\n")
	_, err := LoadFile(p)
	assert.Error(t, err)
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "printsweep.yaml", "namespace: a\n")
	writeTemp(t, dir, ".printsweep.yaml", "namespace: b\n")
	cfg, err := LoadLocal(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.Namespace)
	assert.Equal(t, "b", *cfg.Namespace)
}

func TestLoadLocal_NoConfig(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	assert.Error(t, err)
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "printsweep"), 0o755))
	writeTemp(t, filepath.Join(dir, "printsweep"), "config.yml", "log_level: debug\n")
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := LoadGlobal()
	require.NoError(t, err)
	require.NotNil(t, cfg.LogLevel)
	assert.Equal(t, "debug", *cfg.LogLevel)
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	_, err := LoadGlobal()
	assert.Error(t, err)
}

func TestWrite_RoundTripOmitsUnset(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".printsweep.yml")
	on := true
	require.NoError(t, Write(p, FileConfig{Categories: []string{"log"}, DefaultExcludes: &on}))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "namespace")

	cfg, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"log"}, cfg.Categories)
	require.NotNil(t, cfg.DefaultExcludes)
	assert.True(t, *cfg.DefaultExcludes)
}
