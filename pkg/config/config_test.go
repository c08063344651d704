package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValues(t *testing.T) {
	c := DefaultConfig()
	require.Equal(t, 0.2, c.Suggest.DefaultMaxDist)
	require.Equal(t, 0, c.Suggest.DefaultLimit)
	require.Equal(t, 100000, c.Suggest.DamerauCacheSize)
	require.Equal(t, 10000, c.Suggest.SuggestionCacheSize)
	require.True(t, c.Checker.CaseFold)
	require.Equal(t, 60, c.Server.MaxPrefixLen)
	require.Equal(t, 64, c.Server.MaxLimit)
}

func TestSaveAndLoadConfigRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	want := DefaultConfig()
	want.Suggest.DefaultMaxDist = 0.35
	want.Server.MaxLimit = 128
	require.NoError(t, SaveConfig(want, path))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, want.Suggest.DefaultMaxDist, got.Suggest.DefaultMaxDist)
	require.Equal(t, want.Server.MaxLimit, got.Server.MaxLimit)
}

func TestLoadConfigOfMissingFileFallsBackToDefaults(t *testing.T) {
	got, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.toml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), got)
}

func TestTryPartialParseRecoversValidSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	// [checker] is well-formed; [suggest]'s value is a string where a
	// float is expected, which a strict decode would reject outright for
	// the whole file.
	content := "[suggest]\ndefault_max_dist = \"oops\"\n\n[checker]\ncase_fold = false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	got, err := tryPartialParse(path)
	require.NoError(t, err)
	require.False(t, got.Checker.CaseFold)
	require.Equal(t, DefaultConfig().Suggest.DefaultMaxDist, got.Suggest.DefaultMaxDist)
}

func TestInitConfigCreatesDefaultFileWhenMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	got, err := InitConfig(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), got)

	_, statErr := os.Stat(path)
	require.NoError(t, statErr, "InitConfig should have created the file")
}

func TestInitConfigLoadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	custom := DefaultConfig()
	custom.Server.MaxPrefixLen = 10
	require.NoError(t, SaveConfig(custom, path))

	got, err := InitConfig(path)
	require.NoError(t, err)
	require.Equal(t, 10, got.Server.MaxPrefixLen)
}

func TestGetActiveConfigPathWithExplicitPath(t *testing.T) {
	require.Equal(t, "/tmp/config.toml", GetActiveConfigPath("/tmp/config.toml"))
}

func TestLoadConfigWithPriorityUsesCustomPathWhenPresent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	custom := DefaultConfig()
	custom.Suggest.DefaultLimit = 7
	require.NoError(t, SaveConfig(custom, path))

	got, usedPath, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	require.Equal(t, path, usedPath)
	require.Equal(t, 7, got.Suggest.DefaultLimit)
}
