package configloader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/internal/configloader"
)

// isolated returns LoadOptions that keep the host machine's real config
// files and environment out of the test.
func isolated(workDir string) configloader.LoadOptions {
	return configloader.LoadOptions{
		WorkingDir:         workDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaultsWhenNoFiles(t *testing.T) {
	dir := t.TempDir()
	// A VCS marker stops the upward walk inside the temp dir.
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	result, err := configloader.Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	assert.Equal(t, "smart-case", result.Config.Search.Matcher)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	path := writeConfig(t, dir, ".mdtree.yml", "search:\n  matcher: case-sensitive\n")

	result, err := configloader.Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	assert.Equal(t, "case-sensitive", result.Config.Search.Matcher)
	assert.Equal(t, []string{path}, result.LoadedFrom)
	assert.Equal(t, path, result.Paths.Project)

	// Keys the file leaves out keep their defaults.
	assert.Equal(t, "info", result.Config.LogLevel)
}

func TestLoadProjectConfigUpwardSearch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	path := writeConfig(t, dir, ".mdtree.yml", "log_level: debug\n")

	nested := filepath.Join(dir, "docs", "guides")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := configloader.Load(context.Background(), isolated(nested))
	require.NoError(t, err)

	assert.Equal(t, "debug", result.Config.LogLevel)
	assert.Equal(t, path, result.Paths.Project)
}

func TestLoadExplicitPathWinsOverProject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeConfig(t, dir, ".mdtree.yml", "log_level: debug\n")
	explicit := writeConfig(t, dir, "other.yml", "log_level: error\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit

	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "error", result.Config.LogLevel)
	assert.Equal(t, []string{explicit}, result.LoadedFrom)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	opts := isolated(dir)
	opts.ExplicitPath = filepath.Join(dir, "does-not-exist.yml")

	_, err := configloader.Load(context.Background(), opts)
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeConfig(t, dir, ".mdtree.yml", "search: [broken\n")

	_, err := configloader.Load(context.Background(), isolated(dir))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeConfig(t, dir, ".mdtree.yml", "search:\n  matcher: fuzzy\n")

	_, err := configloader.Load(context.Background(), isolated(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.matcher")
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeConfig(t, dir, ".mdtree.yml", "log_level: warn\n")

	t.Setenv(configloader.EnvLogLevel, "debug")
	t.Setenv(configloader.EnvMatcher, "case-insensitive")

	opts := isolated(dir)
	opts.IgnoreEnv = false

	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "debug", result.Config.LogLevel)
	assert.Equal(t, "case-insensitive", result.Config.Search.Matcher)
}

func TestLoadCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := configloader.Load(ctx, isolated(t.TempDir()))
	assert.Error(t, err)
}
