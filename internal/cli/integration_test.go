package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/internal/cli"
	"github.com/yaklabco/mdtree/internal/configloader"
	"github.com/yaklabco/mdtree/pkg/config"
)

const testDocument = "# Hello World\n\nSome *text* here.\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// pinConfig writes a minimal config file and neutralizes the environment so
// the host machine's settings cannot leak into the test.
func pinConfig(t *testing.T, dir string) string {
	t.Helper()

	t.Setenv(configloader.EnvLogLevel, "")
	t.Setenv(configloader.EnvMatcher, "")
	return writeFile(t, dir, "config.yml", "search:\n  matcher: smart-case\n")
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegrationRenderFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := pinConfig(t, dir)
	mdFile := writeFile(t, dir, "test.md", testDocument)

	stdout, _, err := execute(t, "", "render", "--config", cfgFile, "--color", "never", mdFile)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, `{"kind":"parse_tree","tree":[`))
	assert.Contains(t, stdout, `{"t":"h","level":1,"c":["Hello World"]}`)
	assert.Contains(t, stdout, `{"t":"em","c":["text"]}`)
	assert.True(t, strings.HasSuffix(stdout, "\n"))
}

func TestIntegrationRenderStdin(t *testing.T) {
	dir := t.TempDir()
	cfgFile := pinConfig(t, dir)

	stdout, _, err := execute(t, "## Sub\n", "render", "--config", cfgFile)
	require.NoError(t, err)

	assert.Contains(t, stdout, `{"t":"h","level":2,"c":["Sub"]}`)
}

func TestIntegrationRenderSearch(t *testing.T) {
	dir := t.TempDir()
	cfgFile := pinConfig(t, dir)
	mdFile := writeFile(t, dir, "test.md", "find the needle in here\n")

	stdout, _, err := execute(t, "",
		"render", "--config", cfgFile, "--search", "needle", "--match-index", "0", mdFile)
	require.NoError(t, err)

	assert.Contains(t, stdout, `{"t":"match-current","c":["needle"]}`)
}

func TestIntegrationRenderModifiedOffset(t *testing.T) {
	dir := t.TempDir()
	cfgFile := pinConfig(t, dir)
	mdFile := writeFile(t, dir, "test.md", testDocument)

	stdout, _, err := execute(t, "",
		"render", "--config", cfgFile, "--modified-offset", "0", mdFile)
	require.NoError(t, err)

	assert.Contains(t, stdout, `{"t":"modified"}`)
}

func TestIntegrationRenderPrevFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := pinConfig(t, dir)
	prevFile := writeFile(t, dir, "prev.md", "# Hello World\n\nOld text.\n")
	mdFile := writeFile(t, dir, "test.md", "# Hello World\n\nNew text.\n")

	stdout, _, err := execute(t, "",
		"render", "--config", cfgFile, "--prev-file", prevFile, mdFile)
	require.NoError(t, err)

	assert.Contains(t, stdout, `{"t":"modified"}`)
}

func TestIntegrationRenderPrevFileIdentical(t *testing.T) {
	dir := t.TempDir()
	cfgFile := pinConfig(t, dir)
	prevFile := writeFile(t, dir, "prev.md", testDocument)
	mdFile := writeFile(t, dir, "test.md", testDocument)

	stdout, _, err := execute(t, "",
		"render", "--config", cfgFile, "--prev-file", prevFile, mdFile)
	require.NoError(t, err)

	assert.NotContains(t, stdout, `"modified"`)
}

func TestIntegrationRenderHeadingIDs(t *testing.T) {
	dir := t.TempDir()
	cfgFile := pinConfig(t, dir)
	mdFile := writeFile(t, dir, "test.md", testDocument)

	stdout, _, err := execute(t, "",
		"render", "--config", cfgFile, "--heading-ids", mdFile)
	require.NoError(t, err)

	assert.Contains(t, stdout, `{"t":"h","level":1,"id":"hello-world","c":["Hello World"]}`)
}

func TestIntegrationRenderOutputFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := pinConfig(t, dir)
	mdFile := writeFile(t, dir, "test.md", testDocument)
	outFile := filepath.Join(dir, "tree.json")

	stdout, _, err := execute(t, "",
		"render", "--config", cfgFile, "--output", outFile, mdFile)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"parse_tree"`)
}

func TestIntegrationRenderMissingFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := pinConfig(t, dir)

	_, _, err := execute(t, "",
		"render", "--config", cfgFile, filepath.Join(dir, "does-not-exist.md"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFor(err))
}

func TestIntegrationRenderBadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(configloader.EnvLogLevel, "")
	t.Setenv(configloader.EnvMatcher, "")
	cfgFile := writeFile(t, dir, "config.yml", "search:\n  matcher: fuzzy\n")
	mdFile := writeFile(t, dir, "test.md", testDocument)

	_, _, err := execute(t, "", "render", "--config", cfgFile, mdFile)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFor(err))
}

func TestIntegrationOutline(t *testing.T) {
	dir := t.TempDir()
	cfgFile := pinConfig(t, dir)
	mdFile := writeFile(t, dir, "test.md", "# Top\n\n## Nested\n\nbody words here\n")

	stdout, _, err := execute(t, "",
		"outline", "--config", cfgFile, "--color", "never", mdFile)
	require.NoError(t, err)

	assert.Contains(t, stdout, "test.md")
	assert.Contains(t, stdout, "• Top")
	assert.Contains(t, stdout, "• Nested")
	assert.NotContains(t, stdout, "words")
}

func TestIntegrationOutlineStats(t *testing.T) {
	dir := t.TempDir()
	cfgFile := pinConfig(t, dir)
	mdFile := writeFile(t, dir, "test.md", "# Top\n\none two three\n")

	stdout, _, err := execute(t, "",
		"outline", "--config", cfgFile, "--color", "never", "--stats", mdFile)
	require.NoError(t, err)

	assert.Contains(t, stdout, "words")
}

func TestIntegrationConfigInit(t *testing.T) {
	dir := t.TempDir()
	outFile := filepath.Join(dir, ".mdtree.yml")

	_, _, err := execute(t, "", "config", "init", "--output", outFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())

	// Running again without --force refuses to clobber the file.
	_, _, err = execute(t, "", "config", "init", "--output", outFile)
	require.Error(t, err)

	_, _, err = execute(t, "", "config", "init", "--output", outFile, "--force")
	require.NoError(t, err)
}

func TestIntegrationConfigShow(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(configloader.EnvLogLevel, "")
	t.Setenv(configloader.EnvMatcher, "")
	cfgFile := writeFile(t, dir, "config.yml", "search:\n  matcher: case-sensitive\n")

	stdout, _, err := execute(t, "", "config", "show", "--config", cfgFile)
	require.NoError(t, err)

	assert.Contains(t, stdout, "matcher: case-sensitive")
	assert.Contains(t, stdout, "file_extensions:")
}
