package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/menutrail/internal/config"
	"github.com/aretw0/menutrail/internal/testutils"
	"github.com/aretw0/menutrail/pkg/domain"
)

func writeMenu(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"home.md":  "---\nid: home\nmenu: main\ntitle: Home\n---\n",
		"blog.md":  "---\nid: blog\nmenu: main\ntitle: Blog\nweight: 1\n---\n",
		"about.md": "---\nid: about\nmenu: main\ntitle: About\nweight: 2\n---\n",
		"post.md":  "---\nid: post\nmenu: main\nparent: blog\ntitle: First post\n---\n",
	})
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menutrail.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dir: content\nfront_page: home\nlog_level: warn\n"), 0644))

	cmd := &cobra.Command{Use: "test"}
	addRootFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--log-level", "debug"}))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, config.SourceDir, cfg.Source)
	assert.Equal(t, "content", cfg.Dir)
	assert.Equal(t, "home", cfg.FrontPage)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_RejectsUnknownSource(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addRootFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "--source", "s3"}))

	_, err := loadConfig(cmd)
	assert.ErrorContains(t, err, "unknown source")
}

func TestSelectCommand_JSON(t *testing.T) {
	dir := writeMenu(t)
	noConfig := filepath.Join(dir, "none.yaml")

	out, err := run(t, "select", "siblings", "--config", noConfig, "--dir", dir, "-m", "main", "-c", "blog", "--json")
	require.NoError(t, err)

	var sel domain.Selection
	require.NoError(t, json.Unmarshal([]byte(out), &sel))
	assert.Equal(t, domain.ReasonFound, sel.Reason)
	assert.Equal(t, domain.Trail{"", "blog"}, sel.Trail)
	assert.Equal(t, []string{"home", "blog", "about"}, sel.Tree.Keys())
}

func TestValidateCommand(t *testing.T) {
	dir := writeMenu(t)

	out, err := run(t, "validate", "--config", filepath.Join(dir, "none.yaml"), "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 menu(s) valid!")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "menutrail version")
}
