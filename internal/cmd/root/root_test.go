package root

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/chatmd/internal/config"
	"github.com/open-cli-collective/chatmd/internal/version"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range config.EnvVars {
		t.Setenv(v, "")
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	clearEnv(t)

	cmd := NewCmdRoot()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.yml"), "--no-color"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestNewCmdRoot(t *testing.T) {
	cmd := NewCmdRoot()
	assert.Equal(t, "chatmd", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"init", "config", "parse", "render", "convert", "completion", "version"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "output", "no-color", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRoot_Parse(t *testing.T) {
	out, _, err := execute(t, "", "parse", "-o", "plain", "-m", "alice", "*hi* @alice")
	require.NoError(t, err)
	assert.Equal(t, "hi @alice\n", out)
}

func TestRoot_ParseStdin(t *testing.T) {
	out, _, err := execute(t, "_x_\n", "parse")
	require.NoError(t, err)
	assert.Equal(t, "italic\n  \"x\"\n", out)
}

func TestRoot_OutputFromEnv(t *testing.T) {
	clearEnv(t)
	cmd := NewCmdRoot()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "config.yml"), "parse", "~s~"})
	t.Setenv(config.EnvOutput, "plain")

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "s\n", stdout.String())
}

func TestRoot_Render(t *testing.T) {
	out, _, err := execute(t, "", "render", "--to", "html", "~gone~")
	require.NoError(t, err)
	assert.Equal(t, "<s>gone</s>\n", out)
}

func TestRoot_Convert(t *testing.T) {
	out, _, err := execute(t, "**a**", "convert")
	require.NoError(t, err)
	assert.Equal(t, "*a*\n", out)
}

func TestRoot_Verbose(t *testing.T) {
	_, stderr, err := execute(t, "", "--verbose", "parse", "x")
	require.NoError(t, err)
	assert.Contains(t, stderr, "verbose logging enabled")
	assert.Contains(t, stderr, "parsed message")
}

func TestRoot_Version(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, version.String()+"\n", out)
}

func TestRoot_InvalidConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvDirectoryToken, "orphan")
	cmd := NewCmdRoot()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "config.yml"), "parse", "x"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chatmd init")
}
