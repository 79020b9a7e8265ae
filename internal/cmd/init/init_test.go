package init

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/chatmd/internal/config"
	"github.com/open-cli-collective/chatmd/internal/directory"
)

func TestBuildConfig(t *testing.T) {
	cfg := buildConfig(&initOptions{
		mentions:     " alice, bob ,, ",
		emoji:        "",
		directoryURL: " https://chat.example.com/ ",
		token:        " tok ",
	})

	assert.Equal(t, []string{"alice", "bob"}, cfg.Mentions)
	assert.Nil(t, cfg.EmojiNames)
	assert.Equal(t, "https://chat.example.com", cfg.DirectoryURL)
	assert.Equal(t, "tok", cfg.DirectoryToken)
}

func TestFinishInit_VerifiesAndSaves(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/members", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "chatmd", "config.yml")
	opts := &initOptions{mentions: "alice", emoji: "smile", directoryURL: server.URL, token: "test-token"}

	var out bytes.Buffer
	require.NoError(t, finishInit(context.Background(), path, opts, &out, nil))
	assert.Contains(t, out.String(), "success!")
	assert.Contains(t, out.String(), "Configuration saved to "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, cfg.Mentions)
	assert.Equal(t, []string{"smile"}, cfg.EmojiNames)
	assert.Equal(t, server.URL, cfg.DirectoryURL)
}

func TestFinishInit_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "Unauthorized"}`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "config.yml")
	opts := &initOptions{directoryURL: server.URL, token: "wrong"}

	var out bytes.Buffer
	err := finishInit(context.Background(), path, opts, &out, directory.NewClient(server.URL, "wrong"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
	assert.Contains(t, out.String(), "failed!")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "config must not be saved")
}

func TestFinishInit_NoVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	opts := &initOptions{directoryURL: "https://unreachable.invalid", noVerify: true}

	var out bytes.Buffer
	require.NoError(t, finishInit(context.Background(), path, opts, &out, nil))
	assert.NotContains(t, out.String(), "Verifying")
	assert.FileExists(t, path)
}

func TestFinishInit_NoDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	var out bytes.Buffer
	require.NoError(t, finishInit(context.Background(), path, &initOptions{mentions: "alice"}, &out, nil))
	assert.NotContains(t, out.String(), "--fetch")
}

func TestFinishInit_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	opts := &initOptions{token: "orphan"}

	err := finishInit(context.Background(), path, opts, &bytes.Buffer{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestNewCmdInit(t *testing.T) {
	cmd := NewCmdInit()
	assert.Equal(t, "init", cmd.Use)
	for _, name := range []string{"mentions", "emoji", "directory-url", "no-verify"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
