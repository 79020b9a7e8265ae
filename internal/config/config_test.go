package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range EnvVars {
		t.Setenv(v, "")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:   "empty config",
			config: Config{},
		},
		{
			name: "full config",
			config: Config{
				Mentions:       []string{"alice", "bob"},
				EmojiNames:     []string{"smile"},
				DirectoryURL:   "https://chat.example.com/api",
				DirectoryToken: "token123",
			},
		},
		{
			name:    "token without url",
			config:  Config{DirectoryToken: "token123"},
			wantErr: true,
			errMsg:  "directory_token requires directory_url",
		},
		{
			name:    "invalid URL scheme",
			config:  Config{DirectoryURL: "ftp://chat.example.com"},
			wantErr: true,
			errMsg:  "must use http or https",
		},
		{
			name:    "missing host",
			config:  Config{DirectoryURL: "https://"},
			wantErr: true,
			errMsg:  "must include a host",
		},
		{
			name:    "blank mention",
			config:  Config{Mentions: []string{"alice", "  "}},
			wantErr: true,
			errMsg:  "empty names",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_NormalizeURL(t *testing.T) {
	cfg := Config{DirectoryURL: "https://chat.example.com/api/"}
	cfg.NormalizeURL()
	assert.Equal(t, "https://chat.example.com/api", cfg.DirectoryURL)
}

func TestConfig_EmojiWhitelist(t *testing.T) {
	assert.Nil(t, (&Config{}).EmojiWhitelist())
	assert.Nil(t, (&Config{EmojiNames: []string{}}).EmojiWhitelist())
	assert.Equal(t, []string{"a"}, (&Config{EmojiNames: []string{"a"}}).EmojiWhitelist())
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a, b ,c", []string{"a", "b", "c"}},
		{" , a,,", []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.input))
		})
	}
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Run("loads all env vars", func(t *testing.T) {
		t.Setenv(EnvMentions, "alice,bob")
		t.Setenv(EnvEmoji, "smile, wave")
		t.Setenv(EnvDirectoryURL, "https://env.example.com")
		t.Setenv(EnvDirectoryToken, "env-token")
		t.Setenv(EnvOutput, "json")

		cfg := &Config{}
		cfg.LoadFromEnv()

		assert.Equal(t, []string{"alice", "bob"}, cfg.Mentions)
		assert.Equal(t, []string{"smile", "wave"}, cfg.EmojiNames)
		assert.Equal(t, "https://env.example.com", cfg.DirectoryURL)
		assert.Equal(t, "env-token", cfg.DirectoryToken)
		assert.Equal(t, "json", cfg.OutputFormat)
	})

	t.Run("empty env vars keep existing values", func(t *testing.T) {
		clearEnv(t)

		cfg := &Config{Mentions: []string{"carol"}, DirectoryURL: "https://file.example.com"}
		cfg.LoadFromEnv()

		assert.Equal(t, []string{"carol"}, cfg.Mentions)
		assert.Equal(t, "https://file.example.com", cfg.DirectoryURL)
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("uses XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		assert.Equal(t, "/custom/config/chatmd/config.yml", DefaultConfigPath())
	})

	t.Run("falls back to home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "chatmd", "config.yml"), DefaultConfigPath())
	})
}

func TestConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	cfg := &Config{
		Mentions:       []string{"alice", "user[AFK]"},
		EmojiNames:     []string{"Smile"},
		DirectoryURL:   "https://chat.example.com",
		DirectoryToken: "secret",
		OutputFormat:   "json",
	}
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("mentions: [unclosed"), 0600))
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestLoadWithEnv(t *testing.T) {
	t.Run("missing file yields env-only config", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvMentions, "alice")

		cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"))
		require.NoError(t, err)
		assert.Equal(t, []string{"alice"}, cfg.Mentions)
	})

	t.Run("env overrides file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, (&Config{Mentions: []string{"file"}, OutputFormat: "plain"}).Save(path))
		t.Setenv(EnvMentions, "env")

		cfg, err := LoadWithEnv(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"env"}, cfg.Mentions)
		assert.Equal(t, "plain", cfg.OutputFormat)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(":\n\t- bad"), 0600))
		_, err := LoadWithEnv(path)
		require.Error(t, err)
	})
}
