// Package config provides configuration management for chatmd.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvMentions       = "CHATMD_MENTIONS"
	EnvEmoji          = "CHATMD_EMOJI"
	EnvDirectoryURL   = "CHATMD_DIRECTORY_URL"
	EnvDirectoryToken = "CHATMD_DIRECTORY_TOKEN"
	EnvOutput         = "CHATMD_OUTPUT"
)

// EnvVars lists every environment variable read by LoadFromEnv.
var EnvVars = []string{EnvMentions, EnvEmoji, EnvDirectoryURL, EnvDirectoryToken, EnvOutput}

// Config holds the chatmd configuration.
type Config struct {
	// Mentions are the names that may be @mentioned.
	Mentions []string `yaml:"mentions,omitempty"`
	// EmojiNames restricts which :shortcodes: become emoji. Empty means
	// any shortcode is accepted.
	EmojiNames     []string `yaml:"emoji_names,omitempty"`
	DirectoryURL   string   `yaml:"directory_url,omitempty"`
	DirectoryToken string   `yaml:"directory_token,omitempty"`
	OutputFormat   string   `yaml:"output_format,omitempty"`
}

// Validate checks that the configured values are well formed.
func (c *Config) Validate() error {
	if c.DirectoryToken != "" && c.DirectoryURL == "" {
		return errors.New("directory_token requires directory_url")
	}
	if c.DirectoryURL != "" {
		u, err := url.Parse(c.DirectoryURL)
		if err != nil {
			return fmt.Errorf("invalid directory_url: %w", err)
		}
		if u.Scheme != "https" && u.Scheme != "http" {
			return errors.New("directory_url must use http or https")
		}
		if u.Host == "" {
			return errors.New("directory_url must include a host")
		}
	}
	for _, m := range c.Mentions {
		if strings.TrimSpace(m) == "" {
			return errors.New("mentions must not contain empty names")
		}
	}
	return nil
}

// NormalizeURL removes any trailing slash from the directory URL.
func (c *Config) NormalizeURL() {
	c.DirectoryURL = strings.TrimSuffix(c.DirectoryURL, "/")
}

// EmojiWhitelist returns the emoji whitelist to parse with, or nil when
// emoji are unrestricted.
func (c *Config) EmojiWhitelist() []string {
	if len(c.EmojiNames) == 0 {
		return nil
	}
	return c.EmojiNames
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if mentions := os.Getenv(EnvMentions); mentions != "" {
		c.Mentions = SplitList(mentions)
	}
	if emoji := os.Getenv(EnvEmoji); emoji != "" {
		c.EmojiNames = SplitList(emoji)
	}
	if u := os.Getenv(EnvDirectoryURL); u != "" {
		c.DirectoryURL = u
	}
	if token := os.Getenv(EnvDirectoryToken); token != "" {
		c.DirectoryToken = token
	}
	if output := os.Getenv(EnvOutput); output != "" {
		c.OutputFormat = output
	}
}

// SplitList splits a comma-separated list, trimming blanks and dropping
// empty entries.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "chatmd", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".chatmd", "config.yml")
	}

	return filepath.Join(home, ".config", "chatmd", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The directory token is a credential.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file is not an error; a malformed one is.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
