package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ErrConfigMissing means required configuration is absent. It is the one
// fatal condition: callers halt instead of running with an undefined
// password state.
var ErrConfigMissing = errors.New("configuration missing")

// DefaultPath returns the default config file path, relative to the working
// directory like the rest of the data files.
func DefaultPath() string {
	return filepath.Join("config", "config.txt")
}

// Load reads the KEY=value config file (or env). A missing file yields the
// defaults; init creates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("PUSTAKACTL_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()

	v.SetDefault("data_dir", "database")
	v.SetDefault("serve_host", "127.0.0.1")
	v.SetDefault("serve_port", 8090)

	v.SetEnvPrefix("PUSTAKACTL")
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	cfg := &Config{
		PasswordHash:    v.GetString("password_hash"),
		DataDir:         v.GetString("data_dir"),
		BooksFile:       v.GetString("books_file"),
		MembersFile:     v.GetString("members_file"),
		LoansFile:       v.GetString("loans_file"),
		DeletionLogFile: v.GetString("deletion_log_file"),
		CoverDir:        v.GetString("cover_dir"),
		ServeHost:       v.GetString("serve_host"),
		ServePort:       v.GetInt("serve_port"),
	}
	return cfg, nil
}

// RequirePasswordHash fails with ErrConfigMissing when no password hash is
// configured.
func (c *Config) RequirePasswordHash() error {
	if c.PasswordHash == "" {
		return fmt.Errorf("PASSWORD_HASH not set: %w", ErrConfigMissing)
	}
	return nil
}

// Save writes the config back as KEY=value lines. Only non-default values
// are written, keeping the file as small as the one it replaces.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	var b strings.Builder
	write := func(key, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s=%s\n", key, value)
		}
	}
	write("PASSWORD_HASH", cfg.PasswordHash)
	if cfg.DataDir != "" && cfg.DataDir != "database" {
		write("DATA_DIR", cfg.DataDir)
	}
	write("BOOKS_FILE", cfg.BooksFile)
	write("MEMBERS_FILE", cfg.MembersFile)
	write("LOANS_FILE", cfg.LoansFile)
	write("DELETION_LOG_FILE", cfg.DeletionLogFile)
	write("COVER_DIR", cfg.CoverDir)
	if cfg.ServeHost != "" && cfg.ServeHost != "127.0.0.1" {
		write("SERVE_HOST", cfg.ServeHost)
	}
	if cfg.ServePort != 0 && cfg.ServePort != 8090 {
		write("SERVE_PORT", fmt.Sprintf("%d", cfg.ServePort))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
