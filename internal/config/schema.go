package config

import "path/filepath"

// Config is the resolved pustakactl configuration. The on-disk form is a
// plain KEY=value file; every key can also be supplied through the
// environment with a PUSTAKACTL_ prefix.
type Config struct {
	// PasswordHash is the hex SHA-256 digest of the shared password.
	// Authenticated surfaces refuse to start without it.
	PasswordHash string

	DataDir string

	// Per-collection overrides; empty means DataDir/<name>.json.
	BooksFile       string
	MembersFile     string
	LoansFile       string
	DeletionLogFile string

	CoverDir string

	ServeHost string
	ServePort int
}

// EffectiveBooksFile returns the books collection path.
func (c *Config) EffectiveBooksFile() string {
	return c.effective(c.BooksFile, "books.json")
}

// EffectiveMembersFile returns the members collection path.
func (c *Config) EffectiveMembersFile() string {
	return c.effective(c.MembersFile, "members.json")
}

// EffectiveLoansFile returns the loans collection path.
func (c *Config) EffectiveLoansFile() string {
	return c.effective(c.LoansFile, "loans.json")
}

// EffectiveDeletionLogFile returns the deletion log path.
func (c *Config) EffectiveDeletionLogFile() string {
	return c.effective(c.DeletionLogFile, "deletion_log.json")
}

// EffectiveCoverDir returns the cover image directory.
func (c *Config) EffectiveCoverDir() string {
	if c.CoverDir != "" {
		return c.CoverDir
	}
	return filepath.Join(c.DataDir, "covers")
}

func (c *Config) effective(override, name string) string {
	if override != "" {
		return override
	}
	return filepath.Join(c.DataDir, name)
}
