package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pustakahq/pustakactl/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.txt"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "database" {
		t.Errorf("DataDir = %q, want database", cfg.DataDir)
	}
	if cfg.ServeHost != "127.0.0.1" || cfg.ServePort != 8090 {
		t.Errorf("serve defaults = %s:%d", cfg.ServeHost, cfg.ServePort)
	}
	if cfg.PasswordHash != "" {
		t.Errorf("PasswordHash = %q, want empty", cfg.PasswordHash)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.txt")
	content := "PASSWORD_HASH=abc123\nDATA_DIR=/srv/lib\nSERVE_PORT=9000\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PasswordHash != "abc123" {
		t.Errorf("PasswordHash = %q", cfg.PasswordHash)
	}
	if cfg.DataDir != "/srv/lib" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.ServePort != 9000 {
		t.Errorf("ServePort = %d", cfg.ServePort)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PUSTAKACTL_PASSWORD_HASH", "from-env")
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.txt"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PasswordHash != "from-env" {
		t.Errorf("PasswordHash = %q, want from-env", cfg.PasswordHash)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.txt")
	cfg := &config.Config{
		PasswordHash: "deadbeef",
		DataDir:      "/data",
		CoverDir:     "/data/art",
		ServePort:    7000,
	}
	if err := config.Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.PasswordHash != "deadbeef" || got.DataDir != "/data" ||
		got.CoverDir != "/data/art" || got.ServePort != 7000 {
		t.Errorf("round trip = %+v", got)
	}
}

func TestRequirePasswordHash(t *testing.T) {
	cfg := &config.Config{}
	if err := cfg.RequirePasswordHash(); !errors.Is(err, config.ErrConfigMissing) {
		t.Errorf("RequirePasswordHash() = %v, want ErrConfigMissing", err)
	}
	cfg.PasswordHash = "x"
	if err := cfg.RequirePasswordHash(); err != nil {
		t.Errorf("RequirePasswordHash() with hash = %v", err)
	}
}

func TestEffectivePaths(t *testing.T) {
	cfg := &config.Config{DataDir: "db"}
	if got := cfg.EffectiveBooksFile(); got != filepath.Join("db", "books.json") {
		t.Errorf("EffectiveBooksFile() = %q", got)
	}
	if got := cfg.EffectiveCoverDir(); got != filepath.Join("db", "covers") {
		t.Errorf("EffectiveCoverDir() = %q", got)
	}

	cfg.BooksFile = "/elsewhere/b.json"
	if got := cfg.EffectiveBooksFile(); got != "/elsewhere/b.json" {
		t.Errorf("override ignored: %q", got)
	}
}
