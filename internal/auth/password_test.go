package auth_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pustakahq/pustakactl/internal/auth"
	"github.com/pustakahq/pustakactl/internal/config"
)

func TestHashPassword(t *testing.T) {
	// sha256("admin")
	const want = "8c6976e5b5410415bde908bd4dee15dfb167a9c873fc4bb8a81f6f2ab448a918"
	if got := auth.HashPassword("admin"); got != want {
		t.Errorf("HashPassword(admin) = %q, want %q", got, want)
	}
}

func TestVerify(t *testing.T) {
	hash := auth.HashPassword("s3cret")
	if !auth.Verify("s3cret", hash) {
		t.Error("Verify rejected the right password")
	}
	if auth.Verify("wrong", hash) {
		t.Error("Verify accepted a wrong password")
	}
	if auth.Verify("s3cret", "") {
		t.Error("Verify accepted against an empty hash")
	}
}

func TestChangePassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.txt")
	newCfg := func() *config.Config {
		return &config.Config{PasswordHash: auth.HashPassword("old-pass")}
	}

	cases := []struct {
		name               string
		old, new_, confirm string
		wantErr            string
	}{
		{"empty old", "", "newpass", "newpass", "all fields are required"},
		{"empty new", "old-pass", "", "", "all fields are required"},
		{"too short", "old-pass", "abc", "abc", "at least 4 characters"},
		{"confirm mismatch", "old-pass", "newpass", "other", "does not match"},
		{"same as old", "old-pass", "old-pass", "old-pass", "must differ"},
		{"wrong old", "nope", "newpass", "newpass", "old password is wrong"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := newCfg()
			err := auth.ChangePassword(cfg, path, tc.old, tc.new_, tc.confirm)
			if err == nil {
				t.Fatal("ChangePassword succeeded, want error")
			}
			if got := err.Error(); !strings.Contains(got, tc.wantErr) {
				t.Errorf("error = %q, want substring %q", got, tc.wantErr)
			}
			if cfg.PasswordHash != auth.HashPassword("old-pass") {
				t.Error("hash changed after refused change")
			}
		})
	}

	t.Run("success", func(t *testing.T) {
		cfg := newCfg()
		if err := auth.ChangePassword(cfg, path, "old-pass", "new-pass", "new-pass"); err != nil {
			t.Fatalf("ChangePassword: %v", err)
		}
		if cfg.PasswordHash != auth.HashPassword("new-pass") {
			t.Error("hash not updated")
		}

		// The new digest must have been written through to the file.
		loaded, err := config.Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if loaded.PasswordHash != auth.HashPassword("new-pass") {
			t.Errorf("persisted hash = %q", loaded.PasswordHash)
		}
	})
}
