// Package auth implements the shared-password check and web session
// registry. One password guards the whole application; its hex SHA-256
// digest lives in the config file.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/pustakahq/pustakactl/internal/config"
)

// HashPassword returns the hex SHA-256 digest of the password, the exact
// form stored under PASSWORD_HASH.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether the candidate password matches the stored digest.
func Verify(password, storedHash string) bool {
	computed := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

// MinPasswordLen is the floor enforced when changing the password.
const MinPasswordLen = 4

// ChangePassword verifies the old password and writes the new digest back to
// the config file. All persisted state is untouched when any check fails.
func ChangePassword(cfg *config.Config, configPath, oldPw, newPw, confirmPw string) error {
	if oldPw == "" || newPw == "" || confirmPw == "" {
		return fmt.Errorf("all fields are required")
	}
	if len(newPw) < MinPasswordLen {
		return fmt.Errorf("new password must be at least %d characters", MinPasswordLen)
	}
	if newPw != confirmPw {
		return fmt.Errorf("password confirmation does not match")
	}
	if oldPw == newPw {
		return fmt.Errorf("new password must differ from the old one")
	}
	if err := cfg.RequirePasswordHash(); err != nil {
		return err
	}
	if !Verify(oldPw, cfg.PasswordHash) {
		return fmt.Errorf("old password is wrong")
	}

	cfg.PasswordHash = HashPassword(newPw)
	return config.Save(cfg, configPath)
}
