package app

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pustakahq/pustakactl/internal/auth"
)

// readPassword prompts without echoing the input.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func newPasswdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the shared password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.RequirePasswordHash(); err != nil {
				return fmt.Errorf("%w (run 'pustakactl init' first)", err)
			}

			oldPw, err := readPassword("Old password: ")
			if err != nil {
				return err
			}
			newPw, err := readPassword("New password: ")
			if err != nil {
				return err
			}
			confirmPw, err := readPassword("Confirm new password: ")
			if err != nil {
				return err
			}

			if err := auth.ChangePassword(cfg, flagConfig, oldPw, newPw, confirmPw); err != nil {
				return err
			}
			ok("password changed")
			return nil
		},
	}
}
