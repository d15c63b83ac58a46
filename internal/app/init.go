package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pustakahq/pustakactl/internal/auth"
	"github.com/pustakahq/pustakactl/internal/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the data files and set the shared password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := lib.InitFiles(); err != nil {
				return err
			}
			ok("collection files ready under %s", cfg.DataDir)

			if cfg.PasswordHash != "" {
				fmt.Println("A password is already configured; use 'pustakactl passwd' to change it.")
				return nil
			}

			pw, err := readPassword("Choose a password: ")
			if err != nil {
				return err
			}
			if len(pw) < auth.MinPasswordLen {
				return fmt.Errorf("password must be at least %d characters", auth.MinPasswordLen)
			}
			confirm, err := readPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if pw != confirm {
				return fmt.Errorf("password confirmation does not match")
			}

			cfg.PasswordHash = auth.HashPassword(pw)
			if err := config.Save(cfg, flagConfig); err != nil {
				return err
			}
			ok("password set; web UI can now be started with 'pustakactl serve'")
			return nil
		},
	}
}
