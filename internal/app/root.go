// Package app wires the cobra command tree over the library core.
package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pustakahq/pustakactl/internal/config"
	"github.com/pustakahq/pustakactl/internal/cover"
	"github.com/pustakahq/pustakactl/internal/library"
)

var (
	cfg    *config.Config
	lib    *library.Library
	covers *cover.Store

	flagNoColor bool
	flagConfig  string

	version = "dev"
)

// SetVersion records the build version shown by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "pustakactl",
	Short: "Keep a small school library's records: books, members, loans",
	Long: `pustakactl tracks books, student members, loan transactions, and a
deletion audit log, persisted as flat JSON collections on disk.

Run 'pustakactl' with no arguments to launch the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: config/config.txt)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		color.NoColor = color.NoColor || flagNoColor

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		lib = library.Open(library.Paths{
			Books:       cfg.EffectiveBooksFile(),
			Members:     cfg.EffectiveMembersFile(),
			Loans:       cfg.EffectiveLoansFile(),
			DeletionLog: cfg.EffectiveDeletionLogFile(),
		})
		covers = cover.NewStore(cfg.EffectiveCoverDir())
		return nil
	}

	// Register sub-commands.
	rootCmd.AddCommand(
		newInitCmd(),
		newBookCmd(),
		newMemberCmd(),
		newLoanCmd(),
		newAuditCmd(),
		newConvertCmd(),
		newServeCmd(),
		newPasswdCmd(),
	)
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
