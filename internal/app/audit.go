package app

import (
	"github.com/spf13/cobra"
)

func newAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Show the book deletion log",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listAudit()
		},
	}
}
