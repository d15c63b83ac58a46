package app

import (
	"github.com/spf13/cobra"
)

func newMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage the member directory",
	}
	cmd.AddCommand(newMemberAddCmd(), newMemberListCmd())
	return cmd
}

func newMemberAddCmd() *cobra.Command {
	var name, class, nis string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a student member",
		RunE: func(cmd *cobra.Command, args []string) error {
			member, err := lib.Members.Add(name, class, nis)
			if err != nil {
				return err
			}
			ok("member [%d] %s registered (NIS %s)", member.ID, member.Name, member.NIS)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name (required)")
	cmd.Flags().StringVar(&class, "class", "", "Class or group (required)")
	cmd.Flags().StringVar(&nis, "nis", "", "Student number, unique (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("class")
	_ = cmd.MarkFlagRequired("nis")

	return cmd
}

func newMemberListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every registered member",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listMembers()
		},
	}
}
