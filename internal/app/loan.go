package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newLoanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Borrow and return books",
	}
	cmd.AddCommand(newLoanBorrowCmd(), newLoanReturnCmd(), newLoanListCmd())
	return cmd
}

func newLoanBorrowCmd() *cobra.Command {
	var bookID, memberID int

	cmd := &cobra.Command{
		Use:   "borrow",
		Short: "Issue a book to a member",
		RunE: func(cmd *cobra.Command, args []string) error {
			loan, err := lib.Loans.Borrow(bookID, memberID)
			if err != nil {
				return err
			}
			ok("loan [%d]: %q issued to %s", loan.ID, loan.BookTitle, loan.MemberName)
			return nil
		},
	}

	cmd.Flags().IntVar(&bookID, "book", 0, "Book id (required)")
	cmd.Flags().IntVar(&memberID, "member", 0, "Member id (required)")
	_ = cmd.MarkFlagRequired("book")
	_ = cmd.MarkFlagRequired("member")

	return cmd
}

func newLoanReturnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "return <loan-id>",
		Short: "Settle an active loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("loan id must be a number")
			}
			loan, err := lib.Loans.Return(id)
			if err != nil {
				return err
			}
			ok("loan [%d]: %q returned by %s", loan.ID, loan.BookTitle, loan.MemberName)
			return nil
		},
	}
}

func newLoanListCmd() *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List loan transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !activeOnly {
				return listLoans()
			}
			loans, err := lib.Loans.Active()
			if err != nil {
				return err
			}
			header("Active loans")
			count := 0
			for l := range loans {
				printLoan(l)
				count++
			}
			if count == 0 {
				fmt.Println("No books are out right now.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only loans still out")
	return cmd
}
