package app

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pustakahq/pustakactl/internal/library"
)

func newBookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Manage the book catalog",
	}
	cmd.AddCommand(newBookAddCmd(), newBookListCmd(), newBookDeleteCmd())
	return cmd
}

func newBookAddCmd() *cobra.Command {
	var (
		title, author, publisher string
		year, stock              int
		funding                  string
		purchaseDate             string
		donorName, dateReceived  string
		coverPath                string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := lib.Catalog.Add(library.NewBook{
				Title:        title,
				Author:       author,
				Publisher:    publisher,
				Year:         year,
				Stock:        stock,
				Funding:      library.FundingSource(funding),
				PurchaseDate: purchaseDate,
				DonorName:    donorName,
				DateReceived: dateReceived,
			})
			if err != nil {
				return err
			}

			if coverPath != "" {
				if err := attachCover(book.ID, coverPath); err != nil {
					warn("book saved, but cover was not: %v", err)
				}
			}

			ok("book [%d] %q added with stock %d", book.ID, book.Title, book.Stock)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Book title (required)")
	cmd.Flags().StringVar(&author, "author", "", "Author")
	cmd.Flags().StringVar(&publisher, "publisher", "", "Publisher")
	cmd.Flags().IntVar(&year, "year", 0, "Publication year")
	cmd.Flags().IntVar(&stock, "stock", 0, "Initial stock")
	cmd.Flags().StringVar(&funding, "funding", "", "Funding source: institutional-budget or donor")
	cmd.Flags().StringVar(&purchaseDate, "purchase-date", "", "Purchase date (budget-funded books)")
	cmd.Flags().StringVar(&donorName, "donor-name", "", "Donor name (donated books)")
	cmd.Flags().StringVar(&dateReceived, "date-received", "", "Date received (donated books)")
	cmd.Flags().StringVar(&coverPath, "cover", "", "Path to a cover image to attach")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func attachCover(bookID int, srcPath string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer f.Close()

	stored, err := covers.Save(bookID, f)
	if err != nil {
		return err
	}
	return lib.Catalog.SetCoverImage(bookID, stored)
}

func newBookListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every book in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listBooks()
		},
	}
}

func printBook(b library.Book) {
	line := fmt.Sprintf("[%d] %s - %s (%d) | Stock: %d | Added: %s",
		b.ID, b.Title, b.Author, b.Year, b.Stock, b.CreatedAt)
	if b.Funding != "" {
		line += " | " + string(b.Funding)
	}
	fmt.Println(line)
}

func newBookDeleteCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "delete <book-id>",
		Short: "Delete a book, recording the reason in the audit log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("book id must be a number")
			}
			if err := lib.Catalog.Delete(id, reason); err != nil {
				return err
			}
			if err := covers.Remove(id); err != nil {
				warn("cover image for book %d was not removed: %v", id, err)
			}
			ok("book %d deleted; reason recorded", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Why the book is being removed (required)")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}

// printLoan renders one loan the way the listings show it.
func printLoan(l library.Loan) {
	returned := "-"
	if l.ReturnedAt != nil {
		returned = l.ReturnedAt.String()
	}
	status := string(l.Status)
	if l.Status == library.StatusActive {
		status = color.YellowString(status)
	} else {
		status = color.GreenString(status)
	}
	fmt.Printf("[%d] %s | %s | Out: %s | Back: %s | %s\n",
		l.ID, l.BookTitle, l.MemberName, l.BorrowedAt, returned, status)
}
