package app

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"

	"github.com/pustakahq/pustakactl/internal/library"
	"github.com/pustakahq/pustakactl/internal/tui"
)

var menuItems = []tui.MenuItem{
	{Key: "book-add", Title: "Add book"},
	{Key: "book-list", Title: "List books"},
	{Key: "book-delete", Title: "Delete book", Desc: "reason goes to the audit log"},
	{Key: "member-add", Title: "Add member"},
	{Key: "member-list", Title: "List members"},
	{Key: "borrow", Title: "Borrow book"},
	{Key: "return", Title: "Return book"},
	{Key: "loans", Title: "Loan transactions"},
	{Key: "audit", Title: "Deletion log"},
	{Key: "quit", Title: "Quit"},
}

// runMenu is the interactive front end: one action per iteration, every
// action running to completion before the next is offered.
func runMenu() error {
	for {
		choice, err := tui.RunMenu("Library", menuItems)
		if errors.Is(err, tui.ErrCanceled) || choice == "quit" {
			fmt.Println("Bye.")
			return nil
		}
		if err != nil {
			return err
		}

		if err := runMenuAction(choice); err != nil {
			if errors.Is(err, tui.ErrCanceled) {
				continue
			}
			// Operation errors are messages to the operator, not faults.
			fmt.Println(color.RedString("✗"), err)
		}
		pause()
	}
}

func runMenuAction(choice string) error {
	switch choice {
	case "book-add":
		return menuAddBook()
	case "book-list":
		return listBooks()
	case "book-delete":
		return menuDeleteBook()
	case "member-add":
		return menuAddMember()
	case "member-list":
		return listMembers()
	case "borrow":
		return menuBorrow()
	case "return":
		return menuReturn()
	case "loans":
		return listLoans()
	case "audit":
		return listAudit()
	}
	return nil
}

func pause() {
	fmt.Print(color.HiBlackString("Press Enter to continue..."))
	bufio.NewScanner(os.Stdin).Scan()
}

func menuAddBook() error {
	values, err := tui.RunForm("Add Book", []tui.Field{
		{Label: "Title", Placeholder: "Book title"},
		{Label: "Author", Placeholder: "Author name", Optional: true},
		{Label: "Publisher", Placeholder: "Publisher", Optional: true},
		{Label: "Year", Placeholder: "2020", Numeric: true, Width: 8, CharLimit: 4},
		{Label: "Stock", Placeholder: "1", Numeric: true, Width: 8, CharLimit: 4},
	})
	if err != nil {
		return err
	}
	year, _ := strconv.Atoi(values[3])
	stock, _ := strconv.Atoi(values[4])

	funding, acquisition, err := menuFundingDetails()
	if err != nil {
		return err
	}

	book, err := lib.Catalog.Add(library.NewBook{
		Title:        values[0],
		Author:       values[1],
		Publisher:    values[2],
		Year:         year,
		Stock:        stock,
		Funding:      funding,
		PurchaseDate: acquisition.purchaseDate,
		DonorName:    acquisition.donorName,
		DateReceived: acquisition.dateReceived,
	})
	if err != nil {
		return err
	}
	ok("book [%d] %q added with stock %d", book.ID, book.Title, book.Stock)
	return nil
}

type acquisitionDetails struct {
	purchaseDate string
	donorName    string
	dateReceived string
}

func menuFundingDetails() (library.FundingSource, acquisitionDetails, error) {
	choice, err := tui.RunMenu("Funding source", []tui.MenuItem{
		{Key: "none", Title: "Not recorded"},
		{Key: string(library.FundingBudget), Title: "Institutional budget"},
		{Key: string(library.FundingDonor), Title: "Donor"},
	})
	if err != nil {
		return "", acquisitionDetails{}, err
	}

	switch choice {
	case string(library.FundingBudget):
		values, err := tui.RunForm("Purchase details", []tui.Field{
			{Label: "Purchased", Placeholder: "2020-01-31", Width: 14},
		})
		if err != nil {
			return "", acquisitionDetails{}, err
		}
		return library.FundingBudget, acquisitionDetails{purchaseDate: values[0]}, nil

	case string(library.FundingDonor):
		values, err := tui.RunForm("Donation details", []tui.Field{
			{Label: "Donor", Placeholder: "Donor name"},
			{Label: "Received", Placeholder: "2020-01-31", Width: 14},
		})
		if err != nil {
			return "", acquisitionDetails{}, err
		}
		return library.FundingDonor, acquisitionDetails{donorName: values[0], dateReceived: values[1]}, nil
	}
	return "", acquisitionDetails{}, nil
}

func menuDeleteBook() error {
	options, err := bookOptions(false)
	if err != nil {
		return err
	}
	picked, err := tui.RunPicker("Delete which book?", options)
	if err != nil {
		return err
	}

	values, err := tui.RunForm("Delete Book", []tui.Field{
		{Label: "Reason", Placeholder: "Why is it being removed?"},
	})
	if err != nil {
		return err
	}

	if err := lib.Catalog.Delete(picked.ID, values[0]); err != nil {
		return err
	}
	if err := covers.Remove(picked.ID); err != nil {
		warn("cover image for book %d was not removed: %v", picked.ID, err)
	}
	ok("book %d deleted; reason recorded", picked.ID)
	return nil
}

func menuAddMember() error {
	values, err := tui.RunForm("Add Member", []tui.Field{
		{Label: "Name", Placeholder: "Full name"},
		{Label: "Class", Placeholder: "Class or group", Width: 14},
		{Label: "NIS", Placeholder: "Student number", Width: 14},
	})
	if err != nil {
		return err
	}
	member, err := lib.Members.Add(values[0], values[1], values[2])
	if err != nil {
		return err
	}
	ok("member [%d] %s registered (NIS %s)", member.ID, member.Name, member.NIS)
	return nil
}

func menuBorrow() error {
	bookOpts, err := bookOptions(true)
	if err != nil {
		return err
	}
	book, err := tui.RunPicker("Borrow which book?", bookOpts)
	if err != nil {
		return err
	}

	memberOpts, err := memberOptions()
	if err != nil {
		return err
	}
	member, err := tui.RunPicker("For which member?", memberOpts)
	if err != nil {
		return err
	}

	loan, err := lib.Loans.Borrow(book.ID, member.ID)
	if err != nil {
		return err
	}
	ok("loan [%d]: %q issued to %s", loan.ID, loan.BookTitle, loan.MemberName)
	return nil
}

func menuReturn() error {
	active, err := lib.Loans.Active()
	if err != nil {
		return err
	}
	var options []tui.Option
	for l := range active {
		options = append(options, tui.Option{
			ID:     l.ID,
			Label:  l.BookTitle,
			Detail: fmt.Sprintf("borrowed by %s on %s", l.MemberName, l.BorrowedAt),
		})
	}
	if len(options) == 0 {
		fmt.Println("No books are out right now.")
		return nil
	}

	picked, err := tui.RunPicker("Return which loan?", options)
	if err != nil {
		return err
	}
	loan, err := lib.Loans.Return(picked.ID)
	if err != nil {
		return err
	}
	ok("loan [%d]: %q returned by %s", loan.ID, loan.BookTitle, loan.MemberName)
	return nil
}

func bookOptions(inStockOnly bool) ([]tui.Option, error) {
	books, err := lib.Catalog.Books()
	if err != nil {
		return nil, err
	}
	var options []tui.Option
	for b := range books {
		if inStockOnly && b.Stock <= 0 {
			continue
		}
		options = append(options, tui.Option{
			ID:     b.ID,
			Label:  b.Title,
			Detail: fmt.Sprintf("%s · stock %d", b.Author, b.Stock),
		})
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("no books available")
	}
	return options, nil
}

func memberOptions() ([]tui.Option, error) {
	members, err := lib.Members.Members()
	if err != nil {
		return nil, err
	}
	var options []tui.Option
	for m := range members {
		options = append(options, tui.Option{
			ID:     m.ID,
			Label:  m.Name,
			Detail: fmt.Sprintf("%s · NIS %s", m.Class, m.NIS),
		})
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("no members registered")
	}
	return options, nil
}

// The list actions shared with the plain subcommands.

func listBooks() error {
	books, err := lib.Catalog.Books()
	if err != nil {
		return err
	}
	header("Books")
	count := 0
	for b := range books {
		printBook(b)
		count++
	}
	if count == 0 {
		fmt.Println("The catalog is empty.")
	}
	return nil
}

func listMembers() error {
	members, err := lib.Members.Members()
	if err != nil {
		return err
	}
	header("Members")
	count := 0
	for m := range members {
		fmt.Printf("[%d] %s | Class: %s | NIS: %s\n", m.ID, m.Name, m.Class, m.NIS)
		count++
	}
	if count == 0 {
		fmt.Println("No members registered yet.")
	}
	return nil
}

func listLoans() error {
	loans, err := lib.Loans.All()
	if err != nil {
		return err
	}
	header("Loans")
	count := 0
	for l := range loans {
		printLoan(l)
		count++
	}
	if count == 0 {
		fmt.Println("No loan transactions yet.")
	}
	return nil
}

func listAudit() error {
	entries, err := lib.Audit.Entries()
	if err != nil {
		return err
	}
	header("Deletion log")
	count := 0
	for e := range entries {
		fmt.Printf("Book %d | %s | Reason: %s\n", e.BookID, e.Title, e.Reason)
		count++
	}
	if count == 0 {
		fmt.Println("No books have been deleted.")
	}
	return nil
}
