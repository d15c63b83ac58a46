package library

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/pustakahq/pustakactl/internal/store"
)

// LoanStatus is the borrow/return state of a loan. A loan starts active and
// transitions to returned exactly once; there is no way back.
type LoanStatus string

const (
	StatusActive   LoanStatus = "active"
	StatusReturned LoanStatus = "returned"
)

// Loan is one borrow transaction. Title and member name are value copies
// taken at creation time; editing the source book or member later does not
// rewrite loan history.
type Loan struct {
	ID         int        `json:"id"`
	BookID     int        `json:"book_id"`
	BookTitle  string     `json:"book_title"`
	MemberID   int        `json:"member_id"`
	MemberName string     `json:"member_name"`
	Status     LoanStatus `json:"status"`
	BorrowedAt Timestamp  `json:"borrowed_at"`
	ReturnedAt *Timestamp `json:"returned_at"`
}

func (l Loan) RecordID() int { return l.ID }

// Ledger creates and settles loans, deriving stock mutations on the catalog.
type Ledger struct {
	loans   *store.Store[Loan]
	catalog *Catalog
	members *Directory
}

// NewLedger creates a ledger over the given loan store and collaborators.
func NewLedger(loans *store.Store[Loan], catalog *Catalog, members *Directory) *Ledger {
	return &Ledger{loans: loans, catalog: catalog, members: members}
}

// Borrow issues a book to a member. The stock decrement is persisted before
// the loan record: a crash in between leaves a decremented count with no
// loan row, never an over-issued book.
func (l *Ledger) Borrow(bookID, memberID int) (Loan, error) {
	book, err := l.catalog.Get(bookID)
	if err != nil {
		return Loan{}, err
	}
	member, err := l.members.Get(memberID)
	if err != nil {
		return Loan{}, err
	}
	if book.Stock <= 0 {
		return Loan{}, fmt.Errorf("book %d (%s): %w", book.ID, book.Title, ErrOutOfStock)
	}

	if _, err := l.catalog.AdjustStock(bookID, -1); err != nil {
		return Loan{}, err
	}

	var created Loan
	err = l.loans.Update(func(loans []Loan) ([]Loan, error) {
		created = Loan{
			ID:         store.NextID(loans),
			BookID:     book.ID,
			BookTitle:  book.Title,
			MemberID:   member.ID,
			MemberName: member.Name,
			Status:     StatusActive,
			BorrowedAt: Now(),
		}
		return append(loans, created), nil
	})
	if err != nil {
		return Loan{}, err
	}
	return created, nil
}

// Return settles an active loan and restores the book's stock. If the book
// was deleted while on loan the stock increment is skipped and the loan
// still transitions to returned.
func (l *Ledger) Return(loanID int) (Loan, error) {
	loans, err := l.loans.Load()
	if err != nil {
		return Loan{}, err
	}

	idx := slices.IndexFunc(loans, func(ln Loan) bool {
		return ln.ID == loanID && ln.Status == StatusActive
	})
	if idx < 0 {
		return Loan{}, fmt.Errorf("active loan %d: %w", loanID, ErrNotFound)
	}

	if _, err := l.catalog.AdjustStock(loans[idx].BookID, +1); err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Loan{}, err
		}
	}

	now := Now()
	loans[idx].Status = StatusReturned
	loans[idx].ReturnedAt = &now
	if err := l.loans.Save(loans); err != nil {
		return Loan{}, err
	}
	return loans[idx], nil
}

// Active returns the loans still out, in insertion order.
func (l *Ledger) Active() (iter.Seq[Loan], error) {
	all, err := l.loans.Load()
	if err != nil {
		return nil, err
	}
	active := slices.DeleteFunc(slices.Clone(all), func(ln Loan) bool {
		return ln.Status != StatusActive
	})
	return slices.Values(active), nil
}

// All returns every loan ever created, in insertion order.
func (l *Ledger) All() (iter.Seq[Loan], error) {
	all, err := l.loans.Load()
	if err != nil {
		return nil, err
	}
	return slices.Values(all), nil
}
