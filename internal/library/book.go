package library

import "fmt"

// FundingSource discriminates how a book was acquired. It selects which of
// the optional acquisition fields are populated.
type FundingSource string

const (
	FundingBudget FundingSource = "institutional-budget"
	FundingDonor  FundingSource = "donor"
)

// Book is one entry in the catalog collection.
type Book struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Publisher string    `json:"publisher"`
	Year      int       `json:"year"`
	Stock     int       `json:"stock"`
	CreatedAt Timestamp `json:"created_at"`

	Funding FundingSource `json:"funding_source,omitempty"`
	// Populated when Funding is institutional-budget.
	PurchaseDate string `json:"purchase_date,omitempty"`
	// Populated when Funding is donor.
	DonorName    string `json:"donor_name,omitempty"`
	DateReceived string `json:"date_received,omitempty"`

	CoverImage string `json:"cover_image,omitempty"`
}

func (b Book) RecordID() int { return b.ID }

// NewBook carries the caller-supplied fields for Catalog.Add. The id and
// creation time are assigned by the catalog.
type NewBook struct {
	Title     string
	Author    string
	Publisher string
	Year      int
	Stock     int

	Funding      FundingSource
	PurchaseDate string
	DonorName    string
	DateReceived string
}

func (p NewBook) validate() error {
	if p.Title == "" {
		return fmt.Errorf("title must not be empty: %w", ErrValidation)
	}
	if p.Stock < 0 {
		return fmt.Errorf("stock must not be negative: %w", ErrValidation)
	}
	if p.Year < 0 || p.Year > 9999 {
		return fmt.Errorf("year must be between 0 and 9999: %w", ErrValidation)
	}
	switch p.Funding {
	case "":
		if p.PurchaseDate != "" || p.DonorName != "" || p.DateReceived != "" {
			return fmt.Errorf("acquisition fields require a funding source: %w", ErrValidation)
		}
	case FundingBudget:
		if p.PurchaseDate == "" {
			return fmt.Errorf("budget-funded books need a purchase date: %w", ErrValidation)
		}
		if p.DonorName != "" || p.DateReceived != "" {
			return fmt.Errorf("donor fields not allowed for budget-funded books: %w", ErrValidation)
		}
	case FundingDonor:
		if p.DonorName == "" || p.DateReceived == "" {
			return fmt.Errorf("donated books need a donor name and date received: %w", ErrValidation)
		}
		if p.PurchaseDate != "" {
			return fmt.Errorf("purchase date not allowed for donated books: %w", ErrValidation)
		}
	default:
		return fmt.Errorf("unknown funding source %q: %w", p.Funding, ErrValidation)
	}
	return nil
}
