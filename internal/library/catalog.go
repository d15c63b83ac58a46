package library

import (
	"fmt"
	"iter"
	"slices"

	"github.com/pustakahq/pustakactl/internal/store"
)

// Catalog provides inventory operations over the book collection. Deleting a
// book always leaves a trail in the deletion audit log.
type Catalog struct {
	books *store.Store[Book]
	audit *AuditLog
}

// NewCatalog creates a catalog over the given book store and audit log.
func NewCatalog(books *store.Store[Book], audit *AuditLog) *Catalog {
	return &Catalog{books: books, audit: audit}
}

// Add validates and persists a new book, assigning its id and creation time.
func (c *Catalog) Add(p NewBook) (Book, error) {
	if err := p.validate(); err != nil {
		return Book{}, err
	}

	var added Book
	err := c.books.Update(func(books []Book) ([]Book, error) {
		added = Book{
			ID:           store.NextID(books),
			Title:        p.Title,
			Author:       p.Author,
			Publisher:    p.Publisher,
			Year:         p.Year,
			Stock:        p.Stock,
			CreatedAt:    Now(),
			Funding:      p.Funding,
			PurchaseDate: p.PurchaseDate,
			DonorName:    p.DonorName,
			DateReceived: p.DateReceived,
		}
		return append(books, added), nil
	})
	if err != nil {
		return Book{}, err
	}
	return added, nil
}

// Books returns the catalog in insertion order. The sequence is finite and
// can be ranged over more than once.
func (c *Catalog) Books() (iter.Seq[Book], error) {
	books, err := c.books.Load()
	if err != nil {
		return nil, err
	}
	return slices.Values(books), nil
}

// Get returns the book with the given id.
func (c *Catalog) Get(id int) (Book, error) {
	books, err := c.books.Load()
	if err != nil {
		return Book{}, err
	}
	book, ok := store.FindByID(books, id)
	if !ok {
		return Book{}, fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	return book, nil
}

// Delete removes a book and records why. The catalog write happens before
// the audit append; a crash between the two leaves a deletion without a
// trail, which is the accepted failure window of this design.
func (c *Catalog) Delete(id int, reason string) error {
	if reason == "" {
		return fmt.Errorf("deletion reason must not be empty: %w", ErrValidation)
	}

	var deleted Book
	err := c.books.Update(func(books []Book) ([]Book, error) {
		book, ok := store.FindByID(books, id)
		if !ok {
			return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
		}
		deleted = book
		return slices.DeleteFunc(books, func(b Book) bool { return b.ID == id }), nil
	})
	if err != nil {
		return err
	}

	return c.audit.Record(deleted.ID, deleted.Title, reason)
}

// AdjustStock changes a book's stock by delta and returns the updated book.
// The result may never go below zero.
func (c *Catalog) AdjustStock(id, delta int) (Book, error) {
	var updated Book
	err := c.books.Update(func(books []Book) ([]Book, error) {
		for i := range books {
			if books[i].ID != id {
				continue
			}
			if books[i].Stock+delta < 0 {
				return nil, fmt.Errorf("stock of book %d cannot go below zero: %w", id, ErrValidation)
			}
			books[i].Stock += delta
			updated = books[i]
			return books, nil
		}
		return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
	})
	if err != nil {
		return Book{}, err
	}
	return updated, nil
}

// SetCoverImage records the stored cover path for a book.
func (c *Catalog) SetCoverImage(id int, path string) error {
	return c.books.Update(func(books []Book) ([]Book, error) {
		for i := range books {
			if books[i].ID == id {
				books[i].CoverImage = path
				return books, nil
			}
		}
		return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
	})
}
