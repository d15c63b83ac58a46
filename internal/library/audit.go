package library

import (
	"fmt"
	"iter"
	"slices"

	"github.com/pustakahq/pustakactl/internal/store"
)

// DeletionEntry records one removed book together with the mandatory reason.
// Entries are append-only and never pruned.
type DeletionEntry struct {
	BookID int    `json:"book_id"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

func (e DeletionEntry) RecordID() int { return e.BookID }

// AuditLog is the append-only history of book deletions.
type AuditLog struct {
	entries *store.Store[DeletionEntry]
}

// NewAuditLog creates an audit log over the given entry store.
func NewAuditLog(entries *store.Store[DeletionEntry]) *AuditLog {
	return &AuditLog{entries: entries}
}

// Record appends one deletion entry. The title is the snapshot at deletion
// time; later catalog changes never touch it.
func (a *AuditLog) Record(bookID int, title, reason string) error {
	if reason == "" {
		return fmt.Errorf("deletion reason must not be empty: %w", ErrValidation)
	}
	return a.entries.Update(func(entries []DeletionEntry) ([]DeletionEntry, error) {
		return append(entries, DeletionEntry{BookID: bookID, Title: title, Reason: reason}), nil
	})
}

// Entries returns the full deletion history in insertion order.
func (a *AuditLog) Entries() (iter.Seq[DeletionEntry], error) {
	entries, err := a.entries.Load()
	if err != nil {
		return nil, err
	}
	return slices.Values(entries), nil
}
