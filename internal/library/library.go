// Package library implements the record keeper's core: book catalog, member
// directory, loan ledger, and the deletion audit log, all over whole-file
// JSON collections.
package library

import (
	"github.com/pustakahq/pustakactl/internal/store"
)

// Paths names the four collection files.
type Paths struct {
	Books       string
	Members     string
	Loans       string
	DeletionLog string
}

// Library bundles the four components over one set of collection files.
type Library struct {
	Catalog *Catalog
	Members *Directory
	Loans   *Ledger
	Audit   *AuditLog

	paths Paths
}

// Open wires up a library over the given collection files. No file is read
// or created until the first operation.
func Open(paths Paths) *Library {
	audit := NewAuditLog(store.New[DeletionEntry](paths.DeletionLog))
	catalog := NewCatalog(store.New[Book](paths.Books), audit)
	members := NewDirectory(store.New[Member](paths.Members))
	loans := NewLedger(store.New[Loan](paths.Loans), catalog, members)

	return &Library{
		Catalog: catalog,
		Members: members,
		Loans:   loans,
		Audit:   audit,
		paths:   paths,
	}
}

// InitFiles creates every collection file that does not exist yet as an
// empty array.
func (l *Library) InitFiles() error {
	if err := store.New[Book](l.paths.Books).Init(); err != nil {
		return err
	}
	if err := store.New[Member](l.paths.Members).Init(); err != nil {
		return err
	}
	if err := store.New[Loan](l.paths.Loans).Init(); err != nil {
		return err
	}
	return store.New[DeletionEntry](l.paths.DeletionLog).Init()
}
