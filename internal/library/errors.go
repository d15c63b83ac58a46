package library

import "errors"

// Operation failures the front ends are expected to recover and present.
// Details are wrapped around these sentinels; match with errors.Is.
var (
	// ErrNotFound means a referenced book, member, or active loan id does
	// not exist in its collection.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate means a unique constraint (member NIS) was violated.
	ErrDuplicate = errors.New("already registered")

	// ErrOutOfStock means a borrow was attempted against a book with no
	// copies left.
	ErrOutOfStock = errors.New("out of stock")

	// ErrValidation means the input was missing, malformed, or out of
	// range. Nothing is persisted when validation fails.
	ErrValidation = errors.New("invalid input")
)
