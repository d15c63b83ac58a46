package store

import "fmt"

// ParseError reports a collection file whose contents could not be decoded.
// The file is left untouched; repair is up to the operator.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
