package lisp

import "io"

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// Read the contents of r and return the sequence of forms that it
	// contains.  Reading stops at the first error, in which case the forms
	// read before the error are returned along with it.
	Read(name string, r io.Reader) ([]*LVal, error)
}
