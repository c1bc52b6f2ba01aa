package rdparser

import "fmt"

// ErrorKind classifies a ReadError.
type ErrorKind uint

// Possible ErrorKind values
const (
	ErrUnexpectedChar ErrorKind = iota
	ErrInvalidRational
	ErrInvalidFloat
	ErrIntOverflow
	ErrInvalidEscape
	ErrUnterminatedString
	ErrUnterminatedEscape
	ErrUnclosedList
	ErrNestingDepth
)

var errorKindStrings = []string{
	ErrUnexpectedChar:     "unexpected-char",
	ErrInvalidRational:    "invalid-rational",
	ErrInvalidFloat:       "invalid-float",
	ErrIntOverflow:        "integer-overflow",
	ErrInvalidEscape:      "invalid-escape",
	ErrUnterminatedString: "unterminated-string",
	ErrUnterminatedEscape: "unterminated-escape",
	ErrUnclosedList:       "unclosed-list",
	ErrNestingDepth:       "nesting-depth",
}

func (k ErrorKind) String() string {
	if int(k) >= len(errorKindStrings) {
		return "invalid"
	}
	return errorKindStrings[k]
}

// ReadError describes source text that could not be read as a form.  Start
// and End are byte offsets into the source with End exclusive.  Line and Col
// locate Start and are zero when unknown.
type ReadError struct {
	Name    string
	Start   int
	End     int
	Message string
	Kind    ErrorKind
	Line    int
	Col     int
}

func (err *ReadError) Error() string {
	if err.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", err.Name, err.Line, err.Col, err.Message)
	}
	return fmt.Sprintf("%s[%d:%d]: %s", err.Name, err.Start, err.End, err.Message)
}

// Incomplete returns true if err was caused by the source text ending before
// a form was complete.  Appending text to the source may fix the error.
func (err *ReadError) Incomplete() bool {
	switch err.Kind {
	case ErrUnterminatedString, ErrUnterminatedEscape, ErrUnclosedList:
		return true
	default:
		return false
	}
}
