package token

// Type classifies the character found at the reader's cursor.  The reader
// dispatches on the Type of a single character of lookahead.
type Type uint

// Type constants used by the reader.  A Type names a grammar class, not a
// complete token.
const (
	INVALID Type = iota

	// Atoms
	NUMBER  // leading digit
	SIGN    // '+' or '-', either a number or a symbol
	SYMBOL  // symbol-head character
	SLASH   // '/' on its own
	KEYWORD // ':'
	STRING  // '"'

	COMMENT

	// Delimiters
	PAREN_L
	PAREN_R
	BRACKET_L
	BRACKET_R
	BRACE_L
	BRACE_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID:   "invalid",
		NUMBER:    "number",
		SIGN:      "sign",
		SYMBOL:    "symbol",
		SLASH:     "/",
		KEYWORD:   "keyword",
		STRING:    "string",
		COMMENT:   ";",
		PAREN_L:   "(",
		PAREN_R:   ")",
		BRACKET_L: "[",
		BRACKET_R: "]",
		BRACE_L:   "{",
		BRACE_R:   "}",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Location is a span of source text.  Pos and End are byte offsets into the
// source with End exclusive.
type Location struct {
	File string
	Pos  int
	End  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number in runes (starting at 1 when tracked)
}
