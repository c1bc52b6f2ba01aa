// Package lexer defines the character classes of the reader's grammar.
package lexer

import (
	"strings"
	"unicode"

	"github.com/vandycarlos/tiny-lang/lisp"
	"github.com/vandycarlos/tiny-lang/parser/token"
)

// miscSymbolRunes are the punctuation characters allowed anywhere in a
// symbol.
const miscSymbolRunes = ".,:*+!-_?$%&=<>@#~^`|'\\"

// IsSpace returns true if c separates forms.
func IsSpace(c rune) bool {
	return unicode.IsSpace(c)
}

// IsDigit returns true if c is an ASCII decimal digit.
func IsDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// IsSymbolHead returns true if c may begin a symbol.
func IsSymbolHead(c rune) bool {
	return isLetter(c) || strings.ContainsRune(miscSymbolRunes, c)
}

// IsSymbolTail returns true if c may continue a symbol or keyword.
func IsSymbolTail(c rune) bool {
	return IsSymbolHead(c) || IsDigit(c) || c == '/'
}

// IsClose returns true if c closes any kind of list.
func IsClose(c rune) bool {
	_, ok := lisp.ListKindOfClose(c)
	return ok
}

// Classify returns the grammar class of a form beginning with c.  Checks are
// ordered: signs and colons are symbol-head characters but are classified
// before symbols.
func Classify(c rune) token.Type {
	switch c {
	case '(':
		return token.PAREN_L
	case ')':
		return token.PAREN_R
	case '[':
		return token.BRACKET_L
	case ']':
		return token.BRACKET_R
	case '{':
		return token.BRACE_L
	case '}':
		return token.BRACE_R
	case '+', '-':
		return token.SIGN
	case '"':
		return token.STRING
	case ':':
		return token.KEYWORD
	case ';':
		return token.COMMENT
	case '/':
		return token.SLASH
	}
	switch {
	case IsDigit(c):
		return token.NUMBER
	case IsSymbolHead(c):
		return token.SYMBOL
	default:
		return token.INVALID
	}
}
