// Package parser reads source text written in the tiny notation.
//
//	form     := <number> | <string> | <keyword> | <symbol> | <list>
//	list     := '(' <form>* ')' | '[' <form>* ']' | '{' <form>* '}'
//	number   := /[+-]?[0-9]+/ ( '.' /[0-9]*/ | '/' /[0-9]+/ )?
//	string   := '"' ( /[^"\\]/ | '\' /[trn\\"]/ )* '"'
//	keyword  := ':' <tail>*
//	symbol   := <head> <tail>* | '/' | /[+-]/ <tail>*
//	head     := /[a-zA-Z]/ | /[.,:*+!\-_?$%&=<>@#~^`|'\\]/
//	tail     := <head> | /[0-9]/ | '/'
//	comment  := ';' /[^\n]*/ '\n'
//
// Forms are separated by whitespace and comments.  A sign followed by a digit
// begins a number.  A sign followed by whitespace, a list closer, or the end of
// the source is a symbol by itself.
package parser

import (
	"io"

	"github.com/vandycarlos/tiny-lang/lisp"
	"github.com/vandycarlos/tiny-lang/parser/rdparser"
)

// NewReader returns a lisp.Reader that reads whole sources.
func NewReader(config ...rdparser.Config) lisp.Reader {
	return rdparser.NewReader(config...)
}

// ReadString reads every form in text.  If an error is encountered the
// forms read before it are returned along with the error.
func ReadString(name string, text string, config ...rdparser.Config) ([]*lisp.LVal, error) {
	return rdparser.New(name, text, config...).ParseProgram()
}

// ReadBytes is like ReadString but reads from a byte slice.
func ReadBytes(name string, text []byte, config ...rdparser.Config) ([]*lisp.LVal, error) {
	return ReadString(name, string(text), config...)
}

// Read reads every form from r.
func Read(name string, r io.Reader, config ...rdparser.Config) ([]*lisp.LVal, error) {
	return NewReader(config...).Read(name, r)
}

// MustReadString is like ReadString but panics on error.  It is intended for
// sources known to be valid, such as literals in tests.
func MustReadString(text string) []*lisp.LVal {
	forms, err := ReadString("_literal_.tiny", text)
	if err != nil {
		panic(err)
	}
	return forms
}
