package rdparser

import (
	"fmt"
	"io"

	"github.com/vandycarlos/tiny-lang/lisp"
	"github.com/vandycarlos/tiny-lang/parser/internal/interntoken"
)

type reader struct {
	config []Config
}

// NewReader returns a lisp.Reader that parses whole sources with a Parser.
// Symbol and keyword names are interned in a table shared by all sources
// the reader reads.
func NewReader(config ...Config) lisp.Reader {
	tab := interntoken.NewTable()
	return &reader{
		config: append([]Config{WithInternTable(tab)}, config...),
	}
}

// Read implements lisp.Reader.  The contents of r are read into memory
// before parsing begins.
func (rd *reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	p := New(name, string(text), rd.config...)
	return p.ParseProgram()
}
