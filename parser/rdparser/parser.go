package rdparser

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vandycarlos/tiny-lang/lisp"
	"github.com/vandycarlos/tiny-lang/parser/internal/interntoken"
	"github.com/vandycarlos/tiny-lang/parser/lexer"
	"github.com/vandycarlos/tiny-lang/parser/token"
)

// Parser reads forms from a source text.  Parser looks at one character
// (occasionally two) beyond its cursor to decide how to read the next form.
//
// Parser does not guarantee progress after an error.  When Read fails on a
// character that cannot begin a form the cursor is left on that character
// and calling Read again returns the same error.  Callers stop reading after
// the first error.
type Parser struct {
	src      *token.Scanner
	intern   *interntoken.Table
	maxDepth int
	depth    int
}

// New initializes and returns a new Parser that reads the source text named
// name.
func New(name string, text string, config ...Config) *Parser {
	p := &Parser{
		src:      token.NewScanner(name, text),
		maxDepth: DefaultMaxDepth,
	}
	for _, fn := range config {
		fn(p)
	}
	return p
}

// Offset returns the byte offset of the cursor.
func (p *Parser) Offset() int {
	return p.src.Pos()
}

// ParseProgram reads forms until the end of the source.  If an error is
// encountered ParseProgram returns the forms read before it along with the
// error.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	for {
		expr, err := p.Read()
		if err == io.EOF {
			return exprs, nil
		}
		if err != nil {
			return exprs, err
		}
		exprs = append(exprs, expr)
	}
}

// Read reads one form and advances the cursor past it.  Read returns io.EOF
// when only whitespace and comments remain.  Any other error is a
// *ReadError.
func (p *Parser) Read() (*lisp.LVal, error) {
	p.skipWhitespace()
	c, ok := p.src.Peek()
	if !ok {
		return nil, io.EOF
	}
	start := p.src.LocStart()
	switch lexer.Classify(c) {
	case token.NUMBER:
		return p.readNumber(start)
	case token.SIGN:
		return p.readNumberOrSymbol(start, c)
	case token.STRING:
		return p.readString(start)
	case token.KEYWORD:
		return p.readKeyword(start)
	case token.PAREN_L, token.BRACKET_L, token.BRACE_L:
		return p.readList(start, c)
	case token.SYMBOL:
		return p.readSymbol(start)
	case token.SLASH:
		p.src.ScanRune()
		return p.form(start, lisp.Symbol("/")), nil
	default:
		return nil, p.errorf(ErrUnexpectedChar, start.Pos, start.Pos, "unexpected char '%c'", c)
	}
}

func (p *Parser) readNumber(start *token.Location) (*lisp.LVal, error) {
	end := p.src.ScanWhile(lexer.IsDigit)
	return p.readNumberRest(start, start.Pos, end)
}

func (p *Parser) readSymbol(start *token.Location) (*lisp.LVal, error) {
	p.src.ScanRune()
	end := p.src.ScanWhile(lexer.IsSymbolTail)
	return p.form(start, lisp.Symbol(p.name(start.Pos, end))), nil
}

func (p *Parser) readKeyword(start *token.Location) (*lisp.LVal, error) {
	p.src.ScanRune()
	end := p.src.ScanWhile(lexer.IsSymbolTail)
	return p.form(start, lisp.Keyword(p.name(start.Pos+1, end))), nil
}

// readNumberOrSymbol looks past the sign at the cursor to decide what it
// begins.  The sign is left unconsumed when the following character is
// unexpected.
func (p *Parser) readNumberOrSymbol(start *token.Location, sign rune) (*lisp.LVal, error) {
	c, ok := p.src.Peek2()
	switch {
	case ok && lexer.IsDigit(c):
		p.src.ScanRune()
		// numbers never retain a leading '+'
		litStart := start.Pos
		if sign == '+' {
			litStart++
		}
		end := p.src.ScanWhile(lexer.IsDigit)
		return p.readNumberRest(start, litStart, end)
	case ok && lexer.IsSymbolTail(c):
		p.src.ScanRune()
		end := p.src.ScanWhile(lexer.IsSymbolTail)
		return p.form(start, lisp.Symbol(p.name(start.Pos, end))), nil
	case !ok || lexer.IsSpace(c) || lexer.IsClose(c):
		p.src.ScanRune()
		return p.form(start, lisp.Symbol(p.name(start.Pos, p.src.Pos()))), nil
	default:
		return nil, p.errorf(ErrUnexpectedChar, start.Pos, start.Pos, "unexpected char '%c'", c)
	}
}

// readNumberRest reads whatever follows the leading digits of a number
// literal.  The literal text begins at litStart, which excludes any '+'
// sign, and its digits end at end.
func (p *Parser) readNumberRest(start *token.Location, litStart int, end int) (*lisp.LVal, error) {
	c, ok := p.src.Peek()
	switch {
	case ok && c == '.':
		p.src.ScanRune()
		end = p.src.ScanWhile(lexer.IsDigit)
		text := p.src.Slice(litStart, end)
		x, err := strconv.ParseFloat(text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, p.errorf(ErrInvalidFloat, litStart, end, "invalid float literal: %s", text)
		}
		return p.form(start, lisp.Float(x)), nil
	case ok && c == '/':
		p.src.ScanRune()
		end = p.src.ScanWhile(lexer.IsDigit)
		num, denom, err := parseRatio(p.src.Slice(litStart, end))
		if err != nil {
			return nil, p.errorf(ErrInvalidRational, litStart, end, "invalid rational")
		}
		return p.form(start, lisp.Rational(num, denom)), nil
	default:
		x, err := strconv.ParseInt(p.src.Slice(litStart, end), 10, 64)
		if err != nil {
			return nil, p.errorf(ErrIntOverflow, litStart, end, "integer literal overflows int64")
		}
		return p.form(start, lisp.Int(x)), nil
	}
}

func (p *Parser) readString(start *token.Location) (*lisp.LVal, error) {
	p.src.ScanRune()
	var buf strings.Builder
	for {
		pos := p.src.Pos()
		c, ok := p.src.Peek()
		if !ok {
			return nil, p.errorf(ErrUnterminatedString, start.Pos, p.src.Len(), "expected closing `\"`, found EOF")
		}
		p.src.ScanRune()
		switch c {
		case '"':
			return p.form(start, lisp.String(buf.String())), nil
		case '\\':
			esc, ok := p.src.Peek()
			if !ok {
				return nil, p.errorf(ErrUnterminatedEscape, pos, p.src.Len(), "unterminated escape sequence")
			}
			p.src.ScanRune()
			switch esc {
			case 't':
				buf.WriteByte('\t')
			case 'r':
				buf.WriteByte('\r')
			case 'n':
				buf.WriteByte('\n')
			case '\\':
				buf.WriteByte('\\')
			case '"':
				buf.WriteByte('"')
			default:
				return nil, p.errorf(ErrInvalidEscape, pos, p.src.Pos(), "invalid string escape `\\%c`", esc)
			}
		default:
			// copy bytes verbatim, including invalid utf-8
			buf.WriteString(p.src.Slice(pos, p.src.Pos()))
		}
	}
}

func (p *Parser) readList(start *token.Location, open rune) (*lisp.LVal, error) {
	kind, _ := lisp.ListKindOf(open)
	if p.maxDepth > 0 && p.depth >= p.maxDepth {
		return nil, p.errorf(ErrNestingDepth, start.Pos, start.Pos, "maximum nesting depth exceeded")
	}
	p.depth++
	defer func() { p.depth-- }()

	p.src.ScanRune()
	cells := []*lisp.LVal{}
	for {
		p.skipWhitespace()
		c, ok := p.src.Peek()
		if ok && c == kind.Close() {
			p.src.ScanRune()
			return p.form(start, lisp.List(kind, cells...)), nil
		}
		x, err := p.Read()
		if err == io.EOF {
			return nil, p.errorf(ErrUnclosedList, start.Pos, p.src.Len(), "unclosed `%c`", open)
		}
		if err != nil {
			return nil, err
		}
		cells = append(cells, x)
	}
}

func (p *Parser) skipWhitespace() {
	for {
		p.src.ScanWhile(lexer.IsSpace)
		c, ok := p.src.Peek()
		if !ok || c != ';' {
			return
		}
		p.src.ScanWhile(func(c rune) bool { return c != '\n' })
		p.src.ScanRune()
	}
}

// name returns the text between start and end, interned if p has a table.
func (p *Parser) name(start, end int) string {
	return p.intern.Get(p.src.Slice(start, end))
}

// form attaches the span from start to the cursor to v.
func (p *Parser) form(start *token.Location, v *lisp.LVal) *lisp.LVal {
	start.End = p.src.Pos()
	v.Source = start
	return v
}

func (p *Parser) errorf(kind ErrorKind, start, end int, format string, v ...interface{}) *ReadError {
	loc := p.src.LocAt(start, end)
	return &ReadError{
		Name:    p.src.File(),
		Start:   start,
		End:     end,
		Message: fmt.Sprintf(format, v...),
		Kind:    kind,
		Line:    loc.Line,
		Col:     loc.Col,
	}
}

// parseRatio splits text of the form "<int>/<int>" into its numerator and
// denominator.
func parseRatio(text string) (int64, int64, error) {
	parts := strings.SplitN(text, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid rational: %s", text)
	}
	num, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, err
	}
	denom, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return num, denom, nil
}
