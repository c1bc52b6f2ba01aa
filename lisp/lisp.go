package lisp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/vandycarlos/tiny-lang/parser/token"
)

// LType is the type of an LVal
type LType uint

// Possible LType values
const (
	LInvalid LType = iota
	LInt
	LFloat
	LRational
	LString
	LSymbol
	LKeyword
	LList
)

var ltypeStrings = []string{
	LInvalid:  "INVALID",
	LInt:      "int",
	LFloat:    "float",
	LRational: "rational",
	LString:   "string",
	LSymbol:   "symbol",
	LKeyword:  "keyword",
	LList:     "list",
}

func (t LType) String() string {
	if int(t) >= len(ltypeStrings) {
		return ltypeStrings[LInvalid]
	}
	return ltypeStrings[t]
}

// LVal is a form produced by the reader.  The fields which hold data depend
// on Type.
type LVal struct {
	Type LType

	// Kind distinguishes the delimiters of an LList.
	Kind ListKind

	Int   int64
	Float float64
	Ratio Ratio

	// Str holds the contents of an LString or the name of an LSymbol or
	// LKeyword.  A keyword's name does not include its leading colon.
	Str string

	Cells []*LVal

	// Source is the span of text the value was read from, if known.
	Source *token.Location
}

// Int returns an LVal representing the integer x.
func Int(x int64) *LVal {
	return &LVal{
		Type: LInt,
		Int:  x,
	}
}

// Float returns an LVal representing the floating point number x.
func Float(x float64) *LVal {
	return &LVal{
		Type:  LFloat,
		Float: x,
	}
}

// Rational returns an LVal representing the ratio num/denom.  The ratio is
// stored exactly as given.
func Rational(num, denom int64) *LVal {
	return &LVal{
		Type:  LRational,
		Ratio: NewRatio(num, denom),
	}
}

// String returns an LVal representing the string str.
func String(str string) *LVal {
	return &LVal{
		Type: LString,
		Str:  str,
	}
}

// Symbol returns an LVal representing the symbol s.
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  s,
	}
}

// Keyword returns an LVal representing the keyword :s.
func Keyword(s string) *LVal {
	return &LVal{
		Type: LKeyword,
		Str:  s,
	}
}

// List returns an LList delimited according to kind.
func List(kind ListKind, cells ...*LVal) *LVal {
	return &LVal{
		Type:  LList,
		Kind:  kind,
		Cells: cells,
	}
}

// Paren returns a list delimited by parentheses.
func Paren(cells ...*LVal) *LVal {
	return List(ListParen, cells...)
}

// Bracket returns a list delimited by square brackets.
func Bracket(cells ...*LVal) *LVal {
	return List(ListBracket, cells...)
}

// Brace returns a list delimited by curly braces.
func Brace(cells ...*LVal) *LVal {
	return List(ListBrace, cells...)
}

// Equal returns true if a and b hold the same data.  Source locations are
// not compared.  Floats are compared using ==.
func Equal(a, b *LVal) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case LInt:
		return a.Int == b.Int
	case LFloat:
		return a.Float == b.Float
	case LRational:
		return a.Ratio == b.Ratio
	case LString, LSymbol, LKeyword:
		return a.Str == b.Str
	case LList:
		if a.Kind != b.Kind || len(a.Cells) != len(b.Cells) {
			return false
		}
		for i := range a.Cells {
			if !Equal(a.Cells[i], b.Cells[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String returns source text that reads back as v.
func (v *LVal) String() string {
	switch v.Type {
	case LInt:
		return strconv.FormatInt(v.Int, 10)
	case LFloat:
		return formatFloat(v.Float)
	case LRational:
		return v.Ratio.String()
	case LString:
		return Quote(v.Str)
	case LSymbol:
		return v.Str
	case LKeyword:
		return ":" + v.Str
	case LList:
		return listString(v)
	default:
		return fmt.Sprintf("#<%v>", v.Type)
	}
}

func listString(v *LVal) string {
	var buf bytes.Buffer
	buf.WriteRune(v.Kind.Open())
	for i, c := range v.Cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteRune(v.Kind.Close())
	return buf.String()
}

// formatFloat always includes a decimal point so that a float does not read
// back as an integer.
func formatFloat(x float64) string {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}

// Quote returns str as a string literal using the reader's escape
// sequences.
func Quote(str string) string {
	var buf strings.Builder
	buf.WriteByte('"')
	for i := 0; i < len(str); i++ {
		switch c := str[i]; c {
		case '\t':
			buf.WriteString(`\t`)
		case '\r':
			buf.WriteString(`\r`)
		case '\n':
			buf.WriteString(`\n`)
		case '\\':
			buf.WriteString(`\\`)
		case '"':
			buf.WriteString(`\"`)
		default:
			buf.WriteByte(c)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}
