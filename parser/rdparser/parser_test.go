package rdparser_test

import (
	"io"
	"math"
	"strings"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vandycarlos/tiny-lang/lisp"
	"github.com/vandycarlos/tiny-lang/parser/internal/interntoken"
	"github.com/vandycarlos/tiny-lang/parser/rdparser"
	"github.com/vandycarlos/tiny-lang/tinytest"
)

const testName = "_test_.tiny"

func requireRead(t *testing.T, p *rdparser.Parser, expect *lisp.LVal) *lisp.LVal {
	t.Helper()
	v, err := p.Read()
	require.NoError(t, err)
	require.True(t, lisp.Equal(expect, v), "expected %v (got %v)", expect, v)
	return v
}

func requireEOF(t *testing.T, p *rdparser.Parser) {
	t.Helper()
	v, err := p.Read()
	require.Equal(t, io.EOF, err, "unexpected form: %v", v)
}

func requireReadError(t *testing.T, p *rdparser.Parser, expect *rdparser.ReadError) {
	t.Helper()
	v, err := p.Read()
	require.Nil(t, v)
	require.IsType(t, &rdparser.ReadError{}, err)
	assert.Equal(t, expect, err)
}

func TestReadEmpty(t *testing.T) {
	p := rdparser.New(testName, "")
	requireEOF(t, p)
	requireEOF(t, p)

	p = rdparser.New(testName, "  \n\t ; nothing here\n;; or here")
	requireEOF(t, p)
}

func TestReadIntegers(t *testing.T) {
	p := rdparser.New(testName, "0 -0 +0 +1234 1234 -1234 +9223372036854775807 -9223372036854775808")
	requireRead(t, p, lisp.Int(0))
	requireRead(t, p, lisp.Int(0))
	requireRead(t, p, lisp.Int(0))
	requireRead(t, p, lisp.Int(1234))
	requireRead(t, p, lisp.Int(1234))
	requireRead(t, p, lisp.Int(-1234))
	requireRead(t, p, lisp.Int(math.MaxInt64))
	requireRead(t, p, lisp.Int(math.MinInt64))
	requireEOF(t, p)
}

func TestReadIntegerOverflow(t *testing.T) {
	p := rdparser.New(testName, "9223372036854775808")
	requireReadError(t, p, &rdparser.ReadError{
		Name:    testName,
		Start:   0,
		End:     19,
		Message: "integer literal overflows int64",
		Kind:    rdparser.ErrIntOverflow,
		Line:    1,
		Col:     1,
	})

	p = rdparser.New(testName, " +9223372036854775808")
	requireReadError(t, p, &rdparser.ReadError{
		Name:    testName,
		Start:   2,
		End:     21,
		Message: "integer literal overflows int64",
		Kind:    rdparser.ErrIntOverflow,
		Line:    1,
		Col:     3,
	})
}

func TestReadFloats(t *testing.T) {
	p := rdparser.New(testName, "0. 0.0 -0.0 +0.0 1.23 +1.23 -1.23 0.125")
	requireRead(t, p, lisp.Float(0.0))
	requireRead(t, p, lisp.Float(0.0))
	requireRead(t, p, lisp.Float(0.0))
	requireRead(t, p, lisp.Float(0.0))
	requireRead(t, p, lisp.Float(1.23))
	requireRead(t, p, lisp.Float(1.23))
	requireRead(t, p, lisp.Float(-1.23))
	requireRead(t, p, lisp.Float(0.125))
	requireEOF(t, p)

	p = rdparser.New(testName, "1"+strings.Repeat("0", 400)+".")
	requireRead(t, p, lisp.Float(math.Inf(1)))
	requireEOF(t, p)
}

func TestReadRationals(t *testing.T) {
	p := rdparser.New(testName, "1/2 2/4 -1/2 +3/4 1/0")
	requireRead(t, p, lisp.Rational(1, 2))
	v := requireRead(t, p, lisp.Rational(2, 4))
	assert.Equal(t, lisp.NewRatio(2, 4), v.Ratio, "ratios are not simplified")
	requireRead(t, p, lisp.Rational(-1, 2))
	requireRead(t, p, lisp.Rational(3, 4))
	requireRead(t, p, lisp.Rational(1, 0))
	requireEOF(t, p)

	p = rdparser.New(testName, "1/")
	requireReadError(t, p, &rdparser.ReadError{
		Name:    testName,
		Start:   0,
		End:     2,
		Message: "invalid rational",
		Kind:    rdparser.ErrInvalidRational,
		Line:    1,
		Col:     1,
	})

	p = rdparser.New(testName, "(1/99999999999999999999)")
	requireReadError(t, p, &rdparser.ReadError{
		Name:    testName,
		Start:   1,
		End:     23,
		Message: "invalid rational",
		Kind:    rdparser.ErrInvalidRational,
		Line:    1,
		Col:     2,
	})
}

func TestReadStrings(t *testing.T) {
	p := rdparser.New(testName, `
"foo"
"bar"
"baz
quux"
"\t\r\n\\\""
""
"λ"
`)
	requireRead(t, p, lisp.String("foo"))
	requireRead(t, p, lisp.String("bar"))
	requireRead(t, p, lisp.String("baz\nquux"))
	requireRead(t, p, lisp.String("\t\r\n\\\""))
	requireRead(t, p, lisp.String(""))
	requireRead(t, p, lisp.String("λ"))
	requireEOF(t, p)
}

func TestReadStringErrors(t *testing.T) {
	p := rdparser.New(testName, "\"foo\\x\"")
	requireReadError(t, p, &rdparser.ReadError{
		Name:    testName,
		Start:   4,
		End:     6,
		Message: "invalid string escape `\\x`",
		Kind:    rdparser.ErrInvalidEscape,
		Line:    1,
		Col:     5,
	})

	p = rdparser.New(testName, "   \"foo")
	requireReadError(t, p, &rdparser.ReadError{
		Name:    testName,
		Start:   3,
		End:     7,
		Message: "expected closing `\"`, found EOF",
		Kind:    rdparser.ErrUnterminatedString,
		Line:    1,
		Col:     4,
	})

	p = rdparser.New(testName, "\"abc\\")
	requireReadError(t, p, &rdparser.ReadError{
		Name:    testName,
		Start:   4,
		End:     5,
		Message: "unterminated escape sequence",
		Kind:    rdparser.ErrUnterminatedEscape,
		Line:    1,
		Col:     5,
	})
}

func TestReadSymbols(t *testing.T) {
	p := rdparser.New(testName, `
foo
+foo
-foo
.foo
.*+!-_?$%&=<>:#123
+
-
namespaced/symbol
/
|a|b'c\d~e^f@g`+"`h"+`
`)
	requireRead(t, p, lisp.Symbol("foo"))
	requireRead(t, p, lisp.Symbol("+foo"))
	requireRead(t, p, lisp.Symbol("-foo"))
	requireRead(t, p, lisp.Symbol(".foo"))
	requireRead(t, p, lisp.Symbol(".*+!-_?$%&=<>:#123"))
	requireRead(t, p, lisp.Symbol("+"))
	requireRead(t, p, lisp.Symbol("-"))
	requireRead(t, p, lisp.Symbol("namespaced/symbol"))
	requireRead(t, p, lisp.Symbol("/"))
	requireRead(t, p, lisp.Symbol("|a|b'c\\d~e^f@g`h"))
	requireEOF(t, p)
}

func TestReadKeywords(t *testing.T) {
	p := rdparser.New(testName, `
:foo
:+foo
:-foo
:.foo
:.*+!-_?$%&=<>:#123
:+
:-
:namespaced/keyword
:/
:
`)
	requireRead(t, p, lisp.Keyword("foo"))
	requireRead(t, p, lisp.Keyword("+foo"))
	requireRead(t, p, lisp.Keyword("-foo"))
	requireRead(t, p, lisp.Keyword(".foo"))
	requireRead(t, p, lisp.Keyword(".*+!-_?$%&=<>:#123"))
	requireRead(t, p, lisp.Keyword("+"))
	requireRead(t, p, lisp.Keyword("-"))
	requireRead(t, p, lisp.Keyword("namespaced/keyword"))
	requireRead(t, p, lisp.Keyword("/"))
	requireRead(t, p, lisp.Keyword(""))
	requireEOF(t, p)
}

func TestReadCommas(t *testing.T) {
	p := rdparser.New(testName, ",, true ,false,")
	requireRead(t, p, lisp.Symbol(",,"))
	requireRead(t, p, lisp.Symbol("true"))
	requireRead(t, p, lisp.Symbol(",false,"))
	requireEOF(t, p)
}

func TestReadLists(t *testing.T) {
	p := rdparser.New(testName, "() (1 2 3) (true, false, nil) (((\"foo\" \"bar\")))")
	requireRead(t, p, lisp.Paren())
	requireRead(t, p, lisp.Paren(lisp.Int(1), lisp.Int(2), lisp.Int(3)))
	requireRead(t, p, lisp.Paren(
		lisp.Symbol("true,"),
		lisp.Symbol("false,"),
		lisp.Symbol("nil"),
	))
	requireRead(t, p, lisp.Paren(lisp.Paren(lisp.Paren(
		lisp.String("foo"),
		lisp.String("bar"),
	))))
	requireEOF(t, p)

	p = rdparser.New(testName, "( (  1 2 3")
	requireReadError(t, p, &rdparser.ReadError{
		Name:    testName,
		Start:   2,
		End:     10,
		Message: "unclosed `(`",
		Kind:    rdparser.ErrUnclosedList,
		Line:    1,
		Col:     3,
	})
}

func TestReadVectors(t *testing.T) {
	p := rdparser.New(testName, "[] [1 2 3] [true, false, nil]\n         [[[\"foo\" \"bar\"]]]")
	requireRead(t, p, lisp.Bracket())
	requireRead(t, p, lisp.Bracket(lisp.Int(1), lisp.Int(2), lisp.Int(3)))
	requireRead(t, p, lisp.Bracket(
		lisp.Symbol("true,"),
		lisp.Symbol("false,"),
		lisp.Symbol("nil"),
	))
	requireRead(t, p, lisp.Bracket(lisp.Bracket(lisp.Bracket(
		lisp.String("foo"),
		lisp.String("bar"),
	))))
	requireEOF(t, p)

	p = rdparser.New(testName, "[ [  1 2 3")
	requireReadError(t, p, &rdparser.ReadError{
		Name:    testName,
		Start:   2,
		End:     10,
		Message: "unclosed `[`",
		Kind:    rdparser.ErrUnclosedList,
		Line:    1,
		Col:     3,
	})
}

func TestReadBraces(t *testing.T) {
	p := rdparser.New(testName, "{} {:a 1 :b} {(x) [y]}")
	requireRead(t, p, lisp.Brace())
	requireRead(t, p, lisp.Brace(lisp.Keyword("a"), lisp.Int(1), lisp.Keyword("b")))
	requireRead(t, p, lisp.Brace(lisp.Paren(lisp.Symbol("x")), lisp.Bracket(lisp.Symbol("y"))))
	requireEOF(t, p)
}

func TestComments(t *testing.T) {
	p := rdparser.New(testName, `
        ; 0
        ;; ;
        0
        --;0
        +0
        [;[]
        ]
        {;}
        }
    `)
	requireRead(t, p, lisp.Int(0))
	requireRead(t, p, lisp.Symbol("--"))
	requireRead(t, p, lisp.Int(0))
	requireRead(t, p, lisp.Bracket())
	requireRead(t, p, lisp.Brace())
	requireEOF(t, p)
}

func TestSignDisambiguation(t *testing.T) {
	p := rdparser.New(testName, "(+) [- 1] {+\t-\n+}")
	requireRead(t, p, lisp.Paren(lisp.Symbol("+")))
	requireRead(t, p, lisp.Bracket(lisp.Symbol("-"), lisp.Int(1)))
	requireRead(t, p, lisp.Brace(lisp.Symbol("+"), lisp.Symbol("-"), lisp.Symbol("+")))
	requireEOF(t, p)

	for _, src := range []string{"+(", "-\"x\"", "+;", "-[", "+λ"} {
		p = rdparser.New(testName, src)
		_, c := utf8First(src[1:])
		expect := &rdparser.ReadError{
			Name:    testName,
			Start:   0,
			End:     0,
			Message: "unexpected char '" + c + "'",
			Kind:    rdparser.ErrUnexpectedChar,
			Line:    1,
			Col:     1,
		}
		requireReadError(t, p, expect)
		// the sign is not consumed
		assert.Equal(t, 0, p.Offset(), "source %q", src)
		requireReadError(t, p, expect)
	}
}

func utf8First(s string) (rune, string) {
	for _, c := range s {
		return c, string(c)
	}
	return 0, ""
}

func TestUnexpectedChar(t *testing.T) {
	p := rdparser.New(testName, "(]")
	requireReadError(t, p, &rdparser.ReadError{
		Name:    testName,
		Start:   1,
		End:     1,
		Message: "unexpected char ']'",
		Kind:    rdparser.ErrUnexpectedChar,
		Line:    1,
		Col:     2,
	})

	p = rdparser.New(testName, "1\n  )")
	requireRead(t, p, lisp.Int(1))
	expect := &rdparser.ReadError{
		Name:    testName,
		Start:   4,
		End:     4,
		Message: "unexpected char ')'",
		Kind:    rdparser.ErrUnexpectedChar,
		Line:    2,
		Col:     3,
	}
	requireReadError(t, p, expect)
	// the cursor does not move past the offending character
	requireReadError(t, p, expect)
	assert.Equal(t, 4, p.Offset())
}

func TestSourceLocations(t *testing.T) {
	p := rdparser.New(testName, "  (a\n  :kw) +5")
	v := requireRead(t, p, lisp.Paren(lisp.Symbol("a"), lisp.Keyword("kw")))
	require.NotNil(t, v.Source)
	assert.Equal(t, testName, v.Source.File)
	assert.Equal(t, 2, v.Source.Pos)
	assert.Equal(t, 11, v.Source.End)
	assert.Equal(t, 1, v.Source.Line)
	assert.Equal(t, 3, v.Source.Col)

	kw := v.Cells[1]
	assert.Equal(t, 7, kw.Source.Pos)
	assert.Equal(t, 10, kw.Source.End)
	assert.Equal(t, 2, kw.Source.Line)
	assert.Equal(t, 3, kw.Source.Col)

	n := requireRead(t, p, lisp.Int(5))
	assert.Equal(t, 12, n.Source.Pos)
	assert.Equal(t, 14, n.Source.End)
	requireEOF(t, p)
}

func TestReadLongLine(t *testing.T) {
	const n = 200000
	begin := time.Now()
	forms, err := rdparser.New(testName, strings.Repeat("1 ", n)).ParseProgram()
	elapsed := time.Since(begin)
	require.NoError(t, err)
	require.Len(t, forms, n)
	last := forms[n-1].Source
	assert.Equal(t, 1, last.Line)
	assert.Equal(t, 2*(n-1)+1, last.Col)
	assert.Less(t, elapsed, 5*time.Second, "reading one long line took %v", elapsed)
}

func TestMaxDepth(t *testing.T) {
	p := rdparser.New(testName, "((()))", rdparser.WithMaxDepth(2))
	requireReadError(t, p, &rdparser.ReadError{
		Name:    testName,
		Start:   2,
		End:     2,
		Message: "maximum nesting depth exceeded",
		Kind:    rdparser.ErrNestingDepth,
		Line:    1,
		Col:     3,
	})

	p = rdparser.New(testName, "((()))", rdparser.WithMaxDepth(3))
	requireRead(t, p, lisp.Paren(lisp.Paren(lisp.Paren())))

	deep := strings.Repeat("[", rdparser.DefaultMaxDepth+1)
	_, err := rdparser.New(testName, deep).Read()
	if assert.IsType(t, &rdparser.ReadError{}, err) {
		assert.Equal(t, rdparser.ErrNestingDepth, err.(*rdparser.ReadError).Kind)
		assert.Equal(t, rdparser.DefaultMaxDepth, err.(*rdparser.ReadError).Start)
	}

	deep = strings.Repeat("(", 200) + strings.Repeat(")", 200)
	_, err = rdparser.New(testName, deep, rdparser.WithMaxDepth(0)).Read()
	assert.NoError(t, err)
}

func TestInternTable(t *testing.T) {
	tab := interntoken.NewTable()
	a, err := rdparser.New("a", "foo", rdparser.WithInternTable(tab)).Read()
	require.NoError(t, err)
	b, err := rdparser.New("b", "(:foo)", rdparser.WithInternTable(tab)).Read()
	require.NoError(t, err)
	assert.Equal(t, unsafe.StringData(a.Str), unsafe.StringData(b.Cells[0].Str))
	assert.Equal(t, 1, tab.Len())
}

func TestParseProgram(t *testing.T) {
	p := rdparser.New(testName, "1 (2) \"3\"")
	forms, err := p.ParseProgram()
	require.NoError(t, err)
	assert.Equal(t, `1 (2) "3"`, tinytest.FormatResult(forms))

	p = rdparser.New(testName, "1 (2) }")
	forms, err = p.ParseProgram()
	assert.EqualError(t, err, testName+":1:7: unexpected char '}'")
	assert.Equal(t, `1 (2)`, tinytest.FormatResult(forms))
}

func TestReadErrorString(t *testing.T) {
	err := &rdparser.ReadError{Name: "f", Start: 4, End: 6, Message: "oops"}
	assert.Equal(t, "f[4:6]: oops", err.Error())
	err.Line, err.Col = 2, 3
	assert.Equal(t, "f:2:3: oops", err.Error())
}

func TestReadErrorIncomplete(t *testing.T) {
	incomplete := map[rdparser.ErrorKind]bool{
		rdparser.ErrUnexpectedChar:     false,
		rdparser.ErrInvalidRational:    false,
		rdparser.ErrInvalidFloat:       false,
		rdparser.ErrIntOverflow:        false,
		rdparser.ErrInvalidEscape:      false,
		rdparser.ErrUnterminatedString: true,
		rdparser.ErrUnterminatedEscape: true,
		rdparser.ErrUnclosedList:       true,
		rdparser.ErrNestingDepth:       false,
	}
	for kind, ok := range incomplete {
		err := &rdparser.ReadError{Kind: kind}
		assert.Equal(t, ok, err.Incomplete(), "kind %v", kind)
	}
	assert.Equal(t, "unclosed-list", rdparser.ErrUnclosedList.String())
	assert.Equal(t, "invalid", rdparser.ErrorKind(99).String())
}

func TestReadSuite(t *testing.T) {
	tests := tinytest.TestSuite{
		{"integers", tinytest.TestSequence{
			{"+9223372036854775807", "9223372036854775807", ""},
			{"-9223372036854775808", "-9223372036854775808", ""},
			{"-9223372036854775809", "", "0:20: integer literal overflows int64"},
			{"12abc", "12 abc", ""},
		}},
		{"floats", tinytest.TestSequence{
			{"0.", "0.0", ""},
			{"0.0 -0.0 +0.0", "0.0 -0.0 0.0", ""},
			{"1.5e3", "1.5 e3", ""},
		}},
		{"rationals", tinytest.TestSequence{
			{"1/2", "1/2", ""},
			{"2/4", "2/4", ""},
			{"1/2/3", "1/2 / 3", ""},
			{"1/-2", "", "0:2: invalid rational"},
		}},
		{"symbols", tinytest.TestSequence{
			{"+ -", "+ -", ""},
			{"+foo -foo", "+foo -foo", ""},
			{"+0 -0", "0 0", ""},
			{"foo/bar", "foo/bar", ""},
			{"--;0\n+0", "-- 0", ""},
			{"a\"b\"", `a "b"`, ""},
		}},
		{"strings", tinytest.TestSequence{
			{`"\t\r\n\\\""`, `"\t\r\n\\\""`, ""},
			{`"abc`, "", "0:4: expected closing `\"`, found EOF"},
			{`x "abc\`, "x", "6:7: unterminated escape sequence"},
			{`"\a"`, "", "1:3: invalid string escape `\\a`"},
		}},
		{"lists", tinytest.TestSequence{
			{"( (  1 2 3", "", "2:10: unclosed `(`"},
			{"{1 2 3}", "{1 2 3}", ""},
			{"(a [b {c}])", "(a [b {c}])", ""},
			{"(a]", "", "2:2: unexpected char ']'"},
			{"[a)", "", "2:2: unexpected char ')'"},
			{"{", "", "0:1: unclosed `{`"},
			{"(1 \"x)", "", "3:6: expected closing `\"`, found EOF"},
		}},
		{"misc", tinytest.TestSequence{
			{"", "", ""},
			{"; only a comment", "", ""},
			{"1 λ 2", "1", "2:2: unexpected char 'λ'"},
			{"\x00", "", "0:0: unexpected char '\x00'"},
		}},
	}
	tinytest.RunTestSuite(t, tests)
}
