// Package tinytest contains helpers for testing the reader against tables of
// sources and against fixture files.
package tinytest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/vandycarlos/tiny-lang/lisp"
	"github.com/vandycarlos/tiny-lang/parser/rdparser"
)

// GoldenExt is the extension appended to a fixture's path to locate the
// expected dump of the fixture.
const GoldenExt = ".golden"

// TestSequence is a sequence of independent sources and the results of
// reading each source to completion.
type TestSequence []struct {
	Source string // source text
	Result string // forms read, rendered with String and separated by spaces
	Error  string // the error rendered by FormatError, empty if none
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// ReadString reads every form in source using a new Parser.
func ReadString(source string, config ...rdparser.Config) ([]*lisp.LVal, error) {
	return rdparser.New("test", source, config...).ParseProgram()
}

// FormatResult renders forms with String, separated by spaces.
func FormatResult(forms []*lisp.LVal) string {
	s := make([]string, len(forms))
	for i := range forms {
		s[i] = forms[i].String()
	}
	return strings.Join(s, " ")
}

// FormatError renders err as "<start>:<end>: <message>" when it is a
// *rdparser.ReadError.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var rerr *rdparser.ReadError
	if errors.As(err, &rerr) {
		return fmt.Sprintf("%d:%d: %s", rerr.Start, rerr.End, rerr.Message)
	}
	return err.Error()
}

// RunTestSuite reads each source of each TestSequence and checks the forms
// and error produced.
func RunTestSuite(t *testing.T, tests TestSuite) {
	t.Helper()
	for i, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			for j, expr := range test.TestSequence {
				forms, err := ReadString(expr.Source)
				result := FormatResult(forms)
				if result != expr.Result {
					t.Errorf("test %d %q: source %d %q: expected result %s (got %s)", i, test.Name, j, expr.Source, expr.Result, result)
				}
				msg := FormatError(err)
				if msg != expr.Error {
					t.Errorf("test %d %q: source %d %q: expected error %q (got %q)", i, test.Name, j, expr.Source, expr.Error, msg)
				}
			}
		})
	}
}

// DumpProgram reads source and returns the dump of every form read followed
// by a final "Error: " line if reading failed.
func DumpProgram(name string, source []byte) (string, error) {
	forms, err := rdparser.New(name, string(source)).ParseProgram()
	var buf bytes.Buffer
	for _, v := range forms {
		_, werr := lisp.Dump(&buf, v)
		if werr != nil {
			return "", werr
		}
	}
	if err != nil {
		fmt.Fprintf(&buf, "Error: %v\n", err)
	}
	return buf.String(), nil
}

// RunTestFile reads the fixture at path and compares its dump with the
// contents of path+GoldenExt.
func RunTestFile(t *testing.T, path string) {
	t.Helper()
	source, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}
	golden, err := os.ReadFile(path + GoldenExt)
	if err != nil {
		t.Errorf("Unable to read golden file: %v", err)
		return
	}
	dump, err := DumpProgram(path, source)
	if err != nil {
		t.Errorf("Unable to dump forms: %v", err)
		return
	}
	if dump != string(golden) {
		t.Errorf("%s: dump does not match %s%s\n--- expected\n%s--- got\n%s", path, path, GoldenExt, golden, dump)
	}
}

// BenchmarkParse returns a benchmark function that reads the fixture at
// path b.N times.
func BenchmarkParse(path string) func(b *testing.B) {
	return func(b *testing.B) {
		source, err := os.ReadFile(path)
		if err != nil {
			b.Fatalf("Unable to read fixture: %v", err)
		}
		text := string(source)
		b.SetBytes(int64(len(source)))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, err := rdparser.New(path, text).ParseProgram()
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}
