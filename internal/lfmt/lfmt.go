// Package lfmt contains writers used to render forms for humans.
package lfmt

import (
	"fmt"
	"io"
	"strings"
)

// counter tracks the total number of bytes written across many writes.
type counter struct {
	n int
}

func (c *counter) count(n int, err error) (int, error) {
	c.n += n
	return n, err
}

// N returns the total number of bytes written.
func (c *counter) N() int {
	return c.n
}

// IndentWriter writes lines prefixed by a nesting dependent indentation.  The
// first error returned by the underlying io.Writer is sticky and all later
// writes are skipped.
type IndentWriter struct {
	counter
	w      io.Writer
	unit   string
	depth  int
	prefix string
	err    error
}

// NewIndentWriter wraps w, indenting each nesting level by unit.
func NewIndentWriter(w io.Writer, unit string) *IndentWriter {
	return &IndentWriter{w: w, unit: unit}
}

// Indent increases the nesting depth of subsequent lines.
func (w *IndentWriter) Indent() {
	w.depth++
	w.prefix = strings.Repeat(w.unit, w.depth)
}

// Dedent decreases the nesting depth of subsequent lines.
func (w *IndentWriter) Dedent() {
	if w.depth == 0 {
		return
	}
	w.depth--
	w.prefix = strings.Repeat(w.unit, w.depth)
}

// Depth returns the current nesting depth.
func (w *IndentWriter) Depth() int {
	return w.depth
}

// Linef writes a single indented line.  A trailing newline is added.
func (w *IndentWriter) Linef(format string, v ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = w.count(fmt.Fprintf(w.w, "%s"+format+"\n", append([]interface{}{w.prefix}, v...)...))
}

// Err returns the first error encountered while writing.
func (w *IndentWriter) Err() error {
	return w.err
}
