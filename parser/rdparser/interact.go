package rdparser

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/vandycarlos/tiny-lang/lisp"
	"github.com/vandycarlos/tiny-lang/parser/internal/interntoken"
)

// Interactive implements a parser that is fed source one line at a time.
// Lines are buffered while they hold the beginning of a form that has not
// been closed, so a list or string may span several lines.
type Interactive struct {
	Name   string
	prompt string
	config []Config

	mut     sync.RWMutex
	pending string
}

// NewInteractive initializes and returns a new Interactive parser.  Sources
// are reported as name in errors.  The table used to intern names lives as
// long as the Interactive parser.
func NewInteractive(name string, prompt string, config ...Config) *Interactive {
	tab := interntoken.NewTable()
	return &Interactive{
		Name:   name,
		prompt: prompt,
		config: append([]Config{WithInternTable(tab)}, config...),
	}
}

// Prompt returns the prompt that should be displayed before reading the
// next line.  While a form is incomplete the prompt is blank.
func (p *Interactive) Prompt() string {
	if p.IsParsing() {
		return strings.Repeat(" ", len(p.prompt)) // prompt had better be ascii...
	}
	return p.prompt
}

// IsParsing returns true if p is in the middle of parsing a form.
// IsParsing can be called at any time, potentially by concurrent goroutines or
// when p is nil.
func (p *Interactive) IsParsing() bool {
	if p == nil {
		// definitely not parsing right now
		return false
	}
	p.mut.RLock()
	defer p.mut.RUnlock()
	return p.pending != ""
}

// Reset discards any buffered input.
func (p *Interactive) Reset() {
	p.mut.Lock()
	defer p.mut.Unlock()
	p.pending = ""
}

// Feed appends line to the buffered input and returns the forms it
// completes.  A form left incomplete stays buffered for the next call.  If a
// parse error is encountered the buffered input is discarded so corrected
// source can be entered, and the forms read before the error are returned
// along with it.
func (p *Interactive) Feed(line string) ([]*lisp.LVal, error) {
	p.mut.Lock()
	defer p.mut.Unlock()

	text := p.pending + line + "\n"
	parser := New(p.Name, text, p.config...)
	var forms []*lisp.LVal
	consumed := 0
	for {
		v, err := parser.Read()
		if err == io.EOF {
			p.pending = ""
			return forms, nil
		}
		if err != nil {
			var rerr *ReadError
			if errors.As(err, &rerr) && rerr.Incomplete() {
				p.pending = text[consumed:]
				return forms, nil
			}
			p.pending = ""
			return forms, err
		}
		forms = append(forms, v)
		consumed = parser.Offset()
	}
}
