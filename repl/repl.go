// Package repl implements an interactive loop that reads forms from a
// terminal and prints them.
package repl

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"

	"github.com/vandycarlos/tiny-lang/lisp"
	"github.com/vandycarlos/tiny-lang/parser/rdparser"
)

// DefaultHistoryFile is where line history is kept unless WithHistoryFile
// says otherwise.
const DefaultHistoryFile = "./history.txt"

// Renderer writes a form that has been read.
type Renderer func(w io.Writer, v *lisp.LVal) error

// RenderString writes v as source text on its own line.
func RenderString(w io.Writer, v *lisp.LVal) error {
	_, err := fmt.Fprintln(w, v)
	return err
}

// Option customizes a repl.
type Option func(*config)

type config struct {
	history string
	stdin   io.ReadCloser
	stdout  io.Writer
	stderr  io.Writer
	render  Renderer
	reader  []rdparser.Config
}

// WithHistoryFile persists line history to path.  An empty path disables
// history.
func WithHistoryFile(path string) Option {
	return func(c *config) { c.history = path }
}

// WithStdin reads lines from r instead of os.Stdin.
func WithStdin(r io.ReadCloser) Option {
	return func(c *config) { c.stdin = r }
}

// WithStdout writes forms to w instead of os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(c *config) { c.stdout = w }
}

// WithStderr writes errors to w instead of os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(c *config) { c.stderr = w }
}

// WithRenderer prints forms using fn instead of RenderString.
func WithRenderer(fn Renderer) Option {
	return func(c *config) { c.render = fn }
}

// WithReaderConfig configures the parser that reads each line.
func WithReaderConfig(cfgs ...rdparser.Config) Option {
	return func(c *config) { c.reader = append(c.reader, cfgs...) }
}

func newConfig(opts []Option) *config {
	c := &config{
		history: DefaultHistoryFile,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		render:  RenderString,
	}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

// Session holds the state of a repl between lines.
type Session struct {
	parser *rdparser.Interactive
	stdout io.Writer
	stderr io.Writer
	render Renderer
}

// NewSession returns a Session that prints forms read after prompt.
func NewSession(prompt string, opts ...Option) *Session {
	c := newConfig(opts)
	return &Session{
		parser: rdparser.NewInteractive("stdin", prompt, c.reader...),
		stdout: c.stdout,
		stderr: c.stderr,
		render: c.render,
	}
}

// Prompt returns the prompt for the next line.
func (s *Session) Prompt() string {
	return s.parser.Prompt()
}

// Interrupt discards a partially entered form.
func (s *Session) Interrupt() {
	s.parser.Reset()
}

// HandleLine reads line and prints every form it completes.  Parse errors
// are printed and the session continues.  The returned error is only
// non-nil when output could not be written.
func (s *Session) HandleLine(line string) error {
	forms, err := s.parser.Feed(line)
	for _, v := range forms {
		if rerr := s.render(s.stdout, v); rerr != nil {
			return rerr
		}
	}
	if err != nil {
		_, werr := fmt.Fprintf(s.stderr, "Error: %v\n", err)
		return werr
	}
	return nil
}

// RunRepl runs a simple repl until the input is exhausted.
func RunRepl(prompt string, opts ...Option) error {
	c := newConfig(opts)
	session := NewSession(prompt, opts...)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     c.history,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           c.stdin,
		Stdout:          c.stdout,
		Stderr:          c.stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			session.Interrupt()
			rl.SetPrompt(session.Prompt())
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := session.HandleLine(line); err != nil {
			return err
		}
		rl.SetPrompt(session.Prompt())
	}
}
