package rdparser

import "github.com/vandycarlos/tiny-lang/parser/internal/interntoken"

// DefaultMaxDepth is the list nesting depth allowed by a Parser unless
// configured otherwise.
const DefaultMaxDepth = 10000

// Config is a function that configures a Parser.
type Config func(p *Parser)

// WithInternTable returns a Config that makes a Parser intern the names of
// symbols and keywords in tab.  Parsers may share a table.
func WithInternTable(tab *interntoken.Table) Config {
	return func(p *Parser) {
		p.intern = tab
	}
}

// WithMaxDepth returns a Config that prevents a Parser from reading lists
// nested more than n deep.  When n is zero nesting depth is not limited and
// deeply nested input can exhaust the goroutine stack.
func WithMaxDepth(n int) Config {
	return func(p *Parser) {
		p.maxDepth = n
	}
}
