// Package interntoken deduplicates the names of symbols and keywords read
// from source so that repeated names share storage.
package interntoken

import "sync"

// Table is a set of interned strings.  A nil *Table is valid and interns
// nothing.  Table is safe for concurrent use.
type Table struct {
	mut    sync.RWMutex
	intern map[string]string
}

// NewTable initializes and returns a new empty Table.
func NewTable() *Table {
	return &Table{
		intern: make(map[string]string),
	}
}

// Get returns a string that equals s.
func (tab *Table) Get(s string) string {
	if tab == nil {
		return s
	}
	tab.mut.RLock()
	p, ok := tab.intern[s]
	tab.mut.RUnlock()
	if ok {
		return p
	}
	return tab.insert(s)
}

// Len returns the number of distinct strings in the table.
func (tab *Table) Len() int {
	if tab == nil {
		return 0
	}
	tab.mut.RLock()
	defer tab.mut.RUnlock()
	return len(tab.intern)
}

func (tab *Table) insert(s string) string {
	tab.mut.Lock()
	p, ok := tab.intern[s]
	if !ok {
		// s may be a slice of a larger source text that must not be
		// retained.
		p = string(append([]byte(nil), s...))
		tab.intern[p] = p
	}
	tab.mut.Unlock()
	return p
}
