package lisp

// ListKind identifies the delimiters of a list.  All kinds of lists are
// structurally identical.
type ListKind uint

// Possible ListKind values
const (
	ListParen ListKind = iota
	ListBracket
	ListBrace
)

var listDelims = []struct {
	name        string
	open, close rune
}{
	ListParen:   {"paren", '(', ')'},
	ListBracket: {"bracket", '[', ']'},
	ListBrace:   {"brace", '{', '}'},
}

// ListKindOf returns the kind of list opened by open.
func ListKindOf(open rune) (ListKind, bool) {
	for k, d := range listDelims {
		if d.open == open {
			return ListKind(k), true
		}
	}
	return 0, false
}

// ListKindOfClose returns the kind of list closed by close.
func ListKindOfClose(close rune) (ListKind, bool) {
	for k, d := range listDelims {
		if d.close == close {
			return ListKind(k), true
		}
	}
	return 0, false
}

// Open returns the opening delimiter of k.
func (k ListKind) Open() rune {
	return listDelims[k].open
}

// Close returns the closing delimiter of k.
func (k ListKind) Close() rune {
	return listDelims[k].close
}

func (k ListKind) String() string {
	if int(k) >= len(listDelims) {
		return "INVALID"
	}
	return listDelims[k].name
}
