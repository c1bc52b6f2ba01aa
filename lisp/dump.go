package lisp

import (
	"io"
	"strconv"

	"github.com/vandycarlos/tiny-lang/internal/lfmt"
)

// Dump writes an indented tree describing v to w, one node per line.  Atoms
// are written as their text followed by their type.  Dump returns the number
// of bytes written.
func Dump(w io.Writer, v *LVal) (int, error) {
	iw := lfmt.NewIndentWriter(w, "  ")
	dump(iw, v)
	return iw.N(), iw.Err()
}

func dump(w *lfmt.IndentWriter, v *LVal) {
	switch v.Type {
	case LList:
		w.Linef("%c", v.Kind.Open())
		w.Indent()
		for _, c := range v.Cells {
			dump(w, c)
		}
		w.Dedent()
		w.Linef("%c", v.Kind.Close())
	case LInt:
		w.Linef("'%d' %v", v.Int, v.Type)
	case LFloat:
		w.Linef("'%s' %v", strconv.FormatFloat(v.Float, 'g', -1, 64), v.Type)
	case LRational:
		w.Linef("'%v' %v", v.Ratio, v.Type)
	default:
		w.Linef("'%s' %v", v.Str, v.Type)
	}
}
