package cmd

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"

	"github.com/vandycarlos/tiny-lang/lisp"
	"github.com/vandycarlos/tiny-lang/lisp/lispjson"
	"github.com/vandycarlos/tiny-lang/repl"
)

// Output formats for dumped forms.
const (
	formatTree   = "tree"
	formatString = "string"
	formatJSON   = "json"
	formatSpew   = "spew"
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func renderer(format string) (repl.Renderer, error) {
	switch format {
	case formatTree:
		return renderTree, nil
	case formatString:
		return repl.RenderString, nil
	case formatJSON:
		return renderJSON, nil
	case formatSpew:
		return renderSpew, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func renderTree(w io.Writer, v *lisp.LVal) error {
	_, err := lisp.Dump(w, v)
	return err
}

func renderJSON(w io.Writer, v *lisp.LVal) error {
	b, err := lispjson.Dump(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func renderSpew(w io.Writer, v *lisp.LVal) error {
	spewConfig.Fdump(w, v)
	return nil
}
