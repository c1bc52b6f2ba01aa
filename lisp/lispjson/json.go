// Package lispjson renders forms as JSON documents.
package lispjson

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/vandycarlos/tiny-lang/lisp"
)

// DefaultSerializer is the Serializer used by the exported function Dump.
var DefaultSerializer = &Serializer{}

// Dump serializes the structure of v as a JSON formatted byte slice.
func Dump(v *lisp.LVal) ([]byte, error) {
	return DefaultSerializer.Dump(v)
}

// Serializer defines JSON serialization rules for forms.  Each form is an
// object with a "type" member.  Atoms have a "value" member and lists have
// "kind" and "cells" members.
type Serializer struct {
	// Source adds a "source" member holding the span a form was read from.
	Source bool
	// Indent, when non-empty, is used to indent nested objects.
	Indent string
}

// Dump serializes the structure of v as a JSON formatted byte slice.
func (s *Serializer) Dump(v *lisp.LVal) ([]byte, error) {
	x, err := s.dumpInterface(v)
	if err != nil {
		return nil, err
	}
	if s.Indent != "" {
		return json.MarshalIndent(x, "", s.Indent)
	}
	return json.Marshal(x)
}

func (s *Serializer) dumpInterface(v *lisp.LVal) (interface{}, error) {
	m := map[string]interface{}{
		"type": v.Type.String(),
	}
	if s.Source && v.Source != nil {
		m["source"] = map[string]interface{}{
			"file":  v.Source.File,
			"start": v.Source.Pos,
			"end":   v.Source.End,
			"line":  v.Source.Line,
			"col":   v.Source.Col,
		}
	}
	switch v.Type {
	case lisp.LInt:
		m["value"] = v.Int
	case lisp.LFloat:
		// JSON has no representation for infinities or NaN.
		if math.IsInf(v.Float, 0) || math.IsNaN(v.Float) {
			m["value"] = v.String()
		} else {
			m["value"] = v.Float
		}
	case lisp.LRational:
		m["value"] = map[string]int64{
			"num":   v.Ratio.Num,
			"denom": v.Ratio.Denom,
		}
	case lisp.LString, lisp.LSymbol, lisp.LKeyword:
		m["value"] = v.Str
	case lisp.LList:
		cells := make([]interface{}, len(v.Cells))
		for i, c := range v.Cells {
			var err error
			cells[i], err = s.dumpInterface(c)
			if err != nil {
				return nil, fmt.Errorf("list cell %d: %w", i, err)
			}
		}
		m["kind"] = v.Kind.String()
		m["cells"] = cells
	default:
		return nil, fmt.Errorf("unable to dump form type: %v", v.Type)
	}
	return m, nil
}
