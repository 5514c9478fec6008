// Package xmldump prints the raw token stream of an XML document, one line
// per token. It does not interpret repomd; use it on documents the typed
// decoder rejects.
package xmldump

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Line renders a single token. Whitespace-only text yields "".
func Line(tok xml.Token, depth int) string {
	indent := strings.Repeat("  ", depth)
	switch t := tok.(type) {
	case xml.StartElement:
		var b strings.Builder
		fmt.Fprintf(&b, "%sstart %s", indent, name(t.Name))
		for _, a := range t.Attr {
			fmt.Fprintf(&b, " %s=%q", name(a.Name), a.Value)
		}
		return b.String()
	case xml.EndElement:
		return fmt.Sprintf("%send %s", indent, name(t.Name))
	case xml.CharData:
		s := strings.TrimSpace(string(t))
		if s == "" {
			return ""
		}
		return fmt.Sprintf("%stext %q", indent, s)
	case xml.Comment:
		return fmt.Sprintf("%scomment %q", indent, strings.TrimSpace(string(t)))
	case xml.ProcInst:
		return fmt.Sprintf("%sprocinst %s %q", indent, t.Target, string(t.Inst))
	case xml.Directive:
		return fmt.Sprintf("%sdirective %q", indent, string(t))
	}
	return fmt.Sprintf("%sunknown %T", indent, tok)
}

func name(n xml.Name) string {
	// RawToken leaves the prefix in Space.
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// Dump writes every token of r to w. Tokens read before a syntax error are
// written, then the error is returned.
func Dump(w io.Writer, r io.Reader) error {
	dec := xml.NewDecoder(r)
	// Inspection only: tolerate unbalanced documents.
	dec.Strict = false
	depth := 0
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if _, ok := tok.(xml.EndElement); ok && depth > 0 {
			depth--
		}
		if line := Line(tok, depth); line != "" {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		if _, ok := tok.(xml.StartElement); ok {
			depth++
		}
	}
}
