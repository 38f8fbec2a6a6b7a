package svgtree

import (
	"encoding/xml"
	"io"
	"strings"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", `"`, "&quot;",
		"\t", "&#9;", "\n", "&#10;", "\r", "&#13;",
	)
)

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func (el *Element) writeTo(w *strings.Builder) {
	w.WriteByte('<')
	w.WriteString(qualified(el.Name))
	for _, a := range el.Attrs {
		w.WriteByte(' ')
		w.WriteString(qualified(a.Name))
		w.WriteString(`="`)
		attrEscaper.WriteString(w, a.Value)
		w.WriteByte('"')
	}
	if len(el.Children) == 0 {
		w.WriteString("/>")
		return
	}
	w.WriteByte('>')
	for _, c := range el.Children {
		c.writeTo(w)
	}
	w.WriteString("</")
	w.WriteString(qualified(el.Name))
	w.WriteByte('>')
}

func (c CharData) writeTo(w *strings.Builder) { textEscaper.WriteString(w, string(c)) }

func (c Comment) writeTo(w *strings.Builder) {
	w.WriteString("<!--")
	w.WriteString(string(c))
	w.WriteString("-->")
}

func (p ProcInst) writeTo(w *strings.Builder) {
	w.WriteString("<?")
	w.WriteString(p.Target)
	if p.Inst != "" {
		w.WriteByte(' ')
		w.WriteString(p.Inst)
	}
	w.WriteString("?>")
}

func (d Directive) writeTo(w *strings.Builder) {
	w.WriteString("<!")
	w.WriteString(string(d))
	w.WriteByte('>')
}

// String serializes the element and its subtree.
func (el *Element) String() string {
	var b strings.Builder
	el.writeTo(&b)
	return b.String()
}

// String serializes the whole document. Prolog and epilog
// nodes are separated from the root by a new line.
func (doc *Document) String() string {
	var b strings.Builder
	for _, n := range doc.Prolog {
		n.writeTo(&b)
		b.WriteByte('\n')
	}
	doc.Root.writeTo(&b)
	for _, n := range doc.Epilog {
		b.WriteByte('\n')
		n.writeTo(&b)
	}
	return b.String()
}

// WriteTo implements io.WriterTo.
func (doc *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, doc.String())
	return int64(n), err
}
