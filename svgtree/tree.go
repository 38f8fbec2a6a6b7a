// Provides a lightweight XML tree for SVG documents:
// parsing with a well-formedness check, attribute edition
// and serialization. Namespace prefixes are kept as written
// so that a document round-trips without rewriting.
package svgtree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Node is one of *Element, CharData, Comment, ProcInst or Directive.
type Node interface {
	writeTo(w *strings.Builder)
}

// Element is an XML element. Name.Space holds the prefix
// as written in the source (for instance "xlink"), not a namespace URL.
type Element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []Node
}

type (
	CharData  string
	Comment   string
	ProcInst  struct{ Target, Inst string }
	Directive string
)

// Document is a parsed XML document with exactly one root element.
// Prolog holds the declarations, comments and directives found before
// the root; anything after the root other than whitespace is kept in Epilog.
type Document struct {
	Prolog []Node
	Root   *Element
	Epilog []Node
}

// ParseError marks a document which is not well-formed.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("svgtree: line %d: %s", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError reports whether err (or one of the errors it wraps)
// is a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

var (
	errNoRoot        = errors.New("no root element")
	errSeveralRoots  = errors.New("content after the root element")
	errUnclosed      = errors.New("unexpected end of input, unclosed element")
	errTextOutside   = errors.New("text outside the root element")
	errDuplicateAttr = errors.New("duplicate attribute")
)

// Parse reads the whole document from r.
// Any syntax error is returned as a *ParseError.
func Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	fail := func(err error) (*Document, error) {
		line, _ := decoder.InputPos()
		return nil, &ParseError{Line: line, Err: err}
	}

	doc := new(Document)
	var stack []*Element
	for {
		t, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(err)
		}
		// RawToken does not check element nesting, which is done here
		switch tok := t.(type) {
		case xml.StartElement:
			if len(stack) == 0 && doc.Root != nil {
				return fail(errSeveralRoots)
			}
			el := &Element{Name: tok.Name, Attrs: make([]xml.Attr, 0, len(tok.Attr))}
			for _, a := range tok.Attr {
				if _, has := el.attr(a.Name); has {
					return fail(fmt.Errorf("%w %s", errDuplicateAttr, qualified(a.Name)))
				}
				el.Attrs = append(el.Attrs, a)
			}
			if len(stack) == 0 {
				doc.Root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 0 {
				return fail(fmt.Errorf("unexpected end element </%s>", qualified(tok.Name)))
			}
			if open := stack[len(stack)-1]; open.Name != tok.Name {
				return fail(fmt.Errorf("element <%s> closed by </%s>", qualified(open.Name), qualified(tok.Name)))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(tok)) != "" {
					return fail(errTextOutside)
				}
				continue
			}
			stack[len(stack)-1].appendNode(CharData(tok))
		case xml.Comment:
			doc.add(stack, Comment(tok))
		case xml.ProcInst:
			doc.add(stack, ProcInst{Target: tok.Target, Inst: string(tok.Inst)})
		case xml.Directive:
			doc.add(stack, Directive(tok))
		}
	}
	if len(stack) != 0 {
		return fail(errUnclosed)
	}
	if doc.Root == nil {
		return fail(errNoRoot)
	}
	return doc, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func (doc *Document) add(stack []*Element, n Node) {
	switch {
	case len(stack) != 0:
		stack[len(stack)-1].appendNode(n)
	case doc.Root == nil:
		doc.Prolog = append(doc.Prolog, n)
	default:
		doc.Epilog = append(doc.Epilog, n)
	}
}

func (el *Element) appendNode(n Node) {
	el.Children = append(el.Children, n)
}

func (el *Element) attr(name xml.Name) (int, bool) {
	for i, a := range el.Attrs {
		if a.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Attr returns the value of the un-prefixed attribute name.
func (el *Element) Attr(name string) (string, bool) {
	i, ok := el.attr(xml.Name{Local: name})
	if !ok {
		return "", false
	}
	return el.Attrs[i].Value, true
}

// SetAttr sets the un-prefixed attribute name, adding it
// after the existing ones if absent.
func (el *Element) SetAttr(name, value string) {
	n := xml.Name{Local: name}
	if i, ok := el.attr(n); ok {
		el.Attrs[i].Value = value
		return
	}
	el.Attrs = append(el.Attrs, xml.Attr{Name: n, Value: value})
}

// Elements returns the element children of el.
func (el *Element) Elements() []*Element {
	var out []*Element
	for _, c := range el.Children {
		if e, ok := c.(*Element); ok {
			out = append(out, e)
		}
	}
	return out
}

// Walk calls fn for el and its descendant elements, in document order.
// When fn returns false, the children of the current element are skipped.
func (el *Element) Walk(fn func(*Element) bool) {
	if !fn(el) {
		return
	}
	for _, c := range el.Children {
		if e, ok := c.(*Element); ok {
			e.Walk(fn)
		}
	}
}
