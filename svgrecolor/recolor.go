// Rewrites the paint attributes of SVG icons.
//
// SetRootFill only touches the fill of the root element, which is
// enough for single color brand marks. RecolorAll also repaints the
// descendants, leaving "none" paints and the content of
// non paintable containers (defs, style, script) untouched.
package svgrecolor

import (
	"fmt"

	"github.com/benoitkugler/iconkit/svgtree"
)

// containers whose content is never repainted
var skipped = map[string]bool{
	"defs":   true,
	"style":  true,
	"script": true,
}

const none = "none"

// SetRootFill sets the fill attribute of the root element of svg to color
// and returns the serialized root element.
// An empty color returns svg unchanged. Malformed markup is reported as a
// *svgtree.ParseError.
func SetRootFill(svg, color string) (string, error) {
	if color == "" {
		return svg, nil
	}
	doc, err := svgtree.ParseString(svg)
	if err != nil {
		return "", fmt.Errorf("svgrecolor: invalid svg: %w", err)
	}
	doc.Root.SetAttr("fill", color)
	return doc.Root.String(), nil
}

// RecolorAll repaints the root element and all its descendants:
// fill is set unless it is "none", stroke is replaced when present
// and not "none". Elements inside defs, style and script are skipped.
func RecolorAll(svg, color string) (string, error) {
	if color == "" {
		return svg, nil
	}
	doc, err := svgtree.ParseString(svg)
	if err != nil {
		return "", fmt.Errorf("svgrecolor: invalid svg: %w", err)
	}
	Repaint(doc.Root, color)
	return doc.Root.String(), nil
}

// Repaint applies the RecolorAll policy to the subtree rooted at el, in place.
func Repaint(el *svgtree.Element, color string) {
	el.Walk(func(e *svgtree.Element) bool {
		if skipped[e.Name.Local] {
			return false
		}
		if fill, _ := e.Attr("fill"); fill != none {
			e.SetAttr("fill", color)
		}
		if stroke, has := e.Attr("stroke"); has && stroke != none {
			e.SetAttr("stroke", color)
		}
		return true
	})
}
