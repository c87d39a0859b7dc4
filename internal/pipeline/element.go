package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element renders <tag attrs>inner</tag>. Attribute values are escaped;
// inner is inserted verbatim as a raw node. Void elements (img, br) must
// have empty inner markup.
func Element(tag string, attrs Attributes, inner TrustedHTML) (TrustedHTML, error) {
	n := newElementNode(tag, attrs)
	if inner != "" {
		n.AppendChild(&html.Node{Type: html.RawNode, Data: string(inner)})
	}
	return renderNode(n)
}

// Text escapes s for use as element content.
func Text(s string) TrustedHTML {
	return TrustedHTML(html.EscapeString(s))
}

// prependClass puts class in front of any class already in attrs.
// An empty class leaves attrs unchanged.
func prependClass(attrs Attributes, class string) Attributes {
	if class == "" {
		return attrs
	}
	if existing, ok := attrs.Get("class"); ok && existing != "" {
		return attrs.Set("class", class+" "+existing)
	}
	return attrs.Set("class", class)
}

func newElementNode(tag string, attrs Attributes) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if len(attrs) > 0 {
		n.Attr = make([]html.Attribute, 0, len(attrs))
		for _, a := range attrs {
			n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Val})
		}
	}
	return n
}

func newTextNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func renderNode(n *html.Node) (TrustedHTML, error) {
	var buf strings.Builder
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return TrustedHTML(buf.String()), nil
}
