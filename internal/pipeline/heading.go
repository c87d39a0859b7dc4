package pipeline

import (
	"strconv"

	"github.com/yuin/goldmark/ast"
)

// Heading is a document heading collected during a render.
type Heading struct {
	Level int    // 1-6
	Text  string // plain text content
	Slug  string // Slugify(Text), also the element id
}

// NewHeading returns the component for <hN>. The heading gets id=slug and
// a leading empty anchor linking to #slug. Levels outside 1-6 are clamped.
func NewHeading(level int, anchorClass string) Component {
	tag := headingTag(level)
	return func(p Props) (TrustedHTML, error) {
		slug := Slugify(p.Text)
		anchorAttrs := Attributes{{Key: "href", Val: "#" + slug}}
		if anchorClass != "" {
			anchorAttrs = anchorAttrs.Set("class", anchorClass)
		}
		anchor, err := Element("a", anchorAttrs, "")
		if err != nil {
			return "", err
		}
		return Element(tag, p.Attrs.Set("id", slug), anchor+p.Children)
	}
}

func headingTag(level int) string {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return "h" + strconv.Itoa(level)
}

// collectHeadings walks doc and returns every heading in document order.
func collectHeadings(doc ast.Node, source []byte) []Heading {
	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		text := plainText(h, source)
		headings = append(headings, Heading{
			Level: h.Level,
			Text:  text,
			Slug:  Slugify(text),
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}
