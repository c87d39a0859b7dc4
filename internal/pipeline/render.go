package pipeline

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	nethtml "golang.org/x/net/html"
)

// componentsAttr is the document attribute holding the per-render
// component map. Renderer funcs reach it through the node's root.
const componentsAttr = "mdx-components"

// componentExtension wires the component block parser and the dispatching
// node renderer into a goldmark instance.
type componentExtension struct {
	renderer *componentRenderer
}

func (e *componentExtension) Extend(m goldmark.Markdown) {
	e.renderer.inner = m.Renderer()
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(NewComponentBlockParser(), 850), // before the HTML block parser (900)
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(e.renderer, 100), // wins over html (1000) and highlighting (200)
	))
}

// componentRenderer routes headings, links, images, code and component
// blocks to the component map of the document being rendered.
type componentRenderer struct {
	inner      renderer.Renderer
	unsafe     bool
	skipFenced bool // fenced blocks are left to goldmark-highlighting
}

func (r *componentRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	if !r.skipFenced {
		reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
	}
	reg.Register(KindComponentBlock, r.renderComponentBlock)
}

func (r *componentRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Heading)
	children, err := r.renderChildren(source, n)
	if err != nil {
		return ast.WalkStop, err
	}
	return r.dispatch(w, n, Props{
		Name:     headingTag(n.Level),
		Text:     plainText(n, source),
		Children: children,
	}, true)
}

func (r *componentRenderer) renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Link)
	children, err := r.renderChildren(source, n)
	if err != nil {
		return ast.WalkStop, err
	}
	attrs := Attributes{{Key: "href", Val: r.destination(n.Destination)}}
	if len(n.Title) > 0 {
		attrs = attrs.Set("title", string(n.Title))
	}
	return r.dispatch(w, n, Props{
		Name:     "a",
		Attrs:    attrs,
		Text:     plainText(n, source),
		Children: children,
	}, false)
}

func (r *componentRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.AutoLink)
	url := n.URL(source)
	label := string(n.Label(source))
	if n.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(url), []byte("mailto:")) {
		url = append([]byte("mailto:"), url...)
	}
	return r.dispatch(w, n, Props{
		Name:     "a",
		Attrs:    Attributes{{Key: "href", Val: r.destination(url)}},
		Text:     label,
		Children: Text(label),
	}, false)
}

func (r *componentRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	alt := plainText(n, source)
	attrs := Attributes{
		{Key: "src", Val: r.destination(n.Destination)},
		{Key: "alt", Val: alt},
	}
	if len(n.Title) > 0 {
		attrs = attrs.Set("title", string(n.Title))
	}
	return r.dispatch(w, n, Props{Name: "img", Attrs: attrs, Text: alt}, false)
}

func (r *componentRenderer) renderCodeSpan(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	var buf strings.Builder
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		t, ok := c.(*ast.Text)
		if !ok {
			continue
		}
		value := t.Segment.Value(source)
		if bytes.HasSuffix(value, []byte("\n")) {
			buf.Write(value[:len(value)-1])
			buf.WriteByte(' ')
			continue
		}
		buf.Write(value)
	}
	return r.dispatch(w, node, Props{Name: "code", Text: buf.String()}, false)
}

// renderCodeBlock handles indented and fenced blocks: the code component
// renders the text, and the pre component wraps its output.
func (r *componentRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	var code strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	var attrs Attributes
	if fenced, ok := node.(*ast.FencedCodeBlock); ok {
		if lang := fenced.Language(source); len(lang) > 0 {
			attrs = attrs.Set("class", languageClassPrefix+string(lang))
		}
	}

	comps, err := componentsOf(node)
	if err != nil {
		return ast.WalkStop, err
	}
	inner, err := call(comps, Props{Name: "code", Attrs: attrs, Text: code.String()})
	if err != nil {
		return ast.WalkStop, err
	}
	return r.dispatch(w, node, Props{Name: "pre", Text: code.String(), Children: inner}, true)
}

func (r *componentRenderer) renderComponentBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ComponentBlock)
	if n.Err != nil {
		return ast.WalkStop, n.Err
	}
	attrs := n.Attrs
	if !r.unsafe {
		attrs = safeAttrs(attrs)
	}
	return r.dispatch(w, n, Props{Name: n.Name, Attrs: attrs, Exprs: n.Exprs}, true)
}

// urlAttrs are the component attributes holding a URL.
var urlAttrs = map[string]bool{
	"src":        true,
	"href":       true,
	"poster":     true,
	"action":     true,
	"formaction": true,
}

// safeAttrs drops on* event handlers and blanks dangerous URLs, matching
// what destination does for markdown links and images.
func safeAttrs(attrs Attributes) Attributes {
	out := make(Attributes, 0, len(attrs))
	for _, a := range attrs {
		key := strings.ToLower(a.Key)
		if strings.HasPrefix(key, "on") {
			continue
		}
		if urlAttrs[key] && html.IsDangerousURL([]byte(strings.TrimSpace(a.Val))) {
			a.Val = ""
		}
		out = append(out, a)
	}
	return out
}

// dispatch calls the component for p.Name and writes its output.
// Children were already rendered, so the walk skips them.
func (r *componentRenderer) dispatch(w util.BufWriter, n ast.Node, p Props, block bool) (ast.WalkStatus, error) {
	comps, err := componentsOf(n)
	if err != nil {
		return ast.WalkStop, err
	}
	out, err := call(comps, p)
	if err != nil {
		return ast.WalkStop, err
	}
	_, _ = w.WriteString(string(out))
	if block {
		_ = w.WriteByte('\n')
	}
	return ast.WalkSkipChildren, nil
}

func call(comps Components, p Props) (TrustedHTML, error) {
	comp, ok := comps[p.Name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownComponent, p.Name)
	}
	out, err := comp(p)
	if err != nil {
		return "", fmt.Errorf("rendering <%s>: %w", p.Name, err)
	}
	return out, nil
}

// renderChildren renders the children of n with the full goldmark
// renderer, so nested emphasis, code and links go through the same
// component map.
func (r *componentRenderer) renderChildren(source []byte, n ast.Node) (TrustedHTML, error) {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if err := r.inner.Render(&buf, source, c); err != nil {
			return "", err
		}
	}
	return TrustedHTML(buf.String()), nil
}

// destination applies goldmark's URL handling: escape, and drop
// dangerous schemes unless raw HTML is allowed.
func (r *componentRenderer) destination(dest []byte) string {
	if !r.unsafe && html.IsDangerousURL(dest) {
		return ""
	}
	return string(util.URLEscape(dest, true))
}

func componentsOf(n ast.Node) (Components, error) {
	for p := n; p != nil; p = p.Parent() {
		doc, ok := p.(*ast.Document)
		if !ok {
			continue
		}
		if v, found := doc.AttributeString(componentsAttr); found {
			if comps, ok := v.(Components); ok {
				return comps, nil
			}
		}
		break
	}
	return nil, fmt.Errorf("%w: no component map attached to document", ErrUnknownComponent)
}

// plainText concatenates the text under n, without markup. Escapes and
// character references are decoded; code span text is kept verbatim.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			if t.IsRaw() {
				b.Write(t.Segment.Value(source))
			} else {
				b.WriteString(decodeText(t.Segment.Value(source)))
			}
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.Label(source))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// decodeText resolves backslash escapes and character references the
// same way goldmark's HTML writer does, then unescapes the result back
// to plain text.
func decodeText(value []byte) string {
	if bytes.IndexByte(value, '\\') < 0 && bytes.IndexByte(value, '&') < 0 {
		return string(value)
	}
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	html.DefaultWriter.Write(w, value)
	_ = w.Flush()
	return nethtml.UnescapeString(buf.String())
}
