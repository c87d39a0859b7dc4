package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// ErrRender indicates the Markdown to HTML render failed.
var ErrRender = errors.New("markdown render failed")

// EngineOptions configures the goldmark instance behind an Engine.
type EngineOptions struct {
	HardWraps  bool // treat newlines in paragraphs as <br />
	UnsafeHTML bool // pass raw HTML and dangerous URLs through

	// BlockHighlighting renders fenced code blocks with goldmark-highlighting
	// instead of the code and pre components.
	BlockHighlighting bool
	HighlightStyle    string // chroma style for BlockHighlighting
}

// Document is the output of one Engine render.
type Document struct {
	HTML     string
	Headings []Heading
}

// Engine renders MDX-flavoured Markdown to an HTML fragment.
// The goldmark instance is built once; the component map is supplied per
// render, so one Engine serves concurrent renders.
type Engine struct {
	md goldmark.Markdown
}

// NewEngine creates an Engine with GFM, footnotes and component blocks.
func NewEngine(opts EngineOptions) *Engine {
	comp := &componentRenderer{
		unsafe:     opts.UnsafeHTML,
		skipFenced: opts.BlockHighlighting,
	}

	extensions := []goldmark.Extender{
		extension.GFM,      // tables, strikethrough, autolinks, task lists
		extension.Footnote, // [^1] footnotes
		&componentExtension{renderer: comp},
	}
	if opts.BlockHighlighting {
		style := opts.HighlightStyle
		if style == "" {
			style = DefaultHighlightStyle
		}
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(style),
			highlighting.WithGuessLanguage(true),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		))
	}

	rendererOpts := []renderer.Option{html.WithXHTML()}
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if opts.UnsafeHTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &Engine{md: md}
}

// Render parses source, collects its headings and renders it through comps.
// goldmark has no context support, so the render runs in a goroutine and
// Render returns as soon as ctx is done.
func (e *Engine) Render(ctx context.Context, source []byte, comps Components) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		doc *Document
		err error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: panic: %v", ErrRender, r)}
			}
		}()
		doc, err := e.render(source, comps)
		done <- result{doc: doc, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.doc, r.err
	}
}

func (e *Engine) render(source []byte, comps Components) (*Document, error) {
	root := e.md.Parser().Parse(text.NewReader(source))
	root.SetAttributeString(componentsAttr, comps)

	var buf bytes.Buffer
	if err := e.md.Renderer().Render(&buf, source, root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return &Document{
		HTML:     buf.String(),
		Headings: collectHeadings(root, source),
	}, nil
}
