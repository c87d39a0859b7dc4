// Package mdx renders MDX-flavoured Markdown to HTML fragments.
//
// # Quick Start
//
// Create a renderer once and reuse it:
//
//	r, err := mdx.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := r.Render(ctx, mdx.Input{
//	    Source: []byte("## Hello\n\nSee [the docs](/docs)."),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML)
//
// The result carries the HTML fragment, the decoded front matter
// (result.Meta) and the document headings (result.Headings) for building
// a table of contents.
//
// # Components
//
// Every heading, link, image, code span and code block is rendered by a
// Component looked up by element name ("h1".."h6", "a", "img", "code",
// "pre"). Self-closing capitalised tags on their own lines are component
// blocks:
//
//	<Image src="/hero.png" alt="Hero" width={1200} />
//
//	<Table data={{ headers: [Name, Stars], rows: [[goldmark, 3k]] }} />
//
// Attribute values in braces are expressions. Scalars are exposed as plain
// attributes; objects and arrays are decoded with Props.Decode.
//
// Per-render overrides replace defaults by name:
//
//	result, err := r.Render(ctx, mdx.Input{
//	    Source: src,
//	    Components: mdx.Components{
//	        "Callout": func(p mdx.Props) (mdx.TrustedHTML, error) {
//	            kind, _ := p.Attrs.Get("kind")
//	            return mdx.Element("aside", mdx.Attributes{{Key: "class", Val: kind}}, "")
//	        },
//	    },
//	})
//
// An unknown component name or a malformed tag fails the whole render;
// no partial HTML is returned.
//
// # Configuration
//
// Use functional options to customize the renderer:
//
//	r, err := mdx.NewRenderer(
//	    mdx.WithBasePath("/blog"),
//	    mdx.WithHighlightStyle("monokai"),
//	    mdx.WithImageClass("shadow"),
//	)
//
// # Concurrency
//
// A Renderer is immutable after NewRenderer returns and safe for concurrent
// use. ResolveWorkers picks a worker count for batch rendering.
package mdx
