package mdx

import "github.com/alnah/go-mdx/internal/pipeline"

// ComponentOptions configures DefaultComponents.
type ComponentOptions = pipeline.ComponentOptions

// BasePathResolver mounts internal links under a site base path.
type BasePathResolver = pipeline.BasePathResolver

// ChromaHighlighter highlights code with chroma using CSS classes.
type ChromaHighlighter = pipeline.ChromaHighlighter

// DefaultComponents returns the built-in components: h1..h6, a, code, pre,
// img, Image and Table.
func DefaultComponents(opts ComponentOptions) Components {
	return pipeline.DefaultComponents(opts)
}

// NewChromaHighlighter returns a highlighter for the named chroma style.
// Unknown names fall back to chroma's default style.
func NewChromaHighlighter(style string) *ChromaHighlighter {
	return pipeline.NewChromaHighlighter(style)
}

// HeadingComponent renders <hN id="slug"> with a leading self-link.
func HeadingComponent(level int, anchorClass string) Component {
	return pipeline.NewHeading(level, anchorClass)
}

// LinkComponent renders <a>, forcing target and rel on external links.
func LinkComponent(resolver LinkResolver) Component {
	return pipeline.NewLink(resolver)
}

// CodeComponent renders <code> with highlighted content.
func CodeComponent(h Highlighter) Component {
	return pipeline.NewCode(h)
}

// PreComponent renders the <pre> wrapper of code blocks.
func PreComponent() Component {
	return pipeline.NewPre()
}

// ImageComponent renders <img> with a fixed class and lazy loading.
func ImageComponent(class string) Component {
	return pipeline.NewImage(class)
}

// TableComponent renders <Table data={...} /> blocks.
func TableComponent() Component {
	return pipeline.NewTable()
}

// DecodeTable decodes the data attribute of a table component.
func DecodeTable(p Props) (TableData, error) {
	return pipeline.DecodeTable(p)
}
