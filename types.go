package mdx

import (
	"time"

	"github.com/alnah/go-mdx/internal/pipeline"
)

// Component renders one element from its props.
type Component = pipeline.Component

// Components maps element names ("h2", "a", "Table") to components.
type Components = pipeline.Components

// Props is what a component receives.
type Props = pipeline.Props

// TrustedHTML is markup inserted without escaping.
type TrustedHTML = pipeline.TrustedHTML

// Attr is a single name/value attribute.
type Attr = pipeline.Attr

// Attributes is an ordered attribute list.
type Attributes = pipeline.Attributes

// Heading is a document heading with its derived slug.
type Heading = pipeline.Heading

// FrontMatter is the metadata block at the top of a document.
type FrontMatter = pipeline.FrontMatter

// TableData is the decoded data of a <Table /> component.
type TableData = pipeline.TableData

// Highlighter turns source code into highlighted markup.
type Highlighter = pipeline.Highlighter

// LinkResolver maps internal paths to site URLs.
type LinkResolver = pipeline.LinkResolver

// LinkKind classifies a link target.
type LinkKind = pipeline.LinkKind

// Link kinds.
const (
	LinkExternal = pipeline.LinkExternal
	LinkInternal = pipeline.LinkInternal
	LinkAnchor   = pipeline.LinkAnchor
)

// Input is one document to render.
type Input struct {
	Source     []byte     // Markdown, optionally with a leading front matter block
	Components Components // per-render overrides; nil keeps the defaults
}

// Result is a rendered document.
type Result struct {
	HTML     string      // HTML fragment
	Meta     FrontMatter // zero value when the document has none
	Headings []Heading   // document order
}

// Option configures a Renderer.
type Option func(*rendererConfig)

// rendererConfig holds the construction-time settings of a Renderer.
type rendererConfig struct {
	timeout           time.Duration
	basePath          string
	resolver          LinkResolver
	highlighter       Highlighter
	highlightStyle    string
	imageClass        string
	anchorClass       string
	components        Components
	hardWraps         bool
	unsafeHTML        bool
	blockHighlighting bool
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout bounds each Render call.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdx: WithTimeout duration must be positive")
	}
	return func(c *rendererConfig) {
		c.timeout = d
	}
}

// WithBasePath prefixes internal links ("/about") with a site base path.
// Ignored when WithLinkResolver is also given.
func WithBasePath(basePath string) Option {
	return func(c *rendererConfig) {
		c.basePath = basePath
	}
}

// WithLinkResolver sets a custom resolver for internal links.
func WithLinkResolver(r LinkResolver) Option {
	return func(c *rendererConfig) {
		c.resolver = r
	}
}

// WithHighlighter replaces chroma for the code component.
func WithHighlighter(h Highlighter) Option {
	return func(c *rendererConfig) {
		c.highlighter = h
	}
}

// WithHighlightStyle sets the chroma style (default "github").
func WithHighlightStyle(name string) Option {
	return func(c *rendererConfig) {
		c.highlightStyle = name
	}
}

// WithImageClass sets the class added to every image (default "rounded-lg").
func WithImageClass(class string) Option {
	return func(c *rendererConfig) {
		c.imageClass = class
	}
}

// WithAnchorClass sets the class of heading anchors (default "anchor").
func WithAnchorClass(class string) Option {
	return func(c *rendererConfig) {
		c.anchorClass = class
	}
}

// WithComponents adds or replaces components for every render.
// Per-render Input.Components still win over these.
func WithComponents(comps Components) Option {
	return func(c *rendererConfig) {
		c.components = c.components.Merge(comps)
	}
}

// WithHardWraps renders newlines inside paragraphs as <br />.
func WithHardWraps() Option {
	return func(c *rendererConfig) {
		c.hardWraps = true
	}
}

// WithUnsafeHTML passes raw HTML and dangerous URLs through.
func WithUnsafeHTML() Option {
	return func(c *rendererConfig) {
		c.unsafeHTML = true
	}
}

// WithBlockHighlighting renders fenced code blocks with goldmark-highlighting
// (<pre class="chroma">) instead of the code and pre components.
func WithBlockHighlighting() Option {
	return func(c *rendererConfig) {
		c.blockHighlighting = true
	}
}
