package pipeline

import "strings"

// LinkKind is the rendering variant chosen for a link.
type LinkKind int

// Link variants.
const (
	LinkExternal LinkKind = iota // opens in a new tab, rel forced
	LinkInternal                 // site path, resolved through a LinkResolver
	LinkAnchor                   // same-page fragment
)

func (k LinkKind) String() string {
	switch k {
	case LinkInternal:
		return "internal"
	case LinkAnchor:
		return "anchor"
	default:
		return "external"
	}
}

// ClassifyLink picks the variant from the href prefix alone.
// No URL parsing or validation is done.
func ClassifyLink(href string) LinkKind {
	switch {
	case strings.HasPrefix(href, "/"):
		return LinkInternal
	case strings.HasPrefix(href, "#"):
		return LinkAnchor
	default:
		return LinkExternal
	}
}

// LinkResolver maps an internal path to the href written to the page.
type LinkResolver interface {
	ResolvePath(path string) string
}

// BasePathResolver mounts internal paths under a site base path.
type BasePathResolver struct {
	BasePath string // e.g. "/blog"; empty leaves paths unchanged
}

// ResolvePath prefixes path with the base path. Protocol-relative URLs
// ("//cdn.example.com/x") are returned unchanged.
func (r BasePathResolver) ResolvePath(path string) string {
	base := strings.TrimRight(r.BasePath, "/")
	if base == "" || strings.HasPrefix(path, "//") {
		return path
	}
	return base + path
}

// External link attributes, always forced.
const (
	externalTarget = "_blank"
	externalRel    = "noopener noreferrer"
)

// NewLink returns the component for <a>.
func NewLink(resolver LinkResolver) Component {
	return func(p Props) (TrustedHTML, error) {
		href, _ := p.Attrs.Get("href")

		switch ClassifyLink(href) {
		case LinkInternal:
			attrs := p.Attrs
			if resolver != nil {
				attrs = attrs.Set("href", resolver.ResolvePath(href))
			}
			return Element("a", attrs, p.Children)
		case LinkAnchor:
			return Element("a", p.Attrs, p.Children)
		default:
			attrs := p.Attrs.Set("target", externalTarget).Set("rel", externalRel)
			return Element("a", attrs, p.Children)
		}
	}
}
