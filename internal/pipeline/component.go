package pipeline

import (
	"errors"
	"fmt"

	"github.com/alnah/go-mdx/internal/yamlutil"
)

// Sentinel errors for component dispatch.
var (
	ErrUnknownComponent = errors.New("unknown component")
	ErrComponentSyntax  = errors.New("invalid component syntax")
	ErrComponentProps   = errors.New("invalid component props")
)

// TrustedHTML is markup written to the output without escaping.
// Only the element builder, the highlighter and the goldmark renderer
// produce values of this type; anything user-supplied must pass through
// Text or Element first.
type TrustedHTML string

// Attr is a single HTML attribute.
type Attr struct {
	Key string
	Val string
}

// Attributes is an ordered attribute list with unique keys.
// Set and Without return copies; the receiver is never modified.
type Attributes []Attr

// Get returns the value for key and whether it was present.
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// Set returns a copy of a with key set to val, replacing an existing
// entry in place or appending a new one.
func (a Attributes) Set(key, val string) Attributes {
	out := make(Attributes, len(a), len(a)+1)
	copy(out, a)
	for i := range out {
		if out[i].Key == key {
			out[i].Val = val
			return out
		}
	}
	return append(out, Attr{Key: key, Val: val})
}

// Without returns a copy of a with the given keys removed.
func (a Attributes) Without(keys ...string) Attributes {
	out := make(Attributes, 0, len(a))
	for _, attr := range a {
		drop := false
		for _, k := range keys {
			if attr.Key == k {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, attr)
		}
	}
	return out
}

// Props is what a component receives for one element.
type Props struct {
	Name     string            // element or component name: "h2", "a", "Table"
	Attrs    Attributes        // string attributes, in source order
	Text     string            // plain text content, unescaped
	Children TrustedHTML       // rendered inner markup
	Exprs    map[string]string // raw {expression} attributes of component blocks
}

// Decode parses the expression attribute name into v.
// Expressions are read as YAML flow values, which covers the JSON and
// JS-object literals used in MDX content.
func (p Props) Decode(name string, v any) error {
	expr, ok := p.Exprs[name]
	if !ok {
		return fmt.Errorf("%w: %s: missing %q attribute", ErrComponentProps, p.Name, name)
	}
	if err := yamlutil.UnmarshalExpression([]byte(expr), v); err != nil {
		return fmt.Errorf("%w: %s.%s: %v", ErrComponentProps, p.Name, name, err)
	}
	return nil
}

// Component renders one element.
type Component func(p Props) (TrustedHTML, error)

// Components maps element names to their components.
type Components map[string]Component

// Merge returns a new map holding c overlaid with overrides.
// Overrides win per key; nil overrides are ignored.
func (c Components) Merge(overrides Components) Components {
	out := make(Components, len(c)+len(overrides))
	for name, comp := range c {
		out[name] = comp
	}
	for name, comp := range overrides {
		if comp != nil {
			out[name] = comp
		}
	}
	return out
}

// ComponentOptions configures the default component set.
type ComponentOptions struct {
	AnchorClass string       // class of the heading anchor (default "anchor")
	ImageClass  string       // fixed class added to images (default "rounded-lg")
	Resolver    LinkResolver // internal link resolution (nil = unchanged)
	Highlighter Highlighter  // code highlighting (nil = chroma, "github")
}

// Default class names.
const (
	DefaultAnchorClass = "anchor"
	DefaultImageClass  = "rounded-lg"
)

// DefaultComponents returns the built-in mapping: h1..h6, a, code, pre,
// img, Image and Table.
func DefaultComponents(opts ComponentOptions) Components {
	if opts.AnchorClass == "" {
		opts.AnchorClass = DefaultAnchorClass
	}
	if opts.ImageClass == "" {
		opts.ImageClass = DefaultImageClass
	}
	if opts.Highlighter == nil {
		opts.Highlighter = NewChromaHighlighter(DefaultHighlightStyle)
	}

	comps := Components{
		"a":     NewLink(opts.Resolver),
		"code":  NewCode(opts.Highlighter),
		"pre":   NewPre(),
		"img":   NewImage(opts.ImageClass),
		"Image": NewImage(opts.ImageClass),
		"Table": NewTable(),
	}
	for level := 1; level <= 6; level++ {
		comps[headingTag(level)] = NewHeading(level, opts.AnchorClass)
	}
	return comps
}
