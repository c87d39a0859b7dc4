package mdx

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/alnah/go-mdx/internal/pipeline"
)

// ErrEmptySlug indicates no slug could be derived for a document.
var ErrEmptySlug = errors.New("document slug is empty")

// DocumentSlug returns the URL slug of a document: the front matter slug
// when set, else the file base name without its extension.
func DocumentSlug(meta FrontMatter, filename string) (string, error) {
	candidate := strings.TrimSpace(meta.Slug)
	if candidate == "" {
		base := filepath.Base(filename)
		candidate = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if candidate == "" || candidate == "." {
		return "", ErrEmptySlug
	}

	normalized, err := slug.Normalize(candidate)
	if err != nil {
		return "", fmt.Errorf("normalizing slug %q: %w", candidate, err)
	}
	if normalized == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptySlug, candidate)
	}
	return normalized, nil
}

// IsValidSlug reports whether s is already a normalized document slug.
func IsValidSlug(s string) bool {
	return slug.IsValid(s)
}

// Slugify derives a heading id from heading text.
// "Hello World" becomes "hello-world"; "A & B" becomes "a-and-b".
func Slugify(s string) string {
	return pipeline.Slugify(s)
}

// ClassifyLink reports whether href is internal ("/"), an in-page anchor
// ("#") or external.
func ClassifyLink(href string) LinkKind {
	return pipeline.ClassifyLink(href)
}

// StyleCSS returns the stylesheet for a chroma highlight style.
// Rendered code uses CSS classes, so pages need this stylesheet.
func StyleCSS(style string) (string, error) {
	return pipeline.StyleCSS(style)
}

// HighlightStyles lists the chroma styles accepted by WithHighlightStyle.
func HighlightStyles() []string {
	return pipeline.StyleNames()
}

// Element builds one HTML element with escaped attributes around trusted
// inner markup. Use it to write custom components.
func Element(tag string, attrs Attributes, inner TrustedHTML) (TrustedHTML, error) {
	return pipeline.Element(tag, attrs, inner)
}

// Text escapes s for use as element content.
func Text(s string) TrustedHTML {
	return pipeline.Text(s)
}
