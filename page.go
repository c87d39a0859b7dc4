package mdx

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-mdx/internal/dateutil"
	"github.com/alnah/go-mdx/internal/pipeline"
)

// TOC depth defaults.
const (
	DefaultTOCMinDepth = 2
	DefaultTOCMaxDepth = 3
)

// PageOptions configures WrapPage.
type PageOptions struct {
	Title string // defaults to the front matter title
	Lang  string // defaults to "en"
	CSS   string // embedded in a <style> element, e.g. from StyleCSS
	TOC   *TOC   // nil = no table of contents

	// DateFormat renders the front matter publishedAt date, either a
	// preset (iso, european, us, long) or tokens such as "D MMM YYYY".
	// Empty uses "long".
	DateFormat string
}

// TOC configures the numbered table of contents of a standalone page.
type TOC struct {
	Title    string // empty = no title
	MinDepth int    // 1-6, 0 = DefaultTOCMinDepth
	MaxDepth int    // 1-6, 0 = DefaultTOCMaxDepth
}

// WrapPage wraps a rendered fragment in a complete HTML document.
func WrapPage(res *Result, opts PageOptions) (string, error) {
	title := opts.Title
	if title == "" {
		title = res.Meta.Title
	}

	data := pipeline.PageData{
		Title:       title,
		Description: strings.TrimSpace(res.Meta.Summary),
		Lang:        opts.Lang,
		CSS:         opts.CSS,
		Body:        TrustedHTML(res.HTML),
		Headings:    res.Headings,
	}
	if res.Meta.PublishedAt != "" {
		published, layout, err := publication(res.Meta.PublishedAt, opts.DateFormat)
		if err != nil {
			return "", err
		}
		data.Published, data.DateLayout = published, layout
	}
	if opts.TOC != nil {
		data.TOC = toTOCData(opts.TOC)
	}
	return pipeline.WrapPage(data)
}

// publication parses the publishedAt value and resolves the display layout.
func publication(value, format string) (time.Time, string, error) {
	published, err := dateutil.ParseDate(value)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("publishedAt: %w", err)
	}
	layout, err := dateutil.ResolveLayout(format)
	if err != nil {
		return time.Time{}, "", err
	}
	return published, layout, nil
}

// ValidateDateFormat reports whether format is usable as PageOptions.DateFormat.
func ValidateDateFormat(format string) error {
	_, err := dateutil.ResolveLayout(format)
	return err
}

// toTOCData converts the public TOC type to internal pipeline.TOCData.
func toTOCData(t *TOC) *pipeline.TOCData {
	minDepth := t.MinDepth
	if minDepth == 0 {
		minDepth = DefaultTOCMinDepth
	}
	maxDepth := t.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}
	return &pipeline.TOCData{
		Title:    t.Title,
		MinDepth: minDepth,
		MaxDepth: maxDepth,
	}
}
