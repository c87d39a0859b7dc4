package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"
)

// ErrPageRender indicates the standalone page template failed.
var ErrPageRender = errors.New("page template rendering failed")

// pageTemplate wraps a rendered fragment in a complete HTML5 document.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{- if .Description}}
<meta name="description" content="{{.Description}}">
{{- end}}
{{- if .CSS}}
<style>{{.CSS}}</style>
{{- end}}
</head>
<body>
<article>
{{- if .Date}}
<p class="published"><time datetime="{{.DateISO}}">{{.Date}}</time></p>
{{- end}}
{{.TOC}}{{.Body}}
</article>
</body>
</html>
`))

// PageData holds what WrapPage needs to build a standalone page.
type PageData struct {
	Title       string
	Description string // <meta name="description">, omitted when empty
	Lang        string // default "en"
	CSS         string
	Body        TrustedHTML
	Headings    []Heading
	TOC         *TOCData // nil disables the table of contents

	Published  time.Time // zero omits the publication line
	DateLayout string    // Go time layout for Published, default "January 2, 2006"
}

// DefaultDateLayout formats the publication date when no layout is given.
const DefaultDateLayout = "January 2, 2006"

// TOCData configures the table of contents.
type TOCData struct {
	Title    string
	MinDepth int // minimum heading level (default 2, skips h1)
	MaxDepth int // maximum heading level (default 3)
}

// WrapPage renders data as a full HTML document.
// CSS is sanitized so it cannot close the <style> element.
func WrapPage(data PageData) (string, error) {
	lang := data.Lang
	if lang == "" {
		lang = "en"
	}

	var toc TrustedHTML
	if data.TOC != nil {
		minDepth, maxDepth := data.TOC.MinDepth, data.TOC.MaxDepth
		if minDepth == 0 {
			minDepth = 2
		}
		if maxDepth == 0 {
			maxDepth = 3
		}
		toc = generateNumberedTOC(filterHeadings(data.Headings, minDepth, maxDepth), data.TOC.Title)
	}

	var date, dateISO string
	if !data.Published.IsZero() {
		layout := data.DateLayout
		if layout == "" {
			layout = DefaultDateLayout
		}
		date = data.Published.Format(layout)
		dateISO = data.Published.Format("2006-01-02")
	}

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Lang        string
		Title       string
		Description string
		CSS         template.CSS
		Date        string
		DateISO     string
		TOC         template.HTML
		Body        template.HTML
	}{
		Lang:        lang,
		Title:       data.Title,
		Description: data.Description,
		CSS:         template.CSS(sanitizeCSS(data.CSS)),
		Date:        date,
		DateISO:     dateISO,
		TOC:         template.HTML(toc),
		Body:        template.HTML(data.Body),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// filterHeadings keeps headings with minDepth <= level <= maxDepth.
func filterHeadings(headings []Heading, minDepth, maxDepth int) []Heading {
	var out []Heading
	for _, h := range headings {
		if h.Level >= minDepth && h.Level <= maxDepth {
			out = append(out, h)
		}
	}
	return out
}

// numberingState tracks hierarchical numbering for TOC entries.
// The first heading seen sets depth 1, and skipped levels are closed up.
type numberingState struct {
	counters     [6]int
	minLevelSeen int
	lastLevel    int
}

// next returns the number string and effective depth for a heading level.
func (n *numberingState) next(level int) (numStr string, effectiveDepth int) {
	if n.minLevelSeen == 0 {
		n.minLevelSeen = level
	}

	effectiveDepth = level - n.minLevelSeen + 1
	if effectiveDepth < 1 {
		effectiveDepth = 1
	}

	// h2 -> h4 nests one level, not two
	if n.lastLevel > 0 && effectiveDepth > n.lastLevel+1 {
		effectiveDepth = n.lastLevel + 1
	}

	for i := effectiveDepth; i < 6; i++ {
		n.counters[i] = 0
	}
	n.counters[effectiveDepth-1]++
	n.lastLevel = effectiveDepth

	parts := make([]string, 0, effectiveDepth)
	for i := 0; i < effectiveDepth; i++ {
		parts = append(parts, strconv.Itoa(n.counters[i]))
	}
	return strings.Join(parts, ".") + ".", effectiveDepth
}

// generateNumberedTOC builds a <nav> linking each heading by slug.
func generateNumberedTOC(headings []Heading, title string) TrustedHTML {
	if len(headings) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(`<nav class="toc">`)
	if title != "" {
		buf.WriteString(`<h2 class="toc-title">`)
		buf.WriteString(string(Text(title)))
		buf.WriteString(`</h2>`)
	}
	buf.WriteString(`<ol class="toc-list">`)

	var numbering numberingState
	for _, h := range headings {
		num, depth := numbering.next(h.Level)
		fmt.Fprintf(&buf, `<li class="toc-item toc-depth-%d"><a href="#%s">%s %s</a></li>`,
			depth, Text(h.Slug), num, Text(h.Text))
	}

	buf.WriteString(`</ol></nav>`)
	buf.WriteByte('\n')
	return TrustedHTML(buf.String())
}
