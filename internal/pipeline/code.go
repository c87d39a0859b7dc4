package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Sentinel errors for highlighting.
var (
	ErrHighlight    = errors.New("syntax highlighting failed")
	ErrUnknownStyle = errors.New("unknown highlight style")
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// languageClassPrefix marks the language of a fenced block on <code>.
const languageClassPrefix = "language-"

// Highlighter turns source code into highlighted markup.
// The returned markup is trusted: implementations must escape code text.
type Highlighter interface {
	Highlight(code, language string) (TrustedHTML, error)
}

// wrapperClasser is implemented by highlighters whose stylesheet scopes
// its rules to a class on the enclosing <code>.
type wrapperClasser interface {
	WrapperClass() string
}

// chromaClass is the ancestor class every StyleCSS rule is scoped to.
const chromaClass = "chroma"

// ChromaHighlighter highlights with chroma using CSS classes, so the
// colours come from the stylesheet written by StyleCSS.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter creates a highlighter for the named style.
// Unknown names fall back to chroma's fallback style; use LookupStyle to
// validate names first.
func NewChromaHighlighter(styleName string) *ChromaHighlighter {
	return &ChromaHighlighter{
		style: styles.Get(styleName),
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true), // the pre component owns the wrapper
		),
	}
}

// Highlight tokenises code and formats it as class-annotated spans.
// With an empty language the lexer is inferred from the content.
func (h *ChromaHighlighter) Highlight(code, language string) (TrustedHTML, error) {
	lexer := chroma.Coalesce(lexerFor(code, language))

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}

	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}
	return TrustedHTML(buf.String()), nil
}

// WrapperClass returns the class StyleCSS selectors expect on an ancestor
// of the token spans.
func (h *ChromaHighlighter) WrapperClass() string {
	return chromaClass
}

func lexerFor(code, language string) chroma.Lexer {
	if language != "" {
		if l := lexers.Get(language); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(code); l != nil {
		return l
	}
	return lexers.Fallback
}

// LookupStyle returns the chroma style registered under name.
func LookupStyle(name string) (*chroma.Style, error) {
	style := styles.Get(name)
	if style == styles.Fallback && !strings.EqualFold(name, styles.Fallback.Name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return style, nil
}

// StyleNames lists the registered chroma styles, sorted.
func StyleNames() []string {
	return styles.Names()
}

// StyleCSS returns the stylesheet matching ChromaHighlighter output.
func StyleCSS(name string) (string, error) {
	style, err := LookupStyle(name)
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("writing %s stylesheet: %w", name, err)
	}
	return buf.String(), nil
}

// NewCode returns the component for <code>. The highlighted markup is
// inserted unescaped. Attributes are forwarded; a highlighter with a
// wrapper class gets it prepended to the class list.
func NewCode(h Highlighter) Component {
	var wrapper string
	if wc, ok := h.(wrapperClasser); ok {
		wrapper = wc.WrapperClass()
	}
	return func(p Props) (TrustedHTML, error) {
		highlighted, err := h.Highlight(p.Text, languageOf(p.Attrs))
		if err != nil {
			return "", err
		}
		return Element("code", prependClass(p.Attrs, wrapper), highlighted)
	}
}

// NewPre returns the component wrapping code blocks.
func NewPre() Component {
	return func(p Props) (TrustedHTML, error) {
		return Element("pre", p.Attrs, p.Children)
	}
}

// languageOf reads "language-x" from the class attribute.
func languageOf(attrs Attributes) string {
	class, ok := attrs.Get("class")
	if !ok {
		return ""
	}
	for _, c := range strings.Fields(class) {
		if lang, found := strings.CutPrefix(c, languageClassPrefix); found {
			return lang
		}
	}
	return ""
}
