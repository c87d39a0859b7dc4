package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// Notes:
// - chroma's exact span layout changes between releases, so highlighter
//   output is checked for escaping and class markup, not byte-for-byte.

// fakeHighlighter records its input and echoes escaped code.
type fakeHighlighter struct {
	lang string
}

func (f *fakeHighlighter) Highlight(code, language string) (TrustedHTML, error) {
	f.lang = language
	return TrustedHTML("[" + language + "]") + Text(code), nil
}

type failingHighlighter struct{}

func (failingHighlighter) Highlight(string, string) (TrustedHTML, error) {
	return "", ErrHighlight
}

// ---------------------------------------------------------------------------
// TestChromaHighlighter - Real chroma output
// ---------------------------------------------------------------------------

func TestChromaHighlighter(t *testing.T) {
	t.Parallel()

	h := NewChromaHighlighter(DefaultHighlightStyle)

	tests := []struct {
		name     string
		code     string
		language string
	}{
		{"explicit language", `fmt.Println("<b>")`, "go"},
		{"inferred language", "#!/bin/bash\necho '<script>'\n", ""},
		{"unknown language", "x <script>alert(1)</script>", "no-such-language"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := h.Highlight(tt.code, tt.language)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			out := string(got)
			if strings.Contains(out, "<script>") || strings.Contains(out, "<b>") {
				t.Errorf("code text not escaped: %s", out)
			}
			if !strings.Contains(out, "&lt;") {
				t.Errorf("expected escaped '<' in output: %s", out)
			}
			if strings.Contains(out, "<pre") {
				t.Errorf("output should not carry its own <pre>: %s", out)
			}
		})
	}
}

func TestChromaHighlighterUsesClasses(t *testing.T) {
	t.Parallel()

	got, err := NewChromaHighlighter("monokai").Highlight("package main\n", "go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(got), `class="`) {
		t.Errorf("expected class-based spans: %s", got)
	}
	if strings.Contains(string(got), `style="`) {
		t.Errorf("expected no inline styles: %s", got)
	}
}

// ---------------------------------------------------------------------------
// TestLookupStyle / TestStyleCSS - Style registry
// ---------------------------------------------------------------------------

func TestLookupStyle(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"github", "monokai", "dracula", "swapoff"} {
		if _, err := LookupStyle(name); err != nil {
			t.Errorf("LookupStyle(%q) error: %v", name, err)
		}
	}

	if _, err := LookupStyle("definitely-not-a-style"); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("errors.Is(err, ErrUnknownStyle) = false, got: %v", err)
	}
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	names := StyleNames()
	found := false
	for i, name := range names {
		if name == DefaultHighlightStyle {
			found = true
		}
		if i > 0 && names[i-1] > name {
			t.Errorf("StyleNames() not sorted at %d: %q > %q", i, names[i-1], name)
		}
	}
	if !found {
		t.Errorf("StyleNames() missing %q", DefaultHighlightStyle)
	}
}

func TestStyleCSS(t *testing.T) {
	t.Parallel()

	css, err := StyleCSS("github")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("stylesheet should target .chroma classes, got %.200s", css)
	}

	if _, err := StyleCSS("nope"); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("errors.Is(err, ErrUnknownStyle) = false, got: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestNewCode / TestNewPre - Code components
// ---------------------------------------------------------------------------

func TestNewCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		attrs    Attributes
		text     string
		want     TrustedHTML
		wantLang string
	}{
		{
			name: "inline code",
			text: "a < b",
			want: "<code>[]a &lt; b</code>",
		},
		{
			name:     "language from class",
			attrs:    Attributes{{Key: "class", Val: "language-go"}},
			text:     "x := 1",
			want:     `<code class="language-go">[go]x := 1</code>`,
			wantLang: "go",
		},
		{
			name:     "language among other classes",
			attrs:    Attributes{{Key: "class", Val: "block language-rust wide"}},
			text:     "fn main() {}",
			want:     `<code class="block language-rust wide">[rust]fn main() {}</code>`,
			wantLang: "rust",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := &fakeHighlighter{}
			got, err := NewCode(h)(Props{Name: "code", Attrs: tt.attrs, Text: tt.text})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
			if h.lang != tt.wantLang {
				t.Errorf("language = %q, want %q", h.lang, tt.wantLang)
			}
		})
	}
}

func TestNewCodeHighlightError(t *testing.T) {
	t.Parallel()

	_, err := NewCode(failingHighlighter{})(Props{Name: "code", Text: "x"})
	if !errors.Is(err, ErrHighlight) {
		t.Errorf("errors.Is(err, ErrHighlight) = false, got: %v", err)
	}
}

func TestNewCodeWrapperClass(t *testing.T) {
	t.Parallel()

	got, err := NewCode(NewChromaHighlighter(DefaultHighlightStyle))(Props{
		Name:  "code",
		Attrs: Attributes{{Key: "class", Val: "language-go"}},
		Text:  "func main() {}",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(string(got), `<code class="chroma language-go">`) {
		t.Errorf("expected chroma class before the language class: %s", got)
	}
}

// TestDefaultCodeMatchesStyleCSS renders with the default components and
// checks that every token span sits under the class StyleCSS scopes its
// rules to.
func TestDefaultCodeMatchesStyleCSS(t *testing.T) {
	t.Parallel()

	css, err := StyleCSS(DefaultHighlightStyle)
	if err != nil {
		t.Fatalf("StyleCSS error: %v", err)
	}
	if !strings.Contains(css, ".chroma .kd {") {
		t.Fatalf("expected a .chroma .kd rule in:\n%s", css)
	}

	src := "```go\nfunc main() {}\n```\n\nInline `func f()` too.\n"
	doc, err := NewEngine(EngineOptions{}).Render(context.Background(), []byte(src), DefaultComponents(ComponentOptions{}))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !strings.Contains(doc.HTML, `<span class="kd">func</span>`) {
		t.Fatalf("expected a keyword span: %s", doc.HTML)
	}

	root, err := html.Parse(strings.NewReader(doc.HTML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	spans := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "span" {
			spans++
			if !hasAncestorClass(n, "chroma") {
				t.Errorf("span %v has no .chroma ancestor", n.Attr)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	if spans == 0 {
		t.Errorf("no token spans found: %s", doc.HTML)
	}
}

func hasAncestorClass(n *html.Node, class string) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		for _, a := range p.Attr {
			if a.Key != "class" {
				continue
			}
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func TestNewPre(t *testing.T) {
	t.Parallel()

	got, err := NewPre()(Props{Name: "pre", Children: "<code>x</code>"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<pre><code>x</code></pre>" {
		t.Errorf("got %s", got)
	}
}
