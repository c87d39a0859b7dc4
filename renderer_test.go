package mdx

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// Notes:
// - Exact markup of every component is covered in internal/pipeline; these
//   tests check how options and inputs reach the pipeline.

// echoHighlighter escapes code without highlighting.
type echoHighlighter struct{}

func (echoHighlighter) Highlight(code, _ string) (TrustedHTML, error) {
	return Text(code), nil
}

func mustRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	r, err := NewRenderer(opts...)
	if err != nil {
		t.Fatalf("NewRenderer() error: %v", err)
	}
	return r
}

func mustRender(t *testing.T, r *Renderer, input Input) *Result {
	t.Helper()
	res, err := r.Render(context.Background(), input)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return res
}

// ---------------------------------------------------------------------------
// TestNewRenderer - Construction and option validation
// ---------------------------------------------------------------------------

func TestNewRenderer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{name: "defaults"},
		{name: "known style", opts: []Option{WithHighlightStyle("monokai")}},
		{name: "unknown style", opts: []Option{WithHighlightStyle("nope")}, wantErr: ErrUnknownStyle},
		{name: "base path", opts: []Option{WithBasePath("/blog")}},
		{name: "relative base path", opts: []Option{WithBasePath("blog")}, wantErr: ErrInvalidOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewRenderer(tt.opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("errors.Is(err, %v) = false, got: %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r == nil {
				t.Fatal("expected renderer")
			}
		})
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero timeout")
		}
	}()
	WithTimeout(0)
}

func TestRendererComponentNames(t *testing.T) {
	t.Parallel()

	r := mustRenderer(t, WithComponents(Components{"Badge": func(Props) (TrustedHTML, error) { return "", nil }}))
	names := r.ComponentNames()

	want := []string{"Badge", "Image", "Table", "a", "code", "h1", "h2", "h3", "h4", "h5", "h6", "img", "pre"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("ComponentNames() = %v, want %v", names, want)
	}
}

// ---------------------------------------------------------------------------
// TestRender - Options reaching the output
// ---------------------------------------------------------------------------

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     []Option
		src      string
		contains []string
		excludes []string
	}{
		{
			name:     "heading anchors",
			src:      "## Hello World\n",
			contains: []string{`<h2 id="hello-world"><a href="#hello-world" class="anchor"></a>Hello World</h2>`},
		},
		{
			name:     "anchor class option",
			opts:     []Option{WithAnchorClass("permalink")},
			src:      "# Top\n",
			contains: []string{`class="permalink"`},
		},
		{
			name:     "base path prefixes internal links only",
			opts:     []Option{WithBasePath("/blog")},
			src:      "[a](/about) [b](#x) [c](https://go.dev)\n",
			contains: []string{`href="/blog/about"`, `href="#x"`, `href="https://go.dev" target="_blank" rel="noopener noreferrer"`},
		},
		{
			name:     "custom resolver wins over base path",
			opts:     []Option{WithBasePath("/blog"), WithLinkResolver(BasePathResolver{BasePath: "/docs"})},
			src:      "[a](/about)\n",
			contains: []string{`href="/docs/about"`},
		},
		{
			name:     "image class option",
			opts:     []Option{WithImageClass("shadow")},
			src:      "![x](/x.png)\n",
			contains: []string{`class="shadow"`, `loading="lazy"`},
		},
		{
			name:     "custom highlighter",
			opts:     []Option{WithHighlighter(echoHighlighter{})},
			src:      "`a<b`\n",
			contains: []string{"<code>a&lt;b</code>"},
		},
		{
			name:     "chroma by default",
			src:      "```go\npackage main\n```\n",
			contains: []string{`<pre><code class="chroma language-go">`, `<span class="`},
		},
		{
			name:     "block highlighting",
			opts:     []Option{WithBlockHighlighting()},
			src:      "```go\npackage main\n```\n",
			contains: []string{`class="chroma"`},
			excludes: []string{`class="language-go"`},
		},
		{
			name:     "hard wraps",
			opts:     []Option{WithHardWraps()},
			src:      "a\nb\n",
			contains: []string{"<br />"},
		},
		{
			name:     "raw HTML is dropped by default",
			src:      "<div>raw</div>\n",
			excludes: []string{"<div>"},
		},
		{
			name:     "raw HTML with unsafe option",
			opts:     []Option{WithUnsafeHTML()},
			src:      "<div>raw</div>\n",
			contains: []string{"<div>raw</div>"},
		},
		{
			name:     "CRLF input",
			src:      "# One\r\n\r\ntext\r\n",
			contains: []string{`<h1 id="one">`, "<p>text</p>"},
			excludes: []string{"\r"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := mustRender(t, mustRenderer(t, tt.opts...), Input{Source: []byte(tt.src)})
			for _, want := range tt.contains {
				if !strings.Contains(res.HTML, want) {
					t.Errorf("HTML missing %q\nGot:\n%s", want, res.HTML)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(res.HTML, unwanted) {
					t.Errorf("HTML should not contain %q\nGot:\n%s", unwanted, res.HTML)
				}
			}
		})
	}
}

func TestRenderEmptySource(t *testing.T) {
	t.Parallel()

	r := mustRenderer(t)
	for _, src := range [][]byte{nil, {}} {
		res := mustRender(t, r, Input{Source: src})
		if res.HTML != "" {
			t.Errorf("Render(%q).HTML = %q, want empty", src, res.HTML)
		}
		if len(res.Headings) != 0 {
			t.Errorf("Render(%q).Headings = %v, want none", src, res.Headings)
		}
	}
}

func TestRenderFrontMatter(t *testing.T) {
	t.Parallel()

	src := "---\ntitle: Launch Notes\nslug: launch\ntags: [go, mdx]\ndraft: true\n---\n\n## Intro\n"
	res := mustRender(t, mustRenderer(t), Input{Source: []byte(src)})

	if res.Meta.Title != "Launch Notes" {
		t.Errorf("Meta.Title = %q, want %q", res.Meta.Title, "Launch Notes")
	}
	if res.Meta.Slug != "launch" {
		t.Errorf("Meta.Slug = %q, want %q", res.Meta.Slug, "launch")
	}
	if !res.Meta.Draft {
		t.Error("Meta.Draft = false, want true")
	}
	if len(res.Meta.Tags) != 2 {
		t.Errorf("Meta.Tags = %v, want 2 tags", res.Meta.Tags)
	}
	if strings.Contains(res.HTML, "title:") {
		t.Errorf("front matter leaked into HTML: %s", res.HTML)
	}
	if !strings.Contains(res.HTML, `<h2 id="intro">`) {
		t.Errorf("body not rendered: %s", res.HTML)
	}
}

func TestRenderHeadings(t *testing.T) {
	t.Parallel()

	res := mustRender(t, mustRenderer(t), Input{Source: []byte("# A\n\n## B & C\n\n### D\n")})

	want := []Heading{
		{Level: 1, Text: "A", Slug: "a"},
		{Level: 2, Text: "B & C", Slug: "b-and-c"},
		{Level: 3, Text: "D", Slug: "d"},
	}
	if len(res.Headings) != len(want) {
		t.Fatalf("Headings = %+v, want %+v", res.Headings, want)
	}
	for i := range want {
		if res.Headings[i] != want[i] {
			t.Errorf("Headings[%d] = %+v, want %+v", i, res.Headings[i], want[i])
		}
	}
}

// ---------------------------------------------------------------------------
// TestRenderComponents - Renderer-level and per-render overrides
// ---------------------------------------------------------------------------

func TestRenderComponents(t *testing.T) {
	t.Parallel()

	kbd := func(p Props) (TrustedHTML, error) {
		return Element("kbd", nil, Text(p.Text))
	}
	samp := func(p Props) (TrustedHTML, error) {
		return Element("samp", nil, Text(p.Text))
	}

	r := mustRenderer(t, WithComponents(Components{"code": kbd}))

	res := mustRender(t, r, Input{Source: []byte("## Run\n\n`make`\n")})
	if !strings.Contains(res.HTML, "<kbd>make</kbd>") {
		t.Errorf("renderer-level override not applied: %s", res.HTML)
	}
	if !strings.Contains(res.HTML, `<h2 id="run">`) {
		t.Errorf("headings should keep their defaults: %s", res.HTML)
	}

	res = mustRender(t, r, Input{
		Source:     []byte("`make`\n"),
		Components: Components{"code": samp},
	})
	if !strings.Contains(res.HTML, "<samp>make</samp>") {
		t.Errorf("per-render override should win: %s", res.HTML)
	}

	res = mustRender(t, r, Input{Source: []byte("`make`\n")})
	if !strings.Contains(res.HTML, "<kbd>make</kbd>") {
		t.Errorf("per-render override leaked into later renders: %s", res.HTML)
	}
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	r := mustRenderer(t)

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{
			name:    "unknown component",
			input:   Input{Source: []byte("<Chart />\n")},
			wantErr: ErrUnknownComponent,
		},
		{
			name:    "component with children",
			input:   Input{Source: []byte("<Note>x</Note>\n")},
			wantErr: ErrComponentSyntax,
		},
		{
			name:    "bad table data",
			input:   Input{Source: []byte("<Table data={[1, 2]} />\n")},
			wantErr: ErrComponentProps,
		},
		{
			name:    "bad front matter",
			input:   Input{Source: []byte("---\ntitle: [unclosed\n---\nbody\n")},
			wantErr: ErrFrontMatter,
		},
		{
			name: "component error",
			input: Input{
				Source: []byte("[x](/x)\n"),
				Components: Components{
					"a": func(Props) (TrustedHTML, error) { return "", errors.New("boom") },
				},
			},
			wantErr: ErrRender,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := r.Render(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("errors.Is(err, %v) = false, got: %v", tt.wantErr, err)
			}
			if res != nil {
				t.Errorf("expected no partial result, got %q", res.HTML)
			}
		})
	}
}

func TestRenderRecoversPanics(t *testing.T) {
	t.Parallel()

	r := mustRenderer(t)
	res, err := r.Render(context.Background(), Input{
		Source: []byte("`x`\n"),
		Components: Components{
			"code": func(Props) (TrustedHTML, error) { panic("component bug") },
		},
	})
	if err == nil || !strings.Contains(err.Error(), "component bug") {
		t.Fatalf("expected recovered panic error, got: %v", err)
	}
	if res != nil {
		t.Error("expected nil result")
	}
}

func TestRenderContext(t *testing.T) {
	t.Parallel()

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := mustRenderer(t).Render(ctx, Input{Source: []byte("# x\n")})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("errors.Is(err, context.Canceled) = false, got: %v", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		defer close(release)

		r := mustRenderer(t, WithTimeout(20*time.Millisecond))
		_, err := r.Render(context.Background(), Input{
			Source: []byte("`x`\n"),
			Components: Components{
				"code": func(Props) (TrustedHTML, error) {
					<-release
					return "", nil
				},
			},
		})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("errors.Is(err, context.DeadlineExceeded) = false, got: %v", err)
		}
	})
}

func TestRenderConcurrent(t *testing.T) {
	t.Parallel()

	r := mustRenderer(t)
	var wg sync.WaitGroup
	errs := make(chan error, 8)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := r.Render(context.Background(), Input{Source: []byte("## Same\n\n`code`\n")})
			if err != nil {
				errs <- err
				return
			}
			if !strings.Contains(res.HTML, `id="same"`) {
				errs <- errors.New("missing heading id")
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
