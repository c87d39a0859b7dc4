package mdx

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-mdx/internal/pipeline"
)

// Renderer turns MDX-flavoured Markdown into HTML fragments.
// Create with NewRenderer; a Renderer is safe for concurrent use.
type Renderer struct {
	timeout  time.Duration
	engine   *pipeline.Engine
	defaults Components
}

// NewRenderer creates a Renderer.
// Returns an error for an unknown highlight style or an invalid base path.
func NewRenderer(opts ...Option) (*Renderer, error) {
	cfg := rendererConfig{
		timeout:        defaultTimeout,
		highlightStyle: pipeline.DefaultHighlightStyle,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, err := pipeline.LookupStyle(cfg.highlightStyle); err != nil {
		return nil, err
	}
	if cfg.basePath != "" && !strings.HasPrefix(cfg.basePath, "/") {
		return nil, fmt.Errorf("%w: base path %q must start with /", ErrInvalidOption, cfg.basePath)
	}

	resolver := cfg.resolver
	if resolver == nil && cfg.basePath != "" {
		resolver = pipeline.BasePathResolver{BasePath: cfg.basePath}
	}
	highlighter := cfg.highlighter
	if highlighter == nil {
		highlighter = pipeline.NewChromaHighlighter(cfg.highlightStyle)
	}

	defaults := pipeline.DefaultComponents(pipeline.ComponentOptions{
		AnchorClass: cfg.anchorClass,
		ImageClass:  cfg.imageClass,
		Resolver:    resolver,
		Highlighter: highlighter,
	}).Merge(cfg.components)

	return &Renderer{
		timeout: cfg.timeout,
		engine: pipeline.NewEngine(pipeline.EngineOptions{
			HardWraps:         cfg.hardWraps,
			UnsafeHTML:        cfg.unsafeHTML,
			BlockHighlighting: cfg.blockHighlighting,
			HighlightStyle:    cfg.highlightStyle,
		}),
		defaults: defaults,
	}, nil
}

// Render renders one document.
// Front matter is split off and decoded into Result.Meta. input.Components
// are merged over the renderer's components for this call only.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	source := pipeline.NormalizeSource(input.Source)

	meta, body, err := pipeline.SplitFrontMatter(source)
	if err != nil {
		return nil, err
	}

	comps := r.defaults
	if len(input.Components) > 0 {
		comps = comps.Merge(input.Components)
	}

	doc, err := r.engine.Render(ctx, body, comps)
	if err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}

	return &Result{
		HTML:     doc.HTML,
		Meta:     meta,
		Headings: doc.Headings,
	}, nil
}

// ComponentNames returns the names of the renderer's components, sorted.
func (r *Renderer) ComponentNames() []string {
	names := make([]string, 0, len(r.defaults))
	for name := range r.defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
