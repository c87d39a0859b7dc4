package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-mdx"
	"github.com/alnah/go-mdx/internal/assets"
	"github.com/alnah/go-mdx/internal/config"
	"github.com/alnah/go-mdx/internal/fileutil"
	"github.com/alnah/go-mdx/internal/hints"
)

// Sentinel errors for the render command.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrRenderFailed   = errors.New("rendering failed")
)

// Renderer is the interface for the rendering service.
type Renderer interface {
	Render(ctx context.Context, input mdx.Input) (*mdx.Result, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*mdx.Renderer)(nil)

// renderParams groups parameters shared across batch/file rendering.
type renderParams struct {
	cfg            *config.Config
	page           *mdx.PageOptions // nil = write fragments
	componentNames []string         // for unknown component hints
}

// runRender orchestrates the render command.
func runRender(ctx context.Context, positionalArgs []string, flags *renderFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}

	// Flags > env > file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir, cfg.Output.Extension)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoFiles, inputPath)
	}

	renderer, err := buildRenderer(cfg, timeout)
	if err != nil {
		return err
	}

	page, err := buildPageOptions(cfg)
	if err != nil {
		return err
	}

	workerFlag := flags.workers
	if workerFlag == 0 {
		workerFlag = envCfg.Workers
	}
	workers := mdx.ResolveWorkers(workerFlag)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d, files: %d\n", workers, len(files))
	}

	params := &renderParams{
		cfg:            cfg,
		page:           page,
		componentNames: renderer.ComponentNames(),
	}
	start := env.Now()
	results := renderBatch(ctx, renderer, files, params, workers)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Done in %v\n", env.Now().Sub(start).Round(time.Millisecond))
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrRenderFailed, failed, len(results))
	}
	return nil
}

// loadConfig loads the config named by the flag, else by MDX_CONFIG, else
// returns the defaults.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.CandidatePaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags over cfg.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.basePath != "" {
		cfg.Site.BasePath = flags.basePath
	}
	if flags.drafts {
		cfg.Input.Drafts = true
	}
	if flags.markdown.hardWraps {
		cfg.Markdown.HardWraps = true
	}
	if flags.markdown.unsafeHTML {
		cfg.Markdown.UnsafeHTML = true
	}
	if flags.code.style != "" {
		cfg.Code.Style = flags.code.style
	}
	if flags.code.fenced != "" {
		cfg.Code.Fenced = flags.code.fenced
	}
	if flags.page.enabled {
		cfg.Page.Enabled = true
	}
	if flags.page.noCSS {
		cfg.Page.NoCSS = true
	}
	if flags.page.lang != "" {
		cfg.Site.Lang = flags.page.lang
	}
	if flags.page.theme != "" {
		cfg.Page.Theme = flags.page.theme
	}
	if flags.page.assetsDir != "" {
		cfg.Page.AssetsDir = flags.page.assetsDir
	}
	if flags.page.dateFormat != "" {
		cfg.Page.DateFormat = flags.page.dateFormat
	}
	if flags.toc.enabled {
		cfg.TOC.Enabled = true
	}
	if flags.toc.title != "" {
		cfg.TOC.Title = flags.toc.title
	}
	if flags.toc.minDepth != 0 {
		cfg.TOC.MinDepth = flags.toc.minDepth
	}
	if flags.toc.maxDepth != 0 {
		cfg.TOC.MaxDepth = flags.toc.maxDepth
	}
}

// resolveTimeout returns the per-file timeout.
// Priority: flag > MDX_TIMEOUT > 0 (library default).
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envValue, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// resolveInputPath returns the input from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir returns the output from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// buildRenderer creates the library renderer from the merged config.
func buildRenderer(cfg *config.Config, timeout time.Duration) (*mdx.Renderer, error) {
	opts := []mdx.Option{
		mdx.WithBasePath(cfg.Site.BasePath),
		mdx.WithHighlightStyle(cfg.Code.Style),
		mdx.WithImageClass(cfg.Images.Class),
		mdx.WithAnchorClass(cfg.Headings.AnchorClass),
	}
	if timeout > 0 {
		opts = append(opts, mdx.WithTimeout(timeout))
	}
	if cfg.Markdown.HardWraps {
		opts = append(opts, mdx.WithHardWraps())
	}
	if cfg.Markdown.UnsafeHTML {
		opts = append(opts, mdx.WithUnsafeHTML())
	}
	if cfg.BlockHighlighting() {
		opts = append(opts, mdx.WithBlockHighlighting())
	}

	r, err := mdx.NewRenderer(opts...)
	if err != nil {
		if errors.Is(err, mdx.ErrUnknownStyle) {
			return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(mdx.HighlightStyles()))
		}
		return nil, err
	}
	return r, nil
}

// buildPageOptions returns nil unless standalone pages are enabled.
// A table of contents implies a standalone page.
func buildPageOptions(cfg *config.Config) (*mdx.PageOptions, error) {
	if !cfg.Page.Enabled && !cfg.TOC.Enabled {
		return nil, nil
	}

	opts := &mdx.PageOptions{Lang: cfg.Site.Lang, DateFormat: cfg.Page.DateFormat}
	if !cfg.Page.NoCSS {
		css, err := pageCSS(cfg)
		if err != nil {
			return nil, err
		}
		opts.CSS = css
	}
	if cfg.TOC.Enabled {
		opts.TOC = &mdx.TOC{
			Title:    cfg.TOC.Title,
			MinDepth: cfg.TOC.MinDepth,
			MaxDepth: cfg.TOC.MaxDepth,
		}
	}
	return opts, nil
}

// pageCSS joins the page theme and the highlight stylesheet.
func pageCSS(cfg *config.Config) (string, error) {
	var parts []string

	if cfg.Page.Theme != "" && cfg.Page.Theme != assets.NoTheme {
		resolver, err := assets.NewResolver(cfg.Page.AssetsDir)
		if err != nil {
			return "", fmt.Errorf("loading page theme: %w", err)
		}
		theme, err := resolver.LoadTheme(cfg.Page.Theme)
		if err != nil {
			if errors.Is(err, assets.ErrThemeNotFound) {
				return "", fmt.Errorf("loading page theme: %w%s", err, hints.ForThemeNotFound(assets.Themes()))
			}
			return "", fmt.Errorf("loading page theme: %w", err)
		}
		parts = append(parts, theme)
	}

	highlight, err := mdx.StyleCSS(cfg.Code.Style)
	if err != nil {
		return "", err
	}
	parts = append(parts, highlight)

	return strings.Join(parts, "\n"), nil
}
