package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// markdownFlags toggles goldmark behaviour.
type markdownFlags struct {
	hardWraps  bool
	unsafeHTML bool
}

// codeFlags holds syntax highlighting flags.
type codeFlags struct {
	style  string
	fenced string
}

// pageFlags holds standalone page flags.
type pageFlags struct {
	enabled    bool
	noCSS      bool
	lang       string
	theme      string
	assetsDir  string
	dateFormat string
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	enabled  bool
	title    string
	minDepth int
	maxDepth int
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common   commonFlags
	output   string
	workers  int
	timeout  string
	basePath string
	drafts   bool
	markdown markdownFlags
	code     codeFlags
	page     pageFlags
	toc      tocFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show sizes and timing")
}

// addMarkdownFlags adds goldmark flags to a FlagSet.
func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.BoolVar(&f.hardWraps, "hard-wraps", false, "render newlines in paragraphs as <br />")
	fs.BoolVar(&f.unsafeHTML, "unsafe-html", false, "pass raw HTML through")
}

// addCodeFlags adds highlighting flags to a FlagSet.
func addCodeFlags(fs *flag.FlagSet, f *codeFlags) {
	fs.StringVar(&f.style, "style", "", "chroma highlight style")
	fs.StringVar(&f.fenced, "fenced", "", "fenced code rendering: inline, block")
}

// addPageFlags adds standalone page flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.BoolVar(&f.enabled, "page", false, "write complete HTML documents")
	fs.BoolVar(&f.noCSS, "no-css", false, "do not embed any stylesheet")
	fs.StringVar(&f.lang, "lang", "", "page language (default: en)")
	fs.StringVar(&f.theme, "theme", "", "page theme, or none (default: default)")
	fs.StringVar(&f.assetsDir, "assets-dir", "", "directory with custom themes/<name>.css")
	fs.StringVar(&f.dateFormat, "date-format", "", "publication date format (default: long)")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.BoolVar(&f.enabled, "toc", false, "add a table of contents (implies --page)")
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.IntVar(&f.minDepth, "toc-min-depth", 0, "min heading depth for TOC (1-6, default: 2)")
	fs.IntVar(&f.maxDepth, "toc-max-depth", 0, "max heading depth for TOC (1-6, default: 3)")
}

// newRenderFlagSet registers every render flag on a new FlagSet.
// Shared by parseRenderFlags and shell completion.
func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-file render timeout (e.g., 10s, 1m)")
	fs.StringVar(&f.basePath, "base-path", "", "prefix for internal links (e.g., /blog)")
	fs.BoolVar(&f.drafts, "drafts", false, "render posts marked draft: true")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addMarkdownFlags(fs, &f.markdown)
	addCodeFlags(fs, &f.code)
	addPageFlags(fs, &f.page)
	addTOCFlags(fs, &f.toc)

	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet(f)
	fs.Usage = func() { printRenderUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// cssFlags holds flags for the css command.
type cssFlags struct {
	list bool
}

func newCSSFlagSet(f *cssFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("css", flag.ContinueOnError)
	fs.BoolVarP(&f.list, "list", "l", false, "list available styles")
	return fs
}

// parseCSSFlags parses css command flags and returns positional args.
func parseCSSFlags(args []string) (*cssFlags, []string, error) {
	f := &cssFlags{}
	fs := newCSSFlagSet(f)
	fs.Usage = func() { printCSSUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
