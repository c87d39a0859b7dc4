package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdx/internal/assets"
	"github.com/alnah/go-mdx/internal/dateutil"
	"github.com/alnah/go-mdx/internal/fileutil"
	"github.com/alnah/go-mdx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppName names the user config directory (~/.config/go-mdx).
const AppName = "go-mdx"

// Field length limits.
const (
	MaxPathLength      = 4096 // directories, base path
	MaxStyleLength     = 64   // chroma style name
	MaxClassLength     = 200  // class attribute values
	MaxLangLength      = 35   // BCP 47 tag
	MaxTitleLength     = 200  // page and TOC titles
	MaxExtensionLength = 16   // ".html"
	MaxThemeLength     = 64   // page theme name
)

// Fenced code rendering modes.
const (
	FencedInline = "inline" // through the code and pre components (default)
	FencedBlock  = "block"  // goldmark-highlighting, full <pre class="chroma">
)

// Config holds all configuration for rendering.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Site     SiteConfig     `yaml:"site"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Code     CodeConfig     `yaml:"code"`
	Images   ImagesConfig   `yaml:"images"`
	Headings HeadingsConfig `yaml:"headings"`
	Page     PageConfig     `yaml:"page"`
	TOC      TOCConfig      `yaml:"toc"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = must specify
	Drafts     bool   `yaml:"drafts"`     // render posts with draft: true
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
	Extension  string `yaml:"extension"`  // default ".html"
}

// SiteConfig describes where the rendered content is mounted.
type SiteConfig struct {
	BasePath string `yaml:"basePath"` // prefix for internal links, e.g. "/blog"
	Lang     string `yaml:"lang"`     // page language (default "en")
}

// MarkdownConfig toggles goldmark behaviour.
type MarkdownConfig struct {
	HardWraps  bool `yaml:"hardWraps"`
	UnsafeHTML bool `yaml:"unsafeHTML"` // pass raw HTML through
}

// CodeConfig defines syntax highlighting options.
type CodeConfig struct {
	Style  string `yaml:"style"`  // chroma style (default "github")
	Fenced string `yaml:"fenced"` // "inline" or "block"
}

// ImagesConfig defines the image component.
type ImagesConfig struct {
	Class string `yaml:"class"` // default "rounded-lg"
}

// HeadingsConfig defines the heading components.
type HeadingsConfig struct {
	AnchorClass string `yaml:"anchorClass"` // default "anchor"
}

// PageConfig controls standalone page output.
type PageConfig struct {
	Enabled    bool   `yaml:"enabled"`    // wrap fragments in a full HTML document
	NoCSS      bool   `yaml:"noCSS"`      // embed no stylesheet at all
	Theme      string `yaml:"theme"`      // base stylesheet, "none" for highlight CSS only
	AssetsDir  string `yaml:"assetsDir"`  // custom themes in {dir}/themes/{name}.css
	DateFormat string `yaml:"dateFormat"` // publishedAt display: preset or tokens
}

// TOCConfig defines table of contents options for standalone pages.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`    // empty = no title above the TOC
	MinDepth int    `yaml:"minDepth"` // 1-6, default 2
	MaxDepth int    `yaml:"maxDepth"` // 1-6, default 3
}

// Validate checks field lengths and enum values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.extension", c.Output.Extension, MaxExtensionLength},
		{"site.basePath", c.Site.BasePath, MaxPathLength},
		{"site.lang", c.Site.Lang, MaxLangLength},
		{"code.style", c.Code.Style, MaxStyleLength},
		{"images.class", c.Images.Class, MaxClassLength},
		{"headings.anchorClass", c.Headings.AnchorClass, MaxClassLength},
		{"toc.title", c.TOC.Title, MaxTitleLength},
		{"page.theme", c.Page.Theme, MaxThemeLength},
		{"page.assetsDir", c.Page.AssetsDir, MaxPathLength},
		{"page.dateFormat", c.Page.DateFormat, dateutil.MaxDateFormatLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Site.BasePath != "" && !strings.HasPrefix(c.Site.BasePath, "/") {
		return fmt.Errorf("%w: site.basePath: %q must start with /", ErrInvalidValue, c.Site.BasePath)
	}

	if c.Output.Extension != "" {
		if !strings.HasPrefix(c.Output.Extension, ".") {
			return fmt.Errorf("%w: output.extension: %q must start with a dot", ErrInvalidValue, c.Output.Extension)
		}
		if err := fileutil.ValidateExtension(strings.TrimPrefix(c.Output.Extension, ".")); err != nil {
			return fmt.Errorf("%w: output.extension: %v", ErrInvalidValue, err)
		}
	}

	switch strings.ToLower(c.Code.Fenced) {
	case "", FencedInline, FencedBlock:
	default:
		return fmt.Errorf("%w: code.fenced: %q (must be %s or %s)", ErrInvalidValue, c.Code.Fenced, FencedInline, FencedBlock)
	}

	if c.Page.Theme != "" && c.Page.Theme != assets.NoTheme {
		if err := assets.ValidateAssetName(c.Page.Theme); err != nil {
			return fmt.Errorf("%w: page.theme: %v", ErrInvalidValue, err)
		}
	}

	if c.Page.DateFormat != "" {
		if _, err := dateutil.ResolveLayout(c.Page.DateFormat); err != nil {
			return fmt.Errorf("%w: page.dateFormat: %v", ErrInvalidValue, err)
		}
	}

	if c.TOC.Enabled {
		if err := validateDepth("toc.minDepth", c.TOC.MinDepth); err != nil {
			return err
		}
		if err := validateDepth("toc.maxDepth", c.TOC.MaxDepth); err != nil {
			return err
		}
		if c.TOC.MinDepth != 0 && c.TOC.MaxDepth != 0 && c.TOC.MinDepth > c.TOC.MaxDepth {
			return fmt.Errorf("%w: toc.minDepth (%d) greater than toc.maxDepth (%d)", ErrInvalidValue, c.TOC.MinDepth, c.TOC.MaxDepth)
		}
	}

	return nil
}

// BlockHighlighting reports whether fenced code uses goldmark-highlighting.
func (c *Config) BlockHighlighting() bool {
	return strings.EqualFold(c.Code.Fenced, FencedBlock)
}

func validateDepth(field string, depth int) error {
	if depth != 0 && (depth < 1 || depth > 6) {
		return fmt.Errorf("%w: %s: must be between 1 and 6, got %d", ErrInvalidValue, field, depth)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Extension: ".html"},
		Site:   SiteConfig{Lang: "en"},
		Code:   CodeConfig{Style: "github", Fenced: FencedInline},
		Images: ImagesConfig{Class: "rounded-lg"},
		Headings: HeadingsConfig{
			AnchorClass: "anchor",
		},
		Page: PageConfig{Theme: assets.DefaultTheme, DateFormat: dateutil.DefaultDateFormat},
		TOC: TOCConfig{MinDepth: 2, MaxDepth: 3},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields missing from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// CandidatePaths lists where a config name is looked up, in order.
// Tries extensions .yaml then .yml, in the current directory and then
// in ~/.config/go-mdx/.
func CandidatePaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing candidate path for name.
func resolveConfigPath(name string) (string, error) {
	triedPaths := CandidatePaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
