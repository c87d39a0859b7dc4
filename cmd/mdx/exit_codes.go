package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-mdx"
	"github.com/alnah/go-mdx/internal/assets"
	"github.com/alnah/go-mdx/internal/config"
)

// Exit codes for the mdx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All files rendered
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitRender  = 4 // Markdown or component rendering failed
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Render errors (exit 4)
	if errors.Is(err, mdx.ErrRender) ||
		errors.Is(err, mdx.ErrUnknownComponent) ||
		errors.Is(err, mdx.ErrComponentSyntax) ||
		errors.Is(err, mdx.ErrComponentProps) ||
		errors.Is(err, mdx.ErrFrontMatter) ||
		errors.Is(err, mdx.ErrHighlight) ||
		errors.Is(err, mdx.ErrPageRender) ||
		errors.Is(err, mdx.ErrInvalidDate) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, ErrRenderFailed) {
		return ExitRender
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdx.ErrUnknownStyle) ||
		errors.Is(err, mdx.ErrInvalidOption) ||
		errors.Is(err, mdx.ErrInvalidDateFormat) ||
		errors.Is(err, assets.ErrThemeNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
