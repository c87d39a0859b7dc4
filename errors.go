package mdx

import (
	"errors"

	"github.com/alnah/go-mdx/internal/dateutil"
	"github.com/alnah/go-mdx/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInvalidOption = errors.New("invalid renderer option")

	// Render errors, re-exported from the render pipeline.
	ErrRender           = pipeline.ErrRender
	ErrUnknownComponent = pipeline.ErrUnknownComponent
	ErrComponentSyntax  = pipeline.ErrComponentSyntax
	ErrComponentProps   = pipeline.ErrComponentProps
	ErrFrontMatter      = pipeline.ErrFrontMatter
	ErrHighlight        = pipeline.ErrHighlight
	ErrPageRender       = pipeline.ErrPageRender

	// Style errors.
	ErrUnknownStyle = pipeline.ErrUnknownStyle

	// Page errors.
	ErrInvalidDate       = dateutil.ErrInvalidDate
	ErrInvalidDateFormat = dateutil.ErrInvalidDateFormat
)
