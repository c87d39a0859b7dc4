package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"
)

// ErrFrontMatter indicates the metadata block could not be decoded.
var ErrFrontMatter = errors.New("invalid front matter")

// FrontMatter is the metadata block at the top of a post.
// Keys without a field of their own land in Extra.
type FrontMatter struct {
	Title       string         `yaml:"title" json:"title" toml:"title"`
	Slug        string         `yaml:"slug" json:"slug" toml:"slug"`
	Summary     string         `yaml:"summary" json:"summary" toml:"summary"`
	PublishedAt string         `yaml:"publishedAt" json:"publishedAt" toml:"publishedAt"`
	Image       string         `yaml:"image" json:"image" toml:"image"`
	Tags        []string       `yaml:"tags" json:"tags" toml:"tags"`
	Draft       bool           `yaml:"draft" json:"draft" toml:"draft"`
	Extra       map[string]any `yaml:",inline" json:"-" toml:"-"`
}

// SplitFrontMatter separates the metadata block from the body.
// Sources without front matter are returned whole with a zero FrontMatter.
func SplitFrontMatter(src []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	return meta, body, nil
}
