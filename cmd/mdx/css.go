package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdx"
	"github.com/alnah/go-mdx/internal/hints"
)

// defaultCSSStyle is printed when no style is named.
const defaultCSSStyle = "github"

// runCSS prints the highlight stylesheet for a style, or lists styles.
func runCSS(args []string, env *Environment) error {
	flags, positional, err := parseCSSFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if flags.list {
		for _, name := range mdx.HighlightStyles() {
			fmt.Fprintln(env.Stdout, name)
		}
		return nil
	}

	if len(positional) > 1 {
		return fmt.Errorf("%w: css takes at most one style, got %d", ErrUsage, len(positional))
	}

	style := defaultCSSStyle
	if len(positional) == 1 {
		style = positional[0]
	}

	css, err := mdx.StyleCSS(style)
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(mdx.HighlightStyles()))
	}
	fmt.Fprint(env.Stdout, css)
	return nil
}
