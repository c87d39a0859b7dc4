package pipeline

import (
	"regexp"
	"strings"
)

// whitespace is ASCII whitespace plus the Unicode space separators.
// Go's \s is ASCII only and would leave no-break spaces inside slugs.
const whitespace = `\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var (
	whitespaceRun   = regexp.MustCompile(`[` + whitespace + `]+`)
	nonWordOrHyphen = regexp.MustCompile(`[^\w\-]+`)
	hyphenRun       = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a heading identifier from text.
//
// Steps, in order: lowercase, trim, whitespace runs to "-", "&" to
// "-and-", drop everything outside [A-Za-z0-9_-], collapse hyphen runs.
// Non-ASCII letters are dropped. Leading and trailing hyphens are kept.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.TrimFunc(s, isSlugSpace)
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = strings.ReplaceAll(s, "&", "-and-")
	s = nonWordOrHyphen.ReplaceAllString(s, "")
	return hyphenRun.ReplaceAllString(s, "-")
}

func isSlugSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		0x00a0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}
