// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"sort"
	"strings"
)

// ForTimeout returns a hint about increasing timeout for slow renders.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-mdx/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-mdx") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for unknown highlight styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; see `mdx css --list`")
}

// ForThemeNotFound returns hints for unknown page themes.
func ForThemeNotFound(available []string) string {
	h := "built-in themes: " + strings.Join(available, ", ")
	return format(h + "; custom themes go in <assets-dir>/themes/<name>.css")
}

// ForUnknownComponent lists the registered component names.
func ForUnknownComponent(registered []string) string {
	if len(registered) == 0 {
		return format("no components are registered")
	}
	names := append([]string(nil), registered...)
	sort.Strings(names)
	return format("registered components: " + strings.Join(names, ", "))
}

// ForComponentSyntax explains the accepted component tag form.
func ForComponentSyntax() string {
	return format(`component tags must be self-closing and on their own lines: <Name attr="v" data={{...}} />`)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
